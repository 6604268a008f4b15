package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/pos-bom/internal/domain/entity"
	"github.com/jhoicas/pos-bom/internal/domain/repository"
)

var _ repository.BOMRepository = (*BOMRepo)(nil)

// BOMRepo lectura de listas de materiales sobre PostgreSQL.
type BOMRepo struct {
	q Querier
}

// NewBOMRepository construye el adaptador.
func NewBOMRepository(q Querier) *BOMRepo {
	return &BOMRepo{q: q}
}

// ListByProduct devuelve las listas del producto ordenadas por secuencia e ID.
func (r *BOMRepo) ListByProduct(ctx context.Context, productID string) ([]entity.BillOfMaterials, error) {
	query := `
		SELECT id, company_id, product_id, code, active, sequence, created_at, updated_at
		FROM bill_of_materials WHERE product_id = $1
		ORDER BY sequence, id`
	rows, err := r.q.Query(ctx, query, productID)
	if err != nil {
		return nil, fmt.Errorf("list boms: %w", err)
	}
	defer rows.Close()
	var list []entity.BillOfMaterials
	for rows.Next() {
		var b entity.BillOfMaterials
		if err := rows.Scan(&b.ID, &b.CompanyID, &b.ProductID, &b.Code, &b.Active, &b.Sequence, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan bom: %w", err)
		}
		list = append(list, b)
	}
	return list, rows.Err()
}

// ListLines devuelve las líneas de la lista con el nombre del componente.
func (r *BOMRepo) ListLines(ctx context.Context, bomID string) ([]entity.BOMLine, error) {
	query := `
		SELECT l.id, l.bom_id, l.component_id, p.name, l.quantity,
		       COALESCE(l.uom_id::text, ''), COALESCE(l.uom_name, p.unit_measure), l.sequence
		FROM bom_lines l
		JOIN products p ON p.id = l.component_id
		WHERE l.bom_id = $1
		ORDER BY l.sequence, l.id`
	rows, err := r.q.Query(ctx, query, bomID)
	if err != nil {
		return nil, fmt.Errorf("list bom lines: %w", err)
	}
	defer rows.Close()
	var list []entity.BOMLine
	for rows.Next() {
		var l entity.BOMLine
		if err := rows.Scan(&l.ID, &l.BOMID, &l.ComponentID, &l.ComponentName, &l.Quantity, &l.UOMID, &l.UOMName, &l.Sequence); err != nil {
			return nil, fmt.Errorf("scan bom line: %w", err)
		}
		list = append(list, l)
	}
	return list, rows.Err()
}
