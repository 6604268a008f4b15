package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/pos-bom/internal/domain/entity"
	"github.com/jhoicas/pos-bom/internal/domain/repository"
)

var _ repository.OutletRepository = (*OutletRepo)(nil)

// OutletRepo configuración de puntos de venta sobre PostgreSQL.
type OutletRepo struct {
	q Querier
}

// NewOutletRepository construye el adaptador.
func NewOutletRepository(q Querier) *OutletRepo {
	return &OutletRepo{q: q}
}

// GetByID obtiene un punto de venta. bom_validation NULL queda como nil (no configurado).
func (r *OutletRepo) GetByID(ctx context.Context, id string) (*entity.Outlet, error) {
	query := `
		SELECT id, company_id, name, stock_location_id, bom_validation, created_at, updated_at
		FROM pos_outlets WHERE id = $1`
	var o entity.Outlet
	err := r.q.QueryRow(ctx, query, id).Scan(
		&o.ID, &o.CompanyID, &o.Name, &o.StockLocationID, &o.BOMValidation, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get outlet: %w", err)
	}
	return &o, nil
}
