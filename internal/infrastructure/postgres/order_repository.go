package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/pos-bom/internal/domain"
	"github.com/jhoicas/pos-bom/internal/domain/entity"
	"github.com/jhoicas/pos-bom/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

const orderLineColumns = `id, order_id, product_id, sequence, quantity, unit_price, subtotal, bom_deducted_at`

// OrderRepo pedidos POS sobre PostgreSQL (usable con pool o tx).
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

// Create persiste la cabecera del pedido.
func (r *OrderRepo) Create(ctx context.Context, o *entity.Order) error {
	query := `
		INSERT INTO pos_orders (id, company_id, outlet_id, name, state, total, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		o.ID, o.CompanyID, o.OutletID, o.Name, o.State, o.Total, o.CreatedAt, nullIfEmpty(o.CreatedBy),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert pos order: %w", err)
	}
	return nil
}

// CreateLine persiste una línea del pedido.
func (r *OrderRepo) CreateLine(ctx context.Context, l *entity.OrderLine) error {
	query := `
		INSERT INTO pos_order_lines (` + orderLineColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		l.ID, l.OrderID, l.ProductID, l.Sequence, l.Quantity, l.UnitPrice, l.Subtotal, l.BOMDeductedAt,
	)
	if err != nil {
		return fmt.Errorf("insert pos order line: %w", err)
	}
	return nil
}

// GetByID obtiene un pedido por ID.
func (r *OrderRepo) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	query := `
		SELECT id, company_id, outlet_id, name, state, total, created_at, COALESCE(created_by::text, '')
		FROM pos_orders WHERE id = $1`
	var o entity.Order
	err := r.q.QueryRow(ctx, query, id).Scan(
		&o.ID, &o.CompanyID, &o.OutletID, &o.Name, &o.State, &o.Total, &o.CreatedAt, &o.CreatedBy,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get pos order: %w", err)
	}
	return &o, nil
}

// ListLines líneas del pedido por secuencia.
func (r *OrderRepo) ListLines(ctx context.Context, orderID string) ([]*entity.OrderLine, error) {
	query := `SELECT ` + orderLineColumns + ` FROM pos_order_lines WHERE order_id = $1 ORDER BY sequence, id`
	rows, err := r.q.Query(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("list pos order lines: %w", err)
	}
	defer rows.Close()
	var list []*entity.OrderLine
	for rows.Next() {
		var l entity.OrderLine
		if err := rows.Scan(&l.ID, &l.OrderID, &l.ProductID, &l.Sequence, &l.Quantity, &l.UnitPrice, &l.Subtotal, &l.BOMDeductedAt); err != nil {
			return nil, fmt.Errorf("scan pos order line: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}

// GetLineForUpdate obtiene la línea y la bloquea hasta el fin de la transacción.
func (r *OrderRepo) GetLineForUpdate(ctx context.Context, lineID string) (*entity.OrderLine, error) {
	query := `SELECT ` + orderLineColumns + ` FROM pos_order_lines WHERE id = $1 FOR UPDATE`
	var l entity.OrderLine
	err := r.q.QueryRow(ctx, query, lineID).Scan(
		&l.ID, &l.OrderID, &l.ProductID, &l.Sequence, &l.Quantity, &l.UnitPrice, &l.Subtotal, &l.BOMDeductedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get pos order line for update: %w", err)
	}
	return &l, nil
}

// MarkBOMDeducted registra el descuento de componentes de la línea.
func (r *OrderRepo) MarkBOMDeducted(ctx context.Context, lineID string, at time.Time) error {
	cmd, err := r.q.Exec(ctx, `UPDATE pos_order_lines SET bom_deducted_at = $2 WHERE id = $1`, lineID, at)
	if err != nil {
		return fmt.Errorf("mark bom deducted: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
