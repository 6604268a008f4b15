package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/pos-bom/internal/domain"
	"github.com/jhoicas/pos-bom/internal/domain/entity"
	"github.com/jhoicas/pos-bom/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

const movementColumns = `
	id, company_id, name, type, product_id, COALESCE(uom_id::text, ''), quantity,
	source_location_id, dest_location_id, state, origin,
	order_id, order_line_id, picking_id, date, created_at, COALESCE(created_by::text, '')`

// StockMovementRepo movimientos de stock sobre PostgreSQL (usable con pool o tx).
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

// Create persiste un movimiento.
func (r *StockMovementRepo) Create(ctx context.Context, m *entity.StockMovement) error {
	query := `
		INSERT INTO stock_movements (id, company_id, name, type, product_id, uom_id, quantity,
			source_location_id, dest_location_id, state, origin,
			order_id, order_line_id, picking_id, date, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.CompanyID, m.Name, m.Type, m.ProductID, nullIfEmpty(m.UOMID), m.Quantity,
		m.SourceLocationID, m.DestLocationID, m.State, m.Origin,
		nullIfEmpty(m.OrderID), nullIfEmpty(m.OrderLineID), nullIfEmpty(m.PickingID),
		m.Date, m.CreatedAt, nullIfEmpty(m.CreatedBy),
	)
	if err != nil {
		return fmt.Errorf("insert stock movement: %w", err)
	}
	return nil
}

// UpdateState cambia el estado de un movimiento.
func (r *StockMovementRepo) UpdateState(ctx context.Context, movementID, state string) error {
	cmd, err := r.q.Exec(ctx, `UPDATE stock_movements SET state = $2 WHERE id = $1`, movementID, state)
	if err != nil {
		return fmt.Errorf("update stock movement state: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("movimiento %s: %w", movementID, domain.ErrNotFound)
	}
	return nil
}

// ListByOrder movimientos de un pedido POS en orden de creación.
func (r *StockMovementRepo) ListByOrder(ctx context.Context, orderID string) ([]*entity.StockMovement, error) {
	return r.list(ctx, `SELECT `+movementColumns+` FROM stock_movements WHERE order_id = $1 ORDER BY created_at, id`, orderID)
}

// ListByPicking movimientos de un documento de transferencia.
func (r *StockMovementRepo) ListByPicking(ctx context.Context, pickingID string) ([]*entity.StockMovement, error) {
	return r.list(ctx, `SELECT `+movementColumns+` FROM stock_movements WHERE picking_id = $1 ORDER BY created_at, id`, pickingID)
}

func (r *StockMovementRepo) list(ctx context.Context, query string, arg string) ([]*entity.StockMovement, error) {
	rows, err := r.q.Query(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("list stock movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockMovement
	for rows.Next() {
		var m entity.StockMovement
		var orderID, lineID, pickingID *string
		if err := rows.Scan(
			&m.ID, &m.CompanyID, &m.Name, &m.Type, &m.ProductID, &m.UOMID, &m.Quantity,
			&m.SourceLocationID, &m.DestLocationID, &m.State, &m.Origin,
			&orderID, &lineID, &pickingID, &m.Date, &m.CreatedAt, &m.CreatedBy,
		); err != nil {
			return nil, fmt.Errorf("scan stock movement: %w", err)
		}
		m.OrderID, m.OrderLineID, m.PickingID = fromNull(orderID), fromNull(lineID), fromNull(pickingID)
		list = append(list, &m)
	}
	return list, rows.Err()
}
