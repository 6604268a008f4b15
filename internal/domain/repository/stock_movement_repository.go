package repository

import (
	"context"

	"github.com/jhoicas/pos-bom/internal/domain/entity"
)

// StockMovementRepository define el puerto de persistencia para movimientos de stock.
type StockMovementRepository interface {
	Create(ctx context.Context, movement *entity.StockMovement) error
	UpdateState(ctx context.Context, movementID, state string) error
	ListByOrder(ctx context.Context, orderID string) ([]*entity.StockMovement, error)
	ListByPicking(ctx context.Context, pickingID string) ([]*entity.StockMovement, error)
}
