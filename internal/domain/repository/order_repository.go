package repository

import (
	"context"
	"time"

	"github.com/jhoicas/pos-bom/internal/domain/entity"
)

// OrderRepository define el puerto de persistencia para pedidos POS y sus líneas.
type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	CreateLine(ctx context.Context, line *entity.OrderLine) error
	GetByID(ctx context.Context, id string) (*entity.Order, error)
	ListLines(ctx context.Context, orderID string) ([]*entity.OrderLine, error)
	// GetLineForUpdate bloquea la línea para evitar descuentos concurrentes.
	GetLineForUpdate(ctx context.Context, lineID string) (*entity.OrderLine, error)
	MarkBOMDeducted(ctx context.Context, lineID string, at time.Time) error
}
