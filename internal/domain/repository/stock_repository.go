package repository

import (
	"context"

	"github.com/jhoicas/pos-bom/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// StockRepository define el puerto para consultar/actualizar stock por ubicación+producto.
// Get y GetForUpdate devuelven cantidad cero (no nil) cuando no hay fila.
type StockRepository interface {
	Get(ctx context.Context, productID, locationID string) (*entity.Stock, error)
	// GetForUpdate bloquea la fila hasta el fin de la transacción (SELECT FOR UPDATE).
	GetForUpdate(ctx context.Context, productID, locationID string) (*entity.Stock, error)
	Upsert(ctx context.Context, stock *entity.Stock) error
	// Add suma delta sobre la cantidad guardada en una sola sentencia; crea la fila si no existe.
	// Es el camino para entradas en filas que pueden no existir todavía.
	Add(ctx context.Context, productID, locationID string, delta decimal.Decimal) error
}
