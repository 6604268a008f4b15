package bomstock

import (
	"context"

	"github.com/jhoicas/pos-bom/internal/domain/bom"
	"github.com/jhoicas/pos-bom/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// NewStockReader adapta un StockRepository a la lectura de disponible que usa la verificación.
func NewStockReader(repo repository.StockRepository) bom.StockReader {
	return bom.StockReaderFunc(func(ctx context.Context, productID, locationID string) (decimal.Decimal, error) {
		s, err := repo.Get(ctx, productID, locationID)
		if err != nil {
			return decimal.Zero, err
		}
		return s.Quantity, nil
	})
}
