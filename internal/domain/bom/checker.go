package bom

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
)

// StockReader lee la cantidad disponible de un producto en una ubicación.
type StockReader interface {
	OnHand(ctx context.Context, productID, locationID string) (decimal.Decimal, error)
}

// StockReaderFunc adapta una función a StockReader.
type StockReaderFunc func(ctx context.Context, productID, locationID string) (decimal.Decimal, error)

// OnHand implementa StockReader.
func (f StockReaderFunc) OnHand(ctx context.Context, productID, locationID string) (decimal.Decimal, error) {
	return f(ctx, productID, locationID)
}

// Required cantidad requerida de un componente para vender multiplier unidades del padre.
func Required(c Component, multiplier decimal.Decimal) decimal.Decimal {
	return c.Quantity.Mul(multiplier)
}

// CheckAvailability recorre los componentes en orden y se detiene en el primero con
// disponible < requerido. Los componentes posteriores no se consultan.
// Igualdad entre disponible y requerido es suficiente.
func CheckAvailability(
	ctx context.Context,
	reader StockReader,
	components []Component,
	multiplier decimal.Decimal,
	locationID string,
) (Verdict, error) {
	for _, c := range components {
		required := Required(c, multiplier)
		available, err := reader.OnHand(ctx, c.ComponentID, locationID)
		if err != nil {
			return Verdict{}, fmt.Errorf("stock de componente %s: %w", c.ComponentID, err)
		}
		if available.LessThan(required) {
			return Shortfall(c, available, required), nil
		}
	}
	return ValidVerdict(), nil
}
