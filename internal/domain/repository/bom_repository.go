package repository

import (
	"context"

	"github.com/jhoicas/pos-bom/internal/domain/entity"
)

// BOMRepository define el puerto de lectura de listas de materiales.
type BOMRepository interface {
	// ListByProduct devuelve todas las listas (activas o no) del producto.
	ListByProduct(ctx context.Context, productID string) ([]entity.BillOfMaterials, error)
	// ListLines devuelve las líneas de una lista en su orden definido.
	ListLines(ctx context.Context, bomID string) ([]entity.BOMLine, error)
}
