package bomstock

import (
	"context"
	"fmt"

	"github.com/jhoicas/pos-bom/internal/domain"
	"github.com/jhoicas/pos-bom/internal/domain/bom"
	"github.com/jhoicas/pos-bom/internal/domain/entity"
	"github.com/jhoicas/pos-bom/internal/domain/repository"
)

// Resolver obtiene la lista ordenada de componentes de un producto vendible. Solo lectura.
type Resolver struct {
	productRepo repository.ProductRepository
	bomRepo     repository.BOMRepository
}

// NewResolver construye el resolvedor de componentes.
func NewResolver(productRepo repository.ProductRepository, bomRepo repository.BOMRepository) *Resolver {
	return &Resolver{productRepo: productRepo, bomRepo: bomRepo}
}

// ResolveComponents devuelve los componentes por unidad de la primera lista activa del producto.
// Sin lista de materiales devuelve una lista vacía (no es error).
func (r *Resolver) ResolveComponents(ctx context.Context, productID string) ([]bom.Component, error) {
	product, err := r.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return r.ComponentsFor(ctx, product)
}

// ComponentsFor igual que ResolveComponents para un producto ya cargado.
func (r *Resolver) ComponentsFor(ctx context.Context, product *entity.Product) ([]bom.Component, error) {
	boms, err := r.bomRepo.ListByProduct(ctx, product.ID)
	if err != nil {
		return nil, fmt.Errorf("listas de materiales de %s: %w", product.ID, err)
	}
	selected := bom.SelectActive(boms)
	if selected == nil {
		return []bom.Component{}, nil
	}
	lines, err := r.bomRepo.ListLines(ctx, selected.ID)
	if err != nil {
		return nil, fmt.Errorf("líneas de la lista %s: %w", selected.ID, err)
	}
	return bom.ComponentsFromLines(lines), nil
}
