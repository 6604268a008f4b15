package repository

import (
	"context"

	"github.com/jhoicas/pos-bom/internal/domain/entity"
)

// ProductRepository define el puerto de lectura del catálogo de productos (DIP).
// GetByID devuelve (nil, nil) si el producto no existe.
type ProductRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Product, error)
}
