package repository

import (
	"context"

	"github.com/jhoicas/pos-bom/internal/domain/entity"
)

// OutletRepository define el puerto de lectura de configuración de puntos de venta.
type OutletRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Outlet, error)
}
