package repository

import (
	"context"

	"github.com/jhoicas/pos-bom/internal/domain/entity"
)

// LocationRepository define el puerto de persistencia para ubicaciones de inventario.
type LocationRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Location, error)
	// FindByUsage devuelve la primera ubicación de la empresa con ese uso, o nil.
	FindByUsage(ctx context.Context, companyID, usage string) (*entity.Location, error)
	Create(ctx context.Context, location *entity.Location) error
}
