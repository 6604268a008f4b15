package inventory

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/pos-bom/internal/domain"
	"github.com/jhoicas/pos-bom/internal/domain/entity"
	"github.com/jhoicas/pos-bom/internal/domain/repository"
)

// EnsureLocation devuelve la ubicación de la empresa con ese uso y la crea con name si no existe.
// Debe llamarse con el repositorio de la transacción en curso. Si otra transacción la creó
// primero, devuelve la que quedó guardada.
func EnsureLocation(
	ctx context.Context,
	repo repository.LocationRepository,
	companyID, usage, name string,
	now time.Time,
) (*entity.Location, error) {
	loc, err := repo.FindByUsage(ctx, companyID, usage)
	if err != nil {
		return nil, err
	}
	if loc != nil {
		return loc, nil
	}
	loc = &entity.Location{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		Name:      name,
		Usage:     usage,
		CreatedAt: now,
	}
	if err := repo.Create(ctx, loc); err != nil {
		if !errors.Is(err, domain.ErrDuplicate) {
			return nil, err
		}
		winner, ferr := repo.FindByUsage(ctx, companyID, usage)
		if ferr != nil {
			return nil, ferr
		}
		if winner == nil {
			return nil, err
		}
		return winner, nil
	}
	return loc, nil
}
