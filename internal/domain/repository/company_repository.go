package repository

import (
	"context"

	"github.com/jhoicas/pos-bom/internal/domain/entity"
)

// CompanyRepository define el puerto de lectura de empresas.
// La implementación vive en infrastructure.
type CompanyRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Company, error)
}
