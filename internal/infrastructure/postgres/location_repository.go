package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/pos-bom/internal/domain"
	"github.com/jhoicas/pos-bom/internal/domain/entity"
	"github.com/jhoicas/pos-bom/internal/domain/repository"
)

var _ repository.LocationRepository = (*LocationRepo)(nil)

// LocationRepo ubicaciones de inventario sobre PostgreSQL.
type LocationRepo struct {
	q Querier
}

// NewLocationRepository construye el adaptador. Pasar pool o tx (Querier).
func NewLocationRepository(q Querier) *LocationRepo {
	return &LocationRepo{q: q}
}

// GetByID obtiene una ubicación por ID.
func (r *LocationRepo) GetByID(ctx context.Context, id string) (*entity.Location, error) {
	query := `SELECT id, company_id, name, usage, created_at FROM locations WHERE id = $1`
	var l entity.Location
	err := r.q.QueryRow(ctx, query, id).Scan(&l.ID, &l.CompanyID, &l.Name, &l.Usage, &l.CreatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get location: %w", err)
	}
	return &l, nil
}

// FindByUsage devuelve la ubicación más antigua de la empresa con ese uso.
// FOR UPDATE solo bloquea una fila existente; la creación concurrente la resuelve uq_locations_virtual.
func (r *LocationRepo) FindByUsage(ctx context.Context, companyID, usage string) (*entity.Location, error) {
	query := `
		SELECT id, company_id, name, usage, created_at
		FROM locations WHERE company_id = $1 AND usage = $2
		ORDER BY created_at, id LIMIT 1
		FOR UPDATE`
	var l entity.Location
	err := r.q.QueryRow(ctx, query, companyID, usage).Scan(&l.ID, &l.CompanyID, &l.Name, &l.Usage, &l.CreatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("find location by usage: %w", err)
	}
	return &l, nil
}

// Create persiste una ubicación. Si otra transacción ya creó la ubicación virtual de ese uso
// devuelve domain.ErrDuplicate sin abortar la transacción en curso (ON CONFLICT DO NOTHING).
func (r *LocationRepo) Create(ctx context.Context, l *entity.Location) error {
	query := `
		INSERT INTO locations (id, company_id, name, usage, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT DO NOTHING`
	tag, err := r.q.Exec(ctx, query, l.ID, l.CompanyID, l.Name, l.Usage, l.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert location: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrDuplicate
	}
	return nil
}
