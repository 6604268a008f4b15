package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/pos-bom/internal/domain"
	"github.com/jhoicas/pos-bom/internal/domain/entity"
	"github.com/jhoicas/pos-bom/internal/domain/repository"
)

var _ repository.PickingRepository = (*PickingRepo)(nil)

// PickingRepo documentos de transferencia sobre PostgreSQL.
type PickingRepo struct {
	q Querier
}

// NewPickingRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPickingRepository(q Querier) *PickingRepo {
	return &PickingRepo{q: q}
}

// Create persiste un documento.
func (r *PickingRepo) Create(ctx context.Context, p *entity.Picking) error {
	query := `
		INSERT INTO pickings (id, company_id, name, type, origin, source_location_id, dest_location_id, state, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.CompanyID, p.Name, p.Type, p.Origin, p.SourceLocationID, p.DestLocationID, p.State, p.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert picking: %w", err)
	}
	return nil
}

// GetByID obtiene un documento por ID.
func (r *PickingRepo) GetByID(ctx context.Context, id string) (*entity.Picking, error) {
	query := `
		SELECT id, company_id, name, type, origin, source_location_id, dest_location_id, state, created_at, done_at
		FROM pickings WHERE id = $1`
	var p entity.Picking
	err := r.q.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.CompanyID, &p.Name, &p.Type, &p.Origin, &p.SourceLocationID, &p.DestLocationID,
		&p.State, &p.CreatedAt, &p.DoneAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get picking: %w", err)
	}
	return &p, nil
}

// MarkDone cierra el documento.
func (r *PickingRepo) MarkDone(ctx context.Context, id string, doneAt time.Time) error {
	cmd, err := r.q.Exec(ctx, `UPDATE pickings SET state = $2, done_at = $3 WHERE id = $1`,
		id, entity.PickingStateDone, doneAt)
	if err != nil {
		return fmt.Errorf("mark picking done: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
