package bomstock

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/pos-bom/internal/domain"
	"github.com/jhoicas/pos-bom/internal/domain/entity"
	"github.com/jhoicas/pos-bom/internal/domain/repository"
)

var _ PickingValidator = (*RepoPickingValidator)(nil)

// RepoPickingValidator cierra el documento cuando todos sus movimientos están en done.
type RepoPickingValidator struct {
	pickingRepo repository.PickingRepository
	movRepo     repository.StockMovementRepository
}

// NewRepoPickingValidator construye el validador sobre los repositorios (pool, fuera de la tx).
func NewRepoPickingValidator(pickingRepo repository.PickingRepository, movRepo repository.StockMovementRepository) *RepoPickingValidator {
	return &RepoPickingValidator{pickingRepo: pickingRepo, movRepo: movRepo}
}

// Validate marca el documento como done. Falla si algún movimiento no está completado.
func (v *RepoPickingValidator) Validate(ctx context.Context, pickingID string) error {
	picking, err := v.pickingRepo.GetByID(ctx, pickingID)
	if err != nil {
		return err
	}
	if picking == nil {
		return domain.ErrNotFound
	}
	if picking.State == entity.PickingStateDone {
		return nil
	}
	moves, err := v.movRepo.ListByPicking(ctx, pickingID)
	if err != nil {
		return err
	}
	for _, m := range moves {
		if m.State != entity.MovementStateDone {
			return fmt.Errorf("movimiento %s en estado %s: %w", m.ID, m.State, domain.ErrInvalidTransition)
		}
	}
	return v.pickingRepo.MarkDone(ctx, pickingID, time.Now())
}
