package repository

import (
	"context"
	"time"

	"github.com/jhoicas/pos-bom/internal/domain/entity"
)

// PickingRepository define el puerto de persistencia para documentos de transferencia.
type PickingRepository interface {
	Create(ctx context.Context, picking *entity.Picking) error
	GetByID(ctx context.Context, id string) (*entity.Picking, error)
	MarkDone(ctx context.Context, id string, doneAt time.Time) error
}
