package keyresult

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*KeyResult, error)
	GetByObjective(ctx context.Context, objectiveID uuid.UUID) ([]*KeyResult, error)
	Create(ctx context.Context, data *KeyResult) (*KeyResult, error)
	Update(ctx context.Context, data *KeyResult) (*KeyResult, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
