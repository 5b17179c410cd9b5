package bigrock

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*BigRock, error)
	GetByTenant(ctx context.Context) ([]*BigRock, error)
	Create(ctx context.Context, data *BigRock) (*BigRock, error)
	Update(ctx context.Context, data *BigRock) (*BigRock, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
