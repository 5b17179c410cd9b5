package objective

import (
	"context"

	"github.com/google/uuid"
)

type FindParams struct {
	Year    int
	Quarter *int
	TeamID  *uuid.UUID
	Limit   int
	Offset  int
}

type Repository interface {
	Count(ctx context.Context) (int64, error)
	GetAll(ctx context.Context) ([]*Objective, error)
	GetPaginated(ctx context.Context, params *FindParams) ([]*Objective, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Objective, error)
	GetByTitle(ctx context.Context, title string) (*Objective, error)
	Create(ctx context.Context, data *Objective) (*Objective, error)
	Update(ctx context.Context, data *Objective) (*Objective, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
