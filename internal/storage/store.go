package storage

import (
	"context"

	"job-board-go/internal/models"
	"job-board-go/internal/query"
)

// Store is the tabular-query capability the job repository is built
// on. List returns one page of rows together with the exact total row
// count for the query. GetByID, Update and Delete return
// models.ErrNotFound when no row matches the id.
type Store interface {
	List(ctx context.Context, q query.Descriptor) ([]models.Job, int, error)
	GetByID(ctx context.Context, id string) (*models.Job, error)
	Insert(ctx context.Context, draft models.Draft, userID string) (*models.Job, error)
	Update(ctx context.Context, id string, patch models.Patch) (*models.Job, error)
	Delete(ctx context.Context, id string) error
	Ping(ctx context.Context) error
}
