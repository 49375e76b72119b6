package provider

import (
	"context"

	domain "github.com/BruksfildServices01/marketplace-api/internal/domain/provider"
	"github.com/BruksfildServices01/marketplace-api/internal/models"
)

type Queries struct {
	repo domain.Repository
}

func NewQueries(repo domain.Repository) *Queries {
	return &Queries{repo: repo}
}

func (q *Queries) ByUser(ctx context.Context, userID uint) (*models.Provider, error) {
	return q.repo.GetProviderByUserID(ctx, userID)
}

func (q *Queries) ByID(ctx context.Context, id uint) (*models.Provider, error) {
	return q.repo.GetProviderByID(ctx, id)
}

// List returns approved providers unless an explicit status is asked for.
func (q *Queries) List(ctx context.Context, status string) ([]models.Provider, error) {
	st := domain.StatusApproved
	if status != "" {
		parsed, err := domain.ParseStatus(status)
		if err != nil {
			return nil, err
		}
		st = parsed
	}
	return q.repo.ListProviders(ctx, st)
}
