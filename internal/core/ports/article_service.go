package ports

import (
	"context"

	"github.com/minicrm/crm-api/internal/core/domain"
)

// ArticleInput carries all writable article fields.
type ArticleInput struct {
	Name        string
	Brand       string
	Price       float64
	Stock       int
	Color       string
	Image       string
	Description string
}

// ArticleService defines catalogue use cases.
type ArticleService interface {
	List(ctx context.Context) ([]*domain.Article, error)
	Get(ctx context.Context, id string) (*domain.Article, error)
	Create(ctx context.Context, input ArticleInput) (*domain.Article, error)
	Update(ctx context.Context, id string, input ArticleInput) (*domain.Article, error)
	Delete(ctx context.Context, id string) error
}
