package ports

import (
	"context"

	"github.com/minicrm/crm-api/internal/core/domain"
)

// ArticleRepository defines persistence operations for catalogue articles.
type ArticleRepository interface {
	Create(ctx context.Context, article *domain.Article) (*domain.Article, error)
	FindByID(ctx context.Context, id string) (*domain.Article, error)
	List(ctx context.Context) ([]*domain.Article, error)
	Update(ctx context.Context, article *domain.Article) (*domain.Article, error)
	Delete(ctx context.Context, id string) error
}
