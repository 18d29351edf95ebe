package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/minicrm/crm-api/internal/core/domain"
	"github.com/minicrm/crm-api/internal/core/ports"
)

// ArticleService implements catalogue use cases.
type ArticleService struct {
	articles ports.ArticleRepository
	logger   zerolog.Logger
}

func NewArticleService(articles ports.ArticleRepository, logger zerolog.Logger) *ArticleService {
	return &ArticleService{articles: articles, logger: logger}
}

func (s *ArticleService) List(ctx context.Context) ([]*domain.Article, error) {
	return s.articles.List(ctx)
}

func (s *ArticleService) Get(ctx context.Context, id string) (*domain.Article, error) {
	return s.articles.FindByID(ctx, id)
}

func (s *ArticleService) Create(ctx context.Context, input ports.ArticleInput) (*domain.Article, error) {
	now := time.Now().UTC()
	article := articleFromInput(input)
	article.CreatedAt = now
	article.UpdatedAt = now

	created, err := s.articles.Create(ctx, article)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("article_id", created.ID).Str("name", created.Name).Msg("article created")
	return created, nil
}

func (s *ArticleService) Update(ctx context.Context, id string, input ports.ArticleInput) (*domain.Article, error) {
	existing, err := s.articles.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	article := articleFromInput(input)
	article.ID = existing.ID
	article.CreatedAt = existing.CreatedAt
	article.UpdatedAt = time.Now().UTC()

	return s.articles.Update(ctx, article)
}

func (s *ArticleService) Delete(ctx context.Context, id string) error {
	return s.articles.Delete(ctx, id)
}

func articleFromInput(input ports.ArticleInput) *domain.Article {
	return &domain.Article{
		Name:        input.Name,
		Brand:       input.Brand,
		Price:       input.Price,
		Stock:       input.Stock,
		Color:       input.Color,
		Image:       input.Image,
		Description: input.Description,
	}
}
