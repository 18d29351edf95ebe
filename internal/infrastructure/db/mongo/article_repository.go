package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/minicrm/crm-api/internal/core/domain"
)

const articlesCollection = "articles"

type ArticleRepository struct {
	coll *mongo.Collection
}

func NewArticleRepository(db *mongo.Database) *ArticleRepository {
	return &ArticleRepository{coll: db.Collection(articlesCollection)}
}

type articleDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Name        string             `bson:"name"`
	Brand       string             `bson:"brand"`
	Price       float64            `bson:"price"`
	Stock       int                `bson:"stock"`
	Color       string             `bson:"color"`
	Image       string             `bson:"image,omitempty"`
	Description string             `bson:"description,omitempty"`
	CreatedAt   time.Time          `bson:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at"`
}

func toArticleDoc(a *domain.Article) articleDoc {
	return articleDoc{
		Name:        a.Name,
		Brand:       a.Brand,
		Price:       a.Price,
		Stock:       a.Stock,
		Color:       a.Color,
		Image:       a.Image,
		Description: a.Description,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

func (d articleDoc) toDomain() *domain.Article {
	return &domain.Article{
		ID:          d.ID.Hex(),
		Name:        d.Name,
		Brand:       d.Brand,
		Price:       d.Price,
		Stock:       d.Stock,
		Color:       d.Color,
		Image:       d.Image,
		Description: d.Description,
		CreatedAt:   d.CreatedAt.UTC(),
		UpdatedAt:   d.UpdatedAt.UTC(),
	}
}

func (r *ArticleRepository) Create(ctx context.Context, article *domain.Article) (*domain.Article, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.InsertOne(ctx, toArticleDoc(article))
	if err != nil {
		return nil, fmt.Errorf("insert article: %w", err)
	}

	created := *article
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *ArticleRepository) FindByID(ctx context.Context, id string) (*domain.Article, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrArticleNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc articleDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrArticleNotFound
		}
		return nil, fmt.Errorf("find article: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *ArticleRepository) List(ctx context.Context) ([]*domain.Article, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}
	defer cursor.Close(ctx)

	var articles []*domain.Article
	for cursor.Next(ctx) {
		var doc articleDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode article: %w", err)
		}
		articles = append(articles, doc.toDomain())
	}
	return articles, cursor.Err()
}

func (r *ArticleRepository) Update(ctx context.Context, article *domain.Article) (*domain.Article, error) {
	oid, err := primitive.ObjectIDFromHex(article.ID)
	if err != nil {
		return nil, domain.ErrArticleNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": oid}, toArticleDoc(article))
	if err != nil {
		return nil, fmt.Errorf("update article: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrArticleNotFound
	}
	return article, nil
}

func (r *ArticleRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrArticleNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete article: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrArticleNotFound
	}
	return nil
}

func ensureArticleIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(articlesCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "name", Value: 1}}},
		{Keys: bson.D{{Key: "brand", Value: 1}}},
	})
	return err
}
