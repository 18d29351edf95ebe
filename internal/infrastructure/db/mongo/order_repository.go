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

const ordersCollection = "orders"

type OrderRepository struct {
	coll *mongo.Collection
}

func NewOrderRepository(db *mongo.Database) *OrderRepository {
	return &OrderRepository{coll: db.Collection(ordersCollection)}
}

type orderItemDoc struct {
	ArticleID primitive.ObjectID `bson:"article_id"`
	Quantity  int                `bson:"quantity"`
	UnitPrice float64            `bson:"unit_price"`
}

type orderDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Number    string             `bson:"number"`
	Date      time.Time          `bson:"date"`
	Status    string             `bson:"status"`
	ClientID  primitive.ObjectID `bson:"client_id"`
	Items     []orderItemDoc     `bson:"items"`
	Total     float64            `bson:"total"`
	CreatedAt time.Time          `bson:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at"`
}

func toOrderDoc(o *domain.Order) (orderDoc, error) {
	clientID, err := primitive.ObjectIDFromHex(o.ClientID)
	if err != nil {
		return orderDoc{}, domain.ErrClientNotFound
	}

	items := make([]orderItemDoc, 0, len(o.Items))
	for _, item := range o.Items {
		articleID, err := primitive.ObjectIDFromHex(item.ArticleID)
		if err != nil {
			return orderDoc{}, domain.ErrArticleNotFound
		}
		items = append(items, orderItemDoc{
			ArticleID: articleID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}

	return orderDoc{
		Number:    o.Number,
		Date:      o.Date,
		Status:    string(o.Status),
		ClientID:  clientID,
		Items:     items,
		Total:     o.Total,
		CreatedAt: o.CreatedAt,
		UpdatedAt: o.UpdatedAt,
	}, nil
}

func (d orderDoc) toDomain() *domain.Order {
	items := make([]domain.OrderItem, 0, len(d.Items))
	for _, item := range d.Items {
		items = append(items, domain.OrderItem{
			ArticleID: item.ArticleID.Hex(),
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}
	return &domain.Order{
		ID:        d.ID.Hex(),
		Number:    d.Number,
		Date:      d.Date.UTC(),
		Status:    domain.OrderStatus(d.Status),
		ClientID:  d.ClientID.Hex(),
		Items:     items,
		Total:     d.Total,
		CreatedAt: d.CreatedAt.UTC(),
		UpdatedAt: d.UpdatedAt.UTC(),
	}
}

func (r *OrderRepository) Create(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	doc, err := toOrderDoc(order)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrOrderNumberTaken
		}
		return nil, fmt.Errorf("insert order: %w", err)
	}

	created := *order
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *OrderRepository) FindByID(ctx context.Context, id string) (*domain.Order, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrOrderNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc orderDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, fmt.Errorf("find order: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *OrderRepository) List(ctx context.Context) ([]*domain.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "date", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer cursor.Close(ctx)

	var orders []*domain.Order
	for cursor.Next(ctx) {
		var doc orderDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode order: %w", err)
		}
		orders = append(orders, doc.toDomain())
	}
	return orders, cursor.Err()
}

func (r *OrderRepository) Update(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	oid, err := primitive.ObjectIDFromHex(order.ID)
	if err != nil {
		return nil, domain.ErrOrderNotFound
	}

	doc, err := toOrderDoc(order)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": oid}, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrOrderNumberTaken
		}
		return nil, fmt.Errorf("update order: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrOrderNotFound
	}
	return order, nil
}

func (r *OrderRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrOrderNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete order: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrOrderNotFound
	}
	return nil
}

func ensureOrderIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(ordersCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "number", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "client_id", Value: 1}}},
		{Keys: bson.D{{Key: "date", Value: -1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
	})
	return err
}
