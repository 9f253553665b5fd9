package store

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/ecocart/ecocart/internal/model"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Mongo is the MongoDB backend. Products live in the "products"
// collection, users in "users" with a unique email index.
type Mongo struct {
	client   *mongo.Client
	products *mongo.Collection
	users    *mongo.Collection
}

// OpenMongo connects, pings and prepares indexes. The caller owns the
// context deadline.
func OpenMongo(ctx context.Context, uri, dbName string) (*Mongo, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("mongo ping: %w", err)
	}
	db := client.Database(dbName)
	m := &Mongo{
		client:   client,
		products: db.Collection("products"),
		users:    db.Collection("users"),
	}
	_, err = m.users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("mongo index: %w", err)
	}
	_, err = m.products.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "category", Value: 1}, {Key: "ecoScoreRank", Value: 1}},
	})
	if err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("mongo index: %w", err)
	}
	return m, nil
}

// buildFilter translates a Query into a bson filter document. The search
// term is escaped with regexp.QuoteMeta so metacharacters match literally.
func buildFilter(q Query) bson.M {
	f := bson.M{}
	if q.Category != "" {
		f["category"] = q.Category
	}
	if q.Grade != "" {
		f["ecoScore"] = string(q.Grade)
	}
	if q.MinPrice != nil || q.MaxPrice != nil {
		pr := bson.M{}
		if q.MinPrice != nil {
			pr["$gte"] = *q.MinPrice
		}
		if q.MaxPrice != nil {
			pr["$lte"] = *q.MaxPrice
		}
		f["price"] = pr
	}
	if len(q.ExcludeIDs) > 0 {
		f["_id"] = bson.M{"$nin": q.ExcludeIDs}
	}
	if q.Search != "" {
		re := primitive.Regex{Pattern: regexp.QuoteMeta(q.Search), Options: "i"}
		f["$or"] = bson.A{
			bson.M{"name": re},
			bson.M{"brand": re},
			bson.M{"description": re},
		}
	}
	return f
}

// buildSort maps a sort key to its bson sort document. Ties fall back to
// the collection's natural order; no secondary key is imposed.
func buildSort(s Sort) bson.D {
	switch s {
	case SortPriceAsc:
		return bson.D{{Key: "price", Value: 1}}
	case SortPriceDesc:
		return bson.D{{Key: "price", Value: -1}}
	case SortCarbonAsc:
		return bson.D{{Key: "carbonFootprint", Value: 1}}
	case SortNewest:
		return bson.D{{Key: "createdAt", Value: -1}}
	default:
		return bson.D{{Key: "ecoScoreRank", Value: 1}}
	}
}

func (m *Mongo) Create(ctx context.Context, p *model.Product) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	t := time.Now().UTC()
	p.CreatedAt = t
	p.UpdatedAt = t
	if _, err := m.products.InsertOne(ctx, p); err != nil {
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

func (m *Mongo) Update(ctx context.Context, p *model.Product) error {
	p.UpdatedAt = time.Now().UTC()
	res, err := m.products.ReplaceOne(ctx, bson.M{"_id": p.ID}, p)
	if err != nil {
		return fmt.Errorf("replace product: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (m *Mongo) Delete(ctx context.Context, id string) error {
	res, err := m.products.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (m *Mongo) GetByID(ctx context.Context, id string) (model.Product, error) {
	var p model.Product
	err := m.products.FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return model.Product{}, ErrNotFound
	}
	if err != nil {
		return model.Product{}, fmt.Errorf("find product: %w", err)
	}
	return p, nil
}

func (m *Mongo) List(ctx context.Context, q Query) ([]model.Product, int64, error) {
	filter := buildFilter(q)
	opts := options.Find()
	if q.Sort != "" {
		// An empty sort keeps the collection's natural order, which the
		// similar-products phases rely on.
		opts.SetSort(buildSort(q.Sort))
	}
	if q.Offset > 0 {
		opts.SetSkip(int64(q.Offset))
	}
	if q.Limit > 0 {
		opts.SetLimit(int64(q.Limit))
	}
	cur, err := m.products.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("find products: %w", err)
	}
	items := []model.Product{}
	if err := cur.All(ctx, &items); err != nil {
		return nil, 0, fmt.Errorf("decode products: %w", err)
	}
	total, err := m.products.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("count products: %w", err)
	}
	return items, total, nil
}

func (m *Mongo) All(ctx context.Context) ([]model.Product, error) {
	items, _, err := m.List(ctx, Query{Sort: SortNewest})
	return items, err
}

func (m *Mongo) CreateUser(ctx context.Context, u *model.User) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	u.Email = strings.ToLower(u.Email)
	if _, err := m.users.InsertOne(ctx, u); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrEmailTaken
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (m *Mongo) GetUserByEmail(ctx context.Context, email string) (model.User, error) {
	var u model.User
	err := m.users.FindOne(ctx, bson.M{"email": strings.ToLower(email)}).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return model.User{}, ErrNotFound
	}
	if err != nil {
		return model.User{}, fmt.Errorf("find user: %w", err)
	}
	return u, nil
}

func (m *Mongo) GetUserByID(ctx context.Context, id string) (model.User, error) {
	var u model.User
	err := m.users.FindOne(ctx, bson.M{"_id": id}).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return model.User{}, ErrNotFound
	}
	if err != nil {
		return model.User{}, fmt.Errorf("find user: %w", err)
	}
	return u, nil
}

func (m *Mongo) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}
