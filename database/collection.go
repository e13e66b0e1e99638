// path: database/collection.go
package database

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/RodyMacay/biodiversity-monitoring/store"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mongoCollection[T any] struct {
	col *mongo.Collection
}

var _ store.Collection[struct{}] = (*mongoCollection[struct{}])(nil)

func newMongoCollection[T any](col *mongo.Collection) *mongoCollection[T] {
	return &mongoCollection[T]{col: col}
}

func (c *mongoCollection[T]) Find(ctx context.Context, q store.Query) ([]T, error) {
	opts := options.Find()
	if len(q.Sort) > 0 {
		opts.SetSort(q.Sort)
	}
	if q.Limit > 0 {
		opts.SetLimit(q.Limit)
	}
	cur, err := c.col.Find(ctx, filterOrAll(q.Filter), opts)
	if err != nil {
		return nil, fmt.Errorf("%s find: %w", c.col.Name(), err)
	}
	defer cur.Close(ctx)

	out := make([]T, 0)
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("%s decode: %w", c.col.Name(), err)
	}
	return out, nil
}

func (c *mongoCollection[T]) FindOne(ctx context.Context, filter bson.M) (*T, error) {
	var doc T
	err := c.col.FindOne(ctx, filterOrAll(filter)).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s find one: %w", c.col.Name(), err)
	}
	return &doc, nil
}

func (c *mongoCollection[T]) FindByID(ctx context.Context, id primitive.ObjectID) (*T, error) {
	return c.FindOne(ctx, bson.M{"_id": id})
}

func (c *mongoCollection[T]) Count(ctx context.Context, filter bson.M) (int64, error) {
	n, err := c.col.CountDocuments(ctx, filterOrAll(filter))
	if err != nil {
		return 0, fmt.Errorf("%s count: %w", c.col.Name(), err)
	}
	return n, nil
}

func (c *mongoCollection[T]) Insert(ctx context.Context, doc *T) error {
	if _, err := c.col.InsertOne(ctx, doc); err != nil {
		return c.writeErr("insert", err)
	}
	return nil
}

func (c *mongoCollection[T]) Replace(ctx context.Context, id primitive.ObjectID, doc *T) error {
	res, err := c.col.ReplaceOne(ctx, bson.M{"_id": id}, doc)
	if err != nil {
		return c.writeErr("replace", err)
	}
	if res.MatchedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (c *mongoCollection[T]) Update(ctx context.Context, id primitive.ObjectID, set bson.M) (*T, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc T
	err := c.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, c.writeErr("update", err)
	}
	return &doc, nil
}

func (c *mongoCollection[T]) Delete(ctx context.Context, id primitive.ObjectID) (bool, error) {
	res, err := c.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, fmt.Errorf("%s delete: %w", c.col.Name(), err)
	}
	return res.DeletedCount > 0, nil
}

func (c *mongoCollection[T]) DeleteAll(ctx context.Context) error {
	if _, err := c.col.DeleteMany(ctx, bson.M{}); err != nil {
		return fmt.Errorf("%s delete all: %w", c.col.Name(), err)
	}
	return nil
}

func (c *mongoCollection[T]) GroupCount(ctx context.Context, field string) ([]store.GroupCount, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$" + field},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
	}
	cur, err := c.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("%s group %s: %w", c.col.Name(), field, err)
	}
	defer cur.Close(ctx)

	out := make([]store.GroupCount, 0)
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("%s group %s decode: %w", c.col.Name(), field, err)
	}
	return out, nil
}

func (c *mongoCollection[T]) MonthlyCount(ctx context.Context, field string, since time.Time) ([]store.MonthCount, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: field, Value: bson.D{{Key: "$gte", Value: since}}}}}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: bson.D{
				{Key: "year", Value: bson.D{{Key: "$year", Value: "$" + field}}},
				{Key: "month", Value: bson.D{{Key: "$month", Value: "$" + field}}},
			}},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
	}
	cur, err := c.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("%s monthly %s: %w", c.col.Name(), field, err)
	}
	defer cur.Close(ctx)

	var rows []struct {
		ID struct {
			Year  int `bson:"year"`
			Month int `bson:"month"`
		} `bson:"_id"`
		Count int64 `bson:"count"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("%s monthly %s decode: %w", c.col.Name(), field, err)
	}
	out := make([]store.MonthCount, 0, len(rows))
	for _, r := range rows {
		out = append(out, store.MonthCount{Year: r.ID.Year, Month: r.ID.Month, Count: r.Count})
	}
	return out, nil
}

// --- utils ---

func filterOrAll(filter bson.M) bson.M {
	if filter == nil {
		return bson.M{}
	}
	return filter
}

func (c *mongoCollection[T]) writeErr(op string, err error) error {
	if mongo.IsDuplicateKeyError(err) {
		return &store.DuplicateError{Collection: c.col.Name(), Field: duplicateField(err.Error())}
	}
	return fmt.Errorf("%s %s: %w", c.col.Name(), op, err)
}

// duplicateField pulls the index name out of an E11000 message
// ("... index: email_1 dup key: ...") and strips the direction suffix.
func duplicateField(msg string) string {
	_, rest, ok := strings.Cut(msg, "index: ")
	if !ok {
		return ""
	}
	name, _, _ := strings.Cut(rest, " ")
	return strings.TrimSuffix(name, "_1")
}
