// path: resolvers/resolver.go

// Package resolvers holds the operations behind the GraphQL schema: entity
// CRUD, relation materialisation, dashboard aggregation and user sync.
// Every gated operation takes the caller's auth.RequestContext explicitly.
package resolvers

import (
	"context"
	"errors"
	"time"

	"github.com/RodyMacay/biodiversity-monitoring/models"
	"github.com/RodyMacay/biodiversity-monitoring/store"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	MonthOrderLexical       = "lexical"
	MonthOrderChronological = "chronological"

	recentDataLimit = 10
)

type Resolver struct {
	repo       store.Repository
	now        func() time.Time
	monthOrder string
	log        zerolog.Logger
}

type Option func(*Resolver)

func WithClock(now func() time.Time) Option {
	return func(r *Resolver) { r.now = now }
}

func WithMonthOrder(order string) Option {
	return func(r *Resolver) { r.monthOrder = order }
}

func WithLogger(log zerolog.Logger) Option {
	return func(r *Resolver) { r.log = log }
}

func New(repo store.Repository, opts ...Option) *Resolver {
	r := &Resolver{
		repo:       repo,
		now:        time.Now,
		monthOrder: MonthOrderLexical,
		log:        zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Resolver) Repo() store.Repository { return r.repo }

// clock is truncated to the millisecond, the precision the document store
// keeps, so a written record reads back equal.
func (r *Resolver) clock() time.Time {
	return r.now().UTC().Truncate(time.Millisecond)
}

func (r *Resolver) stamp(a *models.Audit, createdBy string) {
	now := r.clock()
	a.CreatedBy = createdBy
	a.CreatedAt = now
	a.UpdatedAt = now
}

// storeErr classifies a repository failure: unique-key collisions become
// validation errors, anything else an upstream error.
func (r *Resolver) storeErr(op string, err error) error {
	if err == nil {
		return nil
	}
	var dup *store.DuplicateError
	if errors.As(err, &dup) {
		field := dup.Field
		if field == "" {
			field = "id"
		}
		return models.Invalid(field, "already exists")
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return models.Upstream(op, err)
	}
	r.log.Error().Err(err).Str("op", op).Msg("store call failed")
	return models.Upstream(op, err)
}

func notFound(entity, id string) error {
	return &models.NotFoundError{Entity: entity, ID: id}
}

// --- generic helpers ---

var byName = bson.D{{Key: "name", Value: 1}, {Key: "_id", Value: 1}}

// getByID returns nil for malformed or unknown ids.
func getByID[T any](ctx context.Context, r *Resolver, col store.Collection[T], op, id string) (*T, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}
	doc, err := col.FindByID(ctx, oid)
	if err != nil {
		return nil, r.storeErr(op, err)
	}
	return doc, nil
}

func list[T any](ctx context.Context, r *Resolver, col store.Collection[T], op string, q store.Query) ([]T, error) {
	docs, err := col.Find(ctx, q)
	if err != nil {
		return nil, r.storeErr(op, err)
	}
	return docs, nil
}

// deleteByID reports success whether or not a document matched.
func deleteByID[T any](ctx context.Context, r *Resolver, col store.Collection[T], op, id string) (bool, error) {
	oid, err := models.ParseID("id", id)
	if err != nil {
		return false, err
	}
	removed, err := col.Delete(ctx, oid)
	if err != nil {
		return false, r.storeErr(op, err)
	}
	if !removed {
		r.log.Debug().Str("op", op).Str("id", id).Msg("delete matched nothing")
	}
	return true, nil
}

// loadForUpdate fetches the document a mutation is about to change.
func loadForUpdate[T any](ctx context.Context, r *Resolver, col store.Collection[T], op, entity, id string) (*T, primitive.ObjectID, error) {
	oid, err := models.ParseID("id", id)
	if err != nil {
		return nil, oid, err
	}
	doc, err := col.FindByID(ctx, oid)
	if err != nil {
		return nil, oid, r.storeErr(op, err)
	}
	if doc == nil {
		return nil, oid, notFound(entity, id)
	}
	return doc, oid, nil
}

func replace[T any](ctx context.Context, r *Resolver, col store.Collection[T], op, entity string, id primitive.ObjectID, doc *T) error {
	err := col.Replace(ctx, id, doc)
	if errors.Is(err, store.ErrNotFound) {
		return notFound(entity, id.Hex())
	}
	return r.storeErr(op, err)
}
