// path: store/store.go

// Package store defines the persistence contract the resolvers run against.
//
// Collections speak the document store's own vocabulary: filters are
// bson.M documents (equality plus $eq, $ne, $gt, $gte, $lt, $lte, $in)
// and sorts are bson.D key/direction pairs. Two implementations satisfy
// it: Memory in this package, used by tests and the `memory` store mode,
// and the MongoDB-backed store in package database.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/RodyMacay/biodiversity-monitoring/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	// ErrDuplicate is returned when a write would violate a unique key.
	ErrDuplicate = errors.New("duplicate key")
	// ErrNotFound is returned by Replace when no document has the id.
	ErrNotFound = models.ErrNotFound
)

// DuplicateError names the unique field that collided. It matches
// ErrDuplicate under errors.Is.
type DuplicateError struct {
	Collection string
	Field      string
}

func (e *DuplicateError) Error() string {
	if e.Field == "" {
		return e.Collection + ": duplicate key"
	}
	return e.Collection + ": duplicate value for " + e.Field
}

func (e *DuplicateError) Is(target error) bool { return target == ErrDuplicate }

type Query struct {
	Filter bson.M
	Sort   bson.D
	Limit  int64
}

type GroupCount struct {
	Key   string `bson:"_id"`
	Count int64  `bson:"count"`
}

type MonthCount struct {
	Year  int
	Month int
	Count int64
}

// Collection is a typed view over one document collection. Lookups that
// match nothing return a nil document and a nil error.
type Collection[T any] interface {
	Find(ctx context.Context, q Query) ([]T, error)
	FindOne(ctx context.Context, filter bson.M) (*T, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*T, error)
	Count(ctx context.Context, filter bson.M) (int64, error)

	// Insert stores doc as given; the caller assigns _id and timestamps.
	Insert(ctx context.Context, doc *T) error
	// Replace overwrites the document with the same _id as doc.
	Replace(ctx context.Context, id primitive.ObjectID, doc *T) error
	// Update applies a $set of top-level fields and returns the result.
	Update(ctx context.Context, id primitive.ObjectID, set bson.M) (*T, error)
	// Delete reports whether a document was removed.
	Delete(ctx context.Context, id primitive.ObjectID) (bool, error)
	DeleteAll(ctx context.Context) error

	// GroupCount tallies documents by the value of field. Groups with no
	// documents are absent.
	GroupCount(ctx context.Context, field string) ([]GroupCount, error)
	// MonthlyCount tallies documents whose date field is >= since by UTC
	// calendar month. Empty months are absent.
	MonthlyCount(ctx context.Context, field string, since time.Time) ([]MonthCount, error)
}

type Repository interface {
	Species() Collection[models.Species]
	Methods() Collection[models.MonitoringMethod]
	Locations() Collection[models.Location]
	Observations() Collection[models.MonitoringData]
	Users() Collection[models.User]

	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

// Collection names as stored in MongoDB.
const (
	SpeciesCollection      = "species"
	MethodsCollection      = "monitoringmethods"
	LocationsCollection    = "locations"
	ObservationsCollection = "monitoringdatas"
	UsersCollection        = "users"
)
