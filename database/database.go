// path: database/database.go
package database

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/RodyMacay/biodiversity-monitoring/config"
	"github.com/RodyMacay/biodiversity-monitoring/models"
	"github.com/RodyMacay/biodiversity-monitoring/store"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Store is the MongoDB-backed store.Repository.
type Store struct {
	client *mongo.Client
	db     *mongo.Database
	log    zerolog.Logger

	species      *mongoCollection[models.Species]
	methods      *mongoCollection[models.MonitoringMethod]
	locations    *mongoCollection[models.Location]
	observations *mongoCollection[models.MonitoringData]
	users        *mongoCollection[models.User]
}

var _ store.Repository = (*Store)(nil)

// Connect dials MongoDB, pings it and makes sure the indexes exist. Index
// failures are logged, not returned.
func Connect(ctx context.Context, cfg config.MongoConfig, log zerolog.Logger) (*Store, error) {
	if cfg.Debug {
		log.Debug().Str("env", config.EnvSnapshot()).Msg("mongo: env snapshot")
	}

	start := time.Now()
	log.Info().
		Str("mode", cfg.Mode).
		Str("uri", config.RedactURI(cfg.URI)).
		Str("db", cfg.DBName).
		Str("reason", cfg.Reason).
		Msg("mongo: connecting")

	timeout := cfg.ConnectTimeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	dctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	c, err := mongo.Connect(dctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err = c.Ping(dctx, readpref.Primary()); err != nil {
		_ = c.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	s := newStore(c, c.Database(cfg.DBName), log)
	if err := s.createIndexes(ctx); err != nil {
		log.Warn().Err(err).Msg("mongo: index creation warnings")
	}

	log.Info().Dur("took", time.Since(start).Round(time.Millisecond)).Msg("mongo: connected ok")
	return s, nil
}

func newStore(c *mongo.Client, db *mongo.Database, log zerolog.Logger) *Store {
	return &Store{
		client:       c,
		db:           db,
		log:          log,
		species:      newMongoCollection[models.Species](db.Collection(store.SpeciesCollection)),
		methods:      newMongoCollection[models.MonitoringMethod](db.Collection(store.MethodsCollection)),
		locations:    newMongoCollection[models.Location](db.Collection(store.LocationsCollection)),
		observations: newMongoCollection[models.MonitoringData](db.Collection(store.ObservationsCollection)),
		users:        newMongoCollection[models.User](db.Collection(store.UsersCollection)),
	}
}

func (s *Store) Species() store.Collection[models.Species]             { return s.species }
func (s *Store) Methods() store.Collection[models.MonitoringMethod]    { return s.methods }
func (s *Store) Locations() store.Collection[models.Location]          { return s.locations }
func (s *Store) Observations() store.Collection[models.MonitoringData] { return s.observations }
func (s *Store) Users() store.Collection[models.User]                  { return s.users }

func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

func (s *Store) Close(ctx context.Context) error {
	if s.client == nil {
		return nil
	}
	return s.client.Disconnect(ctx)
}

func (s *Store) col(name string) *mongo.Collection {
	return s.db.Collection(name)
}

// --- internal ---

type indexSpec struct {
	collection string
	name       string
	keys       bson.D
	unique     bool
}

func asc(fields ...string) bson.D {
	keys := make(bson.D, 0, len(fields))
	for _, f := range fields {
		keys = append(keys, bson.E{Key: f, Value: 1})
	}
	return keys
}

var indexes = []indexSpec{
	{store.SpeciesCollection, "scientificName", asc("scientificName"), true},
	{store.SpeciesCollection, "conservationStatus", asc("conservationStatus"), false},
	{store.SpeciesCollection, "createdBy", asc("createdBy"), false},

	{store.MethodsCollection, "type", asc("type"), false},
	{store.MethodsCollection, "name", asc("name"), false},
	{store.MethodsCollection, "createdBy", asc("createdBy"), false},

	{store.LocationsCollection, "coordinates", asc("coordinates.latitude", "coordinates.longitude"), false},
	{store.LocationsCollection, "ecosystem", asc("ecosystem"), false},
	{store.LocationsCollection, "country", asc("country"), false},
	{store.LocationsCollection, "createdBy", asc("createdBy"), false},

	{store.ObservationsCollection, "species", asc("species"), false},
	{store.ObservationsCollection, "method", asc("method"), false},
	{store.ObservationsCollection, "location", asc("location"), false},
	{store.ObservationsCollection, "date", bson.D{{Key: "date", Value: -1}}, false},
	{store.ObservationsCollection, "createdBy", asc("createdBy"), false},
	{store.ObservationsCollection, "verified", asc("verified"), false},
	{store.ObservationsCollection, "species,location,date", bson.D{
		{Key: "species", Value: 1}, {Key: "location", Value: 1}, {Key: "date", Value: -1},
	}, false},

	{store.UsersCollection, "clerkId", asc("clerkId"), true},
	{store.UsersCollection, "email", asc("email"), true},
	{store.UsersCollection, "role", asc("role"), false},
}

func (s *Store) createIndexes(ctx context.Context) error {
	if s.db == nil {
		return errors.New("db is nil")
	}
	ctxIdx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	var errs []string
	for _, idx := range indexes {
		model := mongo.IndexModel{Keys: idx.keys}
		if idx.unique {
			model.Options = options.Index().SetUnique(true)
		}
		if _, err := s.col(idx.collection).Indexes().CreateOne(ctxIdx, model); err != nil {
			errs = append(errs, idx.collection+"."+idx.name+": "+err.Error())
		}
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}
