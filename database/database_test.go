package database

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/RodyMacay/biodiversity-monitoring/config"
	"github.com/RodyMacay/biodiversity-monitoring/models"
	"github.com/RodyMacay/biodiversity-monitoring/store"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestDuplicateField(t *testing.T) {
	msg := `E11000 duplicate key error collection: biodiversity.users index: email_1 dup key: { email: "a@b.c" }`
	assert.Equal(t, "email", duplicateField(msg))
	assert.Equal(t, "", duplicateField("some other failure"))
}

// connectTest needs a reachable server; set MONGO_TEST_URI to run it.
func connectTest(t *testing.T) *Store {
	t.Helper()
	uri := os.Getenv("MONGO_TEST_URI")
	if uri == "" {
		t.Skip("MONGO_TEST_URI not set")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	s, err := Connect(ctx, config.MongoConfig{
		Mode:   "auto",
		URI:    uri,
		DBName: "biodiversity_test_" + uuid.NewString()[:8],
	}, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = s.db.Drop(ctx)
		_ = s.Close(ctx)
	})
	return s
}

func TestStoreRoundTrip(t *testing.T) {
	s := connectTest(t)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Millisecond)

	sp := &models.Species{
		ID:                 primitive.NewObjectID(),
		Name:               "Jaguar",
		ScientificName:     "Panthera onca",
		ConservationStatus: models.NearThreatened,
		Audit:              models.Audit{CreatedBy: "user_1", CreatedAt: now, UpdatedAt: now},
	}
	require.NoError(t, s.Species().Insert(ctx, sp))

	got, err := s.Species().FindByID(ctx, sp.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, *sp, *got)

	dup := *sp
	dup.ID = primitive.NewObjectID()
	err = s.Species().Insert(ctx, &dup)
	require.Error(t, err)
	assert.True(t, errors.Is(err, store.ErrDuplicate))

	missing, err := s.Species().FindByID(ctx, primitive.NewObjectID())
	require.NoError(t, err)
	assert.Nil(t, missing)

	err = s.Species().Replace(ctx, dup.ID, &dup)
	assert.ErrorIs(t, err, store.ErrNotFound)

	groups, err := s.Species().GroupCount(ctx, "conservationStatus")
	require.NoError(t, err)
	assert.Equal(t, []store.GroupCount{{Key: "NEAR_THREATENED", Count: 1}}, groups)

	updated, err := s.Species().Update(ctx, sp.ID, bson.M{"name": "Yaguar"})
	require.NoError(t, err)
	assert.Equal(t, "Yaguar", updated.Name)

	ok, err := s.Species().Delete(ctx, sp.ID)
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = s.Species().Delete(ctx, sp.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStoreMonthlyCount(t *testing.T) {
	s := connectTest(t)
	ctx := context.Background()
	since := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	for _, d := range []time.Time{
		since.AddDate(0, 0, -1),
		since,
		since.AddDate(0, 0, 10),
		since.AddDate(0, 1, 0),
	} {
		require.NoError(t, s.Observations().Insert(ctx, &models.MonitoringData{
			ID:          primitive.NewObjectID(),
			SpeciesID:   primitive.NewObjectID(),
			MethodID:    primitive.NewObjectID(),
			LocationID:  primitive.NewObjectID(),
			Date:        d,
			Unit:        "individuals",
			DataQuality: models.QualityHigh,
			Researcher:  "R",
		}))
	}

	months, err := s.Observations().MonthlyCount(ctx, "date", since)
	require.NoError(t, err)
	assert.ElementsMatch(t, []store.MonthCount{
		{Year: 2024, Month: 1, Count: 2},
		{Year: 2024, Month: 2, Count: 1},
	}, months)
}
