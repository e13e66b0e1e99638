package seed

import (
	"context"
	"testing"
	"time"

	"github.com/RodyMacay/biodiversity-monitoring/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestLoadReplacesCollections(t *testing.T) {
	ctx := context.Background()
	repo := store.NewMemory()
	now := time.Date(2024, 11, 15, 10, 0, 0, 0, time.UTC)

	first, err := Load(ctx, repo, "", now)
	require.NoError(t, err)
	assert.Equal(t, Summary{Species: 6, Methods: 5, Locations: 5, MonitoringData: 2}, first)

	// A second load replaces rather than appends.
	_, err = Load(ctx, repo, "user_admin", now)
	require.NoError(t, err)

	n, err := repo.Species().Count(ctx, nil)
	require.NoError(t, err)
	assert.EqualValues(t, 6, n)

	jaguar, err := repo.Species().FindOne(ctx, bson.M{"scientificName": "Panthera onca"})
	require.NoError(t, err)
	require.NotNil(t, jaguar)
	assert.Equal(t, "user_admin", jaguar.CreatedBy)
	assert.Equal(t, now, jaguar.CreatedAt)

	data, err := repo.Observations().Find(ctx, store.Query{})
	require.NoError(t, err)
	require.Len(t, data, 2)
	for _, d := range data {
		sp, err := repo.Species().FindByID(ctx, d.SpeciesID)
		require.NoError(t, err)
		assert.NotNil(t, sp, "observation references a seeded species")
	}
}

func TestLoadKeepsUsers(t *testing.T) {
	ctx := context.Background()
	repo := store.NewMemory()
	_, err := Load(ctx, repo, SystemUser, time.Now().UTC())
	require.NoError(t, err)

	n, err := repo.Users().Count(ctx, nil)
	require.NoError(t, err)
	assert.Zero(t, n)
}
