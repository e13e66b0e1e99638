package resolvers

import (
	"context"
	"testing"

	"github.com/RodyMacay/biodiversity-monitoring/models"
	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocationMap(t *testing.T) {
	r, _ := newTestResolver(t)
	ctx := context.Background()
	f := seedFixture(t, r)
	empty, err := r.CreateLocation(ctx, researcher, models.LocationInput{
		Name:        ptr("Atlantic Forest plot"),
		Coordinates: &models.Coordinates{Latitude: -23.5, Longitude: -46.6},
		Ecosystem:   ptr(models.Forest),
		Country:     ptr("Brazil"),
	})
	require.NoError(t, err)
	for _, date := range []string{"2024-10-01", "2024-10-02"} {
		_, err := r.CreateMonitoringData(ctx, researcher, observationInput(f, date))
		require.NoError(t, err)
	}

	fc, err := r.LocationMap(ctx)
	require.NoError(t, err)
	require.Len(t, fc.Features, 2)

	// Locations are listed by name.
	first, second := fc.Features[0], fc.Features[1]
	assert.Equal(t, empty.IDHex(), first.Properties["id"])
	assert.Equal(t, 0, first.Properties["observationCount"])
	assert.Equal(t, []string{}, first.Properties["species"])

	assert.Equal(t, "Corcovado", second.Properties["name"])
	assert.Equal(t, orb.Point{-83.59, 8.54}, second.Geometry)
	assert.Equal(t, 2, second.Properties["observationCount"])
	assert.Equal(t, []string{"Jaguar"}, second.Properties["species"])
	assert.Equal(t, models.Forest, second.Properties["ecosystem"])
}
