// path: resolvers/locationmap.go
package resolvers

import (
	"context"
	"sort"

	"github.com/RodyMacay/biodiversity-monitoring/store"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// LocationMap renders every location as a GeoJSON point feature carrying
// its observation count and the distinct species names observed there.
// Observations whose species no longer exists are counted but not named.
func (r *Resolver) LocationMap(ctx context.Context) (*geojson.FeatureCollection, error) {
	locations, err := r.Locations(ctx)
	if err != nil {
		return nil, err
	}
	docs, err := list(ctx, r, r.repo.Observations(), "locations.map", store.Query{})
	if err != nil {
		return nil, err
	}
	species, err := r.Species(ctx)
	if err != nil {
		return nil, err
	}

	names := make(map[primitive.ObjectID]string, len(species))
	for _, s := range species {
		names[s.ID] = s.Name
	}
	counts := map[primitive.ObjectID]int{}
	seen := map[primitive.ObjectID]map[string]bool{}
	for _, d := range docs {
		counts[d.LocationID]++
		name, ok := names[d.SpeciesID]
		if !ok {
			continue
		}
		if seen[d.LocationID] == nil {
			seen[d.LocationID] = map[string]bool{}
		}
		seen[d.LocationID][name] = true
	}

	fc := geojson.NewFeatureCollection()
	for i := range locations {
		l := &locations[i]
		f := geojson.NewFeature(orb.Point{l.Coordinates.Longitude, l.Coordinates.Latitude})
		f.ID = l.IDHex()
		f.Properties["id"] = l.IDHex()
		f.Properties["name"] = l.Name
		f.Properties["country"] = l.Country
		f.Properties["ecosystem"] = l.Ecosystem
		f.Properties["protectionStatus"] = l.ProtectionStatus
		f.Properties["observationCount"] = counts[l.ID]
		f.Properties["species"] = sortedKeys(seen[l.ID])
		fc.Append(f)
	}
	return fc, nil
}

func sortedKeys(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
