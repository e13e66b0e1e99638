// path: resolvers/relations.go
package resolvers

import (
	"context"

	"github.com/RodyMacay/biodiversity-monitoring/models"
	"github.com/RodyMacay/biodiversity-monitoring/store"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/sync/errgroup"
)

// preset carries relations the caller already holds, typically the root of
// an inverse lookup, so they are not fetched again.
type preset struct {
	species  *models.Species
	method   *models.MonitoringMethod
	location *models.Location
}

func (r *Resolver) observe(ctx context.Context, d *models.MonitoringData) (*models.Observation, error) {
	out, err := r.materialise(ctx, []*models.MonitoringData{d}, preset{})
	if err != nil {
		return nil, err
	}
	return out[0], nil
}

func (r *Resolver) observeAll(ctx context.Context, docs []models.MonitoringData, p preset) ([]*models.Observation, error) {
	ptrs := make([]*models.MonitoringData, len(docs))
	for i := range docs {
		ptrs[i] = &docs[i]
	}
	return r.materialise(ctx, ptrs, p)
}

// materialise resolves the three relations of every observation with one
// batched lookup per collection. Missing documents leave the relation nil.
func (r *Resolver) materialise(ctx context.Context, docs []*models.MonitoringData, p preset) ([]*models.Observation, error) {
	out := make([]*models.Observation, len(docs))
	var speciesIDs, methodIDs, locationIDs []primitive.ObjectID
	for i, d := range docs {
		out[i] = &models.Observation{MonitoringData: d, Species: p.species, Method: p.method, Location: p.location}
		speciesIDs = append(speciesIDs, d.SpeciesID)
		methodIDs = append(methodIDs, d.MethodID)
		locationIDs = append(locationIDs, d.LocationID)
	}
	if len(docs) == 0 {
		return out, nil
	}

	var (
		species   map[primitive.ObjectID]*models.Species
		methods   map[primitive.ObjectID]*models.MonitoringMethod
		locations map[primitive.ObjectID]*models.Location
	)
	g, gctx := errgroup.WithContext(ctx)
	if p.species == nil {
		g.Go(func() (err error) {
			species, err = lookup(gctx, r.repo.Species(), speciesIDs, func(s *models.Species) primitive.ObjectID { return s.ID })
			return err
		})
	}
	if p.method == nil {
		g.Go(func() (err error) {
			methods, err = lookup(gctx, r.repo.Methods(), methodIDs, func(m *models.MonitoringMethod) primitive.ObjectID { return m.ID })
			return err
		})
	}
	if p.location == nil {
		g.Go(func() (err error) {
			locations, err = lookup(gctx, r.repo.Locations(), locationIDs, func(l *models.Location) primitive.ObjectID { return l.ID })
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, r.storeErr("observations.relations", err)
	}

	for _, o := range out {
		if p.species == nil {
			o.Species = species[o.SpeciesID]
		}
		if p.method == nil {
			o.Method = methods[o.MethodID]
		}
		if p.location == nil {
			o.Location = locations[o.LocationID]
		}
	}
	return out, nil
}

func lookup[T any](ctx context.Context, col store.Collection[T], ids []primitive.ObjectID, key func(*T) primitive.ObjectID) (map[primitive.ObjectID]*T, error) {
	seen := make(map[primitive.ObjectID]bool, len(ids))
	in := bson.A{}
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			in = append(in, id)
		}
	}
	docs, err := col.Find(ctx, store.Query{Filter: bson.M{"_id": bson.M{"$in": in}}})
	if err != nil {
		return nil, err
	}
	byID := make(map[primitive.ObjectID]*T, len(docs))
	for i := range docs {
		byID[key(&docs[i])] = &docs[i]
	}
	return byID, nil
}
