// path: resolvers/species.go
package resolvers

import (
	"context"

	"github.com/RodyMacay/biodiversity-monitoring/auth"
	"github.com/RodyMacay/biodiversity-monitoring/models"
	"github.com/RodyMacay/biodiversity-monitoring/store"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func (r *Resolver) Species(ctx context.Context) ([]models.Species, error) {
	return list(ctx, r, r.repo.Species(), "species.list", store.Query{Sort: byName})
}

func (r *Resolver) SpeciesByID(ctx context.Context, id string) (*models.Species, error) {
	return getByID(ctx, r, r.repo.Species(), "species.get", id)
}

func (r *Resolver) SpeciesByStatus(ctx context.Context, status models.ConservationStatus) ([]models.Species, error) {
	return list(ctx, r, r.repo.Species(), "species.byStatus", store.Query{
		Filter: bson.M{"conservationStatus": status},
		Sort:   byName,
	})
}

func (r *Resolver) CreateSpecies(ctx context.Context, rc auth.RequestContext, in models.SpeciesInput) (*models.Species, error) {
	caller, err := auth.RequireAuth(rc)
	if err != nil {
		return nil, err
	}
	s := &models.Species{
		ID:                 primitive.NewObjectID(),
		ConservationStatus: models.DataDeficient,
	}
	in.Apply(s)
	if err := s.Validate(); err != nil {
		return nil, err
	}
	if err := r.uniqueScientificName(ctx, s); err != nil {
		return nil, err
	}
	r.stamp(&s.Audit, caller.Subject)
	if err := r.repo.Species().Insert(ctx, s); err != nil {
		return nil, r.storeErr("species.create", err)
	}
	return s, nil
}

func (r *Resolver) UpdateSpecies(ctx context.Context, rc auth.RequestContext, id string, in models.SpeciesInput) (*models.Species, error) {
	if _, err := auth.RequireAuth(rc); err != nil {
		return nil, err
	}
	s, oid, err := loadForUpdate(ctx, r, r.repo.Species(), "species.update", "species", id)
	if err != nil {
		return nil, err
	}
	in.Apply(s)
	if err := s.Validate(); err != nil {
		return nil, err
	}
	if err := r.uniqueScientificName(ctx, s); err != nil {
		return nil, err
	}
	s.UpdatedAt = r.clock()
	if err := replace(ctx, r, r.repo.Species(), "species.update", "species", oid, s); err != nil {
		return nil, err
	}
	return s, nil
}

func (r *Resolver) DeleteSpecies(ctx context.Context, rc auth.RequestContext, id string) (bool, error) {
	if _, err := auth.RequireAdmin(rc); err != nil {
		return false, err
	}
	return deleteByID(ctx, r, r.repo.Species(), "species.delete", id)
}

// SpeciesObservations resolves Species.monitoringData.
func (r *Resolver) SpeciesObservations(ctx context.Context, s *models.Species) ([]*models.Observation, error) {
	return r.observationsWhere(ctx, bson.M{"species": s.ID}, preset{species: s})
}

func (r *Resolver) uniqueScientificName(ctx context.Context, s *models.Species) error {
	other, err := r.repo.Species().FindOne(ctx, bson.M{
		"scientificName": s.ScientificName,
		"_id":            bson.M{"$ne": s.ID},
	})
	if err != nil {
		return r.storeErr("species.unique", err)
	}
	if other != nil {
		return models.Invalid("scientificName", "%q already exists", s.ScientificName)
	}
	return nil
}
