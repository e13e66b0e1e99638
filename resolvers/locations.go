// path: resolvers/locations.go
package resolvers

import (
	"context"
	"strings"

	"github.com/RodyMacay/biodiversity-monitoring/auth"
	"github.com/RodyMacay/biodiversity-monitoring/models"
	"github.com/RodyMacay/biodiversity-monitoring/store"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func (r *Resolver) Locations(ctx context.Context) ([]models.Location, error) {
	return list(ctx, r, r.repo.Locations(), "locations.list", store.Query{Sort: byName})
}

func (r *Resolver) LocationByID(ctx context.Context, id string) (*models.Location, error) {
	return getByID(ctx, r, r.repo.Locations(), "locations.get", id)
}

func (r *Resolver) LocationsByEcosystem(ctx context.Context, e models.Ecosystem) ([]models.Location, error) {
	return list(ctx, r, r.repo.Locations(), "locations.byEcosystem", store.Query{
		Filter: bson.M{"ecosystem": e},
		Sort:   byName,
	})
}

// LocationsByCountry matches the stored country exactly, after trimming.
func (r *Resolver) LocationsByCountry(ctx context.Context, country string) ([]models.Location, error) {
	return list(ctx, r, r.repo.Locations(), "locations.byCountry", store.Query{
		Filter: bson.M{"country": strings.TrimSpace(country)},
		Sort:   byName,
	})
}

func (r *Resolver) CreateLocation(ctx context.Context, rc auth.RequestContext, in models.LocationInput) (*models.Location, error) {
	caller, err := auth.RequireAuth(rc)
	if err != nil {
		return nil, err
	}
	l := &models.Location{
		ID:               primitive.NewObjectID(),
		ProtectionStatus: models.Unprotected,
	}
	if in.Coordinates == nil {
		return nil, models.Invalid("coordinates", "is required")
	}
	in.Apply(l)
	if err := l.Validate(); err != nil {
		return nil, err
	}
	r.stamp(&l.Audit, caller.Subject)
	if err := r.repo.Locations().Insert(ctx, l); err != nil {
		return nil, r.storeErr("locations.create", err)
	}
	return l, nil
}

func (r *Resolver) UpdateLocation(ctx context.Context, rc auth.RequestContext, id string, in models.LocationInput) (*models.Location, error) {
	if _, err := auth.RequireAuth(rc); err != nil {
		return nil, err
	}
	l, oid, err := loadForUpdate(ctx, r, r.repo.Locations(), "locations.update", "location", id)
	if err != nil {
		return nil, err
	}
	in.Apply(l)
	if err := l.Validate(); err != nil {
		return nil, err
	}
	l.UpdatedAt = r.clock()
	if err := replace(ctx, r, r.repo.Locations(), "locations.update", "location", oid, l); err != nil {
		return nil, err
	}
	return l, nil
}

func (r *Resolver) DeleteLocation(ctx context.Context, rc auth.RequestContext, id string) (bool, error) {
	if _, err := auth.RequireAdmin(rc); err != nil {
		return false, err
	}
	return deleteByID(ctx, r, r.repo.Locations(), "locations.delete", id)
}

// LocationObservations resolves Location.monitoringData.
func (r *Resolver) LocationObservations(ctx context.Context, l *models.Location) ([]*models.Observation, error) {
	return r.observationsWhere(ctx, bson.M{"location": l.ID}, preset{location: l})
}
