// path: resolvers/monitoring.go
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

var byDateDesc = bson.D{{Key: "date", Value: -1}, {Key: "_id", Value: -1}}

func (r *Resolver) MonitoringData(ctx context.Context) ([]*models.Observation, error) {
	return r.observationsWhere(ctx, nil, preset{})
}

func (r *Resolver) MonitoringDataByID(ctx context.Context, id string) (*models.Observation, error) {
	d, err := getByID(ctx, r, r.repo.Observations(), "observations.get", id)
	if err != nil || d == nil {
		return nil, err
	}
	return r.observe(ctx, d)
}

// MonitoringDataBySpecies and its siblings return an empty list for
// malformed ids.
func (r *Resolver) MonitoringDataBySpecies(ctx context.Context, speciesID string) ([]*models.Observation, error) {
	return r.observationsByRef(ctx, "species", speciesID)
}

func (r *Resolver) MonitoringDataByMethod(ctx context.Context, methodID string) ([]*models.Observation, error) {
	return r.observationsByRef(ctx, "method", methodID)
}

func (r *Resolver) MonitoringDataByLocation(ctx context.Context, locationID string) ([]*models.Observation, error) {
	return r.observationsByRef(ctx, "location", locationID)
}

// MonitoringDataByDateRange returns observations dated within [start, end].
func (r *Resolver) MonitoringDataByDateRange(ctx context.Context, start, end string) ([]*models.Observation, error) {
	from, err := models.ParseDate(start)
	if err != nil {
		return nil, models.Invalid("startDate", "unrecognised date %q", start)
	}
	to, err := models.ParseDate(end)
	if err != nil {
		return nil, models.Invalid("endDate", "unrecognised date %q", end)
	}
	return r.observationsWhere(ctx, bson.M{"date": bson.M{"$gte": from, "$lte": to}}, preset{})
}

func (r *Resolver) CreateMonitoringData(ctx context.Context, rc auth.RequestContext, in models.MonitoringDataInput) (*models.Observation, error) {
	caller, err := auth.RequireAuth(rc)
	if err != nil {
		return nil, err
	}
	now := r.clock()
	d := &models.MonitoringData{
		ID:          primitive.NewObjectID(),
		Date:        now,
		DataQuality: models.QualityMedium,
		Confidence:  50,
		Attachments: []models.Attachment{},
	}
	if err := in.Apply(d); err != nil {
		return nil, err
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	obs, err := r.observe(ctx, d)
	if err != nil {
		return nil, err
	}
	switch {
	case obs.Species == nil:
		return nil, models.Invalid("speciesId", "species %s does not exist", d.SpeciesID.Hex())
	case obs.Method == nil:
		return nil, models.Invalid("methodId", "monitoring method %s does not exist", d.MethodID.Hex())
	case obs.Location == nil:
		return nil, models.Invalid("locationId", "location %s does not exist", d.LocationID.Hex())
	}
	r.stamp(&d.Audit, caller.Subject)
	if err := r.repo.Observations().Insert(ctx, d); err != nil {
		return nil, r.storeErr("observations.create", err)
	}
	return obs, nil
}

// UpdateMonitoringData trusts the supplied relation ids; a dangling one
// resolves to null on read.
func (r *Resolver) UpdateMonitoringData(ctx context.Context, rc auth.RequestContext, id string, in models.MonitoringDataInput) (*models.Observation, error) {
	if _, err := auth.RequireAuth(rc); err != nil {
		return nil, err
	}
	d, oid, err := loadForUpdate(ctx, r, r.repo.Observations(), "observations.update", "monitoring data", id)
	if err != nil {
		return nil, err
	}
	if err := in.Apply(d); err != nil {
		return nil, err
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	d.UpdatedAt = r.clock()
	if err := replace(ctx, r, r.repo.Observations(), "observations.update", "monitoring data", oid, d); err != nil {
		return nil, err
	}
	return r.observe(ctx, d)
}

func (r *Resolver) DeleteMonitoringData(ctx context.Context, rc auth.RequestContext, id string) (bool, error) {
	if _, err := auth.RequireAdmin(rc); err != nil {
		return false, err
	}
	return deleteByID(ctx, r, r.repo.Observations(), "observations.delete", id)
}

// VerifyMonitoringData stamps the record as reviewed by the caller. Calling
// it again re-stamps verifier and time.
func (r *Resolver) VerifyMonitoringData(ctx context.Context, rc auth.RequestContext, id string) (*models.Observation, error) {
	caller, err := auth.RequireAdmin(rc)
	if err != nil {
		return nil, err
	}
	oid, err := models.ParseID("id", id)
	if err != nil {
		return nil, err
	}
	now := r.clock()
	d, err := r.repo.Observations().Update(ctx, oid, bson.M{
		"verified":   true,
		"verifiedBy": caller.Subject,
		"verifiedAt": now,
		"updatedAt":  now,
	})
	if err != nil {
		return nil, r.storeErr("observations.verify", err)
	}
	if d == nil {
		return nil, notFound("monitoring data", id)
	}
	return r.observe(ctx, d)
}

func (r *Resolver) observationsByRef(ctx context.Context, field, id string) ([]*models.Observation, error) {
	oid, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return []*models.Observation{}, nil
	}
	return r.observationsWhere(ctx, bson.M{field: oid}, preset{})
}

func (r *Resolver) observationsWhere(ctx context.Context, filter bson.M, p preset) ([]*models.Observation, error) {
	docs, err := list(ctx, r, r.repo.Observations(), "observations.list", store.Query{Filter: filter, Sort: byDateDesc})
	if err != nil {
		return nil, err
	}
	return r.observeAll(ctx, docs, p)
}
