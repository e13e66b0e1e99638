// path: resolvers/methods.go
package resolvers

import (
	"context"

	"github.com/RodyMacay/biodiversity-monitoring/auth"
	"github.com/RodyMacay/biodiversity-monitoring/models"
	"github.com/RodyMacay/biodiversity-monitoring/store"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func (r *Resolver) MonitoringMethods(ctx context.Context) ([]models.MonitoringMethod, error) {
	return list(ctx, r, r.repo.Methods(), "methods.list", store.Query{Sort: byName})
}

func (r *Resolver) MonitoringMethodByID(ctx context.Context, id string) (*models.MonitoringMethod, error) {
	return getByID(ctx, r, r.repo.Methods(), "methods.get", id)
}

func (r *Resolver) MonitoringMethodsByType(ctx context.Context, t models.MethodType) ([]models.MonitoringMethod, error) {
	return list(ctx, r, r.repo.Methods(), "methods.byType", store.Query{
		Filter: bson.M{"type": t},
		Sort:   byName,
	})
}

func (r *Resolver) CreateMonitoringMethod(ctx context.Context, rc auth.RequestContext, in models.MonitoringMethodInput) (*models.MonitoringMethod, error) {
	caller, err := auth.RequireAuth(rc)
	if err != nil {
		return nil, err
	}
	m := &models.MonitoringMethod{
		ID:             primitive.NewObjectID(),
		Applications:   []string{},
		Equipment:      []string{},
		CostEfficiency: models.CostMedium,
	}
	in.Apply(m)
	if err := m.Validate(); err != nil {
		return nil, err
	}
	r.stamp(&m.Audit, caller.Subject)
	if err := r.repo.Methods().Insert(ctx, m); err != nil {
		return nil, r.storeErr("methods.create", err)
	}
	return m, nil
}

func (r *Resolver) UpdateMonitoringMethod(ctx context.Context, rc auth.RequestContext, id string, in models.MonitoringMethodInput) (*models.MonitoringMethod, error) {
	if _, err := auth.RequireAuth(rc); err != nil {
		return nil, err
	}
	m, oid, err := loadForUpdate(ctx, r, r.repo.Methods(), "methods.update", "monitoring method", id)
	if err != nil {
		return nil, err
	}
	in.Apply(m)
	if err := m.Validate(); err != nil {
		return nil, err
	}
	m.UpdatedAt = r.clock()
	if err := replace(ctx, r, r.repo.Methods(), "methods.update", "monitoring method", oid, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (r *Resolver) DeleteMonitoringMethod(ctx context.Context, rc auth.RequestContext, id string) (bool, error) {
	if _, err := auth.RequireAdmin(rc); err != nil {
		return false, err
	}
	return deleteByID(ctx, r, r.repo.Methods(), "methods.delete", id)
}

// MethodObservations resolves MonitoringMethod.monitoringData.
func (r *Resolver) MethodObservations(ctx context.Context, m *models.MonitoringMethod) ([]*models.Observation, error) {
	return r.observationsWhere(ctx, bson.M{"method": m.ID}, preset{method: m})
}
