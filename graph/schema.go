// path: graph/schema.go

// Package graph exposes the resolvers as a GraphQL schema.
package graph

import (
	"context"

	"github.com/RodyMacay/biodiversity-monitoring/auth"
	"github.com/RodyMacay/biodiversity-monitoring/models"
	"github.com/RodyMacay/biodiversity-monitoring/resolvers"
	"github.com/graphql-go/graphql"
)

type Schema struct {
	schema graphql.Schema
	r      *resolvers.Resolver
}

// Request is the body of a GraphQL call.
type Request struct {
	Query         string                 `json:"query"`
	Variables     map[string]interface{} `json:"variables"`
	OperationName string                 `json:"operationName"`
}

func New(r *resolvers.Resolver) (*Schema, error) {
	b := &builder{r: r}
	b.objectTypes()
	schema, err := graphql.NewSchema(graphql.SchemaConfig{
		Query:    b.query(),
		Mutation: b.mutation(),
	})
	if err != nil {
		return nil, err
	}
	return &Schema{schema: schema, r: r}, nil
}

// Do executes req. The caller's identity is read from ctx (see
// auth.WithRequest).
func (s *Schema) Do(ctx context.Context, req Request) *graphql.Result {
	return graphql.Do(graphql.Params{
		Schema:         s.schema,
		RequestString:  req.Query,
		VariableValues: req.Variables,
		OperationName:  req.OperationName,
		Context:        ctx,
	})
}

type builder struct {
	r *resolvers.Resolver

	species     *graphql.Object
	method      *graphql.Object
	location    *graphql.Object
	observation *graphql.Object
	dashboard   *graphql.Object
}

func requestOf(p graphql.ResolveParams) auth.RequestContext {
	return auth.FromContext(p.Context)
}

func (b *builder) objectTypes() {
	b.species = graphql.NewObject(graphql.ObjectConfig{
		Name: "Species",
		Fields: auditFields(graphql.Fields{
			"name":               &graphql.Field{Type: nonNull(graphql.String)},
			"scientificName":     &graphql.Field{Type: nonNull(graphql.String)},
			"description":        &graphql.Field{Type: graphql.String},
			"conservationStatus": &graphql.Field{Type: nonNull(conservationStatusEnum)},
			"imageUrl":           &graphql.Field{Type: graphql.String},
			"habitat":            &graphql.Field{Type: graphql.String},
		},
			func(s *models.Species) interface{} { return hexID(s.ID) },
			func(s *models.Species) *models.Audit { return &s.Audit },
		),
	})

	b.method = graphql.NewObject(graphql.ObjectConfig{
		Name: "MonitoringMethod",
		Fields: auditFields(graphql.Fields{
			"name":           &graphql.Field{Type: nonNull(graphql.String)},
			"type":           &graphql.Field{Type: nonNull(methodTypeEnum)},
			"description":    &graphql.Field{Type: nonNull(graphql.String)},
			"applications":   &graphql.Field{Type: listOf(graphql.String), Resolve: resolveOn(func(m *models.MonitoringMethod) interface{} { return orEmpty(m.Applications) })},
			"accuracy":       &graphql.Field{Type: graphql.Float},
			"costEfficiency": &graphql.Field{Type: nonNull(costEfficiencyEnum)},
			"equipment":      &graphql.Field{Type: listOf(graphql.String), Resolve: resolveOn(func(m *models.MonitoringMethod) interface{} { return orEmpty(m.Equipment) })},
		},
			func(m *models.MonitoringMethod) interface{} { return hexID(m.ID) },
			func(m *models.MonitoringMethod) *models.Audit { return &m.Audit },
		),
	})

	b.location = graphql.NewObject(graphql.ObjectConfig{
		Name: "Location",
		Fields: auditFields(graphql.Fields{
			"name":             &graphql.Field{Type: nonNull(graphql.String)},
			"coordinates":      &graphql.Field{Type: nonNull(coordinatesType)},
			"description":      &graphql.Field{Type: graphql.String},
			"ecosystem":        &graphql.Field{Type: nonNull(ecosystemEnum)},
			"area":             &graphql.Field{Type: graphql.Float},
			"protectionStatus": &graphql.Field{Type: nonNull(protectionStatusEnum)},
			"country":          &graphql.Field{Type: nonNull(graphql.String)},
			"region":           &graphql.Field{Type: graphql.String},
		},
			func(l *models.Location) interface{} { return hexID(l.ID) },
			func(l *models.Location) *models.Audit { return &l.Audit },
		),
	})

	// Relations are nullable: a deleted species, method or location leaves
	// the observation pointing at nothing.
	b.observation = graphql.NewObject(graphql.ObjectConfig{
		Name: "MonitoringData",
		Fields: auditFields(graphql.Fields{
			"species": &graphql.Field{Type: b.species, Resolve: resolveOn(func(o *models.Observation) interface{} {
				return nullable(o.Species)
			})},
			"method": &graphql.Field{Type: b.method, Resolve: resolveOn(func(o *models.Observation) interface{} {
				return nullable(o.Method)
			})},
			"location": &graphql.Field{Type: b.location, Resolve: resolveOn(func(o *models.Observation) interface{} {
				return nullable(o.Location)
			})},
			"date": &graphql.Field{Type: nonNull(graphql.String), Resolve: resolveOn(func(o *models.Observation) interface{} {
				return timestamp(o.Date)
			})},
			"value": &graphql.Field{Type: nonNull(graphql.Float), Resolve: resolveOn(func(o *models.Observation) interface{} {
				return o.Value
			})},
			"unit": &graphql.Field{Type: nonNull(graphql.String), Resolve: resolveOn(func(o *models.Observation) interface{} {
				return o.Unit
			})},
			"notes": &graphql.Field{Type: graphql.String, Resolve: resolveOn(func(o *models.Observation) interface{} {
				return nullable(o.Notes)
			})},
			"dataQuality": &graphql.Field{Type: nonNull(dataQualityEnum), Resolve: resolveOn(func(o *models.Observation) interface{} {
				return o.DataQuality
			})},
			"confidence": &graphql.Field{Type: nonNull(graphql.Float), Resolve: resolveOn(func(o *models.Observation) interface{} {
				return o.Confidence
			})},
			"weather": &graphql.Field{Type: weatherType, Resolve: resolveOn(func(o *models.Observation) interface{} {
				return nullable(o.Weather)
			})},
			"researcher": &graphql.Field{Type: nonNull(graphql.String), Resolve: resolveOn(func(o *models.Observation) interface{} {
				return o.Researcher
			})},
			"verified": &graphql.Field{Type: nonNull(graphql.Boolean), Resolve: resolveOn(func(o *models.Observation) interface{} {
				return o.Verified
			})},
			"verifiedBy": &graphql.Field{Type: graphql.String, Resolve: resolveOn(func(o *models.Observation) interface{} {
				return nullable(o.VerifiedBy)
			})},
			"verifiedAt": &graphql.Field{Type: graphql.String, Resolve: resolveOn(func(o *models.Observation) interface{} {
				return optTimestamp(o.VerifiedAt)
			})},
			"attachments": &graphql.Field{Type: listOf(attachmentType), Resolve: resolveOn(func(o *models.Observation) interface{} {
				return orEmpty(o.Attachments)
			})},
		},
			func(o *models.Observation) interface{} { return hexID(o.ID) },
			func(o *models.Observation) *models.Audit { return &o.Audit },
		),
	})

	b.species.AddFieldConfig("monitoringData", &graphql.Field{
		Type: listOf(b.observation),
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			return b.r.SpeciesObservations(p.Context, source[models.Species](p))
		},
	})
	b.method.AddFieldConfig("monitoringData", &graphql.Field{
		Type: listOf(b.observation),
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			return b.r.MethodObservations(p.Context, source[models.MonitoringMethod](p))
		},
	})
	b.location.AddFieldConfig("monitoringData", &graphql.Field{
		Type: listOf(b.observation),
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			return b.r.LocationObservations(p.Context, source[models.Location](p))
		},
	})

	b.dashboard = graphql.NewObject(graphql.ObjectConfig{
		Name: "DashboardStats",
		Fields: graphql.Fields{
			"totalSpecies":        &graphql.Field{Type: nonNull(graphql.Int)},
			"totalMethods":        &graphql.Field{Type: nonNull(graphql.Int)},
			"totalLocations":      &graphql.Field{Type: nonNull(graphql.Int)},
			"totalMonitoringData": &graphql.Field{Type: nonNull(graphql.Int)},
			"recentData":          &graphql.Field{Type: listOf(b.observation)},
			"speciesByStatus":     &graphql.Field{Type: listOf(statusCountType)},
			"methodsByType":       &graphql.Field{Type: listOf(methodTypeCountType)},
			"dataByMonth":         &graphql.Field{Type: listOf(monthlyCountType)},
		},
	})
}

// nullable turns a typed nil pointer into an untyped nil so the executor
// emits null.
func nullable[T any](v *T) interface{} {
	if v == nil {
		return nil
	}
	return v
}

func orEmpty[T any](v []T) []T {
	if v == nil {
		return []T{}
	}
	return v
}
