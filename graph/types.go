// path: graph/types.go
package graph

import (
	"time"

	"github.com/RodyMacay/biodiversity-monitoring/models"
	"github.com/graphql-go/graphql"
)

// source accepts both the value and pointer form of a resolved object;
// list fields hand out values, single lookups pointers.
func source[S any](p graphql.ResolveParams) *S {
	switch v := p.Source.(type) {
	case *S:
		return v
	case S:
		return &v
	}
	return nil
}

func resolveOn[S any](fn func(*S) interface{}) graphql.FieldResolveFn {
	return func(p graphql.ResolveParams) (interface{}, error) {
		src := source[S](p)
		if src == nil {
			return nil, nil
		}
		return fn(src), nil
	}
}

func timestamp(t time.Time) interface{} {
	if t.IsZero() {
		return nil
	}
	return t.UTC().Format(time.RFC3339Nano)
}

func optTimestamp(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return timestamp(*t)
}

func nonNull(t graphql.Output) graphql.Output { return graphql.NewNonNull(t) }

func listOf(t graphql.Type) graphql.Output {
	return graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(t)))
}

func hexID(id interface{ Hex() string }) interface{} { return id.Hex() }

// auditFields adds id, createdBy, createdAt and updatedAt to an object type.
func auditFields[S any](fields graphql.Fields, id func(*S) interface{}, audit func(*S) *models.Audit) graphql.Fields {
	fields["id"] = &graphql.Field{Type: nonNull(graphql.ID), Resolve: resolveOn(id)}
	fields["createdBy"] = &graphql.Field{Type: nonNull(graphql.String), Resolve: resolveOn(func(s *S) interface{} {
		return audit(s).CreatedBy
	})}
	fields["createdAt"] = &graphql.Field{Type: nonNull(graphql.String), Resolve: resolveOn(func(s *S) interface{} {
		return timestamp(audit(s).CreatedAt)
	})}
	fields["updatedAt"] = &graphql.Field{Type: nonNull(graphql.String), Resolve: resolveOn(func(s *S) interface{} {
		return timestamp(audit(s).UpdatedAt)
	})}
	return fields
}

var coordinatesType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Coordinates",
	Fields: graphql.Fields{
		"latitude":  &graphql.Field{Type: nonNull(graphql.Float)},
		"longitude": &graphql.Field{Type: nonNull(graphql.Float)},
	},
})

var weatherType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Weather",
	Fields: graphql.Fields{
		"temperature": &graphql.Field{Type: graphql.Float},
		"humidity":    &graphql.Field{Type: graphql.Float},
		"conditions":  &graphql.Field{Type: graphql.String},
	},
})

var attachmentType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Attachment",
	Fields: graphql.Fields{
		"filename": &graphql.Field{Type: nonNull(graphql.String)},
		"url":      &graphql.Field{Type: nonNull(graphql.String)},
		"type":     &graphql.Field{Type: nonNull(attachmentTypeEnum)},
	},
})

var notificationSettingsType = graphql.NewObject(graphql.ObjectConfig{
	Name: "NotificationSettings",
	Fields: graphql.Fields{
		"email":     &graphql.Field{Type: nonNull(graphql.Boolean)},
		"dashboard": &graphql.Field{Type: nonNull(graphql.Boolean)},
	},
})

var userPreferencesType = graphql.NewObject(graphql.ObjectConfig{
	Name: "UserPreferences",
	Fields: graphql.Fields{
		"language":      &graphql.Field{Type: nonNull(graphql.String)},
		"notifications": &graphql.Field{Type: nonNull(notificationSettingsType)},
	},
})

var userType = graphql.NewObject(graphql.ObjectConfig{
	Name: "User",
	Fields: auditFields(graphql.Fields{
		"clerkId":        &graphql.Field{Type: nonNull(graphql.String)},
		"email":          &graphql.Field{Type: nonNull(graphql.String)},
		"firstName":      &graphql.Field{Type: nonNull(graphql.String)},
		"lastName":       &graphql.Field{Type: nonNull(graphql.String)},
		"role":           &graphql.Field{Type: nonNull(userRoleEnum)},
		"institution":    &graphql.Field{Type: graphql.String},
		"specialization": &graphql.Field{Type: graphql.String},
		"isActive":       &graphql.Field{Type: nonNull(graphql.Boolean)},
		"lastLogin": &graphql.Field{Type: graphql.String, Resolve: resolveOn(func(u *models.User) interface{} {
			return optTimestamp(u.LastLogin)
		})},
		"preferences": &graphql.Field{Type: userPreferencesType},
	},
		func(u *models.User) interface{} { return hexID(u.ID) },
		func(u *models.User) *models.Audit { return &u.Audit },
	),
})

var statusCountType = graphql.NewObject(graphql.ObjectConfig{
	Name: "SpeciesStatusCount",
	Fields: graphql.Fields{
		"status": &graphql.Field{Type: nonNull(conservationStatusEnum)},
		"count":  &graphql.Field{Type: nonNull(graphql.Int)},
	},
})

var methodTypeCountType = graphql.NewObject(graphql.ObjectConfig{
	Name: "MethodTypeCount",
	Fields: graphql.Fields{
		"type":  &graphql.Field{Type: nonNull(methodTypeEnum)},
		"count": &graphql.Field{Type: nonNull(graphql.Int)},
	},
})

var monthlyCountType = graphql.NewObject(graphql.ObjectConfig{
	Name: "MonthlyDataCount",
	Fields: graphql.Fields{
		"month": &graphql.Field{Type: nonNull(graphql.String)},
		"count": &graphql.Field{Type: nonNull(graphql.Int)},
	},
})
