// path: graph/operations.go
package graph

import (
	"github.com/RodyMacay/biodiversity-monitoring/models"
	"github.com/graphql-go/graphql"
)

func idArg(name string) graphql.FieldConfigArgument {
	return graphql.FieldConfigArgument{name: &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)}}
}

func inputArgs(input *graphql.InputObject, withID bool) graphql.FieldConfigArgument {
	args := graphql.FieldConfigArgument{"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(input)}}
	if withID {
		args["id"] = &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)}
	}
	return args
}

func str(p graphql.ResolveParams, name string) string {
	s, _ := p.Args[name].(string)
	return s
}

func (b *builder) query() *graphql.Object {
	r := b.r
	return graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"me": &graphql.Field{
				Type: userType,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return r.Me(p.Context, requestOf(p))
				},
			},
			"users": &graphql.Field{
				Type: listOf(userType),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return r.Users(p.Context, requestOf(p))
				},
			},
			"user": &graphql.Field{
				Type: userType,
				Args: idArg("id"),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return r.User(p.Context, requestOf(p), str(p, "id"))
				},
			},

			"species": &graphql.Field{
				Type: listOf(b.species),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return r.Species(p.Context)
				},
			},
			"speciesById": &graphql.Field{
				Type: b.species,
				Args: idArg("id"),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return r.SpeciesByID(p.Context, str(p, "id"))
				},
			},
			"speciesByStatus": &graphql.Field{
				Type: listOf(b.species),
				Args: graphql.FieldConfigArgument{
					"status": &graphql.ArgumentConfig{Type: graphql.NewNonNull(conservationStatusEnum)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					status, _ := p.Args["status"].(models.ConservationStatus)
					return r.SpeciesByStatus(p.Context, status)
				},
			},

			"monitoringMethods": &graphql.Field{
				Type: listOf(b.method),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return r.MonitoringMethods(p.Context)
				},
			},
			"monitoringMethodById": &graphql.Field{
				Type: b.method,
				Args: idArg("id"),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return r.MonitoringMethodByID(p.Context, str(p, "id"))
				},
			},
			"monitoringMethodsByType": &graphql.Field{
				Type: listOf(b.method),
				Args: graphql.FieldConfigArgument{
					"type": &graphql.ArgumentConfig{Type: graphql.NewNonNull(methodTypeEnum)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					t, _ := p.Args["type"].(models.MethodType)
					return r.MonitoringMethodsByType(p.Context, t)
				},
			},

			"locations": &graphql.Field{
				Type: listOf(b.location),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return r.Locations(p.Context)
				},
			},
			"locationById": &graphql.Field{
				Type: b.location,
				Args: idArg("id"),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return r.LocationByID(p.Context, str(p, "id"))
				},
			},
			"locationsByEcosystem": &graphql.Field{
				Type: listOf(b.location),
				Args: graphql.FieldConfigArgument{
					"ecosystem": &graphql.ArgumentConfig{Type: graphql.NewNonNull(ecosystemEnum)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					e, _ := p.Args["ecosystem"].(models.Ecosystem)
					return r.LocationsByEcosystem(p.Context, e)
				},
			},
			"locationsByCountry": &graphql.Field{
				Type: listOf(b.location),
				Args: graphql.FieldConfigArgument{
					"country": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return r.LocationsByCountry(p.Context, str(p, "country"))
				},
			},

			"monitoringData": &graphql.Field{
				Type: listOf(b.observation),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return r.MonitoringData(p.Context)
				},
			},
			"monitoringDataById": &graphql.Field{
				Type: b.observation,
				Args: idArg("id"),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return r.MonitoringDataByID(p.Context, str(p, "id"))
				},
			},
			"monitoringDataBySpecies": &graphql.Field{
				Type: listOf(b.observation),
				Args: idArg("speciesId"),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return r.MonitoringDataBySpecies(p.Context, str(p, "speciesId"))
				},
			},
			"monitoringDataByMethod": &graphql.Field{
				Type: listOf(b.observation),
				Args: idArg("methodId"),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return r.MonitoringDataByMethod(p.Context, str(p, "methodId"))
				},
			},
			"monitoringDataByLocation": &graphql.Field{
				Type: listOf(b.observation),
				Args: idArg("locationId"),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return r.MonitoringDataByLocation(p.Context, str(p, "locationId"))
				},
			},
			"monitoringDataByDateRange": &graphql.Field{
				Type: listOf(b.observation),
				Args: graphql.FieldConfigArgument{
					"startDate": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"endDate":   &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return r.MonitoringDataByDateRange(p.Context, str(p, "startDate"), str(p, "endDate"))
				},
			},

			"dashboardStats": &graphql.Field{
				Type: graphql.NewNonNull(b.dashboard),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return r.DashboardStats(p.Context)
				},
			},
		},
	})
}

func (b *builder) mutation() *graphql.Object {
	r := b.r
	return graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"createUser": &graphql.Field{
				Type: nonNull(userType),
				Args: inputArgs(userInput, false),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					var in models.UserInput
					if err := decodeInput(p, &in); err != nil {
						return nil, err
					}
					return r.CreateUser(p.Context, requestOf(p), in)
				},
			},
			"updateUser": &graphql.Field{
				Type: nonNull(userType),
				Args: inputArgs(userInput, true),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					var in models.UserInput
					if err := decodeInput(p, &in); err != nil {
						return nil, err
					}
					return r.UpdateUser(p.Context, requestOf(p), str(p, "id"), in)
				},
			},
			"deleteUser": &graphql.Field{
				Type: nonNull(graphql.Boolean),
				Args: idArg("id"),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return r.DeleteUser(p.Context, requestOf(p), str(p, "id"))
				},
			},

			"createSpecies": &graphql.Field{
				Type: nonNull(b.species),
				Args: inputArgs(speciesInput, false),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					var in models.SpeciesInput
					if err := decodeInput(p, &in); err != nil {
						return nil, err
					}
					return r.CreateSpecies(p.Context, requestOf(p), in)
				},
			},
			"updateSpecies": &graphql.Field{
				Type: nonNull(b.species),
				Args: inputArgs(speciesInput, true),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					var in models.SpeciesInput
					if err := decodeInput(p, &in); err != nil {
						return nil, err
					}
					return r.UpdateSpecies(p.Context, requestOf(p), str(p, "id"), in)
				},
			},
			"deleteSpecies": &graphql.Field{
				Type: nonNull(graphql.Boolean),
				Args: idArg("id"),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return r.DeleteSpecies(p.Context, requestOf(p), str(p, "id"))
				},
			},

			"createMonitoringMethod": &graphql.Field{
				Type: nonNull(b.method),
				Args: inputArgs(methodInput, false),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					var in models.MonitoringMethodInput
					if err := decodeInput(p, &in); err != nil {
						return nil, err
					}
					return r.CreateMonitoringMethod(p.Context, requestOf(p), in)
				},
			},
			"updateMonitoringMethod": &graphql.Field{
				Type: nonNull(b.method),
				Args: inputArgs(methodInput, true),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					var in models.MonitoringMethodInput
					if err := decodeInput(p, &in); err != nil {
						return nil, err
					}
					return r.UpdateMonitoringMethod(p.Context, requestOf(p), str(p, "id"), in)
				},
			},
			"deleteMonitoringMethod": &graphql.Field{
				Type: nonNull(graphql.Boolean),
				Args: idArg("id"),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return r.DeleteMonitoringMethod(p.Context, requestOf(p), str(p, "id"))
				},
			},

			"createLocation": &graphql.Field{
				Type: nonNull(b.location),
				Args: inputArgs(locationInput, false),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					var in models.LocationInput
					if err := decodeInput(p, &in); err != nil {
						return nil, err
					}
					return r.CreateLocation(p.Context, requestOf(p), in)
				},
			},
			"updateLocation": &graphql.Field{
				Type: nonNull(b.location),
				Args: inputArgs(locationInput, true),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					var in models.LocationInput
					if err := decodeInput(p, &in); err != nil {
						return nil, err
					}
					return r.UpdateLocation(p.Context, requestOf(p), str(p, "id"), in)
				},
			},
			"deleteLocation": &graphql.Field{
				Type: nonNull(graphql.Boolean),
				Args: idArg("id"),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return r.DeleteLocation(p.Context, requestOf(p), str(p, "id"))
				},
			},

			"createMonitoringData": &graphql.Field{
				Type: nonNull(b.observation),
				Args: inputArgs(monitoringDataInput, false),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					var in models.MonitoringDataInput
					if err := decodeInput(p, &in); err != nil {
						return nil, err
					}
					return r.CreateMonitoringData(p.Context, requestOf(p), in)
				},
			},
			"updateMonitoringData": &graphql.Field{
				Type: nonNull(b.observation),
				Args: inputArgs(monitoringDataInput, true),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					var in models.MonitoringDataInput
					if err := decodeInput(p, &in); err != nil {
						return nil, err
					}
					return r.UpdateMonitoringData(p.Context, requestOf(p), str(p, "id"), in)
				},
			},
			"deleteMonitoringData": &graphql.Field{
				Type: nonNull(graphql.Boolean),
				Args: idArg("id"),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return r.DeleteMonitoringData(p.Context, requestOf(p), str(p, "id"))
				},
			},
			"verifyMonitoringData": &graphql.Field{
				Type: nonNull(b.observation),
				Args: idArg("id"),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return r.VerifyMonitoringData(p.Context, requestOf(p), str(p, "id"))
				},
			},
		},
	})
}
