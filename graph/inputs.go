// path: graph/inputs.go
package graph

import (
	"fmt"

	"github.com/goccy/go-json"
	"github.com/graphql-go/graphql"
)

// Input fields are nullable so one input type serves create and partial
// update; required fields are enforced by model validation.

var coordinatesInput = graphql.NewInputObject(graphql.InputObjectConfig{
	Name: "CoordinatesInput",
	Fields: graphql.InputObjectConfigFieldMap{
		"latitude":  &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.Float)},
		"longitude": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.Float)},
	},
})

var weatherInput = graphql.NewInputObject(graphql.InputObjectConfig{
	Name: "WeatherInput",
	Fields: graphql.InputObjectConfigFieldMap{
		"temperature": &graphql.InputObjectFieldConfig{Type: graphql.Float},
		"humidity":    &graphql.InputObjectFieldConfig{Type: graphql.Float},
		"conditions":  &graphql.InputObjectFieldConfig{Type: graphql.String},
	},
})

var attachmentInput = graphql.NewInputObject(graphql.InputObjectConfig{
	Name: "AttachmentInput",
	Fields: graphql.InputObjectConfigFieldMap{
		"filename": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		"url":      &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		"type":     &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(attachmentTypeEnum)},
	},
})

var userInput = graphql.NewInputObject(graphql.InputObjectConfig{
	Name: "UserInput",
	Fields: graphql.InputObjectConfigFieldMap{
		"clerkId":        &graphql.InputObjectFieldConfig{Type: graphql.String},
		"email":          &graphql.InputObjectFieldConfig{Type: graphql.String},
		"firstName":      &graphql.InputObjectFieldConfig{Type: graphql.String},
		"lastName":       &graphql.InputObjectFieldConfig{Type: graphql.String},
		"role":           &graphql.InputObjectFieldConfig{Type: userRoleEnum},
		"institution":    &graphql.InputObjectFieldConfig{Type: graphql.String},
		"specialization": &graphql.InputObjectFieldConfig{Type: graphql.String},
		"isActive":       &graphql.InputObjectFieldConfig{Type: graphql.Boolean},
	},
})

var speciesInput = graphql.NewInputObject(graphql.InputObjectConfig{
	Name: "SpeciesInput",
	Fields: graphql.InputObjectConfigFieldMap{
		"name":               &graphql.InputObjectFieldConfig{Type: graphql.String},
		"scientificName":     &graphql.InputObjectFieldConfig{Type: graphql.String},
		"description":        &graphql.InputObjectFieldConfig{Type: graphql.String},
		"conservationStatus": &graphql.InputObjectFieldConfig{Type: conservationStatusEnum},
		"imageUrl":           &graphql.InputObjectFieldConfig{Type: graphql.String},
		"habitat":            &graphql.InputObjectFieldConfig{Type: graphql.String},
	},
})

var methodInput = graphql.NewInputObject(graphql.InputObjectConfig{
	Name: "MonitoringMethodInput",
	Fields: graphql.InputObjectConfigFieldMap{
		"name":           &graphql.InputObjectFieldConfig{Type: graphql.String},
		"type":           &graphql.InputObjectFieldConfig{Type: methodTypeEnum},
		"description":    &graphql.InputObjectFieldConfig{Type: graphql.String},
		"applications":   &graphql.InputObjectFieldConfig{Type: graphql.NewList(graphql.NewNonNull(graphql.String))},
		"accuracy":       &graphql.InputObjectFieldConfig{Type: graphql.Float},
		"costEfficiency": &graphql.InputObjectFieldConfig{Type: costEfficiencyEnum},
		"equipment":      &graphql.InputObjectFieldConfig{Type: graphql.NewList(graphql.NewNonNull(graphql.String))},
	},
})

var locationInput = graphql.NewInputObject(graphql.InputObjectConfig{
	Name: "LocationInput",
	Fields: graphql.InputObjectConfigFieldMap{
		"name":             &graphql.InputObjectFieldConfig{Type: graphql.String},
		"coordinates":      &graphql.InputObjectFieldConfig{Type: coordinatesInput},
		"description":      &graphql.InputObjectFieldConfig{Type: graphql.String},
		"ecosystem":        &graphql.InputObjectFieldConfig{Type: ecosystemEnum},
		"area":             &graphql.InputObjectFieldConfig{Type: graphql.Float},
		"protectionStatus": &graphql.InputObjectFieldConfig{Type: protectionStatusEnum},
		"country":          &graphql.InputObjectFieldConfig{Type: graphql.String},
		"region":           &graphql.InputObjectFieldConfig{Type: graphql.String},
	},
})

var monitoringDataInput = graphql.NewInputObject(graphql.InputObjectConfig{
	Name: "MonitoringDataInput",
	Fields: graphql.InputObjectConfigFieldMap{
		"speciesId":   &graphql.InputObjectFieldConfig{Type: graphql.ID},
		"methodId":    &graphql.InputObjectFieldConfig{Type: graphql.ID},
		"locationId":  &graphql.InputObjectFieldConfig{Type: graphql.ID},
		"date":        &graphql.InputObjectFieldConfig{Type: graphql.String},
		"value":       &graphql.InputObjectFieldConfig{Type: graphql.Float},
		"unit":        &graphql.InputObjectFieldConfig{Type: graphql.String},
		"notes":       &graphql.InputObjectFieldConfig{Type: graphql.String},
		"dataQuality": &graphql.InputObjectFieldConfig{Type: dataQualityEnum},
		"confidence":  &graphql.InputObjectFieldConfig{Type: graphql.Float},
		"weather":     &graphql.InputObjectFieldConfig{Type: weatherInput},
		"researcher":  &graphql.InputObjectFieldConfig{Type: graphql.String},
		"attachments": &graphql.InputObjectFieldConfig{Type: graphql.NewList(graphql.NewNonNull(attachmentInput))},
	},
})

// decodeInput copies the coerced "input" argument into one of the models
// input structs through its json tags.
func decodeInput(p graphql.ResolveParams, dst interface{}) error {
	raw, err := json.Marshal(p.Args["input"])
	if err != nil {
		return fmt.Errorf("encode input: %w", err)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("decode input: %w", err)
	}
	return nil
}
