package graph

import (
	"context"
	"testing"
	"time"

	"github.com/RodyMacay/biodiversity-monitoring/auth"
	"github.com/RodyMacay/biodiversity-monitoring/models"
	"github.com/RodyMacay/biodiversity-monitoring/resolvers"
	"github.com/RodyMacay/biodiversity-monitoring/store"
	"github.com/goccy/go-json"
	"github.com/graphql-go/graphql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	researcherCtx = auth.WithRequest(context.Background(), auth.RequestContext{
		Identity: &auth.Identity{Subject: "user_researcher", Role: models.RoleResearcher},
	})
	adminCtx = auth.WithRequest(context.Background(), auth.RequestContext{
		Identity: &auth.Identity{Subject: "user_admin", Role: models.RoleAdministrator},
	})
)

func newTestSchema(t *testing.T) *Schema {
	t.Helper()
	now := time.Date(2024, 11, 15, 10, 0, 0, 0, time.UTC)
	r := resolvers.New(store.NewMemory(), resolvers.WithClock(func() time.Time { return now }))
	s, err := New(r)
	require.NoError(t, err)
	return s
}

func exec(t *testing.T, s *Schema, ctx context.Context, query string, vars map[string]interface{}, out interface{}) *graphql.Result {
	t.Helper()
	res := s.Do(ctx, Request{Query: query, Variables: vars})
	if out != nil && res.Data != nil {
		raw, err := json.Marshal(res.Data)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(raw, out))
	}
	return res
}

func requireOK(t *testing.T, res *graphql.Result) {
	t.Helper()
	require.Empty(t, res.Errors, "%v", res.Errors)
}

func errorCode(t *testing.T, res *graphql.Result) string {
	t.Helper()
	require.NotEmpty(t, res.Errors)
	code, _ := res.Errors[0].Extensions["code"].(string)
	return code
}

const createAll = `
mutation Seed($sp: SpeciesInput!, $loc: LocationInput!, $m: MonitoringMethodInput!) {
  species: createSpecies(input: $sp) { id conservationStatus createdBy createdAt }
  location: createLocation(input: $loc) { id protectionStatus }
  method: createMonitoringMethod(input: $m) { id type applications equipment costEfficiency }
}`

type seeded struct {
	Species struct {
		ID                 string `json:"id"`
		ConservationStatus string `json:"conservationStatus"`
		CreatedBy          string `json:"createdBy"`
		CreatedAt          string `json:"createdAt"`
	} `json:"species"`
	Location struct {
		ID               string `json:"id"`
		ProtectionStatus string `json:"protectionStatus"`
	} `json:"location"`
	Method struct {
		ID             string   `json:"id"`
		Type           string   `json:"type"`
		Applications   []string `json:"applications"`
		Equipment      []string `json:"equipment"`
		CostEfficiency string   `json:"costEfficiency"`
	} `json:"method"`
}

func seed(t *testing.T, s *Schema) seeded {
	t.Helper()
	var out seeded
	res := exec(t, s, researcherCtx, createAll, map[string]interface{}{
		"sp": map[string]interface{}{
			"name": "Jaguar", "scientificName": "Panthera onca", "conservationStatus": "NEAR_THREATENED",
		},
		"loc": map[string]interface{}{
			"name": "Corcovado", "country": "Costa Rica", "ecosystem": "FOREST",
			"coordinates": map[string]interface{}{"latitude": 8.54, "longitude": -83.59},
		},
		"m": map[string]interface{}{
			"name": "Camera Trap", "type": "AI", "description": "Automated recognition",
		},
	}, &out)
	requireOK(t, res)
	return out
}

func TestSchemaEndToEnd(t *testing.T) {
	s := newTestSchema(t)
	ids := seed(t, s)
	assert.Equal(t, "NEAR_THREATENED", ids.Species.ConservationStatus)
	assert.Equal(t, "user_researcher", ids.Species.CreatedBy)
	assert.Equal(t, "2024-11-15T10:00:00Z", ids.Species.CreatedAt)
	assert.Equal(t, "UNPROTECTED", ids.Location.ProtectionStatus)
	assert.Equal(t, "MEDIUM", ids.Method.CostEfficiency)
	assert.Equal(t, []string{}, ids.Method.Applications)

	res := exec(t, s, researcherCtx, `
mutation($in: MonitoringDataInput!) {
  createMonitoringData(input: $in) { id value unit confidence dataQuality verified attachments { url } }
}`, map[string]interface{}{"in": map[string]interface{}{
		"speciesId": ids.Species.ID, "methodId": ids.Method.ID, "locationId": ids.Location.ID,
		"date": "2024-10-20", "value": 15, "unit": "individuals", "confidence": 85, "researcher": "Dr. X",
	}}, nil)
	requireOK(t, res)

	var out struct {
		MonitoringDataBySpecies []struct {
			Value    float64 `json:"value"`
			Date     string  `json:"date"`
			Location struct {
				Name string `json:"name"`
			} `json:"location"`
			Method struct {
				Type string `json:"type"`
			} `json:"method"`
			Species struct {
				MonitoringData []struct {
					ID string `json:"id"`
				} `json:"monitoringData"`
			} `json:"species"`
		} `json:"monitoringDataBySpecies"`
	}
	res = exec(t, s, context.Background(), `
query($id: ID!) {
  monitoringDataBySpecies(speciesId: $id) {
    value date
    location { name }
    method { type }
    species { monitoringData { id } }
  }
}`, map[string]interface{}{"id": ids.Species.ID}, &out)
	requireOK(t, res)
	require.Len(t, out.MonitoringDataBySpecies, 1)
	got := out.MonitoringDataBySpecies[0]
	assert.Equal(t, 15.0, got.Value)
	assert.Equal(t, "2024-10-20T00:00:00Z", got.Date)
	assert.Equal(t, "Corcovado", got.Location.Name)
	assert.Equal(t, "AI", got.Method.Type)
	assert.Len(t, got.Species.MonitoringData, 1)
}

func TestSchemaErrorCodes(t *testing.T) {
	s := newTestSchema(t)
	ids := seed(t, s)

	res := exec(t, s, context.Background(), `mutation { createSpecies(input: {name: "a", scientificName: "b"}) { id } }`, nil, nil)
	assert.Equal(t, "UNAUTHENTICATED", errorCode(t, res))

	res = exec(t, s, researcherCtx, `mutation($id: ID!) { deleteSpecies(id: $id) }`, map[string]interface{}{"id": ids.Species.ID}, nil)
	assert.Equal(t, "FORBIDDEN", errorCode(t, res))

	res = exec(t, s, researcherCtx, `mutation {
  createLocation(input: {name: "Pole", country: "Nowhere", ecosystem: TUNDRA, coordinates: {latitude: 95, longitude: 0}}) { id }
}`, nil, nil)
	assert.Equal(t, "VALIDATION_ERROR", errorCode(t, res))
	assert.Equal(t, "coordinates.latitude", res.Errors[0].Extensions["field"])

	res = exec(t, s, researcherCtx, `mutation { createSpecies(input: {name: "Jaguar 2", scientificName: "Panthera onca"}) { id } }`, nil, nil)
	assert.Equal(t, "VALIDATION_ERROR", errorCode(t, res))

	res = exec(t, s, researcherCtx, `mutation { updateSpecies(id: "5f1d7f8e2b3c4a0012345678", input: {name: "x"}) { id } }`, nil, nil)
	assert.Equal(t, "NOT_FOUND", errorCode(t, res))

	var deleted struct {
		DeleteSpecies bool `json:"deleteSpecies"`
	}
	res = exec(t, s, adminCtx, `mutation($id: ID!) { deleteSpecies(id: $id) }`, map[string]interface{}{"id": ids.Species.ID}, &deleted)
	requireOK(t, res)
	assert.True(t, deleted.DeleteSpecies)
}

func TestSchemaNullableLookups(t *testing.T) {
	s := newTestSchema(t)

	var out struct {
		Me          *struct{ ID string } `json:"me"`
		SpeciesByID *struct{ ID string } `json:"speciesById"`
	}
	res := exec(t, s, context.Background(), `{ me { id } speciesById(id: "not-an-id") { id } }`, nil, &out)
	requireOK(t, res)
	assert.Nil(t, out.Me)
	assert.Nil(t, out.SpeciesByID)
}

func TestSchemaDanglingRelationIsNull(t *testing.T) {
	s := newTestSchema(t)
	ids := seed(t, s)

	var created struct {
		CreateMonitoringData struct {
			ID string `json:"id"`
		} `json:"createMonitoringData"`
	}
	res := exec(t, s, researcherCtx, `
mutation($in: MonitoringDataInput!) { createMonitoringData(input: $in) { id } }`,
		map[string]interface{}{"in": map[string]interface{}{
			"speciesId": ids.Species.ID, "methodId": ids.Method.ID, "locationId": ids.Location.ID,
			"value": 3, "unit": "calls", "researcher": "R",
		}}, &created)
	requireOK(t, res)

	res = exec(t, s, adminCtx, `mutation($id: ID!) { deleteLocation(id: $id) }`, map[string]interface{}{"id": ids.Location.ID}, nil)
	requireOK(t, res)

	var out struct {
		MonitoringDataByID struct {
			ID       string               `json:"id"`
			Location *struct{ Name string } `json:"location"`
			Species  *struct{ Name string } `json:"species"`
		} `json:"monitoringDataById"`
	}
	res = exec(t, s, context.Background(), `query($id: ID!) { monitoringDataById(id: $id) { id location { name } species { name } } }`,
		map[string]interface{}{"id": created.CreateMonitoringData.ID}, &out)
	requireOK(t, res)
	assert.Nil(t, out.MonitoringDataByID.Location)
	require.NotNil(t, out.MonitoringDataByID.Species)
	assert.Equal(t, "Jaguar", out.MonitoringDataByID.Species.Name)
}

func TestSchemaDashboard(t *testing.T) {
	s := newTestSchema(t)
	seed(t, s)

	var out struct {
		DashboardStats struct {
			TotalSpecies    int `json:"totalSpecies"`
			TotalMethods    int `json:"totalMethods"`
			SpeciesByStatus []struct {
				Status string `json:"status"`
				Count  int    `json:"count"`
			} `json:"speciesByStatus"`
			MethodsByType []struct {
				Type  string `json:"type"`
				Count int    `json:"count"`
			} `json:"methodsByType"`
			DataByMonth []struct {
				Month string `json:"month"`
			} `json:"dataByMonth"`
			RecentData []struct {
				ID string `json:"id"`
			} `json:"recentData"`
		} `json:"dashboardStats"`
	}
	res := exec(t, s, context.Background(), `{
  dashboardStats {
    totalSpecies totalMethods
    speciesByStatus { status count }
    methodsByType { type count }
    dataByMonth { month count }
    recentData { id }
  }
}`, nil, &out)
	requireOK(t, res)
	assert.Equal(t, 1, out.DashboardStats.TotalSpecies)
	assert.Equal(t, 1, out.DashboardStats.TotalMethods)
	require.Len(t, out.DashboardStats.SpeciesByStatus, 1)
	assert.Equal(t, "NEAR_THREATENED", out.DashboardStats.SpeciesByStatus[0].Status)
	require.Len(t, out.DashboardStats.MethodsByType, 1)
	assert.Equal(t, "AI", out.DashboardStats.MethodsByType[0].Type)
	assert.Empty(t, out.DashboardStats.DataByMonth)
	assert.Empty(t, out.DashboardStats.RecentData)
}

func TestSchemaVerifyAndUsers(t *testing.T) {
	s := newTestSchema(t)
	ids := seed(t, s)

	var created struct {
		CreateMonitoringData struct {
			ID string `json:"id"`
		} `json:"createMonitoringData"`
	}
	res := exec(t, s, researcherCtx, `
mutation($in: MonitoringDataInput!) { createMonitoringData(input: $in) { id } }`,
		map[string]interface{}{"in": map[string]interface{}{
			"speciesId": ids.Species.ID, "methodId": ids.Method.ID, "locationId": ids.Location.ID,
			"value": 1, "unit": "nests", "researcher": "R",
			"weather":     map[string]interface{}{"temperature": 24.5, "conditions": "clear"},
			"attachments": []interface{}{map[string]interface{}{"filename": "a.jpg", "url": "https://x/a.jpg", "type": "IMAGE"}},
		}}, &created)
	requireOK(t, res)

	var verified struct {
		VerifyMonitoringData struct {
			Verified    bool   `json:"verified"`
			VerifiedBy  string `json:"verifiedBy"`
			VerifiedAt  string `json:"verifiedAt"`
			Weather     struct {
				Temperature float64  `json:"temperature"`
				Humidity    *float64 `json:"humidity"`
			} `json:"weather"`
			Attachments []struct {
				Type string `json:"type"`
			} `json:"attachments"`
		} `json:"verifyMonitoringData"`
	}
	res = exec(t, s, adminCtx, `mutation($id: ID!) {
  verifyMonitoringData(id: $id) { verified verifiedBy verifiedAt weather { temperature humidity } attachments { type } }
}`, map[string]interface{}{"id": created.CreateMonitoringData.ID}, &verified)
	requireOK(t, res)
	v := verified.VerifyMonitoringData
	assert.True(t, v.Verified)
	assert.Equal(t, "user_admin", v.VerifiedBy)
	assert.Equal(t, "2024-11-15T10:00:00Z", v.VerifiedAt)
	assert.Equal(t, 24.5, v.Weather.Temperature)
	assert.Nil(t, v.Weather.Humidity)
	require.Len(t, v.Attachments, 1)
	assert.Equal(t, "IMAGE", v.Attachments[0].Type)

	var user struct {
		CreateUser struct {
			Role        string `json:"role"`
			IsActive    bool   `json:"isActive"`
			Preferences struct {
				Language string `json:"language"`
			} `json:"preferences"`
		} `json:"createUser"`
	}
	res = exec(t, s, adminCtx, `mutation {
  createUser(input: {clerkId: "user_x", email: "x@example.org", firstName: "X", lastName: "Y", role: RESEARCHER}) {
    role isActive preferences { language }
  }
}`, nil, &user)
	requireOK(t, res)
	assert.Equal(t, "RESEARCHER", user.CreateUser.Role)
	assert.True(t, user.CreateUser.IsActive)
	assert.Equal(t, "es", user.CreateUser.Preferences.Language)

	res = exec(t, s, researcherCtx, `{ users { id } }`, nil, nil)
	assert.Equal(t, "FORBIDDEN", errorCode(t, res))
}

func TestSchemaCatalogueReadsAndUpdates(t *testing.T) {
	s := newTestSchema(t)
	ids := seed(t, s)

	var created struct {
		CreateMonitoringData struct {
			ID string `json:"id"`
		} `json:"createMonitoringData"`
	}
	res := exec(t, s, researcherCtx, `
mutation($in: MonitoringDataInput!) { createMonitoringData(input: $in) { id } }`,
		map[string]interface{}{"in": map[string]interface{}{
			"speciesId": ids.Species.ID, "methodId": ids.Method.ID, "locationId": ids.Location.ID,
			"date": "2024-10-20", "value": 3, "unit": "individuals", "researcher": "R",
		}}, &created)
	requireOK(t, res)
	obsID := created.CreateMonitoringData.ID

	type named = []struct {
		Name string `json:"name"`
	}
	type idList = []struct {
		ID string `json:"id"`
	}
	var reads struct {
		MonitoringMethods       named `json:"monitoringMethods"`
		MonitoringMethodsByType named `json:"monitoringMethodsByType"`
		MonitoringMethodByID    struct {
			Name string `json:"name"`
		} `json:"monitoringMethodById"`
		Locations            named `json:"locations"`
		LocationsByEcosystem named `json:"locationsByEcosystem"`
		LocationsByCountry   named `json:"locationsByCountry"`
		LocationByID         struct {
			Coordinates struct {
				Latitude float64 `json:"latitude"`
			} `json:"coordinates"`
		} `json:"locationById"`
		ByMethod   idList `json:"byMethod"`
		ByLocation idList `json:"byLocation"`
		InRange    idList `json:"inRange"`
		OutOfRange idList `json:"outOfRange"`
	}
	res = exec(t, s, context.Background(), `
query($m: ID!, $l: ID!) {
  monitoringMethods { name }
  monitoringMethodsByType(type: AI) { name }
  monitoringMethodById(id: $m) { name }
  locations { name }
  locationsByEcosystem(ecosystem: FOREST) { name }
  locationsByCountry(country: "Costa Rica") { name }
  locationById(id: $l) { coordinates { latitude } }
  byMethod: monitoringDataByMethod(methodId: $m) { id }
  byLocation: monitoringDataByLocation(locationId: $l) { id }
  inRange: monitoringDataByDateRange(startDate: "2024-10-01", endDate: "2024-10-31") { id }
  outOfRange: monitoringDataByDateRange(startDate: "2024-11-01", endDate: "2024-11-30") { id }
}`, map[string]interface{}{"m": ids.Method.ID, "l": ids.Location.ID}, &reads)
	requireOK(t, res)
	assert.Equal(t, named{{Name: "Camera Trap"}}, reads.MonitoringMethods)
	assert.Equal(t, named{{Name: "Camera Trap"}}, reads.MonitoringMethodsByType)
	assert.Equal(t, "Camera Trap", reads.MonitoringMethodByID.Name)
	assert.Equal(t, named{{Name: "Corcovado"}}, reads.Locations)
	assert.Equal(t, named{{Name: "Corcovado"}}, reads.LocationsByEcosystem)
	assert.Equal(t, named{{Name: "Corcovado"}}, reads.LocationsByCountry)
	assert.Equal(t, 8.54, reads.LocationByID.Coordinates.Latitude)
	assert.Equal(t, idList{{ID: obsID}}, reads.ByMethod)
	assert.Equal(t, idList{{ID: obsID}}, reads.ByLocation)
	assert.Equal(t, idList{{ID: obsID}}, reads.InRange)
	assert.Empty(t, reads.OutOfRange)

	var updated struct {
		UpdateLocation struct {
			Region string `json:"region"`
		} `json:"updateLocation"`
		UpdateMonitoringMethod struct {
			Accuracy float64 `json:"accuracy"`
		} `json:"updateMonitoringMethod"`
		UpdateMonitoringData struct {
			Value float64 `json:"value"`
			Unit  string  `json:"unit"`
		} `json:"updateMonitoringData"`
	}
	res = exec(t, s, researcherCtx, `
mutation($l: ID!, $m: ID!, $d: ID!) {
  updateLocation(id: $l, input: {region: "Puntarenas"}) { region }
  updateMonitoringMethod(id: $m, input: {accuracy: 92.5}) { accuracy }
  updateMonitoringData(id: $d, input: {value: 4}) { value unit }
}`, map[string]interface{}{"l": ids.Location.ID, "m": ids.Method.ID, "d": obsID}, &updated)
	requireOK(t, res)
	assert.Equal(t, "Puntarenas", updated.UpdateLocation.Region)
	assert.Equal(t, 92.5, updated.UpdateMonitoringMethod.Accuracy)
	assert.Equal(t, 4.0, updated.UpdateMonitoringData.Value)
	assert.Equal(t, "individuals", updated.UpdateMonitoringData.Unit)

	res = exec(t, s, researcherCtx, `mutation($d: ID!) { deleteMonitoringData(id: $d) }`,
		map[string]interface{}{"d": obsID}, nil)
	assert.Equal(t, "FORBIDDEN", errorCode(t, res))

	var deleted struct {
		DeleteMonitoringData   bool `json:"deleteMonitoringData"`
		DeleteMonitoringMethod bool `json:"deleteMonitoringMethod"`
	}
	res = exec(t, s, adminCtx, `mutation($d: ID!, $m: ID!) {
  deleteMonitoringData(id: $d)
  deleteMonitoringMethod(id: $m)
}`, map[string]interface{}{"d": obsID, "m": ids.Method.ID}, &deleted)
	requireOK(t, res)
	assert.True(t, deleted.DeleteMonitoringData)
	assert.True(t, deleted.DeleteMonitoringMethod)
}

func TestSchemaUserManagement(t *testing.T) {
	s := newTestSchema(t)

	var created struct {
		CreateUser struct {
			ID string `json:"id"`
		} `json:"createUser"`
	}
	res := exec(t, s, adminCtx, `mutation {
  createUser(input: {clerkId: "user_y", email: "y@example.org", firstName: "Y", lastName: "Z"}) { id }
}`, nil, &created)
	requireOK(t, res)
	id := created.CreateUser.ID

	var got struct {
		User struct {
			Email string `json:"email"`
			Role  string `json:"role"`
		} `json:"user"`
	}
	res = exec(t, s, researcherCtx, `query($id: ID!) { user(id: $id) { email role } }`,
		map[string]interface{}{"id": id}, &got)
	requireOK(t, res)
	assert.Equal(t, "y@example.org", got.User.Email)
	assert.Equal(t, "OBSERVER", got.User.Role)

	res = exec(t, s, context.Background(), `query($id: ID!) { user(id: $id) { email } }`,
		map[string]interface{}{"id": id}, nil)
	assert.Equal(t, "UNAUTHENTICATED", errorCode(t, res))

	res = exec(t, s, researcherCtx, `mutation($id: ID!) { updateUser(id: $id, input: {institution: "UCR"}) { id } }`,
		map[string]interface{}{"id": id}, nil)
	assert.Equal(t, "FORBIDDEN", errorCode(t, res))

	var updated struct {
		UpdateUser struct {
			Role        string `json:"role"`
			Institution string `json:"institution"`
		} `json:"updateUser"`
	}
	res = exec(t, s, adminCtx, `mutation($id: ID!) {
  updateUser(id: $id, input: {role: RESEARCHER, institution: "UCR"}) { role institution }
}`, map[string]interface{}{"id": id}, &updated)
	requireOK(t, res)
	assert.Equal(t, "RESEARCHER", updated.UpdateUser.Role)
	assert.Equal(t, "UCR", updated.UpdateUser.Institution)

	var deleted struct {
		DeleteUser bool `json:"deleteUser"`
	}
	res = exec(t, s, adminCtx, `mutation($id: ID!) { deleteUser(id: $id) }`, map[string]interface{}{"id": id}, &deleted)
	requireOK(t, res)
	assert.True(t, deleted.DeleteUser)

	var after struct {
		User *struct{} `json:"user"`
	}
	res = exec(t, s, adminCtx, `query($id: ID!) { user(id: $id) { id } }`, map[string]interface{}{"id": id}, &after)
	requireOK(t, res)
	assert.Nil(t, after.User)
}
