// path: models/inputs.go
package models

import (
	"strconv"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Inputs use pointer fields: nil means "not supplied", so the same type
// serves create (defaults fill the gaps) and partial update.

type SpeciesInput struct {
	Name               *string             `json:"name"`
	ScientificName     *string             `json:"scientificName"`
	Description        *string             `json:"description"`
	ConservationStatus *ConservationStatus `json:"conservationStatus"`
	ImageURL           *string             `json:"imageUrl"`
	Habitat            *string             `json:"habitat"`
}

func (in SpeciesInput) Apply(s *Species) {
	setString(&s.Name, in.Name)
	setString(&s.ScientificName, in.ScientificName)
	setOptString(&s.Description, in.Description)
	if in.ConservationStatus != nil {
		s.ConservationStatus = *in.ConservationStatus
	}
	setOptString(&s.ImageURL, in.ImageURL)
	setOptString(&s.Habitat, in.Habitat)
}

type MonitoringMethodInput struct {
	Name           *string         `json:"name"`
	Type           *MethodType     `json:"type"`
	Description    *string         `json:"description"`
	Applications   *[]string       `json:"applications"`
	Accuracy       *float64        `json:"accuracy"`
	CostEfficiency *CostEfficiency `json:"costEfficiency"`
	Equipment      *[]string       `json:"equipment"`
}

func (in MonitoringMethodInput) Apply(m *MonitoringMethod) {
	setString(&m.Name, in.Name)
	if in.Type != nil {
		m.Type = *in.Type
	}
	setString(&m.Description, in.Description)
	if in.Applications != nil {
		m.Applications = trimAll(*in.Applications)
	}
	if in.Accuracy != nil {
		v := *in.Accuracy
		m.Accuracy = &v
	}
	if in.CostEfficiency != nil {
		m.CostEfficiency = *in.CostEfficiency
	}
	if in.Equipment != nil {
		m.Equipment = trimAll(*in.Equipment)
	}
}

type LocationInput struct {
	Name             *string           `json:"name"`
	Coordinates      *Coordinates      `json:"coordinates"`
	Description      *string           `json:"description"`
	Ecosystem        *Ecosystem        `json:"ecosystem"`
	Area             *float64          `json:"area"`
	ProtectionStatus *ProtectionStatus `json:"protectionStatus"`
	Country          *string           `json:"country"`
	Region           *string           `json:"region"`
}

func (in LocationInput) Apply(l *Location) {
	setString(&l.Name, in.Name)
	if in.Coordinates != nil {
		l.Coordinates = *in.Coordinates
	}
	setOptString(&l.Description, in.Description)
	if in.Ecosystem != nil {
		l.Ecosystem = *in.Ecosystem
	}
	if in.Area != nil {
		v := *in.Area
		l.Area = &v
	}
	if in.ProtectionStatus != nil {
		l.ProtectionStatus = *in.ProtectionStatus
	}
	setString(&l.Country, in.Country)
	setOptString(&l.Region, in.Region)
}

type MonitoringDataInput struct {
	SpeciesID   *string       `json:"speciesId"`
	MethodID    *string       `json:"methodId"`
	LocationID  *string       `json:"locationId"`
	Date        *string       `json:"date"`
	Value       *float64      `json:"value"`
	Unit        *string       `json:"unit"`
	Notes       *string       `json:"notes"`
	DataQuality *DataQuality  `json:"dataQuality"`
	Confidence  *float64      `json:"confidence"`
	Weather     *Weather      `json:"weather"`
	Researcher  *string       `json:"researcher"`
	Attachments *[]Attachment `json:"attachments"`
}

// Apply copies the supplied fields; malformed ids or dates are reported as
// validation errors.
func (in MonitoringDataInput) Apply(d *MonitoringData) error {
	var err error
	if in.SpeciesID != nil {
		if d.SpeciesID, err = ParseID("speciesId", *in.SpeciesID); err != nil {
			return err
		}
	}
	if in.MethodID != nil {
		if d.MethodID, err = ParseID("methodId", *in.MethodID); err != nil {
			return err
		}
	}
	if in.LocationID != nil {
		if d.LocationID, err = ParseID("locationId", *in.LocationID); err != nil {
			return err
		}
	}
	if in.Date != nil && strings.TrimSpace(*in.Date) != "" {
		t, err := ParseDate(*in.Date)
		if err != nil {
			return Invalid("date", "unrecognised date %q", *in.Date)
		}
		d.Date = t
	}
	if in.Value != nil {
		d.Value = *in.Value
	}
	setString(&d.Unit, in.Unit)
	setOptString(&d.Notes, in.Notes)
	if in.DataQuality != nil {
		d.DataQuality = *in.DataQuality
	}
	if in.Confidence != nil {
		d.Confidence = *in.Confidence
	}
	if in.Weather != nil {
		w := *in.Weather
		d.Weather = &w
	}
	setString(&d.Researcher, in.Researcher)
	if in.Attachments != nil {
		d.Attachments = append([]Attachment(nil), *in.Attachments...)
	}
	return nil
}

type UserInput struct {
	ClerkID        *string `json:"clerkId"`
	Email          *string `json:"email"`
	FirstName      *string `json:"firstName"`
	LastName       *string `json:"lastName"`
	Role           *Role   `json:"role"`
	Institution    *string `json:"institution"`
	Specialization *string `json:"specialization"`
	IsActive       *bool   `json:"isActive"`
}

func (in UserInput) Apply(u *User) {
	setString(&u.ClerkID, in.ClerkID)
	if in.Email != nil {
		u.Email = strings.ToLower(strings.TrimSpace(*in.Email))
	}
	setString(&u.FirstName, in.FirstName)
	setString(&u.LastName, in.LastName)
	if in.Role != nil {
		u.Role = *in.Role
	}
	setOptString(&u.Institution, in.Institution)
	setOptString(&u.Specialization, in.Specialization)
	if in.IsActive != nil {
		u.IsActive = *in.IsActive
	}
}

// ParseID parses a hex object id, naming field in the validation error.
func ParseID(field, s string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(strings.TrimSpace(s))
	if err != nil {
		return primitive.NilObjectID, Invalid(field, "malformed id %q", s)
	}
	return id, nil
}

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ParseDate accepts RFC3339, a bare date, or epoch milliseconds (what
// browser clients send for Date values).
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	var err error
	for _, layout := range dateLayouts {
		var t time.Time
		if t, err = time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	if ms, perr := strconv.ParseInt(s, 10, 64); perr == nil {
		return time.UnixMilli(ms).UTC(), nil
	}
	return time.Time{}, err
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = strings.TrimSpace(*v)
	}
}

// Empty strings clear optional fields.
func setOptString(dst **string, v *string) {
	if v == nil {
		return
	}
	s := strings.TrimSpace(*v)
	if s == "" {
		*dst = nil
		return
	}
	*dst = &s
}

func trimAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
