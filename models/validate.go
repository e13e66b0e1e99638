// path: models/validate.go
package models

import (
	"math"
	"net/mail"
	"strings"
)

func (s *Species) Validate() error {
	if s.Name == "" {
		return Invalid("name", "is required")
	}
	if s.ScientificName == "" {
		return Invalid("scientificName", "is required")
	}
	if !s.ConservationStatus.Valid() {
		return Invalid("conservationStatus", "unknown value %q", s.ConservationStatus)
	}
	return nil
}

func (m *MonitoringMethod) Validate() error {
	if m.Name == "" {
		return Invalid("name", "is required")
	}
	if !m.Type.Valid() {
		return Invalid("type", "unknown value %q", m.Type)
	}
	if m.Description == "" {
		return Invalid("description", "is required")
	}
	if m.Accuracy != nil {
		if err := percent("accuracy", *m.Accuracy); err != nil {
			return err
		}
	}
	if !m.CostEfficiency.Valid() {
		return Invalid("costEfficiency", "unknown value %q", m.CostEfficiency)
	}
	return nil
}

func (l *Location) Validate() error {
	if l.Name == "" {
		return Invalid("name", "is required")
	}
	if err := within("coordinates.latitude", l.Coordinates.Latitude, -90, 90); err != nil {
		return err
	}
	if err := within("coordinates.longitude", l.Coordinates.Longitude, -180, 180); err != nil {
		return err
	}
	if !l.Ecosystem.Valid() {
		return Invalid("ecosystem", "unknown value %q", l.Ecosystem)
	}
	if l.Area != nil && (math.IsNaN(*l.Area) || *l.Area < 0) {
		return Invalid("area", "must be >= 0, got %v", *l.Area)
	}
	if !l.ProtectionStatus.Valid() {
		return Invalid("protectionStatus", "unknown value %q", l.ProtectionStatus)
	}
	if l.Country == "" {
		return Invalid("country", "is required")
	}
	return nil
}

func (d *MonitoringData) Validate() error {
	if d.SpeciesID.IsZero() {
		return Invalid("speciesId", "is required")
	}
	if d.MethodID.IsZero() {
		return Invalid("methodId", "is required")
	}
	if d.LocationID.IsZero() {
		return Invalid("locationId", "is required")
	}
	if math.IsNaN(d.Value) || math.IsInf(d.Value, 0) {
		return Invalid("value", "must be a finite number")
	}
	if d.Unit == "" {
		return Invalid("unit", "is required")
	}
	if !d.DataQuality.Valid() {
		return Invalid("dataQuality", "unknown value %q", d.DataQuality)
	}
	if err := percent("confidence", d.Confidence); err != nil {
		return err
	}
	if d.Researcher == "" {
		return Invalid("researcher", "is required")
	}
	for i, a := range d.Attachments {
		if strings.TrimSpace(a.Filename) == "" || strings.TrimSpace(a.URL) == "" {
			return Invalid("attachments", "entry %d needs filename and url", i)
		}
		if !a.Type.Valid() {
			return Invalid("attachments", "entry %d has unknown type %q", i, a.Type)
		}
	}
	return nil
}

func (u *User) Validate() error {
	if u.ClerkID == "" {
		return Invalid("clerkId", "is required")
	}
	if u.Email == "" {
		return Invalid("email", "is required")
	}
	if _, err := mail.ParseAddress(u.Email); err != nil {
		return Invalid("email", "%q is not an email address", u.Email)
	}
	if u.FirstName == "" {
		return Invalid("firstName", "is required")
	}
	if u.LastName == "" {
		return Invalid("lastName", "is required")
	}
	if !u.Role.Valid() {
		return Invalid("role", "unknown value %q", u.Role)
	}
	return nil
}

func percent(field string, v float64) error {
	return within(field, v, 0, 100)
}

// Bounds are inclusive.
func within(field string, v, min, max float64) error {
	if math.IsNaN(v) || v < min || v > max {
		return Invalid(field, "must be between %v and %v, got %v", min, max, v)
	}
	return nil
}
