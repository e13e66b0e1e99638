// path: models/monitoring.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Weather struct {
	Temperature *float64 `bson:"temperature,omitempty" json:"temperature,omitempty"`
	Humidity    *float64 `bson:"humidity,omitempty" json:"humidity,omitempty"`
	Conditions  *string  `bson:"conditions,omitempty" json:"conditions,omitempty"`
}

type Attachment struct {
	Filename string         `bson:"filename" json:"filename"`
	URL      string         `bson:"url" json:"url"`
	Type     AttachmentType `bson:"type" json:"type"`
}

// MonitoringData is a single observation as stored: the three relations
// are kept as ids and materialised by the resolvers.
type MonitoringData struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	SpeciesID   primitive.ObjectID `bson:"species" json:"speciesId"`
	MethodID    primitive.ObjectID `bson:"method" json:"methodId"`
	LocationID  primitive.ObjectID `bson:"location" json:"locationId"`
	Date        time.Time          `bson:"date" json:"date"`
	Value       float64            `bson:"value" json:"value"`
	Unit        string             `bson:"unit" json:"unit"`
	Notes       *string            `bson:"notes,omitempty" json:"notes,omitempty"`
	DataQuality DataQuality        `bson:"dataQuality" json:"dataQuality"`
	Confidence  float64            `bson:"confidence" json:"confidence"`
	Weather     *Weather           `bson:"weather,omitempty" json:"weather,omitempty"`
	Researcher  string             `bson:"researcher" json:"researcher"`
	Verified    bool               `bson:"verified" json:"verified"`
	VerifiedBy  *string            `bson:"verifiedBy,omitempty" json:"verifiedBy,omitempty"`
	VerifiedAt  *time.Time         `bson:"verifiedAt,omitempty" json:"verifiedAt,omitempty"`
	Attachments []Attachment       `bson:"attachments" json:"attachments"`

	Audit `bson:",inline"`
}

func (d *MonitoringData) IDHex() string { return d.ID.Hex() }

// Observation is a MonitoringData with its relations materialised. A nil
// relation means the referenced document no longer exists.
type Observation struct {
	*MonitoringData
	Species  *Species
	Method   *MonitoringMethod
	Location *Location
}
