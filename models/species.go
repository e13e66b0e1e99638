// path: models/species.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Audit carries the attribution and write timestamps every document shares.
type Audit struct {
	CreatedBy string    `bson:"createdBy" json:"createdBy"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// AuditInfo is promoted to every document embedding Audit.
func (a *Audit) AuditInfo() *Audit { return a }

type Species struct {
	ID                 primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name               string             `bson:"name" json:"name"`
	ScientificName     string             `bson:"scientificName" json:"scientificName"`
	Description        *string            `bson:"description,omitempty" json:"description,omitempty"`
	ConservationStatus ConservationStatus `bson:"conservationStatus" json:"conservationStatus"`
	ImageURL           *string            `bson:"imageUrl,omitempty" json:"imageUrl,omitempty"`
	Habitat            *string            `bson:"habitat,omitempty" json:"habitat,omitempty"`

	Audit `bson:",inline"`
}

func (s *Species) IDHex() string { return s.ID.Hex() }
