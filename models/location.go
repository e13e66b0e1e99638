// path: models/location.go
package models

import "go.mongodb.org/mongo-driver/bson/primitive"

type Coordinates struct {
	Latitude  float64 `bson:"latitude" json:"latitude"`
	Longitude float64 `bson:"longitude" json:"longitude"`
}

type Location struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name             string             `bson:"name" json:"name"`
	Coordinates      Coordinates        `bson:"coordinates" json:"coordinates"`
	Description      *string            `bson:"description,omitempty" json:"description,omitempty"`
	Ecosystem        Ecosystem          `bson:"ecosystem" json:"ecosystem"`
	Area             *float64           `bson:"area,omitempty" json:"area,omitempty"` // km²
	ProtectionStatus ProtectionStatus   `bson:"protectionStatus" json:"protectionStatus"`
	Country          string             `bson:"country" json:"country"`
	Region           *string            `bson:"region,omitempty" json:"region,omitempty"`

	Audit `bson:",inline"`
}

func (l *Location) IDHex() string { return l.ID.Hex() }
