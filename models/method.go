// path: models/method.go
package models

import "go.mongodb.org/mongo-driver/bson/primitive"

type MonitoringMethod struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name           string             `bson:"name" json:"name"`
	Type           MethodType         `bson:"type" json:"type"`
	Description    string             `bson:"description" json:"description"`
	Applications   []string           `bson:"applications" json:"applications"`
	Accuracy       *float64           `bson:"accuracy,omitempty" json:"accuracy,omitempty"` // percent, 0-100
	CostEfficiency CostEfficiency     `bson:"costEfficiency" json:"costEfficiency"`
	Equipment      []string           `bson:"equipment" json:"equipment"`

	Audit `bson:",inline"`
}

func (m *MonitoringMethod) IDHex() string { return m.ID.Hex() }
