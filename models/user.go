// path: models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type NotificationSettings struct {
	Email     bool `bson:"email" json:"email"`
	Dashboard bool `bson:"dashboard" json:"dashboard"`
}

type UserPreferences struct {
	Language      string               `bson:"language" json:"language"`
	Notifications NotificationSettings `bson:"notifications" json:"notifications"`
}

func DefaultPreferences() UserPreferences {
	return UserPreferences{
		Language:      "es",
		Notifications: NotificationSettings{Email: true, Dashboard: true},
	}
}

// User is the local record linked to an identity-provider subject.
type User struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ClerkID        string             `bson:"clerkId" json:"clerkId"`
	Email          string             `bson:"email" json:"email"`
	FirstName      string             `bson:"firstName" json:"firstName"`
	LastName       string             `bson:"lastName" json:"lastName"`
	Role           Role               `bson:"role" json:"role"`
	Institution    *string            `bson:"institution,omitempty" json:"institution,omitempty"`
	Specialization *string            `bson:"specialization,omitempty" json:"specialization,omitempty"`
	IsActive       bool               `bson:"isActive" json:"isActive"`
	LastLogin      *time.Time         `bson:"lastLogin,omitempty" json:"lastLogin,omitempty"`
	Preferences    UserPreferences    `bson:"preferences" json:"preferences"`

	Audit `bson:",inline"`
}

func (u *User) IDHex() string { return u.ID.Hex() }

func (u *User) FullName() string {
	switch {
	case u.FirstName == "":
		return u.LastName
	case u.LastName == "":
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}
