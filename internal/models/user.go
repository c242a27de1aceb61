package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Profile types a user can publish.
const (
	ProfileTypeRider = "rider"
	ProfileTypeOwner = "owner"
)

// User is the local account record behind an externally issued identity.
// Passwords never live here; the identity provider owns authentication and
// we get-or-create users from verified token claims.
type User struct {
	ID                  primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	IdentityID          string               `bson:"identityId" json:"identityId"`
	Email               string               `bson:"email" json:"email"`
	Name                string               `bson:"name" json:"name"`
	Phone               string               `bson:"phone,omitempty" json:"phone,omitempty"`
	IsActive            bool                 `bson:"isActive" json:"isActive"`
	OnboardingCompleted bool                 `bson:"onboardingCompleted" json:"onboardingCompleted"`
	ProfileTypeChosen   string               `bson:"profileTypeChosen,omitempty" json:"profileTypeChosen,omitempty"`
	Favorites           []primitive.ObjectID `bson:"favorites,omitempty" json:"favorites,omitempty"`
	CreatedAt           time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt           time.Time            `bson:"updatedAt" json:"updatedAt"`
}
