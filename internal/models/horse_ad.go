package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// HorseAd is a horse or pony offered for sharing. Photos follow the same
// ordering rule as rider media: element 0 is the cover.
type HorseAd struct {
	ID      primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OwnerID primitive.ObjectID `bson:"ownerId" json:"ownerId"`

	Name             string     `bson:"name" json:"name"`
	Type             string     `bson:"type" json:"type"` // paard / pony
	WithersHeightCM  int        `bson:"withersHeightCm,omitempty" json:"withersHeightCm"`
	Age              int        `bson:"age,omitempty" json:"age"`
	Gender           string     `bson:"gender,omitempty" json:"gender"`
	Breed            string     `bson:"breed,omitempty" json:"breed"`
	Postcode         string     `bson:"postcode,omitempty" json:"postcode"`
	City             string     `bson:"city,omitempty" json:"city"`
	Temperament      StringList `bson:"temperament" json:"temperament"`
	Disciplines      StringList `bson:"disciplines" json:"disciplines"`
	MaxJumpHeightCM  int        `bson:"maxJumpHeightCm,omitempty" json:"maxJumpHeightCm"`
	MaxRiderWeightKG int        `bson:"maxRiderWeightKg,omitempty" json:"maxRiderWeightKg"`
	MinRiderHeightCM int        `bson:"minRiderHeightCm,omitempty" json:"minRiderHeightCm"`
	MaxRiderHeightCM int        `bson:"maxRiderHeightCm,omitempty" json:"maxRiderHeightCm"`
	SuitableLevels   StringList `bson:"suitableLevels" json:"suitableLevels"`
	ContributionEuro int        `bson:"contributionEuro,omitempty" json:"contributionEuro"`
	Description      string     `bson:"description,omitempty" json:"description"`
	Photos           StringList `bson:"photos" json:"photos"`
	Videos           StringList `bson:"videos" json:"videos"`

	IsPublished bool       `bson:"isPublished" json:"isPublished"`
	IsDeleted   bool       `bson:"isDeleted" json:"isDeleted,omitempty"`
	DeletedAt   *time.Time `bson:"deletedAt,omitempty" json:"deletedAt,omitempty"`
	CreatedAt   time.Time  `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time  `bson:"updatedAt" json:"updatedAt"`
}
