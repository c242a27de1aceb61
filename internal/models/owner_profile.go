package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OwnerProfile is the stable owner's side of the marketplace. It is far
// smaller than the rider draft: owners mostly describe their horses through
// ads, not themselves.
type OwnerProfile struct {
	ID                 primitive.ObjectID  `bson:"_id,omitempty" json:"id,omitempty"`
	UserID             primitive.ObjectID  `bson:"userId,omitempty" json:"userId,omitempty"`
	Postcode           string              `bson:"postcode,omitempty" json:"postcode"`
	City               string              `bson:"city,omitempty" json:"city"`
	VisibleRadiusKM    int                 `bson:"visibleRadiusKm,omitempty" json:"visibleRadiusKm"`
	AvailableSchedule  map[string][]string `bson:"availableSchedule,omitempty" json:"availableSchedule"`
	ContributionEuro   int                 `bson:"contributionEuro,omitempty" json:"contributionEuro"`
	DepositEuro        int                 `bson:"depositEuro,omitempty" json:"depositEuro"`
	TrialPeriodWeeks   int                 `bson:"trialPeriodWeeks,omitempty" json:"trialPeriodWeeks"`
	InstructionOffered bool                `bson:"instructionOffered" json:"instructionOffered"`
	SupervisionNeeded  bool                `bson:"supervisionNeeded" json:"supervisionNeeded"`
	MinRiderAge        int                 `bson:"minRiderAge,omitempty" json:"minRiderAge"`
	Under18Allowed     bool                `bson:"under18Allowed" json:"under18Allowed"`
	InsuranceRequired  bool                `bson:"insuranceRequired" json:"insuranceRequired"`
	HelmetRequired     bool                `bson:"helmetRequired" json:"helmetRequired"`
	StableRules        string              `bson:"stableRules,omitempty" json:"stableRules"`
	CreatedAt          time.Time           `bson:"createdAt,omitempty" json:"createdAt,omitempty"`
	UpdatedAt          time.Time           `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}
