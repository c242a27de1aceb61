package database

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"horsesharing/internal/models"
)

// RiderProfileStore persists rider profile documents keyed by user. It backs
// both the draft autosave path and the explicit save endpoint.
type RiderProfileStore struct {
	db *mongo.Database
}

func NewRiderProfileStore(db *mongo.Database) *RiderProfileStore {
	return &RiderProfileStore{db: db}
}

func (s *RiderProfileStore) collection() *mongo.Collection {
	return s.db.Collection("rider_profiles")
}

func (s *RiderProfileStore) LoadRiderProfile(ctx context.Context, userID primitive.ObjectID) (models.RiderProfile, bool, error) {
	var p models.RiderProfile
	err := s.collection().FindOne(ctx, bson.M{"userId": userID}).Decode(&p)
	if err == mongo.ErrNoDocuments {
		return models.RiderProfile{}, false, nil
	}
	if err != nil {
		return models.RiderProfile{}, false, err
	}
	return p, true, nil
}

func (s *RiderProfileStore) SaveRiderProfile(ctx context.Context, p *models.RiderProfile) error {
	now := time.Now()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now

	// Replacement documents keep their zero _id omitted, so the existing
	// document id survives the upsert.
	_, err := s.collection().ReplaceOne(
		ctx,
		bson.M{"userId": p.UserID},
		p,
		options.Replace().SetUpsert(true),
	)
	return err
}

func (s *RiderProfileStore) DeleteRiderProfile(ctx context.Context, userID primitive.ObjectID) error {
	_, err := s.collection().DeleteOne(ctx, bson.M{"userId": userID})
	return err
}
