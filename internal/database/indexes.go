package database

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func EnsureUserIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	indexes := db.Collection("users").Indexes()

	identityIndex := mongo.IndexModel{
		Keys: bson.D{{Key: "identityId", Value: 1}},
		Options: options.Index().
			SetName("identityId_unique").
			SetUnique(true),
	}
	emailIndex := mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetName("email_index"),
	}

	log.Println("EnsureUserIndexes: creating identityId_unique index")
	if _, err := indexes.CreateOne(ctx, identityIndex); err != nil {
		log.Println("EnsureUserIndexes: identityId index error:", err)
		return err
	}
	if _, err := indexes.CreateOne(ctx, emailIndex); err != nil {
		log.Println("EnsureUserIndexes: email index error:", err)
		return err
	}
	return nil
}

func EnsureProfileIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	for _, coll := range []string{"rider_profiles", "owner_profiles"} {
		userIDIndex := mongo.IndexModel{
			Keys: bson.D{{Key: "userId", Value: 1}},
			Options: options.Index().
				SetName("userId_unique").
				SetUnique(true),
		}
		log.Printf("EnsureProfileIndexes: creating userId_unique index on %s", coll)
		if _, err := db.Collection(coll).Indexes().CreateOne(ctx, userIDIndex); err != nil {
			log.Printf("EnsureProfileIndexes: %s userId index error: %v", coll, err)
			return err
		}
	}
	return nil
}

func EnsureHorseAdIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	indexes := db.Collection("horse_ads").Indexes()

	ownerIndex := mongo.IndexModel{
		Keys:    bson.D{{Key: "ownerId", Value: 1}},
		Options: options.Index().SetName("ownerId_index"),
	}
	publishedIndex := mongo.IndexModel{
		Keys:    bson.D{{Key: "isPublished", Value: 1}, {Key: "isDeleted", Value: 1}},
		Options: options.Index().SetName("published_index"),
	}

	log.Println("EnsureHorseAdIndexes: creating ownerId_index index")
	if _, err := indexes.CreateOne(ctx, ownerIndex); err != nil {
		log.Println("EnsureHorseAdIndexes: ownerId index error:", err)
		return err
	}
	if _, err := indexes.CreateOne(ctx, publishedIndex); err != nil {
		log.Println("EnsureHorseAdIndexes: published index error:", err)
		return err
	}
	return nil
}
