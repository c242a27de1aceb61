package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"horsesharing/internal/models"
)

func GetOwnerProfile(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /owner-profile"
		defer handlePanic(c, route)

		user, ok := requireUser(c, db)
		if !ok {
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var prof models.OwnerProfile
		err := db.Collection("owner_profiles").FindOne(ctx, bson.M{"userId": user.ID}).Decode(&prof)
		if err == mongo.ErrNoDocuments {
			respondWithError(c, http.StatusNotFound, route, "owner profile not found")
			return
		}
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		c.JSON(http.StatusOK, prof)
	}
}

// SaveOwnerProfile upserts the caller's owner profile. Owners have no draft
// surface; their profile is small enough to save whole.
func SaveOwnerProfile(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /owner-profile"
		defer handlePanic(c, route)

		user, ok := requireUser(c, db)
		if !ok {
			return
		}

		var prof models.OwnerProfile
		if err := c.ShouldBindJSON(&prof); err != nil {
			log.Printf("[%s] invalid body: %v", route, err)
			respondWithError(c, http.StatusBadRequest, route, "invalid body")
			return
		}

		now := time.Now()
		prof.ID = primitive.NilObjectID
		prof.UserID = user.ID
		prof.UpdatedAt = now

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		update := bson.M{
			"$set":         prof,
			"$setOnInsert": bson.M{"createdAt": now},
		}
		_, err := db.Collection("owner_profiles").UpdateOne(
			ctx,
			bson.M{"userId": user.ID},
			update,
			options.Update().SetUpsert(true),
		)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		log.Printf("[%s] owner profile saved for %s", route, user.ID.Hex())
		c.JSON(http.StatusOK, gin.H{"saved": true})
	}
}
