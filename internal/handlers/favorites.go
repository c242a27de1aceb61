package handlers

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"horsesharing/internal/models"
)

type favoriteRequest struct {
	HorseAdID string `json:"horseAdId" binding:"required"`
}

// GetFavorites lists the user's favorite horse ads in the order they were
// added. Ads unpublished or deleted since drop out silently.
func GetFavorites(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /favorites"
		defer handlePanic(c, route)

		user, ok := requireUser(c, db)
		if !ok {
			return
		}

		if len(user.Favorites) == 0 {
			c.JSON(http.StatusOK, gin.H{"data": []models.HorseAd{}})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		cursor, err := db.Collection("horse_ads").Find(ctx, bson.M{
			"_id":         bson.M{"$in": user.Favorites},
			"isPublished": true,
			"isDeleted":   bson.M{"$ne": true},
		})
		if err != nil {
			log.Println("[FAVORITE] [ERROR] list favorites failed:", err)
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		defer cursor.Close(ctx)

		ads := make([]models.HorseAd, 0, len(user.Favorites))
		if err := cursor.All(ctx, &ads); err != nil {
			log.Println("[FAVORITE] [ERROR] decode favorites failed:", err)
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		adByID := make(map[primitive.ObjectID]models.HorseAd, len(ads))
		for _, ad := range ads {
			adByID[ad.ID] = ad
		}

		ordered := make([]models.HorseAd, 0, len(ads))
		for _, favoriteID := range user.Favorites {
			if ad, exists := adByID[favoriteID]; exists {
				ordered = append(ordered, ad)
			}
		}

		c.JSON(http.StatusOK, gin.H{"data": ordered})
	}
}

func AddFavorite(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /favorites"
		defer handlePanic(c, route)

		user, ok := requireUser(c, db)
		if !ok {
			return
		}

		var req favoriteRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		adID, err := primitive.ObjectIDFromHex(strings.TrimSpace(req.HorseAdID))
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid horseAdId")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		if err := db.Collection("horse_ads").FindOne(ctx, bson.M{
			"_id":         adID,
			"isPublished": true,
			"isDeleted":   bson.M{"$ne": true},
		}).Err(); err != nil {
			if err == mongo.ErrNoDocuments {
				respondWithError(c, http.StatusBadRequest, route, "invalid horseAdId")
				return
			}
			log.Println("[FAVORITE] [ERROR] horse ad lookup failed:", err)
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		_, err = db.Collection("users").UpdateByID(ctx, user.ID, bson.M{
			"$addToSet": bson.M{"favorites": adID},
			"$set":      bson.M{"updatedAt": time.Now()},
		})
		if err != nil {
			log.Println("[FAVORITE] [ERROR] add favorite failed:", err)
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "favorite updated"})
	}
}

func DeleteFavorite(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /favorites/:horseAdId"
		defer handlePanic(c, route)

		user, ok := requireUser(c, db)
		if !ok {
			return
		}

		adID, err := primitive.ObjectIDFromHex(strings.TrimSpace(c.Param("horseAdId")))
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid horseAdId")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		_, err = db.Collection("users").UpdateByID(ctx, user.ID, bson.M{
			"$pull": bson.M{"favorites": adID},
			"$set":  bson.M{"updatedAt": time.Now()},
		})
		if err != nil {
			log.Println("[FAVORITE] [ERROR] remove favorite failed:", err)
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "favorite updated"})
	}
}
