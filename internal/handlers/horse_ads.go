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
	"go.mongodb.org/mongo-driver/mongo/options"

	"horsesharing/internal/models"
)

type horseAdRequest struct {
	Name             string   `json:"name" binding:"required"`
	Type             string   `json:"type" binding:"required,oneof=paard pony"`
	WithersHeightCM  int      `json:"withersHeightCm"`
	Age              int      `json:"age"`
	Gender           string   `json:"gender"`
	Breed            string   `json:"breed"`
	Postcode         string   `json:"postcode"`
	City             string   `json:"city"`
	Temperament      []string `json:"temperament"`
	Disciplines      []string `json:"disciplines"`
	MaxJumpHeightCM  int      `json:"maxJumpHeightCm"`
	MaxRiderWeightKG int      `json:"maxRiderWeightKg"`
	MinRiderHeightCM int      `json:"minRiderHeightCm"`
	MaxRiderHeightCM int      `json:"maxRiderHeightCm"`
	SuitableLevels   []string `json:"suitableLevels"`
	ContributionEuro int      `json:"contributionEuro"`
	Description      string   `json:"description"`
	Photos           []string `json:"photos"`
	Videos           []string `json:"videos"`
	IsPublished      bool     `json:"isPublished"`
}

func (r horseAdRequest) toModel() models.HorseAd {
	return models.HorseAd{
		Name:             strings.TrimSpace(r.Name),
		Type:             r.Type,
		WithersHeightCM:  r.WithersHeightCM,
		Age:              r.Age,
		Gender:           strings.TrimSpace(r.Gender),
		Breed:            strings.TrimSpace(r.Breed),
		Postcode:         strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(r.Postcode), " ", "")),
		City:             strings.TrimSpace(r.City),
		Temperament:      models.StringList(r.Temperament).Dedupe(),
		Disciplines:      models.StringList(r.Disciplines).Dedupe(),
		MaxJumpHeightCM:  r.MaxJumpHeightCM,
		MaxRiderWeightKG: r.MaxRiderWeightKG,
		MinRiderHeightCM: r.MinRiderHeightCM,
		MaxRiderHeightCM: r.MaxRiderHeightCM,
		SuitableLevels:   models.StringList(r.SuitableLevels).Dedupe(),
		ContributionEuro: r.ContributionEuro,
		Description:      strings.TrimSpace(r.Description),
		Photos:           models.StringList(r.Photos).Dedupe(),
		Videos:           models.StringList(r.Videos).Dedupe(),
		IsPublished:      r.IsPublished,
	}
}

func CreateHorseAd(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /owner/horses"
		defer handlePanic(c, route)

		user, ok := requireUser(c, db)
		if !ok {
			return
		}

		var req horseAdRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		ad := req.toModel()
		ad.OwnerID = user.ID
		now := time.Now()
		ad.CreatedAt = now
		ad.UpdatedAt = now

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		result, err := db.Collection("horse_ads").InsertOne(ctx, ad)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		ad.ID = result.InsertedID.(primitive.ObjectID)

		log.Printf("[%s] horse ad created: %s", route, ad.ID.Hex())
		c.JSON(http.StatusCreated, ad)
	}
}

func UpdateHorseAd(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /owner/horses/:id"
		defer handlePanic(c, route)

		user, ok := requireUser(c, db)
		if !ok {
			return
		}

		adID, err := primitive.ObjectIDFromHex(strings.TrimSpace(c.Param("id")))
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid horse ad id")
			return
		}

		var req horseAdRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		ad := req.toModel()
		ad.UpdatedAt = time.Now()

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		result, err := db.Collection("horse_ads").UpdateOne(ctx,
			bson.M{
				"_id":       adID,
				"ownerId":   user.ID,
				"isDeleted": bson.M{"$ne": true},
			},
			bson.M{"$set": bson.M{
				"name":             ad.Name,
				"type":             ad.Type,
				"withersHeightCm":  ad.WithersHeightCM,
				"age":              ad.Age,
				"gender":           ad.Gender,
				"breed":            ad.Breed,
				"postcode":         ad.Postcode,
				"city":             ad.City,
				"temperament":      ad.Temperament,
				"disciplines":      ad.Disciplines,
				"maxJumpHeightCm":  ad.MaxJumpHeightCM,
				"maxRiderWeightKg": ad.MaxRiderWeightKG,
				"minRiderHeightCm": ad.MinRiderHeightCM,
				"maxRiderHeightCm": ad.MaxRiderHeightCM,
				"suitableLevels":   ad.SuitableLevels,
				"contributionEuro": ad.ContributionEuro,
				"description":      ad.Description,
				"photos":           ad.Photos,
				"videos":           ad.Videos,
				"isPublished":      ad.IsPublished,
				"updatedAt":        ad.UpdatedAt,
			}},
		)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		if result.MatchedCount == 0 {
			respondWithError(c, http.StatusNotFound, route, "horse ad not found")
			return
		}

		c.JSON(http.StatusOK, gin.H{"updated": true})
	}
}

func DeleteHorseAd(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /owner/horses/:id"
		defer handlePanic(c, route)

		user, ok := requireUser(c, db)
		if !ok {
			return
		}

		adID, err := primitive.ObjectIDFromHex(strings.TrimSpace(c.Param("id")))
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid horse ad id")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		now := time.Now()
		result, err := db.Collection("horse_ads").UpdateOne(ctx,
			bson.M{"_id": adID, "ownerId": user.ID, "isDeleted": bson.M{"$ne": true}},
			bson.M{"$set": bson.M{
				"isDeleted":   true,
				"isPublished": false,
				"deletedAt":   now,
				"updatedAt":   now,
			}},
		)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		if result.MatchedCount == 0 {
			respondWithError(c, http.StatusNotFound, route, "horse ad not found")
			return
		}

		log.Printf("[%s] horse ad soft deleted: %s", route, adID.Hex())
		c.JSON(http.StatusOK, gin.H{"deleted": true})
	}
}

func GetOwnerHorseAds(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /owner/horses"
		defer handlePanic(c, route)

		user, ok := requireUser(c, db)
		if !ok {
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		cursor, err := db.Collection("horse_ads").Find(ctx,
			bson.M{"ownerId": user.ID, "isDeleted": bson.M{"$ne": true}},
			options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}),
		)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		defer cursor.Close(ctx)

		ads := make([]models.HorseAd, 0)
		if err := cursor.All(ctx, &ads); err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "decode error")
			return
		}
		c.JSON(http.StatusOK, ads)
	}
}

// GetHorses is the public browse endpoint. Pagination applies only when
// both page and limit are present, mirroring the rest of the surface.
func GetHorses(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /horses"
		defer handlePanic(c, route)

		log.Printf(
			"[%s] hit page=%s limit=%s type=%s city=%s search=%s",
			route,
			c.Query("page"),
			c.Query("limit"),
			c.Query("type"),
			c.Query("city"),
			c.Query("search"),
		)

		if err := ensureDBConnection(c.Request.Context(), db); err != nil {
			respondWithError(c, http.StatusServiceUnavailable, route, "database unavailable")
			return
		}

		filter := bson.M{
			"isPublished": true,
			"isDeleted":   bson.M{"$ne": true},
		}
		if horseType := strings.TrimSpace(c.Query("type")); horseType != "" {
			filter["type"] = horseType
		}
		if city := strings.TrimSpace(c.Query("city")); city != "" {
			filter["city"] = bson.M{"$regex": city, "$options": "i"}
		}
		if discipline := strings.TrimSpace(c.Query("discipline")); discipline != "" {
			filter["disciplines"] = bson.M{"$in": []string{discipline}}
		}
		if search := strings.TrimSpace(c.Query("search")); search != "" {
			filter["name"] = bson.M{"$regex": search, "$options": "i"}
		}

		findOptions := options.Find().
			SetSort(bson.D{{Key: "createdAt", Value: -1}})

		pageStr := c.Query("page")
		limitStr := c.Query("limit")
		if pageStr != "" && limitStr != "" {
			page, limit, err := parsePaginationParams(pageStr, limitStr)
			if err != nil {
				respondWithError(c, http.StatusBadRequest, route, "invalid pagination params")
				return
			}
			findOptions.
				SetSkip((page - 1) * limit).
				SetLimit(limit)
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		cursor, err := db.Collection("horse_ads").Find(ctx, filter, findOptions)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		defer cursor.Close(ctx)

		ads := make([]models.HorseAd, 0)
		if err := cursor.All(ctx, &ads); err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "decode error")
			return
		}

		log.Printf("[%s] returning %d horses", route, len(ads))
		c.JSON(http.StatusOK, ads)
	}
}

func GetHorse(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /horses/:id"
		defer handlePanic(c, route)

		adID, err := primitive.ObjectIDFromHex(strings.TrimSpace(c.Param("id")))
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid horse ad id")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var ad models.HorseAd
		err = db.Collection("horse_ads").FindOne(ctx, bson.M{
			"_id":         adID,
			"isPublished": true,
			"isDeleted":   bson.M{"$ne": true},
		}).Decode(&ad)
		if err == mongo.ErrNoDocuments {
			respondWithError(c, http.StatusNotFound, route, "horse ad not found")
			return
		}
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		c.JSON(http.StatusOK, ad)
	}
}
