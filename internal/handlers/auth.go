package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"horsesharing/internal/draft"
	"horsesharing/internal/middleware"
	"horsesharing/internal/models"
	"horsesharing/internal/profile"
)

type setProfileTypeRequest struct {
	ProfileType string `json:"profileType" binding:"required,oneof=rider owner"`
}

// requireUser maps the verified identity to the local user document,
// creating it on first contact. The identity provider owns registration;
// a valid token is all it takes to exist here.
func requireUser(c *gin.Context, db *mongo.Database) (models.User, bool) {
	ident, ok := middleware.IdentityFrom(c)
	if !ok {
		log.Println("[AUTH] [ERROR] identity missing in context")
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return models.User{}, false
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	users := db.Collection("users")

	var user models.User
	err := users.FindOne(ctx, bson.M{"identityId": ident.Subject}).Decode(&user)
	if err == nil {
		return user, true
	}
	if err != mongo.ErrNoDocuments {
		log.Println("[AUTH] [ERROR] user lookup failed:", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "db error"})
		return models.User{}, false
	}

	now := time.Now()
	user = models.User{
		IdentityID: ident.Subject,
		Email:      ident.Email,
		Name:       ident.Name,
		IsActive:   true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	result, err := users.InsertOne(ctx, user)
	if err != nil {
		// A concurrent first request may have won the insert.
		if findErr := users.FindOne(ctx, bson.M{"identityId": ident.Subject}).Decode(&user); findErr == nil {
			return user, true
		}
		log.Println("[AUTH] [ERROR] user create failed:", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "db error"})
		return models.User{}, false
	}
	if id, ok := result.InsertedID.(interface{ Hex() string }); ok {
		log.Println("[AUTH] [INFO] user created:", id.Hex())
	}
	err = users.FindOne(ctx, bson.M{"identityId": ident.Subject}).Decode(&user)
	if err != nil {
		log.Println("[AUTH] [ERROR] user reload failed:", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "db error"})
		return models.User{}, false
	}
	return user, true
}

func GetMe(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /auth/me"
		defer handlePanic(c, route)

		user, ok := requireUser(c, db)
		if !ok {
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		hasRider := collectionHasUser(ctx, db, "rider_profiles", user)
		hasOwner := collectionHasUser(ctx, db, "owner_profiles", user)

		c.JSON(http.StatusOK, gin.H{
			"id":                  user.ID.Hex(),
			"email":               user.Email,
			"name":                user.Name,
			"phone":               user.Phone,
			"hasRiderProfile":     hasRider,
			"hasOwnerProfile":     hasOwner,
			"onboardingCompleted": user.OnboardingCompleted,
			"profileTypeChosen":   user.ProfileTypeChosen,
			"createdAt":           user.CreatedAt,
			"updatedAt":           user.UpdatedAt,
		})
	}
}

func collectionHasUser(ctx context.Context, db *mongo.Database, coll string, user models.User) bool {
	count, err := db.Collection(coll).CountDocuments(ctx, bson.M{"userId": user.ID})
	if err != nil {
		log.Printf("[AUTH] [WARN] %s count failed: %v", coll, err)
		return false
	}
	return count > 0
}

func SetProfileType(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /auth/set-profile-type"
		defer handlePanic(c, route)

		user, ok := requireUser(c, db)
		if !ok {
			return
		}

		var req setProfileTypeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		_, err := db.Collection("users").UpdateByID(ctx, user.ID, bson.M{
			"$set": bson.M{
				"profileTypeChosen": req.ProfileType,
				"updatedAt":         time.Now(),
			},
		})
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		log.Printf("[%s] profile type set to %s", route, req.ProfileType)
		c.JSON(http.StatusOK, gin.H{"profileTypeChosen": req.ProfileType})
	}
}

// CompleteOnboarding publishes the rider profile when every requirement is
// met and marks onboarding done. Owners have no publish gate; choosing the
// type and saving a profile is enough.
func CompleteOnboarding(db *mongo.Database, sessions *draft.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /auth/complete-onboarding"
		defer handlePanic(c, route)

		user, ok := requireUser(c, db)
		if !ok {
			return
		}

		if user.ProfileTypeChosen == models.ProfileTypeRider {
			session, err := sessions.Session(c.Request.Context(), user.ID)
			if err != nil {
				respondWithError(c, http.StatusInternalServerError, route, "db error")
				return
			}

			snap := session.Snapshot()
			problems := profile.PublishProblems(&snap)
			if len(problems) > 0 {
				log.Printf("[%s] profile not publishable: %d problems", route, len(problems))
				c.JSON(http.StatusBadRequest, gin.H{
					"error":   "profile is not publishable",
					"details": problems,
				})
				return
			}

			snap.IsPublished = true
			session.Replace(snap)
			if err := session.Flush(c.Request.Context()); err != nil {
				respondWithError(c, http.StatusInternalServerError, route, "save failed")
				return
			}
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		_, err := db.Collection("users").UpdateByID(ctx, user.ID, bson.M{
			"$set": bson.M{
				"onboardingCompleted": true,
				"updatedAt":           time.Now(),
			},
		})
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		log.Printf("[%s] onboarding completed for %s", route, user.ID.Hex())
		c.JSON(http.StatusOK, gin.H{"onboardingCompleted": true})
	}
}

// ResetProfile discards both profiles and the onboarding state. Meant for
// development and support, not the regular flow.
func ResetProfile(db *mongo.Database, sessions *draft.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /auth/reset-profile"
		defer handlePanic(c, route)

		user, ok := requireUser(c, db)
		if !ok {
			return
		}

		// Drop the live editing session first so a pending autosave cannot
		// resurrect the deleted document.
		if _, live := sessions.Peek(user.ID); live {
			if err := sessions.Close(c.Request.Context(), user.ID); err != nil {
				log.Printf("[%s] session close: %v", route, err)
			}
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		for _, coll := range []string{"rider_profiles", "owner_profiles"} {
			if _, err := db.Collection(coll).DeleteOne(ctx, bson.M{"userId": user.ID}); err != nil {
				respondWithError(c, http.StatusInternalServerError, route, "db error")
				return
			}
		}

		_, err := db.Collection("users").UpdateByID(ctx, user.ID, bson.M{
			"$set": bson.M{
				"onboardingCompleted": false,
				"updatedAt":           time.Now(),
			},
			"$unset": bson.M{"profileTypeChosen": ""},
		})
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		log.Printf("[%s] profiles reset for %s", route, user.ID.Hex())
		c.JSON(http.StatusOK, gin.H{"reset": true})
	}
}
