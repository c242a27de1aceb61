package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"

	"horsesharing/internal/database"
	"horsesharing/internal/draft"
	"horsesharing/internal/models"
	"horsesharing/internal/profile"
)

// GetRiderProfile returns the stored profile, preferring the live draft of
// an open editing session over the persisted document.
func GetRiderProfile(db *mongo.Database, store *database.RiderProfileStore, sessions *draft.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /rider-profile"
		defer handlePanic(c, route)

		user, ok := requireUser(c, db)
		if !ok {
			return
		}

		if session, live := sessions.Peek(user.ID); live {
			c.JSON(http.StatusOK, session.Snapshot())
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		prof, found, err := store.LoadRiderProfile(ctx, user.ID)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		if !found {
			respondWithError(c, http.StatusNotFound, route, "rider profile not found")
			return
		}
		c.JSON(http.StatusOK, prof)
	}
}

// SaveRiderProfile is the explicit whole-document save. It replaces the
// draft, persists immediately and reports the resulting progress.
func SaveRiderProfile(db *mongo.Database, sessions *draft.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /rider-profile"
		defer handlePanic(c, route)

		user, ok := requireUser(c, db)
		if !ok {
			return
		}

		var incoming models.RiderProfile
		if err := c.ShouldBindJSON(&incoming); err != nil {
			log.Printf("[%s] invalid body: %v", route, err)
			respondWithError(c, http.StatusBadRequest, route, "invalid body")
			return
		}

		session, err := sessions.Session(c.Request.Context(), user.ID)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		current := session.Snapshot()
		if current.IsPublished {
			respondWithError(c, http.StatusConflict, route, "profile is published and read-only")
			return
		}

		// Server-owned fields never come from the client.
		incoming.ID = current.ID
		incoming.UserID = user.ID
		incoming.IsPublished = false
		incoming.CreatedAt = current.CreatedAt
		incoming.Normalize()

		session.Replace(incoming)
		if err := session.Flush(c.Request.Context()); err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "save failed")
			return
		}

		log.Printf("[%s] profile saved for %s", route, user.ID.Hex())
		c.JSON(http.StatusOK, gin.H{
			"profile":  session.Snapshot(),
			"progress": session.Progress(),
		})
	}
}

// GetRiderProgress reports completeness, the incomplete steps and the
// publishability verdict with its reasons.
func GetRiderProgress(db *mongo.Database, store *database.RiderProfileStore, sessions *draft.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /rider-profile/progress"
		defer handlePanic(c, route)

		user, ok := requireUser(c, db)
		if !ok {
			return
		}

		var prof models.RiderProfile
		if session, live := sessions.Peek(user.ID); live {
			prof = session.Snapshot()
		} else {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
			defer cancel()

			stored, found, err := store.LoadRiderProfile(ctx, user.ID)
			if err != nil {
				respondWithError(c, http.StatusInternalServerError, route, "db error")
				return
			}
			if !found {
				respondWithError(c, http.StatusNotFound, route, "rider profile not found")
				return
			}
			prof = stored
		}

		prog := profile.Evaluate(&prof)
		c.JSON(http.StatusOK, gin.H{
			"completionPercentage": prog.Percent,
			"incompleteSteps":      prog.Incomplete,
			"publishableReady":     prog.Publishable,
			"publishProblems":      profile.PublishProblems(&prof),
			"matchingScore":        profile.MatchScore(&prof),
		})
	}
}
