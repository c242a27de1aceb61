package handlers

import (
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"

	"horsesharing/internal/draft"
)

type visibilityRequest struct {
	Hidden *bool `json:"hidden" binding:"required"`
}

// GetDraft opens (or resumes) the editing session and returns the live
// draft with its progress.
func GetDraft(db *mongo.Database, sessions *draft.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /rider-profile/draft"
		defer handlePanic(c, route)

		user, ok := requireUser(c, db)
		if !ok {
			return
		}

		session, err := sessions.Session(c.Request.Context(), user.ID)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"profile":  session.Snapshot(),
			"progress": session.Progress(),
		})
	}
}

// PatchDraftSection replaces one section of the draft. The body is the
// whole new section state; the autosave scheduler picks the edit up.
func PatchDraftSection(db *mongo.Database, sessions *draft.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PATCH /rider-profile/draft/:section"
		defer handlePanic(c, route)

		user, ok := requireUser(c, db)
		if !ok {
			return
		}

		payload, err := io.ReadAll(c.Request.Body)
		if err != nil || len(payload) == 0 {
			respondWithError(c, http.StatusBadRequest, route, "request body is required")
			return
		}

		session, err := sessions.Session(c.Request.Context(), user.ID)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		if err := session.ApplySection(c.Param("section"), payload); err != nil {
			if errors.Is(err, draft.ErrPublished) {
				respondWithError(c, http.StatusConflict, route, "profile is published and read-only")
				return
			}
			log.Printf("[%s] apply %s: %v", route, c.Param("section"), err)
			respondWithError(c, http.StatusBadRequest, route, err.Error())
			return
		}

		c.JSON(http.StatusOK, gin.H{"progress": session.Progress()})
	}
}

// SetDraftVisibility mirrors the editing tab's visibility: hidden pauses
// autosave, visible resumes it.
func SetDraftVisibility(db *mongo.Database, sessions *draft.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /rider-profile/draft/visibility"
		defer handlePanic(c, route)

		user, ok := requireUser(c, db)
		if !ok {
			return
		}

		var req visibilityRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		session, live := sessions.Peek(user.ID)
		if !live {
			// No session, nothing to pause.
			c.JSON(http.StatusOK, gin.H{"hidden": *req.Hidden})
			return
		}

		session.SetHidden(*req.Hidden)
		c.JSON(http.StatusOK, gin.H{"hidden": *req.Hidden})
	}
}

// SaveDraft is the explicit save: it flushes immediately, regardless of
// timers and the completeness floor.
func SaveDraft(db *mongo.Database, sessions *draft.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /rider-profile/draft/save"
		defer handlePanic(c, route)

		user, ok := requireUser(c, db)
		if !ok {
			return
		}

		session, err := sessions.Session(c.Request.Context(), user.ID)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		if err := session.Flush(c.Request.Context()); err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "save failed")
			return
		}
		c.JSON(http.StatusOK, gin.H{"progress": session.Progress()})
	}
}

// CloseDraft flushes pending edits and tears the session down, used when
// the user leaves the wizard.
func CloseDraft(db *mongo.Database, sessions *draft.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /rider-profile/draft"
		defer handlePanic(c, route)

		user, ok := requireUser(c, db)
		if !ok {
			return
		}

		if err := sessions.Close(c.Request.Context(), user.ID); err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "save failed")
			return
		}
		c.JSON(http.StatusOK, gin.H{"closed": true})
	}
}
