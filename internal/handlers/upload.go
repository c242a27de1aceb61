package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
)

type deleteUploadRequest struct {
	Path string `json:"path" binding:"required"`
}

// UploadRiderMedia stores one photo or video for the rider media section.
// The returned url goes into the media list through a section patch; the
// upload itself does not touch the draft.
func UploadRiderMedia(db *mongo.Database, uploadDir string) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /uploads/rider-media"
		defer handlePanic(c, route)

		if _, ok := requireUser(c, db); !ok {
			return
		}

		kind := strings.TrimSpace(c.DefaultQuery("kind", "photo"))
		if kind != "photo" && kind != "video" {
			respondWithError(c, http.StatusBadRequest, route, "kind must be photo or video")
			return
		}

		file, err := c.FormFile("file")
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "file is required")
			return
		}

		relPath, err := saveUpload(uploadDir, file, kind, "riders")
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, err.Error())
			return
		}

		c.JSON(http.StatusCreated, gin.H{"url": relPath, "kind": kind})
	}
}

// UploadHorseMedia stores one photo or video for a horse ad.
func UploadHorseMedia(db *mongo.Database, uploadDir string) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /uploads/horse-media"
		defer handlePanic(c, route)

		if _, ok := requireUser(c, db); !ok {
			return
		}

		kind := strings.TrimSpace(c.DefaultQuery("kind", "photo"))
		if kind != "photo" && kind != "video" {
			respondWithError(c, http.StatusBadRequest, route, "kind must be photo or video")
			return
		}

		file, err := c.FormFile("file")
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "file is required")
			return
		}

		relPath, err := saveUpload(uploadDir, file, kind, "horses")
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, err.Error())
			return
		}

		c.JSON(http.StatusCreated, gin.H{"url": relPath, "kind": kind})
	}
}

// DeleteUpload removes a stored media file after it was dropped from a
// media list.
func DeleteUpload(db *mongo.Database, uploadDir string) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /uploads"
		defer handlePanic(c, route)

		if _, ok := requireUser(c, db); !ok {
			return
		}

		var req deleteUploadRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		if err := safeDeleteUpload(uploadDir, req.Path); err != nil {
			respondWithError(c, http.StatusBadRequest, route, err.Error())
			return
		}
		c.JSON(http.StatusOK, gin.H{"deleted": true})
	}
}
