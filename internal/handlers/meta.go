package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"horsesharing/internal/models"
)

// GetOptions returns the vocabularies the onboarding wizard renders its
// choice widgets from. Static, so no auth and no database.
func GetOptions() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"weekDays":           models.WeekDays,
			"timeBlocks":         models.TimeBlocks,
			"transportOptions":   models.TransportOptions,
			"ridingGoals":        models.RidingGoals,
			"disciplines":        models.Disciplines,
			"willingTasks":       models.WillingTasks,
			"healthRestrictions": models.HealthRestrictions,
			"noGos":              models.NoGos,
			"personalityStyles":  models.PersonalityStyles,
			"horseTypes":         models.HorseTypes,
			"activityModes":      models.ActivityModes,
		})
	}
}
