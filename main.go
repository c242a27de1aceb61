package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"horsesharing/internal/config"
	"horsesharing/internal/database"
	"horsesharing/internal/draft"
	"horsesharing/internal/handlers"
	"horsesharing/internal/middleware"
)

func main() {
	config.Load()

	client, err := database.Connect(config.AppEnv.MongoURI)
	if err != nil {
		log.Fatal(err)
	}

	db := client.Database(config.AppEnv.DBName)

	log.Println("MongoDB connected to:", db.Name())

	if err := database.EnsureUserIndexes(db); err != nil {
		log.Printf("⚠️ user index warning: %v", err)
	}
	if err := database.EnsureProfileIndexes(db); err != nil {
		log.Printf("⚠️ profile index warning: %v", err)
	}
	if err := database.EnsureHorseAdIndexes(db); err != nil {
		log.Printf("⚠️ horse ad index warning: %v", err)
	}

	cache := database.ConnectRedis(config.AppEnv.RedisURL)

	profiles := database.NewRiderProfileStore(db)
	sessions := draft.NewManager(profiles, draft.Options{
		Debounce:      config.AppEnv.AutosaveDebounce,
		Interval:      config.AppEnv.AutosaveInterval,
		IdleSaveLimit: config.AppEnv.AutosaveIdleLimit,
		MinPercent:    config.AppEnv.AutosaveMinPercent,
	})

	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{config.AppEnv.CORSOrigin},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Static("/uploads", config.AppEnv.UploadDir+"/uploads")

	r.GET("/", handlers.Home())
	r.GET("/health", handlers.Health(db))
	r.GET("/meta/options", handlers.GetOptions())
	r.GET("/geo/lookup", handlers.GeoLookup(cache, config.AppEnv.GeoLookupURL))

	r.GET("/horses", handlers.GetHorses(db))
	r.GET("/horses/:id", handlers.GetHorse(db))

	auth := r.Group("/auth")
	auth.Use(middleware.UserAuth(config.AppEnv.JWTSecret))
	{
		auth.GET("/me", handlers.GetMe(db))
		auth.POST("/set-profile-type", handlers.SetProfileType(db))
		auth.POST("/complete-onboarding", handlers.CompleteOnboarding(db, sessions))
		auth.POST("/reset-profile", handlers.ResetProfile(db, sessions))
	}

	user := r.Group("/")
	user.Use(middleware.UserAuth(config.AppEnv.JWTSecret))
	{
		user.GET("/rider-profile", handlers.GetRiderProfile(db, profiles, sessions))
		user.POST("/rider-profile", handlers.SaveRiderProfile(db, sessions))
		user.GET("/rider-profile/progress", handlers.GetRiderProgress(db, profiles, sessions))

		user.GET("/rider-profile/draft", handlers.GetDraft(db, sessions))
		user.PATCH("/rider-profile/draft/:section", handlers.PatchDraftSection(db, sessions))
		user.POST("/rider-profile/draft/visibility", handlers.SetDraftVisibility(db, sessions))
		user.POST("/rider-profile/draft/save", handlers.SaveDraft(db, sessions))
		user.DELETE("/rider-profile/draft", handlers.CloseDraft(db, sessions))

		user.GET("/owner-profile", handlers.GetOwnerProfile(db))
		user.POST("/owner-profile", handlers.SaveOwnerProfile(db))

		user.GET("/owner/horses", handlers.GetOwnerHorseAds(db))
		user.POST("/owner/horses", handlers.CreateHorseAd(db))
		user.PUT("/owner/horses/:id", handlers.UpdateHorseAd(db))
		user.DELETE("/owner/horses/:id", handlers.DeleteHorseAd(db))

		user.GET("/favorites", handlers.GetFavorites(db))
		user.POST("/favorites", handlers.AddFavorite(db))
		user.DELETE("/favorites/:horseAdId", handlers.DeleteFavorite(db))

		user.POST("/uploads/rider-media", handlers.UploadRiderMedia(db, config.AppEnv.UploadDir))
		user.POST("/uploads/horse-media", handlers.UploadHorseMedia(db, config.AppEnv.UploadDir))
		user.DELETE("/uploads", handlers.DeleteUpload(db, config.AppEnv.UploadDir))
	}

	server := &http.Server{
		Addr:    ":" + config.AppEnv.Port,
		Handler: r,
	}

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down, flushing draft sessions")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	sessions.Shutdown(ctx)
	if err := server.Shutdown(ctx); err != nil {
		log.Println("server shutdown:", err)
	}
	if err := client.Disconnect(ctx); err != nil {
		log.Println("mongo disconnect:", err)
	}
}
