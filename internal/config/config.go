package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
)

var AppEnv Config

type Config struct {
	MongoURI      string
	DBName        string
	JWTSecret     string
	RedisURL      string
	Port          string
	CORSOrigin    string
	UploadDir     string
	PublicBaseURL string
	GeoLookupURL  string

	AutosaveDebounce  time.Duration
	AutosaveInterval  time.Duration
	AutosaveIdleLimit int
	// AutosaveMinPercent is the completeness floor; drafts at or below it
	// are not autosaved.
	AutosaveMinPercent int
}

func Load() {
	if err := godotenv.Load(); err != nil {
		log.Println(".env not loaded:", err)
	}
	AppEnv = Config{
		MongoURI:      getEnvOrDefault("MONGO_URI", ""),
		DBName:        getEnvOrDefault("DB_NAME", "horsesharing"),
		JWTSecret:     getEnvOrDefault("JWT_SECRET", ""),
		RedisURL:      getEnvOrDefault("REDIS_URL", ""),
		Port:          getEnvOrDefault("PORT", "8080"),
		CORSOrigin:    getEnvOrDefault("CORS_ORIGIN", "http://localhost:5173"),
		UploadDir:     getEnvOrDefault("UPLOAD_DIR", "uploads"),
		PublicBaseURL: getEnvOrDefault("PUBLIC_BASE_URL", ""),
		GeoLookupURL:  getEnvOrDefault("GEO_LOOKUP_URL", ""),

		AutosaveDebounce:   getDurationEnv("AUTOSAVE_DEBOUNCE_MS", 1500, time.Millisecond),
		AutosaveInterval:   getDurationEnv("AUTOSAVE_INTERVAL_SEC", 30, time.Second),
		AutosaveIdleLimit:  getIntEnv("AUTOSAVE_IDLE_LIMIT", 4),
		AutosaveMinPercent: getIntEnv("AUTOSAVE_MIN_PERCENT", 10),
	}
}
