package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Redis struct {
	Host     string
	Port     string
	Password string
	Enabled  bool
}

type Config struct {
	Port           string
	AWSRegion      string
	S3Bucket       string
	Redis          Redis
	MatchThreshold float64 // minimum score (percent) for a match to be persisted
	MatchWorkers   int     // concurrent pair-scoring width for the all-users pass
}

const logtag = "[config]"

// Load reads configuration from the environment, optionally seeded from a
// .env file. Every key has a working default so a bare environment still
// boots against local defaults.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Printf("%s no .env file, using environment only", logtag)
	}

	cfg := &Config{
		Port:      getenv("PORT", "8080"),
		AWSRegion: getenv("AWS_REGION", "us-east-1"),
		S3Bucket:  getenv("S3_BUCKET_NAME", "seenafile-media"),
		Redis: Redis{
			Host:     getenv("REDIS_HOST", "localhost"),
			Port:     getenv("REDIS_PORT", "6379"),
			Password: getenv("REDIS_PASSWORD", ""),
			Enabled:  getenvBool("REDIS_ENABLED", false),
		},
		MatchThreshold: getenvFloat("MATCH_THRESHOLD", 20),
		MatchWorkers:   getenvInt("MATCH_WORKERS", 8),
	}

	log.Printf("%s loaded: port=%s region=%s threshold=%.0f workers=%d redis=%v",
		logtag, cfg.Port, cfg.AWSRegion, cfg.MatchThreshold, cfg.MatchWorkers, cfg.Redis.Enabled)
	return cfg
}

func getenv(key, defaultValue string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultValue
}

func getenvFloat(key string, defaultValue float64) float64 {
	val := os.Getenv(key)
	if val == "" {
		return defaultValue
	}
	f, err := strconv.ParseFloat(val, 64)
	if err != nil {
		log.Printf("%s invalid %s=%q, using default %v", logtag, key, val, defaultValue)
		return defaultValue
	}
	return f
}

func getenvInt(key string, defaultValue int) int {
	val := os.Getenv(key)
	if val == "" {
		return defaultValue
	}
	i, err := strconv.Atoi(val)
	if err != nil || i <= 0 {
		log.Printf("%s invalid %s=%q, using default %v", logtag, key, val, defaultValue)
		return defaultValue
	}
	return i
}

func getenvBool(key string, defaultValue bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(val)
	if err != nil {
		log.Printf("%s invalid %s=%q, using default %v", logtag, key, val, defaultValue)
		return defaultValue
	}
	return b
}
