// Package config provides runtime configuration values for the service.
package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds configuration knobs for the HTTP server, the document
// store and auth.
type Config struct {
	HTTPAddr        string
	ShutdownTimeout time.Duration
	StoreKind       string
	MongoURI        string
	MongoDB         string
	JWTSecret       string
	TokenTTL        time.Duration
	UploadDir       string
}

// DefaultJWTSecret is only suitable for local development; main warns
// when it is in effect.
const DefaultJWTSecret = "ecocart-dev-secret"

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func atoienv(key string, def int) int {
	v := getenv(key, "")
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func durenvs(key string, defSec int) time.Duration {
	sec := atoienv(key, defSec)
	return time.Duration(sec) * time.Second
}

func durenvmin(key string, defMin int) time.Duration {
	m := atoienv(key, defMin)
	return time.Duration(m) * time.Minute
}

// Load collects configuration from environment with defaults.
func Load() Config {
	return Config{
		HTTPAddr:        getenv("HTTP_ADDR", ":8080"),
		ShutdownTimeout: durenvs("SHUTDOWN_TIMEOUT", 15),
		StoreKind:       getenv("STORE_KIND", "memory"),
		MongoURI:        getenv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:         getenv("MONGO_DB", "ecocart"),
		JWTSecret:       getenv("JWT_SECRET", DefaultJWTSecret),
		TokenTTL:        durenvmin("TOKEN_TTL_MIN", 60),
		UploadDir:       getenv("UPLOAD_DIR", "uploads/products"),
	}
}
