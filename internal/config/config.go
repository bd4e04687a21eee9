package config // package config loads application configuration from environment variables

import (
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// Config holds all runtime configuration values.  Each field corresponds to
// an environment variable.  Secrets are kept as strings; durations are parsed
// with time.ParseDuration.
type Config struct {
	Env              string        // application environment (e.g. "development", "production")
	Port             string        // HTTP port to listen on
	DBUser           string        // database username
	DBPass           string        // database password (optional)
	DBHost           string        // database host address
	DBPort           string        // database port number
	DBName           string        // database name
	DBAutoMigrate    bool          // apply embedded migrations at startup
	SessionSecret    string        // secret used to sign session JWTs
	SessionMaxAge    time.Duration // lifetime of a session token
	SessionUpdateAge time.Duration // a token older than this is silently re-issued
	AdminPassword    string        // shared secret unlocking the CMS console
	AdminGateEnforce bool          // guard cleanup and user routes with the admin cookie
	BcryptCost       int           // bcrypt cost for password hashing
	MapToken         string        // map provider access token handed to the browser
	SongsDir         string        // directory holding songbook JSON files
	ActivityLogDir   string        // directory the activity consumer appends to
	AMQPURL          string        // RabbitMQ URL; empty disables activity events
}

// Load reads configuration values from environment variables and returns a
// Config.  A .env file in the working directory is loaded first when present.
// Required variables are enforced by must() and missing values abort startup.
func Load() Config {
	_ = godotenv.Load() // a missing .env is fine; real env always wins

	return Config{
		Env:              must("APP_ENV"),
		Port:             must("APP_PORT"),
		DBUser:           must("DB_USER"),
		DBPass:           os.Getenv("DB_PASS"), // empty allowed
		DBHost:           must("DB_HOST"),
		DBPort:           must("DB_PORT"),
		DBName:           must("DB_NAME"),
		DBAutoMigrate:    envBool("DB_AUTO_MIGRATE", true),
		SessionSecret:    must("SESSION_SECRET"),
		SessionMaxAge:    envDur("SESSION_MAX_AGE", 14*24*time.Hour),
		SessionUpdateAge: envDur("SESSION_UPDATE_AGE", 24*time.Hour),
		AdminPassword:    must("ADMIN_PASSWORD"),
		AdminGateEnforce: envBool("ADMIN_GATE_ENFORCE", false),
		BcryptCost:       envInt("BCRYPT_COST", 12),
		MapToken:         os.Getenv("MAP_TOKEN"),
		SongsDir:         envStr("SONGS_DIR", "songdata"),
		ActivityLogDir:   envStr("ACTIVITY_LOG_DIR", "logs"),
		AMQPURL:          amqpURL(),
	}
}

// IsDevelopment reports whether human-friendly console logging should be used.
func (c Config) IsDevelopment() bool {
	return c.Env == "development" || c.Env == "dev"
}

// amqpURL mirrors the broker lookup of the publisher and consumer:
// RABBITMQ_URL first, AMQP_URL as a fallback.
func amqpURL() string {
	if v := os.Getenv("RABBITMQ_URL"); v != "" {
		return v
	}
	return os.Getenv("AMQP_URL")
}

// must retrieves the value of a required environment variable.  If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatal().Str("key", key).Msg("missing required env var")
	}
	return v
}
