// Package config loads driver station process configuration from the
// environment (and an optional .env file), mirroring the teacher
// pattern of one InitConfig/Load call near the top of main().
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"dspc/logging"
)

// Defaults mirror spec §4.1/§4.7 where the adapter doesn't override them.
const (
	DefaultTeam            = 0
	DefaultConsolePort      = "9001"
	DefaultHTTPPort         = "8080"
	EventBusBufferSize      = 1000
	MongoMinPoolSize        = 2
	MongoMaxPoolSize        = 10
	VoltageHistoryWindow    = 50
	PacketCaptureRingLength = 256
)

// Config holds everything the host process (cmd/dsconsole) needs to wire
// the core, the HTTP admin surface, the debug console, and telemetry.
type Config struct {
	Debug       bool
	Team        int
	ConsolePort string
	HTTPPort    string
	MongoURI    string
	MongoDB     string
}

// Load reads a .env file if present (missing file is not an error — the
// teacher's godotenv.Load call is best-effort the same way) and then
// environment variables, returning populated Config.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		logging.Print("no .env file loaded: %v", err)
	}

	logging.DEBUG_MODE = os.Getenv("DEBUG") == "true"

	cfg := &Config{
		Debug:       logging.DEBUG_MODE,
		Team:        envInt("TEAM_NUMBER", DefaultTeam),
		ConsolePort: envString("CONSOLE_PORT", DefaultConsolePort),
		HTTPPort:    envString("HTTP_PORT", DefaultHTTPPort),
		MongoURI:    os.Getenv("MONGODB_URI"),
		MongoDB:     envString("MONGODB_DATABASE", "dspc"),
	}
	return cfg
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		logging.Print("invalid int for %s=%q, using default %d", key, v, fallback)
		return fallback
	}
	return n
}

// RegisteringWaitTimeout bounds how long the telemetry writer waits for a
// Mongo connection before giving up on session startup persistence.
const RegisteringWaitTimeout = 30 * time.Second
