package config

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"git.home.luguber.info/inful/sitenav/internal/logfields"
)

// envFiles are loaded in order; a variable set by an earlier file (or by the
// process environment) is never overwritten by a later one.
var envFiles = []string{".env.local", ".env"}

func loadEnvFiles() {
	for _, envPath := range envFiles {
		if _, err := os.Stat(envPath); err != nil {
			continue
		}
		if err := godotenv.Load(envPath); err != nil {
			slog.Warn("Failed to load environment file", logfields.File(envPath), logfields.Error(err))
			continue
		}
		slog.Debug("Loaded environment variables", logfields.File(envPath))
	}
}
