package config

import (
	"os"
	"strconv"

	"go.uber.org/zap"

	"github.com/advocate-tools/legal-case-manager/logging"
)

// Config holds the project config values
type Config struct {
	StorePath     string
	Environment   string
	MaxValueBytes int64
}

// DefaultMaxValueBytes caps a single stored collection at 64MB unless
// STORE_QUOTA_BYTES overrides it. Zero disables the quota.
const DefaultMaxValueBytes = 64 << 20

// New sets up all config related services
func New() *Config {
	env := os.Getenv("APP_ENV")

	//setup zap logger and replace default logger
	logger, err := logging.New(env)
	if err != nil {
		logger = zap.NewExample()
	}
	defer logger.Sync()
	_ = zap.ReplaceGlobals(logger)

	return &Config{
		StorePath:     getenv("STORE_PATH", "./legal_manager.db"),
		Environment:   env,
		MaxValueBytes: getenvInt64("STORE_QUOTA_BYTES", DefaultMaxValueBytes),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvInt64(key string, fallback int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		zap.S().Warnw("ignoring malformed env value", "key", key, "value", v)
		return fallback
	}
	return n
}
