package logging

import "go.uber.org/zap"

// New builds the zap logger for the given environment. Production gets the
// JSON production config, development the console config; anything else gets
// the deterministic example logger.
func New(env string) (*zap.Logger, error) {
	switch env {
	case "production":
		return zap.NewProduction()
	case "development":
		return zap.NewDevelopment()
	}
	return zap.NewExample(), nil
}
