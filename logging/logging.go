package logging

import "go.uber.org/zap"

// New creates the zap logger for the given environment. production logs
// json at info, development and local log human readable output at debug,
// anything else gets the example logger.
func New(env string) (*zap.Logger, error) {
	switch env {
	case "production":
		return zap.NewProduction()
	case "development", "local":
		return zap.NewDevelopment()
	default:
		return zap.NewExample(), nil
	}
}
