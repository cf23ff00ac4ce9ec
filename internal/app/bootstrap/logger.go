// internal/app/bootstrap/logger.go
package bootstrap

import (
	"github.com/dalemusser/waffle/logging"
	"go.uber.org/zap"
)

// NewLogger builds the service logger with waffle's BuildLogger (JSON in
// prod, console otherwise) and tags every entry with the service name.
func NewLogger(env, level string) (*zap.Logger, error) {
	logger, err := logging.BuildLogger(level, env)
	if err != nil {
		return nil, err
	}
	return logger.With(zap.String("service", "orphanagecare")), nil
}
