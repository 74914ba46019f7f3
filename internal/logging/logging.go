// Package logging builds the application logger from configuration.
package logging

import (
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/ivf-outcome-server/internal/domain"
)

// NewLogger constructs a logrus logger per the logging configuration.
// Unknown levels fall back to info rather than failing startup.
func NewLogger(cfg *domain.LoggingConfig) *logrus.Logger {
	logger := logrus.New()

	level, err := logrus.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	if strings.ToLower(cfg.Format) == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	return logger
}
