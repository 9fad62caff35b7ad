package config

import (
	"sync"

	"github.com/sirupsen/logrus"
)

var (
	loggerOnce sync.Once
	logger     *logrus.Logger
)

// GetLogger returns the shared application logger. JSON output in production,
// human-readable text otherwise.
func GetLogger() *logrus.Logger {
	loggerOnce.Do(func() {
		logger = logrus.New()
		logger.SetLevel(logrus.InfoLevel)
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	})
	return logger
}

// UseJSONLogging switches the shared logger to JSON output (production).
func UseJSONLogging() {
	GetLogger().SetFormatter(&logrus.JSONFormatter{})
}
