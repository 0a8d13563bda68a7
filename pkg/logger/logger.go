package logger

import (
	"os"

	"github.com/sirupsen/logrus"
)

// New returns a JSON logger on stdout. An unknown level falls back to info.
func New(level string) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)
	logger.SetFormatter(&logrus.JSONFormatter{})

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		logger.Warnf("Invalid log level '%s', using default 'info'. Error: %v", level, err)
		lvl = logrus.InfoLevel
	}
	logger.SetLevel(lvl)
	return logger
}
