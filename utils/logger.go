package utils

import (
	"os"

	"github.com/sirupsen/logrus"
)

var (
	InfoLogger  = logrus.New()
	ErrorLogger = logrus.New()
)

// InitLogger sets up the info logger on stdout and the error logger on stderr.
// An unknown level falls back to info. The loggers are configured in place, so
// goroutines already holding them keep working.
func InitLogger(level string) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}

	InfoLogger.SetOutput(os.Stdout)
	InfoLogger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	ErrorLogger.SetOutput(os.Stderr)
	ErrorLogger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	// Printf logs at info level, so both loggers follow the configured level
	InfoLogger.SetLevel(lvl)
	ErrorLogger.SetLevel(lvl)
}
