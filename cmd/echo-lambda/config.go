package main

import (
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const (
	envLogLevel  = "LOG_LEVEL"
	envLogFormat = "LOG_FORMAT"
	envSchema    = "ECHO_SCHEMA"

	logFormatJSON = "json"
	logFormatText = "text"
)

type config struct {
	LogLevel   logrus.Level
	LogFormat  string
	SchemaPath string
}

// envDefault returns the value of an environment variable, or def when it is
// unset or empty.
func envDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return def
}

func loadConfig() (config, error) {
	level, err := logrus.ParseLevel(envDefault(envLogLevel, "info"))
	if err != nil {
		return config{}, errors.Wrapf(err, "invalid %s", envLogLevel)
	}

	format := strings.ToLower(envDefault(envLogFormat, logFormatJSON))
	if format != logFormatJSON && format != logFormatText {
		return config{}, errors.Errorf("invalid %s %q, expected %q or %q", envLogFormat, format, logFormatJSON, logFormatText)
	}

	return config{
		LogLevel:   level,
		LogFormat:  format,
		SchemaPath: os.Getenv(envSchema),
	}, nil
}

func newLogger(cfg config) *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(cfg.LogLevel)

	if cfg.LogFormat == logFormatText {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}

	return logger
}
