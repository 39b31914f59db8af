// Package logging configures the global logrus logger.
package logging

import (
	"strings"

	"catalog/relations/internal/config"

	log "github.com/sirupsen/logrus"
)

// Setup applies level and format from cfg to the standard logger.
func Setup(cfg config.LogConfig) {
	log.SetLevel(ParseLevel(cfg.Level))

	switch strings.ToLower(cfg.Format) {
	case "json":
		log.SetFormatter(&log.JSONFormatter{})
	default:
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
}

// ParseLevel falls back to info for unknown levels.
func ParseLevel(level string) log.Level {
	switch strings.ToLower(level) {
	case "debug":
		return log.DebugLevel
	case "info":
		return log.InfoLevel
	case "warn", "warning":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}
