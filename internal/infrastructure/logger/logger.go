package logger

import (
	"os"
	"strings"

	log "github.com/sirupsen/logrus"

	"eventos_inscricoes/internal/infrastructure/config"
)

// Setup configures the global logrus logger from the log config.
// Unknown levels fall back to info.
func Setup(cfg config.LogConfig) {
	log.SetOutput(os.Stdout)

	if strings.EqualFold(cfg.Format, "json") {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}

	level, err := log.ParseLevel(cfg.Level)
	if err != nil {
		level = log.InfoLevel
	}
	log.SetLevel(level)
}
