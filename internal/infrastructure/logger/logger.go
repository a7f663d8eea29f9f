package logger

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/eslsoft/lexrev/internal/infrastructure/config"
)

// New builds a configured logrus logger from application config.
func New(cfg *config.Config) (*logrus.Logger, error) {
	log := logrus.New()
	level, err := logrus.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, fmt.Errorf("parse log level: %w", err)
	}
	log.SetLevel(level)
	if cfg.Log.Format == "text" {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		log.SetFormatter(&logrus.JSONFormatter{})
	}
	return log, nil
}
