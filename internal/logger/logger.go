// internal/logger/logger.go
package logger

import (
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/proglide/admin-console/internal/config"
)

// Setup configures the standard logrus logger: level, formatter and outputs
// (stdout, a rotated file, or both).
func Setup(cfg config.LogConfig) (io.Closer, error) {
	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)

	if cfg.Format == "json" {
		logrus.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyTime:  "timestamp",
				logrus.FieldKeyLevel: "level",
				logrus.FieldKeyMsg:   "message",
			},
		})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05.000",
		})
	}

	var writers []io.Writer
	var closer io.Closer = nopCloser{}

	if cfg.Output == "file" || cfg.Output == "both" {
		if err := os.MkdirAll(filepath.Dir(cfg.File), 0o755); err != nil {
			return nil, err
		}
		fileWriter := &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSize,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAge,
			Compress:   cfg.Compress,
		}
		writers = append(writers, fileWriter)
		closer = fileWriter
	}

	if cfg.Output != "file" {
		writers = append(writers, os.Stdout)
	}

	logrus.SetOutput(io.MultiWriter(writers...))

	logrus.WithFields(logrus.Fields{
		"level":  level.String(),
		"format": cfg.Format,
		"output": cfg.Output,
	}).Info("Logger initialized")

	return closer, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
