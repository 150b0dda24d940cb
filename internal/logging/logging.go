// Package logging holds the process-wide logrus logger.
package logging

import (
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

var log *logrus.Logger

// Init configures the logger. An unknown level falls back to info. When
// console is false and logFile is empty, output stays on the logrus default.
func Init(level, logFile string, console bool) error {
	log = logrus.New()

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	log.SetLevel(lvl)

	log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	var writers []io.Writer
	if console {
		writers = append(writers, os.Stderr)
	}
	if logFile != "" {
		if err := os.MkdirAll(filepath.Dir(logFile), 0o755); err != nil {
			return err
		}
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o666)
		if err != nil {
			return err
		}
		writers = append(writers, f)
	}
	if len(writers) > 0 {
		log.SetOutput(io.MultiWriter(writers...))
	}
	return nil
}

// Get returns the logger, creating a default one on first use.
func Get() *logrus.Logger {
	if log == nil {
		log = logrus.New()
	}
	return log
}

// WithField is shorthand for Get().WithField.
func WithField(key string, value interface{}) *logrus.Entry {
	return Get().WithField(key, value)
}

// WithFields is shorthand for Get().WithFields.
func WithFields(fields logrus.Fields) *logrus.Entry {
	return Get().WithFields(fields)
}

func Debugf(format string, args ...interface{}) {
	Get().Debugf(format, args...)
}

func Infof(format string, args ...interface{}) {
	Get().Infof(format, args...)
}
