// Package logging builds the structured logger shared by all commands.
package logging

import (
	"io"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// Options controls logger construction.
type Options struct {
	// Debug forces the debug level.
	Debug bool
	// Level is a logrus level name; ignored when Debug is set.
	// Defaults to warn so regular command output stays clean.
	Level string
	// Format is "text" (default) or "json".
	Format string
}

// New creates a logger writing to w.
func New(w io.Writer, opts Options) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(w)

	if strings.EqualFold(opts.Format, "json") {
		logger.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: time.RFC3339Nano,
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyTime:  "ts",
				logrus.FieldKeyLevel: "level",
				logrus.FieldKeyMsg:   "message",
			},
		})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			DisableColors:   true,
			FullTimestamp:   true,
			TimestampFormat: time.RFC3339,
		})
	}

	logger.SetLevel(logrus.WarnLevel)
	if opts.Debug {
		logger.SetLevel(logrus.DebugLevel)
	} else if opts.Level != "" {
		if lvl, err := logrus.ParseLevel(opts.Level); err == nil {
			logger.SetLevel(lvl)
		}
	}

	return logger
}

// Discard returns a logger that drops everything.
func Discard() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	logger.SetLevel(logrus.PanicLevel)
	return logger
}

// Component returns an entry tagged with the component name.
func Component(logger *logrus.Logger, name string) *logrus.Entry {
	if logger == nil {
		logger = Discard()
	}
	return logger.WithField("component", name)
}
