package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

const (
	FormatText = "text"
	FormatJSON = "json"
)

type Options struct {
	Level  string
	Format string
	Output io.Writer
}

func New(options Options) (*logrus.Logger, error) {
	logger := logrus.New()

	output := options.Output
	if output == nil {
		output = os.Stdout
	}
	logger.SetOutput(output)

	levelName := strings.TrimSpace(options.Level)
	if levelName == "" {
		levelName = "info"
	}
	level, err := logrus.ParseLevel(levelName)
	if err != nil {
		return nil, fmt.Errorf("parse log level: %w", err)
	}
	logger.SetLevel(level)

	switch strings.ToLower(strings.TrimSpace(options.Format)) {
	case "", FormatText:
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	case FormatJSON:
		logger.SetFormatter(&logrus.JSONFormatter{})
	default:
		return nil, fmt.Errorf("unsupported log format %q", options.Format)
	}

	return logger, nil
}

// Component returns an entry tagged with the component name; nil loggers
// produce a discarding entry.
func Component(logger logrus.FieldLogger, name string) *logrus.Entry {
	if logger == nil {
		return Discard().WithField("component", name)
	}
	return logger.WithField("component", name)
}

func Discard() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}
