// Package logging builds the logrus logger shared by commands and the store.
package logging

import (
	"io"
	"strings"

	"github.com/sirupsen/logrus"
)

// DefaultLevel keeps routine store activity out of a terminal session.
const DefaultLevel = logrus.WarnLevel

// New returns a text logger writing to out at the given level.
// An empty or unknown level falls back to DefaultLevel.
func New(level string, out io.Writer) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(out)
	logger.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
		DisableQuote:     true,
	})
	logger.SetLevel(ParseLevel(level))
	return logger
}

// ParseLevel parses a level name, returning DefaultLevel when it is not valid.
func ParseLevel(level string) logrus.Level {
	lvl, err := logrus.ParseLevel(strings.TrimSpace(level))
	if err != nil {
		return DefaultLevel
	}
	return lvl
}
