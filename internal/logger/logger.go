// Package logger holds the shared logrus logger.
//
// The level comes from AUDIOTAG_LOG_LEVEL and defaults to warn, so the
// library is quiet unless asked. "silent" discards all output.
package logger

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// EnvLevel names the environment variable read at startup.
const EnvLevel = "AUDIOTAG_LOG_LEVEL"

const levelSilent = "silent"

var (
	defaultLogger *logrus.Logger

	// output is where logs go when not silenced.
	output io.Writer = os.Stderr
)

func init() {
	defaultLogger = logrus.New()
	defaultLogger.SetOutput(output)
	defaultLogger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	defaultLogger.SetLevel(logrus.WarnLevel)

	if level := os.Getenv(EnvLevel); level != "" {
		// An invalid level keeps the default.
		_ = ConfigureFromString(level)
	}
}

// WithName creates a child logger with a name field.
func WithName(name string) *logrus.Entry {
	return defaultLogger.WithField("name", name)
}

// WithFields creates a logger with additional fields.
func WithFields(fields logrus.Fields) *logrus.Entry {
	return defaultLogger.WithFields(fields)
}

// SetLevel sets the logging level and ends any silence.
func SetLevel(level logrus.Level) {
	defaultLogger.SetOutput(output)
	defaultLogger.SetLevel(level)
}

// SetOutput redirects log output. A silenced logger stays silent until
// the next level change.
func SetOutput(w io.Writer) {
	output = w
	if defaultLogger.Out != io.Discard {
		defaultLogger.SetOutput(w)
	}
}

// ConfigureFromString sets the level by name. "silent" discards output
// until another level is set.
func ConfigureFromString(levelStr string) error {
	levelStr = strings.ToLower(strings.TrimSpace(levelStr))
	if levelStr == levelSilent {
		defaultLogger.SetOutput(io.Discard)
		return nil
	}

	level, err := logrus.ParseLevel(levelStr)
	if err != nil {
		return err
	}
	SetLevel(level)
	return nil
}
