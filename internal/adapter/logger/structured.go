// Package logger configures process-wide logrus output. Logs always go
// to stderr so stdout stays clean for report JSON.
package logger

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// Setup applies the global logging configuration. With structured set,
// entries are emitted as JSON lines; otherwise the default text format is
// kept for interactive use. A non-empty filePath mirrors entries into
// that file in addition to stderr.
func Setup(level logrus.Level, structured bool, filePath string) {
	logrus.SetLevel(level)
	if structured {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}

	out := io.Writer(os.Stderr)
	if filePath != "" {
		if file, err := os.OpenFile(filePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o666); err == nil {
			out = io.MultiWriter(os.Stderr, file)
		} else {
			logrus.WithError(err).Error("Could not create file for logging")
		}
	}
	logrus.SetOutput(out)
}
