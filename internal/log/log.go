// Package log is the application's logging facade over logrus.
package log

import (
	"io"

	log "github.com/sirupsen/logrus"
)

func Debug(format string, args ...any) {
	log.Debugf(format, args...)
}

func Info(format string, args ...any) {
	log.Infof(format, args...)
}

func Warn(format string, args ...any) {
	log.Warnf(format, args...)
}

func Error(format string, args ...any) {
	log.Errorf(format, args...)
}

func Fatal(format string, args ...any) {
	log.Fatalf(format, args...)
}

// SetLevel parses level ("debug", "info", ...) and applies it.
// Unknown levels leave the current level untouched.
func SetLevel(level string) error {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return err
	}
	log.SetLevel(lvl)
	return nil
}

// SetOutput redirects log output, e.g. away from the terminal while the TUI owns it.
func SetOutput(w io.Writer) {
	log.SetOutput(w)
}

// Logger exposes the underlying logger for libraries that accept one.
func Logger() *log.Logger {
	return log.StandardLogger()
}
