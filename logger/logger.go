package logger

import (
	"io"
	"os"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
)

var (
	projectLogger     *logrus.Logger
	projectLoggerOnce sync.Once
)

// GetProjectLogger returns the logger shared by every package in the project.
func GetProjectLogger() *logrus.Entry {
	projectLoggerOnce.Do(func() {
		projectLogger = logrus.New()
		projectLogger.SetOutput(os.Stderr)
		projectLogger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
		projectLogger.SetLevel(levelFromEnv())
	})
	return logrus.NewEntry(projectLogger)
}

// SetLevel changes the level of the project logger, e.g. "debug".
func SetLevel(name string) error {
	lvl, err := logrus.ParseLevel(strings.TrimSpace(name))
	if err != nil {
		return err
	}
	GetProjectLogger().Logger.SetLevel(lvl)
	return nil
}

// SetOutput redirects the project logger, e.g. while a TUI owns the terminal.
func SetOutput(w io.Writer) {
	GetProjectLogger().Logger.SetOutput(w)
}

func levelFromEnv() logrus.Level {
	if lvl, err := logrus.ParseLevel(os.Getenv("METRONOME_LOG_LEVEL")); err == nil {
		return lvl
	}
	return logrus.InfoLevel
}
