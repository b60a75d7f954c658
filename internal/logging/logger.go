package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/bbajagain1/printsched/internal/config"
)

// VersionKey is the field carrying the build version.
const VersionKey = "version"

// Logger represents logger instance
type Logger struct {
	*logrus.Logger
	version string
	logFile *os.File
}

var (
	// stdLogger is the global logger
	stdLogger *Logger
	// once ensures that the logger is initialized only once
	once sync.Once
)

// StdLogger returns the single logger instance
func StdLogger() *Logger {
	once.Do(func() {
		stdLogger = New()
	})
	return stdLogger
}

// New returns a text logger writing warnings and above to stderr.
func New() *Logger {
	l := &Logger{Logger: logrus.New()}
	l.SetOutput(os.Stderr)
	l.SetLevel(logrus.WarnLevel)
	l.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	return l
}

// SetVersion sets the version for logging
func (l *Logger) SetVersion(v string) {
	l.version = v
}

// Entry returns an entry carrying the version field when one is set.
func (l *Logger) Entry() *logrus.Entry {
	e := logrus.NewEntry(l.Logger)
	if l.version != "" {
		e = e.WithField(VersionKey, l.version)
	}
	return e
}

// Init initializes the logger with the given configuration and returns a
// cleanup func closing any log file.
func (l *Logger) Init(c *config.Logger) (func(), error) {
	if c == nil {
		return func() {}, nil
	}
	if c.Level < int(logrus.PanicLevel) || c.Level > int(logrus.TraceLevel) {
		return nil, fmt.Errorf("invalid log level %d (want 0-6)", c.Level)
	}
	l.SetLevel(logrus.Level(c.Level))

	switch c.Format {
	case "json":
		l.SetFormatter(&logrus.JSONFormatter{})
	default:
		l.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	}

	switch c.Output {
	case "stdout":
		l.SetOutput(os.Stdout)
	case "file":
		if c.OutputFile == "" {
			return nil, fmt.Errorf("logger output is file but no output_file is set")
		}
		if err := l.setupLogFile(c.OutputFile); err != nil {
			return nil, err
		}
	case "discard":
		l.SetOutput(io.Discard)
	default:
		l.SetOutput(os.Stderr)
	}

	return func() {
		if l.logFile != nil {
			l.SetOutput(os.Stderr)
			_ = l.logFile.Close()
			l.logFile = nil
		}
	}, nil
}

// setupLogFile sets up the log file
func (l *Logger) setupLogFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	l.logFile = f
	l.SetOutput(f)
	return nil
}
