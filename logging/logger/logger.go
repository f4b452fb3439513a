package logger

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/ncobase/posts/logging/logger/config"
	"github.com/sirupsen/logrus"
)

// Key constants
const (
	VersionKey = "version"
	ErrorKey   = "error"
)

// Logger represents logger instance
type Logger struct {
	*logrus.Logger
	version  string
	logFile  *os.File
	logPath  string
	stopRoll chan struct{}
	mu       sync.Mutex
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
		stdLogger = &Logger{
			Logger: logrus.New(),
		}
		stdLogger.SetFormatter(&logrus.JSONFormatter{})
	})
	return stdLogger
}

// Discard returns a standalone logger that drops every entry.
func Discard() *Logger {
	l := &Logger{Logger: logrus.New()}
	l.Logger.SetOutput(io.Discard)
	return l
}

// SetVersion sets the version for logging
func (l *Logger) SetVersion(v string) {
	l.version = v
}

// Init initializes the logger with the given configuration
func (l *Logger) Init(c *config.Config) (func(), error) {
	if c == nil {
		c = config.Default()
	}

	l.SetLevel(logrus.Level(c.Level))

	switch c.Format {
	case "json":
		l.SetFormatter(&logrus.JSONFormatter{})
	default:
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	switch c.Output {
	case "stderr":
		l.SetOutput(os.Stderr)
	case "file":
		l.logPath = c.OutputFile
		if l.logPath != "" {
			if err := l.setupLogFile(); err != nil {
				return nil, err
			}
			l.stopRoll = make(chan struct{})
			go l.periodicLogRotation(l.stopRoll)
		}
	default:
		l.SetOutput(os.Stdout)
	}

	if c.Elasticsearch != nil && len(c.Elasticsearch.Addresses) > 0 {
		hook, err := NewElasticSearchHook(c)
		if err != nil {
			return nil, fmt.Errorf("error initializing Elasticsearch hook: %w", err)
		}
		l.AddHook(hook)
	}

	// Return cleanup function
	return func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		if l.stopRoll != nil {
			close(l.stopRoll)
			l.stopRoll = nil
		}
		if l.logFile != nil {
			_ = l.logFile.Close()
			l.logFile = nil
		}
	}, nil
}

// setupLogFile sets up the log file
func (l *Logger) setupLogFile() error {
	if err := os.MkdirAll(filepath.Dir(l.logPath), 0755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}
	return l.rotateLog()
}

// rotateLog rotates the log
func (l *Logger) rotateLog() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	logFilePath := fmt.Sprintf("%s.%s.log", strings.TrimSuffix(l.logPath, ".log"), time.Now().Format("2006-01-02"))
	f, err := os.OpenFile(logFilePath, os.O_APPEND|os.O_WRONLY|os.O_CREATE, 0644)
	if err != nil {
		return fmt.Errorf("failed to open new log file: %w", err)
	}

	l.SetOutput(f)
	if l.logFile != nil {
		_ = l.logFile.Close()
	}
	l.logFile = f
	return nil
}

// periodicLogRotation rotates the log every 24 hours
func (l *Logger) periodicLogRotation(stop <-chan struct{}) {
	ticker := time.NewTicker(24 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			if err := l.rotateLog(); err != nil {
				l.Logger.Errorf("Error rotating log: %v", err)
			}
		}
	}
}

// entryFromContext creates a new log entry with fields from context
func (l *Logger) entryFromContext(ctx context.Context) *logrus.Entry {
	fields := logrus.Fields{}

	if traceID := getTraceID(ctx); traceID != "" {
		fields[traceKey] = traceID
	}

	if l.version != "" {
		fields[VersionKey] = l.version
	}

	return l.WithFields(fields)
}

// fieldsFromPairs turns alternating key/value arguments into logrus fields.
// A dangling key is logged under "!BADKEY".
func fieldsFromPairs(keysAndValues []any) logrus.Fields {
	fields := make(logrus.Fields, len(keysAndValues)/2)
	for i := 0; i < len(keysAndValues); i += 2 {
		if i+1 >= len(keysAndValues) {
			fields["!BADKEY"] = keysAndValues[i]
			break
		}
		key, ok := keysAndValues[i].(string)
		if !ok {
			key = fmt.Sprint(keysAndValues[i])
		}
		val := keysAndValues[i+1]
		if err, isErr := val.(error); isErr {
			val = err.Error()
		}
		fields[key] = val
	}
	return fields
}

// Log methods

func (l *Logger) log(ctx context.Context, level logrus.Level, msg string, keysAndValues ...any) {
	if !l.IsLevelEnabled(level) {
		return
	}
	l.entryFromContext(ctx).WithFields(fieldsFromPairs(keysAndValues)).Log(level, msg)
}

func (l *Logger) logf(ctx context.Context, level logrus.Level, format string, args ...any) {
	l.entryFromContext(ctx).Logf(level, format, args...)
}

// Debug logs a debug message with optional key/value pairs
func (l *Logger) Debug(ctx context.Context, msg string, keysAndValues ...any) {
	l.log(ctx, logrus.DebugLevel, msg, keysAndValues...)
}

// Info logs an info message with optional key/value pairs
func (l *Logger) Info(ctx context.Context, msg string, keysAndValues ...any) {
	l.log(ctx, logrus.InfoLevel, msg, keysAndValues...)
}

// Warn logs a warn message with optional key/value pairs
func (l *Logger) Warn(ctx context.Context, msg string, keysAndValues ...any) {
	l.log(ctx, logrus.WarnLevel, msg, keysAndValues...)
}

// Error logs an error message with optional key/value pairs
func (l *Logger) Error(ctx context.Context, msg string, keysAndValues ...any) {
	l.log(ctx, logrus.ErrorLevel, msg, keysAndValues...)
}

// Fatal logs a fatal message and exits
func (l *Logger) Fatal(ctx context.Context, msg string, keysAndValues ...any) {
	l.log(ctx, logrus.FatalLevel, msg, keysAndValues...)
	l.Exit(1)
}

// Infof logs an info message with format
func (l *Logger) Infof(ctx context.Context, format string, args ...any) {
	l.logf(ctx, logrus.InfoLevel, format, args...)
}

// Warnf logs a warn message with format
func (l *Logger) Warnf(ctx context.Context, format string, args ...any) {
	l.logf(ctx, logrus.WarnLevel, format, args...)
}

// Errorf logs an error message with format
func (l *Logger) Errorf(ctx context.Context, format string, args ...any) {
	l.logf(ctx, logrus.ErrorLevel, format, args...)
}

// SetOutput sets the output destination for the logger
func (l *Logger) SetOutput(out io.Writer) {
	l.Logger.SetOutput(out)
}

// AddHook adds a hook to the logger
func (l *Logger) AddHook(hook logrus.Hook) {
	if !l.hookExists(hook) {
		l.Logger.AddHook(hook)
	}
}

// hookExists checks if hook already exists
func (l *Logger) hookExists(hook logrus.Hook) bool {
	for _, h := range l.Hooks {
		for _, existingHook := range h {
			if existingHook == hook {
				return true
			}
		}
	}
	return false
}

// SetVersion sets the version for logging
func SetVersion(v string) { StdLogger().SetVersion(v) }

// New configures the standard logger
func New(c *config.Config) (func(), error) { return StdLogger().Init(c) }

// Info logs info message
func Info(ctx context.Context, msg string, keysAndValues ...any) {
	StdLogger().Info(ctx, msg, keysAndValues...)
}

// Warn logs warn message
func Warn(ctx context.Context, msg string, keysAndValues ...any) {
	StdLogger().Warn(ctx, msg, keysAndValues...)
}

// Error logs error message
func Error(ctx context.Context, msg string, keysAndValues ...any) {
	StdLogger().Error(ctx, msg, keysAndValues...)
}
