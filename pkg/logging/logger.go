package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Level controls which messages a Logger emits.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// String returns the upper-case label used in log lines.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return fmt.Sprintf("LEVEL(%d)", int(l))
	}
}

// ParseLevel converts a configuration value ("debug", "info", "warn", "error")
// into a Level. Matching is case-insensitive; "warning" and "" mean warn.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug, nil
	case "info":
		return LevelInfo, nil
	case "warn", "warning", "":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	default:
		return LevelInfo, fmt.Errorf("invalid log level %q (must be debug, info, warn or error)", s)
	}
}

// LevelFromVerbosity maps a -v flag count to a level: none is warn, one is
// info, two or more is debug.
func LevelFromVerbosity(count int) Level {
	switch {
	case count >= 2:
		return LevelDebug
	case count == 1:
		return LevelInfo
	default:
		return LevelWarn
	}
}

// Options configures the process-wide log sink.
type Options struct {
	Level Level

	// File, when set, receives a copy of every line in append mode.
	File string

	// Console is where lines go besides File. Defaults to os.Stderr so that
	// stdout stays free for tool output.
	Console io.Writer
}

// sink is the shared destination for every component Logger.
type sink struct {
	mu    sync.Mutex
	out   io.Writer
	file  *os.File
	level Level
}

// sessionState holds the lazily created session ID.
type sessionState struct {
	once sync.Once
	id   string
}

var (
	// Global session for the current execution
	session = &sessionState{}

	global = &sink{out: os.Stderr, level: LevelWarn}
)

// getSessionID returns or creates the session ID for this execution
func getSessionID() string {
	s := session
	s.once.Do(func() {
		s.id = uuid.New().String()
	})
	return s.id
}

// Setup replaces the global sink. It is safe to call more than once; a log
// file opened by a previous call is closed.
//
// If the log file cannot be opened, console logging is still configured and
// the error is returned so callers can report fallback mode.
func Setup(opts Options) error {
	console := opts.Console
	if console == nil {
		console = os.Stderr
	}

	global.mu.Lock()
	defer global.mu.Unlock()

	if global.file != nil {
		_ = global.file.Close()
		global.file = nil
	}
	global.level = opts.Level
	global.out = console

	if opts.File == "" {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(opts.File), 0o750); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}
	// Append mode: several processes may share one log file.
	file, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	global.file = file
	global.out = io.MultiWriter(console, file)
	return nil
}

// Shutdown closes the log file opened by Setup, if any. Safe to call multiple times.
func Shutdown() error {
	global.mu.Lock()
	defer global.mu.Unlock()

	if global.file == nil {
		return nil
	}
	err := global.file.Close()
	global.file = nil
	global.out = os.Stderr
	return err
}

// Logger provides leveled, component-scoped logging.
// All loggers share the sink configured by Setup.
type Logger struct {
	component string
	discard   bool
}

// NewLogger creates a logger for a specific component.
func NewLogger(component string) *Logger {
	return &Logger{component: component}
}

// Nop returns a logger that discards everything.
func Nop() *Logger {
	return &Logger{discard: true}
}

// formatLogEntry creates a structured log entry with timestamp, session, component, and level
func (l *Logger) formatLogEntry(level Level, message string) string {
	timestamp := time.Now().Format("2006-01-02 15:04:05.000")
	return fmt.Sprintf("[%s] [%s] [%s] [%s] %s", timestamp, shortSession(), l.component, level, message)
}

func (l *Logger) logf(level Level, format string, v ...interface{}) {
	if l == nil || l.discard {
		return
	}

	global.mu.Lock()
	defer global.mu.Unlock()

	if level < global.level {
		return
	}
	fmt.Fprintln(global.out, l.formatLogEntry(level, fmt.Sprintf(format, v...)))
}

// Debugf logs a debug-level message
func (l *Logger) Debugf(format string, v ...interface{}) { l.logf(LevelDebug, format, v...) }

// Infof logs an info-level message
func (l *Logger) Infof(format string, v ...interface{}) { l.logf(LevelInfo, format, v...) }

// Warnf logs a warning-level message
func (l *Logger) Warnf(format string, v ...interface{}) { l.logf(LevelWarn, format, v...) }

// Errorf logs an error-level message
func (l *Logger) Errorf(format string, v ...interface{}) { l.logf(LevelError, format, v...) }

// Component returns the component name the logger was created with.
func (l *Logger) Component() string {
	if l == nil {
		return ""
	}
	return l.component
}

// GetSessionID returns the current global session ID
func GetSessionID() string {
	return getSessionID()
}

func shortSession() string {
	id := getSessionID()
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
