// Package logging provides leveled, structured diagnostics for fs-cli.
//
// Diagnostics always go to stderr (or a caller supplied writer) and never
// to stdout, so they cannot mix with command output. The default level is
// Warn; --verbose lowers it to Debug.
//
// # Usage
//
//	logger := logging.New(logging.Options{
//	    Level:  logging.LevelDebug,
//	    Format: logging.FormatJSON,
//	    Output: os.Stderr,
//	})
//
//	log := logger.WithFields(logging.Fields{"run_id": runID, "command": "find"})
//	log.Warn("directory skipped", logging.Fields{"root": root})
package logging

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"
	"time"
)

// Level orders diagnostics by severity.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
	// LevelNone disables all logging
	LevelNone
)

var levelNames = [...]string{"DEBUG", "INFO", "WARN", "ERROR", "NONE"}

func (l Level) String() string {
	if l < LevelDebug || l > LevelNone {
		return "UNKNOWN"
	}
	return levelNames[l]
}

// ParseLevel parses a level name. Unknown names are an error.
func ParseLevel(s string) (Level, error) {
	name := strings.ToUpper(strings.TrimSpace(s))
	switch name {
	case "WARNING":
		return LevelWarn, nil
	case "OFF":
		return LevelNone, nil
	}
	for i, n := range levelNames {
		if n == name {
			return Level(i), nil
		}
	}
	return LevelWarn, fmt.Errorf("unknown log level %q", s)
}

// Format selects the line encoding.
type Format int

const (
	FormatText Format = iota
	FormatJSON
)

// String returns the name accepted by ParseFormat
func (f Format) String() string {
	if f == FormatJSON {
		return "json"
	}
	return "text"
}

// ParseFormat parses "text" or "json".
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "text":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	default:
		return FormatText, fmt.Errorf("unknown log format %q (use text or json)", s)
	}
}

// Fields is a map of structured log fields
type Fields map[string]interface{}

// LogEntry is one JSON encoded diagnostic.
type LogEntry struct {
	Timestamp time.Time `json:"timestamp"`
	Level     string    `json:"level"`
	Message   string    `json:"message"`
	Fields    Fields    `json:"fields,omitempty"`
	Error     string    `json:"error,omitempty"`
}

// Options configures the logger
type Options struct {
	Level  Level
	Format Format
	Output io.Writer
}

// Logger is the shared sink behind every FieldLogger. Level and format are
// fixed at construction; writes are serialized.
type Logger struct {
	mu     sync.Mutex
	level  Level
	format Format
	output io.Writer
	now    func() time.Time
}

// New creates a Logger. A nil Output means os.Stderr.
func New(opts Options) *Logger {
	if opts.Output == nil {
		opts.Output = os.Stderr
	}
	return &Logger{
		level:  opts.Level,
		format: opts.Format,
		output: opts.Output,
		now:    time.Now,
	}
}

// Discard returns a logger that drops everything.
func Discard() *Logger {
	return New(Options{Level: LevelNone, Output: io.Discard})
}

// WithFields returns a FieldLogger that attaches fields to every entry.
func (l *Logger) WithFields(fields Fields) *FieldLogger {
	return &FieldLogger{logger: l, fields: fields}
}

func (l *Logger) enabled(level Level) bool {
	return l.level != LevelNone && level >= l.level
}

func (l *Logger) write(level Level, msg string, err error, fields Fields) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.enabled(level) {
		return
	}

	entry := LogEntry{
		Timestamp: l.now(),
		Level:     level.String(),
		Message:   msg,
	}
	if len(fields) > 0 {
		entry.Fields = fields
	}
	if err != nil {
		entry.Error = err.Error()
	}

	if l.format == FormatJSON {
		fmt.Fprintln(l.output, encodeJSON(entry))
	} else {
		fmt.Fprintln(l.output, encodeText(entry))
	}
}

func encodeJSON(entry LogEntry) string {
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Sprintf(`{"error":"failed to marshal log entry: %s"}`, err.Error())
	}
	return string(data)
}

// encodeText renders fields in key order so lines are stable.
func encodeText(entry LogEntry) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "[%s] %s: %s", entry.Timestamp.Format("2006-01-02 15:04:05.000"), entry.Level, entry.Message)

	if entry.Error != "" {
		fmt.Fprintf(&sb, " error=%q", entry.Error)
	}

	keys := make([]string, 0, len(entry.Fields))
	for k := range entry.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&sb, " %s=%v", k, entry.Fields[k])
	}
	return sb.String()
}

// FieldLogger logs through a Logger with preset fields.
type FieldLogger struct {
	logger *Logger
	fields Fields
}

// WithFields returns a child that carries both field sets.
func (fl *FieldLogger) WithFields(fields Fields) *FieldLogger {
	return &FieldLogger{logger: fl.logger, fields: fl.merge(fields)}
}

func (fl *FieldLogger) Debug(msg string, fields ...Fields) {
	fl.logger.write(LevelDebug, msg, nil, fl.merge(fields...))
}

func (fl *FieldLogger) Info(msg string, fields ...Fields) {
	fl.logger.write(LevelInfo, msg, nil, fl.merge(fields...))
}

func (fl *FieldLogger) Warn(msg string, fields ...Fields) {
	fl.logger.write(LevelWarn, msg, nil, fl.merge(fields...))
}

// Error logs msg at LevelError with err in the entry's error slot.
func (fl *FieldLogger) Error(msg string, err error, fields ...Fields) {
	fl.logger.write(LevelError, msg, err, fl.merge(fields...))
}

// merge layers extra over the preset fields; later keys win.
func (fl *FieldLogger) merge(extra ...Fields) Fields {
	size := len(fl.fields)
	for _, f := range extra {
		size += len(f)
	}
	merged := make(Fields, size)
	for k, v := range fl.fields {
		merged[k] = v
	}
	for _, f := range extra {
		for k, v := range f {
			merged[k] = v
		}
	}
	return merged
}
