package logx

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Fields is a map of structured data
type Fields map[string]interface{}

// LogEntry represents a single log entry
type LogEntry struct {
	Level     Level
	Message   string
	Fields    Fields
	Error     error
	Timestamp time.Time
}

// Formatter is the interface for log formatters
type Formatter interface {
	Format(entry *LogEntry) ([]byte, error)
}

// formatTimestamp formats the timestamp based on the config
func formatTimestamp(t time.Time, format string) string {
	if format == "unixmilli" {
		return fmt.Sprintf("%d", t.UnixMilli())
	}
	return t.Format(format)
}

// ANSI color codes
const (
	colorReset = "\033[0m"
	colorGray  = "\033[90m"
	colorWhite = "\033[97m"
	colorCyan  = "\033[36m"

	colorBoldRed    = "\033[1;31m"
	colorBoldYellow = "\033[1;33m"
	colorBoldCyan   = "\033[1;36m"
	colorBoldGreen  = "\033[1;32m"
)

// ConsoleFormatter formats logs for console output with colors
type ConsoleFormatter struct {
	config *Config
}

// NewConsoleFormatter creates a new console formatter
func NewConsoleFormatter(config *Config) *ConsoleFormatter {
	return &ConsoleFormatter{config: config}
}

// Format formats a log entry for console output
func (f *ConsoleFormatter) Format(entry *LogEntry) ([]byte, error) {
	var builder strings.Builder

	colorize := func(color, s string) {
		if f.config.EnableColors {
			builder.WriteString(color)
			builder.WriteString(s)
			builder.WriteString(colorReset)
			return
		}
		builder.WriteString(s)
	}

	if f.config.EnableTimestamp {
		colorize(colorGray, formatTimestamp(entry.Timestamp, f.config.TimeFormat))
		builder.WriteString(" ")
	}

	builder.WriteString(f.formatLevel(entry.Level))
	builder.WriteString(" ")

	colorize(colorWhite, entry.Message)

	if len(entry.Fields) > 0 {
		builder.WriteString(" ")
		pairs := make([]string, 0, len(entry.Fields))
		for k, v := range entry.Fields {
			pairs = append(pairs, fmt.Sprintf("%s=%v", k, v))
		}
		colorize(colorCyan, strings.Join(pairs, " "))
	}

	if entry.Error != nil {
		builder.WriteString("\n")
		colorize(colorBoldRed, "  error: "+entry.Error.Error())
	}
	builder.WriteString("\n")

	return []byte(builder.String()), nil
}

// formatLevel formats the level with appropriate color
func (f *ConsoleFormatter) formatLevel(level Level) string {
	if !f.config.EnableColors {
		return fmt.Sprintf("[%s]", level.String())
	}

	switch level {
	case LevelTrace:
		return fmt.Sprintf("%s[TRACE]%s", colorGray, colorReset)
	case LevelDebug:
		return fmt.Sprintf("%s[DEBUG]%s", colorBoldCyan, colorReset)
	case LevelInfo:
		return fmt.Sprintf("%s[INFO ]%s", colorBoldGreen, colorReset)
	case LevelWarn:
		return fmt.Sprintf("%s[WARN ]%s", colorBoldYellow, colorReset)
	case LevelError:
		return fmt.Sprintf("%s[ERROR]%s", colorBoldRed, colorReset)
	default:
		return fmt.Sprintf("[%s]", level.String())
	}
}

// JSONFormatter formats logs as JSON
type JSONFormatter struct {
	config *Config
}

// NewJSONFormatter creates a new JSON formatter
func NewJSONFormatter(config *Config) *JSONFormatter {
	return &JSONFormatter{config: config}
}

// Format formats a log entry as JSON
func (f *JSONFormatter) Format(entry *LogEntry) ([]byte, error) {
	data := make(map[string]interface{}, len(entry.Fields)+4)

	data["level"] = entry.Level.String()
	data["message"] = entry.Message

	if f.config.EnableTimestamp {
		if f.config.TimeFormat == "unixmilli" {
			data["timestamp"] = entry.Timestamp.UnixMilli()
		} else {
			data["timestamp"] = entry.Timestamp.Format(time.RFC3339Nano)
		}
	}

	for k, v := range entry.Fields {
		data[k] = v
	}

	if entry.Error != nil {
		data["error"] = entry.Error.Error()
	}

	bytes, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	return append(bytes, '\n'), nil
}
