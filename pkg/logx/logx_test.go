package logx_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/Abraxas-365/promisex/pkg/logx"
)

func newBufferLogger(level logx.Level, format logx.Format) (*logx.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	cfg := logx.DefaultConfig()
	cfg.Level = level
	cfg.Format = format
	cfg.EnableColors = false
	cfg.EnableTimestamp = false
	cfg.Output = &buf
	return logx.NewLogger(cfg), &buf
}

func TestLogger_LevelFiltering(t *testing.T) {
	logger, buf := newBufferLogger(logx.LevelWarn, logx.FormatConsole)

	logger.WithField("k", "v").Debug("hidden")
	logger.WithField("k", "v").Warn("visible")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("debug message leaked past warn level: %q", out)
	}
	if !strings.Contains(out, "visible") {
		t.Fatalf("warn message missing: %q", out)
	}
}

func TestLogger_ConsoleFieldsAndError(t *testing.T) {
	logger, buf := newBufferLogger(logx.LevelDebug, logx.FormatConsole)

	logger.WithField("op", "all").WithError(errors.New("boom")).Error("join rejected")

	out := buf.String()
	if !strings.Contains(out, "op=all") || !strings.Contains(out, "error: boom") {
		t.Fatalf("unexpected console output: %q", out)
	}
}

func TestLogger_JSONFormat(t *testing.T) {
	logger, buf := newBufferLogger(logx.LevelDebug, logx.FormatJSON)

	logger.WithFields(logx.Fields{"op": "hash", "size": 3}).Debug("join started")

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not valid JSON: %v (%q)", err, buf.String())
	}
	if entry["level"] != "DEBUG" || entry["message"] != "join started" || entry["op"] != "hash" {
		t.Fatalf("unexpected entry: %v", entry)
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]logx.Level{
		"trace":   logx.LevelTrace,
		"DEBUG":   logx.LevelDebug,
		"warning": logx.LevelWarn,
		"off":     logx.LevelOff,
		"bogus":   logx.LevelInfo,
	}
	for in, want := range cases {
		if got := logx.ParseLevel(in); got != want {
			t.Fatalf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}
