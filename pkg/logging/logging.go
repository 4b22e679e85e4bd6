// Package logging builds the structured slog loggers used across Jaunts and
// provides the fault-logging collaborator consumed by the fault router.
//
// Handler construction:
//
//	base := logging.New("info", "json", os.Stderr)
//	faults := logging.NewSlogLogger(base)
//
// The collaborator exposes three severities. Critical has no slog
// equivalent, so it is emitted at [LevelCritical] and rendered as
// "CRITICAL" by handlers created with [New]:
//
//	faults.Critical(ctx, err) // {"level":"CRITICAL","code":"DEP_001",...}
//
// Attributes that commonly carry credentials (password, secret, token,
// otp) and raw JWT strings are redacted before they reach the writer.
package logging

import (
	"io"
	"log/slog"
	"regexp"
	"strings"

	"github.com/m-mizutani/masq"
)

// LevelCritical sits above slog.LevelError and marks faults that need
// operator attention, such as an unreachable database.
const LevelCritical = slog.LevelError + 4

// jwtPattern matches raw JWT strings (header.payload.signature).
var jwtPattern = regexp.MustCompile(`[a-zA-Z0-9\-_]{10,}\.[a-zA-Z0-9\-_]{10,}\.[a-zA-Z0-9\-_]{10,}`)

// New creates a configured *slog.Logger writing to w.
//
// level is one of "debug", "info", "warn", "error" or "critical";
// anything else means info. format "text" selects slog.NewTextHandler,
// every other value slog.NewJSONHandler.
func New(level, format string, w io.Writer) *slog.Logger {
	lvl := ParseLevel(level)

	opts := &slog.HandlerOptions{
		Level:       lvl,
		AddSource:   lvl == slog.LevelDebug,
		ReplaceAttr: replaceAttr(),
	}

	var handler slog.Handler
	if format == "text" {
		handler = slog.NewTextHandler(w, opts)
	} else {
		handler = slog.NewJSONHandler(w, opts)
	}
	return slog.New(handler)
}

// ParseLevel converts a level name to a slog.Level.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	case "critical":
		return LevelCritical
	default:
		return slog.LevelInfo
	}
}

// replaceAttr renames the critical level and redacts sensitive values.
func replaceAttr() func([]string, slog.Attr) slog.Attr {
	redact := masq.New(
		masq.WithFieldName("password"),
		masq.WithFieldName("secret"),
		masq.WithFieldName("token"),
		masq.WithFieldName("otp"),
		masq.WithFieldPrefix("secret_"),
		masq.WithRegex(jwtPattern),
	)

	return func(groups []string, a slog.Attr) slog.Attr {
		if len(groups) == 0 && a.Key == slog.LevelKey {
			if lvl, ok := a.Value.Any().(slog.Level); ok && lvl >= LevelCritical {
				a.Value = slog.StringValue("CRITICAL")
			}
			return a
		}
		return redact(groups, a)
	}
}
