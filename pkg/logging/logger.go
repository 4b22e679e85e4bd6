package logging

import (
	"context"
	"log/slog"

	sserr "github.com/StricklySoft/jaunts-core/pkg/errors"
)

// Logger is the fault-logging collaborator. Each classified fault is
// handed to exactly one of these methods, exactly once, by the component
// that classified it.
type Logger interface {
	Warning(ctx context.Context, err error)
	Error(ctx context.Context, err error)
	Critical(ctx context.Context, err error)
}

var _ Logger = (*SlogLogger)(nil)

// SlogLogger implements Logger on top of a *slog.Logger. Domain faults
// are logged with their code, category and violation report as
// attributes; the record message is the fault's outer message.
type SlogLogger struct {
	logger *slog.Logger
}

// NewSlogLogger returns a Logger writing to l, or to slog.Default when l
// is nil.
func NewSlogLogger(l *slog.Logger) *SlogLogger {
	if l == nil {
		l = slog.Default()
	}
	return &SlogLogger{logger: l}
}

// Warning logs err at slog.LevelWarn.
func (l *SlogLogger) Warning(ctx context.Context, err error) {
	l.log(ctx, slog.LevelWarn, err)
}

// Error logs err at slog.LevelError.
func (l *SlogLogger) Error(ctx context.Context, err error) {
	l.log(ctx, slog.LevelError, err)
}

// Critical logs err at LevelCritical.
func (l *SlogLogger) Critical(ctx context.Context, err error) {
	l.log(ctx, LevelCritical, err)
}

func (l *SlogLogger) log(ctx context.Context, level slog.Level, err error) {
	if err == nil {
		return
	}
	msg := err.Error()
	attrs := make([]slog.Attr, 0, 4)

	if e, ok := sserr.AsError(err); ok {
		msg = e.Message
		attrs = append(attrs,
			slog.String("code", e.Code.String()),
			slog.String("category", e.Category().String()),
		)
		if cause := sserr.Cause(err); cause != nil {
			attrs = append(attrs, slog.String("cause_code", sserr.GetCode(cause).String()))
		}
		if v := sserr.ViolationsOf(err); !v.Empty() {
			attrs = append(attrs, slog.String("violations", v.String()))
		}
	}
	attrs = append(attrs, slog.String("error", err.Error()))

	l.logger.LogAttrs(ctx, level, msg, attrs...)
}
