package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// newLogger creates a logger writing timestamps as "15:04:05.00".
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// withRunID returns a child of l that tags every line with a short run id.
func withRunID(l *log.Logger) (*log.Logger, string) {
	id := uuid.NewString()[:8]
	return l.With("run", id), id
}

// progress logs how long an operation took. It is not safe for concurrent use.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// donef logs the formatted message followed by the elapsed time, e.g.
// "Tested 42 packages (1.234s)".
func (p *progress) donef(format string, args ...any) {
	p.logger.Infof("%s (%s)", fmt.Sprintf(format, args...), time.Since(p.start).Round(time.Millisecond))
}

type ctxKey int

const loggerKey ctxKey = 0

func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext returns the logger attached by the root command, or a
// logger that discards everything.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.New(io.Discard)
}
