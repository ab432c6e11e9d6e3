package backend

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/ascent-cf/ascent/internal/handle"
)

// LoggingClient is a decorator that logs every backend call.
type LoggingClient struct {
	inner  Client
	logger *zap.Logger
}

// WithLogging wraps a Client with call logging.
func WithLogging(c Client, logger *zap.Logger) Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LoggingClient{inner: c, logger: logger.Named("backend")}
}

func (l *LoggingClient) Daily(ctx context.Context, h handle.Handle) (*DailyProblem, error) {
	start := time.Now()
	p, err := l.inner.Daily(ctx, h)

	fields := []zap.Field{}
	if p != nil {
		fields = append(fields, zap.String("problem_id", p.ID), zap.Int("rating", p.Rating))
	}
	l.log(OpDaily, h, start, err, fields...)
	return p, err
}

func (l *LoggingClient) Submit(ctx context.Context, h handle.Handle, sub Submission) error {
	start := time.Now()
	err := l.inner.Submit(ctx, h, sub)
	l.log(OpSubmit, h, start, err,
		zap.String("problem_id", sub.ProblemID),
		zap.Int("time_spent_minutes", sub.TimeSpentMinutes),
	)
	return err
}

func (l *LoggingClient) Sync(ctx context.Context, h handle.Handle) error {
	start := time.Now()
	err := l.inner.Sync(ctx, h)
	l.log(OpSync, h, start, err)
	return err
}

func (l *LoggingClient) log(op Op, h handle.Handle, start time.Time, err error, extra ...zap.Field) {
	fields := append([]zap.Field{
		zap.String("op", string(op)),
		zap.String("handle", h.String()),
		zap.Int64("latency_ms", time.Since(start).Milliseconds()),
	}, extra...)

	if err != nil {
		if code := StatusCode(err); code != 0 {
			fields = append(fields, zap.Int("status", code))
		}
		l.logger.Warn("backend call failed", append(fields, zap.Error(err))...)
		return
	}
	l.logger.Debug("backend call", fields...)
}
