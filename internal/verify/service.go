package verify

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/ascent-cf/ascent/internal/backend"
	"github.com/ascent-cf/ascent/internal/handle"
	"github.com/ascent-cf/ascent/internal/store"
)

// AcquisitionError is returned when a problem recommendation could not be
// fetched. It replaces the whole challenge view.
type AcquisitionError struct {
	Err error
}

func (e *AcquisitionError) Error() string {
	return fmt.Sprintf("%s: %v", MsgAcquisitionFailed, e.Err)
}

func (e *AcquisitionError) Unwrap() error { return e.Err }

// Outcome returns the user-facing outcome for the failure.
func (e *AcquisitionError) Outcome() Outcome {
	if errors.Is(e.Err, handle.ErrMissingHandle) {
		return MissingHandleOutcome()
	}
	return Outcome{Kind: KindAcquisitionFailure, Message: MsgAcquisitionFailed}
}

// Service runs tracker operations against the backend and journals their
// outcomes. The handle is read from the context of every call.
type Service struct {
	client backend.Client
	events store.EventRepo
	logger *zap.Logger
	group  singleflight.Group
}

// NewService creates a Service. events may be nil to disable the journal.
func NewService(client backend.Client, events store.EventRepo, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		client: client,
		events: events,
		logger: logger.Named("verify"),
	}
}

// Acquire fetches one problem recommendation. Errors are *AcquisitionError.
func (s *Service) Acquire(ctx context.Context) (*Problem, error) {
	h, err := handle.From(ctx)
	if err != nil {
		return nil, &AcquisitionError{Err: err}
	}

	dp, err := s.client.Daily(ctx, h)
	if err != nil {
		s.logger.Warn("acquire problem failed", zap.String("handle", h.String()), zap.Error(err))
		return nil, &AcquisitionError{Err: err}
	}

	p := NewProblem(dp.ID, dp.Name, dp.Rating, dp.Tags)
	if s.events != nil {
		err := s.events.AppendProblem(ctx, store.ProblemEventData{
			Handle:    h.String(),
			ProblemID: p.ID,
			Name:      p.Name,
			Rating:    p.Rating,
			Tags:      p.Tags,
		})
		if err != nil {
			s.logger.Warn("journal problem failed", zap.Error(err))
		}
	}
	return p, nil
}

// Verify submits one solve claim and classifies the result for flow.
// Identical concurrent claims share a single request.
func (s *Service) Verify(ctx context.Context, flow Flow, req SubmissionRequest) Outcome {
	h, err := handle.From(ctx)
	if err != nil {
		return MissingHandleOutcome()
	}
	if req.ProblemID == "" {
		return Outcome{Kind: KindTransportFailure, Message: ErrEmptyProblemID.Error()}
	}
	if req.TimeSpentMinutes < 0 {
		return Outcome{Kind: KindTransportFailure, Message: ErrInvalidMinutes.Error()}
	}

	key := fmt.Sprintf("%s|%s|%s|%d", flow, h, req.ProblemID, req.TimeSpentMinutes)
	v, _, _ := s.group.Do(key, func() (any, error) {
		start := time.Now()
		err := s.client.Submit(ctx, h, backend.Submission{
			ProblemID:        req.ProblemID,
			TimeSpentMinutes: req.TimeSpentMinutes,
		})
		latency := time.Since(start)

		outcome := SuccessOutcome(flow, req.ProblemID)
		if err != nil {
			outcome = RejectionOutcome(flow, backend.Body(err))
		}

		s.logOutcome("verification", outcome,
			zap.String("flow", string(flow)),
			zap.String("handle", h.String()),
			zap.String("problem_id", req.ProblemID),
			zap.Stringer("kind", outcome.Kind),
		)
		s.journalVerification(ctx, h, flow, req, outcome, latency)
		return outcome, nil
	})
	return v.(Outcome)
}

// Sync asks the backend to reconcile the handle's solve history. At most one
// sync per handle is in flight; concurrent callers share its outcome.
func (s *Service) Sync(ctx context.Context) Outcome {
	h, err := handle.From(ctx)
	if err != nil {
		return MissingHandleOutcome()
	}

	v, _, _ := s.group.Do("sync|"+h.String(), func() (any, error) {
		start := time.Now()
		err := s.client.Sync(ctx, h)
		latency := time.Since(start)

		outcome := SuccessOutcome(FlowSync, "")
		if err != nil {
			outcome = RejectionOutcome(FlowSync, backend.Body(err))
		}

		s.logOutcome("sync", outcome,
			zap.String("handle", h.String()),
			zap.Stringer("kind", outcome.Kind),
		)
		s.journalSync(ctx, h, outcome, latency)
		return outcome, nil
	})
	return v.(Outcome)
}

// logOutcome logs outcomes that need no user action at info and the rest
// at warn.
func (s *Service) logOutcome(msg string, o Outcome, fields ...zap.Field) {
	if o.Benign() {
		s.logger.Info(msg, fields...)
		return
	}
	s.logger.Warn(msg, fields...)
}

func (s *Service) journalVerification(ctx context.Context, h handle.Handle, flow Flow, req SubmissionRequest, o Outcome, latency time.Duration) {
	if s.events == nil {
		return
	}
	err := s.events.AppendVerification(ctx, store.VerificationEventData{
		AttemptID:        uuid.NewString(),
		Handle:           h.String(),
		ProblemID:        req.ProblemID,
		TimeSpentMinutes: req.TimeSpentMinutes,
		Flow:             string(flow),
		Kind:             o.Kind.String(),
		Message:          o.Message,
		LatencyMs:        latency.Milliseconds(),
	})
	if err != nil {
		s.logger.Warn("journal verification failed", zap.Error(err))
	}
}

func (s *Service) journalSync(ctx context.Context, h handle.Handle, o Outcome, latency time.Duration) {
	if s.events == nil {
		return
	}
	err := s.events.AppendSync(ctx, store.SyncEventData{
		AttemptID: uuid.NewString(),
		Handle:    h.String(),
		Kind:      o.Kind.String(),
		Message:   o.Message,
		LatencyMs: latency.Milliseconds(),
	})
	if err != nil {
		s.logger.Warn("journal sync failed", zap.Error(err))
	}
}
