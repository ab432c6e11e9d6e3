package store

import (
	"context"
	"time"
)

// QueryOpts configures event queries with filtering and pagination.
// Results are ordered newest first.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence > After
	Before int64     // sequence < Before
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To
	Handle string    // exact handle match ("" = any)
	Kind   string    // exact outcome kind ("" = any); ignored for problems
}

// VerificationEventData captures one verification attempt and its outcome.
type VerificationEventData struct {
	AttemptID        string
	Handle           string
	ProblemID        string
	TimeSpentMinutes int
	Flow             string // challenge or manual
	Kind             string
	Message          string
	LatencyMs        int64
}

// VerificationEvent is a stored verification attempt.
type VerificationEvent struct {
	Sequence  int64
	Timestamp time.Time
	VerificationEventData
}

// Succeeded reports whether the backend accepted the attempt.
func (e VerificationEvent) Succeeded() bool {
	return e.Kind == "success"
}

// SyncEventData captures one sync request and its outcome.
type SyncEventData struct {
	AttemptID string
	Handle    string
	Kind      string
	Message   string
	LatencyMs int64
}

// SyncEvent is a stored sync request.
type SyncEvent struct {
	Sequence  int64
	Timestamp time.Time
	SyncEventData
}

// ProblemEventData captures an acquired recommendation.
type ProblemEventData struct {
	Handle    string
	ProblemID string
	Name      string
	Rating    int
	Tags      []string
}

// ProblemEvent is a stored recommendation.
type ProblemEvent struct {
	Sequence  int64
	Timestamp time.Time
	ProblemEventData
}

// Stats summarizes verification activity for a handle.
type Stats struct {
	Attempts     int
	Solved       int
	TotalMinutes int
	LastSync     time.Time // last successful sync, zero if none
}

// EventRepo provides append and query access to the activity journal.
type EventRepo interface {
	// AppendVerification records a verification attempt.
	AppendVerification(ctx context.Context, data VerificationEventData) error

	// AppendSync records a sync request.
	AppendSync(ctx context.Context, data SyncEventData) error

	// AppendProblem records an acquired problem.
	AppendProblem(ctx context.Context, data ProblemEventData) error

	// QueryVerifications returns verification events matching opts.
	QueryVerifications(ctx context.Context, opts QueryOpts) ([]VerificationEvent, error)

	// QuerySyncs returns sync events matching opts.
	QuerySyncs(ctx context.Context, opts QueryOpts) ([]SyncEvent, error)

	// RecentProblems returns acquired problems matching opts.
	RecentProblems(ctx context.Context, opts QueryOpts) ([]ProblemEvent, error)

	// Stats summarizes the activity of handle.
	Stats(ctx context.Context, handle string) (Stats, error)
}
