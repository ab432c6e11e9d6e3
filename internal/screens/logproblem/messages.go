package logproblem

import (
	"github.com/google/uuid"

	"github.com/ascent-cf/ascent/internal/verify"
)

// loggedMsg is sent when a manual log request finishes.
type loggedMsg struct {
	owner   uuid.UUID
	attempt verify.Attempt
	outcome verify.Outcome
}

// syncedMsg is sent when a sync request finishes.
type syncedMsg struct {
	owner   uuid.UUID
	outcome verify.Outcome
}

// resetMsg is sent when the success window elapses.
type resetMsg struct {
	owner uuid.UUID
	token uint64
}
