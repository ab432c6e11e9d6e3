package challenge

import (
	"github.com/google/uuid"

	"github.com/ascent-cf/ascent/internal/verify"
)

// Every message carries the owner that dispatched it so results arriving
// after the screen was replaced are dropped.

// problemLoadedMsg is sent when the recommendation request finishes.
type problemLoadedMsg struct {
	owner   uuid.UUID
	problem *verify.Problem
	err     error
}

// verifiedMsg is sent when a verification request finishes.
type verifiedMsg struct {
	owner   uuid.UUID
	attempt verify.Attempt
	outcome verify.Outcome
}

// resetMsg is sent when the success display window elapses.
type resetMsg struct {
	owner uuid.UUID
	token uint64
}
