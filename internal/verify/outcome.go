package verify

import (
	"fmt"
	"strings"
)

// Kind classifies the result of a tracker operation.
type Kind int

const (
	KindSuccess            Kind = iota
	KindNotYetAccepted          // judge has no accepted submission yet
	KindAlreadyTracked          // problem was recorded before
	KindTransportFailure        // network error or unrecognized rejection
	KindAcquisitionFailure      // problem fetch failed
	KindMissingHandle           // attempted without a handle
)

func (k Kind) String() string {
	switch k {
	case KindSuccess:
		return "success"
	case KindNotYetAccepted:
		return "not_yet_accepted"
	case KindAlreadyTracked:
		return "already_tracked"
	case KindTransportFailure:
		return "transport_failure"
	case KindAcquisitionFailure:
		return "acquisition_failure"
	case KindMissingHandle:
		return "missing_handle"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Flow identifies which workflow produced an outcome. Flows share the
// classification but word their messages differently.
type Flow string

const (
	FlowChallenge Flow = "challenge"
	FlowManual    Flow = "manual"
	FlowSync      Flow = "sync"
)

// Backend rejection bodies must keep these phrases for Classify to work.
const (
	notSolvedMarker     = "not solved"
	alreadySolvedMarker = "already solved"
)

// User-facing messages.
const (
	MsgChallengeNotYetAccepted = "Codeforces says you haven't solved this yet! Please wait a minute if you just submitted."
	MsgManualNotYetAccepted    = "Codeforces says this isn't solved yet. Did you submit it?"
	MsgAlreadyTracked          = "You've already tracked this problem! Good job."
	MsgVerificationFailed      = "Verification failed"
	MsgLogFailed               = "Failed to log problem"
	MsgChallengeSuccess        = "Challenge problem complete. Mastery updated."
	MsgSyncComplete            = "Sync complete!"
	MsgSyncFailed              = "Failed to sync with Codeforces."
	MsgAcquisitionFailed       = "Failed to fetch challenge problem"
	MsgMissingHandle           = "No Codeforces handle set. Log in first."
)

// Classify maps a rejection body to a Kind by substring, first match wins:
// "not solved", then "already solved". Anything else is a transport failure.
func Classify(body string) Kind {
	switch {
	case strings.Contains(body, notSolvedMarker):
		return KindNotYetAccepted
	case strings.Contains(body, alreadySolvedMarker):
		return KindAlreadyTracked
	default:
		return KindTransportFailure
	}
}

// Outcome is the classified result shown to the user. It is transient.
type Outcome struct {
	Kind    Kind
	Message string
}

// Failed reports whether the outcome should be presented as an error.
// AlreadyTracked is benign but is still presented as an error.
func (o Outcome) Failed() bool {
	return o.Kind != KindSuccess
}

// Benign reports whether the outcome leaves the user's record correct.
func (o Outcome) Benign() bool {
	return o.Kind == KindSuccess || o.Kind == KindAlreadyTracked
}

// SuccessOutcome builds the success message for a flow.
func SuccessOutcome(flow Flow, problemID string) Outcome {
	switch flow {
	case FlowManual:
		return Outcome{Kind: KindSuccess, Message: fmt.Sprintf("Successfully logged %s!", problemID)}
	case FlowSync:
		return Outcome{Kind: KindSuccess, Message: MsgSyncComplete}
	default:
		return Outcome{Kind: KindSuccess, Message: MsgChallengeSuccess}
	}
}

// RejectionOutcome classifies a rejection body and words it for a flow.
// Sync never reclassifies: any failure gets the generic message.
func RejectionOutcome(flow Flow, body string) Outcome {
	if flow == FlowSync {
		return Outcome{Kind: KindTransportFailure, Message: MsgSyncFailed}
	}

	kind := Classify(body)
	switch kind {
	case KindNotYetAccepted:
		if flow == FlowManual {
			return Outcome{Kind: kind, Message: MsgManualNotYetAccepted}
		}
		return Outcome{Kind: kind, Message: MsgChallengeNotYetAccepted}
	case KindAlreadyTracked:
		return Outcome{Kind: kind, Message: MsgAlreadyTracked}
	}

	msg := strings.TrimSpace(body)
	if msg == "" {
		msg = MsgVerificationFailed
		if flow == FlowManual {
			msg = MsgLogFailed
		}
	}
	return Outcome{Kind: KindTransportFailure, Message: msg}
}

// MissingHandleOutcome is returned when an operation has no handle.
func MissingHandleOutcome() Outcome {
	return Outcome{Kind: KindMissingHandle, Message: MsgMissingHandle}
}
