package verify

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		body string
		want Kind
	}{
		{"exact not solved", "not solved", KindNotYetAccepted},
		{"embedded not solved", `{"detail":"Problem 158B is not solved on Codeforces yet"}`, KindNotYetAccepted},
		{"exact already solved", "already solved", KindAlreadyTracked},
		{"embedded already solved", "You have already solved 158B", KindAlreadyTracked},
		{"both, not solved first", "not solved; already solved", KindNotYetAccepted},
		{"both, already solved first", "already solved; not solved", KindNotYetAccepted},
		{"case sensitive", "Not Solved", KindTransportFailure},
		{"unknown", "internal server error", KindTransportFailure},
		{"empty", "", KindTransportFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.body))
		})
	}
}

func TestRejectionOutcome_Messages(t *testing.T) {
	tests := []struct {
		name string
		flow Flow
		body string
		want Outcome
	}{
		{
			name: "challenge not yet accepted",
			flow: FlowChallenge,
			body: "not solved",
			want: Outcome{Kind: KindNotYetAccepted, Message: "Codeforces says you haven't solved this yet! Please wait a minute if you just submitted."},
		},
		{
			name: "manual not yet accepted",
			flow: FlowManual,
			body: "not solved",
			want: Outcome{Kind: KindNotYetAccepted, Message: "Codeforces says this isn't solved yet. Did you submit it?"},
		},
		{
			name: "challenge already tracked",
			flow: FlowChallenge,
			body: "already solved",
			want: Outcome{Kind: KindAlreadyTracked, Message: "You've already tracked this problem! Good job."},
		},
		{
			name: "manual already tracked",
			flow: FlowManual,
			body: "already solved",
			want: Outcome{Kind: KindAlreadyTracked, Message: "You've already tracked this problem! Good job."},
		},
		{
			name: "raw body surfaced",
			flow: FlowChallenge,
			body: "  Invalid handle  ",
			want: Outcome{Kind: KindTransportFailure, Message: "Invalid handle"},
		},
		{
			name: "challenge empty body",
			flow: FlowChallenge,
			body: "",
			want: Outcome{Kind: KindTransportFailure, Message: "Verification failed"},
		},
		{
			name: "challenge whitespace body",
			flow: FlowChallenge,
			body: "\n\t ",
			want: Outcome{Kind: KindTransportFailure, Message: "Verification failed"},
		},
		{
			name: "manual empty body",
			flow: FlowManual,
			body: " ",
			want: Outcome{Kind: KindTransportFailure, Message: "Failed to log problem"},
		},
		{
			name: "sync ignores body",
			flow: FlowSync,
			body: "not solved",
			want: Outcome{Kind: KindTransportFailure, Message: "Failed to sync with Codeforces."},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RejectionOutcome(tt.flow, tt.body))
		})
	}
}

func TestSuccessOutcome(t *testing.T) {
	assert.Equal(t, "Challenge problem complete. Mastery updated.", SuccessOutcome(FlowChallenge, "158B").Message)
	assert.Equal(t, "Successfully logged 158B!", SuccessOutcome(FlowManual, "158B").Message)
	assert.Equal(t, "Sync complete!", SuccessOutcome(FlowSync, "").Message)
}

func TestOutcome_Styling(t *testing.T) {
	already := Outcome{Kind: KindAlreadyTracked}
	assert.True(t, already.Failed(), "already tracked is shown error-styled")
	assert.True(t, already.Benign())

	ok := Outcome{Kind: KindSuccess}
	assert.False(t, ok.Failed())
	assert.True(t, ok.Benign())

	notYet := Outcome{Kind: KindNotYetAccepted}
	assert.True(t, notYet.Failed())
	assert.False(t, notYet.Benign())
}

func TestMissingHandleOutcome(t *testing.T) {
	o := MissingHandleOutcome()
	assert.Equal(t, KindMissingHandle, o.Kind)
	assert.Equal(t, "missing_handle", o.Kind.String())
	assert.True(t, o.Failed())
}
