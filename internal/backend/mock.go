package backend

import (
	"context"
	"errors"
	"sync"

	"github.com/ascent-cf/ascent/internal/handle"
)

// MockResponse is a canned response for the MockClient.
type MockResponse struct {
	Problem *DailyProblem
	Err     error

	// Release, when set, blocks the call until it is closed.
	Release chan struct{}
}

// MockClient is a deterministic Client for testing. Each operation returns
// its canned responses in FIFO order and records every call.
type MockClient struct {
	mu     sync.Mutex
	daily  []MockResponse
	submit []MockResponse
	sync   []MockResponse

	DailyCalls  []handle.Handle
	SubmitCalls []Submission
	SyncCalls   []handle.Handle
}

var _ Client = (*MockClient)(nil)

// errNoCanned is returned when a queue runs dry.
var errNoCanned = errors.New("mock: no canned response")

// NewMockClient creates an empty MockClient.
func NewMockClient() *MockClient {
	return &MockClient{}
}

// QueueDaily appends canned Daily responses.
func (m *MockClient) QueueDaily(resps ...MockResponse) *MockClient {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.daily = append(m.daily, resps...)
	return m
}

// QueueSubmit appends canned Submit responses.
func (m *MockClient) QueueSubmit(resps ...MockResponse) *MockClient {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.submit = append(m.submit, resps...)
	return m
}

// QueueSync appends canned Sync responses.
func (m *MockClient) QueueSync(resps ...MockResponse) *MockClient {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sync = append(m.sync, resps...)
	return m
}

func (m *MockClient) Daily(_ context.Context, h handle.Handle) (*DailyProblem, error) {
	m.mu.Lock()
	m.DailyCalls = append(m.DailyCalls, h)
	resp := pop(&m.daily, OpDaily)
	m.mu.Unlock()

	wait(resp)
	if resp.Err != nil {
		return nil, resp.Err
	}
	return resp.Problem, nil
}

func (m *MockClient) Submit(_ context.Context, _ handle.Handle, sub Submission) error {
	m.mu.Lock()
	m.SubmitCalls = append(m.SubmitCalls, sub)
	resp := pop(&m.submit, OpSubmit)
	m.mu.Unlock()

	wait(resp)
	return resp.Err
}

func (m *MockClient) Sync(_ context.Context, h handle.Handle) error {
	m.mu.Lock()
	m.SyncCalls = append(m.SyncCalls, h)
	resp := pop(&m.sync, OpSync)
	m.mu.Unlock()

	wait(resp)
	return resp.Err
}

// CallCount returns how many times op was invoked.
func (m *MockClient) CallCount(op Op) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	switch op {
	case OpDaily:
		return len(m.DailyCalls)
	case OpSubmit:
		return len(m.SubmitCalls)
	case OpSync:
		return len(m.SyncCalls)
	}
	return 0
}

func pop(q *[]MockResponse, op Op) MockResponse {
	if len(*q) == 0 {
		return MockResponse{Err: &TransportError{Op: op, Err: errNoCanned}}
	}
	resp := (*q)[0]
	*q = (*q)[1:]
	return resp
}

func wait(resp MockResponse) {
	if resp.Release != nil {
		<-resp.Release
	}
}
