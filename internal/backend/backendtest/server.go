// Package backendtest provides an in-process fake of the tracker backend.
package backendtest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"

	"github.com/gorilla/mux"
)

// Reply is a canned status and body for one endpoint.
type Reply struct {
	Status int
	Body   string
}

// SubmitRecord is one received submission.
type SubmitRecord struct {
	Handle           string
	ProblemID        string `json:"problem_id"`
	TimeSpentMinutes int    `json:"time_spent_minutes"`
}

// Server is a fake backend. Replies default to 200 with an empty body.
type Server struct {
	*httptest.Server

	mu          sync.Mutex
	daily       Reply
	submit      Reply
	sync        Reply
	dailyCalls  []string
	submissions []SubmitRecord
	syncs       []string
	userAgents  []string
}

// NewServer starts a fake backend. Callers must Close it.
func NewServer() *Server {
	s := &Server{
		daily:  Reply{Status: http.StatusOK, Body: `{"id":"1500A","name":"Going Home","rating":1300,"tags":["hashing"]}`},
		submit: Reply{Status: http.StatusOK},
		sync:   Reply{Status: http.StatusOK},
	}

	r := mux.NewRouter()
	r.HandleFunc("/api/daily", s.handleDaily).Methods(http.MethodGet)
	r.HandleFunc("/api/submit/{handle}", s.handleSubmit).Methods(http.MethodPost)
	r.HandleFunc("/api/sync/{handle}", s.handleSync).Methods(http.MethodPost)
	s.Server = httptest.NewServer(r)
	return s
}

// SetDaily sets the reply for the daily endpoint.
func (s *Server) SetDaily(status int, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.daily = Reply{Status: status, Body: body}
}

// SetSubmit sets the reply for the submit endpoint.
func (s *Server) SetSubmit(status int, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.submit = Reply{Status: status, Body: body}
}

// SetSync sets the reply for the sync endpoint.
func (s *Server) SetSync(status int, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sync = Reply{Status: status, Body: body}
}

// DailyCalls returns the handles that requested a daily problem.
func (s *Server) DailyCalls() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.dailyCalls...)
}

// Submissions returns every received submission.
func (s *Server) Submissions() []SubmitRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]SubmitRecord(nil), s.submissions...)
}

// Syncs returns the handles that requested a sync.
func (s *Server) Syncs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.syncs...)
}

// UserAgents returns the User-Agent of every request.
func (s *Server) UserAgents() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.userAgents...)
}

func (s *Server) handleDaily(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.dailyCalls = append(s.dailyCalls, r.URL.Query().Get("handle"))
	s.userAgents = append(s.userAgents, r.UserAgent())
	reply := s.daily
	s.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	write(w, reply)
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	rec := SubmitRecord{Handle: mux.Vars(r)["handle"]}
	if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	s.submissions = append(s.submissions, rec)
	s.userAgents = append(s.userAgents, r.UserAgent())
	reply := s.submit
	s.mu.Unlock()

	write(w, reply)
}

func (s *Server) handleSync(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.syncs = append(s.syncs, mux.Vars(r)["handle"])
	s.userAgents = append(s.userAgents, r.UserAgent())
	reply := s.sync
	s.mu.Unlock()

	write(w, reply)
}

func write(w http.ResponseWriter, reply Reply) {
	status := reply.Status
	if status == 0 {
		status = http.StatusOK
	}
	w.WriteHeader(status)
	_, _ = w.Write([]byte(reply.Body))
}
