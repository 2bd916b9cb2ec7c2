// Package session owns the mutable state shared across commands: the
// single in-flight job slot and the small prefill state persisted between
// runs (the browser front end kept this in localStorage).
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// State is the persisted prefill data. Nothing here affects correctness;
// it only saves retyping between runs.
type State struct {
	LastJDText      string            `json:"last_jd_text,omitempty"`
	LastReportPath  string            `json:"last_report_path,omitempty"`
	CandidatesURL   string            `json:"candidates_url,omitempty"`
	ShortlistEmails []string          `json:"shortlist_emails,omitempty"`
	JDForm          map[string]string `json:"jd_form,omitempty"`
}

// ErrJobActive is returned when a submission is attempted while another
// job is still in flight.
var ErrJobActive = fmt.Errorf("an analysis job is already running")

// Session guards the current-job reference. The polling loop and a
// user-triggered cancel can race, so access goes through the mutex.
type Session struct {
	mu     sync.Mutex
	jobID  string
	cancel context.CancelFunc

	statePath string
	state     State
}

// Load reads the state file at path, returning an empty session if the
// file does not exist yet.
func Load(path string) (*Session, error) {
	s := &Session{statePath: path}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("failed to read state file %s: %w", path, err)
	}
	if err := json.Unmarshal(data, &s.state); err != nil {
		return nil, fmt.Errorf("failed to parse state file %s: %w", path, err)
	}
	return s, nil
}

// Begin claims the in-flight job slot. It fails with ErrJobActive if a
// job is already running.
func (s *Session) Begin(jobID string, cancel context.CancelFunc) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.jobID != "" {
		return ErrJobActive
	}
	s.jobID = jobID
	s.cancel = cancel
	return nil
}

// End releases the slot if jobID still owns it.
func (s *Session) End(jobID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.jobID == jobID {
		s.jobID = ""
		s.cancel = nil
	}
}

// CancelActive cancels the in-flight job, if any, and releases the slot.
func (s *Session) CancelActive() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
	}
	s.jobID = ""
	s.cancel = nil
}

// ActiveJob returns the id of the in-flight job, or empty.
func (s *Session) ActiveJob() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.jobID
}

// Update applies fn to the persisted state under the lock.
func (s *Session) Update(fn func(*State)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(&s.state)
}

// Snapshot returns a copy of the persisted state.
func (s *Session) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Save writes the state file, creating parent directories as needed.
func (s *Session) Save() error {
	s.mu.Lock()
	state := s.state
	path := s.statePath
	s.mu.Unlock()

	if path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode state: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write state file %s: %w", path, err)
	}
	return nil
}

// DefaultStatePath returns the per-user state file location.
func DefaultStatePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".recruit_agent_state.json"
	}
	return filepath.Join(home, ".recruit_agent", "state.json")
}
