// Package client implements the analysis job client: request validation,
// multipart submission, and the status polling loop against the screening
// backend.
package client

import "fmt"

// ValidationError represents a local precondition failure. No network call
// is made when one is returned.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error in %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

// SubmissionError represents a non-2xx response to the job submission.
type SubmissionError struct {
	StatusCode int
	Detail     string
}

func (e *SubmissionError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("submission failed (HTTP %d): %s", e.StatusCode, e.Detail)
	}
	return fmt.Sprintf("submission failed (HTTP %d)", e.StatusCode)
}

// PollingError represents a transport failure during a poll tick. A single
// failed tick is terminal for the job attempt; there are no retries.
type PollingError struct {
	JobID      string
	StatusCode int
	Cause      error
}

func (e *PollingError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("polling failed for job %s: %v", e.JobID, e.Cause)
	}
	return fmt.Sprintf("polling failed for job %s: HTTP %d", e.JobID, e.StatusCode)
}

func (e *PollingError) Unwrap() error {
	return e.Cause
}

// ProtocolError represents a malformed success response from the backend:
// a 2xx submission without a job_id, a completed status without a result,
// or a status payload that fails schema validation.
type ProtocolError struct {
	Message string
	Cause   error
}

func (e *ProtocolError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("protocol error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("protocol error: %s", e.Message)
}

func (e *ProtocolError) Unwrap() error {
	return e.Cause
}

// BackendReportedError carries the backend's own failure message for a job
// that terminated with status "error".
type BackendReportedError struct {
	JobID   string
	Message string
}

func (e *BackendReportedError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("job %s failed without a message", e.JobID)
	}
	return fmt.Sprintf("job %s failed: %s", e.JobID, e.Message)
}

// TimeoutError is returned when the poll loop reaches its attempt bound
// before the job terminates.
type TimeoutError struct {
	JobID    string
	Attempts int
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("job %s did not terminate after %d poll attempts", e.JobID, e.Attempts)
}
