package types

// JobState is the closed set of analysis job lifecycle states. The backend
// reports status as a free string; anything outside the known set maps to
// JobStateUnknown and is treated as still-in-progress by pollers.
type JobState string

const (
	JobProcessing   JobState = "processing"
	JobCompleted    JobState = "completed"
	JobError        JobState = "error"
	JobStateUnknown JobState = "unknown"
)

// ParseJobState maps a backend status string into the closed set.
func ParseJobState(raw string) JobState {
	switch raw {
	case string(JobProcessing):
		return JobProcessing
	case string(JobCompleted):
		return JobCompleted
	case string(JobError):
		return JobError
	default:
		return JobStateUnknown
	}
}

// Terminal reports whether the state ends the polling loop.
func (s JobState) Terminal() bool {
	return s == JobCompleted || s == JobError
}

// JobStatus is one tick of the job-status endpoint. Progress and
// CurrentStep are advisory display fields, not part of the correctness
// contract. Result is set only on completion; Error only on failure.
type JobStatus struct {
	JobID       string          `json:"job_id"`
	Status      string          `json:"status"`
	Progress    int             `json:"progress"`
	CurrentStep string          `json:"current_step"`
	Result      *AnalysisResult `json:"result,omitempty"`
	Error       string          `json:"error,omitempty"`
}

// State returns the lifecycle state as a closed enum value.
func (j *JobStatus) State() JobState {
	return ParseJobState(j.Status)
}
