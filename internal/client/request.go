package client

import (
	"github.com/go-playground/validator/v10"
)

// DefaultTopN is the selected-candidate count used when none is given.
const DefaultTopN = 5

// FilePart is an in-memory file destined for a multipart form field.
type FilePart struct {
	Name    string
	Content []byte
}

// DateRange bounds the mailbox resume feed. Both dates are required when
// the feed is enabled; the backend expects ISO dates.
type DateRange struct {
	Start string `validate:"required,datetime=2006-01-02"`
	End   string `validate:"required,datetime=2006-01-02"`
}

// AnalysisRequest describes one screening run. The job description comes
// from JDFile or JDText; the file takes precedence when both are set.
// At least one candidate source (Resumes or Mailbox) must be present.
type AnalysisRequest struct {
	JDText  string
	JDFile  *FilePart
	TopN    int
	Resumes []FilePart
	Mailbox *DateRange
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the submission preconditions locally. It returns a
// *ValidationError naming the failed precondition; callers must not issue
// any network call when it fails.
func (r *AnalysisRequest) Validate() error {
	if r.JDFile == nil && r.JDText == "" {
		return &ValidationError{Field: "job_description", Message: "provide a job description as text or a file"}
	}
	if r.JDFile != nil && len(r.JDFile.Content) == 0 {
		return &ValidationError{Field: "jd_file", Message: "job description file is empty"}
	}
	if len(r.Resumes) == 0 && r.Mailbox == nil {
		return &ValidationError{Field: "candidate_source", Message: "upload resumes or enable the mailbox feed"}
	}
	for _, part := range r.Resumes {
		if part.Name == "" {
			return &ValidationError{Field: "resume_files", Message: "resume file is missing a name"}
		}
	}
	if r.Mailbox != nil {
		if err := validate.Struct(r.Mailbox); err != nil {
			if errs, ok := err.(validator.ValidationErrors); ok && len(errs) > 0 {
				return &ValidationError{
					Field:   "mailbox_range",
					Message: "start and end dates are required as YYYY-MM-DD",
				}
			}
			return &ValidationError{Field: "mailbox_range", Message: err.Error()}
		}
	}
	return nil
}

// EffectiveTopN returns TopN clamped to a positive value, defaulting to 5.
func (r *AnalysisRequest) EffectiveTopN() int {
	if r.TopN <= 0 {
		return DefaultTopN
	}
	return r.TopN
}
