package types

// MCQ is a normalized multiple-choice question. The generator backend emits
// several field spellings depending on model output; the aptitude client
// collapses them into this shape at the HTTP boundary.
type MCQ struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
	Answer   string   `json:"answer,omitempty"`
}

// CodingQuestion is a normalized coding exercise.
type CodingQuestion struct {
	Title         string `json:"title"`
	Description   string `json:"description,omitempty"`
	ExampleInput  string `json:"example_input,omitempty"`
	ExampleOutput string `json:"example_output,omitempty"`
}

// QuestionSet holds the generated questions for one job description.
type QuestionSet struct {
	MCQs            []MCQ            `json:"mcqs"`
	CodingQuestions []CodingQuestion `json:"coding_questions"`
}

// Assessment is one sent assessment round as recorded by the backend.
type Assessment struct {
	ID              string           `json:"id"`
	Token           string           `json:"token"`
	JobTitle        string           `json:"job_title"`
	Emails          []string         `json:"emails"`
	MCQs            []MCQ            `json:"mcqs,omitempty"`
	CodingQuestions []CodingQuestion `json:"coding_questions,omitempty"`
	Timestamp       float64          `json:"timestamp"`
	Status          string           `json:"status,omitempty"`
}

// Submission is one candidate's attempt at an assessment. Older backend
// records carry a combined score/total pair instead of the split MCQ and
// coding fields; pointers distinguish absent from zero.
type Submission struct {
	Token       string  `json:"token"`
	Email       string  `json:"email"`
	MCQScore    *int    `json:"mcq_score,omitempty"`
	MCQTotal    *int    `json:"mcq_total,omitempty"`
	CodingScore *int    `json:"coding_score,omitempty"`
	CodingTotal *int    `json:"coding_total,omitempty"`
	Score       *int    `json:"score,omitempty"`
	Total       *int    `json:"total,omitempty"`
	Suspicious  string  `json:"suspicious,omitempty"`
	Timestamp   float64 `json:"timestamp"`
}

// Flagged reports whether proctoring marked this attempt suspicious.
func (s *Submission) Flagged() bool {
	return s.Suspicious != "" && s.Suspicious != "Normal"
}
