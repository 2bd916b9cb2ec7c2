package client

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/hirestack/recruit-agent/internal/types"
)

// jobStatusSchema is the contract for the status endpoint. Payloads are
// validated and defaulted here, once, so downstream code never re-derives
// field shapes at render time.
const jobStatusSchema = `{
  "type": "object",
  "required": ["status"],
  "properties": {
    "job_id": {"type": "string"},
    "status": {"type": "string"},
    "progress": {"type": "number"},
    "current_step": {"type": "string"},
    "error": {"type": "string"},
    "result": {
      "type": "object",
      "required": ["candidates"],
      "properties": {
        "candidates": {
          "type": "array",
          "items": {
            "type": "object",
            "required": ["filename"],
            "properties": {
              "filename": {"type": "string", "minLength": 1},
              "name": {"type": "string"},
              "email": {"type": "string"},
              "phone": {"type": "string"},
              "score": {"type": "object"},
              "reasoning": {"type": "string"},
              "strengths": {"type": "array", "items": {"type": "string"}},
              "weaknesses": {"type": "array", "items": {"type": "string"}},
              "ai_analyzed": {"type": "boolean"},
              "vector_score": {"type": "number"},
              "status": {"type": "string"}
            }
          }
        },
        "report_path": {"type": "string"},
        "campaign_folder": {"type": "string"}
      }
    }
  }
}`

var statusSchemaLoader = gojsonschema.NewStringLoader(jobStatusSchema)

// decodeJobStatus validates raw status JSON against the contract schema and
// decodes it into a normalized JobStatus. Advisory fields are clamped to
// displayable values.
func decodeJobStatus(raw []byte) (*types.JobStatus, error) {
	result, err := gojsonschema.Validate(statusSchemaLoader, gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return nil, &ProtocolError{Message: "status payload is not valid JSON", Cause: err}
	}
	if !result.Valid() {
		return nil, &ProtocolError{Message: "status payload violates contract: " + describeSchemaErrors(result)}
	}

	// Progress is advisory and some backends report it fractionally, so
	// it is decoded as a number and truncated for display.
	var status types.JobStatus
	aux := struct {
		*types.JobStatus
		Progress float64 `json:"progress"`
	}{JobStatus: &status}
	if err := json.Unmarshal(raw, &aux); err != nil {
		return nil, &ProtocolError{Message: "failed to decode status payload", Cause: err}
	}
	status.Progress = int(aux.Progress)

	// Keep it in range for display.
	if status.Progress < 0 {
		status.Progress = 0
	}
	if status.Progress > 100 {
		status.Progress = 100
	}

	return &status, nil
}

func describeSchemaErrors(result *gojsonschema.Result) string {
	parts := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		parts = append(parts, fmt.Sprintf("%s: %s", field, desc.Description()))
	}
	return strings.Join(parts, "; ")
}
