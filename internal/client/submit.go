package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
)

// submitResponse is the success payload of the job submission endpoint.
type submitResponse struct {
	JobID string `json:"job_id"`
}

// errorBody covers the detail shapes the backend uses for failures.
type errorBody struct {
	Detail  string `json:"detail"`
	Message string `json:"message"`
}

// Submit validates the request locally, encodes it as a multipart form and
// posts it to the job submission endpoint. On success it returns the
// backend-assigned job id.
func (c *Client) Submit(ctx context.Context, req *AnalysisRequest) (string, error) {
	if err := req.Validate(); err != nil {
		return "", err
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	// File source takes precedence over pasted text.
	if req.JDFile != nil {
		part, err := writer.CreateFormFile("jd_file", req.JDFile.Name)
		if err != nil {
			return "", fmt.Errorf("failed to encode jd_file: %w", err)
		}
		if _, err := part.Write(req.JDFile.Content); err != nil {
			return "", fmt.Errorf("failed to write jd_file: %w", err)
		}
	} else {
		if err := writer.WriteField("jd_text_input", req.JDText); err != nil {
			return "", fmt.Errorf("failed to encode jd_text_input: %w", err)
		}
	}

	if err := writer.WriteField("top_n", strconv.Itoa(req.EffectiveTopN())); err != nil {
		return "", fmt.Errorf("failed to encode top_n: %w", err)
	}

	for _, resume := range req.Resumes {
		part, err := writer.CreateFormFile("resume_files", resume.Name)
		if err != nil {
			return "", fmt.Errorf("failed to encode resume %s: %w", resume.Name, err)
		}
		if _, err := part.Write(resume.Content); err != nil {
			return "", fmt.Errorf("failed to write resume %s: %w", resume.Name, err)
		}
	}

	if req.Mailbox != nil {
		if err := writer.WriteField("start_date", req.Mailbox.Start); err != nil {
			return "", fmt.Errorf("failed to encode start_date: %w", err)
		}
		if err := writer.WriteField("end_date", req.Mailbox.End); err != nil {
			return "", fmt.Errorf("failed to encode end_date: %w", err)
		}
	}

	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("failed to finalize form: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/analyze", &body)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", writer.FormDataContentType())

	c.logger.Info().
		Int("resumes", len(req.Resumes)).
		Int("top_n", req.EffectiveTopN()).
		Bool("mailbox", req.Mailbox != nil).
		Msg("submitting analysis job")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", &SubmissionError{Detail: err.Error()}
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &SubmissionError{StatusCode: resp.StatusCode, Detail: "failed to read response body"}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &SubmissionError{StatusCode: resp.StatusCode, Detail: submissionDetail(respBody)}
	}

	var ok submitResponse
	if err := json.Unmarshal(respBody, &ok); err != nil {
		return "", &ProtocolError{Message: "submission response is not valid JSON", Cause: err}
	}
	if ok.JobID == "" {
		return "", &ProtocolError{Message: "submission response is missing job_id"}
	}

	c.logger.Info().Str("job_id", ok.JobID).Msg("analysis job accepted")
	return ok.JobID, nil
}

// submissionDetail extracts the backend's failure message, falling back to
// a generic message when the body is not parseable.
func submissionDetail(body []byte) string {
	var eb errorBody
	if err := json.Unmarshal(body, &eb); err == nil {
		if eb.Detail != "" {
			return eb.Detail
		}
		if eb.Message != "" {
			return eb.Message
		}
	}
	return "the analysis service rejected the request"
}
