package client

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/hirestack/recruit-agent/internal/types"
)

// ProgressFunc receives advisory status updates between poll ticks.
type ProgressFunc func(status types.JobStatus)

// Poll issues a status request every poll interval until the job reaches a
// terminal state. The first tick fires immediately. Any transport failure
// aborts the loop without retry; cancelling the context stops the loop and
// releases the timer deterministically.
func (c *Client) Poll(ctx context.Context, jobID string, onProgress ProgressFunc) (*types.AnalysisResult, error) {
	timer := time.NewTimer(0)
	defer timer.Stop()

	attempts := 0
	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-timer.C:
		}

		status, err := c.fetchStatus(ctx, jobID)
		if err != nil {
			return nil, err
		}
		attempts++

		switch status.State() {
		case types.JobCompleted:
			if status.Result == nil {
				return nil, &ProtocolError{Message: "job completed but no result was returned"}
			}
			c.logger.Info().Str("job_id", jobID).Int("attempts", attempts).
				Int("candidates", len(status.Result.Candidates)).Msg("analysis completed")
			return status.Result, nil
		case types.JobError:
			return nil, &BackendReportedError{JobID: jobID, Message: status.Error}
		default:
			// Unknown states are treated as still-in-progress.
			c.logger.Debug().Str("job_id", jobID).Int("progress", status.Progress).
				Str("step", status.CurrentStep).Msg("job in progress")
			if onProgress != nil {
				onProgress(*status)
			}
		}

		if c.maxPolls > 0 && attempts >= c.maxPolls {
			return nil, &TimeoutError{JobID: jobID, Attempts: attempts}
		}
		timer.Reset(c.pollInterval)
	}
}

// Run submits the request and polls it to completion. It is the
// one-shot convenience the analyze command uses.
func (c *Client) Run(ctx context.Context, req *AnalysisRequest, onProgress ProgressFunc) (*types.AnalysisResult, error) {
	jobID, err := c.Submit(ctx, req)
	if err != nil {
		return nil, err
	}
	return c.Poll(ctx, jobID, onProgress)
}

// fetchStatus performs one status GET and decodes the payload at the
// contract boundary.
func (c *Client) fetchStatus(ctx context.Context, jobID string) (*types.JobStatus, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/analysis-status/"+jobID, nil)
	if err != nil {
		return nil, &PollingError{JobID: jobID, Cause: err}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &PollingError{JobID: jobID, Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &PollingError{JobID: jobID, Cause: err}
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &PollingError{JobID: jobID, StatusCode: resp.StatusCode}
	}

	return decodeJobStatus(body)
}
