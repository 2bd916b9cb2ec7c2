package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hirestack/recruit-agent/internal/types"
)

// statusScript serves a scripted sequence of status responses and keeps
// serving the last one if polled again.
func statusScript(t *testing.T, ticks *atomic.Int32, responses ...string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		n := int(ticks.Add(1)) - 1
		if n >= len(responses) {
			n = len(responses) - 1
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(responses[n]))
	}))
}

func fastClient(url string, opts ...Option) *Client {
	opts = append([]Option{WithPollInterval(time.Millisecond)}, opts...)
	return New(url, opts...)
}

func TestPoll_TerminatesOnCompleted(t *testing.T) {
	var ticks atomic.Int32
	srv := statusScript(t, &ticks,
		`{"status": "processing", "progress": 10, "current_step": "Parsing resumes"}`,
		`{"status": "processing", "progress": 60, "current_step": "Scoring"}`,
		`{"status": "completed", "progress": 100, "current_step": "Done",
		  "result": {"candidates": [{"filename": "a.pdf", "score": {"total": 90}}],
		             "report_path": "/tmp/report"}}`,
	)
	defer srv.Close()

	var progress []int
	result, err := fastClient(srv.URL).Poll(context.Background(), "job-1", func(s types.JobStatus) {
		progress = append(progress, s.Progress)
	})
	require.NoError(t, err)
	require.Len(t, result.Candidates, 1)
	assert.Equal(t, "a.pdf", result.Candidates[0].Filename)
	assert.Equal(t, "/tmp/report", result.ReportPath)
	assert.Equal(t, []int{10, 60}, progress)

	// The loop must not schedule another tick after the terminal status.
	observed := ticks.Load()
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, observed, ticks.Load())
}

func TestPoll_TransportFailureAbortsWithoutRetry(t *testing.T) {
	var ticks atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		ticks.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := fastClient(srv.URL).Poll(context.Background(), "job-2", nil)
	var perr *PollingError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, http.StatusInternalServerError, perr.StatusCode)

	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, int32(1), ticks.Load(), "a failed tick must not be retried")
}

func TestPoll_BackendReportedError(t *testing.T) {
	var ticks atomic.Int32
	srv := statusScript(t, &ticks,
		`{"status": "error", "progress": 40, "current_step": "Scoring", "error": "mailbox fetch failed"}`,
	)
	defer srv.Close()

	_, err := fastClient(srv.URL).Poll(context.Background(), "job-3", nil)
	var berr *BackendReportedError
	require.ErrorAs(t, err, &berr)
	assert.Contains(t, berr.Error(), "mailbox fetch failed")
}

func TestPoll_CompletedWithoutResultIsProtocolError(t *testing.T) {
	var ticks atomic.Int32
	srv := statusScript(t, &ticks, `{"status": "completed", "progress": 100, "current_step": "Done"}`)
	defer srv.Close()

	_, err := fastClient(srv.URL).Poll(context.Background(), "job-4", nil)
	var perr *ProtocolError
	require.ErrorAs(t, err, &perr)
	assert.Contains(t, perr.Error(), "no result")
}

func TestPoll_MalformedStatusPayloadIsProtocolError(t *testing.T) {
	var ticks atomic.Int32
	srv := statusScript(t, &ticks, `{"progress": "almost there"}`)
	defer srv.Close()

	_, err := fastClient(srv.URL).Poll(context.Background(), "job-5", nil)
	var perr *ProtocolError
	require.ErrorAs(t, err, &perr)
}

func TestPoll_FractionalProgressKeepsPolling(t *testing.T) {
	var ticks atomic.Int32
	srv := statusScript(t, &ticks,
		`{"status": "processing", "progress": 42.5, "current_step": "Scoring"}`,
		`{"status": "completed", "progress": 100, "current_step": "Done", "result": {"candidates": []}}`,
	)
	defer srv.Close()

	var progress []int
	result, err := fastClient(srv.URL).Poll(context.Background(), "job-9", func(s types.JobStatus) {
		progress = append(progress, s.Progress)
	})
	require.NoError(t, err, "a fractional progress value must not abort a healthy job")
	assert.NotNil(t, result)
	assert.Equal(t, []int{42}, progress)
}

func TestPoll_UnknownStatusKeepsPolling(t *testing.T) {
	var ticks atomic.Int32
	srv := statusScript(t, &ticks,
		`{"status": "queued", "progress": 0, "current_step": "Waiting"}`,
		`{"status": "completed", "progress": 100, "current_step": "Done", "result": {"candidates": []}}`,
	)
	defer srv.Close()

	result, err := fastClient(srv.URL).Poll(context.Background(), "job-6", nil)
	require.NoError(t, err)
	assert.Empty(t, result.Candidates)
	assert.GreaterOrEqual(t, ticks.Load(), int32(2))
}

func TestPoll_AttemptBoundReturnsTimeout(t *testing.T) {
	var ticks atomic.Int32
	srv := statusScript(t, &ticks, `{"status": "processing", "progress": 50, "current_step": "Scoring"}`)
	defer srv.Close()

	_, err := fastClient(srv.URL, WithMaxPolls(3)).Poll(context.Background(), "job-7", nil)
	var terr *TimeoutError
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, 3, terr.Attempts)
	assert.Equal(t, int32(3), ticks.Load())
}

func TestPoll_ContextCancellationStopsLoop(t *testing.T) {
	var ticks atomic.Int32
	srv := statusScript(t, &ticks, `{"status": "processing", "progress": 5, "current_step": "Parsing"}`)
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		_, err := New(srv.URL, WithPollInterval(time.Hour)).Poll(ctx, "job-8", nil)
		done <- err
	}()

	// Let the immediate first tick land, then cancel during the wait.
	require.Eventually(t, func() bool { return ticks.Load() >= 1 }, time.Second, time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("poll loop did not stop after cancellation")
	}
	assert.Equal(t, int32(1), ticks.Load())
}

func TestRun_SubmitThenPoll(t *testing.T) {
	var submitted atomic.Bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/analyze":
			submitted.Store(true)
			_, _ = w.Write([]byte(`{"job_id": "job-42"}`))
		case "/analysis-status/job-42":
			_, _ = w.Write([]byte(`{"status": "completed", "progress": 100, "current_step": "Done",
				"result": {"candidates": [{"filename": "a.pdf", "score": {"total": 77}}]}}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	result, err := fastClient(srv.URL).Run(context.Background(), validRequest(), nil)
	require.NoError(t, err)
	assert.True(t, submitted.Load())
	require.Len(t, result.Candidates, 1)
}
