package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingDoer fails every request and records how many were attempted.
type countingDoer struct {
	calls int
}

func (d *countingDoer) Do(_ *http.Request) (*http.Response, error) {
	d.calls++
	return nil, http.ErrHandlerTimeout
}

func validRequest() *AnalysisRequest {
	return &AnalysisRequest{
		JDText:  "Senior Go engineer, distributed systems.",
		Resumes: []FilePart{{Name: "a.pdf", Content: []byte("resume a")}},
	}
}

func TestSubmit_ValidationFailsWithoutNetworkCall(t *testing.T) {
	transport := &countingDoer{}
	c := New("http://backend", WithHTTPClient(transport))

	cases := []struct {
		name  string
		req   *AnalysisRequest
		field string
	}{
		{
			name:  "no job description and no files",
			req:   &AnalysisRequest{},
			field: "job_description",
		},
		{
			name:  "jd present but no candidate source",
			req:   &AnalysisRequest{JDText: "some jd"},
			field: "candidate_source",
		},
		{
			name: "mailbox feed without dates",
			req: &AnalysisRequest{
				JDText:  "some jd",
				Mailbox: &DateRange{},
			},
			field: "mailbox_range",
		},
		{
			name: "mailbox feed with malformed date",
			req: &AnalysisRequest{
				JDText:  "some jd",
				Mailbox: &DateRange{Start: "01/02/2026", End: "2026-02-10"},
			},
			field: "mailbox_range",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := c.Submit(context.Background(), tc.req)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tc.field, verr.Field)
		})
	}
	assert.Zero(t, transport.calls, "validation failures must not reach the network")
}

func TestSubmit_EncodesMultipartForm(t *testing.T) {
	var seen struct {
		jdText    string
		topN      string
		resumes   []string
		startDate string
		endDate   string
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/analyze", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))
		seen.jdText = r.FormValue("jd_text_input")
		seen.topN = r.FormValue("top_n")
		seen.startDate = r.FormValue("start_date")
		seen.endDate = r.FormValue("end_date")
		for _, fh := range r.MultipartForm.File["resume_files"] {
			seen.resumes = append(seen.resumes, fh.Filename)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"job_id": "job-123"}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	req := validRequest()
	req.Resumes = append(req.Resumes, FilePart{Name: "b.pdf", Content: []byte("resume b")})
	req.Mailbox = &DateRange{Start: "2026-01-01", End: "2026-01-31"}

	jobID, err := c.Submit(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "job-123", jobID)
	assert.Equal(t, req.JDText, seen.jdText)
	assert.Equal(t, "5", seen.topN, "unset top_n defaults to 5")
	assert.Equal(t, []string{"a.pdf", "b.pdf"}, seen.resumes)
	assert.Equal(t, "2026-01-01", seen.startDate)
	assert.Equal(t, "2026-01-31", seen.endDate)
}

func TestSubmit_FileSourceTakesPrecedenceOverText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Empty(t, r.FormValue("jd_text_input"))
		files := r.MultipartForm.File["jd_file"]
		require.Len(t, files, 1)
		assert.Equal(t, "jd.txt", files[0].Filename)
		_, _ = w.Write([]byte(`{"job_id": "job-9"}`))
	}))
	defer srv.Close()

	req := validRequest()
	req.JDFile = &FilePart{Name: "jd.txt", Content: []byte("the jd")}

	_, err := New(srv.URL).Submit(context.Background(), req)
	require.NoError(t, err)
}

func TestSubmit_BackendDetailSurfacesInError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"detail": "No resumes provided!"}`))
	}))
	defer srv.Close()

	_, err := New(srv.URL).Submit(context.Background(), validRequest())
	var serr *SubmissionError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, http.StatusBadRequest, serr.StatusCode)
	assert.Equal(t, "No resumes provided!", serr.Detail)
}

func TestSubmit_UnparseableErrorBodyGetsGenericMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("<html>Internal Server Error</html>"))
	}))
	defer srv.Close()

	_, err := New(srv.URL).Submit(context.Background(), validRequest())
	var serr *SubmissionError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, "the analysis service rejected the request", serr.Detail)
}

func TestSubmit_MissingJobIDIsProtocolError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"status": "accepted"}`))
	}))
	defer srv.Close()

	_, err := New(srv.URL).Submit(context.Background(), validRequest())
	var perr *ProtocolError
	require.ErrorAs(t, err, &perr)
}
