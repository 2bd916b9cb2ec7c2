package aptitude

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hirestack/recruit-agent/internal/types"
)

func questionSet() *types.QuestionSet {
	return &types.QuestionSet{
		MCQs: []types.MCQ{{Question: "Q1", Options: []string{"a", "b"}, Answer: "a"}},
		CodingQuestions: []types.CodingQuestion{
			{Title: "Two Sum", Description: "classic"},
		},
	}
}

func TestNewAssessmentLink(t *testing.T) {
	link, token := NewAssessmentLink("https://hiring.example.com/aptitude/test.html", "Platform Engineer")
	_, err := uuid.Parse(token)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(link, "https://hiring.example.com/aptitude/test.html?role=Platform+Engineer&token="))
	assert.True(t, strings.HasSuffix(link, token))
}

func TestSend_PostsPayloadAndReturnsToken(t *testing.T) {
	var payload SendRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/send-assessment", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		_, _ = w.Write([]byte(`{"status": "queued"}`))
	}))
	defer srv.Close()

	token, err := New(srv.URL).Send(context.Background(),
		"https://hiring.example.com/test.html", "Backend Engineer",
		[]string{" a@x.com ", "", "b@x.com"}, questionSet())
	require.NoError(t, err)

	assert.Equal(t, []string{"a@x.com", "b@x.com"}, payload.Emails)
	assert.Equal(t, "Backend Engineer", payload.JobTitle)
	assert.Equal(t, 1, payload.MCQCount)
	assert.Equal(t, 1, payload.CodingCount)
	assert.Contains(t, payload.AssessmentLink, token)
}

func TestSend_RequiresEmails(t *testing.T) {
	_, err := New("http://unused").Send(context.Background(), "http://t", "Role", []string{"  "}, questionSet())
	assert.Error(t, err)
}

func TestSend_RequiresQuestions(t *testing.T) {
	_, err := New("http://unused").Send(context.Background(), "http://t", "Role",
		[]string{"a@x.com"}, &types.QuestionSet{})
	assert.Error(t, err)
}
