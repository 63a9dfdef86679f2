package anthropic

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bryanwahyu/critique/internal/domain/critique"
)

func TestComplete_Success(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/messages", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("x-api-key"))
		assert.Equal(t, "2023-06-01", r.Header.Get("anthropic-version"))

		var body request
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "claude-3-haiku-20240307", body.Model)
		assert.Equal(t, 2500, body.MaxTokens)
		assert.Contains(t, body.System, "Visual Quality Assurance")
		require.Len(t, body.Messages, 1)
		require.Len(t, body.Messages[0].Content, 2)
		imgBlock := body.Messages[0].Content[0]
		assert.Equal(t, "image", imgBlock.Type)
		assert.Equal(t, "image/jpeg", imgBlock.Source.MediaType)
		assert.Equal(t, "AAAA", imgBlock.Source.Data)
		assert.Equal(t, "Audit this UI. pricing page", body.Messages[0].Content[1].Text)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"content":[{"type":"text","text":"{\"designType\":"},{"type":"text","text":"\"UX\"}"}],"model":"claude-3-haiku-20240307"}`))
	}))
	defer ts.Close()

	c := NewClient("test-key", "claude-3-haiku-20240307", ts.URL, ts.Client())
	text, err := c.Complete(context.Background(), critique.ParseDataURL("data:image/jpeg;base64,AAAA"), "pricing page")

	require.NoError(t, err)
	assert.Equal(t, `{"designType":"UX"}`, text)
	assert.Equal(t, "claude-3-haiku-20240307", c.Name())
}

func TestComplete_APIError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"type":"error","error":{"type":"not_found_error","message":"model: claude-x"}}`))
	}))
	defer ts.Close()

	c := NewClient("k", "claude-x", ts.URL, ts.Client())
	_, err := c.Complete(context.Background(), critique.ParseDataURL("data:image/png;base64,AAAA"), "")

	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusNotFound, se.StatusCode)
	assert.Equal(t, "not_found_error", se.Type)
	assert.Contains(t, err.Error(), "404")
}

func TestComplete_EmptyContent(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"content":[]}`))
	}))
	defer ts.Close()

	c := NewClient("k", "m", ts.URL, ts.Client())
	_, err := c.Complete(context.Background(), critique.ParseDataURL("AAAA"), "")
	assert.ErrorIs(t, err, critique.ErrEmptyResponse)
}

func TestComplete_ContextCancelled(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer ts.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := NewClient("k", "m", ts.URL, ts.Client())
	_, err := c.Complete(ctx, critique.ParseDataURL("AAAA"), "")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}
