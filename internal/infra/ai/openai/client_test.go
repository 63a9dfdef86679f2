package openai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bryanwahyu/critique/internal/domain/critique"
)

func completionBody(content string) map[string]any {
	return map[string]any{
		"id":     "chatcmpl-1",
		"object": "chat.completion",
		"model":  "gpt-4o",
		"choices": []any{map[string]any{
			"index":         0,
			"finish_reason": "stop",
			"message":       map[string]any{"role": "assistant", "content": content},
		}},
	}
}

func TestComplete_SendsImageAndJSONFormat(t *testing.T) {
	dataURL := "data:image/png;base64,AAAA"
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "gpt-4o", body["model"])
		assert.Equal(t, "json_object", body["response_format"].(map[string]any)["type"])

		msgs := body["messages"].([]any)
		require.Len(t, msgs, 2)
		assert.Equal(t, "system", msgs[0].(map[string]any)["role"])
		content := msgs[1].(map[string]any)["content"].([]any)
		require.Len(t, content, 2)
		img := content[0].(map[string]any)
		assert.Equal(t, "image_url", img["type"])
		assert.Equal(t, dataURL, img["image_url"].(map[string]any)["url"])

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(completionBody(`{"designType":"UX","annotations":[]}`))
	}))
	defer ts.Close()

	c := NewClient("sk-test", "gpt-4o", ts.URL, ts.Client())
	text, err := c.Complete(context.Background(), critique.ParseDataURL(dataURL), "mobile signup")

	require.NoError(t, err)
	assert.Equal(t, `{"designType":"UX","annotations":[]}`, text)
	assert.Equal(t, "gpt-4o", c.Name())
}

func TestComplete_NoChoices(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"x","choices":[]}`))
	}))
	defer ts.Close()

	c := NewClient("sk-test", "gpt-4o", ts.URL, ts.Client())
	_, err := c.Complete(context.Background(), critique.ParseDataURL("AAAA"), "")
	assert.ErrorIs(t, err, critique.ErrEmptyResponse)
}

func TestComplete_APIError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"Incorrect API key provided","type":"invalid_request_error","code":"invalid_api_key"}}`))
	}))
	defer ts.Close()

	c := NewClient("sk-bad", "gpt-4o", ts.URL, ts.Client())
	_, err := c.Complete(context.Background(), critique.ParseDataURL("AAAA"), "")
	require.Error(t, err)

	var apiErr *openai.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusUnauthorized, apiErr.HTTPStatusCode)

	assert.Equal(t, critique.ProbeInvalidKey, Classify("gpt-4o", err).Status)
}

func TestClassify_NonAPIError(t *testing.T) {
	res := Classify("gpt-4o", errors.New("timeout"))
	assert.Equal(t, critique.ProbeError, res.Status)
	assert.Equal(t, "timeout", res.Detail)
}
