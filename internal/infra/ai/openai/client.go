package openai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/sashabaranov/go-openai"

	"github.com/bryanwahyu/critique/internal/domain/critique"
	"github.com/bryanwahyu/critique/internal/infra/ai/prompt"
)

const maxTokens = 2500

// Client is the chat-completions candidate. It implements critique.Candidate.
type Client struct {
	*openai.Client
	Model string
}

// NewClient builds a client; an empty baseURL keeps the public endpoint.
func NewClient(apiKey, model, baseURL string, httpClient *http.Client) *Client {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = strings.TrimRight(baseURL, "/")
	}
	if httpClient != nil {
		cfg.HTTPClient = httpClient
	}
	return &Client{Client: openai.NewClientWithConfig(cfg), Model: model}
}

func (c *Client) Name() string { return c.Model }

func (c *Client) Complete(ctx context.Context, img critique.Image, userContext string) (string, error) {
	parts := []openai.ChatMessagePart{{
		Type:     openai.ChatMessagePartTypeImageURL,
		ImageURL: &openai.ChatMessageImageURL{URL: img.DataURL},
	}}
	if strings.TrimSpace(userContext) != "" {
		parts = append(parts, openai.ChatMessagePart{
			Type: openai.ChatMessagePartTypeText,
			Text: prompt.UserPrompt(userContext),
		})
	}

	req := openai.ChatCompletionRequest{
		Model: c.Model,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: prompt.OpenAISystemPrompt()},
			{Role: openai.ChatMessageRoleUser, MultiContent: parts},
		},
	}
	setTokenLimit(&req, maxTokens)

	resp, err := c.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("failed to create chat completion: %w", err)
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", critique.ErrEmptyResponse
	}
	return resp.Choices[0].Message.Content, nil
}

// Probe sends a tiny completion to check the key against the model.
func (c *Client) Probe(ctx context.Context) critique.ProbeResult {
	req := openai.ChatCompletionRequest{
		Model:    c.Model,
		Messages: []openai.ChatCompletionMessage{{Role: openai.ChatMessageRoleUser, Content: "Hi"}},
	}
	setTokenLimit(&req, 10)
	_, err := c.CreateChatCompletion(ctx, req)
	return Classify(c.Model, err)
}

// Classify maps a go-openai error onto a probe status.
func Classify(model string, err error) critique.ProbeResult {
	res := critique.ProbeResult{Model: model, Status: critique.ProbeAvailable}
	if err == nil {
		return res
	}
	res.Status = critique.ProbeError
	res.Detail = err.Error()

	var apiErr *openai.APIError
	if !errors.As(err, &apiErr) {
		return res
	}
	res.Detail = apiErr.Message
	switch apiErr.HTTPStatusCode {
	case http.StatusUnauthorized:
		res.Status = critique.ProbeInvalidKey
	case http.StatusNotFound:
		res.Status = critique.ProbeUnavailable
	case http.StatusForbidden:
		res.Status = critique.ProbeForbidden
	}
	return res
}

// For reasoning models (o1/o3/o4/gpt-5*) use MaxCompletionTokens instead of MaxTokens
func setTokenLimit(req *openai.ChatCompletionRequest, n int) {
	m := req.Model
	if strings.HasPrefix(m, "o1") || strings.HasPrefix(m, "o3") || strings.HasPrefix(m, "o4") || strings.HasPrefix(m, "gpt-5") {
		req.MaxCompletionTokens = n
	} else {
		req.MaxTokens = n
	}
}
