package anthropic

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/bryanwahyu/critique/internal/domain/critique"
)

// Probe sends a minimal message to check that the key can use the model.
func (c *Client) Probe(ctx context.Context) critique.ProbeResult {
	_, err := c.send(ctx, request{
		Model:     c.model,
		MaxTokens: 10,
		Messages:  []message{{Role: "user", Content: []contentBlock{{Type: "text", Text: "Hi"}}}},
	})
	return Classify(c.model, err)
}

// Classify maps a probe error onto a status.
func Classify(model string, err error) critique.ProbeResult {
	res := critique.ProbeResult{Model: model, Status: critique.ProbeAvailable}
	if err == nil {
		return res
	}
	res.Detail = err.Error()

	var se *StatusError
	if !errors.As(err, &se) {
		res.Status = critique.ProbeError
		return res
	}
	res.Detail = se.Message
	switch {
	case se.StatusCode == http.StatusUnauthorized:
		res.Status = critique.ProbeInvalidKey
	case se.StatusCode == http.StatusNotFound || strings.Contains(se.Type, "not_found"):
		res.Status = critique.ProbeUnavailable
	case se.StatusCode == http.StatusForbidden || strings.Contains(se.Type, "permission"):
		res.Status = critique.ProbeForbidden
	default:
		res.Status = critique.ProbeError
	}
	return res
}
