// Package ai assembles the provider fallback chain from configuration.
package ai

import (
	"context"
	"net/http"

	"github.com/bryanwahyu/critique/internal/config"
	"github.com/bryanwahyu/critique/internal/domain/critique"
	"github.com/bryanwahyu/critique/internal/infra/ai/anthropic"
	"github.com/bryanwahyu/critique/internal/infra/ai/openai"
)

type provider interface {
	critique.Candidate
	critique.Prober
}

// Candidates returns the ordered chain: every configured Anthropic model,
// then the OpenAI model. Providers without a key are left out.
func Candidates(cfg config.AI, httpClient *http.Client) []critique.Candidate {
	var out []critique.Candidate
	for _, group := range build(cfg, httpClient) {
		for _, p := range group {
			out = append(out, p)
		}
	}
	return out
}

// Probers returns the same chain for credential checks.
func Probers(cfg config.AI, httpClient *http.Client) []critique.Prober {
	var out []critique.Prober
	for _, group := range build(cfg, httpClient) {
		for _, p := range group {
			out = append(out, p)
		}
	}
	return out
}

// CheckKeys probes every configured model in chain order and passes each
// result to report. An invalid key skips the provider's remaining models.
func CheckKeys(ctx context.Context, cfg config.AI, httpClient *http.Client, report func(critique.ProbeResult)) {
	for _, group := range build(cfg, httpClient) {
		for _, p := range group {
			if ctx.Err() != nil {
				return
			}
			res := p.Probe(ctx)
			report(res)
			if res.Status == critique.ProbeInvalidKey {
				break
			}
		}
	}
}

// build returns one group per provider, in priority order.
func build(cfg config.AI, httpClient *http.Client) [][]provider {
	var groups [][]provider
	if cfg.AnthropicKey != "" && len(cfg.AnthropicModels) > 0 {
		group := make([]provider, 0, len(cfg.AnthropicModels))
		for _, model := range cfg.AnthropicModels {
			group = append(group, anthropic.NewClient(cfg.AnthropicKey, model, cfg.AnthropicBaseURL, httpClient))
		}
		groups = append(groups, group)
	}
	if cfg.OpenAIKey != "" && cfg.OpenAIModel != "" {
		groups = append(groups, []provider{openai.NewClient(cfg.OpenAIKey, cfg.OpenAIModel, cfg.OpenAIBaseURL, httpClient)})
	}
	return groups
}
