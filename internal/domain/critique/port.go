package critique

import "context"

// Candidate is one provider/model combination in the fallback chain.
type Candidate interface {
	Name() string
	Complete(ctx context.Context, img Image, userContext string) (string, error)
}

// ResponseParser turns free-form model text into a JSON object.
type ResponseParser interface {
	Parse(text string) (map[string]any, error)
}

// ProbeStatus classifies a credential probe against one model.
type ProbeStatus string

const (
	ProbeAvailable   ProbeStatus = "available"
	ProbeInvalidKey  ProbeStatus = "invalid_key"
	ProbeUnavailable ProbeStatus = "unavailable"
	ProbeForbidden   ProbeStatus = "forbidden"
	ProbeError       ProbeStatus = "error"
)

type ProbeResult struct {
	Model  string      `json:"model"`
	Status ProbeStatus `json:"status"`
	Detail string      `json:"detail,omitempty"`
}

// Prober checks whether a configured credential can reach a model.
type Prober interface {
	Name() string
	Probe(ctx context.Context) ProbeResult
}
