// Package repair recovers JSON objects from language-model text output.
package repair

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/kaptinlin/jsonrepair"

	"github.com/bryanwahyu/critique/internal/domain/critique"
)

const snippetLen = 100

// Parser implements critique.ResponseParser.
type Parser struct {
	Logger *slog.Logger
}

func NewParser(logger *slog.Logger) *Parser {
	return &Parser{Logger: logger}
}

// Extract returns the span from the first '{' to the last '}'.
func Extract(text string) (string, bool) {
	start := strings.IndexByte(text, '{')
	end := strings.LastIndexByte(text, '}')
	if start < 0 || end < 0 || end < start {
		return "", false
	}
	return text[start : end+1], true
}

// Parse extracts the object span, tries a strict decode and then a
// tolerant repair pass. Failures are logged and returned as
// critique.ErrNoObject or critique.ErrUnparseable.
func (p *Parser) Parse(text string) (map[string]any, error) {
	span, ok := Extract(text)
	if !ok {
		return nil, critique.ErrNoObject
	}

	var obj map[string]any
	if err := json.Unmarshal([]byte(span), &obj); err == nil {
		return obj, nil
	}

	repaired, err := jsonrepair.JSONRepair(span)
	if err != nil {
		p.logFailure(span, err)
		return nil, fmt.Errorf("%w: %v", critique.ErrUnparseable, err)
	}
	obj = nil
	if err := json.Unmarshal([]byte(repaired), &obj); err != nil {
		p.logFailure(span, err)
		return nil, fmt.Errorf("%w: %v", critique.ErrUnparseable, err)
	}
	if obj == nil {
		p.logFailure(span, fmt.Errorf("repaired value is not an object"))
		return nil, critique.ErrUnparseable
	}
	return obj, nil
}

func (p *Parser) logFailure(span string, err error) {
	if p.Logger == nil {
		return
	}
	head, tail := span, span
	if len(span) > snippetLen {
		head = span[:snippetLen]
		tail = span[len(span)-snippetLen:]
	}
	p.Logger.Error("json repair failed", "error", err, "head", head, "tail", tail)
}
