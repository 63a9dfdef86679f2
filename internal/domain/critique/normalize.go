package critique

import (
	"strconv"
	"strings"
)

const defaultDesignType = "UX"

// FromModel builds an AI result from the object a model returned.
// Model output is loosely typed, so numbers may arrive as strings and
// fields may be missing; positions are clamped and ids filled in order.
func FromModel(obj map[string]any, model string) Result {
	res := Result{
		Annotations: []Annotation{},
		DesignType:  defaultDesignType,
		Mode:        ModeAI,
		ModelUsed:   model,
	}
	if dt, ok := obj["designType"].(string); ok && strings.TrimSpace(dt) != "" {
		res.DesignType = dt
	}

	items, _ := obj["annotations"].([]any)
	seen := make(map[int]bool, len(items))
	for i, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		a := Annotation{
			X:           ClampPercent(number(m["x"])),
			Y:           ClampPercent(number(m["y"])),
			Type:        issueType(m["type"]),
			Severity:    severity(m["severity"]),
			Title:       text(m["title"]),
			Description: text(m["description"]),
			Fix:         text(m["fix"]),
		}
		id := int(number(m["id"]))
		if id <= 0 || seen[id] {
			id = i + 1
			for seen[id] {
				id++
			}
		}
		seen[id] = true
		a.ID = id
		res.Annotations = append(res.Annotations, a)
	}
	return res
}

func number(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	case string:
		f, err := strconv.ParseFloat(strings.TrimSuffix(strings.TrimSpace(n), "%"), 64)
		if err == nil {
			return f
		}
	}
	return 0
}

func text(v any) string {
	s, _ := v.(string)
	return s
}

func issueType(v any) IssueType {
	switch t := IssueType(strings.ToLower(text(v))); t {
	case TypeAccessibility, TypeUsability, TypeConsistency, TypeVisual, TypeMarketing:
		return t
	}
	return TypeVisual
}

func severity(v any) Severity {
	if Severity(strings.ToLower(text(v))) == SeverityCritical {
		return SeverityCritical
	}
	return SeverityMinor
}
