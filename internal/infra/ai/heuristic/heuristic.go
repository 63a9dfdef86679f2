// Package heuristic produces a plausible critique without any model. It is
// the client's fallback when the backend cannot be reached.
package heuristic

import (
	"math/rand"
	"strings"
	"unicode/utf16"

	"github.com/bryanwahyu/critique/internal/domain/critique"
)

// seedPrefix bounds how much of the encoded image feeds the seed.
const seedPrefix = 1000

// Rand is the jitter source for coordinates. *rand.Rand satisfies it.
type Rand interface {
	Float64() float64
}

type globalRand struct{}

func (globalRand) Float64() float64 { return rand.Float64() }

// DefaultRand draws from the process-wide generator.
var DefaultRand Rand = globalRand{}

var designTypes = []string{"ux", "poster", "marketing", "branding"}

// Template is one hand-authored issue.
type Template struct {
	Type        critique.IssueType
	Severity    critique.Severity
	Title       string
	Description string
	Fix         string
}

// catalog order is part of the output contract: selection takes a prefix.
var catalog = []Template{
	{critique.TypeAccessibility, critique.SeverityCritical, "Insufficient Color Contrast",
		"Text elements appear to have low contrast ratio against their background.",
		"Increase contrast by using darker text colors or lighter backgrounds."},
	{critique.TypeAccessibility, critique.SeverityCritical, "Small Touch Target Size",
		"Interactive elements appear smaller than the recommended 44x44px minimum.",
		"Increase the size of clickable elements or add more padding."},
	{critique.TypeUsability, critique.SeverityCritical, "Primary CTA Below the Fold",
		"The main call-to-action button is positioned below the initial viewport.",
		"Move the primary CTA higher on the page."},
	{critique.TypeUsability, critique.SeverityCritical, "Unclear Information Hierarchy",
		"The visual hierarchy doesn't clearly guide users through the content.",
		"Use size, weight, and spacing to create clear distinction."},
	{critique.TypeConsistency, critique.SeverityMinor, "Inconsistent Spacing Scale",
		"Spacing between elements varies irregularly throughout the design.",
		"Implement a consistent spacing scale (e.g., 8px grid)."},
	{critique.TypeVisual, critique.SeverityCritical, "Weak Visual Anchor",
		"The design lacks a strong focal point, causing the eye to wander.",
		"Create a dominant element to anchor the composition."},
	{critique.TypeMarketing, critique.SeverityCritical, "Weak Value Proposition",
		"The primary benefit isn't immediately clear within the first 3 seconds.",
		"Refine the headline to focus on the user benefit."},
}

type point struct{ x, y float64 }

var (
	uxPattern    = []point{{50, 25}, {30, 45}, {70, 45}}
	otherPattern = []point{{50, 50}, {50, 20}, {50, 80}}
)

// Seed hashes at most the first 1000 UTF-16 code units of the encoded
// image with h = h*31 + c in 32-bit arithmetic and returns |h|.
func Seed(encoded string) int64 {
	var h int32
	n := 0
	for _, r := range encoded {
		units := []rune{r}
		if r >= 0x10000 {
			r1, r2 := utf16.EncodeRune(r)
			units = []rune{r1, r2}
		}
		for _, u := range units {
			if n == seedPrefix {
				return abs(h)
			}
			h = h*31 + int32(u)
			n++
		}
	}
	return abs(h)
}

func abs(h int32) int64 {
	s := int64(h)
	if s < 0 {
		return -s
	}
	return s
}

// Selection is the deterministic part of a mock result.
type Selection struct {
	DesignType string
	Issues     []Template
}

// Select picks the design type and issue prefix for a seed.
func Select(seed int64) Selection {
	count := 4 + int(seed%3)
	issues := make([]Template, count)
	copy(issues, catalog[:count])
	return Selection{
		DesignType: designTypes[seed%int64(len(designTypes))],
		Issues:     issues,
	}
}

// Generate builds a mock result for an encoded image. Issue choice depends
// only on the image; coordinates are jittered by rng.
func Generate(encoded string, rng Rand) critique.Result {
	if rng == nil {
		rng = DefaultRand
	}
	sel := Select(Seed(encoded))

	annotations := make([]critique.Annotation, 0, len(sel.Issues))
	for i, issue := range sel.Issues {
		x, y := coordinates(i, sel.DesignType, rng)
		annotations = append(annotations, critique.Annotation{
			ID:          i + 1,
			X:           x,
			Y:           y,
			Type:        issue.Type,
			Severity:    issue.Severity,
			Title:       issue.Title,
			Description: issue.Description,
			Fix:         issue.Fix,
		})
	}

	return critique.Result{
		Annotations: annotations,
		DesignType:  strings.ToUpper(sel.DesignType),
		Mode:        critique.ModeMock,
	}
}

func coordinates(index int, designType string, rng Rand) (float64, float64) {
	pattern := otherPattern
	if designType == "ux" {
		pattern = uxPattern
	}
	base := pattern[index%len(pattern)]
	x := critique.Clamp(base.x+(rng.Float64()*20-10), 5, 95)
	y := critique.Clamp(base.y+(rng.Float64()*20-10), 5, 95)
	return x, y
}
