package critique

// IssueType is the category of a flagged design issue.
type IssueType string

const (
	TypeAccessibility IssueType = "accessibility"
	TypeUsability     IssueType = "usability"
	TypeConsistency   IssueType = "consistency"
	TypeVisual        IssueType = "visual"
	TypeMarketing     IssueType = "marketing"
)

// Severity enum
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityMinor    Severity = "minor"
)

// Mode tells the caller which code path produced a Result.
type Mode string

const (
	ModeAI        Mode = "ai"
	ModeMock      Mode = "mock"
	ModeSimulated Mode = "simulated"
)

// Annotation is one issue marker positioned over the screenshot.
// X and Y are percentages of the image size, origin top-left.
type Annotation struct {
	ID          int       `json:"id"`
	X           float64   `json:"x"`
	Y           float64   `json:"y"`
	Type        IssueType `json:"type"`
	Severity    Severity  `json:"severity"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Fix         string    `json:"fix"`
}

// Result is what an analysis returns to the client.
type Result struct {
	Annotations []Annotation `json:"annotations"`
	DesignType  string       `json:"designType,omitempty"`
	Mode        Mode         `json:"mode"`
	ModelUsed   string       `json:"modelUsed,omitempty"`
}

// Simulated is the explicit "no AI available" result.
func Simulated() Result {
	return Result{Mode: ModeSimulated, Annotations: []Annotation{}}
}

// Counts returns the number of critical and minor annotations.
func (r Result) Counts() (critical, minor int) {
	for _, a := range r.Annotations {
		if a.Severity == SeverityCritical {
			critical++
		} else {
			minor++
		}
	}
	return critical, minor
}

// ClampPercent bounds v to [0,100].
func ClampPercent(v float64) float64 {
	return Clamp(v, 0, 100)
}

func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
