package critique

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromModel_ClampsAndDefaults(t *testing.T) {
	obj := map[string]any{
		"annotations": []any{
			map[string]any{"id": float64(3), "x": float64(140), "y": float64(-5), "type": "accessibility", "severity": "critical", "title": "Low contrast"},
			map[string]any{"x": "45", "y": "50%", "type": "nonsense", "severity": "HIGH"},
		},
	}
	res := FromModel(obj, "claude-3-haiku-20240307")

	assert.Equal(t, ModeAI, res.Mode)
	assert.Equal(t, "claude-3-haiku-20240307", res.ModelUsed)
	assert.Equal(t, "UX", res.DesignType)
	require.Len(t, res.Annotations, 2)

	first := res.Annotations[0]
	assert.Equal(t, 3, first.ID)
	assert.Equal(t, 100.0, first.X)
	assert.Equal(t, 0.0, first.Y)
	assert.Equal(t, TypeAccessibility, first.Type)
	assert.Equal(t, SeverityCritical, first.Severity)

	second := res.Annotations[1]
	assert.Equal(t, 2, second.ID)
	assert.Equal(t, 45.0, second.X)
	assert.Equal(t, 50.0, second.Y)
	assert.Equal(t, TypeVisual, second.Type)
	assert.Equal(t, SeverityMinor, second.Severity)
}

func TestFromModel_DuplicateIDs(t *testing.T) {
	obj := map[string]any{
		"designType": "Landing Page",
		"annotations": []any{
			map[string]any{"id": float64(1)},
			map[string]any{"id": float64(1)},
		},
	}
	res := FromModel(obj, "gpt-4o")
	require.Len(t, res.Annotations, 2)
	assert.Equal(t, "Landing Page", res.DesignType)
	assert.Equal(t, 1, res.Annotations[0].ID)
	assert.Equal(t, 2, res.Annotations[1].ID)
}

func TestFromModel_NoAnnotations(t *testing.T) {
	res := FromModel(map[string]any{"designType": "UX"}, "gpt-4o")
	assert.NotNil(t, res.Annotations)
	assert.Empty(t, res.Annotations)
}

func TestSimulated(t *testing.T) {
	res := Simulated()
	assert.Equal(t, ModeSimulated, res.Mode)
	assert.NotNil(t, res.Annotations)
	critical, minor := res.Counts()
	assert.Zero(t, critical)
	assert.Zero(t, minor)
}
