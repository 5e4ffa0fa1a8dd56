package badge

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerate(t *testing.T) {
	svg := string(New().Generate(85.5))

	assert.True(t, strings.HasPrefix(svg, "<svg"))
	assert.True(t, strings.HasSuffix(svg, "</svg>"))
	assert.Contains(t, svg, "85.5%")
	assert.Contains(t, svg, "coverage")
}

func TestColorBands(t *testing.T) {
	g := New()

	tests := []struct {
		pct   float64
		color string
	}{
		{95, "#3fb950"},
		{85, "#7c3aed"},
		{75, "#d29922"},
		{65, "#fb8500"},
		{10, "#f85149"},
	}

	for _, tt := range tests {
		assert.Contains(t, string(g.Generate(tt.pct)), tt.color, "pct %.0f", tt.pct)
	}
}

func TestCustomLabel(t *testing.T) {
	g := NewWithConfig(&Config{
		Label:           "lines",
		ThresholdConfig: ThresholdConfig{Excellent: 90, Good: 80, Acceptable: 70, Low: 60},
	})

	assert.Contains(t, string(g.Generate(50)), ">lines</text>")
}
