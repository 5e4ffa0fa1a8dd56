// Package badge generates SVG coverage badges.
package badge

import (
	"fmt"
	"strings"
)

// Generator creates flat-style SVG badges from a coverage percentage.
type Generator struct {
	config *Config
}

// Config holds badge generation configuration.
type Config struct {
	Label           string
	ThresholdConfig ThresholdConfig
}

// ThresholdConfig defines the coverage bands for color coding.
type ThresholdConfig struct {
	Excellent  float64 // bright green
	Good       float64 // green
	Acceptable float64 // yellow
	Low        float64 // orange
	// Below Low = red
}

// New creates a badge generator with default configuration.
func New() *Generator {
	return &Generator{
		config: &Config{
			Label: "coverage",
			ThresholdConfig: ThresholdConfig{
				Excellent:  90.0,
				Good:       80.0,
				Acceptable: 70.0,
				Low:        60.0,
			},
		},
	}
}

// NewWithConfig creates a badge generator with custom configuration.
func NewWithConfig(config *Config) *Generator {
	if config.Label == "" {
		config.Label = "coverage"
	}
	return &Generator{config: config}
}

// Generate renders an SVG badge for the given coverage percentage.
func (g *Generator) Generate(percentage float64) []byte {
	message := fmt.Sprintf("%.1f%%", percentage)
	color := g.colorFor(percentage)

	// Approximate text metrics at the 11px badge font.
	labelWidth := 6*len(g.config.Label) + 10
	messageWidth := 6*len(message) + 10
	total := labelWidth + messageWidth

	var sb strings.Builder
	fmt.Fprintf(&sb, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="20" role="img" aria-label="%s: %s">`,
		total, g.config.Label, message)
	fmt.Fprintf(&sb, `<rect width="%d" height="20" fill="#555"/>`, labelWidth)
	fmt.Fprintf(&sb, `<rect x="%d" width="%d" height="20" fill="%s"/>`, labelWidth, messageWidth, color)
	fmt.Fprintf(&sb, `<g fill="#fff" text-anchor="middle" font-family="Verdana,Geneva,DejaVu Sans,sans-serif" font-size="11">`)
	fmt.Fprintf(&sb, `<text x="%d" y="14">%s</text>`, labelWidth/2, g.config.Label)
	fmt.Fprintf(&sb, `<text x="%d" y="14">%s</text>`, labelWidth+messageWidth/2, message)
	sb.WriteString(`</g></svg>`)

	return []byte(sb.String())
}

// colorFor maps a percentage onto the configured color band.
func (g *Generator) colorFor(percentage float64) string {
	t := g.config.ThresholdConfig
	switch {
	case percentage >= t.Excellent:
		return "#3fb950"
	case percentage >= t.Good:
		return "#7c3aed"
	case percentage >= t.Acceptable:
		return "#d29922"
	case percentage >= t.Low:
		return "#fb8500"
	default:
		return "#f85149"
	}
}
