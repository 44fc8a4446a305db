package utils

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
)

// DetailBuilder builds sectioned id/value listings for terminal reports.
type DetailBuilder struct {
	b            strings.Builder
	labelStyle   lipgloss.Style
	sectionStyle lipgloss.Style
}

// NewDetailBuilder creates a builder with a fixed-width label column.
func NewDetailBuilder(labelWidth int, labelStyle, sectionStyle lipgloss.Style) *DetailBuilder {
	return &DetailBuilder{
		labelStyle:   labelStyle.Width(labelWidth),
		sectionStyle: sectionStyle,
	}
}

// Row writes a labeled row.
func (d *DetailBuilder) Row(label, value string) {
	fmt.Fprintf(&d.b, "  %s %s\n", d.labelStyle.Render(label), value)
}

// Section writes a heading like "── title (n) ──────...". Sections with no
// items get a muted "none" row so every kind is listed.
func (d *DetailBuilder) Section(title string, n int) {
	head := fmt.Sprintf("%s (%d)", title, n)
	pad := max(40-len(head), 4)
	d.b.WriteString(d.sectionStyle.Render(fmt.Sprintf("  ── %s %s", head, strings.Repeat("─", pad))) + "\n")
	if n == 0 {
		fmt.Fprintf(&d.b, "  %s\n", d.labelStyle.Render("none"))
	}
}

// Blank writes an empty line.
func (d *DetailBuilder) Blank() {
	d.b.WriteString("\n")
}

// String returns the accumulated content.
func (d *DetailBuilder) String() string {
	return d.b.String()
}
