package report

import (
	"fmt"
	"strings"
)

// gateLine formats the quality-gate verdict for text artifacts.
func gateLine(gate Gate) string {
	icon := "🟢"
	verb := "meets"
	if gate.Status == GateFail {
		icon = "🔴"
		verb = "is below"
	}
	return fmt.Sprintf("%s **Quality gate: %s** — line coverage %.2f%% %s the %.2f%% threshold",
		icon, gate.Status, gate.Value, verb, gate.Threshold)
}

// renderMarkdown renders the summary.md artifact: the four-metric table, the
// gate verdict, and a capped per-file code rendering in collapsible
// sections.
func (b *Builder) renderMarkdown(in *Input, gate Gate) []byte {
	var sb strings.Builder

	fmt.Fprintf(&sb, "# %s\n\n", b.config.Title)
	sb.WriteString("| Metric | Covered | Total | Percentage |\n")
	sb.WriteString("| --- | ---: | ---: | ---: |\n")
	fmt.Fprintf(&sb, "| Lines | %d | %d | %.2f%% |\n", in.Totals.Lines.Covered, in.Totals.Lines.Total, in.Totals.Lines.Pct)
	fmt.Fprintf(&sb, "| Branches | %d | %d | %.2f%% |\n", in.Totals.Branches.Covered, in.Totals.Branches.Total, in.Totals.Branches.Pct)
	fmt.Fprintf(&sb, "| Functions | %d | %d | %.2f%% |\n", in.Totals.Functions.Covered, in.Totals.Functions.Total, in.Totals.Functions.Pct)
	fmt.Fprintf(&sb, "| Statements | %d | %d | %.2f%% |\n", in.Totals.Statements.Covered, in.Totals.Statements.Total, in.Totals.Statements.Pct)
	sb.WriteString("\n")
	sb.WriteString(gateLine(gate))
	sb.WriteString("\n")

	shown, moreFiles := b.capFiles(in.Files)
	for _, record := range shown {
		sb.WriteString("\n")
		b.writeMarkdownFile(&sb, record)
	}
	if moreFiles > 0 {
		fmt.Fprintf(&sb, "\n_%d more files not shown._\n", moreFiles)
	}

	return []byte(sb.String())
}

// writeMarkdownFile renders one file as a collapsible section of
// glyph-annotated source lines.
func (b *Builder) writeMarkdownFile(sb *strings.Builder, record *FileRecord) {
	title := record.RelPath
	if record.LinePct != nil {
		title = fmt.Sprintf("%s — %.2f%% lines", record.RelPath, *record.LinePct)
	}
	if failing := len(record.FailingLines); failing > 0 {
		title = fmt.Sprintf("%s, %d failing line(s)", title, failing)
	}

	fmt.Fprintf(sb, "<details>\n<summary>%s</summary>\n\n", title)
	sb.WriteString("```text\n")

	lines, moreLines := renderLines(record, b.config.MaxLinesPerFile)
	for _, line := range lines {
		hits := ""
		if line.Status != Uncovered {
			hits = fmt.Sprintf(" (%dx)", line.Hits)
		}
		fmt.Fprintf(sb, "%s %4d | %s%s\n", line.Status.Glyph(), line.Number, line.Content, hits)
	}
	if moreLines > 0 {
		fmt.Fprintf(sb, "... %d more lines not shown\n", moreLines)
	}

	sb.WriteString("```\n\n</details>\n")
}
