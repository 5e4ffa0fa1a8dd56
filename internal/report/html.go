package report

import (
	"bytes"
	"fmt"
	"html/template"
	"time"
)

// htmlData is the root template context for the full HTML report.
type htmlData struct {
	Title       string
	GeneratedAt string
	Gate        Gate
	GateClass   string
	Totals      totalsJSON
	Files       []htmlFile
}

// htmlFile is one source file rendered into the report. All files are
// present in the document; the selector unhides one at a time.
type htmlFile struct {
	Index        int
	Path         string
	PctText      string
	FailingCount int
	Lines        []htmlLine
}

// htmlLine is one rendered source line.
type htmlLine struct {
	Number   int
	Content  string
	Class    string
	Hits     int
	ShowHits bool
}

var htmlTemplate = template.Must(template.New("report").Parse(reportTemplateText))

// renderHTML renders the full interactive report: every file, every line,
// no caps. Source text passes through html/template's contextual escaping,
// which covers the five reserved characters.
func (b *Builder) renderHTML(in *Input, gate Gate, generatedAt time.Time) ([]byte, error) {
	data := htmlData{
		Title:       b.config.Title,
		GeneratedAt: generatedAt.Format(time.RFC3339),
		Gate:        gate,
		GateClass:   gateClass(gate),
		Totals: totalsJSON{
			Lines:      in.Totals.Lines,
			Branches:   in.Totals.Branches,
			Functions:  in.Totals.Functions,
			Statements: in.Totals.Statements,
		},
		Files: make([]htmlFile, 0, len(in.Files)),
	}

	for i, record := range in.Files {
		lines, _ := renderLines(record, 0)

		file := htmlFile{
			Index:        i,
			Path:         record.RelPath,
			PctText:      "n/a",
			FailingCount: len(record.FailingLines),
			Lines:        make([]htmlLine, 0, len(lines)),
		}
		if record.LinePct != nil {
			file.PctText = fmt.Sprintf("%.2f%%", *record.LinePct)
		}

		for _, line := range lines {
			file.Lines = append(file.Lines, htmlLine{
				Number:   line.Number,
				Content:  line.Content,
				Class:    line.Status.CSSClass(),
				Hits:     line.Hits,
				ShowHits: line.Status != Uncovered,
			})
		}

		data.Files = append(data.Files, file)
	}

	var buf bytes.Buffer
	if err := htmlTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func gateClass(gate Gate) string {
	if gate.Status == GatePass {
		return "gate-pass"
	}
	return "gate-fail"
}
