package report

import (
	"bytes"
	"html/template"
)

// stepSummaryTemplateText is the HTML fragment appended to the CI step
// summary sink. Unlike the full report it caps volume, showing at most
// MaxFiles files and MaxLinesPerFile lines each.
const stepSummaryTemplateText = `<h2>{{.Title}}</h2>
<p><strong>Quality gate: {{.Gate.Status}}</strong> — line coverage {{printf "%.2f" .Gate.Value}}% against a {{printf "%.2f" .Gate.Threshold}}% threshold</p>
<table>
  <tr><th>Metric</th><th>Covered</th><th>Total</th><th>Percentage</th></tr>
  <tr><td>Lines</td><td>{{.Totals.Lines.Covered}}</td><td>{{.Totals.Lines.Total}}</td><td>{{printf "%.2f" .Totals.Lines.Pct}}%</td></tr>
  <tr><td>Branches</td><td>{{.Totals.Branches.Covered}}</td><td>{{.Totals.Branches.Total}}</td><td>{{printf "%.2f" .Totals.Branches.Pct}}%</td></tr>
  <tr><td>Functions</td><td>{{.Totals.Functions.Covered}}</td><td>{{.Totals.Functions.Total}}</td><td>{{printf "%.2f" .Totals.Functions.Pct}}%</td></tr>
  <tr><td>Statements</td><td>{{.Totals.Statements.Covered}}</td><td>{{.Totals.Statements.Total}}</td><td>{{printf "%.2f" .Totals.Statements.Pct}}%</td></tr>
</table>
{{range .Files}}<details><summary>{{.Path}}{{if .FailingCount}} — {{.FailingCount}} failing line(s){{end}}</summary>
<pre>{{range .Lines}}{{.Glyph}} {{.Number}} | {{.Content}}
{{end}}{{if .MoreLines}}... {{.MoreLines}} more lines not shown
{{end}}</pre>
</details>
{{end}}{{if .MoreFiles}}<p><em>{{.MoreFiles}} more files not shown.</em></p>
{{end}}`

var stepSummaryTemplate = template.Must(template.New("stepsummary").Parse(stepSummaryTemplateText))

type stepSummaryData struct {
	Title     string
	Gate      Gate
	Totals    totalsJSON
	Files     []stepSummaryFile
	MoreFiles int
}

type stepSummaryFile struct {
	Path         string
	FailingCount int
	Lines        []stepSummaryLine
	MoreLines    int
}

type stepSummaryLine struct {
	Number  int
	Content string
	Glyph   string
}

func (b *Builder) renderStepSummary(in *Input, gate Gate) ([]byte, error) {
	shown, moreFiles := b.capFiles(in.Files)

	data := stepSummaryData{
		Title: b.config.Title,
		Gate:  gate,
		Totals: totalsJSON{
			Lines:      in.Totals.Lines,
			Branches:   in.Totals.Branches,
			Functions:  in.Totals.Functions,
			Statements: in.Totals.Statements,
		},
		Files:     make([]stepSummaryFile, 0, len(shown)),
		MoreFiles: moreFiles,
	}

	for _, record := range shown {
		lines, moreLines := renderLines(record, b.config.MaxLinesPerFile)

		file := stepSummaryFile{
			Path:         record.RelPath,
			FailingCount: len(record.FailingLines),
			Lines:        make([]stepSummaryLine, 0, len(lines)),
			MoreLines:    moreLines,
		}
		for _, line := range lines {
			file.Lines = append(file.Lines, stepSummaryLine{
				Number:  line.Number,
				Content: line.Content,
				Glyph:   line.Status.Glyph(),
			})
		}
		data.Files = append(data.Files, file)
	}

	var buf bytes.Buffer
	if err := stepSummaryTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
