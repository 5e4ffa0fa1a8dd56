package report

// reportTemplateText is the full interactive HTML report. Styling follows a
// GitHub-dark palette; the file selector drives a single-file-visible view
// with every file already present in the document.
const reportTemplateText = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}}</title>
<style>
  :root {
    --color-bg: #0d1117;
    --color-surface: #161b22;
    --color-border: #30363d;
    --color-text: #c9d1d9;
    --color-muted: #8b949e;
    --color-pass: #3fb950;
    --color-fail: #f85149;
    --color-hit: #1f6feb;
  }
  * { box-sizing: border-box; }
  body {
    margin: 0;
    padding: 24px;
    background: var(--color-bg);
    color: var(--color-text);
    font-family: -apple-system, "Segoe UI", Helvetica, Arial, sans-serif;
  }
  header { margin-bottom: 24px; }
  h1 { font-size: 24px; margin: 0 0 8px; }
  .generated { color: var(--color-muted); font-size: 12px; }
  .gate {
    display: inline-block;
    margin: 12px 0;
    padding: 4px 12px;
    border-radius: 6px;
    font-weight: 600;
  }
  .gate-pass { background: rgba(63, 185, 80, 0.15); color: var(--color-pass); }
  .gate-fail { background: rgba(248, 81, 73, 0.15); color: var(--color-fail); }
  table.metrics {
    border-collapse: collapse;
    margin-bottom: 24px;
  }
  table.metrics th, table.metrics td {
    border: 1px solid var(--color-border);
    padding: 6px 16px;
    text-align: right;
  }
  table.metrics th:first-child, table.metrics td:first-child { text-align: left; }
  select#file-picker {
    background: var(--color-surface);
    color: var(--color-text);
    border: 1px solid var(--color-border);
    border-radius: 6px;
    padding: 6px 10px;
    font-size: 14px;
    margin-bottom: 16px;
    max-width: 100%;
  }
  .file-view { display: none; }
  .file-view.active { display: block; }
  .file-head { color: var(--color-muted); margin-bottom: 8px; font-size: 13px; }
  table.source {
    width: 100%;
    border-collapse: collapse;
    background: var(--color-surface);
    border: 1px solid var(--color-border);
    border-radius: 6px;
    font-family: ui-monospace, SFMono-Regular, Menlo, monospace;
    font-size: 12px;
  }
  table.source td { padding: 1px 8px; white-space: pre; }
  td.lineno {
    width: 1%;
    text-align: right;
    color: var(--color-muted);
    user-select: none;
    border-right: 1px solid var(--color-border);
  }
  td.hits { width: 1%; text-align: right; }
  .hit-badge {
    display: inline-block;
    background: var(--color-hit);
    color: #fff;
    border-radius: 10px;
    padding: 0 6px;
    font-size: 10px;
  }
  tr.uncovered td.code { background: rgba(248, 81, 73, 0.12); }
  tr.covered-passing td.code { background: rgba(63, 185, 80, 0.10); }
  tr.covered-failing td.code {
    background: rgba(210, 153, 34, 0.25);
    border-left: 2px solid var(--color-fail);
  }
</style>
</head>
<body>
<header>
  <h1>{{.Title}}</h1>
  <div class="generated">Generated {{.GeneratedAt}}</div>
  <div class="gate {{.GateClass}}">Quality gate: {{.Gate.Status}} ({{printf "%.2f" .Gate.Value}}% / threshold {{printf "%.2f" .Gate.Threshold}}%)</div>
</header>

<table class="metrics">
  <tr><th>Metric</th><th>Covered</th><th>Total</th><th>Percentage</th></tr>
  <tr><td>Lines</td><td>{{.Totals.Lines.Covered}}</td><td>{{.Totals.Lines.Total}}</td><td>{{printf "%.2f" .Totals.Lines.Pct}}%</td></tr>
  <tr><td>Branches</td><td>{{.Totals.Branches.Covered}}</td><td>{{.Totals.Branches.Total}}</td><td>{{printf "%.2f" .Totals.Branches.Pct}}%</td></tr>
  <tr><td>Functions</td><td>{{.Totals.Functions.Covered}}</td><td>{{.Totals.Functions.Total}}</td><td>{{printf "%.2f" .Totals.Functions.Pct}}%</td></tr>
  <tr><td>Statements</td><td>{{.Totals.Statements.Covered}}</td><td>{{.Totals.Statements.Total}}</td><td>{{printf "%.2f" .Totals.Statements.Pct}}%</td></tr>
</table>

{{if .Files}}
<select id="file-picker" onchange="showFile(this.value)">
{{range .Files}}  <option value="file-{{.Index}}">{{.Path}} ({{.PctText}})</option>
{{end}}</select>

{{range .Files}}
<div class="file-view{{if eq .Index 0}} active{{end}}" id="file-{{.Index}}">
  <div class="file-head">{{.Path}} — line coverage {{.PctText}}{{if .FailingCount}}, {{.FailingCount}} failing line(s){{end}}</div>
  <table class="source">
  {{range .Lines}}<tr class="{{.Class}}"><td class="lineno">{{.Number}}</td><td class="hits">{{if .ShowHits}}<span class="hit-badge">{{.Hits}}x</span>{{end}}</td><td class="code">{{.Content}}</td></tr>
  {{end}}</table>
</div>
{{end}}

<script>
function showFile(id) {
  document.querySelectorAll('.file-view').forEach(function (el) {
    el.classList.toggle('active', el.id === id);
  });
}
</script>
{{else}}
<p>No instrumented files found in the coverage trace.</p>
{{end}}
</body>
</html>
`
