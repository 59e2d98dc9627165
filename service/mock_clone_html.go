package service

import (
	"html/template"
	"io"

	"github.com/ludo-technologies/mockscn/domain"
)

var htmlFuncs = template.FuncMap{
	"joinInts": joinInts,
}

var mockCloneHTMLTemplate = template.Must(template.New("report").Funcs(htmlFuncs).Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>mockscn Mock Clone Report</title>
<style>
body { font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, Arial, sans-serif; color: #333; background: #f4f5fb; margin: 0; }
.container { max-width: 1200px; margin: 0 auto; padding: 20px; }
.card { background: #fff; border-radius: 8px; padding: 20px 30px; margin-bottom: 20px; box-shadow: 0 4px 16px rgba(0,0,0,0.08); }
h1 { color: #5a67d8; margin: 0 0 6px 0; }
.meta { color: #777; font-size: 0.9em; }
.metrics { display: grid; grid-template-columns: repeat(auto-fit, minmax(160px, 1fr)); gap: 12px; }
.metric { background: #f7f8fc; border-radius: 6px; padding: 12px; text-align: center; }
.metric .value { font-size: 1.8em; font-weight: bold; color: #5a67d8; }
table { width: 100%; border-collapse: collapse; margin-top: 10px; }
th, td { text-align: left; padding: 6px 10px; border-bottom: 1px solid #eee; font-size: 0.92em; }
th { background: #f7f8fc; }
.kind-mined { color: #c05621; font-weight: bold; }
.kind-no_stub { color: #2b6cb0; font-weight: bold; }
code { background: #f1f1f1; padding: 1px 4px; border-radius: 3px; }
</style>
</head>
<body>
<div class="container">
  <div class="card">
    <h1>Mock Clone Report</h1>
    <div class="meta">Generated {{.GeneratedAt}} by mockscn {{.Version}} in {{.DurationMs}}ms</div>
  </div>
  <div class="card">
    <div class="metrics">
      <div class="metric"><div class="value">{{.Summary.TotalMocks}}</div>Mocks</div>
      <div class="metric"><div class="value">{{.Summary.TotalSequences}}</div>Sequences</div>
      <div class="metric"><div class="value">{{.Summary.TotalClones}}</div>Clones</div>
      <div class="metric"><div class="value">{{.Summary.ClonedSequences}}</div>Cloned sequences</div>
      <div class="metric"><div class="value">{{.Summary.TotalLocReduced}}</div>Removable lines</div>
    </div>
  </div>
  {{range .Clones}}
  <div class="card">
    <h2>{{.MockedClass}}</h2>
    {{range .Instances}}
    <h3><span class="kind-{{.Kind}}">{{.Kind}}</span> <code>{{.ID}}</code> removes {{.LocReduced}} lines</h3>
    {{if .SharedStatements}}<p>Shared stubbing: {{range $i, $s := .SharedStatements}}{{if $i}}, {{end}}<code>{{$s}}</code>{{end}}</p>{{end}}
    <table>
      <tr><th>File</th><th>Test</th><th>Mock</th><th>Lines</th></tr>
      {{range .Sequences}}
      <tr><td>{{.FilePath}}</td><td>{{.ClassName}}#{{.TestMethodName}}</td><td>{{.VariableName}}</td><td>{{joinInts .OverlapLines}}</td></tr>
      {{end}}
    </table>
    {{end}}
  </div>
  {{else}}
  <div class="card"><p>No mock clones found.</p></div>
  {{end}}
  {{if .Warnings}}
  <div class="card">
    <h2>Warnings</h2>
    <ul>{{range .Warnings}}<li>{{.}}</li>{{end}}</ul>
  </div>
  {{end}}
</div>
</body>
</html>
`))

func writeHTMLReport(response *domain.MockCloneResponse, writer io.Writer) error {
	if err := mockCloneHTMLTemplate.Execute(writer, response); err != nil {
		return domain.NewOutputError("failed to render HTML report", err)
	}
	return nil
}
