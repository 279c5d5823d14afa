package eval

import (
	"fmt"
	"html/template"
	"io"
	"time"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// Report holds all data needed to render an evaluation report.
type Report struct {
	Title       string             `json:"title" yaml:"title"`
	Dataset     string             `json:"dataset" yaml:"dataset"`
	SplitBy     string             `json:"split_by" yaml:"split_by"`
	GeneratedAt time.Time          `json:"generated_at" yaml:"generated_at"`
	Methods     []string           `json:"methods" yaml:"methods"`
	Eval        map[string]float64 `json:"eval" yaml:"eval"`
	// Samples pairs each evaluated ref with its hypothesis and references.
	Samples []Sample `json:"samples,omitempty" yaml:"samples,omitempty"`
}

// Sample is one row of the per-ref table.
type Sample struct {
	RefID      int64              `json:"ref_id" yaml:"ref_id"`
	Hypothesis string             `json:"hypothesis" yaml:"hypothesis"`
	References []string           `json:"references" yaml:"references"`
	Scores     map[string]float64 `json:"scores" yaml:"scores"`
}

// NewReport builds a report for an evaluation of dataset/splitBy.
func NewReport(dataset, splitBy string, ev *Evaluation) *Report {
	r := &Report{
		Title:       "Referring Expression Evaluation",
		Dataset:     dataset,
		SplitBy:     splitBy,
		GeneratedAt: time.Now(),
		Methods:     ev.Methods,
		Eval:        ev.Eval,
	}
	for _, re := range ev.EvalRefs {
		s := Sample{RefID: int64(re.RefID), References: ev.Gts[re.RefID], Scores: re.Scores}
		if hyp := ev.Res[re.RefID]; len(hyp) > 0 {
			s.Hypothesis = hyp[0]
		}
		r.Samples = append(r.Samples, s)
	}
	return r
}

// WriteHTML renders the report as a self-contained HTML page.
func (r *Report) WriteHTML(w io.Writer) error {
	return reportTmpl.Execute(w, r)
}

// WriteJSON writes the report as indented JSON.
func (r *Report) WriteJSON(w io.Writer) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	_, err = w.Write(append(data, '\n'))
	return err
}

// WriteYAML writes the report as YAML.
func (r *Report) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	return enc.Close()
}

var funcMap = template.FuncMap{
	"f3": func(v float64) string {
		return fmt.Sprintf("%.3f", v)
	},
	"score": func(m map[string]float64, method string) string {
		v, ok := m[method]
		if !ok {
			return "-"
		}
		return fmt.Sprintf("%.3f", v)
	},
}

var reportTmpl = template.Must(template.New("report").Funcs(funcMap).Parse(reportHTML))

const reportHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
  body { font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', sans-serif; line-height: 1.5; padding: 2rem; }
  h1 { margin-bottom: 0.25rem; }
  .meta { color: #57606a; font-size: 0.875rem; margin-bottom: 1.5rem; }
  table { border-collapse: collapse; margin-bottom: 1.5rem; }
  th, td { padding: 0.4rem 0.7rem; text-align: left; border: 1px solid #d0d7de; }
  th { background: #f6f8fa; font-size: 0.8rem; text-transform: uppercase; }
  td.num { font-family: 'SF Mono', monospace; text-align: right; }
</style>
</head>
<body>

<h1>{{.Title}}</h1>
<p class="meta">{{.Dataset}} ({{.SplitBy}}) &middot; generated {{.GeneratedAt.Format "2006-01-02 15:04:05 MST"}}</p>

<h2>Summary</h2>
<table>
  <thead><tr>{{range .Methods}}<th>{{.}}</th>{{end}}</tr></thead>
  <tbody><tr>{{range .Methods}}<td class="num">{{score $.Eval .}}</td>{{end}}</tr></tbody>
</table>

<h2>Refs</h2>
<table>
  <thead>
    <tr><th>Ref</th><th>Hypothesis</th><th>References</th>{{range .Methods}}<th>{{.}}</th>{{end}}</tr>
  </thead>
  <tbody>
  {{range .Samples}}
    <tr>
      <td>{{.RefID}}</td>
      <td>{{.Hypothesis}}</td>
      <td>{{range $i, $s := .References}}{{if $i}}<br>{{end}}{{$s}}{{end}}</td>
      {{$scores := .Scores}}{{range $.Methods}}<td class="num">{{score $scores .}}</td>{{end}}
    </tr>
  {{end}}
  </tbody>
</table>

</body>
</html>
`
