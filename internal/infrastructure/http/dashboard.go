package httpserver

import (
	"bytes"
	"html/template"
	"net/http"
	"net/url"

	"cryptomarkets-service/internal/domain"
	"cryptomarkets-service/internal/format"
	"cryptomarkets-service/internal/infrastructure/logx"

	"go.uber.org/zap"
)

type columnOption struct {
	Name     string
	Selected bool
}

type dashboardView struct {
	Options   []columnOption
	Header    []string
	Rows      [][]string
	Count     int
	UpdatedAt string
	CSVURL    string
	Error     string
}

// Dashboard renders the market table for the selected columns.
func (s *Server) Dashboard(w http.ResponseWriter, r *http.Request) {
	cols, err := selectedColumns(r)
	if err != nil {
		cols = domain.DefaultColumns()
	}
	selected := map[string]bool{}
	for _, c := range cols {
		selected[c.Name] = true
	}
	view := dashboardView{Header: domain.ColumnNames(cols)}
	for _, c := range domain.Columns {
		view.Options = append(view.Options, columnOption{Name: c.Name, Selected: selected[c.Name]})
	}

	status := http.StatusOK
	ds, err := s.svc.GetOrFetch(r.Context(), s.query)
	switch {
	case err != nil:
		logx.FromContext(r.Context()).Warn("dashboard.no_data", zap.Error(err))
		status = http.StatusServiceUnavailable
		view.Error = msgNoData
	case ds.Empty():
		status = http.StatusServiceUnavailable
		view.Error = msgNoData
	default:
		view.Count = ds.Len()
		view.UpdatedAt = ds.FetchedAt.Format("2006-01-02 15:04:05")
		view.CSVURL = "/api/markets.csv?" + url.Values{"columns": view.Header}.Encode()
		view.Rows = make([][]string, 0, ds.Len())
		for _, rec := range ds.Records {
			view.Rows = append(view.Rows, format.Row(cols, rec))
		}
	}

	var buf bytes.Buffer
	if err := dashboardTmpl.Execute(&buf, view); err != nil {
		logx.FromContext(r.Context()).Error("dashboard.render_failed", zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

var dashboardTmpl = template.Must(template.New("dashboard").Parse(dashboardHTML))

const dashboardHTML = `<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8" />
  <title>Crypto Market Overview</title>
  <style>
    body { font-family: sans-serif; display: flex; margin: 0; }
    aside { width: 16rem; padding: 1rem; background: #f4f5f7; min-height: 100vh; }
    main { flex: 1; padding: 1rem; overflow-x: auto; }
    select { width: 100%; }
    table { border-collapse: collapse; }
    th, td { text-align: center; padding: 0.25rem 0.75rem; border-bottom: 1px solid #ddd; white-space: nowrap; }
    .error { color: #a00; font-weight: bold; }
  </style>
</head>
<body>
  <aside>
    <h3>Select columns to display</h3>
    <form method="get" action="/">
      <select name="columns" multiple size="21">
        {{- range .Options}}
        <option value="{{.Name}}"{{if .Selected}} selected{{end}}>{{.Name}}</option>
        {{- end}}
      </select>
      <p><button type="submit">Apply</button></p>
    </form>
  </aside>
  <main>
    <h1>Crypto Market Overview</h1>
    {{- if .Error}}
    <p class="error">{{.Error}}</p>
    {{- else}}
    <h4>Last updated: {{.UpdatedAt}}</h4>
    <p><a href="{{.CSVURL}}" download="crypto_data.csv">Download data as CSV</a> ({{.Count}} rows)</p>
    <table>
      <thead><tr>{{range .Header}}<th>{{.}}</th>{{end}}</tr></thead>
      <tbody>
        {{- range .Rows}}
        <tr>{{range .}}<td>{{.}}</td>{{end}}</tr>
        {{- end}}
      </tbody>
    </table>
    {{- end}}
  </main>
</body>
</html>`
