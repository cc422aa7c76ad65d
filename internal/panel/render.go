package panel

import (
	htmltemplate "html/template"
	"io"
	"sync"
	"text/template"
)

const textPanel = `== {{.Title}} ==
{{if .Message}}{{.Message}}
{{end}}{{range .Rows}}{{printf "%-15s" .Label}} {{.Value}}
{{end}}`

const textForecast = `== Forecast ({{.Days}} day{{if ne .Days 1}}s{{end}}) ==
{{range .Daily}}{{.Date}}  {{.Conditions}}  high {{.High}}  low {{.Low}}  {{.Precipitation}}
{{end}}
{{printf "%-16s" "time"}}{{range .Columns}} {{printf "%-26s" .}}{{end}}
{{range .Rows}}{{printf "%-16s" .Time}}{{range .Values}} {{printf "%-26s" .}}{{end}}
{{end}}`

const htmlPanel = `<div class="weather-panel weather-panel--{{.State}}">
<h3>{{.Title}}</h3>
{{if .Message}}<p class="weather-panel__message">{{.Message}}</p>
{{end}}{{range .Rows}}<p><strong>{{.Label}}:</strong> {{.Value}}</p>
{{end}}</div>
`

const htmlForecast = `<table class="forecast">
<thead><tr><th>time</th>{{range .Columns}}<th>{{.}}</th>{{end}}</tr></thead>
<tbody>
{{range .Rows}}<tr><td>{{.Time}}</td>{{range .Values}}<td>{{.}}</td>{{end}}</tr>
{{end}}</tbody>
</table>
`

var (
	textPanelT    = template.Must(template.New("panel").Parse(textPanel))
	textForecastT = template.Must(template.New("forecast").Parse(textForecast))
	htmlPanelT    = htmltemplate.Must(htmltemplate.New("panel").Parse(htmlPanel))
	htmlForecastT = htmltemplate.Must(htmltemplate.New("forecast").Parse(htmlForecast))
)

// TextRenderer writes plain text panels, one render at a time
type TextRenderer struct {
	mu sync.Mutex
	w  io.Writer
}

func NewTextRenderer(w io.Writer) *TextRenderer {
	return &TextRenderer{w: w}
}

func (r *TextRenderer) Render(v View) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return textPanelT.Execute(r.w, v)
}

func (r *TextRenderer) RenderForecast(v ForecastView) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return textForecastT.Execute(r.w, v)
}

// HTMLRenderer writes escaped HTML fragments
type HTMLRenderer struct {
	mu sync.Mutex
	w  io.Writer
}

func NewHTMLRenderer(w io.Writer) *HTMLRenderer {
	return &HTMLRenderer{w: w}
}

func (r *HTMLRenderer) Render(v View) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return htmlPanelT.Execute(r.w, v)
}

func (r *HTMLRenderer) RenderForecast(v ForecastView) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return htmlForecastT.Execute(r.w, v)
}
