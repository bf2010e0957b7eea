package render

import (
	"embed"
	"fmt"
	"html/template"
	"strings"

	"github.com/ganttmcp/ganttmcp/internal/log"
	"github.com/ganttmcp/ganttmcp/internal/model"
	"github.com/ganttmcp/ganttmcp/internal/timeline"
)

//go:embed templates/chart.html.tmpl
var templates embed.FS

// HTMLRendererConfig is the configuration of HTMLRenderer.
type HTMLRendererConfig struct {
	Logger log.Logger
}

func (c *HTMLRendererConfig) defaults() error {
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "render.HTMLRenderer"})

	return nil
}

// HTMLRenderer renders a project timeline as a self-contained HTML document.
// The document carries inline styles only, no external assets.
type HTMLRenderer struct {
	tmpl   *template.Template
	logger log.Logger
}

// NewHTMLRenderer returns a new HTMLRenderer.
func NewHTMLRenderer(config HTMLRendererConfig) (*HTMLRenderer, error) {
	err := config.defaults()
	if err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	tmpl, err := template.ParseFS(templates, "templates/chart.html.tmpl")
	if err != nil {
		return nil, fmt.Errorf("could not parse chart template: %w", err)
	}

	return &HTMLRenderer{
		tmpl:   tmpl,
		logger: config.Logger,
	}, nil
}

type chartData struct {
	ProjectID   string
	ProjectName string
	Owner       string
	Created     string
	TaskCount   int
	Days        []string
	Rows        []rowData
}

type rowData struct {
	Name      string
	Owner     string
	StartDate string
	EndDate   string
	Progress  int
	Left      string
	Width     string
}

// Render produces the chart document for a project and its computed
// timeline. A chart without rows renders the empty placeholder document.
func (r *HTMLRenderer) Render(project model.Project, chart timeline.Chart) (string, error) {
	data := chartData{
		ProjectID:   project.ID,
		ProjectName: project.Name,
		Owner:       ownerOrNone(project.Owner),
		Created:     project.CreatedAt.Format("2006-01-02 15:04"),
		TaskCount:   len(project.Tasks),
	}

	if !chart.Empty() {
		spanDays := chart.SpanDays()
		for d := 0; d < spanDays; d++ {
			data.Days = append(data.Days, chart.SpanStart.AddDate(0, 0, d).Format("01-02"))
		}

		for _, row := range chart.Rows {
			offsetDays := int(row.StartDate.Sub(chart.SpanStart).Hours() / 24)
			data.Rows = append(data.Rows, rowData{
				Name:      row.Name,
				Owner:     ownerOrNone(row.Owner),
				StartDate: model.FormatDate(row.StartDate),
				EndDate:   model.FormatDate(row.EndDate),
				Progress:  row.Progress,
				Left:      percent(offsetDays, spanDays),
				Width:     percent(row.DurationDays, spanDays),
			})
		}
	}

	var b strings.Builder
	err := r.tmpl.Execute(&b, data)
	if err != nil {
		return "", fmt.Errorf("could not execute chart template: %v: %w", err, model.ErrNotRenderable)
	}

	r.logger.Debugf("rendered chart for project %q with %d rows", project.ID, len(chart.Rows))

	return b.String(), nil
}

func ownerOrNone(owner string) string {
	if owner == "" {
		return "None"
	}
	return owner
}

func percent(days, spanDays int) string {
	return fmt.Sprintf("%.4f", float64(days)/float64(spanDays)*100)
}
