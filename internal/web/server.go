package web

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ganttmcp/ganttmcp/internal/app/chartrender"
	"github.com/ganttmcp/ganttmcp/internal/app/projectlist"
	"github.com/ganttmcp/ganttmcp/internal/log"
	"github.com/ganttmcp/ganttmcp/internal/model"
)

const indexTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <title>Gantt Projects</title>
    <style>
        body { font-family: Arial, sans-serif; margin: 20px; background-color: #f5f5f5; }
        h1 { color: #333; }
        table { border-collapse: collapse; background-color: #fff; box-shadow: 0 2px 4px rgba(0,0,0,0.1); }
        th, td { padding: 8px 16px; border-bottom: 1px solid #ddd; text-align: left; }
        a { color: #3e8e41; }
    </style>
</head>
<body>
    <h1>Gantt Projects</h1>
    {{if .Projects}}
    <table>
        <tr><th>Name</th><th>Owner</th><th>Tasks</th><th>Chart</th></tr>
        {{range .Projects}}
        <tr>
            <td>{{.Name}}</td>
            <td>{{.Owner}}</td>
            <td>{{.TaskCount}}</td>
            <td><a href="/projects/{{.ID}}/chart">view</a></td>
        </tr>
        {{end}}
    </table>
    {{else}}
    <p>No projects yet.</p>
    {{end}}
</body>
</html>`

// ServerConfig is the configuration of the web viewer server.
type ServerConfig struct {
	ProjectList *projectlist.Service
	ChartRender *chartrender.Service
	Addr        string
	Logger      log.Logger
}

func (c *ServerConfig) defaults() error {
	if c.ProjectList == nil {
		return fmt.Errorf("project list service is required")
	}
	if c.ChartRender == nil {
		return fmt.Errorf("chart render service is required")
	}

	if c.Addr == "" {
		c.Addr = ":8080"
	}

	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "web.Server", "addr": c.Addr})

	return nil
}

// Server serves a read-only web view of the projects and their charts.
type Server struct {
	projectList *projectlist.Service
	chartRender *chartrender.Service
	addr        string
	router      *gin.Engine
	logger      log.Logger
}

// NewServer creates a new web viewer server.
func NewServer(cfg ServerConfig) (*Server, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.SetHTMLTemplate(template.Must(template.New("index.html").Parse(indexTemplate)))

	s := &Server{
		projectList: cfg.ProjectList,
		chartRender: cfg.ChartRender,
		addr:        cfg.Addr,
		router:      router,
		logger:      cfg.Logger,
	}

	router.GET("/", s.handleIndex)
	router.GET("/projects/:id/chart", s.handleChart)

	return s, nil
}

// Handler exposes the HTTP handler, mainly for tests.
func (s *Server) Handler() http.Handler { return s.router }

// Run serves HTTP until the context ends, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.addr,
		Handler: s.router,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Infof("Web viewer listening on %s", s.addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return fmt.Errorf("web server stopped: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not shut down web server: %w", err)
		}
		return nil
	}
}

func (s *Server) handleIndex(c *gin.Context) {
	summaries, err := s.projectList.Run(c.Request.Context(), projectlist.Request{})
	if err != nil {
		s.logger.Errorf("could not list projects: %s", err)
		c.String(http.StatusInternalServerError, "could not list projects")
		return
	}

	c.HTML(http.StatusOK, "index.html", gin.H{"Projects": summaries})
}

func (s *Server) handleChart(c *gin.Context) {
	resp, err := s.chartRender.Run(c.Request.Context(), chartrender.Request{ProjectID: c.Param("id")})
	switch {
	case errors.Is(err, model.ErrNotFound):
		c.String(http.StatusNotFound, "project not found")
		return
	case errors.Is(err, model.ErrNotValid):
		c.String(http.StatusBadRequest, "invalid project id")
		return
	case err != nil:
		s.logger.Errorf("could not render chart: %s", err)
		c.String(http.StatusInternalServerError, "could not render chart")
		return
	}

	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(resp.Content))
}
