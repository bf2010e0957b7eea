package mcp

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ganttmcp/ganttmcp/internal/app/chartrender"
	"github.com/ganttmcp/ganttmcp/internal/app/projectcreate"
	"github.com/ganttmcp/ganttmcp/internal/app/projectlist"
	"github.com/ganttmcp/ganttmcp/internal/app/projectremove"
	"github.com/ganttmcp/ganttmcp/internal/app/taskadd"
	"github.com/ganttmcp/ganttmcp/internal/app/taskget"
	"github.com/ganttmcp/ganttmcp/internal/app/tasklist"
	"github.com/ganttmcp/ganttmcp/internal/app/taskremove"
	"github.com/ganttmcp/ganttmcp/internal/app/taskupdate"
	"github.com/ganttmcp/ganttmcp/internal/log"
	"github.com/ganttmcp/ganttmcp/internal/model"
)

// ToolHandlerConfig is the configuration of ToolHandler.
type ToolHandlerConfig struct {
	ProjectCreate *projectcreate.Service
	ProjectList   *projectlist.Service
	ProjectRemove *projectremove.Service
	TaskAdd       *taskadd.Service
	TaskGet       *taskget.Service
	TaskList      *tasklist.Service
	TaskUpdate    *taskupdate.Service
	TaskRemove    *taskremove.Service
	ChartRender   *chartrender.Service
	// ChartsDir is where view_gantt_chart writes the rendered documents.
	ChartsDir string
	Logger    log.Logger
}

func (c *ToolHandlerConfig) defaults() error {
	if c.ProjectCreate == nil || c.ProjectList == nil || c.ProjectRemove == nil ||
		c.TaskAdd == nil || c.TaskGet == nil || c.TaskList == nil ||
		c.TaskUpdate == nil || c.TaskRemove == nil || c.ChartRender == nil {
		return fmt.Errorf("all services are required")
	}
	if c.ChartsDir == "" {
		return fmt.Errorf("charts directory is required")
	}

	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "mcp.ToolHandler"})

	return nil
}

// ToolHandler maps tool calls onto the application services.
type ToolHandler struct {
	cfg    ToolHandlerConfig
	logger log.Logger
}

// NewToolHandler creates a new tool handler.
func NewToolHandler(cfg ToolHandlerConfig) (*ToolHandler, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &ToolHandler{
		cfg:    cfg,
		logger: cfg.Logger,
	}, nil
}

// Handle dispatches a tool call to the matching handler.
func (h *ToolHandler) Handle(ctx context.Context, name string, args map[string]interface{}) (interface{}, error) {
	switch name {
	case "create_gantt_project":
		return h.handleCreateProject(ctx, args)
	case "list_gantt_projects":
		return h.handleListProjects(ctx)
	case "add_task":
		return h.handleAddTask(ctx, args)
	case "list_tasks":
		return h.handleListTasks(ctx, args)
	case "get_task_details":
		return h.handleGetTaskDetails(ctx, args)
	case "update_task":
		return h.handleUpdateTask(ctx, args)
	case "delete_task":
		return h.handleDeleteTask(ctx, args)
	case "delete_project":
		return h.handleDeleteProject(ctx, args)
	case "view_gantt_chart":
		return h.handleViewChart(ctx, args)
	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

func (h *ToolHandler) handleCreateProject(ctx context.Context, args map[string]interface{}) (interface{}, error) {
	name, _ := args["project_name"].(string)
	owner, _ := args["project_owner"].(string)

	project, err := h.cfg.ProjectCreate.Run(ctx, projectcreate.Request{Name: name, Owner: owner})
	if err != nil {
		return nil, err
	}

	return map[string]interface{}{
		"project_id": project.ID,
		"name":       project.Name,
		"owner":      project.Owner,
	}, nil
}

func (h *ToolHandler) handleListProjects(ctx context.Context) (interface{}, error) {
	summaries, err := h.cfg.ProjectList.Run(ctx, projectlist.Request{})
	if err != nil {
		return nil, err
	}

	projects := make([]map[string]interface{}, 0, len(summaries))
	for _, s := range summaries {
		projects = append(projects, map[string]interface{}{
			"project_id": s.ID,
			"name":       s.Name,
			"owner":      s.Owner,
			"task_count": s.TaskCount,
		})
	}

	return map[string]interface{}{
		"projects": projects,
		"count":    len(projects),
	}, nil
}

func (h *ToolHandler) handleAddTask(ctx context.Context, args map[string]interface{}) (interface{}, error) {
	projectID, _ := args["project_id"].(string)
	name, _ := args["task_name"].(string)
	description, _ := args["description"].(string)
	owner, _ := args["task_owner"].(string)

	req := taskadd.Request{
		ProjectID:   projectID,
		Name:        name,
		Description: description,
		Owner:       owner,
	}

	var err error
	req.StartDate, err = optionalDate(args, "start_date")
	if err != nil {
		return nil, err
	}
	req.EndDate, err = optionalDate(args, "end_date")
	if err != nil {
		return nil, err
	}
	req.DurationDays = optionalInt(args, "duration_days")

	task, err := h.cfg.TaskAdd.Run(ctx, req)
	if err != nil {
		return nil, err
	}

	return map[string]interface{}{
		"project_id":    projectID,
		"task_id":       task.ID,
		"name":          task.Name,
		"description":   task.Description,
		"owner":         task.Owner,
		"start_date":    model.FormatDate(task.StartDate),
		"end_date":      model.FormatDate(task.EndDate),
		"duration_days": task.DurationDays(),
	}, nil
}

func (h *ToolHandler) handleListTasks(ctx context.Context, args map[string]interface{}) (interface{}, error) {
	projectID, _ := args["project_id"].(string)

	tasks, err := h.cfg.TaskList.Run(ctx, tasklist.Request{ProjectID: projectID})
	if err != nil {
		return nil, err
	}

	result := make([]map[string]interface{}, 0, len(tasks))
	for _, t := range tasks {
		result = append(result, taskToMap(t))
	}

	return map[string]interface{}{
		"project_id": projectID,
		"tasks":      result,
		"count":      len(result),
	}, nil
}

func (h *ToolHandler) handleGetTaskDetails(ctx context.Context, args map[string]interface{}) (interface{}, error) {
	projectID, _ := args["project_id"].(string)
	taskID, _ := args["task_id"].(string)

	resp, err := h.cfg.TaskGet.Run(ctx, taskget.Request{ProjectID: projectID, TaskID: taskID})
	if err != nil {
		return nil, err
	}

	details := taskToMap(resp.Task)
	details["created_at"] = resp.Task.CreatedAt.Format(time.RFC3339)
	details["project"] = map[string]interface{}{
		"project_id":    resp.Project.ID,
		"project_name":  resp.Project.Name,
		"project_owner": resp.Project.Owner,
	}

	return details, nil
}

func (h *ToolHandler) handleUpdateTask(ctx context.Context, args map[string]interface{}) (interface{}, error) {
	projectID, _ := args["project_id"].(string)
	taskID, _ := args["task_id"].(string)

	req := taskupdate.Request{ProjectID: projectID, TaskID: taskID}

	if v, ok := args["task_name"].(string); ok {
		req.Update.Name = &v
	}
	if v, ok := args["description"].(string); ok {
		req.Update.Description = &v
	}
	if v, ok := args["task_owner"].(string); ok {
		req.Update.Owner = &v
	}

	var err error
	req.Update.StartDate, err = optionalDate(args, "start_date")
	if err != nil {
		return nil, err
	}
	req.Update.EndDate, err = optionalDate(args, "end_date")
	if err != nil {
		return nil, err
	}
	req.Update.Progress = optionalInt(args, "progress")
	req.DurationDays = optionalInt(args, "duration_days")

	task, err := h.cfg.TaskUpdate.Run(ctx, req)
	if err != nil {
		return nil, err
	}

	result := taskToMap(*task)
	result["project_id"] = projectID

	return result, nil
}

func (h *ToolHandler) handleDeleteTask(ctx context.Context, args map[string]interface{}) (interface{}, error) {
	projectID, _ := args["project_id"].(string)
	taskID, _ := args["task_id"].(string)

	task, err := h.cfg.TaskRemove.Run(ctx, taskremove.Request{ProjectID: projectID, TaskID: taskID})
	if err != nil {
		return nil, err
	}

	return map[string]interface{}{
		"project_id": projectID,
		"task_id":    task.ID,
		"name":       task.Name,
	}, nil
}

func (h *ToolHandler) handleDeleteProject(ctx context.Context, args map[string]interface{}) (interface{}, error) {
	projectID, _ := args["project_id"].(string)

	summary, err := h.cfg.ProjectRemove.Run(ctx, projectremove.Request{ProjectID: projectID})
	if err != nil {
		return nil, err
	}

	return map[string]interface{}{
		"project_id": summary.ID,
		"name":       summary.Name,
		"task_count": summary.TaskCount,
	}, nil
}

func (h *ToolHandler) handleViewChart(ctx context.Context, args map[string]interface{}) (interface{}, error) {
	projectID, _ := args["project_id"].(string)

	resp, err := h.cfg.ChartRender.Run(ctx, chartrender.Request{ProjectID: projectID})
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(h.cfg.ChartsDir, 0o755); err != nil {
		return nil, fmt.Errorf("could not create charts directory: %w", err)
	}

	// Timestamped name so viewers never hit a stale cached chart.
	filename := fmt.Sprintf("gantt_%s_%s.html", projectID, time.Now().Format("20060102150405"))
	path := filepath.Join(h.cfg.ChartsDir, filename)
	if err := os.WriteFile(path, []byte(resp.Content), 0o644); err != nil {
		return nil, fmt.Errorf("could not write chart file: %w", err)
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("could not resolve chart path: %w", err)
	}

	h.logger.Infof("Wrote chart of project %s to %s", projectID, absPath)

	return map[string]interface{}{
		"project_id":   resp.Project.ID,
		"project_name": resp.Project.Name,
		"task_count":   resp.Project.TaskCount,
		"chart_file":   absPath,
		"chart_url":    "file://" + absPath,
	}, nil
}

func taskToMap(t model.Task) map[string]interface{} {
	return map[string]interface{}{
		"task_id":       t.ID,
		"name":          t.Name,
		"description":   t.Description,
		"owner":         t.Owner,
		"start_date":    model.FormatDate(t.StartDate),
		"end_date":      model.FormatDate(t.EndDate),
		"duration_days": t.DurationDays(),
		"progress":      t.Progress,
	}
}

func optionalDate(args map[string]interface{}, key string) (*time.Time, error) {
	s, ok := args[key].(string)
	if !ok || s == "" {
		return nil, nil
	}
	d, err := model.ParseDate(s)
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %w", key, err)
	}
	return &d, nil
}

func optionalInt(args map[string]interface{}, key string) *int {
	// JSON numbers decode as float64.
	f, ok := args[key].(float64)
	if !ok {
		return nil
	}
	i := int(f)
	return &i
}

// toolDefinitions returns the MCP tool definitions.
func toolDefinitions() []Tool {
	projectID := map[string]interface{}{
		"type":        "string",
		"description": "ID of the project",
	}
	taskID := map[string]interface{}{
		"type":        "string",
		"description": "ID of the task",
	}

	return []Tool{
		{
			Name:        "create_gantt_project",
			Description: "Create a new Gantt chart project",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"project_name": map[string]interface{}{
						"type":        "string",
						"description": "Name of the project",
					},
					"project_owner": map[string]interface{}{
						"type":        "string",
						"description": "Name of the project owner",
					},
				},
				"required": []string{"project_name"},
			},
		},
		{
			Name:        "list_gantt_projects",
			Description: "List all Gantt chart projects",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
			},
		},
		{
			Name:        "add_task",
			Description: "Add a task to an existing Gantt chart project",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"project_id": projectID,
					"task_name": map[string]interface{}{
						"type":        "string",
						"description": "Name of the task",
					},
					"description": map[string]interface{}{
						"type":        "string",
						"description": "Task description",
					},
					"start_date": map[string]interface{}{
						"type":        "string",
						"description": "Start date (YYYY-MM-DD), defaults to today",
					},
					"end_date": map[string]interface{}{
						"type":        "string",
						"description": "End date (YYYY-MM-DD), mutually exclusive with duration_days",
					},
					"duration_days": map[string]interface{}{
						"type":        "integer",
						"description": "Task duration in days, includes the start day",
					},
					"task_owner": map[string]interface{}{
						"type":        "string",
						"description": "Person responsible for the task",
					},
				},
				"required": []string{"project_id", "task_name"},
			},
		},
		{
			Name:        "list_tasks",
			Description: "List all tasks of a project ordered by start date",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"project_id": projectID,
				},
				"required": []string{"project_id"},
			},
		},
		{
			Name:        "get_task_details",
			Description: "Get detailed information about a specific task",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"project_id": projectID,
					"task_id":    taskID,
				},
				"required": []string{"project_id", "task_id"},
			},
		},
		{
			Name:        "update_task",
			Description: "Update fields of an existing task, unset fields stay unchanged",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"project_id": projectID,
					"task_id":    taskID,
					"task_name": map[string]interface{}{
						"type":        "string",
						"description": "New name of the task",
					},
					"description": map[string]interface{}{
						"type":        "string",
						"description": "New task description",
					},
					"start_date": map[string]interface{}{
						"type":        "string",
						"description": "New start date (YYYY-MM-DD)",
					},
					"end_date": map[string]interface{}{
						"type":        "string",
						"description": "New end date (YYYY-MM-DD), mutually exclusive with duration_days",
					},
					"duration_days": map[string]interface{}{
						"type":        "integer",
						"description": "New task duration in days",
					},
					"task_owner": map[string]interface{}{
						"type":        "string",
						"description": "New person responsible for the task",
					},
					"progress": map[string]interface{}{
						"type":        "integer",
						"description": "Completion percentage (0-100)",
					},
				},
				"required": []string{"project_id", "task_id"},
			},
		},
		{
			Name:        "delete_task",
			Description: "Delete a task from a project",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"project_id": projectID,
					"task_id":    taskID,
				},
				"required": []string{"project_id", "task_id"},
			},
		},
		{
			Name:        "delete_project",
			Description: "Delete a project and all its tasks",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"project_id": projectID,
				},
				"required": []string{"project_id"},
			},
		},
		{
			Name:        "view_gantt_chart",
			Description: "Render the Gantt chart of a project to an HTML file and return its link",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"project_id": projectID,
				},
				"required": []string{"project_id"},
			},
		},
	}
}
