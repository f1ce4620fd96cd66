// Package mcp provides the MCP (Model Context Protocol) server
// implementation.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/edaskel/questlog/internal/domain"
	"github.com/edaskel/questlog/internal/services"
)

// Server implements the MCP server using mark3labs/mcp-go.
type Server struct {
	server    *server.MCPServer
	checklist *services.ChecklistService
}

// NewServer creates a new MCP server over the checklist service.
func NewServer(checklist *services.ChecklistService) *Server {
	s := &Server{
		checklist: checklist,
	}

	s.server = server.NewMCPServer(
		"questlog",
		"1.0.0",
		server.WithLogging(),
	)

	s.registerTools()

	return s
}

// registerTools registers all available MCP tools.
func (s *Server) registerTools() {
	// Tool: get_progress
	s.server.AddTool(
		mcp.NewTool(
			"get_progress",
			mcp.WithDescription("Get the user's progression: level, XP totals, and streaks"),
		),
		s.handleGetProgress,
	)

	// Tool: list_tasks
	listTasksTool := mcp.NewTool(
		"list_tasks",
		mcp.WithDescription("List tasks, optionally filtered by category; completed tasks are included on request"),
		mcp.WithString(
			"category",
			mcp.Description("Filter tasks by category name"),
		),
		mcp.WithBoolean(
			"include_completed",
			mcp.Description("Include completed tasks in the listing"),
		),
	)
	s.server.AddTool(listTasksTool, s.handleListTasks)

	// Tool: add_task
	addTaskTool := mcp.NewTool(
		"add_task",
		mcp.WithDescription("Create a new task"),
		mcp.WithString(
			"title",
			mcp.Required(),
			mcp.Description("The title of the task"),
		),
		mcp.WithString(
			"description",
			mcp.Description("Optional description of the task"),
		),
		mcp.WithString(
			"task_type",
			mcp.Description("Task type: daily (1x XP) or quest (2x XP); defaults to daily"),
			mcp.Enum("daily", "quest"),
		),
		mcp.WithString(
			"difficulty",
			mcp.Description("Task difficulty: easy, medium, or hard; defaults to easy"),
			mcp.Enum("easy", "medium", "hard"),
		),
		mcp.WithString(
			"category",
			mcp.Description("Category name; defaults to personal"),
		),
	)
	s.server.AddTool(addTaskTool, s.handleAddTask)

	// Tool: complete_task
	completeTaskTool := mcp.NewTool(
		"complete_task",
		mcp.WithDescription("Mark a task as completed, granting XP and advancing the daily streak"),
		mcp.WithString(
			"title",
			mcp.Required(),
			mcp.Description("The title of the task to complete (fuzzy matched)"),
		),
	)
	s.server.AddTool(completeTaskTool, s.handleCompleteTask)

	// Tool: list_categories
	s.server.AddTool(
		mcp.NewTool(
			"list_categories",
			mcp.WithDescription("List the task categories with their display styles"),
		),
		s.handleListCategories,
	)

	// Tool: backup_data
	s.server.AddTool(
		mcp.NewTool(
			"backup_data",
			mcp.WithDescription("Copy the data files into a dated backup directory"),
		),
		s.handleBackupData,
	)
}

// Start begins serving MCP requests via stdio.
func (s *Server) Start(ctx context.Context) error {
	return server.ServeStdio(s.server)
}

// handleGetProgress handles the get_progress tool.
func (s *Server) handleGetProgress(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	progress, err := s.checklist.Progress(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get progress: %w", err)
	}

	user := progress.User
	result := map[string]interface{}{
		"total_xp":       user.TotalXP,
		"current_level":  user.CurrentLevel,
		"next_level_at":  progress.NextLevelAt,
		"xp_to_next":     progress.XPToNext,
		"current_streak": user.CurrentStreak,
		"longest_streak": user.LongestStreak,
	}
	if user.LastActivityDate != nil {
		result["last_activity_date"] = user.LastActivityDate.String()
	} else {
		result["last_activity_date"] = nil
	}

	return jsonResult(result)
}

// handleListTasks handles the list_tasks tool.
func (s *Server) handleListTasks(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	req := services.ListTasksRequest{
		Category:         request.GetString("category", ""),
		IncludeCompleted: request.GetBool("include_completed", false),
	}

	tasks, err := s.checklist.ListTasks(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	taskList := make([]map[string]interface{}, 0, len(tasks))
	for _, task := range tasks {
		taskList = append(taskList, taskPayload(task))
	}

	return jsonResult(map[string]interface{}{
		"tasks":       taskList,
		"total_count": len(taskList),
	})
}

// handleAddTask handles the add_task tool.
func (s *Server) handleAddTask(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	title, err := request.RequireString("title")
	if err != nil {
		return nil, err
	}

	taskType, err := domain.ParseTaskType(request.GetString("task_type", string(domain.TaskTypeDaily)))
	if err != nil {
		return nil, err
	}
	difficulty, err := domain.ParseDifficulty(request.GetString("difficulty", string(domain.DifficultyEasy)))
	if err != nil {
		return nil, err
	}

	task, err := s.checklist.AddTask(ctx, services.AddTaskRequest{
		Title:       title,
		Description: request.GetString("description", ""),
		Type:        taskType,
		Difficulty:  difficulty,
		Category:    request.GetString("category", "personal"),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to add task: %w", err)
	}

	return jsonResult(taskPayload(task))
}

// handleCompleteTask handles the complete_task tool.
func (s *Server) handleCompleteTask(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	title, err := request.RequireString("title")
	if err != nil {
		return nil, err
	}

	result, err := s.checklist.CompleteTask(ctx, title)
	if err != nil {
		return nil, fmt.Errorf("failed to complete task: %w", err)
	}

	return jsonResult(map[string]interface{}{
		"task":           taskPayload(result.Task),
		"xp_earned":      result.XPEarned,
		"total_xp":       result.User.TotalXP,
		"current_level":  result.User.CurrentLevel,
		"leveled_up":     result.LeveledUp,
		"current_streak": result.User.CurrentStreak,
		"streak_record":  result.StreakRecord,
	})
}

// handleListCategories handles the list_categories tool.
func (s *Server) handleListCategories(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	categories, err := s.checklist.Categories(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	categoryList := make([]map[string]interface{}, 0, len(categories))
	for _, c := range categories {
		categoryList = append(categoryList, map[string]interface{}{
			"name":         c.Name,
			"display_name": c.DisplayName,
			"emoji":        c.Emoji,
			"color":        c.Color,
		})
	}

	return jsonResult(map[string]interface{}{
		"categories": categoryList,
	})
}

// handleBackupData handles the backup_data tool.
func (s *Server) handleBackupData(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	dir, err := s.checklist.Backup(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to backup data: %w", err)
	}

	return jsonResult(map[string]interface{}{
		"backup_dir": dir,
	})
}

// taskPayload converts a task into the tool-result shape.
func taskPayload(task *domain.Task) map[string]interface{} {
	payload := map[string]interface{}{
		"title":        task.Title,
		"description":  task.Description,
		"task_type":    string(task.Type),
		"difficulty":   string(task.Difficulty),
		"category":     task.Category,
		"completed":    task.Completed,
		"xp_value":     task.XPValue,
		"created_date": task.CreatedDate.String(),
	}
	if task.CompletedDate != nil {
		payload["completed_date"] = task.CompletedDate.String()
	} else {
		payload["completed_date"] = nil
	}
	return payload
}

// jsonResult marshals v into a text tool result.
func jsonResult(v interface{}) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}
	return mcp.NewToolResultText(string(data)), nil
}
