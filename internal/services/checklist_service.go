// Package services implements the application layer (use cases) over the
// storage port.
package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/edaskel/questlog/internal/domain"
	"github.com/edaskel/questlog/internal/ports"
)

// ChecklistService handles the checklist use cases: task management and
// the progression pipeline that completing a task drives.
type ChecklistService struct {
	store    ports.Store
	notifier ports.Notifier
}

// NewChecklistService creates a new checklist service.
func NewChecklistService(store ports.Store) *ChecklistService {
	return &ChecklistService{store: store}
}

// SetNotifier wires an optional milestone notifier.
func (s *ChecklistService) SetNotifier(n ports.Notifier) {
	s.notifier = n
}

// AddTaskRequest contains the data needed to create a new task.
type AddTaskRequest struct {
	Title       string
	Description string
	Type        domain.TaskType
	Difficulty  domain.Difficulty
	Category    string
}

// AddTask creates a task and persists the updated collection.
func (s *ChecklistService) AddTask(ctx context.Context, req AddTaskRequest) (*domain.Task, error) {
	if !req.Type.IsValid() {
		return nil, &domain.InvalidEnumError{Field: "task_type", Value: string(req.Type)}
	}
	if !req.Difficulty.IsValid() {
		return nil, &domain.InvalidEnumError{Field: "difficulty", Value: string(req.Difficulty)}
	}

	tasks, err := s.store.LoadTasks(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load tasks: %w", err)
	}

	task := domain.NewTask(req.Title, req.Type, req.Difficulty, strings.ToLower(req.Category))
	task.Description = req.Description

	tasks = append(tasks, task)
	if err := s.store.SaveTasks(ctx, tasks); err != nil {
		return nil, fmt.Errorf("failed to save tasks: %w", err)
	}

	return task, nil
}

// ListTasksRequest contains filters for listing tasks.
type ListTasksRequest struct {
	Category         string
	IncludeCompleted bool
}

// ListTasks retrieves tasks based on filters. Pending tasks are listed
// unless completed ones are included explicitly.
func (s *ChecklistService) ListTasks(ctx context.Context, req ListTasksRequest) ([]*domain.Task, error) {
	tasks, err := s.store.LoadTasks(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load tasks: %w", err)
	}

	var result []*domain.Task
	for _, task := range tasks {
		if !req.IncludeCompleted && task.Completed {
			continue
		}
		if req.Category != "" && task.Category != strings.ToLower(req.Category) {
			continue
		}
		result = append(result, task)
	}
	return result, nil
}

// FindTasks fuzzy-matches the query against task titles, best match
// first.
func (s *ChecklistService) FindTasks(ctx context.Context, query string) ([]*domain.Task, error) {
	tasks, err := s.store.LoadTasks(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load tasks: %w", err)
	}

	titles := make([]string, len(tasks))
	for i, task := range tasks {
		titles[i] = task.Title
	}

	matches := fuzzy.Find(query, titles)

	var result []*domain.Task
	for _, match := range matches {
		result = append(result, tasks[match.Index])
	}
	return result, nil
}

// CompletionResult describes the outcome of completing a task.
type CompletionResult struct {
	Task         *domain.Task
	User         *domain.User
	XPEarned     int
	LeveledUp    bool
	StreakRecord bool
}

// CompleteTask marks the matched task complete and drives the
// progression pipeline: XP is granted, the level resynchronized, the
// daily streak advanced, and milestones announced.
func (s *ChecklistService) CompleteTask(ctx context.Context, query string) (*CompletionResult, error) {
	user, err := s.store.LoadUser(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	tasks, err := s.store.LoadTasks(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load tasks: %w", err)
	}

	task := matchTask(tasks, query)
	if task == nil {
		return nil, domain.ErrTaskNotFound
	}

	prevLevel := user.CurrentLevel
	prevLongest := user.LongestStreak

	task.MarkCompleted()
	user.AddXP(task.XPValue)
	user.UpdateStreak()

	if err := s.store.SaveTasks(ctx, tasks); err != nil {
		return nil, fmt.Errorf("failed to save tasks: %w", err)
	}
	if err := s.store.SaveUser(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to save user: %w", err)
	}

	result := &CompletionResult{
		Task:         task,
		User:         user,
		XPEarned:     task.XPValue,
		LeveledUp:    user.CurrentLevel > prevLevel,
		StreakRecord: user.LongestStreak > prevLongest && user.LongestStreak > 1,
	}

	if s.notifier != nil {
		if result.LeveledUp {
			_ = s.notifier.NotifyLevelUp(user.CurrentLevel)
		}
		if result.StreakRecord {
			_ = s.notifier.NotifyStreakRecord(user.LongestStreak)
		}
	}

	return result, nil
}

// UncompleteTask clears the completed state of the matched task. Earned
// XP is not clawed back.
func (s *ChecklistService) UncompleteTask(ctx context.Context, query string) (*domain.Task, error) {
	tasks, err := s.store.LoadTasks(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load tasks: %w", err)
	}

	task := matchTask(tasks, query)
	if task == nil {
		return nil, domain.ErrTaskNotFound
	}

	task.MarkUncompleted()
	if err := s.store.SaveTasks(ctx, tasks); err != nil {
		return nil, fmt.Errorf("failed to save tasks: %w", err)
	}
	return task, nil
}

// RemoveTask deletes the matched task from the collection.
func (s *ChecklistService) RemoveTask(ctx context.Context, query string) (*domain.Task, error) {
	tasks, err := s.store.LoadTasks(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load tasks: %w", err)
	}

	task := matchTask(tasks, query)
	if task == nil {
		return nil, domain.ErrTaskNotFound
	}

	remaining := make([]*domain.Task, 0, len(tasks)-1)
	for _, t := range tasks {
		if t != task {
			remaining = append(remaining, t)
		}
	}

	if err := s.store.SaveTasks(ctx, remaining); err != nil {
		return nil, fmt.Errorf("failed to save tasks: %w", err)
	}
	return task, nil
}

// Progress summarizes the user's progression for display.
type Progress struct {
	User        *domain.User
	NextLevelAt int
	XPToNext    int
}

// Progress loads the user and derives the next-level thresholds.
func (s *ChecklistService) Progress(ctx context.Context) (*Progress, error) {
	user, err := s.store.LoadUser(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	return &Progress{
		User:        user,
		NextLevelAt: domain.XPRequiredForLevel(user.CurrentLevel + 1),
		XPToNext:    user.XPForNextLevel(),
	}, nil
}

// Categories returns the category collection.
func (s *ChecklistService) Categories(ctx context.Context) ([]domain.Category, error) {
	categories, err := s.store.LoadCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load categories: %w", err)
	}
	return categories, nil
}

// AddCategory adds a category unless one with the same name exists.
func (s *ChecklistService) AddCategory(ctx context.Context, category domain.Category) error {
	categories, err := s.store.LoadCategories(ctx)
	if err != nil {
		return fmt.Errorf("failed to load categories: %w", err)
	}

	for _, c := range categories {
		if c.Equal(category) {
			return fmt.Errorf("category %q already exists", category.Name)
		}
	}

	categories = append(categories, category)
	if err := s.store.SaveCategories(ctx, categories); err != nil {
		return fmt.Errorf("failed to save categories: %w", err)
	}
	return nil
}

// Backup copies the data files into a dated backup directory and returns
// its path.
func (s *ChecklistService) Backup(ctx context.Context) (string, error) {
	return s.store.Backup(ctx)
}

// matchTask resolves a query to a task: an exact (case-insensitive)
// title match wins, otherwise the best fuzzy match.
func matchTask(tasks []*domain.Task, query string) *domain.Task {
	for _, task := range tasks {
		if strings.EqualFold(task.Title, query) {
			return task
		}
	}

	titles := make([]string, len(tasks))
	for i, task := range tasks {
		titles[i] = task.Title
	}

	matches := fuzzy.Find(query, titles)
	if len(matches) == 0 {
		return nil
	}
	return tasks[matches[0].Index]
}
