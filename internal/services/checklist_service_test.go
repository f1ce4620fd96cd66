package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edaskel/questlog/internal/adapters/storage"
	"github.com/edaskel/questlog/internal/domain"
	"github.com/edaskel/questlog/internal/ports"
)

func setupTestService(t *testing.T) (*ChecklistService, ports.Store) {
	t.Helper()
	store, err := storage.New(t.TempDir())
	require.NoError(t, err)
	return NewChecklistService(store), store
}

// recordingNotifier captures milestone notifications for assertions.
type recordingNotifier struct {
	levelUps      []int
	streakRecords []int
}

func (n *recordingNotifier) NotifyLevelUp(level int) error {
	n.levelUps = append(n.levelUps, level)
	return nil
}

func (n *recordingNotifier) NotifyStreakRecord(days int) error {
	n.streakRecords = append(n.streakRecords, days)
	return nil
}

func TestChecklistService_AddTask(t *testing.T) {
	svc, _ := setupTestService(t)
	ctx := context.Background()

	task, err := svc.AddTask(ctx, AddTaskRequest{
		Title:      "Ship the release",
		Type:       domain.TaskTypeQuest,
		Difficulty: domain.DifficultyHard,
		Category:   "Work",
	})
	require.NoError(t, err)
	assert.Equal(t, 70, task.XPValue)
	assert.Equal(t, "work", task.Category)

	tasks, err := svc.ListTasks(ctx, ListTasksRequest{})
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "Ship the release", tasks[0].Title)
}

func TestChecklistService_AddTask_InvalidEnums(t *testing.T) {
	svc, _ := setupTestService(t)
	ctx := context.Background()

	_, err := svc.AddTask(ctx, AddTaskRequest{Title: "X", Type: "weekly", Difficulty: domain.DifficultyEasy})
	assert.Error(t, err)

	_, err = svc.AddTask(ctx, AddTaskRequest{Title: "X", Type: domain.TaskTypeDaily, Difficulty: "epic"})
	assert.Error(t, err)
}

func TestChecklistService_ListTasks_Filters(t *testing.T) {
	svc, _ := setupTestService(t)
	ctx := context.Background()

	_, err := svc.AddTask(ctx, AddTaskRequest{Title: "A", Type: domain.TaskTypeDaily, Difficulty: domain.DifficultyEasy, Category: "work"})
	require.NoError(t, err)
	_, err = svc.AddTask(ctx, AddTaskRequest{Title: "B", Type: domain.TaskTypeDaily, Difficulty: domain.DifficultyEasy, Category: "health"})
	require.NoError(t, err)

	_, err = svc.CompleteTask(ctx, "A")
	require.NoError(t, err)

	pending, err := svc.ListTasks(ctx, ListTasksRequest{})
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "B", pending[0].Title)

	all, err := svc.ListTasks(ctx, ListTasksRequest{IncludeCompleted: true})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	health, err := svc.ListTasks(ctx, ListTasksRequest{Category: "health"})
	require.NoError(t, err)
	require.Len(t, health, 1)
	assert.Equal(t, "B", health[0].Title)
}

func TestChecklistService_CompleteTask(t *testing.T) {
	svc, store := setupTestService(t)
	ctx := context.Background()

	_, err := svc.AddTask(ctx, AddTaskRequest{Title: "Morning run", Type: domain.TaskTypeDaily, Difficulty: domain.DifficultyMedium, Category: "health"})
	require.NoError(t, err)

	result, err := svc.CompleteTask(ctx, "Morning run")
	require.NoError(t, err)
	assert.True(t, result.Task.Completed)
	assert.Equal(t, 20, result.XPEarned)
	assert.Equal(t, 20, result.User.TotalXP)
	assert.Equal(t, 1, result.User.CurrentStreak)

	// The pipeline persisted both collections.
	user, err := store.LoadUser(ctx)
	require.NoError(t, err)
	assert.Equal(t, 20, user.TotalXP)

	tasks, err := store.LoadTasks(ctx)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.True(t, tasks[0].Completed)
}

func TestChecklistService_CompleteTask_FuzzyMatch(t *testing.T) {
	svc, _ := setupTestService(t)
	ctx := context.Background()

	_, err := svc.AddTask(ctx, AddTaskRequest{Title: "Water the plants", Type: domain.TaskTypeDaily, Difficulty: domain.DifficultyEasy, Category: "home"})
	require.NoError(t, err)

	result, err := svc.CompleteTask(ctx, "plants")
	require.NoError(t, err)
	assert.Equal(t, "Water the plants", result.Task.Title)
}

func TestChecklistService_CompleteTask_NotFound(t *testing.T) {
	svc, _ := setupTestService(t)

	_, err := svc.CompleteTask(context.Background(), "nothing here")
	assert.ErrorIs(t, err, domain.ErrTaskNotFound)
}

func TestChecklistService_CompleteTask_LevelUpNotifies(t *testing.T) {
	svc, _ := setupTestService(t)
	notifier := &recordingNotifier{}
	svc.SetNotifier(notifier)
	ctx := context.Background()

	// A hard quest pays 70 XP, crossing the level-2 threshold at 50.
	_, err := svc.AddTask(ctx, AddTaskRequest{Title: "Epic cleanup", Type: domain.TaskTypeQuest, Difficulty: domain.DifficultyHard, Category: "home"})
	require.NoError(t, err)

	result, err := svc.CompleteTask(ctx, "Epic cleanup")
	require.NoError(t, err)
	assert.True(t, result.LeveledUp)
	assert.Equal(t, []int{2}, notifier.levelUps)
}

func TestChecklistService_UncompleteTask(t *testing.T) {
	svc, _ := setupTestService(t)
	ctx := context.Background()

	_, err := svc.AddTask(ctx, AddTaskRequest{Title: "Journal", Type: domain.TaskTypeDaily, Difficulty: domain.DifficultyEasy, Category: "personal"})
	require.NoError(t, err)

	result, err := svc.CompleteTask(ctx, "Journal")
	require.NoError(t, err)
	xpAfterComplete := result.User.TotalXP

	task, err := svc.UncompleteTask(ctx, "Journal")
	require.NoError(t, err)
	assert.False(t, task.Completed)
	assert.Nil(t, task.CompletedDate)

	// Earned XP stays earned.
	progress, err := svc.Progress(ctx)
	require.NoError(t, err)
	assert.Equal(t, xpAfterComplete, progress.User.TotalXP)
}

func TestChecklistService_RemoveTask(t *testing.T) {
	svc, _ := setupTestService(t)
	ctx := context.Background()

	_, err := svc.AddTask(ctx, AddTaskRequest{Title: "Old chore", Type: domain.TaskTypeDaily, Difficulty: domain.DifficultyEasy, Category: "home"})
	require.NoError(t, err)

	removed, err := svc.RemoveTask(ctx, "Old chore")
	require.NoError(t, err)
	assert.Equal(t, "Old chore", removed.Title)

	tasks, err := svc.ListTasks(ctx, ListTasksRequest{IncludeCompleted: true})
	require.NoError(t, err)
	assert.Empty(t, tasks)
}

func TestChecklistService_FindTasks(t *testing.T) {
	svc, _ := setupTestService(t)
	ctx := context.Background()

	for _, title := range []string{"Review budget", "Review PR", "Walk the dog"} {
		_, err := svc.AddTask(ctx, AddTaskRequest{Title: title, Type: domain.TaskTypeDaily, Difficulty: domain.DifficultyEasy, Category: "personal"})
		require.NoError(t, err)
	}

	found, err := svc.FindTasks(ctx, "review")
	require.NoError(t, err)
	require.Len(t, found, 2)
	for _, task := range found {
		assert.Contains(t, task.Title, "Review")
	}
}

func TestChecklistService_Progress(t *testing.T) {
	svc, store := setupTestService(t)
	ctx := context.Background()

	user := domain.NewUser()
	user.AddXP(100)
	require.NoError(t, store.SaveUser(ctx, user))

	progress, err := svc.Progress(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, progress.User.CurrentLevel)
	assert.Equal(t, 200, progress.NextLevelAt)
	assert.Equal(t, 100, progress.XPToNext)
}

func TestChecklistService_AddCategory(t *testing.T) {
	svc, _ := setupTestService(t)
	ctx := context.Background()

	err := svc.AddCategory(ctx, domain.NewCategory("gardening"))
	require.NoError(t, err)

	categories, err := svc.Categories(ctx)
	require.NoError(t, err)

	names := make(map[string]bool)
	for _, c := range categories {
		names[c.Name] = true
	}
	assert.True(t, names["gardening"])

	// Duplicates are rejected by name.
	err = svc.AddCategory(ctx, domain.NewStyledCategory("gardening", "Garden", "🌱", "#00ff00"))
	assert.Error(t, err)
}

func TestChecklistService_Backup(t *testing.T) {
	svc, store := setupTestService(t)
	ctx := context.Background()

	require.NoError(t, store.SaveUser(ctx, domain.NewUser()))

	dir, err := svc.Backup(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, dir)
}
