package domain

import (
	"encoding/json"
)

// TaskType distinguishes recurring dailies from one-off quests.
type TaskType string

const (
	TaskTypeDaily TaskType = "daily"
	TaskTypeQuest TaskType = "quest"
)

// IsValid reports whether the task type is a known variant.
func (t TaskType) IsValid() bool {
	switch t {
	case TaskTypeDaily, TaskTypeQuest:
		return true
	default:
		return false
	}
}

// ParseTaskType converts a wire string into a TaskType.
func ParseTaskType(s string) (TaskType, error) {
	t := TaskType(s)
	if !t.IsValid() {
		return "", &InvalidEnumError{Field: "task_type", Value: s}
	}
	return t, nil
}

// Difficulty is the effort tier of a task, driving its XP reward.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// IsValid reports whether the difficulty is a known variant.
func (d Difficulty) IsValid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	default:
		return false
	}
}

// ParseDifficulty converts a wire string into a Difficulty.
func ParseDifficulty(s string) (Difficulty, error) {
	d := Difficulty(s)
	if !d.IsValid() {
		return "", &InvalidEnumError{Field: "difficulty", Value: s}
	}
	return d, nil
}

// xpBaseValues is the base reward per difficulty.
var xpBaseValues = map[Difficulty]int{
	DifficultyEasy:   10,
	DifficultyMedium: 20,
	DifficultyHard:   35,
}

// typeMultipliers scales the base reward per task type. Quests pay double.
var typeMultipliers = map[TaskType]float64{
	TaskTypeDaily: 1.0,
	TaskTypeQuest: 2.0,
}

// DefaultXPValue computes the reward for a task created without an
// explicit XP value. The product truncates toward zero.
func DefaultXPValue(taskType TaskType, difficulty Difficulty) int {
	return int(float64(xpBaseValues[difficulty]) * typeMultipliers[taskType])
}

// Task is a unit of work with a type, a difficulty, and a derived XP
// reward. The category field is a weak reference by name; a task may
// reference a category that no longer exists and consumers must tolerate
// that at display time.
type Task struct {
	Title         string
	Description   string
	Type          TaskType
	Difficulty    Difficulty
	Category      string
	Completed     bool
	XPValue       int
	CreatedDate   Date
	CompletedDate *Date
}

// NewTask creates a task with the default XP reward for its type and
// difficulty, created today.
func NewTask(title string, taskType TaskType, difficulty Difficulty, category string) *Task {
	return &Task{
		Title:       title,
		Type:        taskType,
		Difficulty:  difficulty,
		Category:    category,
		XPValue:     DefaultXPValue(taskType, difficulty),
		CreatedDate: Today(),
	}
}

// MarkCompleted marks the task complete as of today. Calling it again
// refreshes the completion date.
func (t *Task) MarkCompleted() {
	today := Today()
	t.Completed = true
	t.CompletedDate = &today
}

// MarkUncompleted clears the completed state and completion date.
func (t *Task) MarkUncompleted() {
	t.Completed = false
	t.CompletedDate = nil
}

// taskRecord is the wire representation of a Task. Required fields are
// pointers so absence is distinguishable from the zero value.
type taskRecord struct {
	Title         *string `json:"title"`
	Description   string  `json:"description"`
	TaskType      *string `json:"task_type"`
	Difficulty    *string `json:"difficulty"`
	Category      *string `json:"category"`
	Completed     bool    `json:"completed"`
	XPValue       *int    `json:"xp_value"`
	CreatedDate   string  `json:"created_date"`
	CompletedDate *string `json:"completed_date"`
}

// MarshalJSON serializes the task to its stored record form. Dates are
// ISO-8601 strings; an unset completion date serializes as null.
func (t *Task) MarshalJSON() ([]byte, error) {
	rec := taskRecord{
		Title:       &t.Title,
		Description: t.Description,
		TaskType:    stringPtr(string(t.Type)),
		Difficulty:  stringPtr(string(t.Difficulty)),
		Category:    &t.Category,
		Completed:   t.Completed,
		XPValue:     &t.XPValue,
		CreatedDate: t.CreatedDate.String(),
	}
	if t.CompletedDate != nil {
		rec.CompletedDate = stringPtr(t.CompletedDate.String())
	}
	return json.Marshal(rec)
}

// UnmarshalJSON restores a task from its stored record form. Title, type,
// difficulty, and category are required; the XP value defaults via the
// reward table and a missing created date defaults to today.
func (t *Task) UnmarshalJSON(data []byte) error {
	var rec taskRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return err
	}

	switch {
	case rec.Title == nil:
		return &MissingFieldError{Field: "title"}
	case rec.TaskType == nil:
		return &MissingFieldError{Field: "task_type"}
	case rec.Difficulty == nil:
		return &MissingFieldError{Field: "difficulty"}
	case rec.Category == nil:
		return &MissingFieldError{Field: "category"}
	}

	taskType, err := ParseTaskType(*rec.TaskType)
	if err != nil {
		return err
	}
	difficulty, err := ParseDifficulty(*rec.Difficulty)
	if err != nil {
		return err
	}

	createdDate := Today()
	if rec.CreatedDate != "" {
		createdDate, err = ParseDate(rec.CreatedDate)
		if err != nil {
			return &InvalidDateError{Field: "created_date", Value: rec.CreatedDate}
		}
	}

	var completedDate *Date
	if rec.CompletedDate != nil {
		d, err := ParseDate(*rec.CompletedDate)
		if err != nil {
			return &InvalidDateError{Field: "completed_date", Value: *rec.CompletedDate}
		}
		completedDate = &d
	}

	xpValue := DefaultXPValue(taskType, difficulty)
	if rec.XPValue != nil {
		xpValue = *rec.XPValue
	}

	*t = Task{
		Title:         *rec.Title,
		Description:   rec.Description,
		Type:          taskType,
		Difficulty:    difficulty,
		Category:      *rec.Category,
		Completed:     rec.Completed,
		XPValue:       xpValue,
		CreatedDate:   createdDate,
		CompletedDate: completedDate,
	}
	return nil
}

func stringPtr(s string) *string {
	return &s
}
