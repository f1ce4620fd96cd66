// Package tui provides the interactive task board implementation
// using the Bubbletea framework.
package tui

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/term"

	"github.com/edaskel/questlog/internal/domain"
	"github.com/edaskel/questlog/internal/services"
	"github.com/edaskel/questlog/internal/ui"
)

// getTerminalWidth returns the current terminal width, defaulting to 80.
func getTerminalWidth() int {
	w, _, err := term.GetSize(os.Stdout.Fd())
	if err != nil || w < 40 {
		return 80
	}
	return w
}

// refreshMsg wraps board state reloaded after a mutation.
type refreshMsg struct {
	tasks      []*domain.Task
	progress   *services.Progress
	categories []domain.Category
	err        error
}

// Model represents the board state.
type Model struct {
	checklist *services.ChecklistService

	tasks      []*domain.Task
	progress   *services.Progress
	categories map[string]domain.Category

	cursor int
	width  int
	height int

	adding    bool
	nameInput textinput.Model

	flash string
	err   error
}

// NewModel creates a new board model over the checklist service.
func NewModel(checklist *services.ChecklistService) Model {
	ti := textinput.New()
	ti.Placeholder = "New task title"
	ti.CharLimit = 120
	ti.Width = 40

	return Model{
		checklist:  checklist,
		categories: map[string]domain.Category{},
		nameInput:  ti,
		width:      getTerminalWidth(),
	}
}

// Init loads the initial board state.
func (m Model) Init() tea.Cmd {
	return m.refreshCmd()
}

// refreshCmd reloads tasks, progression and categories from storage.
func (m Model) refreshCmd() tea.Cmd {
	checklist := m.checklist
	return func() tea.Msg {
		ctx := context.Background()
		tasks, err := checklist.ListTasks(ctx, services.ListTasksRequest{IncludeCompleted: true})
		if err != nil {
			return refreshMsg{err: err}
		}
		progress, err := checklist.Progress(ctx)
		if err != nil {
			return refreshMsg{err: err}
		}
		categories, err := checklist.Categories(ctx)
		if err != nil {
			return refreshMsg{err: err}
		}
		return refreshMsg{tasks: tasks, progress: progress, categories: categories}
	}
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.adding {
		return m.updateAddInput(msg)
	}

	switch msg := msg.(type) {
	case refreshMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.tasks = msg.tasks
		m.progress = msg.progress
		m.categories = make(map[string]domain.Category, len(msg.categories))
		for _, c := range msg.categories {
			m.categories[c.Name] = c
		}
		if m.cursor >= len(m.tasks) {
			m.cursor = len(m.tasks) - 1
		}
		if m.cursor < 0 {
			m.cursor = 0
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.tasks)-1 {
				m.cursor++
			}
		case "enter", " ":
			return m.toggleSelected()
		case "a":
			m.adding = true
			m.nameInput.SetValue("")
			m.nameInput.Focus()
			return m, textinput.Blink
		case "r":
			return m, m.refreshCmd()
		}
	}

	return m, nil
}

// updateAddInput handles keys while the new-task input is focused.
func (m Model) updateAddInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "ctrl+c":
			m.adding = false
			m.nameInput.Blur()
			return m, nil
		case "enter":
			title := strings.TrimSpace(m.nameInput.Value())
			m.adding = false
			m.nameInput.Blur()
			if title == "" {
				return m, nil
			}
			checklist := m.checklist
			m.flash = fmt.Sprintf("Added %q", title)
			return m, func() tea.Msg {
				_, err := checklist.AddTask(context.Background(), services.AddTaskRequest{
					Title:      title,
					Type:       domain.TaskTypeDaily,
					Difficulty: domain.DifficultyEasy,
					Category:   "personal",
				})
				if err != nil {
					return refreshMsg{err: err}
				}
				return checklistRefresh(checklist)
			}
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}

	var cmd tea.Cmd
	m.nameInput, cmd = m.nameInput.Update(msg)
	return m, cmd
}

// toggleSelected flips completion of the task under the cursor.
func (m Model) toggleSelected() (tea.Model, tea.Cmd) {
	if m.cursor < 0 || m.cursor >= len(m.tasks) {
		return m, nil
	}
	task := m.tasks[m.cursor]
	checklist := m.checklist

	if task.Completed {
		m.flash = fmt.Sprintf("Reopened %q", task.Title)
		return m, func() tea.Msg {
			if _, err := checklist.UncompleteTask(context.Background(), task.Title); err != nil {
				return refreshMsg{err: err}
			}
			return checklistRefresh(checklist)
		}
	}

	m.flash = fmt.Sprintf("Completed %q  %s+%d XP", task.Title, ui.IconBolt, task.XPValue)
	return m, func() tea.Msg {
		if _, err := checklist.CompleteTask(context.Background(), task.Title); err != nil {
			return refreshMsg{err: err}
		}
		return checklistRefresh(checklist)
	}
}

// checklistRefresh performs a synchronous reload for use inside commands.
func checklistRefresh(checklist *services.ChecklistService) refreshMsg {
	ctx := context.Background()
	tasks, err := checklist.ListTasks(ctx, services.ListTasksRequest{IncludeCompleted: true})
	if err != nil {
		return refreshMsg{err: err}
	}
	progress, err := checklist.Progress(ctx)
	if err != nil {
		return refreshMsg{err: err}
	}
	categories, err := checklist.Categories(ctx)
	if err != nil {
		return refreshMsg{err: err}
	}
	return refreshMsg{tasks: tasks, progress: progress, categories: categories}
}

// View renders the board.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(ui.Heading(ui.IconApp, "questlog"))
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString(ui.Warn.Render(fmt.Sprintf("%s %v", ui.IconWarn, m.err)))
		b.WriteString("\n\n")
	}

	if m.progress != nil {
		u := m.progress.User
		b.WriteString(fmt.Sprintf("%s  %s  %d XP  %s %d\n",
			ui.Gold.Render(fmt.Sprintf("%s Level %d", ui.IconTrophy, u.CurrentLevel)),
			ui.ProgressBar(levelRatio(u, m.progress), 24),
			u.TotalXP,
			ui.IconStreak, u.CurrentStreak,
		))
		b.WriteString("\n")
	}

	if len(m.tasks) == 0 {
		b.WriteString(ui.Muted.Render("No tasks yet. Press 'a' to add one.") + "\n")
	}

	for i, task := range m.tasks {
		b.WriteString(m.renderTask(i, task))
		b.WriteString("\n")
	}

	if m.adding {
		b.WriteString("\n" + ui.Key.Render("New task: ") + m.nameInput.View() + "\n")
		b.WriteString(ui.Muted.Render("enter save · esc cancel") + "\n")
	} else {
		if m.flash != "" {
			b.WriteString("\n" + ui.Good.Render(m.flash) + "\n")
		}
		b.WriteString("\n" + ui.Muted.Render("j/k move · enter toggle · a add · r reload · q quit") + "\n")
	}

	return b.String()
}

// renderTask renders a single board row.
func (m Model) renderTask(i int, task *domain.Task) string {
	icon := ui.IconPending
	titleStyle := lipgloss.NewStyle()
	if task.Completed {
		icon = ui.IconDone
		titleStyle = ui.Muted.Strikethrough(true)
	}

	cursor := "  "
	if i == m.cursor {
		cursor = ui.Key.Render("> ")
	}

	label := ""
	if c, ok := m.categories[task.Category]; ok {
		label = lipgloss.NewStyle().Foreground(lipgloss.Color(c.Color)).Render(
			fmt.Sprintf("%s %s", c.Emoji, c.DisplayName))
	} else if task.Category != "" {
		label = ui.Muted.Render(task.Category)
	}

	row := fmt.Sprintf("%s%s %s  %s  %s",
		cursor, icon, titleStyle.Render(task.Title),
		ui.Muted.Render(fmt.Sprintf("[%s/%s %d XP]", task.Type, task.Difficulty, task.XPValue)),
		label,
	)
	if m.width > 0 {
		row = lipgloss.NewStyle().MaxWidth(m.width).Render(row)
	}
	return row
}

// levelRatio reports progress through the current level as a 0..1 ratio.
func levelRatio(u *domain.User, p *services.Progress) float64 {
	floor := domain.XPRequiredForLevel(u.CurrentLevel)
	span := p.NextLevelAt - floor
	if span <= 0 {
		return 1
	}
	return float64(u.TotalXP-floor) / float64(span)
}

// Run starts the board program in the alternate screen.
func Run(checklist *services.ChecklistService) error {
	p := tea.NewProgram(NewModel(checklist), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
