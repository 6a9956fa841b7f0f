// Package ui provides the interactive task board.
package ui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nibzard/tasktracker/internal/task"
)

// TUIOption configures the TUI behavior.
type TUIOption func(*tuiConfig)

// tuiConfig holds TUI configuration.
type tuiConfig struct {
	refreshInterval time.Duration
	output          io.Writer
}

// WithRefreshInterval sets how often the board reloads the task file.
// Zero disables periodic reloads.
func WithRefreshInterval(d time.Duration) TUIOption {
	return func(c *tuiConfig) {
		c.refreshInterval = d
	}
}

// WithOutput sets the terminal the board draws on. Defaults to stdout.
func WithOutput(w io.Writer) TUIOption {
	return func(c *tuiConfig) {
		c.output = w
	}
}

// ErrNotTTY is returned when the board is started without a terminal.
var ErrNotTTY = errors.New("tui requires a TTY")

// Run starts the task board over store and blocks until the user quits
// or ctx is cancelled.
func Run(ctx context.Context, store *task.Store, opts ...TUIOption) error {
	c := newTUIConfig(opts...)
	if !IsTTY(c.output) {
		return ErrNotTTY
	}

	model := newTUIModel(store, c.refreshInterval)
	program := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithContext(ctx),
		tea.WithOutput(c.output),
	)
	if _, err := program.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return ctx.Err()
		}
		return err
	}
	return nil
}

func newTUIConfig(opts ...TUIOption) *tuiConfig {
	c := &tuiConfig{
		refreshInterval: 2 * time.Second,
		output:          os.Stdout,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.refreshInterval < 0 {
		c.refreshInterval = 0
	}
	return c
}

type tuiModel struct {
	store        *task.Store
	tasks        []task.Task
	visible      []task.Task
	cursor       int
	filter       task.Status // empty shows every task
	showHelp     bool
	confirming   bool
	confirmID    int // id awaiting delete confirmation while confirming
	message      string
	actionErr    error
	loadErr      error
	tickInterval time.Duration
}

type tickMsg time.Time

func newTUIModel(store *task.Store, tickInterval time.Duration) *tuiModel {
	return &tuiModel{
		store:        store,
		tickInterval: tickInterval,
	}
}

func (m *tuiModel) Init() tea.Cmd {
	m.refresh()
	return tickCmd(m.tickInterval)
}

func (m *tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tickMsg:
		m.refresh()
		return m, tickCmd(m.tickInterval)
	}
	return m, nil
}

func (m *tuiModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if m.confirming {
		id := m.confirmID
		m.confirming = false
		if key == "y" || key == "Y" {
			m.apply(fmt.Sprintf("Deleted task %d", id), m.store.Delete(id))
		} else {
			m.setMessage("Delete cancelled")
		}
		return m, nil
	}

	switch key {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.visible)-1 {
			m.cursor++
		}
	case "home", "g":
		m.cursor = 0
	case "end", "G":
		m.cursor = max(len(m.visible)-1, 0)
	case "r", "f5":
		m.refresh()
		m.setMessage("Reloaded")
	case "h", "?":
		m.showHelp = !m.showHelp
	case "1":
		m.setFilter(task.StatusToDo)
	case "2":
		m.setFilter(task.StatusInProgress)
	case "3":
		m.setFilter(task.StatusDone)
	case "0":
		m.setFilter("")
	case "t":
		m.setStatus(task.StatusToDo)
	case "p":
		m.setStatus(task.StatusInProgress)
	case "d":
		m.setStatus(task.StatusDone)
	case "x", "delete":
		if t, ok := m.selected(); ok {
			m.confirming = true
			m.confirmID = t.ID
			m.setMessage(fmt.Sprintf("Delete task %d? (y/n)", t.ID))
		}
	}
	return m, nil
}

func (m *tuiModel) View() string {
	var b strings.Builder
	writeTitle(&b, m.store.Path())

	if m.showHelp {
		writeHelp(&b)
		writeFooter(&b)
		return b.String()
	}

	if m.loadErr != nil {
		b.WriteString(errorStyle.Render("Error loading task file: "+m.loadErr.Error()) + "\n\n")
		writeFooter(&b)
		return b.String()
	}

	writeOverview(&b, m.tasks, m.filter)
	writeTasks(&b, m.visible, m.cursor)
	writeMessage(&b, m.message, m.actionErr)
	writeFooter(&b)
	return b.String()
}

func tickCmd(d time.Duration) tea.Cmd {
	if d <= 0 {
		return nil
	}
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// refresh reloads the task file and keeps the cursor on the same task
// when it is still visible.
func (m *tuiModel) refresh() {
	prev, hadSelection := m.selected()

	tasks, err := m.store.GetAll()
	if err != nil {
		m.loadErr = err
		m.tasks = nil
		m.visible = nil
		return
	}
	m.loadErr = nil
	m.tasks = tasks
	m.applyFilter()

	if hadSelection {
		for i, t := range m.visible {
			if t.ID == prev.ID {
				m.cursor = i
				return
			}
		}
	}
	m.clampCursor()
}

func (m *tuiModel) applyFilter() {
	if m.filter == "" {
		m.visible = m.tasks
	} else {
		m.visible = task.Filter(m.tasks, m.filter)
	}
	m.clampCursor()
}

func (m *tuiModel) setFilter(status task.Status) {
	m.filter = status
	m.cursor = 0
	m.applyFilter()
}

func (m *tuiModel) clampCursor() {
	if m.cursor >= len(m.visible) {
		m.cursor = len(m.visible) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *tuiModel) selected() (task.Task, bool) {
	if m.cursor < 0 || m.cursor >= len(m.visible) {
		return task.Task{}, false
	}
	return m.visible[m.cursor], true
}

func (m *tuiModel) setStatus(status task.Status) {
	t, ok := m.selected()
	if !ok {
		return
	}
	if t.Status == status {
		m.setMessage(fmt.Sprintf("Task %d is already %s", t.ID, status.Token()))
		return
	}
	m.apply(fmt.Sprintf("Marked task %d as %s", t.ID, status.Token()), m.store.UpdateStatus(t.ID, status))
}

// apply records the outcome of a store mutation and reloads.
func (m *tuiModel) apply(success string, err error) {
	if err != nil {
		m.actionErr = err
		m.message = ""
	} else {
		m.setMessage(success)
	}
	m.refresh()
}

func (m *tuiModel) setMessage(msg string) {
	m.message = msg
	m.actionErr = nil
}

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	subtleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	messageStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))

	statusStyles = map[task.Status]lipgloss.Style{
		task.StatusToDo:       lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		task.StatusInProgress: lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		task.StatusDone:       lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
	}
)

func writeTitle(b *strings.Builder, path string) {
	b.WriteString(titleStyle.Render("Task Tracker") + "\n")
	b.WriteString(subtleStyle.Render(path) + "\n\n")
}

func writeOverview(b *strings.Builder, tasks []task.Task, filter task.Status) {
	counts := make(map[task.Status]int, 3)
	for _, t := range tasks {
		counts[t.Status]++
	}
	b.WriteString(fmt.Sprintf("  To-do: %d  In progress: %d  Done: %d\n",
		counts[task.StatusToDo],
		counts[task.StatusInProgress],
		counts[task.StatusDone],
	))
	if filter != "" {
		b.WriteString(subtleStyle.Render(fmt.Sprintf("  Filter: %s (0 to clear)", filter.Token())) + "\n")
	}
	b.WriteString("\n")
}

func writeTasks(b *strings.Builder, tasks []task.Task, cursor int) {
	if len(tasks) == 0 {
		b.WriteString("  No tasks.\n\n")
		return
	}
	for i, t := range tasks {
		line := formatTask(t)
		if i == cursor {
			b.WriteString(selectedStyle.Render("> "+line) + "\n")
			continue
		}
		b.WriteString("  " + line + "\n")
	}
	b.WriteString("\n")
}

func writeMessage(b *strings.Builder, msg string, err error) {
	switch {
	case err != nil:
		b.WriteString(errorStyle.Render("Error: "+err.Error()) + "\n\n")
	case msg != "":
		b.WriteString(messageStyle.Render(msg) + "\n\n")
	}
}

func writeHelp(b *strings.Builder) {
	b.WriteString("Keyboard Shortcuts\n\n")
	b.WriteString("  up/k, down/j   Move selection\n")
	b.WriteString("  g, G           First / last task\n")
	b.WriteString("  t              Mark to-do\n")
	b.WriteString("  p              Mark in progress\n")
	b.WriteString("  d              Mark done\n")
	b.WriteString("  x              Delete (asks for confirmation)\n")
	b.WriteString("  1, 2, 3        Show to-do, in progress, done\n")
	b.WriteString("  0              Show all\n")
	b.WriteString("  r, F5          Reload task file\n")
	b.WriteString("  h, ?           Toggle this help screen\n")
	b.WriteString("  q, ctrl+c      Quit\n\n")
}

func writeFooter(b *strings.Builder) {
	b.WriteString(subtleStyle.Render("Press ? for help | q to quit") + "\n")
}

func formatTask(t task.Task) string {
	statusIcon := " "
	switch t.Status {
	case task.StatusInProgress:
		statusIcon = ">"
	case task.StatusDone:
		statusIcon = "x"
	}
	status := fmt.Sprintf("%-11s", t.Status.Token())
	if style, ok := statusStyles[t.Status]; ok {
		status = style.Render(status)
	}
	return fmt.Sprintf("[%s] %3d  %s  %s", statusIcon, t.ID, status, t.Description)
}

// IsTTY returns true if w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
