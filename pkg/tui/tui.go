// Package tui provides a terminal tree browser for MIDI files
package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/james-see/midibrowser/pkg/browser"
)

var (
	// Primary colors
	accent     = lipgloss.Color("#39FF14")
	highlight  = lipgloss.Color("#FFFF00")
	silverGray = lipgloss.Color("#C0C0C0")
	darkGray   = lipgloss.Color("#333333")

	// Styles
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accent).
			Background(darkGray).
			Padding(0, 2).
			MarginBottom(1)

	rowStyle = lipgloss.NewStyle().
			Foreground(silverGray)

	selectedStyle = lipgloss.NewStyle().
			Foreground(accent).
			Bold(true)

	keyStyle = lipgloss.NewStyle().
			Foreground(highlight)

	statusStyle = lipgloss.NewStyle().
			Foreground(highlight).
			PaddingTop(1)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF0000")).
			Bold(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666")).
			MarginTop(1)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(0, 1)
)

// State represents the current TUI state
type State int

const (
	StatePicker State = iota
	StateLoading
	StateBrowse
)

// row is one visible line of the tree
type row struct {
	node     browser.Node
	depth    int
	expanded bool
}

// Model represents the TUI model
type Model struct {
	state      State
	filePicker filepicker.Model
	spinner    spinner.Model
	opts       browser.Options
	path       string
	file       *browser.File
	rows       []row
	cursor     int
	status     string
	err        error
	width      int
	height     int
}

// fileLoadedMsg signals that a file was opened and its chunks listed
type fileLoadedMsg struct {
	file *browser.File
	err  error
}

// actionDoneMsg signals completion of a node action
type actionDoneMsg struct {
	action string
	err    error
}

// New creates a new TUI model. A non-empty path skips the file picker.
func New(path string, opts browser.Options) Model {
	// Initialize file picker
	fp := filepicker.New()
	fp.AllowedTypes = browser.Extensions
	fp.CurrentDirectory, _ = os.Getwd()

	// Initialize spinner
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(accent)

	m := Model{
		state:      StatePicker,
		filePicker: fp,
		spinner:    s,
		opts:       opts,
		path:       path,
		height:     24,
	}
	if path != "" {
		m.state = StateLoading
	}
	return m
}

// Init initializes the TUI model
func (m Model) Init() tea.Cmd {
	if m.state == StateLoading {
		return tea.Batch(m.spinner.Tick, loadFile(m.path, m.opts))
	}
	return tea.Batch(m.spinner.Tick, m.filePicker.Init())
}

func loadFile(path string, opts browser.Options) tea.Cmd {
	return func() tea.Msg {
		f, err := browser.Open(path, opts)
		return fileLoadedMsg{file: f, err: err}
	}
}

func execute(a browser.Actor, action string) tea.Cmd {
	return func() tea.Msg {
		return actionDoneMsg{action: action, err: a.Execute(action)}
	}
}

// Update handles TUI updates
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// The file picker needs to receive all messages
	if m.state == StatePicker {
		if size, ok := msg.(tea.WindowSizeMsg); ok {
			m.width = size.Width
			m.height = size.Height
		}
		if keyMsg, ok := msg.(tea.KeyMsg); ok {
			switch keyMsg.String() {
			case "esc":
				if m.file != nil {
					m.state = StateBrowse
					return m, nil
				}
			case "q", "ctrl+c":
				return m, tea.Quit
			}
		}

		var cmd tea.Cmd
		m.filePicker, cmd = m.filePicker.Update(msg)

		if didSelect, path := m.filePicker.DidSelectFile(msg); didSelect {
			m.path = path
			m.state = StateLoading
			return m, tea.Batch(m.spinner.Tick, loadFile(path, m.opts))
		}

		return m, cmd
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.filePicker.Height = msg.Height - 10
		return m, nil

	case tea.KeyMsg:
		if m.state == StateBrowse {
			return m.updateBrowse(msg)
		}
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case fileLoadedMsg:
		m.state = StateBrowse
		m.err = msg.err
		m.status = ""
		if msg.err != nil {
			m.file = nil
			m.rows = nil
			return m, nil
		}
		m.file = msg.file
		m.rows = []row{{node: msg.file}}
		m.cursor = 0
		m.expand()
		return m, nil

	case actionDoneMsg:
		if msg.err != nil {
			m.err = fmt.Errorf("%s failed: %w", msg.action, msg.err)
			m.status = ""
		} else {
			m.err = nil
			m.status = fmt.Sprintf("%s complete: %s", msg.action, exportPath(m.opts))
		}
		return m, nil
	}

	return m, nil
}

func exportPath(opts browser.Options) string {
	if opts.ExportPath != "" {
		return opts.ExportPath
	}
	return browser.DefaultExportPath
}

func (m Model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.rows)-1 {
			m.cursor++
		}
	case "enter", "right", "l", " ":
		if len(m.rows) == 0 {
			return m, nil
		}
		if m.rows[m.cursor].expanded {
			m.collapse()
		} else {
			m.expand()
		}
	case "left", "h":
		if len(m.rows) == 0 {
			return m, nil
		}
		if m.rows[m.cursor].expanded {
			m.collapse()
		} else {
			m.cursor = m.parent(m.cursor)
		}
	case "x", "e":
		if len(m.rows) == 0 {
			return m, nil
		}
		if a, ok := m.rows[m.cursor].node.(browser.Actor); ok && len(a.Actions()) > 0 {
			m.status = fmt.Sprintf("Running %s...", a.Actions()[0])
			return m, execute(a, a.Actions()[0])
		}
		m.status = "No action for this node"
	case "o":
		m.state = StatePicker
		return m, m.filePicker.Init()
	case "q", "ctrl+c":
		return m, tea.Quit
	}
	return m, nil
}

// expand inserts the children of the selected row below it
func (m *Model) expand() {
	r := &m.rows[m.cursor]
	c, ok := r.node.(browser.Container)
	if !ok || r.expanded {
		return
	}
	r.expanded = true

	items := c.Items()
	children := make([]row, 0, len(items))
	for _, item := range items {
		children = append(children, row{node: item, depth: r.depth + 1})
	}

	rows := make([]row, 0, len(m.rows)+len(children))
	rows = append(rows, m.rows[:m.cursor+1]...)
	rows = append(rows, children...)
	rows = append(rows, m.rows[m.cursor+1:]...)
	m.rows = rows
}

// collapse removes every descendant of the selected row
func (m *Model) collapse() {
	r := &m.rows[m.cursor]
	r.expanded = false

	end := m.cursor + 1
	for end < len(m.rows) && m.rows[end].depth > r.depth {
		end++
	}
	m.rows = append(m.rows[:m.cursor+1], m.rows[end:]...)
}

func (m Model) parent(i int) int {
	depth := m.rows[i].depth
	for j := i - 1; j >= 0; j-- {
		if m.rows[j].depth < depth {
			return j
		}
	}
	return i
}

// View renders the TUI
func (m Model) View() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render(" MIDI BROWSER "))
	s.WriteString("\n")

	switch m.state {
	case StatePicker:
		s.WriteString(m.viewPicker())
	case StateLoading:
		s.WriteString(m.viewLoading())
	case StateBrowse:
		s.WriteString(m.viewBrowse())
	}

	return s.String()
}

func (m Model) viewPicker() string {
	var s strings.Builder

	s.WriteString("Select a MIDI file\n\n")
	s.WriteString(m.filePicker.View())
	s.WriteString("\n")
	s.WriteString(helpStyle.Render("enter: open • esc: back • q: quit"))

	return s.String()
}

func (m Model) viewLoading() string {
	return boxStyle.Render(fmt.Sprintf("%s Reading %s...", m.spinner.View(), filepath.Base(m.path)))
}

func (m Model) viewBrowse() string {
	var s strings.Builder

	if len(m.rows) == 0 {
		if m.err != nil {
			s.WriteString(errorStyle.Render(fmt.Sprintf("✗ %s", m.err.Error())))
		}
		s.WriteString("\n")
		s.WriteString(helpStyle.Render("o: open file • q: quit"))
		return s.String()
	}

	s.WriteString(boxStyle.Render(m.viewTree()))
	s.WriteString("\n")
	s.WriteString(boxStyle.Render(m.viewProperties()))

	if m.err != nil {
		s.WriteString("\n")
		s.WriteString(errorStyle.Render(fmt.Sprintf("✗ %s", m.err.Error())))
	} else if m.status != "" {
		s.WriteString(statusStyle.Render(m.status))
	}

	s.WriteString("\n")
	s.WriteString(helpStyle.Render("↑/↓: navigate • enter/→: expand • ←: collapse • x: export • o: open • q: quit"))

	return s.String()
}

// treeHeight is the number of tree rows that fit next to the property pane
func (m Model) treeHeight() int {
	h := m.height/2 - 2
	if h < 5 {
		h = 5
	}
	return h
}

func (m Model) viewTree() string {
	var s strings.Builder

	height := m.treeHeight()
	start := 0
	if m.cursor >= height {
		start = m.cursor - height + 1
	}
	end := start + height
	if end > len(m.rows) {
		end = len(m.rows)
	}

	for i := start; i < end; i++ {
		r := m.rows[i]
		marker := "  "
		if _, ok := r.node.(browser.Container); ok {
			marker = "▸ "
			if r.expanded {
				marker = "▾ "
			}
		}
		line := strings.Repeat("  ", r.depth) + marker + r.node.Describe()
		if i == m.cursor {
			s.WriteString(selectedStyle.Render(line))
		} else {
			s.WriteString(rowStyle.Render(line))
		}
		if i < end-1 {
			s.WriteString("\n")
		}
	}

	return s.String()
}

func (m Model) viewProperties() string {
	p, ok := m.rows[m.cursor].node.(browser.PropertySource)
	if !ok {
		return rowStyle.Render("(no properties)")
	}

	var s strings.Builder
	props := p.Properties()
	for i, prop := range props {
		s.WriteString(keyStyle.Render(prop.Key))
		s.WriteString(": ")
		s.WriteString(fmt.Sprint(prop.Value))
		if i < len(props)-1 {
			s.WriteString("\n")
		}
	}
	return s.String()
}

// Run starts the TUI application
func Run(path string, opts browser.Options) error {
	p := tea.NewProgram(New(path, opts), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
