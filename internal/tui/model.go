// Package tui drives a mounted demo app from the terminal: it lists the
// document's interactive nodes, dispatches clicks, typed input and
// submits to them, and shows the resulting document.
package tui

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/net/html"

	"github.com/roach88/hookrt/internal/demo"
	"github.com/roach88/hookrt/internal/engine"
	"github.com/roach88/hookrt/internal/host"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	tagStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	textStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

// TickInterval is how often the model drains work queued from other
// goroutines, such as timers started by effects.
const TickInterval = 100 * time.Millisecond

type modelState int

const (
	stateSelect modelState = iota
	stateInput
)

type tickMsg time.Time

// Model is a bubbletea model over one mounted app.
type Model struct {
	name     string
	doc      *host.Document
	root     *engine.Root
	controls []host.Interactive
	selected int
	input    textinput.Model
	state    modelState
	err      error
	events   int
}

// New mounts the named demo app and flushes it.
func New(name string, opts ...engine.RootOption) (*Model, error) {
	app, err := demo.Lookup(name)
	if err != nil {
		return nil, err
	}
	doc := host.New()
	root, err := engine.Mount(app.Root(), doc, doc.Container(), opts...)
	if err != nil {
		return nil, fmt.Errorf("mount %s: %w", name, err)
	}
	m := &Model{name: name, doc: doc, root: root, state: stateSelect}
	m.err = root.Flush()
	m.refresh()
	return m, nil
}

// Document returns the document the app renders into.
func (m *Model) Document() *host.Document { return m.doc }

// Close unmounts the app.
func (m *Model) Close() error {
	return m.root.Unmount()
}

func (m *Model) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(TickInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		if m.root.Pending() > 0 {
			m.settle()
		}
		return m, tick()

	case tea.KeyMsg:
		if m.state == stateInput {
			return m.updateInput(msg)
		}
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit

		case "up", "k":
			if m.selected > 0 {
				m.selected--
			}

		case "down", "j":
			if m.selected < len(m.controls)-1 {
				m.selected++
			}

		case "enter", " ":
			return m, m.activate()
		}
	}
	return m, nil
}

func (m *Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.state = stateSelect
		m.input.Blur()
		return m, nil
	case "enter":
		if c, ok := m.current(); ok {
			m.doc.InputNode(c.Node, m.input.Value())
			m.events++
		}
		m.state = stateSelect
		m.input.Blur()
		m.settle()
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// activate dispatches the selected control's primary event, or opens the
// text input for fields.
func (m *Model) activate() tea.Cmd {
	c, ok := m.current()
	if !ok {
		return nil
	}
	switch {
	case slices.Contains(c.Events, "change") || slices.Contains(c.Events, "input"):
		ti := textinput.New()
		ti.Prompt = c.Label + ": "
		ti.Width = 40
		v, _ := host.Attr(c.Node, "value")
		ti.SetValue(v)
		m.input = ti
		m.state = stateInput
		return m.input.Focus()
	case slices.Contains(c.Events, "click"):
		m.doc.ClickNode(c.Node)
	case slices.Contains(c.Events, "submit"):
		m.doc.Dispatch(c.Node, &host.Event{Type: "submit"})
	default:
		return nil
	}
	m.events++
	m.settle()
	return nil
}

func (m *Model) current() (host.Interactive, bool) {
	if m.selected < 0 || m.selected >= len(m.controls) {
		return host.Interactive{}, false
	}
	return m.controls[m.selected], true
}

// settle flushes the root and re-reads the controls.
func (m *Model) settle() {
	m.err = m.root.Flush()
	m.refresh()
}

func (m *Model) refresh() {
	m.controls = m.doc.Interactive()
	if m.selected >= len(m.controls) {
		m.selected = max(len(m.controls)-1, 0)
	}
}

func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("hookrt"))
	b.WriteString(" ")
	b.WriteString(m.name)
	fmt.Fprintf(&b, "  (%d events, %d hook entries)\n\n", m.events, m.root.Store().Len())

	b.WriteString(Outline(m.doc))
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		b.WriteString("\n\n")
	}

	switch m.state {
	case stateSelect:
		if len(m.controls) == 0 {
			b.WriteString("Nothing to interact with.\n")
		}
		for i, c := range m.controls {
			line := fmt.Sprintf("%s [%s]", c.Label, strings.Join(c.Events, ","))
			if i == m.selected {
				b.WriteString(selectedStyle.Render("> " + line))
			} else {
				b.WriteString("  " + line)
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("↑/↓ select • enter activate • q quit"))

	case stateInput:
		b.WriteString(m.input.View())
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("enter send • esc back"))
	}
	return b.String()
}

// Outline renders the container as an indented element tree with the text
// each element holds directly.
func Outline(doc *host.Document) string {
	var b strings.Builder
	var walk func(n *html.Node, depth int)
	walk = func(n *html.Node, depth int) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type != html.ElementNode {
				continue
			}
			b.WriteString(strings.Repeat("  ", depth))
			b.WriteString(tagStyle.Render(describe(c)))
			if text := ownText(c); text != "" {
				b.WriteString(" ")
				b.WriteString(textStyle.Render(text))
			}
			b.WriteString("\n")
			walk(c, depth+1)
		}
	}
	walk(doc.Container(), 0)
	return b.String()
}

func describe(n *html.Node) string {
	s := n.Data
	if id, ok := host.Attr(n, "id"); ok {
		s += "#" + id
	}
	if cls, ok := host.Attr(n, "class"); ok {
		for _, c := range strings.Fields(cls) {
			s += "." + c
		}
	}
	if v, ok := host.Attr(n, "value"); ok {
		s += fmt.Sprintf("[value=%q]", v)
	}
	return s
}

func ownText(n *html.Node) string {
	var parts []string
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			parts = append(parts, c.Data)
		}
	}
	return strings.TrimSpace(strings.Join(parts, ""))
}
