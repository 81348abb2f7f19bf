package main

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wippyai/cvbridge/core"
	"github.com/wippyai/cvbridge/engine"
	"github.com/wippyai/cvbridge/highgui"
	"github.com/wippyai/cvbridge/imgcodecs"
	"github.com/wippyai/cvbridge/native"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	opStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))
)

type keyMap struct {
	Up    key.Binding
	Down  key.Binding
	Apply key.Binding
	Save  key.Binding
	Help  key.Binding
	Quit  key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Apply, k.Save, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down, k.Apply}, {k.Save, k.Help, k.Quit}}
}

var keys = keyMap{
	Up:    key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:  key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Apply: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "apply")),
	Save:  key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "save")),
	Help:  key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more")),
	Quit:  key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

type interactiveModel struct {
	err      error
	eng      *engine.Engine
	restore  func()
	win      *highgui.Window
	preview  *bytes.Buffer
	src      *core.Mat
	result   *core.Mat
	help     help.Model
	filename string
	outFile  string
	memPages uint32
	status   string
	rendered string
	names    []string
	selected int
	width    int
	height   int
	busy     bool
}

func newInteractiveModel(filename, outFile string, memPages uint32) *interactiveModel {
	return &interactiveModel{
		filename: filename,
		outFile:  outFile,
		memPages: memPages,
		preview:  &bytes.Buffer{},
		help:     help.New(),
		names:    opNames(),
	}
}

type loadedMsg struct {
	err     error
	eng     *engine.Engine
	restore func()
	win     *highgui.Window
	src     *core.Mat
}

type appliedMsg struct {
	err      error
	result   *core.Mat
	rendered string
	status   string
}

type savedMsg struct {
	err  error
	path string
}

func (m *interactiveModel) Init() tea.Cmd {
	return m.load
}

func (m *interactiveModel) load() tea.Msg {
	e, err := engine.New(context.Background(), &engine.Config{
		MemoryLimitPages: m.memPages,
		WindowOutput:     m.preview,
	})
	if err != nil {
		return loadedMsg{err: err}
	}
	restore := native.Swap(e)
	fail := func(err error) tea.Msg {
		restore()
		_ = e.Close(context.Background())
		return loadedMsg{err: err}
	}

	src, err := imgcodecs.IMRead(m.filename, imgcodecs.IMReadColor)
	if err != nil {
		return fail(err)
	}
	if src.Empty() {
		_ = src.Close()
		return fail(fmt.Errorf("%s is not a decodable image", m.filename))
	}
	w, err := highgui.NewWindow("preview", highgui.WindowNormal)
	if err != nil {
		_ = src.Close()
		return fail(err)
	}
	return loadedMsg{eng: e, restore: restore, win: w, src: src}
}

func (m *interactiveModel) shutdown() {
	if m.result != nil {
		_ = m.result.Close()
	}
	if m.src != nil {
		_ = m.src.Close()
	}
	if m.win != nil {
		_ = m.win.Close()
	}
	if m.restore != nil {
		m.restore()
	}
	if m.eng != nil {
		_ = m.eng.Close(context.Background())
	}
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			m.shutdown()
			return m, tea.Quit

		case key.Matches(msg, keys.Up):
			if m.selected > 0 {
				m.selected--
			}

		case key.Matches(msg, keys.Down):
			if m.selected < len(m.names)-1 {
				m.selected++
			}

		case key.Matches(msg, keys.Apply):
			if m.src != nil && !m.busy {
				m.busy = true
				return m, m.apply(m.names[m.selected])
			}

		case key.Matches(msg, keys.Save):
			if m.result != nil && !m.busy {
				if m.outFile == "" {
					m.status = "no -out file given"
					return m, nil
				}
				m.busy = true
				return m, m.save
			}

		case key.Matches(msg, keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width

	case loadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.eng, m.restore, m.win, m.src = msg.eng, msg.restore, msg.win, msg.src
		m.status = "source " + describe(m.src)

	case appliedMsg:
		m.busy = false
		if msg.err != nil {
			m.status = errorStyle.Render(fmt.Sprintf("Error: %v", msg.err))
			return m, nil
		}
		if m.result != nil {
			_ = m.result.Close()
		}
		m.result, m.rendered, m.status = msg.result, msg.rendered, msg.status

	case savedMsg:
		m.busy = false
		if msg.err != nil {
			m.status = errorStyle.Render(fmt.Sprintf("Error: %v", msg.err))
		} else {
			m.status = "wrote " + msg.path
		}
	}

	return m, nil
}

// apply runs the named op and renders the result into the preview buffer.
func (m *interactiveModel) apply(name string) tea.Cmd {
	src, win, buf := m.src, m.win, m.preview
	cols, rows := m.width, m.height-len(m.names)-6
	return func() tea.Msg {
		o, err := lookupOp(name)
		if err != nil {
			return appliedMsg{err: err}
		}
		res, err := o.apply(src)
		if err != nil {
			return appliedMsg{err: err}
		}
		if cols > 0 && rows > 0 {
			if err := win.Resize(cols, rows*2); err != nil {
				_ = res.Close()
				return appliedMsg{err: err}
			}
		}
		buf.Reset()
		if err := win.Show(res); err != nil {
			_ = res.Close()
			return appliedMsg{err: err}
		}
		return appliedMsg{
			result:   res,
			rendered: buf.String(),
			status:   fmt.Sprintf("%s: %s -> %s", o.name, describe(src), describe(res)),
		}
	}
}

func (m *interactiveModel) save() tea.Msg {
	if err := imgcodecs.IMWrite(m.outFile, m.result); err != nil {
		return savedMsg{err: err}
	}
	return savedMsg{path: m.outFile}
}

func (m *interactiveModel) View() string {
	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("Error: %v\n\nPress q to quit.", m.err))
	}
	if m.src == nil {
		return "Loading image..."
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("CV Viewer"))
	b.WriteString(" ")
	b.WriteString(m.filename)
	b.WriteString("\n\n")

	for i, name := range m.names {
		line := fmt.Sprintf("%-8s %s", name, ops[name].about)
		if i == m.selected {
			b.WriteString(selectedStyle.Render("> " + line))
		} else {
			b.WriteString("  " + opStyle.Render(line))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(infoStyle.Render(m.status))
	b.WriteString("\n")
	if m.rendered != "" {
		b.WriteString(m.rendered)
	}
	b.WriteString("\n")
	b.WriteString(m.help.View(keys))

	return b.String()
}

func runInteractive(filename, outFile string, memPages uint32) error {
	p := tea.NewProgram(newInteractiveModel(filename, outFile, memPages), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
