package main

import (
	"flag"
	"fmt"
	"log"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/cutoff/knobkit"
	"github.com/cutoff/knobkit/boardfile"
	"github.com/cutoff/knobkit/internal/demo"
)

const barWidth = 30

// rowTop is the first control row's line in the view: title, blank, rows.
const rowTop = 2

var (
	titleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#d787ff")).Bold(true)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#aaa"))
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#fff"))
	barOnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#d787ff"))
	barOffStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#555"))
	focusStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffd700"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#555"))
)

type model struct {
	board    *demo.Board
	focus    int
	labelW   int
	valueW   int
	quitting bool
}

func newModel(b *demo.Board) model {
	m := model{board: b}
	for _, c := range b.Controls() {
		if n := len(c.Name()); n > m.labelW {
			m.labelW = n
		}
		if n := len(c.MaxText(true)); n > m.valueW {
			m.valueW = n
		}
	}
	return m
}

func (m model) Init() tea.Cmd { return nil }

func (m model) controls() []*knobkit.Control { return m.board.Controls() }

func (m model) focused() *knobkit.Control {
	cs := m.controls()
	if len(cs) == 0 {
		return nil
	}
	return cs[m.focus]
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.quitting = true
			return m, tea.Quit

		case "tab":
			if n := len(m.controls()); n > 0 {
				m.focus = (m.focus + 1) % n
			}

		case "shift+tab":
			if n := len(m.controls()); n > 0 {
				m.focus = (m.focus + n - 1) % n
			}

		case "up", "down", "left", "right", "home", "end":
			if c := m.focused(); c != nil {
				c.Key(keyName(msg.String()))
			}

		case " ", "enter":
			// Terminals deliver no key releases, so a momentary switch
			// becomes a tap: press and release in one stroke.
			if c := m.focused(); c != nil {
				name := " "
				if msg.String() == "enter" {
					name = "Enter"
				}
				c.Key(name)
				c.KeyUp(name)
			}
		}

	case tea.MouseMsg:
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			if _, c := m.rowAt(msg.Y); c != nil {
				c.Wheel(1)
			}
		case tea.MouseButtonWheelDown:
			if _, c := m.rowAt(msg.Y); c != nil {
				c.Wheel(-1)
			}
		case tea.MouseButtonLeft:
			if msg.Action != tea.MouseActionPress {
				break
			}
			if i, c := m.rowAt(msg.Y); c != nil {
				m.focus = i
				switch {
				case c.Stepper() != nil:
					c.Click()
				case c.Button() != nil:
					c.Key(" ")
					c.KeyUp(" ")
				}
			}
		}
	}
	return m, nil
}

func (m model) rowAt(y int) (int, *knobkit.Control) {
	i := y - rowTop
	cs := m.controls()
	if i < 0 || i >= len(cs) {
		return 0, nil
	}
	return i, cs[i]
}

func keyName(s string) string {
	switch s {
	case "up":
		return "ArrowUp"
	case "down":
		return "ArrowDown"
	case "left":
		return "ArrowLeft"
	case "right":
		return "ArrowRight"
	case "home":
		return "Home"
	case "end":
		return "End"
	}
	return s
}

func (m model) View() string {
	if m.quitting {
		return ""
	}
	var out strings.Builder
	out.WriteString(titleStyle.Render(m.board.Name()))
	out.WriteString("\n\n")
	for i, c := range m.controls() {
		out.WriteString(m.renderRow(i, c))
		out.WriteString("\n")
	}
	out.WriteString("\n")
	out.WriteString(helpStyle.Render("tab:focus  arrows:adjust  home/end:limits  space/enter:press  wheel:nudge  q:quit"))
	out.WriteString("\n")
	return out.String()
}

func (m model) renderRow(i int, c *knobkit.Control) string {
	marker := "  "
	if i == m.focus {
		marker = focusStyle.Render("> ")
	}
	label := labelStyle.Render(fmt.Sprintf("%-*s", m.labelW, c.Name()))
	value := valueStyle.Render(fmt.Sprintf("%*s", m.valueW, c.Text()))
	return marker + label + "  " + renderBar(c.Normalized()) + "  " + value
}

func renderBar(norm float64) string {
	filled := int(norm*barWidth + 0.5)
	if filled < 0 {
		filled = 0
	}
	if filled > barWidth {
		filled = barWidth
	}
	return barOnStyle.Render(strings.Repeat("█", filled)) +
		barOffStyle.Render(strings.Repeat("·", barWidth-filled))
}

func main() {
	var (
		filePath = flag.String("file", "", "board yaml to load (defaults to the built-in demo board)")
	)
	flag.Parse()

	file := boardfile.DefaultFile()
	if *filePath != "" {
		f, err := boardfile.Load(*filePath)
		if err != nil {
			log.Fatal(err)
		}
		file = f
	}
	b, err := demo.FromFile(file)
	if err != nil {
		log.Fatal(err)
	}

	p := tea.NewProgram(newModel(b), tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		log.Fatal(err)
	}
}
