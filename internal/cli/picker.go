package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/cargo-hoist/pkg/hoist"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// SourcePickerModel - Interactive conflict resolution
// =============================================================================

// SourcePickerModel is the bubbletea model for choosing one of several
// conflicting sources. Rows are the options in order followed by a skip row.
// Choice follows the prompt numbering: 1..n picks a source, 0 skips.
type SourcePickerModel struct {
	Name    string
	Options []hoist.Source
	Cursor  int
	Height  int
	Offset  int

	Choice  int
	Done    bool
	Aborted bool
}

// NewSourcePickerModel creates a picker for the conflicting sources of name.
func NewSourcePickerModel(name string, options []hoist.Source) SourcePickerModel {
	return SourcePickerModel{
		Name:    name,
		Options: options,
		Height:  15,
	}
}

// rows counts the options plus the skip row.
func (m SourcePickerModel) rows() int {
	return len(m.Options) + 1
}

func (m SourcePickerModel) Init() tea.Cmd {
	return nil
}

func (m SourcePickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch key := msg.String(); key {
		case "ctrl+c":
			m.Aborted = true
			return m, tea.Quit
		case "q", "esc":
			m.Choice, m.Done = 0, true
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < m.rows()-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			m.Choice, m.Done = m.Cursor+1, true
			if m.Cursor == len(m.Options) {
				m.Choice = 0
			}
			return m, tea.Quit
		default:
			if len(key) == 1 && key[0] >= '0' && key[0] <= '9' {
				if n := int(key[0] - '0'); n <= len(m.Options) {
					m.Choice, m.Done = n, true
					return m, tea.Quit
				}
			}
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < 3 {
			m.Height = 3
		}
	}
	return m, nil
}

func (m SourcePickerModel) View() string {
	if m.Done || m.Aborted {
		return ""
	}
	var b strings.Builder

	b.WriteString(StyleTitle.Render(fmt.Sprintf("Dependency `%s` has conflicting sources", m.Name)))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  0-9 pick  q skip"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, m.rows())
	for i := m.Offset; i < end; i++ {
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		var line string
		if i < len(m.Options) {
			line = fmt.Sprintf("%s%d) %s", cursor, i+1, m.Options[i])
		} else {
			line = fmt.Sprintf("%s0) Skip hoisting this dependency", cursor)
		}

		switch {
		case i == m.Cursor:
			b.WriteString(listSelectedStyle.Render(line))
		case i == len(m.Options):
			b.WriteString(listDimStyle.Render(line))
		default:
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}

	return b.String()
}

// =============================================================================
// picker - Chooser backed by SourcePickerModel
// =============================================================================

// picker resolves conflicts with an inline bubbletea program.
type picker struct {
	in  io.Reader
	out io.Writer
}

func (p *picker) Choose(name string, options []hoist.Source) (int, error) {
	prog := tea.NewProgram(NewSourcePickerModel(name, options),
		tea.WithInput(p.in), tea.WithOutput(p.out))
	final, err := prog.Run()
	if err != nil {
		return 0, fmt.Errorf("picker: %w", err)
	}
	m, ok := final.(SourcePickerModel)
	if !ok {
		return 0, fmt.Errorf("picker: unexpected model %T", final)
	}
	if m.Aborted {
		return 0, context.Canceled
	}
	if m.Choice > 0 {
		fmt.Fprintf(p.out, "%s %s %s\n", styleIconSuccess.Render(iconSuccess), StyleHighlight.Render(name), options[m.Choice-1])
	}
	return m.Choice, nil
}
