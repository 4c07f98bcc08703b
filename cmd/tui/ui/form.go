package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type field struct {
	label  string
	value  string
	secret bool
}

// form is a minimal multi-field text input shared by the login, signup and
// create screens.
type form struct {
	fields  []field
	focused int
}

func newForm(fields ...field) form {
	return form{fields: fields}
}

func (f *form) value(i int) string {
	return strings.TrimSpace(f.fields[i].value)
}

func (f *form) reset() {
	for i := range f.fields {
		f.fields[i].value = ""
	}
	f.focused = 0
}

// handleKey edits the focused field. It reports whether the key was consumed.
func (f *form) handleKey(msg tea.KeyMsg) bool {
	switch msg.Type {
	case tea.KeyTab, tea.KeyDown:
		f.focused = (f.focused + 1) % len(f.fields)
	case tea.KeyShiftTab, tea.KeyUp:
		f.focused = (f.focused - 1 + len(f.fields)) % len(f.fields)
	case tea.KeyBackspace:
		v := []rune(f.fields[f.focused].value)
		if len(v) > 0 {
			f.fields[f.focused].value = string(v[:len(v)-1])
		}
	case tea.KeyRunes, tea.KeySpace:
		f.fields[f.focused].value += string(msg.Runes)
	default:
		return false
	}
	return true
}

func (f *form) View(width int) string {
	rows := make([]string, 0, len(f.fields))
	for i, fl := range f.fields {
		style := InputStyle
		if i == f.focused {
			style = FocusedInputStyle
		}
		shown := fl.value
		if fl.secret {
			shown = strings.Repeat("•", len([]rune(fl.value)))
		}
		row := lipgloss.JoinHorizontal(lipgloss.Center,
			LabelStyle.Width(14).Render(fl.label+":"),
			style.Width(width).Render(shown),
		)
		rows = append(rows, row)
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
