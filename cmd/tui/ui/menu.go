package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type menuItem struct {
	label string
	view  View
}

type MenuModel struct {
	cursor   int
	selected *View
	items    []menuItem
}

func NewMenuModel() *MenuModel {
	return &MenuModel{
		items: []menuItem{
			{"New bookmark", CreateView},
			{"My bookmarks", BookmarksView},
			{"Car catalogue", CarsView},
		},
	}
}

func (m *MenuModel) Init() tea.Cmd {
	return nil
}

func (m *MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.items)-1 {
				m.cursor++
			}
		case "enter":
			v := m.items[m.cursor].view
			m.selected = &v
		}
	}
	return m, nil
}

// take returns the chosen view once and clears the selection.
func (m *MenuModel) take() (View, bool) {
	if m.selected == nil {
		return 0, false
	}
	v := *m.selected
	m.selected = nil
	return v, true
}

func (m *MenuModel) View() string {
	var b strings.Builder

	b.WriteString(centered(72, TitleStyle.Render("BOOKMARKD")+" "+SubtitleStyle.Render("bookmarks & cars")))
	b.WriteString("\n\n")

	rows := make([]string, 0, len(m.items))
	for i, item := range m.items {
		if i == m.cursor {
			rows = append(rows, SelectedItemStyle.Render("> "+item.label))
		} else {
			rows = append(rows, ItemStyle.Render("  "+item.label))
		}
	}
	b.WriteString(centered(72, BoxStyle.Width(50).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))))
	b.WriteString("\n\n")
	b.WriteString(centered(72, InfoStyle.Render("↑/↓ navigate  •  enter select  •  esc quit")))

	return b.String()
}
