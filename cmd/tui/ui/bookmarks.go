package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Varun5711/bookmarkd/cmd/tui/client"
	"github.com/Varun5711/bookmarkd/internal/models"
	"github.com/Varun5711/bookmarkd/internal/qrcode"
)

type bookmarksLoadedMsg struct {
	bookmarks []models.Bookmark
}

type bookmarkDeletedMsg struct {
	id int64
}

type bookmarksErrorMsg struct {
	err error
}

func listBookmarksCmd(c *client.Client) tea.Cmd {
	return func() tea.Msg {
		bookmarks, err := c.ListBookmarks()
		if err != nil {
			return bookmarksErrorMsg{err: err}
		}
		return bookmarksLoadedMsg{bookmarks: bookmarks}
	}
}

func deleteBookmarkCmd(c *client.Client, id int64) tea.Cmd {
	return func() tea.Msg {
		if err := c.DeleteBookmark(id); err != nil {
			return bookmarksErrorMsg{err: err}
		}
		return bookmarkDeletedMsg{id: id}
	}
}

type BookmarksModel struct {
	bookmarks []models.Bookmark
	cursor    int
	loading   bool
	loaded    bool
	err       error
	// qr holds the rendered code of the selected link while it is shown.
	qr     string
	client *client.Client
}

func NewBookmarksModel(c *client.Client) *BookmarksModel {
	return &BookmarksModel{client: c}
}

func (m *BookmarksModel) Init() tea.Cmd {
	return nil
}

// refresh marks the list stale and starts a reload.
func (m *BookmarksModel) refresh() tea.Cmd {
	m.loaded = false
	m.loading = true
	m.err = nil
	m.qr = ""
	return listBookmarksCmd(m.client)
}

func (m *BookmarksModel) selected() *models.Bookmark {
	if m.cursor < 0 || m.cursor >= len(m.bookmarks) {
		return nil
	}
	return &m.bookmarks[m.cursor]
}

func (m *BookmarksModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case bookmarksLoadedMsg:
		m.loading = false
		m.loaded = true
		m.bookmarks = msg.bookmarks
		if m.cursor >= len(m.bookmarks) {
			m.cursor = max(len(m.bookmarks)-1, 0)
		}
		return m, nil

	case bookmarkDeletedMsg:
		for i, b := range m.bookmarks {
			if b.ID == msg.id {
				m.bookmarks = append(m.bookmarks[:i], m.bookmarks[i+1:]...)
				break
			}
		}
		if m.cursor >= len(m.bookmarks) {
			m.cursor = max(len(m.bookmarks)-1, 0)
		}
		m.loading = false
		return m, nil

	case bookmarksErrorMsg:
		m.loading = false
		m.loaded = true
		m.err = msg.err
		return m, nil

	case tea.KeyMsg:
		if m.qr != "" {
			m.qr = ""
			return m, nil
		}
		if m.loading {
			return m, nil
		}

		switch msg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.bookmarks)-1 {
				m.cursor++
			}
		case "r":
			return m, m.refresh()
		case "d":
			if b := m.selected(); b != nil {
				m.loading = true
				return m, deleteBookmarkCmd(m.client, b.ID)
			}
		case "enter":
			if b := m.selected(); b != nil {
				qr, err := qrcode.Terminal(b.Link)
				if err != nil {
					m.err = err
					return m, nil
				}
				m.qr = qr
			}
		}
	}
	return m, nil
}

func relative(t time.Time) string {
	ago := time.Since(t)
	switch {
	case ago < time.Minute:
		return "just now"
	case ago < time.Hour:
		return fmt.Sprintf("%d min ago", int(ago.Minutes()))
	case ago < 24*time.Hour:
		return fmt.Sprintf("%d hours ago", int(ago.Hours()))
	default:
		return fmt.Sprintf("%d days ago", int(ago.Hours()/24))
	}
}

func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-3]) + "..."
}

func (m *BookmarksModel) View() string {
	var b strings.Builder

	b.WriteString(centered(76, TitleStyle.Render("MY BOOKMARKS")))
	b.WriteString("\n\n")

	if m.qr != "" {
		sel := m.selected()
		b.WriteString(m.qr)
		if sel != nil {
			b.WriteString(centered(76, InfoStyle.Render(sel.Link)))
		}
		b.WriteString("\n")
		b.WriteString(centered(76, InfoStyle.Render("any key to close")))
		return BoxStyle.Render(b.String())
	}

	switch {
	case m.loading && !m.loaded:
		b.WriteString(centered(76, InfoStyle.Render("Loading bookmarks...")))
	case m.err != nil:
		b.WriteString(centered(76, ErrorStyle.Render(m.err.Error())))
	case len(m.bookmarks) == 0:
		b.WriteString(centered(76, InfoStyle.Render("No bookmarks yet. Create one from the menu.")))
	default:
		for i, bm := range m.bookmarks {
			style := CardStyle
			if i == m.cursor {
				style = SelectedCardStyle
			}

			lines := []string{
				lipgloss.NewStyle().Foreground(Accent).Bold(true).Render(truncate(bm.Title, 60)),
				lipgloss.NewStyle().Foreground(Success).Render(truncate(bm.Link, 64)),
			}
			if bm.Description != nil && *bm.Description != "" {
				lines = append(lines, lipgloss.NewStyle().Foreground(Text).Render(truncate(*bm.Description, 64)))
			}
			lines = append(lines, InfoStyle.Render("#"+fmt.Sprint(bm.ID)+"  •  saved "+relative(bm.CreatedAt)))

			b.WriteString(centered(76, style.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(centered(76, InfoStyle.Render("↑/↓ navigate  •  enter QR code  •  d delete  •  r refresh  •  esc back")))

	return BoxStyle.Render(b.String())
}
