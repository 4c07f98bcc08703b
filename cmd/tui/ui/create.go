package ui

import (
	"errors"
	"fmt"
	"net/url"
	"os/exec"
	"runtime"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Varun5711/bookmarkd/cmd/tui/client"
	"github.com/Varun5711/bookmarkd/internal/models"
)

type bookmarkCreatedMsg struct {
	bookmark *models.Bookmark
}

type createErrorMsg struct {
	err error
}

type copiedMsg struct{}

type CreateModel struct {
	form    form
	loading bool
	created *models.Bookmark
	copied  bool
	err     error
	client  *client.Client
}

func NewCreateModel(c *client.Client) *CreateModel {
	return &CreateModel{
		form: newForm(
			field{label: "Title"},
			field{label: "Link"},
			field{label: "Description"},
		),
		client: c,
	}
}

func (m *CreateModel) Init() tea.Cmd {
	return nil
}

func validateLink(link string) error {
	if link == "" {
		return errors.New("link cannot be empty")
	}
	if !strings.HasPrefix(link, "http://") && !strings.HasPrefix(link, "https://") {
		return errors.New("link must start with http:// or https://")
	}
	u, err := url.Parse(link)
	if err != nil || u.Host == "" {
		return errors.New("link must include a host")
	}
	return nil
}

func createBookmarkCmd(c *client.Client, req models.CreateBookmarkRequest) tea.Cmd {
	return func() tea.Msg {
		b, err := c.CreateBookmark(req)
		if err != nil {
			return createErrorMsg{err: err}
		}
		return bookmarkCreatedMsg{bookmark: b}
	}
}

func copyToClipboard(text string) tea.Cmd {
	return func() tea.Msg {
		var cmd *exec.Cmd
		switch runtime.GOOS {
		case "darwin":
			cmd = exec.Command("pbcopy")
		case "linux":
			cmd = exec.Command("xclip", "-selection", "clipboard")
		case "windows":
			cmd = exec.Command("clip")
		default:
			return createErrorMsg{err: fmt.Errorf("clipboard not supported on %s", runtime.GOOS)}
		}

		cmd.Stdin = strings.NewReader(text)
		if err := cmd.Run(); err != nil {
			return createErrorMsg{err: fmt.Errorf("copy failed: %w", err)}
		}
		return copiedMsg{}
	}
}

func (m *CreateModel) request() (models.CreateBookmarkRequest, error) {
	req := models.CreateBookmarkRequest{
		Title: m.form.value(0),
		Link:  m.form.value(1),
	}
	if req.Title == "" {
		return req, errors.New("title cannot be empty")
	}
	if err := validateLink(req.Link); err != nil {
		return req, err
	}
	if d := m.form.value(2); d != "" {
		req.Description = &d
	}
	return req, nil
}

func (m *CreateModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case bookmarkCreatedMsg:
		m.loading = false
		m.created = msg.bookmark
		m.copied = false
		m.form.reset()
		return m, nil

	case createErrorMsg:
		m.loading = false
		m.err = msg.err
		return m, nil

	case copiedMsg:
		m.copied = true
		return m, nil

	case tea.KeyMsg:
		if m.loading {
			return m, nil
		}

		switch msg.String() {
		case "enter":
			req, err := m.request()
			if err != nil {
				m.err = err
				return m, nil
			}
			m.loading = true
			m.err = nil
			m.created = nil
			return m, createBookmarkCmd(m.client, req)
		case "ctrl+y":
			if m.created != nil {
				return m, copyToClipboard(m.created.Link)
			}
		case "ctrl+l":
			m.form.reset()
			m.created = nil
			m.err = nil
		default:
			m.form.handleKey(msg)
		}
	}
	return m, nil
}

func (m *CreateModel) View() string {
	var b strings.Builder

	b.WriteString(centered(76, TitleStyle.Render("NEW BOOKMARK")))
	b.WriteString("\n\n")
	b.WriteString(m.form.View(50))
	b.WriteString("\n\n")

	if m.loading {
		b.WriteString(centered(76, InfoStyle.Render("Saving...")))
		b.WriteString("\n")
	}
	if m.created != nil {
		b.WriteString(centered(76, SuccessStyle.Render(fmt.Sprintf("✓ Saved #%d %s", m.created.ID, truncate(m.created.Title, 40)))))
		b.WriteString("\n")
		if m.copied {
			b.WriteString(centered(76, InfoStyle.Render("Link copied to clipboard")))
		} else {
			b.WriteString(centered(76, InfoStyle.Render("ctrl+y copy link")))
		}
		b.WriteString("\n")
	}
	if m.err != nil {
		b.WriteString(centered(76, ErrorStyle.Render(m.err.Error())))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centered(76, InfoStyle.Render("tab next  •  enter save  •  ctrl+l clear  •  esc back")))

	return BoxStyle.Render(b.String())
}
