package ui

import (
	"errors"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Varun5711/bookmarkd/cmd/tui/client"
	"github.com/Varun5711/bookmarkd/internal/models"
)

// authenticatedMsg is sent once a signin succeeds, from either screen.
type authenticatedMsg struct {
	user *models.User
}

type authErrorMsg struct {
	err error
}

func signinCmd(c *client.Client, email, password string) tea.Cmd {
	return func() tea.Msg {
		resp, err := c.Signin(email, password)
		if err != nil {
			return authErrorMsg{err: err}
		}
		return authenticated(c, resp)
	}
}

func authenticated(c *client.Client, resp *models.AuthResponse) tea.Msg {
	if resp.User != nil {
		return authenticatedMsg{user: resp.User}
	}
	user, err := c.Me()
	if err != nil {
		return authErrorMsg{err: err}
	}
	return authenticatedMsg{user: user}
}

type LoginModel struct {
	form    form
	loading bool
	err     error
	client  *client.Client
}

func NewLoginModel(c *client.Client) *LoginModel {
	return &LoginModel{
		form: newForm(
			field{label: "Email"},
			field{label: "Password", secret: true},
		),
		client: c,
	}
}

func (m *LoginModel) Init() tea.Cmd {
	return nil
}

func (m *LoginModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case authenticatedMsg:
		m.loading = false
		m.err = nil
		m.form.reset()
		return m, nil

	case authErrorMsg:
		m.loading = false
		m.err = msg.err
		return m, nil

	case tea.KeyMsg:
		if m.loading {
			return m, nil
		}

		switch msg.String() {
		case "enter":
			email, password := m.form.value(0), m.form.fields[1].value
			if email == "" || password == "" {
				m.err = errors.New("email and password are required")
				return m, nil
			}
			m.loading = true
			m.err = nil
			return m, signinCmd(m.client, email, password)
		case "ctrl+l":
			m.form.reset()
			m.err = nil
		default:
			m.form.handleKey(msg)
		}
	}
	return m, nil
}

func (m *LoginModel) View() string {
	var b strings.Builder

	b.WriteString(centered(72, TitleStyle.Render("SIGN IN")))
	b.WriteString("\n")
	b.WriteString(centered(72, InfoStyle.Render("Your bookmarks, from the terminal.")))
	b.WriteString("\n\n")
	b.WriteString(m.form.View(44))
	b.WriteString("\n\n")

	if m.loading {
		b.WriteString(centered(72, InfoStyle.Render("Signing in...")))
		b.WriteString("\n")
	}
	if m.err != nil {
		b.WriteString(centered(72, ErrorStyle.Render(m.err.Error())))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centered(72, InfoStyle.Render("tab next  •  enter sign in  •  ctrl+s sign up  •  esc quit")))

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Primary).
		Padding(1, 2).
		Render(b.String())
}
