package ui

import (
	"errors"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Varun5711/bookmarkd/cmd/tui/client"
)

func signupCmd(c *client.Client, email, password string) tea.Cmd {
	return func() tea.Msg {
		if _, err := c.Signup(email, password); err != nil {
			return authErrorMsg{err: err}
		}
		resp, err := c.Signin(email, password)
		if err != nil {
			return authErrorMsg{err: err}
		}
		return authenticated(c, resp)
	}
}

type SignupModel struct {
	form    form
	loading bool
	err     error
	client  *client.Client
}

func NewSignupModel(c *client.Client) *SignupModel {
	return &SignupModel{
		form: newForm(
			field{label: "Email"},
			field{label: "Password", secret: true},
			field{label: "Confirm", secret: true},
		),
		client: c,
	}
}

func (m *SignupModel) Init() tea.Cmd {
	return nil
}

func (m *SignupModel) validate() error {
	if m.form.value(0) == "" {
		return errors.New("email cannot be empty")
	}
	if m.form.fields[1].value == "" {
		return errors.New("password cannot be empty")
	}
	if m.form.fields[1].value != m.form.fields[2].value {
		return errors.New("passwords do not match")
	}
	return nil
}

func (m *SignupModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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
			if err := m.validate(); err != nil {
				m.err = err
				return m, nil
			}
			m.loading = true
			m.err = nil
			return m, signupCmd(m.client, m.form.value(0), m.form.fields[1].value)
		case "ctrl+l":
			m.form.reset()
			m.err = nil
		default:
			m.form.handleKey(msg)
		}
	}
	return m, nil
}

func (m *SignupModel) View() string {
	var b strings.Builder

	b.WriteString(centered(72, SuccessStyle.Render("CREATE ACCOUNT")))
	b.WriteString("\n\n")
	b.WriteString(m.form.View(44))
	b.WriteString("\n\n")

	if m.loading {
		b.WriteString(centered(72, InfoStyle.Render("Creating account...")))
		b.WriteString("\n")
	}
	if m.err != nil {
		b.WriteString(centered(72, ErrorStyle.Render(m.err.Error())))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centered(72, InfoStyle.Render("tab next  •  enter sign up  •  ctrl+s sign in  •  esc quit")))

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Success).
		Padding(1, 2).
		Render(b.String())
}
