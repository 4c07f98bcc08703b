package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Varun5711/bookmarkd/cmd/tui/client"
	"github.com/Varun5711/bookmarkd/internal/models"
)

type View int

const (
	LoginView View = iota
	SignupView
	MenuView
	CreateView
	BookmarksView
	CarsView
)

type Model struct {
	currentView View
	login       *LoginModel
	signup      *SignupModel
	menu        *MenuModel
	create      *CreateModel
	bookmarks   *BookmarksModel
	cars        *CarsModel
	client      *client.Client
	user        *models.User
	width       int
	height      int
}

func NewModel(c *client.Client) Model {
	return Model{
		currentView: LoginView,
		login:       NewLoginModel(c),
		signup:      NewSignupModel(c),
		menu:        NewMenuModel(),
		create:      NewCreateModel(c),
		bookmarks:   NewBookmarksModel(c),
		cars:        NewCarsModel(c),
		client:      c,
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) authenticated() bool {
	return m.user != nil
}

// open switches to v and kicks off whatever load the screen needs.
func (m Model) open(v View) (Model, tea.Cmd) {
	m.currentView = v
	switch v {
	case BookmarksView:
		return m, m.bookmarks.refresh()
	case CarsView:
		return m, m.cars.load(1)
	}
	return m, nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case authenticatedMsg:
		m.user = msg.user
		m.login.Update(msg)
		m.signup.Update(msg)
		m.currentView = MenuView
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.currentView == MenuView || !m.authenticated() {
				return m, tea.Quit
			}
			m.currentView = MenuView
			return m, nil
		case "ctrl+s":
			switch m.currentView {
			case LoginView:
				m.currentView = SignupView
				return m, nil
			case SignupView:
				m.currentView = LoginView
				return m, nil
			}
		}
	}

	switch m.currentView {
	case LoginView:
		_, cmd := m.login.Update(msg)
		return m, cmd
	case SignupView:
		_, cmd := m.signup.Update(msg)
		return m, cmd
	case MenuView:
		_, cmd := m.menu.Update(msg)
		if v, ok := m.menu.take(); ok {
			return m.open(v)
		}
		return m, cmd
	case CreateView:
		_, cmd := m.create.Update(msg)
		return m, cmd
	case BookmarksView:
		_, cmd := m.bookmarks.Update(msg)
		return m, cmd
	case CarsView:
		_, cmd := m.cars.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m Model) View() string {
	var content string
	switch m.currentView {
	case LoginView:
		content = m.login.View()
	case SignupView:
		content = m.signup.View()
	case MenuView:
		content = m.menu.View()
	case CreateView:
		content = m.create.View()
	case BookmarksView:
		content = m.bookmarks.View()
	case CarsView:
		content = m.cars.View()
	}

	if !m.authenticated() || m.currentView == LoginView || m.currentView == SignupView {
		return content
	}

	status := lipgloss.NewStyle().
		Width(80).
		Background(BgDark).
		Padding(0, 2).
		Render(SuccessStyle.Render("signed in as ") + lipgloss.NewStyle().Foreground(Muted).Render(m.user.Email))

	return lipgloss.JoinVertical(lipgloss.Left, status, content)
}
