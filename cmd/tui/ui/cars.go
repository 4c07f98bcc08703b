package ui

import (
	"fmt"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Varun5711/bookmarkd/cmd/tui/client"
	"github.com/Varun5711/bookmarkd/internal/models"
)

const carsPerPage = 5

type carsLoadedMsg struct {
	page *models.CarPage
}

type carsErrorMsg struct {
	err error
}

func listCarsCmd(c *client.Client, page int) tea.Cmd {
	return func() tea.Msg {
		result, err := c.ListCars(page, carsPerPage)
		if err != nil {
			return carsErrorMsg{err: err}
		}
		return carsLoadedMsg{page: result}
	}
}

type CarsModel struct {
	page    int
	result  *models.CarPage
	loading bool
	err     error
	client  *client.Client
}

func NewCarsModel(c *client.Client) *CarsModel {
	return &CarsModel{page: 1, client: c}
}

func (m *CarsModel) Init() tea.Cmd {
	return nil
}

func (m *CarsModel) load(page int) tea.Cmd {
	m.page = page
	m.loading = true
	m.err = nil
	return listCarsCmd(m.client, page)
}

func (m *CarsModel) lastPage() int {
	if m.result == nil || m.result.Total == 0 {
		return 1
	}
	return int((m.result.Total + carsPerPage - 1) / carsPerPage)
}

func (m *CarsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case carsLoadedMsg:
		m.loading = false
		m.result = msg.page
		return m, nil

	case carsErrorMsg:
		m.loading = false
		m.err = msg.err
		return m, nil

	case tea.KeyMsg:
		if m.loading {
			return m, nil
		}
		switch msg.String() {
		case "right", "l", "n":
			if m.page < m.lastPage() {
				return m, m.load(m.page + 1)
			}
		case "left", "h", "p":
			if m.page > 1 {
				return m, m.load(m.page - 1)
			}
		case "r":
			return m, m.load(m.page)
		}
	}
	return m, nil
}

// describe lists a car's attributes as sorted key=value pairs.
func describe(car models.Car) string {
	keys := make([]string, 0, len(car.Attributes))
	for k := range car.Attributes {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", k, car.Attributes[k]))
	}
	if len(parts) == 0 {
		return "(no attributes)"
	}
	return strings.Join(parts, "  ")
}

func (m *CarsModel) View() string {
	var b strings.Builder

	b.WriteString(centered(76, TitleStyle.Render("CAR CATALOGUE")))
	b.WriteString("\n\n")

	switch {
	case m.loading && m.result == nil:
		b.WriteString(centered(76, InfoStyle.Render("Loading cars...")))
	case m.err != nil:
		b.WriteString(centered(76, ErrorStyle.Render(m.err.Error())))
	case m.result == nil || len(m.result.Items) == 0:
		b.WriteString(centered(76, InfoStyle.Render("No cars on this page.")))
	default:
		for _, car := range m.result.Items {
			line := lipgloss.NewStyle().Foreground(Warning).Bold(true).Render(fmt.Sprintf("#%d ", car.ID)) +
				lipgloss.NewStyle().Foreground(Text).Render(truncate(describe(car), 60))
			b.WriteString(centered(76, CardStyle.Render(line)))
			b.WriteString("\n")
		}
	}

	var total int64
	if m.result != nil {
		total = m.result.Total
	}
	b.WriteString("\n")
	b.WriteString(centered(76, InfoStyle.Render(fmt.Sprintf("page %d of %d  •  %d cars", m.page, m.lastPage(), total))))
	b.WriteString("\n")
	b.WriteString(centered(76, InfoStyle.Render("←/→ page  •  r refresh  •  esc back")))

	return BoxStyle.Render(b.String())
}
