package ui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Varun5711/bookmarkd/cmd/tui/client"
	"github.com/Varun5711/bookmarkd/internal/models"
)

func keys(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func key(t tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: t}
}

func send(t *testing.T, m Model, msgs ...tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, msg := range msgs {
		var next tea.Model
		next, cmd = m.Update(msg)
		m = next.(Model)
	}
	return m, cmd
}

func TestForm_Editing(t *testing.T) {
	f := newForm(field{label: "A"}, field{label: "B", secret: true})

	f.handleKey(keys("héllo"))
	f.handleKey(key(tea.KeyBackspace))
	f.handleKey(key(tea.KeyTab))
	f.handleKey(keys("pw"))

	assert.Equal(t, "héll", f.value(0))
	assert.Equal(t, "pw", f.value(1))
	assert.Contains(t, f.View(20), "••")
	assert.NotContains(t, f.View(20), "pw")

	f.handleKey(key(tea.KeyShiftTab))
	assert.Equal(t, 0, f.focused)

	f.reset()
	assert.Empty(t, f.value(0))
	assert.Empty(t, f.value(1))
}

func TestModel_LoginFlow(t *testing.T) {
	m := NewModel(client.New("http://127.0.0.1:1"))

	m, cmd := send(t, m, key(tea.KeyEnter))
	assert.Nil(t, cmd)
	assert.Error(t, m.login.err)

	m, _ = send(t, m, key(tea.KeyCtrlS))
	assert.Equal(t, SignupView, m.currentView)
	m, _ = send(t, m, key(tea.KeyCtrlS))
	assert.Equal(t, LoginView, m.currentView)

	m, _ = send(t, m, authenticatedMsg{user: &models.User{ID: 1, Email: "tui@example.com"}})
	assert.Equal(t, MenuView, m.currentView)
	assert.Contains(t, m.View(), "tui@example.com")
}

func TestModel_MenuOpensViews(t *testing.T) {
	m := NewModel(client.New("http://127.0.0.1:1"))
	m, _ = send(t, m, authenticatedMsg{user: &models.User{ID: 1, Email: "a@example.com"}})

	m, cmd := send(t, m, key(tea.KeyDown), key(tea.KeyEnter))
	assert.Equal(t, BookmarksView, m.currentView)
	assert.NotNil(t, cmd)
	assert.True(t, m.bookmarks.loading)

	m, _ = send(t, m, key(tea.KeyEsc))
	assert.Equal(t, MenuView, m.currentView)

	m, cmd = send(t, m, key(tea.KeyDown), key(tea.KeyEnter))
	assert.Equal(t, CarsView, m.currentView)
	assert.NotNil(t, cmd)

	_, cmd = send(t, m, key(tea.KeyEsc), key(tea.KeyEsc))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestBookmarks_DeleteAndQR(t *testing.T) {
	m := NewBookmarksModel(client.New("http://127.0.0.1:1"))
	m.Update(bookmarksLoadedMsg{bookmarks: []models.Bookmark{
		{ID: 1, Title: "one", Link: "https://one.example.com", CreatedAt: time.Now()},
		{ID: 2, Title: "two", Link: "https://two.example.com", CreatedAt: time.Now()},
	}})

	m.Update(key(tea.KeyDown))
	assert.Equal(t, int64(2), m.selected().ID)

	m.Update(key(tea.KeyEnter))
	assert.NotEmpty(t, m.qr)
	assert.Contains(t, m.View(), "https://two.example.com")
	m.Update(keys("x"))
	assert.Empty(t, m.qr)

	_, cmd := m.Update(keys("d"))
	assert.NotNil(t, cmd)
	assert.True(t, m.loading)

	m.Update(bookmarkDeletedMsg{id: 2})
	require.Len(t, m.bookmarks, 1)
	assert.Equal(t, 0, m.cursor)
	assert.False(t, m.loading)
}

func TestCreate_Validation(t *testing.T) {
	m := NewCreateModel(client.New("http://127.0.0.1:1"))

	m.Update(keys("Go"))
	m.Update(key(tea.KeyTab))
	m.Update(keys("go.dev"))
	_, cmd := m.Update(key(tea.KeyEnter))
	assert.Nil(t, cmd)
	assert.EqualError(t, m.err, "link must start with http:// or https://")

	m.form.fields[1].value = "https://go.dev"
	req, err := m.request()
	require.NoError(t, err)
	assert.Equal(t, "Go", req.Title)
	assert.Nil(t, req.Description)

	_, cmd = m.Update(key(tea.KeyEnter))
	assert.NotNil(t, cmd)
	assert.True(t, m.loading)
}

func TestCars_Paging(t *testing.T) {
	m := NewCarsModel(client.New("http://127.0.0.1:1"))
	m.Update(carsLoadedMsg{page: &models.CarPage{
		Items:   []models.Car{{ID: 1, Attributes: map[string]interface{}{"model": "240", "make": "Volvo"}}},
		Total:   11,
		Page:    1,
		PerPage: carsPerPage,
	}})

	assert.Equal(t, 3, m.lastPage())
	assert.Equal(t, "make=Volvo  model=240", describe(m.result.Items[0]))

	_, cmd := m.Update(keys("p"))
	assert.Nil(t, cmd)

	_, cmd = m.Update(keys("n"))
	assert.NotNil(t, cmd)
	assert.Equal(t, 2, m.page)
}
