package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"image/png"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Varun5711/bookmarkd/internal/auth"
	"github.com/Varun5711/bookmarkd/internal/cache"
	"github.com/Varun5711/bookmarkd/internal/logger"
	"github.com/Varun5711/bookmarkd/internal/middleware"
	"github.com/Varun5711/bookmarkd/internal/models"
	"github.com/Varun5711/bookmarkd/internal/service"
	"github.com/Varun5711/bookmarkd/internal/storage"
)

var fastParams = auth.Params{Time: 1, Memory: 8 * 1024, Threads: 1, SaltLen: 16, KeyLen: 32}

type testServer struct {
	t       *testing.T
	handler http.Handler
	store   *storage.MemoryStorage
	logs    *observer.ObservedLogs
}

func newTestServer(t *testing.T, opts ...func(*Router)) *testServer {
	t.Helper()

	core, logs := observer.New(zapcore.DebugLevel)
	log := logger.NewWithCore("test", core)
	store := storage.NewMemoryStorage()
	tokens := auth.NewJWTManager("test-secret", time.Hour)

	health := NewHealthHandler()
	health.Register("store", store)

	docs, err := NewSwaggerHandler()
	require.NoError(t, err)

	rt := &Router{
		Auth:        NewAuthHandler(service.NewAuthService(store, auth.NewHasher(fastParams), tokens), log),
		Users:       NewUserHandler(service.NewUserService(store), log),
		Bookmarks:   NewBookmarkHandler(service.NewBookmarkService(store), log),
		Cars:        NewCarHandler(service.NewCarService(store, cache.New("car:", 16, nil, time.Minute), log), log),
		Health:      health,
		Docs:        docs,
		RequireAuth: middleware.NewAuthMiddleware(tokens, log).RequireAuth,
	}
	for _, opt := range opts {
		opt(rt)
	}

	return &testServer{t: t, handler: rt.Routes(), store: store, logs: logs}
}

func (s *testServer) do(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	s.t.Helper()

	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		require.NoError(s.t, json.NewEncoder(&buf).Encode(b))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func (s *testServer) register(email string) string {
	s.t.Helper()

	creds := map[string]string{"email": email, "password": "password123"}
	rec := s.do(http.MethodPost, "/auth/signup", "", creds)
	require.Equal(s.t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = s.do(http.MethodPost, "/auth/signin", "", creds)
	require.Equal(s.t, http.StatusOK, rec.Code, rec.Body.String())

	var resp models.AuthResponse
	require.NoError(s.t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(s.t, resp.AccessToken)
	return resp.AccessToken
}

func (s *testServer) createBookmark(token, title, link string) models.Bookmark {
	s.t.Helper()

	rec := s.do(http.MethodPost, "/bookmarks", token, map[string]string{"title": title, "link": link})
	require.Equal(s.t, http.StatusCreated, rec.Code, rec.Body.String())

	var b models.Bookmark
	require.NoError(s.t, json.Unmarshal(rec.Body.Bytes(), &b))
	return b
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) models.ErrorResponse {
	t.Helper()
	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp), rec.Body.String())
	return resp
}

func TestSignup(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(http.MethodPost, "/auth/signup", "", map[string]string{"email": "a@example.com", "password": "secret"})
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.NotContains(t, rec.Body.String(), "hash")
	assert.NotContains(t, rec.Body.String(), "secret")

	var u models.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &u))
	assert.Equal(t, "a@example.com", u.Email)
	assert.NotZero(t, u.ID)
	assert.Equal(t, 1, s.logs.FilterMessageSnippet("signed up").Len())
}

func TestSignup_Errors(t *testing.T) {
	tests := []struct {
		name   string
		body   interface{}
		status int
	}{
		{"missing email", map[string]string{"password": "x"}, http.StatusBadRequest},
		{"invalid email", map[string]string{"email": "nope", "password": "x"}, http.StatusBadRequest},
		{"missing password", map[string]string{"email": "b@example.com"}, http.StatusBadRequest},
		{"malformed body", "{", http.StatusBadRequest},
		{"empty body", nil, http.StatusBadRequest},
		{"wrong type", `{"email": 5, "password": "x"}`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t)
			rec := s.do(http.MethodPost, "/auth/signup", "", tt.body)
			assert.Equal(t, tt.status, rec.Code, rec.Body.String())
			assert.Equal(t, "validation_error", decodeError(t, rec).Error)
		})
	}
}

func TestSignup_DuplicateEmail(t *testing.T) {
	s := newTestServer(t)
	s.register("dup@example.com")

	rec := s.do(http.MethodPost, "/auth/signup", "", map[string]string{"email": "dup@example.com", "password": "other"})

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "Credentials taken", decodeError(t, rec).Message)
}

func TestSignin_BadCredentials(t *testing.T) {
	s := newTestServer(t)
	s.register("c@example.com")

	wrongPassword := s.do(http.MethodPost, "/auth/signin", "", map[string]string{"email": "c@example.com", "password": "wrong"})
	unknownEmail := s.do(http.MethodPost, "/auth/signin", "", map[string]string{"email": "ghost@example.com", "password": "password123"})

	assert.Equal(t, http.StatusForbidden, wrongPassword.Code)
	assert.Equal(t, http.StatusForbidden, unknownEmail.Code)
	assert.Equal(t, decodeError(t, wrongPassword), decodeError(t, unknownEmail))
}

func TestProtectedRoutes_RequireToken(t *testing.T) {
	s := newTestServer(t)

	routes := []struct{ method, path string }{
		{http.MethodGet, "/users/me"},
		{http.MethodPatch, "/users"},
		{http.MethodGet, "/bookmarks"},
		{http.MethodPost, "/bookmarks"},
		{http.MethodGet, "/bookmarks/1"},
		{http.MethodPatch, "/bookmarks/1"},
		{http.MethodDelete, "/bookmarks/1"},
		{http.MethodGet, "/bookmarks/1/qrcode"},
		{http.MethodPost, "/cars"},
	}

	for _, rt := range routes {
		t.Run(rt.method+" "+rt.path, func(t *testing.T) {
			assert.Equal(t, http.StatusUnauthorized, s.do(rt.method, rt.path, "", nil).Code)
			assert.Equal(t, http.StatusUnauthorized, s.do(rt.method, rt.path, "garbage", nil).Code)
		})
	}
}

func TestUsers_MeAndEdit(t *testing.T) {
	s := newTestServer(t)
	token := s.register("me@example.com")

	rec := s.do(http.MethodGet, "/users/me", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var me models.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &me))
	assert.Equal(t, "me@example.com", me.Email)

	rec = s.do(http.MethodPatch, "/users", token, map[string]string{"firstName": "Ada"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var edited models.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &edited))
	require.NotNil(t, edited.FirstName)
	assert.Equal(t, "Ada", *edited.FirstName)
	assert.Equal(t, "me@example.com", edited.Email)

	rec = s.do(http.MethodPatch, "/users", token, map[string]string{"email": "broken"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUsers_EditToTakenEmail(t *testing.T) {
	s := newTestServer(t)
	s.register("taken@example.com")
	token := s.register("mover@example.com")

	rec := s.do(http.MethodPatch, "/users", token, map[string]string{"email": "taken@example.com"})

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestBookmarks_OwnerLifecycle(t *testing.T) {
	s := newTestServer(t)
	token := s.register("owner@example.com")

	b := s.createBookmark(token, "Go", "https://go.dev")
	assert.NotZero(t, b.ID)

	rec := s.do(http.MethodGet, "/bookmarks", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var list []models.Bookmark
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list, 1)
	assert.Equal(t, b.ID, list[0].ID)

	path := fmt.Sprintf("/bookmarks/%d", b.ID)

	rec = s.do(http.MethodPatch, path, token, map[string]string{"title": "Go docs"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var edited models.Bookmark
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &edited))
	assert.Equal(t, "Go docs", edited.Title)
	assert.Equal(t, "https://go.dev", edited.Link)

	rec = s.do(http.MethodPatch, path, token, map[string]string{"description": "The Go homepage"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = s.do(http.MethodGet, path, token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var fetched models.Bookmark
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &fetched))
	assert.Equal(t, "Go docs", fetched.Title)
	require.NotNil(t, fetched.Description)
	assert.Equal(t, "The Go homepage", *fetched.Description)

	rec = s.do(http.MethodDelete, path, token, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())

	assert.Equal(t, http.StatusNotFound, s.do(http.MethodGet, path, token, nil).Code)
	assert.Equal(t, http.StatusForbidden, s.do(http.MethodDelete, path, token, nil).Code)
}

func TestBookmarks_EmptyListIsArray(t *testing.T) {
	s := newTestServer(t)
	token := s.register("empty@example.com")

	rec := s.do(http.MethodGet, "/bookmarks", token, nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())
}

func TestBookmarks_OtherUsersAreIsolated(t *testing.T) {
	s := newTestServer(t)
	alice := s.register("alice@example.com")
	bob := s.register("bob@example.com")

	b := s.createBookmark(alice, "Alice's", "https://alice.example.com")
	path := fmt.Sprintf("/bookmarks/%d", b.ID)

	assert.Equal(t, http.StatusNotFound, s.do(http.MethodGet, path, bob, nil).Code)
	assert.Equal(t, http.StatusNotFound, s.do(http.MethodGet, path+"/qrcode", bob, nil).Code)

	rec := s.do(http.MethodPatch, path, bob, map[string]string{"title": "mine now"})
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "Access to resources denied", decodeError(t, rec).Message)

	assert.Equal(t, http.StatusForbidden, s.do(http.MethodDelete, path, bob, nil).Code)

	rec = s.do(http.MethodGet, "/bookmarks", bob, nil)
	assert.JSONEq(t, "[]", rec.Body.String())

	rec = s.do(http.MethodGet, path, alice, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var still models.Bookmark
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &still))
	assert.Equal(t, "Alice's", still.Title)
}

func TestBookmarks_Validation(t *testing.T) {
	s := newTestServer(t)
	token := s.register("v@example.com")

	assert.Equal(t, http.StatusBadRequest, s.do(http.MethodPost, "/bookmarks", token, map[string]string{"link": "https://x"}).Code)
	assert.Equal(t, http.StatusBadRequest, s.do(http.MethodPost, "/bookmarks", token, map[string]string{"title": "x"}).Code)
	assert.Equal(t, http.StatusBadRequest, s.do(http.MethodGet, "/bookmarks/abc", token, nil).Code)
	assert.Equal(t, http.StatusBadRequest, s.do(http.MethodGet, "/bookmarks/0", token, nil).Code)

	b := s.createBookmark(token, "t", "https://t.example.com")
	rec := s.do(http.MethodPatch, fmt.Sprintf("/bookmarks/%d", b.ID), token, map[string]string{"link": ""})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestBookmarks_QRCode(t *testing.T) {
	s := newTestServer(t)
	token := s.register("qr@example.com")
	b := s.createBookmark(token, "QR", "https://qr.example.com")

	rec := s.do(http.MethodGet, fmt.Sprintf("/bookmarks/%d/qrcode?size=128", b.ID), token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))

	img, err := png.Decode(rec.Body)
	require.NoError(t, err)
	assert.Equal(t, 128, img.Bounds().Dx())

	rec = s.do(http.MethodGet, fmt.Sprintf("/bookmarks/%d/qrcode?size=5000", b.ID), token, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCars_CreateAndGet(t *testing.T) {
	s := newTestServer(t)
	token := s.register("cars@example.com")

	rec := s.do(http.MethodPost, "/cars", token, map[string]interface{}{"make": "Volvo", "year": 1999, "id": 42})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, "Volvo", created["make"])
	assert.EqualValues(t, 1999, created["year"])
	assert.NotEqual(t, float64(42), created["id"])
	assert.Contains(t, created, "createdAt")

	rec = s.do(http.MethodGet, fmt.Sprintf("/cars/%v", created["id"]), "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, mustJSON(t, created), rec.Body.String())

	assert.Equal(t, http.StatusNotFound, s.do(http.MethodGet, "/cars/9999", "", nil).Code)
}

func TestCars_CreateRejectsNonObject(t *testing.T) {
	s := newTestServer(t)
	token := s.register("bad-car@example.com")

	assert.Equal(t, http.StatusBadRequest, s.do(http.MethodPost, "/cars", token, "[1,2]").Code)
	assert.Equal(t, http.StatusBadRequest, s.do(http.MethodPost, "/cars", token, "null").Code)
}

func TestCars_ListPagination(t *testing.T) {
	s := newTestServer(t)
	token := s.register("fleet@example.com")

	for i := 0; i < 12; i++ {
		rec := s.do(http.MethodPost, "/cars", token, map[string]interface{}{"n": i})
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	var page models.CarPage
	rec := s.do(http.MethodGet, "/cars", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	assert.EqualValues(t, 12, page.Total)
	assert.Len(t, page.Items, 10)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 10, page.PerPage)

	rec = s.do(http.MethodGet, "/cars?page=2&perPage=10", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	page = models.CarPage{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	assert.EqualValues(t, 12, page.Total)
	assert.Len(t, page.Items, 2)

	rec = s.do(http.MethodGet, "/cars?page=5", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	page = models.CarPage{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	assert.Empty(t, page.Items)
	assert.EqualValues(t, 12, page.Total)

	assert.Equal(t, http.StatusBadRequest, s.do(http.MethodGet, "/cars?page=0", "", nil).Code)
	assert.Equal(t, http.StatusBadRequest, s.do(http.MethodGet, "/cars?perPage=abc", "", nil).Code)
	assert.Equal(t, http.StatusBadRequest, s.do(http.MethodGet, "/cars?perPage=101", "", nil).Code)
}

func TestCars_ListHugePage(t *testing.T) {
	s := newTestServer(t)
	token := s.register("cars@example.com")
	s.do(http.MethodPost, "/cars", token, map[string]interface{}{"model": "a"})

	rec := s.do(http.MethodGet, "/cars?page=4611686018427387905&perPage=2", "", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "page is out of range", decodeError(t, rec).Message)

	rec = s.do(http.MethodGet, "/cars?page=9223372036854775807&perPage=1", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var page models.CarPage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	assert.Empty(t, page.Items)
	assert.Equal(t, int64(1), page.Total)
}

func TestCars_UpdateAndRemoveNotImplemented(t *testing.T) {
	s := newTestServer(t)
	token := s.register("nope@example.com")

	assert.Equal(t, http.StatusNotImplemented, s.do(http.MethodPatch, "/cars/1", token, map[string]string{"make": "Saab"}).Code)
	assert.Equal(t, http.StatusNotImplemented, s.do(http.MethodDelete, "/cars/1", token, nil).Code)
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(http.MethodGet, "/health", "", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok","checks":{"store":"ok"}}`, rec.Body.String())
}

type downPinger struct{}

func (downPinger) Ping(ctx context.Context) error { return errors.New("connection refused") }

func TestHealth_DependencyDown(t *testing.T) {
	s := newTestServer(t, func(rt *Router) {
		rt.Health.Register("redis", downPinger{})
	})

	rec := s.do(http.MethodGet, "/health", "", nil)

	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.JSONEq(t, `{"status":"unavailable","checks":{"store":"ok","redis":"connection refused"}}`, rec.Body.String())
}

func TestDocs(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(http.MethodGet, "/openapi.yaml", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "/bookmarks/{id}")

	rec = s.do(http.MethodGet, "/openapi.json", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var doc struct {
		OpenAPI string                 `json:"openapi"`
		Paths   map[string]interface{} `json:"paths"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))
	assert.Equal(t, "3.0.3", doc.OpenAPI)
	assert.Contains(t, doc.Paths, "/bookmarks/{id}/qrcode")

	rec = s.do(http.MethodGet, "/docs", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "/openapi.json")
}

func TestAuthRoutes_RateLimited(t *testing.T) {
	s := newTestServer(t, func(rt *Router) {
		rt.AuthLimiter = middleware.NewLocalRateLimiter(1, time.Minute)
	})
	creds := map[string]string{"email": "rl@example.com", "password": "pw"}

	first := s.do(http.MethodPost, "/auth/signup", "", creds)
	second := s.do(http.MethodPost, "/auth/signin", "", creds)
	unthrottled := s.do(http.MethodGet, "/cars", "", nil)

	assert.Equal(t, http.StatusCreated, first.Code)
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
	assert.NotEmpty(t, second.Header().Get("Retry-After"))
	assert.Equal(t, http.StatusOK, unthrottled.Code)
}

func mustJSON(t *testing.T, v interface{}) string {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return string(b)
}
