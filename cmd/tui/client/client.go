package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/Varun5711/bookmarkd/internal/models"
)

// APIError is a non-2xx answer from the API.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("request failed with status %d", e.Status)
}

// Client talks to the bookmarkd HTTP API. It is not safe for concurrent
// SetToken calls.
type Client struct {
	baseURL string
	http    *http.Client
	token   string
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *Client) SetToken(token string) {
	c.token = token
}

func (c *Client) Token() string {
	return c.token
}

func (c *Client) Signup(email, password string) (*models.User, error) {
	var user models.User
	err := c.do(http.MethodPost, "/auth/signup", models.Credentials{Email: email, Password: password}, &user)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Signin stores the returned token for subsequent calls.
func (c *Client) Signin(email, password string) (*models.AuthResponse, error) {
	var resp models.AuthResponse
	err := c.do(http.MethodPost, "/auth/signin", models.Credentials{Email: email, Password: password}, &resp)
	if err != nil {
		return nil, err
	}
	c.token = resp.AccessToken
	return &resp, nil
}

func (c *Client) Me() (*models.User, error) {
	var user models.User
	if err := c.do(http.MethodGet, "/users/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) ListBookmarks() ([]models.Bookmark, error) {
	var bookmarks []models.Bookmark
	if err := c.do(http.MethodGet, "/bookmarks", nil, &bookmarks); err != nil {
		return nil, err
	}
	return bookmarks, nil
}

func (c *Client) CreateBookmark(req models.CreateBookmarkRequest) (*models.Bookmark, error) {
	var b models.Bookmark
	if err := c.do(http.MethodPost, "/bookmarks", req, &b); err != nil {
		return nil, err
	}
	return &b, nil
}

func (c *Client) DeleteBookmark(id int64) error {
	return c.do(http.MethodDelete, "/bookmarks/"+strconv.FormatInt(id, 10), nil, nil)
}

func (c *Client) ListCars(page, perPage int) (*models.CarPage, error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("perPage", strconv.Itoa(perPage))

	var result models.CarPage
	if err := c.do(http.MethodGet, "/cars?"+q.Encode(), nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) do(method, path string, body, out interface{}) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		apiErr := &APIError{Status: resp.StatusCode}
		var er models.ErrorResponse
		if json.NewDecoder(resp.Body).Decode(&er) == nil {
			apiErr.Code = er.Error
			apiErr.Message = er.Message
		}
		return apiErr
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
