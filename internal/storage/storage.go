package storage

import (
	"context"
	"errors"

	"github.com/Varun5711/bookmarkd/internal/models"
)

var (
	ErrNotFound       = errors.New("record not found")
	ErrDuplicateEmail = errors.New("email already registered")
	ErrInvalidWindow  = errors.New("invalid page window")
)

type UserStore interface {
	CreateUser(ctx context.Context, email, passwordHash string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	UpdateUser(ctx context.Context, id int64, patch models.EditUserRequest) (*models.User, error)
}

type BookmarkStore interface {
	ListBookmarks(ctx context.Context, userID int64) ([]models.Bookmark, error)
	GetBookmark(ctx context.Context, id int64) (*models.Bookmark, error)
	CreateBookmark(ctx context.Context, userID int64, req models.CreateBookmarkRequest) (*models.Bookmark, error)
	// UpdateBookmark and DeleteBookmark only touch a row that still belongs
	// to userID and return ErrNotFound otherwise.
	UpdateBookmark(ctx context.Context, id, userID int64, patch models.EditBookmarkRequest) (*models.Bookmark, error)
	DeleteBookmark(ctx context.Context, id, userID int64) error
}

type CarStore interface {
	CreateCar(ctx context.Context, attrs map[string]interface{}) (*models.Car, error)
	ListCars(ctx context.Context, skip, limit int) ([]models.Car, int64, error)
	GetCar(ctx context.Context, id int64) (*models.Car, error)
}

// Store bundles every repository behind one backend.
type Store interface {
	UserStore
	BookmarkStore
	CarStore
	Ping(ctx context.Context) error
}
