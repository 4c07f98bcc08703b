package service

import (
	"context"
	"errors"

	"github.com/Varun5711/bookmarkd/internal/apperror"
	"github.com/Varun5711/bookmarkd/internal/models"
	"github.com/Varun5711/bookmarkd/internal/storage"
	"github.com/Varun5711/bookmarkd/internal/validation"
)

const (
	msgAccessDenied     = "Access to resources denied"
	msgBookmarkNotFound = "Bookmark not found"
)

type BookmarkService struct {
	bookmarks storage.BookmarkStore
}

func NewBookmarkService(bookmarks storage.BookmarkStore) *BookmarkService {
	return &BookmarkService{bookmarks: bookmarks}
}

func (s *BookmarkService) List(ctx context.Context, userID int64) ([]models.Bookmark, error) {
	bookmarks, err := s.bookmarks.ListBookmarks(ctx, userID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return bookmarks, nil
}

// GetByID does not distinguish a missing bookmark from someone else's.
func (s *BookmarkService) GetByID(ctx context.Context, userID, bookmarkID int64) (*models.Bookmark, error) {
	b, err := s.load(ctx, bookmarkID)
	if err != nil {
		return nil, err
	}
	if !canAccess(userID, b) {
		return nil, apperror.NotFound(msgBookmarkNotFound)
	}
	return b, nil
}

func (s *BookmarkService) Create(ctx context.Context, userID int64, req models.CreateBookmarkRequest) (*models.Bookmark, error) {
	if err := validation.ValidateCreateBookmark(req); err != nil {
		return nil, apperror.Validation(err.Error())
	}

	b, err := s.bookmarks.CreateBookmark(ctx, userID, req)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return b, nil
}

func (s *BookmarkService) Edit(ctx context.Context, userID, bookmarkID int64, req models.EditBookmarkRequest) (*models.Bookmark, error) {
	if err := validation.ValidateEditBookmark(req); err != nil {
		return nil, apperror.Validation(err.Error())
	}

	if err := s.authorizeWrite(ctx, userID, bookmarkID); err != nil {
		return nil, err
	}

	b, err := s.bookmarks.UpdateBookmark(ctx, bookmarkID, userID, req)
	if errors.Is(err, storage.ErrNotFound) {
		// deleted between the check and the write
		return nil, apperror.Forbidden(msgAccessDenied)
	}
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return b, nil
}

// Delete fails with Forbidden when the bookmark is already gone, so a
// repeated delete is a harmless error.
func (s *BookmarkService) Delete(ctx context.Context, userID, bookmarkID int64) error {
	if err := s.authorizeWrite(ctx, userID, bookmarkID); err != nil {
		return err
	}

	err := s.bookmarks.DeleteBookmark(ctx, bookmarkID, userID)
	if errors.Is(err, storage.ErrNotFound) {
		return apperror.Forbidden(msgAccessDenied)
	}
	if err != nil {
		return apperror.Internal(err)
	}
	return nil
}

func (s *BookmarkService) authorizeWrite(ctx context.Context, userID, bookmarkID int64) error {
	b, err := s.load(ctx, bookmarkID)
	if apperror.KindOf(err) == apperror.KindNotFound {
		return apperror.Forbidden(msgAccessDenied)
	}
	if err != nil {
		return err
	}
	if !canAccess(userID, b) {
		return apperror.Forbidden(msgAccessDenied)
	}
	return nil
}

func (s *BookmarkService) load(ctx context.Context, bookmarkID int64) (*models.Bookmark, error) {
	b, err := s.bookmarks.GetBookmark(ctx, bookmarkID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, apperror.NotFound(msgBookmarkNotFound)
	}
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return b, nil
}
