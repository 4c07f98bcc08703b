package service

import (
	"context"
	"errors"

	"github.com/Varun5711/bookmarkd/internal/apperror"
	"github.com/Varun5711/bookmarkd/internal/models"
	"github.com/Varun5711/bookmarkd/internal/storage"
	"github.com/Varun5711/bookmarkd/internal/validation"
)

type UserService struct {
	users storage.UserStore
}

func NewUserService(users storage.UserStore) *UserService {
	return &UserService{users: users}
}

// GetSelf loads the caller. A verified token whose user no longer exists is
// treated as unauthenticated.
func (s *UserService) GetSelf(ctx context.Context, userID int64) (*models.User, error) {
	user, err := s.users.GetUserByID(ctx, userID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, apperror.Auth("Unauthorized")
	}
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return user, nil
}

func (s *UserService) EditSelf(ctx context.Context, userID int64, req models.EditUserRequest) (*models.User, error) {
	if err := validation.ValidateEditUser(req); err != nil {
		return nil, apperror.Validation(err.Error())
	}

	if req.Empty() {
		return s.GetSelf(ctx, userID)
	}

	user, err := s.users.UpdateUser(ctx, userID, req)
	switch {
	case errors.Is(err, storage.ErrDuplicateEmail):
		return nil, apperror.Conflict(msgCredentialsTaken)
	case errors.Is(err, storage.ErrNotFound):
		return nil, apperror.Auth("Unauthorized")
	case err != nil:
		return nil, apperror.Internal(err)
	}

	return user, nil
}
