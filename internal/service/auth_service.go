package service

import (
	"context"
	"errors"
	"sync"

	"github.com/Varun5711/bookmarkd/internal/apperror"
	"github.com/Varun5711/bookmarkd/internal/auth"
	"github.com/Varun5711/bookmarkd/internal/metrics"
	"github.com/Varun5711/bookmarkd/internal/models"
	"github.com/Varun5711/bookmarkd/internal/storage"
	"github.com/Varun5711/bookmarkd/internal/validation"
)

const msgCredentialsTaken = "Credentials taken"

type AuthService struct {
	users  storage.UserStore
	hasher *auth.Hasher
	tokens *auth.JWTManager

	dummyOnce sync.Once
	dummyHash string
}

func NewAuthService(users storage.UserStore, hasher *auth.Hasher, tokens *auth.JWTManager) *AuthService {
	return &AuthService{
		users:  users,
		hasher: hasher,
		tokens: tokens,
	}
}

func (s *AuthService) Signup(ctx context.Context, creds models.Credentials) (*models.User, error) {
	if err := validation.ValidateCredentials(creds); err != nil {
		metrics.RecordAuthAttempt("signup", "rejected")
		return nil, apperror.Validation(err.Error())
	}

	hash, err := s.hasher.Hash(creds.Password)
	if err != nil {
		metrics.RecordAuthAttempt("signup", "error")
		return nil, apperror.Internal(err)
	}

	user, err := s.users.CreateUser(ctx, creds.Email, hash)
	if errors.Is(err, storage.ErrDuplicateEmail) {
		metrics.RecordAuthAttempt("signup", "rejected")
		return nil, apperror.Conflict(msgCredentialsTaken)
	}
	if err != nil {
		metrics.RecordAuthAttempt("signup", "error")
		return nil, apperror.Internal(err)
	}

	metrics.RecordAuthAttempt("signup", "success")
	return user, nil
}

// Signin fails with the same error whether the email is unknown or the
// password is wrong. Unknown emails still pay for one hash comparison.
func (s *AuthService) Signin(ctx context.Context, creds models.Credentials) (*models.AuthResponse, error) {
	if err := validation.ValidateCredentials(creds); err != nil {
		metrics.RecordAuthAttempt("signin", "rejected")
		return nil, apperror.Validation(err.Error())
	}

	user, err := s.users.GetUserByEmail(ctx, creds.Email)
	if errors.Is(err, storage.ErrNotFound) {
		_ = s.hasher.Check(s.fallbackHash(), creds.Password)
		metrics.RecordAuthAttempt("signin", "rejected")
		return nil, apperror.Credentials()
	}
	if err != nil {
		metrics.RecordAuthAttempt("signin", "error")
		return nil, apperror.Internal(err)
	}

	if err := s.hasher.Check(user.PasswordHash, creds.Password); err != nil {
		metrics.RecordAuthAttempt("signin", "rejected")
		return nil, apperror.Credentials()
	}

	token, expiresAt, err := s.tokens.GenerateToken(user.ID, user.Email)
	if err != nil {
		metrics.RecordAuthAttempt("signin", "error")
		return nil, apperror.Internal(err)
	}

	metrics.RecordAuthAttempt("signin", "success")
	return &models.AuthResponse{
		AccessToken: token,
		ExpiresAt:   expiresAt,
		User:        user,
	}, nil
}

func (s *AuthService) fallbackHash() string {
	s.dummyOnce.Do(func() {
		s.dummyHash, _ = s.hasher.Hash("fallback-password")
	})
	return s.dummyHash
}
