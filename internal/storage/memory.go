package storage

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/Varun5711/bookmarkd/internal/models"
)

// MemoryStorage is an in-process Store used by the memory driver and by tests.
// Returned values are copies; callers never share state with the store.
type MemoryStorage struct {
	mu sync.RWMutex

	users     map[int64]*models.User
	bookmarks map[int64]*models.Bookmark
	cars      map[int64]*models.Car

	nextUserID     int64
	nextBookmarkID int64
	nextCarID      int64

	now func() time.Time
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		users:     make(map[int64]*models.User),
		bookmarks: make(map[int64]*models.Bookmark),
		cars:      make(map[int64]*models.Car),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (s *MemoryStorage) Ping(ctx context.Context) error {
	return nil
}

func (s *MemoryStorage) CreateUser(ctx context.Context, email, passwordHash string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == email {
			return nil, ErrDuplicateEmail
		}
	}

	s.nextUserID++
	now := s.now()
	user := &models.User{
		ID:           s.nextUserID,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	s.users[user.ID] = user

	return copyUser(user), nil
}

func (s *MemoryStorage) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.Email == email {
			return copyUser(u), nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStorage) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return copyUser(u), nil
}

func (s *MemoryStorage) UpdateUser(ctx context.Context, id int64, patch models.EditUserRequest) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return nil, ErrNotFound
	}

	if patch.Email != nil && *patch.Email != u.Email {
		for _, other := range s.users {
			if other.ID != id && other.Email == *patch.Email {
				return nil, ErrDuplicateEmail
			}
		}
		u.Email = *patch.Email
	}
	if patch.FirstName != nil {
		u.FirstName = stringPtr(*patch.FirstName)
	}
	if patch.LastName != nil {
		u.LastName = stringPtr(*patch.LastName)
	}
	u.UpdatedAt = s.now()

	return copyUser(u), nil
}

func (s *MemoryStorage) ListBookmarks(ctx context.Context, userID int64) ([]models.Bookmark, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Bookmark, 0)
	for _, b := range s.bookmarks {
		if b.UserID == userID {
			out = append(out, *copyBookmark(b))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	return out, nil
}

func (s *MemoryStorage) GetBookmark(ctx context.Context, id int64) (*models.Bookmark, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.bookmarks[id]
	if !ok {
		return nil, ErrNotFound
	}
	return copyBookmark(b), nil
}

func (s *MemoryStorage) CreateBookmark(ctx context.Context, userID int64, req models.CreateBookmarkRequest) (*models.Bookmark, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[userID]; !ok {
		return nil, ErrNotFound
	}

	s.nextBookmarkID++
	now := s.now()
	b := &models.Bookmark{
		ID:        s.nextBookmarkID,
		UserID:    userID,
		Title:     req.Title,
		Link:      req.Link,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if req.Description != nil {
		b.Description = stringPtr(*req.Description)
	}
	s.bookmarks[b.ID] = b

	return copyBookmark(b), nil
}

func (s *MemoryStorage) UpdateBookmark(ctx context.Context, id, userID int64, patch models.EditBookmarkRequest) (*models.Bookmark, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.bookmarks[id]
	if !ok || b.UserID != userID {
		return nil, ErrNotFound
	}

	if patch.Title != nil {
		b.Title = *patch.Title
	}
	if patch.Description != nil {
		b.Description = stringPtr(*patch.Description)
	}
	if patch.Link != nil {
		b.Link = *patch.Link
	}
	b.UpdatedAt = s.now()

	return copyBookmark(b), nil
}

func (s *MemoryStorage) DeleteBookmark(ctx context.Context, id, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.bookmarks[id]
	if !ok || b.UserID != userID {
		return ErrNotFound
	}
	delete(s.bookmarks, id)
	return nil
}

func (s *MemoryStorage) CreateCar(ctx context.Context, attrs map[string]interface{}) (*models.Car, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextCarID++
	now := s.now()
	c := &models.Car{
		ID:         s.nextCarID,
		Attributes: models.StripReserved(attrs),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	s.cars[c.ID] = c

	return copyCar(c), nil
}

func (s *MemoryStorage) ListCars(ctx context.Context, skip, limit int) ([]models.Car, int64, error) {
	if skip < 0 || limit < 1 {
		return nil, 0, fmt.Errorf("%w: skip=%d limit=%d", ErrInvalidWindow, skip, limit)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]int64, 0, len(s.cars))
	for id := range s.cars {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	total := int64(len(ids))
	out := make([]models.Car, 0, limit)
	for i := skip; i < len(ids) && len(out) < limit; i++ {
		out = append(out, *copyCar(s.cars[ids[i]]))
	}

	return out, total, nil
}

func (s *MemoryStorage) GetCar(ctx context.Context, id int64) (*models.Car, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.cars[id]
	if !ok {
		return nil, ErrNotFound
	}
	return copyCar(c), nil
}

func stringPtr(s string) *string {
	return &s
}

func copyUser(u *models.User) *models.User {
	cp := *u
	if u.FirstName != nil {
		cp.FirstName = stringPtr(*u.FirstName)
	}
	if u.LastName != nil {
		cp.LastName = stringPtr(*u.LastName)
	}
	return &cp
}

func copyBookmark(b *models.Bookmark) *models.Bookmark {
	cp := *b
	if b.Description != nil {
		cp.Description = stringPtr(*b.Description)
	}
	return &cp
}

func copyCar(c *models.Car) *models.Car {
	cp := *c
	cp.Attributes = models.StripReserved(c.Attributes)
	return &cp
}
