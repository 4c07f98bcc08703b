package storage

import (
	"context"
	"fmt"

	"github.com/Varun5711/bookmarkd/internal/models"
	"github.com/jackc/pgx/v5"
)

const bookmarkColumns = `id, user_id, title, description, link, created_at, updated_at`

func scanBookmark(row pgx.Row) (*models.Bookmark, error) {
	var b models.Bookmark
	err := row.Scan(
		&b.ID,
		&b.UserID,
		&b.Title,
		&b.Description,
		&b.Link,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// Bookmark reads go to the primary. The ownership check before an edit or a
// delete has to see rows the same user created a moment ago.
func (s *PostgresStorage) ListBookmarks(ctx context.Context, userID int64) ([]models.Bookmark, error) {
	query := `SELECT ` + bookmarkColumns + ` FROM bookmarks WHERE user_id = $1 ORDER BY id`

	rows, err := s.db.Write().Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookmarks: %w", err)
	}
	defer rows.Close()

	bookmarks := make([]models.Bookmark, 0)
	for rows.Next() {
		b, err := scanBookmark(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan bookmark: %w", err)
		}
		bookmarks = append(bookmarks, *b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating bookmarks: %w", err)
	}

	return bookmarks, nil
}

func (s *PostgresStorage) GetBookmark(ctx context.Context, id int64) (*models.Bookmark, error) {
	query := `SELECT ` + bookmarkColumns + ` FROM bookmarks WHERE id = $1`

	b, err := scanBookmark(s.db.Write().QueryRow(ctx, query, id))
	if isNoRows(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get bookmark: %w", err)
	}

	return b, nil
}

func (s *PostgresStorage) CreateBookmark(ctx context.Context, userID int64, req models.CreateBookmarkRequest) (*models.Bookmark, error) {
	query := `
		INSERT INTO bookmarks (user_id, title, description, link)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + bookmarkColumns

	b, err := scanBookmark(s.db.Write().QueryRow(ctx, query, userID, req.Title, req.Description, req.Link))
	if err != nil {
		return nil, fmt.Errorf("failed to create bookmark: %w", err)
	}

	return b, nil
}

func (s *PostgresStorage) UpdateBookmark(ctx context.Context, id, userID int64, patch models.EditBookmarkRequest) (*models.Bookmark, error) {
	query := `
		UPDATE bookmarks
		SET title = COALESCE($3, title),
		    description = COALESCE($4, description),
		    link = COALESCE($5, link),
		    updated_at = NOW()
		WHERE id = $1 AND user_id = $2
		RETURNING ` + bookmarkColumns

	b, err := scanBookmark(s.db.Write().QueryRow(ctx, query, id, userID, patch.Title, patch.Description, patch.Link))
	if isNoRows(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update bookmark: %w", err)
	}

	return b, nil
}

func (s *PostgresStorage) DeleteBookmark(ctx context.Context, id, userID int64) error {
	tag, err := s.db.Write().Exec(ctx, `DELETE FROM bookmarks WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete bookmark: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}
