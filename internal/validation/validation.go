package validation

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/Varun5711/bookmarkd/internal/models"
)

var (
	ErrEmailRequired    = errors.New("email should not be empty")
	ErrEmailInvalid     = errors.New("email must be an email")
	ErrPasswordRequired = errors.New("password should not be empty")
	ErrTitleRequired    = errors.New("title should not be empty")
	ErrLinkRequired     = errors.New("link should not be empty")
	ErrPageInvalid      = errors.New("page must be a positive integer")
	ErrPageOutOfRange   = errors.New("page is out of range")
	ErrPerPageInvalid   = fmt.Errorf("perPage must be between 1 and %d", models.MaxPerPage)
	ErrCarPayload       = errors.New("car payload must be a JSON object")
)

const maxEmailLength = 254

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9.!#$%&'*+/=?^_` + "`" + `{|}~-]+@[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?(?:\.[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?)+$`)

func ValidateEmail(email string) error {
	if strings.TrimSpace(email) == "" {
		return ErrEmailRequired
	}
	if len(email) > maxEmailLength || !emailRegex.MatchString(email) {
		return ErrEmailInvalid
	}
	return nil
}

func ValidateCredentials(c models.Credentials) error {
	if err := ValidateEmail(c.Email); err != nil {
		return err
	}
	if c.Password == "" {
		return ErrPasswordRequired
	}
	return nil
}

func ValidateEditUser(req models.EditUserRequest) error {
	if req.Email != nil {
		return ValidateEmail(*req.Email)
	}
	return nil
}

func ValidateCreateBookmark(req models.CreateBookmarkRequest) error {
	if strings.TrimSpace(req.Title) == "" {
		return ErrTitleRequired
	}
	if strings.TrimSpace(req.Link) == "" {
		return ErrLinkRequired
	}
	return nil
}

func ValidateEditBookmark(req models.EditBookmarkRequest) error {
	if req.Title != nil && strings.TrimSpace(*req.Title) == "" {
		return ErrTitleRequired
	}
	if req.Link != nil && strings.TrimSpace(*req.Link) == "" {
		return ErrLinkRequired
	}
	return nil
}

func ValidatePagination(p models.Pagination) error {
	if p.Page < 1 {
		return ErrPageInvalid
	}
	if p.PerPage < 1 || p.PerPage > models.MaxPerPage {
		return ErrPerPageInvalid
	}
	if p.Page-1 > math.MaxInt/p.PerPage {
		return ErrPageOutOfRange
	}
	return nil
}

func ValidateCarAttributes(attrs map[string]interface{}) error {
	if attrs == nil {
		return ErrCarPayload
	}
	return nil
}
