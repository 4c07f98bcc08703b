package validation

import (
	"math"
	"strings"
	"testing"

	"github.com/Varun5711/bookmarkd/internal/models"
)

func strPtr(s string) *string { return &s }

func TestValidateEmail_Valid(t *testing.T) {
	valid := []string{
		"user@example.com",
		"first.last@sub.example.org",
		"user+tag@example.io",
		"a_b-c@example-host.com",
	}

	for _, email := range valid {
		if err := ValidateEmail(email); err != nil {
			t.Errorf("expected '%s' to be valid, got error: %v", email, err)
		}
	}
}

func TestValidateEmail_Invalid(t *testing.T) {
	invalid := []string{
		"plainaddress",
		"@example.com",
		"user@",
		"user@localhost",
		"user@exa mple.com",
		"user@@example.com",
		strings.Repeat("a", 250) + "@example.com",
	}

	for _, email := range invalid {
		if err := ValidateEmail(email); err != ErrEmailInvalid {
			t.Errorf("expected ErrEmailInvalid for '%s', got: %v", email, err)
		}
	}
}

func TestValidateEmail_Empty(t *testing.T) {
	for _, email := range []string{"", "   "} {
		if err := ValidateEmail(email); err != ErrEmailRequired {
			t.Errorf("expected ErrEmailRequired for %q, got: %v", email, err)
		}
	}
}

func TestValidateCredentials(t *testing.T) {
	if err := ValidateCredentials(models.Credentials{Email: "a@example.com", Password: "pw"}); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := ValidateCredentials(models.Credentials{Email: "a@example.com"}); err != ErrPasswordRequired {
		t.Errorf("expected ErrPasswordRequired, got: %v", err)
	}
	if err := ValidateCredentials(models.Credentials{Password: "pw"}); err != ErrEmailRequired {
		t.Errorf("expected ErrEmailRequired, got: %v", err)
	}
}

func TestValidateEditUser(t *testing.T) {
	if err := ValidateEditUser(models.EditUserRequest{FirstName: strPtr("")}); err != nil {
		t.Errorf("names are free text, got: %v", err)
	}
	if err := ValidateEditUser(models.EditUserRequest{Email: strPtr("nope")}); err != ErrEmailInvalid {
		t.Errorf("expected ErrEmailInvalid, got: %v", err)
	}
}

func TestValidateCreateBookmark(t *testing.T) {
	tests := []struct {
		name string
		req  models.CreateBookmarkRequest
		want error
	}{
		{"valid", models.CreateBookmarkRequest{Title: "Go", Link: "https://go.dev"}, nil},
		{"missing title", models.CreateBookmarkRequest{Link: "https://go.dev"}, ErrTitleRequired},
		{"blank title", models.CreateBookmarkRequest{Title: "  ", Link: "https://go.dev"}, ErrTitleRequired},
		{"missing link", models.CreateBookmarkRequest{Title: "Go"}, ErrLinkRequired},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidateCreateBookmark(tt.req); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestValidateEditBookmark(t *testing.T) {
	if err := ValidateEditBookmark(models.EditBookmarkRequest{}); err != nil {
		t.Errorf("empty patch should be valid, got: %v", err)
	}
	if err := ValidateEditBookmark(models.EditBookmarkRequest{Description: strPtr("")}); err != nil {
		t.Errorf("empty description should be valid, got: %v", err)
	}
	if err := ValidateEditBookmark(models.EditBookmarkRequest{Title: strPtr("")}); err != ErrTitleRequired {
		t.Errorf("expected ErrTitleRequired, got: %v", err)
	}
	if err := ValidateEditBookmark(models.EditBookmarkRequest{Link: strPtr(" ")}); err != ErrLinkRequired {
		t.Errorf("expected ErrLinkRequired, got: %v", err)
	}
}

func TestValidatePagination(t *testing.T) {
	if err := ValidatePagination(models.Pagination{Page: 1, PerPage: 10}); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := ValidatePagination(models.Pagination{Page: 0, PerPage: 10}); err != ErrPageInvalid {
		t.Errorf("expected ErrPageInvalid, got: %v", err)
	}
	if err := ValidatePagination(models.Pagination{Page: 1, PerPage: 0}); err != ErrPerPageInvalid {
		t.Errorf("expected ErrPerPageInvalid, got: %v", err)
	}
	if err := ValidatePagination(models.Pagination{Page: 1, PerPage: models.MaxPerPage + 1}); err != ErrPerPageInvalid {
		t.Errorf("expected ErrPerPageInvalid, got: %v", err)
	}
	if err := ValidatePagination(models.Pagination{Page: math.MaxInt/2 + 2, PerPage: 2}); err != ErrPageOutOfRange {
		t.Errorf("expected ErrPageOutOfRange, got: %v", err)
	}
	if err := ValidatePagination(models.Pagination{Page: math.MaxInt, PerPage: 1}); err != nil {
		t.Errorf("largest representable page should be valid, got: %v", err)
	}
}

func TestValidateCarAttributes(t *testing.T) {
	if err := ValidateCarAttributes(map[string]interface{}{}); err != nil {
		t.Errorf("empty object should be valid, got: %v", err)
	}
	if err := ValidateCarAttributes(nil); err != ErrCarPayload {
		t.Errorf("expected ErrCarPayload, got: %v", err)
	}
}
