package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/Varun5711/bookmarkd/internal/apperror"
	"github.com/Varun5711/bookmarkd/internal/logger"
	"github.com/Varun5711/bookmarkd/internal/middleware"
	"github.com/Varun5711/bookmarkd/internal/models"
)

const maxBodyBytes = 1 << 20

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError maps err to its HTTP status. Causes of internal errors are
// logged, never returned.
func respondError(w http.ResponseWriter, r *http.Request, log *logger.Logger, err error) {
	kind := apperror.KindOf(err)
	if kind == apperror.KindInternal {
		log.Error("%s %s [%s]: %v", r.Method, r.URL.Path, middleware.GetRequestID(r.Context()), err)
	}

	respondJSON(w, apperror.HTTPStatus(kind), models.ErrorResponse{
		Error:   kind.String(),
		Message: apperror.MessageOf(err),
	})
}

// decodeJSON reads a single JSON value into dst. Unknown fields are ignored;
// wrong types and malformed bodies are validation errors.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		var syntaxErr *json.SyntaxError
		var typeErr *json.UnmarshalTypeError
		var maxErr *http.MaxBytesError

		switch {
		case errors.Is(err, io.EOF):
			return apperror.Validation("request body is required")
		case errors.As(err, &syntaxErr), errors.Is(err, io.ErrUnexpectedEOF):
			return apperror.Validation("request body is not valid JSON")
		case errors.As(err, &typeErr):
			if typeErr.Field != "" {
				return apperror.Validationf("%s has the wrong type", typeErr.Field)
			}
			return apperror.Validation("request body has the wrong type")
		case errors.As(err, &maxErr):
			return apperror.Validationf("request body must not exceed %d bytes", maxErr.Limit)
		default:
			return apperror.Validation(err.Error())
		}
	}

	if dec.More() {
		return apperror.Validation("request body must contain a single JSON value")
	}
	return nil
}

func pathID(r *http.Request, name string) (int64, error) {
	raw := r.PathValue(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, apperror.Validation(fmt.Sprintf("%s must be a positive integer", name))
	}
	return id, nil
}

func queryInt(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperror.Validationf("%s must be an integer", name)
	}
	return v, nil
}

// currentUser returns the id placed in the context by the auth middleware.
func currentUser(r *http.Request) (int64, error) {
	id, ok := middleware.GetUserID(r.Context())
	if !ok {
		return 0, apperror.Auth("Unauthorized")
	}
	return id, nil
}
