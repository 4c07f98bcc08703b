package handlers

import (
	"net/http"
	"strconv"

	"github.com/Varun5711/bookmarkd/internal/apperror"
	"github.com/Varun5711/bookmarkd/internal/logger"
	"github.com/Varun5711/bookmarkd/internal/models"
	"github.com/Varun5711/bookmarkd/internal/qrcode"
	"github.com/Varun5711/bookmarkd/internal/service"
)

type BookmarkHandler struct {
	bookmarks *service.BookmarkService
	log       *logger.Logger
}

func NewBookmarkHandler(bookmarks *service.BookmarkService, log *logger.Logger) *BookmarkHandler {
	return &BookmarkHandler{
		bookmarks: bookmarks,
		log:       log,
	}
}

func (h *BookmarkHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUser(r)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	bookmarks, err := h.bookmarks.List(r.Context(), userID)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	respondJSON(w, http.StatusOK, bookmarks)
}

func (h *BookmarkHandler) Get(w http.ResponseWriter, r *http.Request) {
	b, err := h.owned(r)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	respondJSON(w, http.StatusOK, b)
}

func (h *BookmarkHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUser(r)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	var req models.CreateBookmarkRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, r, h.log, err)
		return
	}

	b, err := h.bookmarks.Create(r.Context(), userID, req)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	respondJSON(w, http.StatusCreated, b)
}

func (h *BookmarkHandler) Edit(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUser(r)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	var req models.EditBookmarkRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, r, h.log, err)
		return
	}

	b, err := h.bookmarks.Edit(r.Context(), userID, id, req)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	respondJSON(w, http.StatusOK, b)
}

func (h *BookmarkHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUser(r)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	if err := h.bookmarks.Delete(r.Context(), userID, id); err != nil {
		respondError(w, r, h.log, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// QRCode renders the bookmark's link as a PNG. ?size= sets the edge in pixels.
func (h *BookmarkHandler) QRCode(w http.ResponseWriter, r *http.Request) {
	b, err := h.owned(r)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	size, err := queryInt(r, "size", qrcode.DefaultSize)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	if size < 64 || size > 1024 {
		respondError(w, r, h.log, apperror.Validation("size must be between 64 and 1024"))
		return
	}

	png, err := qrcode.PNG(b.Link, size)
	if err != nil {
		respondError(w, r, h.log, apperror.Internal(err))
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(len(png)))
	w.Header().Set("Cache-Control", "private, max-age=300")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}

func (h *BookmarkHandler) owned(r *http.Request) (*models.Bookmark, error) {
	userID, err := currentUser(r)
	if err != nil {
		return nil, err
	}
	id, err := pathID(r, "id")
	if err != nil {
		return nil, err
	}
	return h.bookmarks.GetByID(r.Context(), userID, id)
}
