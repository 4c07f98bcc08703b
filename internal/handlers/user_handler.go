package handlers

import (
	"net/http"

	"github.com/Varun5711/bookmarkd/internal/logger"
	"github.com/Varun5711/bookmarkd/internal/models"
	"github.com/Varun5711/bookmarkd/internal/service"
)

type UserHandler struct {
	users *service.UserService
	log   *logger.Logger
}

func NewUserHandler(users *service.UserService, log *logger.Logger) *UserHandler {
	return &UserHandler{
		users: users,
		log:   log,
	}
}

func (h *UserHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUser(r)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	user, err := h.users.GetSelf(r.Context(), userID)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	respondJSON(w, http.StatusOK, user)
}

func (h *UserHandler) EditMe(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUser(r)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	var req models.EditUserRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, r, h.log, err)
		return
	}

	user, err := h.users.EditSelf(r.Context(), userID, req)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	respondJSON(w, http.StatusOK, user)
}
