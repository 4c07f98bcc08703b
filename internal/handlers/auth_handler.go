package handlers

import (
	"net/http"

	"github.com/Varun5711/bookmarkd/internal/logger"
	"github.com/Varun5711/bookmarkd/internal/models"
	"github.com/Varun5711/bookmarkd/internal/service"
)

type AuthHandler struct {
	auth *service.AuthService
	log  *logger.Logger
}

func NewAuthHandler(auth *service.AuthService, log *logger.Logger) *AuthHandler {
	return &AuthHandler{
		auth: auth,
		log:  log,
	}
}

func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req models.Credentials
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, r, h.log, err)
		return
	}

	user, err := h.auth.Signup(r.Context(), req)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	h.log.Info("User %d signed up", user.ID)
	respondJSON(w, http.StatusCreated, user)
}

func (h *AuthHandler) Signin(w http.ResponseWriter, r *http.Request) {
	var req models.Credentials
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, r, h.log, err)
		return
	}

	resp, err := h.auth.Signin(r.Context(), req)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	respondJSON(w, http.StatusOK, resp)
}
