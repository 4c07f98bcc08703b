package handlers

import (
	"net/http"

	"github.com/Varun5711/bookmarkd/internal/logger"
	"github.com/Varun5711/bookmarkd/internal/models"
	"github.com/Varun5711/bookmarkd/internal/service"
)

type CarHandler struct {
	cars *service.CarService
	log  *logger.Logger
}

func NewCarHandler(cars *service.CarService, log *logger.Logger) *CarHandler {
	return &CarHandler{
		cars: cars,
		log:  log,
	}
}

func (h *CarHandler) Create(w http.ResponseWriter, r *http.Request) {
	var attrs map[string]interface{}
	if err := decodeJSON(w, r, &attrs); err != nil {
		respondError(w, r, h.log, err)
		return
	}

	car, err := h.cars.Create(r.Context(), attrs)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	respondJSON(w, http.StatusCreated, car)
}

func (h *CarHandler) List(w http.ResponseWriter, r *http.Request) {
	page, err := queryInt(r, "page", models.DefaultPage)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	perPage, err := queryInt(r, "perPage", models.DefaultPerPage)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	result, err := h.cars.List(r.Context(), models.Pagination{Page: page, PerPage: perPage})
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

func (h *CarHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	car, err := h.cars.GetByID(r.Context(), id)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	respondJSON(w, http.StatusOK, car)
}

func (h *CarHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	var attrs map[string]interface{}
	if err := decodeJSON(w, r, &attrs); err != nil {
		respondError(w, r, h.log, err)
		return
	}

	car, err := h.cars.Update(r.Context(), id, attrs)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	respondJSON(w, http.StatusOK, car)
}

func (h *CarHandler) Remove(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	if err := h.cars.Remove(r.Context(), id); err != nil {
		respondError(w, r, h.log, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
