package handlers

import (
	"net/http"

	"prepboard/middleware"
	"prepboard/models"
	"prepboard/repository"

	"github.com/go-chi/chi/v5"
)

type ProfileHandler struct {
	profiles repository.ProfileRepository
}

func NewProfileHandler(profiles repository.ProfileRepository) *ProfileHandler {
	return &ProfileHandler{profiles: profiles}
}

func (h *ProfileHandler) List(w http.ResponseWriter, r *http.Request) {
	kitchen := middleware.GetKitchenFromContext(r.Context())
	profiles, err := h.profiles.ListByKitchen(r.Context(), kitchen.ID)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, profiles)
}

type profileRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

func (h *ProfileHandler) Create(w http.ResponseWriter, r *http.Request) {
	kitchen := middleware.GetKitchenFromContext(r.Context())
	var req profileRequest
	if !decodeBody(w, r, &req) {
		return
	}

	profile, err := h.profiles.Create(r.Context(), models.Profile{
		KitchenID: kitchen.ID,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, profile)
}

func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	kitchen := middleware.GetKitchenFromContext(r.Context())
	var req profileRequest
	if !decodeBody(w, r, &req) {
		return
	}

	profile, err := h.profiles.Update(r.Context(), kitchen.ID, chi.URLParam(r, "id"), req.FirstName, req.LastName)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

func (h *ProfileHandler) Delete(w http.ResponseWriter, r *http.Request) {
	kitchen := middleware.GetKitchenFromContext(r.Context())
	if err := h.profiles.Delete(r.Context(), kitchen.ID, chi.URLParam(r, "id")); err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
