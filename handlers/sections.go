package handlers

import (
	"net/http"

	"prepboard/middleware"
	"prepboard/repository"

	"github.com/go-chi/chi/v5"
)

type SectionHandler struct {
	sections  repository.SectionRepository
	templates repository.TemplateRepository
}

func NewSectionHandler(sections repository.SectionRepository, templates repository.TemplateRepository) *SectionHandler {
	return &SectionHandler{sections: sections, templates: templates}
}

// List returns the kitchen's sections valid on the requested date, each with
// its templates valid on that date nested in.
func (h *SectionHandler) List(w http.ResponseWriter, r *http.Request) {
	kitchen := middleware.GetKitchenFromContext(r.Context())
	date := r.URL.Query().Get("date")

	sections, err := h.sections.ListByKitchenAndDate(r.Context(), kitchen.ID, date)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sections)
}

type sectionRequest struct {
	Name      string `json:"name"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

func (h *SectionHandler) Create(w http.ResponseWriter, r *http.Request) {
	kitchen := middleware.GetKitchenFromContext(r.Context())
	var req sectionRequest
	if !decodeBody(w, r, &req) {
		return
	}

	section, err := h.sections.Create(r.Context(), kitchen.ID, req.Name, req.StartDate, req.EndDate)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, section)
}

func (h *SectionHandler) Update(w http.ResponseWriter, r *http.Request) {
	kitchen := middleware.GetKitchenFromContext(r.Context())
	var req sectionRequest
	if !decodeBody(w, r, &req) {
		return
	}

	section, err := h.sections.Update(r.Context(), kitchen.ID, chi.URLParam(r, "id"), req.Name, req.EndDate)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, section)
}

func (h *SectionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	kitchen := middleware.GetKitchenFromContext(r.Context())
	if err := h.sections.DeleteWithCheck(r.Context(), kitchen.ID, chi.URLParam(r, "id")); err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

type templateRequest struct {
	Name      string `json:"name"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// CreateTemplate inserts a template under the section and backfills one task
// instance per day of its range. An omitted range defaults to the section's.
func (h *SectionHandler) CreateTemplate(w http.ResponseWriter, r *http.Request) {
	kitchen := middleware.GetKitchenFromContext(r.Context())
	var req templateRequest
	if !decodeBody(w, r, &req) {
		return
	}

	section, err := h.sections.FindByID(r.Context(), kitchen.ID, chi.URLParam(r, "id"))
	if err != nil {
		writeStoreError(w, err)
		return
	}

	startDate, endDate := req.StartDate, req.EndDate
	if startDate == "" {
		startDate = section.StartDate
	}
	if endDate == "" {
		endDate = section.EndDate
	}

	template, err := h.templates.Create(r.Context(), section.ID, req.Name, startDate, endDate)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, template)
}

// UpdateTemplate overwrites a template's name and end date; like sections,
// the start date is immutable after creation.
func (h *SectionHandler) UpdateTemplate(w http.ResponseWriter, r *http.Request) {
	kitchen := middleware.GetKitchenFromContext(r.Context())
	var req templateRequest
	if !decodeBody(w, r, &req) {
		return
	}

	template, err := h.templates.Update(r.Context(), kitchen.ID, chi.URLParam(r, "id"), req.Name, req.EndDate)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, template)
}

func (h *SectionHandler) ListTemplates(w http.ResponseWriter, r *http.Request) {
	kitchen := middleware.GetKitchenFromContext(r.Context())
	section, err := h.sections.FindByID(r.Context(), kitchen.ID, chi.URLParam(r, "id"))
	if err != nil {
		writeStoreError(w, err)
		return
	}

	date := r.URL.Query().Get("date")
	templates, err := h.templates.ListBySectionAndDate(r.Context(), section.ID, date)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, templates)
}
