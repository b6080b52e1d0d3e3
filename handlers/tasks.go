package handlers

import (
	"net/http"

	"prepboard/middleware"
	"prepboard/models"
	"prepboard/repository"
	"prepboard/services"

	"github.com/go-chi/chi/v5"
)

type TaskHandler struct {
	materializer *services.Materializer
	lifecycle    *services.Lifecycle
	instances    repository.InstanceRepository
}

func NewTaskHandler(materializer *services.Materializer, lifecycle *services.Lifecycle, instances repository.InstanceRepository) *TaskHandler {
	return &TaskHandler{
		materializer: materializer,
		lifecycle:    lifecycle,
		instances:    instances,
	}
}

// DayView returns the section's task instances for the requested date.
func (h *TaskHandler) DayView(w http.ResponseWriter, r *http.Request) {
	kitchen := middleware.GetKitchenFromContext(r.Context())
	date := r.URL.Query().Get("date")
	tasks, err := h.materializer.DayTasks(r.Context(), kitchen.ID, chi.URLParam(r, "id"), date)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if tasks == nil {
		tasks = []services.DayTask{}
	}
	writeJSON(w, http.StatusOK, tasks)
}

// BackfillDay materializes missing instances for the section's templates on
// the requested date.
func (h *TaskHandler) BackfillDay(w http.ResponseWriter, r *http.Request) {
	kitchen := middleware.GetKitchenFromContext(r.Context())
	date := r.URL.Query().Get("date")
	tasks, err := h.materializer.BackfillDay(r.Context(), kitchen.ID, chi.URLParam(r, "id"), date)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if tasks == nil {
		tasks = []services.DayTask{}
	}
	writeJSON(w, http.StatusOK, tasks)
}

func (h *TaskHandler) Get(w http.ResponseWriter, r *http.Request) {
	kitchen := middleware.GetKitchenFromContext(r.Context())
	instance, err := h.instances.FindByID(r.Context(), kitchen.ID, chi.URLParam(r, "id"))
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, instance)
}

type statusRequest struct {
	Status models.TaskStatus `json:"status"`
}

func (h *TaskHandler) SetStatus(w http.ResponseWriter, r *http.Request) {
	kitchen := middleware.GetKitchenFromContext(r.Context())
	var req statusRequest
	if !decodeBody(w, r, &req) {
		return
	}

	instance, err := h.lifecycle.SetStatus(r.Context(), kitchen.ID, chi.URLParam(r, "id"), req.Status)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, instance)
}

type assignmentRequest struct {
	ProfileID string `json:"profile_id"`
}

func (h *TaskHandler) ToggleAssignment(w http.ResponseWriter, r *http.Request) {
	kitchen := middleware.GetKitchenFromContext(r.Context())
	var req assignmentRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.ProfileID == "" {
		writeError(w, http.StatusBadRequest, "profile_id is required")
		return
	}

	instance, err := h.lifecycle.ToggleAssignment(r.Context(), kitchen.ID, chi.URLParam(r, "id"), req.ProfileID)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, instance)
}
