package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"prepboard/config"
	"prepboard/handlers"
	"prepboard/middleware"
	"prepboard/repository"
	"prepboard/services"
	"prepboard/testutil"

	"github.com/go-chi/chi/v5"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	db := testutil.NewTestDatabase(t)
	cfg := config.Load()

	userRepo := repository.NewUserRepository(db)
	kitchenRepo := repository.NewKitchenRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	sectionRepo := repository.NewSectionRepository(db)
	instanceRepo := repository.NewInstanceRepository(db)
	templateRepo := repository.NewTemplateRepository(db, instanceRepo)

	materializer := services.NewMaterializer(sectionRepo, templateRepo, instanceRepo)
	lifecycle := services.NewLifecycle(instanceRepo)
	auth := middleware.NewAuth(cfg.JWTSecret, userRepo, kitchenRepo)

	authHandler := handlers.NewAuthHandler(cfg, auth, userRepo, kitchenRepo)
	profileHandler := handlers.NewProfileHandler(profileRepo)
	sectionHandler := handlers.NewSectionHandler(sectionRepo, templateRepo)
	taskHandler := handlers.NewTaskHandler(materializer, lifecycle, instanceRepo)

	router := chi.NewRouter()
	router.Post("/register", authHandler.Register)
	router.Post("/login", authHandler.Login)
	router.Route("/api", func(r chi.Router) {
		r.Use(auth.Middleware)
		r.Get("/kitchen", authHandler.Kitchen)
		r.Get("/profiles", profileHandler.List)
		r.Post("/profiles", profileHandler.Create)
		r.Put("/profiles/{id}", profileHandler.Update)
		r.Delete("/profiles/{id}", profileHandler.Delete)
		r.Get("/sections", sectionHandler.List)
		r.Post("/sections", sectionHandler.Create)
		r.Put("/sections/{id}", sectionHandler.Update)
		r.Delete("/sections/{id}", sectionHandler.Delete)
		r.Post("/sections/{id}/templates", sectionHandler.CreateTemplate)
		r.Get("/sections/{id}/tasks", taskHandler.DayView)
		r.Get("/tasks/{id}", taskHandler.Get)
		r.Post("/tasks/{id}/status", taskHandler.SetStatus)
		r.Post("/tasks/{id}/assignment", taskHandler.ToggleAssignment)
	})
	return router
}

func doRequest(t *testing.T, router http.Handler, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("encoding request: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func decodeResponse(t *testing.T, recorder *httptest.ResponseRecorder, dst interface{}) {
	t.Helper()
	if err := json.Unmarshal(recorder.Body.Bytes(), dst); err != nil {
		t.Fatalf("decoding response %q: %v", recorder.Body.String(), err)
	}
}

func registerTestAccount(t *testing.T, router http.Handler) string {
	t.Helper()
	return registerAccount(t, router, "chef", "Test Kitchen")
}

func registerAccount(t *testing.T, router http.Handler, username, kitchenName string) string {
	t.Helper()
	recorder := doRequest(t, router, http.MethodPost, "/register", "", map[string]string{
		"username":     username,
		"password":     "secret",
		"kitchen_name": kitchenName,
	})
	if recorder.Code != http.StatusCreated {
		t.Fatalf("register: expected 201, got %d: %s", recorder.Code, recorder.Body.String())
	}
	var resp struct {
		Token string `json:"token"`
	}
	decodeResponse(t, recorder, &resp)
	if resp.Token == "" {
		t.Fatal("expected a token")
	}
	return resp.Token
}

func TestAPI_RequiresAuth(t *testing.T) {
	router := newTestRouter(t)
	recorder := doRequest(t, router, http.MethodGet, "/api/sections?date=2024-01-15", "", nil)
	if recorder.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 without token, got %d", recorder.Code)
	}
}

func TestAPI_LoginFlow(t *testing.T) {
	router := newTestRouter(t)
	registerTestAccount(t, router)

	recorder := doRequest(t, router, http.MethodPost, "/login", "", map[string]string{
		"username": "chef",
		"password": "secret",
	})
	if recorder.Code != http.StatusOK {
		t.Fatalf("login: expected 200, got %d", recorder.Code)
	}

	recorder = doRequest(t, router, http.MethodPost, "/login", "", map[string]string{
		"username": "chef",
		"password": "wrong",
	})
	if recorder.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 for bad password, got %d", recorder.Code)
	}
}

func TestAPI_SectionTaskFlow(t *testing.T) {
	router := newTestRouter(t)
	token := registerTestAccount(t, router)

	// Create a worker profile.
	recorder := doRequest(t, router, http.MethodPost, "/api/profiles", token, map[string]string{
		"first_name": "Ana",
		"last_name":  "Reyes",
	})
	if recorder.Code != http.StatusCreated {
		t.Fatalf("create profile: expected 201, got %d: %s", recorder.Code, recorder.Body.String())
	}
	var profile struct {
		ID string `json:"id"`
	}
	decodeResponse(t, recorder, &profile)

	// Create a section and a template; the template backfills the month.
	recorder = doRequest(t, router, http.MethodPost, "/api/sections", token, map[string]string{
		"name":       "Mains",
		"start_date": "2024-01-01",
		"end_date":   "2024-01-31",
	})
	if recorder.Code != http.StatusCreated {
		t.Fatalf("create section: expected 201, got %d: %s", recorder.Code, recorder.Body.String())
	}
	var section struct {
		ID string `json:"id"`
	}
	decodeResponse(t, recorder, &section)

	recorder = doRequest(t, router, http.MethodPost, "/api/sections/"+section.ID+"/templates", token, map[string]string{
		"name": "Boil rice",
	})
	if recorder.Code != http.StatusCreated {
		t.Fatalf("create template: expected 201, got %d: %s", recorder.Code, recorder.Body.String())
	}

	// The day view shows the materialized instance.
	recorder = doRequest(t, router, http.MethodGet, "/api/sections/"+section.ID+"/tasks?date=2024-01-15", token, nil)
	if recorder.Code != http.StatusOK {
		t.Fatalf("day view: expected 200, got %d: %s", recorder.Code, recorder.Body.String())
	}
	var tasks []struct {
		ID     string   `json:"id"`
		Name   string   `json:"name"`
		Status string   `json:"status"`
		Atodo  []string `json:"assigned_to"`
	}
	decodeResponse(t, recorder, &tasks)
	if len(tasks) != 1 {
		t.Fatalf("expected 1 task, got %d", len(tasks))
	}
	if tasks[0].Name != "Boil rice" || tasks[0].Status != "active" {
		t.Fatalf("unexpected task: %+v", tasks[0])
	}

	// Assign, complete, unassign.
	recorder = doRequest(t, router, http.MethodPost, "/api/tasks/"+tasks[0].ID+"/assignment", token, map[string]string{
		"profile_id": profile.ID,
	})
	if recorder.Code != http.StatusOK {
		t.Fatalf("toggle assignment: expected 200, got %d: %s", recorder.Code, recorder.Body.String())
	}
	var instance struct {
		Status     string   `json:"status"`
		AssignedTo []string `json:"assigned_to"`
	}
	decodeResponse(t, recorder, &instance)
	if instance.Status != "active" || len(instance.AssignedTo) != 1 {
		t.Fatalf("expected active with one assignee, got %+v", instance)
	}

	recorder = doRequest(t, router, http.MethodPost, "/api/tasks/"+tasks[0].ID+"/status", token, map[string]string{
		"status": "done",
	})
	if recorder.Code != http.StatusOK {
		t.Fatalf("set status: expected 200, got %d", recorder.Code)
	}
	decodeResponse(t, recorder, &instance)
	if instance.Status != "done" {
		t.Fatalf("expected done, got %q", instance.Status)
	}

	recorder = doRequest(t, router, http.MethodPost, "/api/tasks/"+tasks[0].ID+"/assignment", token, map[string]string{
		"profile_id": profile.ID,
	})
	if recorder.Code != http.StatusOK {
		t.Fatalf("toggle assignment: expected 200, got %d", recorder.Code)
	}
	decodeResponse(t, recorder, &instance)
	if instance.Status != "inactive" || len(instance.AssignedTo) != 0 {
		t.Fatalf("expected inactive and unassigned, got %+v", instance)
	}

	// The delete guard refuses while the template exists.
	recorder = doRequest(t, router, http.MethodDelete, "/api/sections/"+section.ID, token, nil)
	if recorder.Code != http.StatusConflict {
		t.Fatalf("expected 409 for guarded delete, got %d", recorder.Code)
	}
	var guard struct {
		Error string `json:"error"`
	}
	decodeResponse(t, recorder, &guard)
	if guard.Error != "has_tasks" {
		t.Errorf("expected has_tasks sentinel, got %q", guard.Error)
	}
}

func TestAPI_BadDateRejected(t *testing.T) {
	router := newTestRouter(t)
	token := registerTestAccount(t, router)

	recorder := doRequest(t, router, http.MethodGet, "/api/sections?date=january", token, nil)
	if recorder.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for bad date, got %d", recorder.Code)
	}

	recorder = doRequest(t, router, http.MethodPost, "/api/sections", token, map[string]string{
		"name":       "Mains",
		"start_date": "2024-02-01",
		"end_date":   "2024-01-01",
	})
	if recorder.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for inverted range, got %d", recorder.Code)
	}
}

func TestAPI_KitchenIsolation(t *testing.T) {
	router := newTestRouter(t)
	chef := registerAccount(t, router, "chef", "Test Kitchen")
	sous := registerAccount(t, router, "sous", "Other Kitchen")

	recorder := doRequest(t, router, http.MethodPost, "/api/profiles", chef, map[string]string{
		"first_name": "Ana",
		"last_name":  "Reyes",
	})
	if recorder.Code != http.StatusCreated {
		t.Fatalf("create profile: expected 201, got %d", recorder.Code)
	}
	var profile struct {
		ID string `json:"id"`
	}
	decodeResponse(t, recorder, &profile)

	recorder = doRequest(t, router, http.MethodPost, "/api/sections", chef, map[string]string{
		"name":       "Mains",
		"start_date": "2024-01-01",
		"end_date":   "2024-01-31",
	})
	if recorder.Code != http.StatusCreated {
		t.Fatalf("create section: expected 201, got %d", recorder.Code)
	}
	var section struct {
		ID string `json:"id"`
	}
	decodeResponse(t, recorder, &section)

	recorder = doRequest(t, router, http.MethodPost, "/api/sections/"+section.ID+"/templates", chef, map[string]string{
		"name": "Boil rice",
	})
	if recorder.Code != http.StatusCreated {
		t.Fatalf("create template: expected 201, got %d", recorder.Code)
	}

	recorder = doRequest(t, router, http.MethodGet, "/api/sections/"+section.ID+"/tasks?date=2024-01-15", chef, nil)
	if recorder.Code != http.StatusOK {
		t.Fatalf("day view: expected 200, got %d", recorder.Code)
	}
	var tasks []struct {
		ID string `json:"id"`
	}
	decodeResponse(t, recorder, &tasks)
	if len(tasks) != 1 {
		t.Fatalf("expected 1 task, got %d", len(tasks))
	}

	// Every route that takes an id must answer 404 to the other kitchen.
	foreign := []struct {
		name   string
		method string
		path   string
		body   interface{}
	}{
		{"delete section", http.MethodDelete, "/api/sections/" + section.ID, nil},
		{"update section", http.MethodPut, "/api/sections/" + section.ID, map[string]string{"name": "Stolen", "end_date": "2024-02-01"}},
		{"day view", http.MethodGet, "/api/sections/" + section.ID + "/tasks?date=2024-01-15", nil},
		{"get task", http.MethodGet, "/api/tasks/" + tasks[0].ID, nil},
		{"set status", http.MethodPost, "/api/tasks/" + tasks[0].ID + "/status", map[string]string{"status": "done"}},
		{"toggle assignment", http.MethodPost, "/api/tasks/" + tasks[0].ID + "/assignment", map[string]string{"profile_id": profile.ID}},
		{"update profile", http.MethodPut, "/api/profiles/" + profile.ID, map[string]string{"first_name": "X", "last_name": "Y"}},
		{"delete profile", http.MethodDelete, "/api/profiles/" + profile.ID, nil},
	}
	for _, attempt := range foreign {
		recorder := doRequest(t, router, attempt.method, attempt.path, sous, attempt.body)
		if recorder.Code != http.StatusNotFound {
			t.Errorf("%s: expected 404 across kitchens, got %d: %s", attempt.name, recorder.Code, recorder.Body.String())
		}
	}

	// The owner's data survives every attempt.
	recorder = doRequest(t, router, http.MethodGet, "/api/sections/"+section.ID+"/tasks?date=2024-01-15", chef, nil)
	if recorder.Code != http.StatusOK {
		t.Fatalf("day view after attempts: expected 200, got %d", recorder.Code)
	}
	var after []struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
	decodeResponse(t, recorder, &after)
	if len(after) != 1 || after[0].Status != "active" {
		t.Fatalf("expected the task untouched, got %+v", after)
	}
}
