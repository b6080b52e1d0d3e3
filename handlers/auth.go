package handlers

import (
	"errors"
	"net/http"

	"prepboard/config"
	"prepboard/middleware"
	"prepboard/models"
	"prepboard/repository"

	"golang.org/x/crypto/bcrypt"
)

type AuthHandler struct {
	config   *config.Config
	auth     *middleware.Auth
	users    repository.UserRepository
	kitchens repository.KitchenRepository
}

func NewAuthHandler(cfg *config.Config, auth *middleware.Auth, users repository.UserRepository, kitchens repository.KitchenRepository) *AuthHandler {
	return &AuthHandler{
		config:   cfg,
		auth:     auth,
		users:    users,
		kitchens: kitchens,
	}
}

type registerRequest struct {
	Username    string `json:"username"`
	Password    string `json:"password"`
	KitchenName string `json:"kitchen_name"`
}

type authResponse struct {
	Token   string          `json:"token"`
	User    models.User     `json:"user"`
	Kitchen *models.Kitchen `json:"kitchen,omitempty"`
}

// Register creates the login account and its kitchen in one step.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Username == "" || req.KitchenName == "" {
		writeError(w, http.StatusBadRequest, "username and kitchen_name are required")
		return
	}
	if len(req.Password) < 5 {
		writeError(w, http.StatusBadRequest, "password must be at least 5 characters")
		return
	}

	if _, err := h.users.FindByUsername(r.Context(), req.Username); err == nil {
		writeError(w, http.StatusConflict, "username already taken")
		return
	} else if !errors.Is(err, repository.ErrNotFound) {
		writeStoreError(w, err)
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to hash password")
		return
	}

	user, kitchen, err := h.users.CreateWithKitchen(r.Context(), models.User{
		Username:     req.Username,
		PasswordHash: string(hashedPassword),
	}, req.KitchenName)
	if err != nil {
		writeStoreError(w, err)
		return
	}

	token, err := h.auth.GenerateToken(&user, h.config.JWTExpiration)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to generate token")
		return
	}

	h.setTokenCookie(w, token)
	writeJSON(w, http.StatusCreated, authResponse{Token: token, User: user, Kitchen: &kitchen})
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeBody(w, r, &req) {
		return
	}

	user, err := h.users.FindByUsername(r.Context(), req.Username)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		writeError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	token, err := h.auth.GenerateToken(&user, h.config.JWTExpiration)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to generate token")
		return
	}

	kitchen, err := h.kitchens.FindByOwner(r.Context(), user.ID)
	if err != nil {
		writeStoreError(w, err)
		return
	}

	h.setTokenCookie(w, token)
	writeJSON(w, http.StatusOK, authResponse{Token: token, User: user, Kitchen: &kitchen})
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     "token",
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	writeJSON(w, http.StatusOK, map[string]string{"status": "logged out"})
}

func (h *AuthHandler) Kitchen(w http.ResponseWriter, r *http.Request) {
	kitchen := middleware.GetKitchenFromContext(r.Context())
	if kitchen == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	writeJSON(w, http.StatusOK, kitchen)
}

func (h *AuthHandler) setTokenCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     "token",
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.config.JWTExpiration.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
}
