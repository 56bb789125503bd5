package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/arcdefender/arc-defender/internal/middleware"
	"github.com/arcdefender/arc-defender/internal/model"
	"github.com/arcdefender/arc-defender/internal/service"
)

const maxFieldLength = 255

type AuthHandler struct {
	svc    *service.AuthService
	logger *zap.Logger
}

func NewAuthHandler(svc *service.AuthService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{svc: svc, logger: logger}
}

// Routes mounts register and login publicly; reset-password and me sit
// behind the bearer-token middleware.
func (h *AuthHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/register", h.Register)
	r.Post("/login", h.Login)

	r.Group(func(r chi.Router) {
		r.Use(middleware.Authenticate(h.svc, h.logger))
		r.Post("/reset-password", h.ResetPassword)
		r.Get("/me", h.Me)
	})
	return r
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req model.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(req.Name) > maxFieldLength || len(req.Email) > maxFieldLength {
		writeError(w, http.StatusBadRequest, "name or email exceeds maximum length")
		return
	}

	if err := h.svc.Register(r.Context(), &req); err != nil {
		writeServiceError(w, h.logger, "registration", err)
		return
	}
	writeJSON(w, http.StatusOK, model.MessageResponse{Message: "User registered successfully!"})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.svc.Login(r.Context(), &req)
	if err != nil {
		writeServiceError(w, h.logger, "login", err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req model.ResetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user := middleware.UserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "not authenticated")
		return
	}
	if err := h.svc.ResetPassword(r.Context(), user, &req); err != nil {
		writeServiceError(w, h.logger, "password reset", err)
		return
	}
	writeJSON(w, http.StatusOK, model.MessageResponse{Message: "Password updated successfully!"})
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "not authenticated")
		return
	}
	writeJSON(w, http.StatusOK, user.ToMe())
}
