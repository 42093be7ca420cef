package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"agrigate/internal/farmer/models"
	"agrigate/internal/farmer/service"
	dErrors "agrigate/pkg/domain-errors"
	"agrigate/pkg/platform/httputil"
	"agrigate/pkg/requestcontext"
)

// Service defines the farmer operations the handler depends on.
type Service interface {
	Register(ctx context.Context, params service.RegisterParams) (*models.Farmer, error)
	Login(ctx context.Context, email, password string) (string, error)
}

// Handler wires authentication endpoints to the farmer service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs a farmer handler with its dependencies.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts the public auth endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/api/auth/register", h.HandleRegister)
	r.Post("/api/auth/login", h.HandleLogin)
}

// HandleRegister handles POST /api/auth/register requests.
func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[RegisterRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	farmer, err := h.service.Register(ctx, service.RegisterParams{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Profile:  req.Profile(),
	})
	if err != nil {
		if !dErrors.HasCode(err, dErrors.CodeConflict) && !dErrors.HasCode(err, dErrors.CodeValidation) {
			h.logger.ErrorContext(ctx, "registration failed",
				"request_id", requestID,
				"error", err,
			)
		}
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "farmer registered",
		"request_id", requestID,
		"farmer_id", farmer.ID,
	)
	httputil.WriteJSON(w, http.StatusCreated, farmer)
}

// HandleLogin handles POST /api/auth/login requests.
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[LoginRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	token, err := h.service.Login(ctx, req.Email, req.Password)
	if err != nil {
		// Failed logins are expected traffic; only unexpected errors are logged
		// with detail, and never with the submitted credentials.
		if !dErrors.HasCode(err, dErrors.CodeInvalidCredentials) {
			h.logger.ErrorContext(ctx, "login failed",
				"request_id", requestID,
				"error", err,
			)
		}
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, TokenResponse{Token: token})
}

// TokenResponse is the success body for POST /api/auth/login.
type TokenResponse struct {
	Token string `json:"token"`
}
