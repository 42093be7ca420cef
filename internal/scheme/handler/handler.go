package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"agrigate/internal/scheme/models"
	id "agrigate/pkg/domain"
	dErrors "agrigate/pkg/domain-errors"
	"agrigate/pkg/platform/httputil"
	"agrigate/pkg/requestcontext"
)

// Service defines the scheme operations the handler depends on.
type Service interface {
	ListAll(ctx context.Context) ([]*models.Scheme, error)
	ListEligibleFor(ctx context.Context, farmerID id.FarmerID) ([]*models.Scheme, error)
}

// Handler wires scheme browsing endpoints to the scheme service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs a scheme handler with its dependencies.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts the public catalog endpoint on the router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/api/schemes", h.HandleList)
}

// RegisterProtected mounts the endpoints that require an authenticated
// farmer. The router group must carry the auth middleware.
func (h *Handler) RegisterProtected(r chi.Router) {
	r.Get("/api/schemes/eligible", h.HandleListEligible)
}

// HandleList handles GET /api/schemes requests.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	schemes, err := h.service.ListAll(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "scheme listing failed",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	// An empty catalog serializes as [] rather than null.
	if schemes == nil {
		schemes = []*models.Scheme{}
	}
	httputil.WriteJSON(w, http.StatusOK, schemes)
}

// HandleListEligible handles GET /api/schemes/eligible requests.
func (h *Handler) HandleListEligible(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	farmerID := requestcontext.FarmerID(ctx)
	if farmerID.IsNil() {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return
	}

	schemes, err := h.service.ListEligibleFor(ctx, farmerID)
	if err != nil {
		if !dErrors.HasCode(err, dErrors.CodeNotFound) {
			h.logger.ErrorContext(ctx, "eligibility listing failed",
				"request_id", requestID,
				"farmer_id", farmerID,
				"error", err,
			)
		}
		httputil.WriteError(w, err)
		return
	}

	if schemes == nil {
		schemes = []*models.Scheme{}
	}
	httputil.WriteJSON(w, http.StatusOK, schemes)
}
