package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"agrigate/internal/application/models"
	id "agrigate/pkg/domain"
	dErrors "agrigate/pkg/domain-errors"
	"agrigate/pkg/platform/httputil"
	"agrigate/pkg/requestcontext"
)

// Service defines the application operations the handler depends on.
type Service interface {
	Apply(ctx context.Context, farmerID id.FarmerID, schemeID id.SchemeID) (*models.Application, error)
	ListForFarmer(ctx context.Context, farmerID id.FarmerID) ([]*models.Application, error)
}

// Handler wires application endpoints to the application service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs an application handler with its dependencies.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// RegisterProtected mounts the application endpoints. The router group must
// carry the auth middleware.
func (h *Handler) RegisterProtected(r chi.Router) {
	r.Post("/api/applications", h.HandleApply)
	r.Get("/api/applications", h.HandleList)
}

// HandleApply handles POST /api/applications requests.
func (h *Handler) HandleApply(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	farmerID := requestcontext.FarmerID(ctx)
	if farmerID.IsNil() {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return
	}

	req, ok := httputil.DecodeAndPrepare[ApplyRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	application, err := h.service.Apply(ctx, farmerID, req.ParsedSchemeID())
	if err != nil {
		// Ineligibility, duplicates and missing schemes are expected traffic.
		if dErrors.HasCode(err, dErrors.CodeInternal) {
			h.logger.ErrorContext(ctx, "application failed",
				"request_id", requestID,
				"farmer_id", farmerID,
				"scheme_id", req.SchemeID,
				"error", err,
			)
		}
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "application submitted",
		"request_id", requestID,
		"farmer_id", farmerID,
		"scheme_id", application.SchemeID,
		"application_id", application.ID,
	)
	httputil.WriteJSON(w, http.StatusCreated, application)
}

// HandleList handles GET /api/applications requests.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	farmerID := requestcontext.FarmerID(ctx)
	if farmerID.IsNil() {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return
	}

	applications, err := h.service.ListForFarmer(ctx, farmerID)
	if err != nil {
		h.logger.ErrorContext(ctx, "application listing failed",
			"request_id", requestcontext.RequestID(ctx),
			"farmer_id", farmerID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	if applications == nil {
		applications = []*models.Application{}
	}
	httputil.WriteJSON(w, http.StatusOK, applications)
}
