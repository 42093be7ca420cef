package handler

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"agrigate/internal/application/service"
	applicationstore "agrigate/internal/application/store"
	farmermodels "agrigate/internal/farmer/models"
	farmerstore "agrigate/internal/farmer/store"
	schememodels "agrigate/internal/scheme/models"
	schemestore "agrigate/internal/scheme/store"
	id "agrigate/pkg/domain"
	"agrigate/pkg/requestcontext"
	"agrigate/pkg/testutil"
)

type fixture struct {
	router  http.Handler
	farmers *farmerstore.InMemory
	schemes *schemestore.InMemory
}

func withIdentity(farmerID id.FarmerID) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := requestcontext.WithFarmerID(r.Context(), farmerID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func newFixture(t *testing.T, farmerID id.FarmerID) *fixture {
	t.Helper()
	applications := applicationstore.NewInMemory()
	farmers := farmerstore.NewInMemory()
	schemes := schemestore.NewInMemory()
	svc := service.NewService(applications, farmers, schemes)
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))

	h := New(svc, logger)
	r := chi.NewRouter()
	r.Group(func(pr chi.Router) {
		pr.Use(withIdentity(farmerID))
		h.RegisterProtected(pr)
	})
	return &fixture{router: r, farmers: farmers, schemes: schemes}
}

func (f *fixture) addFarmer(t *testing.T, farmerID id.FarmerID, state string) {
	t.Helper()
	now := time.Now()
	err := f.farmers.CreateIfEmailAvailable(context.Background(), &farmermodels.Farmer{
		ID:           farmerID,
		Name:         "Harpreet",
		Email:        farmerID.String() + "@example.com",
		PasswordHash: "$2a$10$fakefakefakefakefakefake",
		Location:     farmermodels.Location{State: state, District: "Ludhiana"},
		Crops:        []string{"Wheat"},
		AnnualIncome: 50000,
		LandSize:     3,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		t.Fatalf("seed farmer: %v", err)
	}
}

func (f *fixture) addScheme(t *testing.T, eligibility schememodels.Eligibility) *schememodels.Scheme {
	t.Helper()
	now := time.Now()
	scheme := &schememodels.Scheme{
		ID:          id.NewSchemeID(),
		Name:        "Test Scheme",
		Eligibility: eligibility,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := f.schemes.Create(context.Background(), scheme); err != nil {
		t.Fatalf("seed scheme: %v", err)
	}
	return scheme
}

func apply(t *testing.T, router http.Handler, body any) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, testutil.NewJSONRequest(t, http.MethodPost, "/api/applications", body))
	return rec
}

func TestApplyEndpoint(t *testing.T) {
	farmerID := id.NewFarmerID()

	t.Run("eligible application returns 201", func(t *testing.T) {
		f := newFixture(t, farmerID)
		f.addFarmer(t, farmerID, "Punjab")
		scheme := f.addScheme(t, schememodels.Eligibility{States: []string{"Punjab"}})

		rec := apply(t, f.router, map[string]string{"schemeId": scheme.ID.String()})
		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}

		var body map[string]any
		testutil.DecodeJSONResponse(t, rec, &body)
		if body["status"] != "submitted" {
			t.Fatalf("expected submitted status, got %v", body["status"])
		}
		if body["farmerId"] != farmerID.String() {
			t.Fatalf("expected farmer %s, got %v", farmerID, body["farmerId"])
		}
		if body["schemeId"] != scheme.ID.String() {
			t.Fatalf("expected scheme %s, got %v", scheme.ID, body["schemeId"])
		}
	})

	t.Run("missing schemeId returns 400", func(t *testing.T) {
		f := newFixture(t, farmerID)
		f.addFarmer(t, farmerID, "Punjab")

		rec := apply(t, f.router, map[string]string{})
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		var body map[string]string
		testutil.DecodeJSONResponse(t, rec, &body)
		if body["error_description"] != "schemeId required" {
			t.Fatalf("unexpected message %q", body["error_description"])
		}
	})

	t.Run("malformed schemeId returns 400", func(t *testing.T) {
		f := newFixture(t, farmerID)
		f.addFarmer(t, farmerID, "Punjab")

		rec := apply(t, f.router, map[string]string{"schemeId": "not-a-uuid"})
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("unknown scheme returns 404", func(t *testing.T) {
		f := newFixture(t, farmerID)
		f.addFarmer(t, farmerID, "Punjab")

		rec := apply(t, f.router, map[string]string{"schemeId": id.NewSchemeID().String()})
		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		var body map[string]string
		testutil.DecodeJSONResponse(t, rec, &body)
		if body["error_description"] != "Scheme not found" {
			t.Fatalf("unexpected message %q", body["error_description"])
		}
	})

	t.Run("ineligible farmer returns 400 and no record", func(t *testing.T) {
		f := newFixture(t, farmerID)
		f.addFarmer(t, farmerID, "Kerala")
		scheme := f.addScheme(t, schememodels.Eligibility{States: []string{"Punjab"}})

		rec := apply(t, f.router, map[string]string{"schemeId": scheme.ID.String()})
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		var body map[string]string
		testutil.DecodeJSONResponse(t, rec, &body)
		if body["error_description"] != "Not eligible for this scheme" {
			t.Fatalf("unexpected message %q", body["error_description"])
		}

		list := httptest.NewRecorder()
		f.router.ServeHTTP(list, testutil.NewRequest(t, http.MethodGet, "/api/applications"))
		if got := bytes.TrimSpace(list.Body.Bytes()); string(got) != "[]" {
			t.Fatalf("ineligible application must leave no record, got %s", got)
		}
	})

	t.Run("duplicate application returns 409", func(t *testing.T) {
		f := newFixture(t, farmerID)
		f.addFarmer(t, farmerID, "Punjab")
		scheme := f.addScheme(t, schememodels.Eligibility{})
		payload := map[string]string{"schemeId": scheme.ID.String()}

		if rec := apply(t, f.router, payload); rec.Code != http.StatusCreated {
			t.Fatalf("expected 201 on first apply, got %d", rec.Code)
		}

		rec := apply(t, f.router, payload)
		if rec.Code != http.StatusConflict {
			t.Fatalf("expected 409 on second apply, got %d", rec.Code)
		}
		var body map[string]string
		testutil.DecodeJSONResponse(t, rec, &body)
		if body["error_description"] != "Already applied" {
			t.Fatalf("unexpected message %q", body["error_description"])
		}
	})

	t.Run("missing identity returns 401", func(t *testing.T) {
		f := newFixture(t, id.FarmerID{})

		rec := apply(t, f.router, map[string]string{"schemeId": id.NewSchemeID().String()})
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})
}

func TestListApplicationsEndpoint(t *testing.T) {
	farmerID := id.NewFarmerID()

	t.Run("no applications returns empty array", func(t *testing.T) {
		f := newFixture(t, farmerID)
		f.addFarmer(t, farmerID, "Punjab")

		rec := httptest.NewRecorder()
		f.router.ServeHTTP(rec, testutil.NewRequest(t, http.MethodGet, "/api/applications"))

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if body := bytes.TrimSpace(rec.Body.Bytes()); string(body) != "[]" {
			t.Fatalf("expected empty JSON array, got %s", body)
		}
	})

	t.Run("lists own applications only", func(t *testing.T) {
		f := newFixture(t, farmerID)
		f.addFarmer(t, farmerID, "Punjab")
		scheme := f.addScheme(t, schememodels.Eligibility{})

		if rec := apply(t, f.router, map[string]string{"schemeId": scheme.ID.String()}); rec.Code != http.StatusCreated {
			t.Fatalf("seed apply failed: %d", rec.Code)
		}

		rec := httptest.NewRecorder()
		f.router.ServeHTTP(rec, testutil.NewRequest(t, http.MethodGet, "/api/applications"))

		var body []map[string]any
		testutil.DecodeJSONResponse(t, rec, &body)
		if len(body) != 1 {
			t.Fatalf("expected 1 application, got %d", len(body))
		}
		if body[0]["schemeId"] != scheme.ID.String() {
			t.Fatalf("expected scheme %s, got %v", scheme.ID, body[0]["schemeId"])
		}
	})
}
