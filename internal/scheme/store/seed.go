package store

import (
	"context"
	"fmt"
	"time"

	"agrigate/internal/scheme/models"
	id "agrigate/pkg/domain"
)

// Catalog is the subset of the scheme store the seeder needs.
type Catalog interface {
	Count(ctx context.Context) (int, error)
	Create(ctx context.Context, scheme *models.Scheme) error
}

func ptr(v float64) *float64 { return &v }

// SeedCatalog loads a starter set of welfare schemes when the catalog is
// empty. Idempotent: a non-empty catalog is left untouched.
func SeedCatalog(ctx context.Context, catalog Catalog, now time.Time) (int, error) {
	count, err := catalog.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count schemes: %w", err)
	}
	if count > 0 {
		return 0, nil
	}

	seeds := []struct {
		name        string
		description string
		eligibility models.Eligibility
	}{
		{
			name:        "PM-KISAN Income Support",
			description: "Direct income support of Rs. 6000 per year for landholding farmer families.",
			eligibility: models.Eligibility{
				MinLandSize: ptr(0.1),
				MaxIncome:   ptr(200000),
			},
		},
		{
			name:        "Punjab Wheat Procurement Bonus",
			description: "State bonus over MSP for wheat procured through regulated mandis.",
			eligibility: models.Eligibility{
				States: []string{"Punjab", "Haryana"},
				Crops:  []string{"Wheat"},
			},
		},
		{
			name:        "Drip Irrigation Subsidy",
			description: "Capital subsidy on micro-irrigation equipment for water-stressed districts.",
			eligibility: models.Eligibility{
				States:      []string{"Maharashtra", "Karnataka", "Tamil Nadu"},
				MinLandSize: ptr(1),
			},
		},
		{
			name:        "Smallholder Crop Insurance",
			description: "Premium-subsidised crop insurance for smallholder farmers.",
			eligibility: models.Eligibility{
				Category:  "smallholder",
				MaxIncome: ptr(150000),
			},
		},
		{
			name:        "Paddy Straw Management Support",
			description: "Machinery support to rice growers for in-situ straw management.",
			eligibility: models.Eligibility{
				States: []string{"Punjab", "Haryana", "Uttar Pradesh"},
				Crops:  []string{"Rice"},
			},
		},
	}

	for _, s := range seeds {
		scheme, err := models.NewScheme(id.NewSchemeID(), s.name, s.description, s.eligibility, now)
		if err != nil {
			return 0, fmt.Errorf("seed scheme %q: %w", s.name, err)
		}
		if err := catalog.Create(ctx, scheme); err != nil {
			return 0, fmt.Errorf("seed scheme %q: %w", s.name, err)
		}
	}
	return len(seeds), nil
}
