// Package eligibility holds the matching predicate between a farmer profile
// and a scheme's declared constraints. It is pure and total: no side effects,
// no errors, nil inputs simply do not match.
package eligibility

import (
	farmermodels "agrigate/internal/farmer/models"
	schememodels "agrigate/internal/scheme/models"
)

// IsEligible reports whether the farmer satisfies every constraint the
// scheme declares. Constraints are a conjunction; the first failing
// dimension decides. Absent constraints pass by definition.
//
// String comparisons are exact and case-sensitive ("Wheat" does not match
// "wheat") — deliberate fidelity to the upstream behavior.
func IsEligible(farmer *farmermodels.Farmer, scheme *schememodels.Scheme) bool {
	if farmer == nil || scheme == nil {
		return false
	}
	e := scheme.Eligibility

	if len(e.States) > 0 && !contains(e.States, farmer.Location.State) {
		return false
	}

	// A present crop constraint requires at least one overlapping crop;
	// a farmer with no declared crops can never satisfy it.
	if len(e.Crops) > 0 && !intersects(farmer.Crops, e.Crops) {
		return false
	}

	if e.MinIncome != nil && farmer.AnnualIncome < *e.MinIncome {
		return false
	}
	if e.MaxIncome != nil && farmer.AnnualIncome > *e.MaxIncome {
		return false
	}
	if e.MinLandSize != nil && farmer.LandSize < *e.MinLandSize {
		return false
	}
	if e.Category != "" && e.Category != farmer.Category {
		return false
	}

	return true
}

// Filter returns the subset of schemes the farmer is eligible for,
// preserving catalog order.
func Filter(farmer *farmermodels.Farmer, schemes []*schememodels.Scheme) []*schememodels.Scheme {
	eligible := make([]*schememodels.Scheme, 0, len(schemes))
	for _, s := range schemes {
		if IsEligible(farmer, s) {
			eligible = append(eligible, s)
		}
	}
	return eligible
}

func contains(haystack []string, needle string) bool {
	for _, v := range haystack {
		if v == needle {
			return true
		}
	}
	return false
}

func intersects(a, b []string) bool {
	for _, v := range a {
		if contains(b, v) {
			return true
		}
	}
	return false
}
