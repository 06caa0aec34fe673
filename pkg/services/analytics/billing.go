package analytics

import "github.com/pm-tools/project-pulse/pkg/models/domain"

// ClassifyBillingMode derives how a project's billable value is structured
// from the categories with a strictly positive billable amount: none set,
// labor only, a single non-labor category, or a mix.
func ClassifyBillingMode(billable domain.CostBreakdown) domain.BillingMode {
	positive := 0
	for _, amount := range []float64{billable.Labor, billable.Material, billable.Overhead} {
		if amount > 0 {
			positive++
		}
	}

	switch {
	case positive == 0:
		return domain.BillingNotSet
	case positive > 1:
		return domain.BillingMixed
	case billable.Labor > 0:
		return domain.BillingTimeAndMaterials
	default:
		return domain.BillingFixedPrice
	}
}
