package analytics

import "github.com/pm-tools/project-pulse/pkg/models/domain"

// BudgetSummary aggregates planning lines: planned labor hours plus cost
// and price breakdowns for the budgeted and billable intents. A line whose
// intent is both contributes to both breakdowns.
type BudgetSummary struct {
	HoursPlanned float64
	Budget       domain.CostBreakdown
	Billable     domain.CostBreakdown
}

// PostedSummary aggregates posted ledger entries. Entries are labor-only,
// so both breakdowns land entirely in the labor field.
type PostedSummary struct {
	HoursPosted float64
	Actual      domain.CostBreakdown
	Invoiced    domain.CostBreakdown
}

// UnpostedEstimate prices the hours recorded in timesheets but not yet
// posted to the ledger.
type UnpostedEstimate struct {
	Hours float64
	Cost  float64
	Price float64
}

func ComputeBudget(lines []domain.PlanningLine) BudgetSummary {
	var summary BudgetSummary
	for _, line := range lines {
		if line.Budget {
			summary.Budget.Add(line.Category, line.TotalCost)
			if line.Category == domain.CategoryLabor {
				summary.HoursPlanned += line.Quantity
			}
		}
		if line.Billable {
			summary.Billable.Add(line.Category, line.TotalPrice)
		}
	}
	return summary
}

func ComputePosted(entries []domain.LedgerEntry) PostedSummary {
	var summary PostedSummary
	for _, entry := range entries {
		summary.HoursPosted += entry.Quantity
		summary.Actual.Add(domain.CategoryLabor, entry.TotalCost)
		summary.Invoiced.Add(domain.CategoryLabor, entry.TotalPrice)
	}
	return summary
}

// EstimateUnposted prices unposted hours with the best available rate:
// the posted average rate when anything has been posted, otherwise the
// labor-only planned rate, otherwise zero.
func EstimateUnposted(hoursSpent float64, budget BudgetSummary, posted PostedSummary) UnpostedEstimate {
	unposted := hoursSpent - posted.HoursPosted
	if unposted <= 0 {
		return UnpostedEstimate{}
	}

	estimate := UnpostedEstimate{Hours: unposted}
	switch {
	case posted.HoursPosted > 0:
		estimate.Cost = unposted * (posted.Actual.Total / posted.HoursPosted)
		estimate.Price = unposted * (posted.Invoiced.Total / posted.HoursPosted)
	case budget.HoursPlanned > 0:
		estimate.Cost = unposted * (budget.Budget.Labor / budget.HoursPlanned)
		estimate.Price = unposted * (budget.Billable.Labor / budget.HoursPlanned)
	}
	return estimate
}
