package adapters

import (
	"github.com/pm-tools/project-pulse/pkg/models/api"
	"github.com/pm-tools/project-pulse/pkg/models/domain"
	"github.com/pm-tools/project-pulse/pkg/models/store"
)

const (
	lineTypeBudget   = "Budget"
	lineTypeBillable = "Billable"
	lineTypeBoth     = "Both Budget and Billable"
)

func MapStoreProjectToDomain(p store.Project) domain.Project {
	return domain.Project{
		Code:        p.No,
		Description: p.Description,
	}
}

func MapStoreResourceToDomain(r store.Resource) domain.Resource {
	return domain.Resource{
		ID:   r.No,
		Name: r.Name,
	}
}

// MapStorePlanningLineToDomain converts the ERP's open string unions into
// structured values: the planning line type becomes a cost category, and
// the "Both Budget and Billable" line type sets both intent flags.
func MapStorePlanningLineToDomain(l store.PlanningLine) domain.PlanningLine {
	return domain.PlanningLine{
		Category:   planningCategory(l.Type),
		Budget:     l.LineType == lineTypeBudget || l.LineType == lineTypeBoth,
		Billable:   l.LineType == lineTypeBillable || l.LineType == lineTypeBoth,
		Quantity:   l.Quantity,
		UnitCost:   l.UnitCost,
		TotalCost:  l.TotalCost,
		UnitPrice:  l.UnitPrice,
		TotalPrice: l.TotalPrice,
		TaskCode:   l.TaskNo,
		ResourceID: l.ResourceNo,
	}
}

func MapStoreLedgerEntryToDomain(e store.LedgerEntry) domain.LedgerEntry {
	return domain.LedgerEntry{
		ResourceID: e.ResourceNo,
		TaskCode:   e.TaskNo,
		Quantity:   e.Quantity,
		TotalCost:  e.TotalCost,
		TotalPrice: e.TotalPrice,
	}
}

func MapStoreApprovalStateToDomain(status string) domain.ApprovalState {
	switch status {
	case "Submitted":
		return domain.ApprovalSubmitted
	case "Rejected":
		return domain.ApprovalRejected
	case "Approved":
		return domain.ApprovalApproved
	default:
		return domain.ApprovalOpen
	}
}

func planningCategory(lineType string) domain.CostCategory {
	switch lineType {
	case "Resource":
		return domain.CategoryLabor
	case "Item":
		return domain.CategoryMaterial
	default:
		// G/L account lines carry overheads and sundry costs.
		return domain.CategoryOverhead
	}
}

func MapProjectDomainToApi(p domain.Project) api.Project {
	return api.Project{
		Code:        p.Code,
		Description: p.Description,
	}
}

func MapCostBreakdownDomainToApi(b domain.CostBreakdown) api.CostBreakdown {
	return api.CostBreakdown{
		Labor:    b.Labor,
		Material: b.Material,
		Overhead: b.Overhead,
		Total:    b.Total,
	}
}

func MapProjectAnalyticsDomainToApi(a domain.ProjectAnalytics) api.ProjectAnalytics {
	result := api.ProjectAnalytics{
		ProjectCode:   a.ProjectCode,
		HoursSpent:    a.HoursSpent,
		HoursPlanned:  a.HoursPlanned,
		HoursPosted:   a.HoursPosted,
		HoursUnposted: a.HoursUnposted,
		HoursThisWeek: a.HoursThisWeek,
		BudgetCost:    MapCostBreakdownDomainToApi(a.BudgetCost),
		BillablePrice: MapCostBreakdownDomainToApi(a.BillablePrice),
		PostedCost:    MapCostBreakdownDomainToApi(a.PostedCost),
		InvoicedPrice: MapCostBreakdownDomainToApi(a.InvoicedPrice),
		UnpostedCost:  a.UnpostedCost,
		UnpostedPrice: a.UnpostedPrice,
		TotalCost:     a.TotalCost,
		TotalPrice:    a.TotalPrice,
		BillingMode:   string(a.BillingMode),
		Weekly:        []api.WeeklyBucket{},
		Tasks:         []api.TaskBreakdown{},
		Members:       []api.MemberBreakdown{},
		ResourceCount: a.ResourceCount,
		GeneratedAt:   a.GeneratedAt,
	}

	for _, w := range a.Weekly {
		result.Weekly = append(result.Weekly, api.WeeklyBucket{
			ISOWeek:         w.ISOWeek,
			TotalHours:      w.TotalHours,
			ApprovedHours:   w.ApprovedHours,
			PendingHours:    w.PendingHours,
			CumulativeHours: w.CumulativeHours,
		})
	}

	for _, t := range a.Tasks {
		members := []api.MemberHours{}
		for _, m := range t.Members {
			members = append(members, api.MemberHours(m))
		}
		result.Tasks = append(result.Tasks, api.TaskBreakdown{
			TaskCode:      t.TaskCode,
			Description:   t.Description,
			Hours:         t.Hours,
			ApprovedHours: t.ApprovedHours,
			PendingHours:  t.PendingHours,
			UnitPrice:     t.UnitPrice,
			Members:       members,
		})
	}

	for _, m := range a.Members {
		tasks := []api.TaskHours{}
		for _, t := range m.Tasks {
			tasks = append(tasks, api.TaskHours(t))
		}
		result.Members = append(result.Members, api.MemberBreakdown{
			ResourceID:    m.ResourceID,
			ResourceName:  m.ResourceName,
			Hours:         m.Hours,
			ApprovedHours: m.ApprovedHours,
			PendingHours:  m.PendingHours,
			Tasks:         tasks,
		})
	}

	return result
}
