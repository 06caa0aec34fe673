package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/pm-tools/project-pulse/pkg/adapters"
	"github.com/pm-tools/project-pulse/pkg/models/domain"
	modelstore "github.com/pm-tools/project-pulse/pkg/models/store"
	"github.com/pm-tools/project-pulse/pkg/store/erp"
)

// defaultLookbackDays bounds how far back timesheets are fetched.
const defaultLookbackDays = 180

// Explorer is the engine's consumer-facing surface. GetProjectAnalytics is
// idempotent and safe to call concurrently for different projects.
type Explorer interface {
	ListProjects(ctx context.Context) ([]domain.Project, error)
	GetProjectAnalytics(ctx context.Context, projectCode string) (*domain.ProjectAnalytics, error)
	// ResetCapability forgets the cached capability probe, e.g. after the
	// active ERP profile or company changes.
	ResetCapability()
}

type Settings struct {
	// LookbackDays limits the timesheet window; zero means the default.
	LookbackDays int
}

type explorer struct {
	client    erp.Client
	gate      *CapabilityGate
	collector *Collector
	lookback  time.Duration
	now       func() time.Time
}

func NewExplorer(client erp.Client, settings Settings) Explorer {
	days := settings.LookbackDays
	if days <= 0 {
		days = defaultLookbackDays
	}
	return &explorer{
		client:    client,
		gate:      NewCapabilityGate(client),
		collector: NewCollector(client),
		lookback:  time.Duration(days) * 24 * time.Hour,
		now:       time.Now,
	}
}

func (e *explorer) ListProjects(ctx context.Context) ([]domain.Project, error) {
	raw, err := e.client.ListProjects(ctx)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}

	projects := make([]domain.Project, 0, len(raw))
	for _, p := range raw {
		projects = append(projects, adapters.MapStoreProjectToDomain(p))
	}
	return projects, nil
}

func (e *explorer) ResetCapability() {
	e.gate.Reset()
}

// GetProjectAnalytics assembles the full analytics aggregate for one
// project. An absent capability yields a well-formed zero aggregate; only a
// failure to enumerate resources propagates as an error.
func (e *explorer) GetProjectAnalytics(
	ctx context.Context,
	projectCode string,
) (*domain.ProjectAnalytics, error) {
	logger := zerolog.Ctx(ctx)
	now := e.now()

	result := &domain.ProjectAnalytics{
		ProjectCode: projectCode,
		BillingMode: domain.BillingNotSet,
		GeneratedAt: now,
	}

	if !e.gate.IsAvailable(ctx) {
		logger.Debug().
			Str("project", projectCode).
			Msg("timesheet capability unavailable, returning empty analytics")
		return result, nil
	}

	rawResources, err := e.client.ListResources(ctx)
	if err != nil {
		return nil, fmt.Errorf("enumerate resources: %w", err)
	}
	resources := make([]domain.Resource, 0, len(rawResources))
	for _, r := range rawResources {
		resources = append(resources, adapters.MapStoreResourceToDomain(r))
	}

	var (
		records       []domain.TimeRecord
		planningLines []domain.PlanningLine
		ledgerEntries []domain.LedgerEntry
	)

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		records = e.collector.Collect(groupCtx, projectCode, resources, now.Add(-e.lookback))
		return nil
	})
	group.Go(func() error {
		raw := attempt(groupCtx, "list planning lines", projectCode, func() ([]modelstore.PlanningLine, error) {
			return e.client.ListPlanningLines(groupCtx, projectCode)
		})
		for _, line := range raw {
			planningLines = append(planningLines, adapters.MapStorePlanningLineToDomain(line))
		}
		return nil
	})
	group.Go(func() error {
		raw := attempt(groupCtx, "list ledger entries", projectCode, func() ([]modelstore.LedgerEntry, error) {
			return e.client.ListLedgerEntries(groupCtx, projectCode)
		})
		for _, entry := range raw {
			ledgerEntries = append(ledgerEntries, adapters.MapStoreLedgerEntryToDomain(entry))
		}
		return nil
	})
	_ = group.Wait()

	budget := ComputeBudget(planningLines)
	posted := ComputePosted(ledgerEntries)

	hoursSpent := 0.0
	thisWeek := ISOWeekOf(now)
	seenResources := make(map[string]struct{})
	for _, record := range records {
		hoursSpent += record.Hours
		if record.ISOWeek == thisWeek {
			result.HoursThisWeek += record.Hours
		}
		seenResources[record.ResourceID] = struct{}{}
	}

	estimate := EstimateUnposted(hoursSpent, budget, posted)

	result.HoursSpent = hoursSpent
	result.HoursPlanned = budget.HoursPlanned
	result.HoursPosted = posted.HoursPosted
	result.HoursUnposted = estimate.Hours
	result.BudgetCost = budget.Budget
	result.BillablePrice = budget.Billable
	result.PostedCost = posted.Actual
	result.InvoicedPrice = posted.Invoiced
	result.UnpostedCost = estimate.Cost
	result.UnpostedPrice = estimate.Price
	result.TotalCost = posted.Actual.Total + estimate.Cost
	result.TotalPrice = posted.Invoiced.Total + estimate.Price
	result.BillingMode = ClassifyBillingMode(budget.Billable)
	result.Weekly = AggregateWeekly(records)
	result.Tasks = GroupByTask(records, planningLines)
	result.Members = GroupByMember(records)
	result.ResourceCount = len(seenResources)

	logger.Debug().
		Str("project", projectCode).
		Int("records", len(records)).
		Float64("hours_spent", hoursSpent).
		Msg("project analytics assembled")

	return result, nil
}
