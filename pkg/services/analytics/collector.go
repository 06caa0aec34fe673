package analytics

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/pm-tools/project-pulse/pkg/adapters"
	"github.com/pm-tools/project-pulse/pkg/models/domain"
	modelstore "github.com/pm-tools/project-pulse/pkg/models/store"
	"github.com/pm-tools/project-pulse/pkg/store/erp"
)

// timesheetLineTypeProject marks lines recorded against project work, as
// opposed to absence or assembly lines.
const timesheetLineTypeProject = "Job"

// defaultFanOut bounds concurrent per-resource fetch chains.
const defaultFanOut = 8

// Collector flattens the ERP's timesheet → line → daily detail hierarchy
// into per-day time records for one project.
type Collector struct {
	client erp.Client
	fanOut int
}

func NewCollector(client erp.Client) *Collector {
	return &Collector{client: client, fanOut: defaultFanOut}
}

// Collect fetches every resource's timesheets since the given date and
// emits one TimeRecord per positive-quantity day on a matching project
// line. A failed fetch at any nesting level contributes nothing and never
// disturbs sibling work; record order across resources is not defined.
func (c *Collector) Collect(
	ctx context.Context,
	projectCode string,
	resources []domain.Resource,
	since time.Time,
) []domain.TimeRecord {
	perResource := make([][]domain.TimeRecord, len(resources))

	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(c.fanOut)
	for i, resource := range resources {
		i, resource := i, resource
		group.Go(func() error {
			perResource[i] = c.collectResource(ctx, projectCode, resource, since)
			return nil
		})
	}
	// Goroutines only ever return nil; failures are absorbed per fetch.
	_ = group.Wait()

	var records []domain.TimeRecord
	for _, chunk := range perResource {
		records = append(records, chunk...)
	}
	return records
}

func (c *Collector) collectResource(
	ctx context.Context,
	projectCode string,
	resource domain.Resource,
	since time.Time,
) []domain.TimeRecord {
	timesheets := attempt(ctx, "list timesheets", resource.ID, func() ([]modelstore.Timesheet, error) {
		return c.client.ListTimesheets(ctx, resource.ID, since)
	})

	var records []domain.TimeRecord
	for _, sheet := range timesheets {
		lines := attempt(ctx, "list timesheet lines", sheet.No, func() ([]modelstore.TimesheetLine, error) {
			return c.client.ListTimesheetLines(ctx, sheet.No)
		})

		for _, line := range lines {
			if line.Type != timesheetLineTypeProject || line.ProjectNo != projectCode {
				continue
			}
			if line.TotalQuantity <= 0 {
				continue
			}

			state := adapters.MapStoreApprovalStateToDomain(line.Status)
			details := attempt(ctx, "list timesheet details", sheet.No, func() ([]modelstore.TimesheetDetail, error) {
				return c.client.ListTimesheetDetails(ctx, sheet.No, line.LineNo)
			})

			for _, detail := range details {
				if detail.Quantity <= 0 {
					continue
				}
				day, err := time.Parse("2006-01-02", detail.Date)
				if err != nil {
					zerolog.Ctx(ctx).Debug().
						Str("date", detail.Date).
						Msg("skipping detail with unparseable date")
					continue
				}

				records = append(records, domain.TimeRecord{
					ResourceID:   resource.ID,
					ResourceName: resource.Name,
					TaskCode:     line.TaskNo,
					Description:  line.Description,
					Hours:        detail.Quantity,
					Date:         day,
					ISOWeek:      ISOWeekOf(day),
					State:        state,
				})
			}
		}
	}
	return records
}

// attempt converts any fetch failure into an empty contribution at that
// node, so one broken timesheet or line never aborts its siblings.
func attempt[T any](ctx context.Context, what, key string, fn func() ([]T, error)) []T {
	out, err := fn()
	if err != nil {
		zerolog.Ctx(ctx).Debug().
			Err(err).
			Str("key", key).
			Msgf("%s failed, skipping", what)
		return nil
	}
	return out
}
