package analytics

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/pm-tools/project-pulse/pkg/models/store"
)

type mockClient struct {
	mock.Mock
}

func (m *mockClient) Probe(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *mockClient) ListProjects(ctx context.Context) ([]store.Project, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]store.Project), args.Error(1)
}

func (m *mockClient) ListResources(ctx context.Context) ([]store.Resource, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]store.Resource), args.Error(1)
}

func (m *mockClient) ListTimesheets(
	ctx context.Context,
	resourceNo string,
	since time.Time,
) ([]store.Timesheet, error) {
	args := m.Called(ctx, resourceNo, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]store.Timesheet), args.Error(1)
}

func (m *mockClient) ListTimesheetLines(ctx context.Context, timesheetNo string) ([]store.TimesheetLine, error) {
	args := m.Called(ctx, timesheetNo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]store.TimesheetLine), args.Error(1)
}

func (m *mockClient) ListTimesheetDetails(
	ctx context.Context,
	timesheetNo string,
	lineNo int,
) ([]store.TimesheetDetail, error) {
	args := m.Called(ctx, timesheetNo, lineNo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]store.TimesheetDetail), args.Error(1)
}

func (m *mockClient) ListPlanningLines(ctx context.Context, projectNo string) ([]store.PlanningLine, error) {
	args := m.Called(ctx, projectNo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]store.PlanningLine), args.Error(1)
}

func (m *mockClient) ListLedgerEntries(ctx context.Context, projectNo string) ([]store.LedgerEntry, error) {
	args := m.Called(ctx, projectNo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]store.LedgerEntry), args.Error(1)
}
