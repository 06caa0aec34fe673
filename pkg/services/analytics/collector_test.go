package analytics

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/pm-tools/project-pulse/pkg/models/domain"
	"github.com/pm-tools/project-pulse/pkg/models/store"
)

var collectSince = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func singleLineSheet(resourceNo, sheetNo, project string, qty float64, status string) (store.Timesheet, store.TimesheetLine) {
	sheet := store.Timesheet{No: sheetNo, ResourceNo: resourceNo, StartingDate: "2024-01-01"}
	line := store.TimesheetLine{
		TimesheetNo:   sheetNo,
		LineNo:        10000,
		Type:          "Job",
		ProjectNo:     project,
		TotalQuantity: qty,
		Status:        status,
	}
	return sheet, line
}

func TestCollector_FlattensDetailsIntoRecords(t *testing.T) {
	client := new(mockClient)
	sheet, line := singleLineSheet("R010", "TS001", "PRJ-1", 12, "Approved")
	line.TaskNo = "1100"
	line.Description = "Backend work"

	client.On("ListTimesheets", mock.Anything, "R010", collectSince).
		Return([]store.Timesheet{sheet}, nil)
	client.On("ListTimesheetLines", mock.Anything, "TS001").
		Return([]store.TimesheetLine{line}, nil)
	client.On("ListTimesheetDetails", mock.Anything, "TS001", 10000).
		Return([]store.TimesheetDetail{
			{Date: "2024-01-01", Quantity: 8},
			{Date: "2024-01-02", Quantity: 4},
			{Date: "2024-01-03", Quantity: 0},
		}, nil)

	collector := NewCollector(client)
	records := collector.Collect(context.Background(), "PRJ-1",
		[]domain.Resource{{ID: "R010", Name: "Dana"}}, collectSince)

	assert.Len(t, records, 2, "zero-quantity days emit no record")
	assert.Equal(t, "R010", records[0].ResourceID)
	assert.Equal(t, "Dana", records[0].ResourceName)
	assert.Equal(t, "1100", records[0].TaskCode)
	assert.Equal(t, "Backend work", records[0].Description)
	assert.Equal(t, 8.0, records[0].Hours)
	assert.Equal(t, "2024-W01", records[0].ISOWeek)
	assert.Equal(t, domain.ApprovalApproved, records[0].State)
	client.AssertExpectations(t)
}

func TestCollector_FiltersForeignAndNonProjectLines(t *testing.T) {
	client := new(mockClient)
	sheet := store.Timesheet{No: "TS001", ResourceNo: "R010"}
	lines := []store.TimesheetLine{
		{TimesheetNo: "TS001", LineNo: 10000, Type: "Absence", ProjectNo: "", TotalQuantity: 8},
		{TimesheetNo: "TS001", LineNo: 20000, Type: "Job", ProjectNo: "OTHER", TotalQuantity: 8},
		{TimesheetNo: "TS001", LineNo: 30000, Type: "Job", ProjectNo: "PRJ-1", TotalQuantity: 0},
	}

	client.On("ListTimesheets", mock.Anything, "R010", collectSince).
		Return([]store.Timesheet{sheet}, nil)
	client.On("ListTimesheetLines", mock.Anything, "TS001").
		Return(lines, nil)

	collector := NewCollector(client)
	records := collector.Collect(context.Background(), "PRJ-1",
		[]domain.Resource{{ID: "R010"}}, collectSince)

	assert.Empty(t, records)
	client.AssertNotCalled(t, "ListTimesheetDetails", mock.Anything, mock.Anything, mock.Anything)
}

func TestCollector_IsolatesFailurePerResource(t *testing.T) {
	client := new(mockClient)

	sheetA, lineA := singleLineSheet("R010", "TS-A", "PRJ-1", 8, "Open")
	sheetC, lineC := singleLineSheet("R030", "TS-C", "PRJ-1", 6, "Submitted")

	client.On("ListTimesheets", mock.Anything, "R010", collectSince).
		Return([]store.Timesheet{sheetA}, nil)
	client.On("ListTimesheets", mock.Anything, "R020", collectSince).
		Return(nil, errors.New("timeout"))
	client.On("ListTimesheets", mock.Anything, "R030", collectSince).
		Return([]store.Timesheet{sheetC}, nil)

	client.On("ListTimesheetLines", mock.Anything, "TS-A").
		Return([]store.TimesheetLine{lineA}, nil)
	client.On("ListTimesheetLines", mock.Anything, "TS-C").
		Return([]store.TimesheetLine{lineC}, nil)

	client.On("ListTimesheetDetails", mock.Anything, "TS-A", 10000).
		Return([]store.TimesheetDetail{{Date: "2024-01-02", Quantity: 8}}, nil)
	client.On("ListTimesheetDetails", mock.Anything, "TS-C", 10000).
		Return([]store.TimesheetDetail{{Date: "2024-01-03", Quantity: 6}}, nil)

	collector := NewCollector(client)
	records := collector.Collect(context.Background(), "PRJ-1", []domain.Resource{
		{ID: "R010"}, {ID: "R020"}, {ID: "R030"},
	}, collectSince)

	assert.Len(t, records, 2, "failing resource contributes nothing, siblings survive")

	seen := map[string]float64{}
	for _, record := range records {
		seen[record.ResourceID] = record.Hours
	}
	assert.Equal(t, map[string]float64{"R010": 8, "R030": 6}, seen)
}

func TestCollector_IsolatesFailurePerLineDetails(t *testing.T) {
	client := new(mockClient)
	sheet := store.Timesheet{No: "TS001", ResourceNo: "R010"}
	lines := []store.TimesheetLine{
		{TimesheetNo: "TS001", LineNo: 10000, Type: "Job", ProjectNo: "PRJ-1", TotalQuantity: 8, Status: "Open"},
		{TimesheetNo: "TS001", LineNo: 20000, Type: "Job", ProjectNo: "PRJ-1", TotalQuantity: 4, Status: "Open"},
	}

	client.On("ListTimesheets", mock.Anything, "R010", collectSince).
		Return([]store.Timesheet{sheet}, nil)
	client.On("ListTimesheetLines", mock.Anything, "TS001").
		Return(lines, nil)
	client.On("ListTimesheetDetails", mock.Anything, "TS001", 10000).
		Return(nil, errors.New("detail fetch failed"))
	client.On("ListTimesheetDetails", mock.Anything, "TS001", 20000).
		Return([]store.TimesheetDetail{{Date: "2024-01-04", Quantity: 4}}, nil)

	collector := NewCollector(client)
	records := collector.Collect(context.Background(), "PRJ-1",
		[]domain.Resource{{ID: "R010"}}, collectSince)

	assert.Len(t, records, 1)
	assert.Equal(t, 4.0, records[0].Hours)
}
