package domain

import "time"

type ApprovalState string

const (
	ApprovalOpen      ApprovalState = "Open"
	ApprovalSubmitted ApprovalState = "Submitted"
	ApprovalRejected  ApprovalState = "Rejected"
	ApprovalApproved  ApprovalState = "Approved"
)

type CostCategory string

const (
	CategoryLabor    CostCategory = "labor"
	CategoryMaterial CostCategory = "material"
	CategoryOverhead CostCategory = "overhead"
)

type BillingMode string

const (
	BillingNotSet           BillingMode = "not_set"
	BillingTimeAndMaterials BillingMode = "time_and_materials"
	BillingFixedPrice       BillingMode = "fixed_price"
	BillingMixed            BillingMode = "mixed"
)

type Project struct {
	Code        string
	Description string
}

type Resource struct {
	ID   string
	Name string
}

// TimeRecord is one posted-or-pending day of work on a project task,
// flattened out of a timesheet line's daily detail.
type TimeRecord struct {
	ResourceID   string
	ResourceName string
	TaskCode     string
	Description  string
	Hours        float64
	Date         time.Time
	ISOWeek      string
	State        ApprovalState
}

type WeeklyBucket struct {
	ISOWeek         string
	TotalHours      float64
	ApprovedHours   float64
	PendingHours    float64
	CumulativeHours float64
}

// CostBreakdown splits an amount by cost category. Total is maintained by
// Add and always equals Labor + Material + Overhead.
type CostBreakdown struct {
	Labor    float64
	Material float64
	Overhead float64
	Total    float64
}

func (b *CostBreakdown) Add(category CostCategory, amount float64) {
	switch category {
	case CategoryLabor:
		b.Labor += amount
	case CategoryMaterial:
		b.Material += amount
	case CategoryOverhead:
		b.Overhead += amount
	}
	b.Total += amount
}

// PlanningLine is a budgeted or quoted allocation against a project.
// A line can be simultaneously part of the budget and billable to the
// customer; the two flags are independent.
type PlanningLine struct {
	Category   CostCategory
	Budget     bool
	Billable   bool
	Quantity   float64
	UnitCost   float64
	TotalCost  float64
	UnitPrice  float64
	TotalPrice float64
	TaskCode   string
	ResourceID string
}

// LedgerEntry is a posted record of actual work. Posted time entries carry
// no material or overhead dimension, so entries are always labor.
type LedgerEntry struct {
	ResourceID string
	TaskCode   string
	Quantity   float64
	TotalCost  float64
	TotalPrice float64
}

type MemberHours struct {
	ResourceID   string
	ResourceName string
	Hours        float64
}

type TaskHours struct {
	TaskCode string
	Hours    float64
}

type TaskBreakdown struct {
	TaskCode      string
	Description   string
	Hours         float64
	ApprovedHours float64
	PendingHours  float64
	// UnitPrice is the first billable planning-line rate encountered for
	// the task in fetch order; zero when the task has no planning line.
	UnitPrice float64
	Members   []MemberHours
}

type MemberBreakdown struct {
	ResourceID    string
	ResourceName  string
	Hours         float64
	ApprovedHours float64
	PendingHours  float64
	Tasks         []TaskHours
}

// ProjectAnalytics is the root aggregate for one project. It is built once
// per request and never mutated afterwards.
type ProjectAnalytics struct {
	ProjectCode   string
	HoursSpent    float64
	HoursPlanned  float64
	HoursPosted   float64
	HoursUnposted float64
	HoursThisWeek float64

	BudgetCost    CostBreakdown
	BillablePrice CostBreakdown
	PostedCost    CostBreakdown
	InvoicedPrice CostBreakdown

	UnpostedCost  float64
	UnpostedPrice float64
	TotalCost     float64
	TotalPrice    float64

	BillingMode   BillingMode
	Weekly        []WeeklyBucket
	Tasks         []TaskBreakdown
	Members       []MemberBreakdown
	ResourceCount int

	GeneratedAt time.Time
}
