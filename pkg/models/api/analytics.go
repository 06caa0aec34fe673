package api

import "time"

type Project struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

type CostBreakdown struct {
	Labor    float64 `json:"labor"`
	Material float64 `json:"material"`
	Overhead float64 `json:"overhead"`
	Total    float64 `json:"total"`
}

type WeeklyBucket struct {
	ISOWeek         string  `json:"iso_week"`
	TotalHours      float64 `json:"total_hours"`
	ApprovedHours   float64 `json:"approved_hours"`
	PendingHours    float64 `json:"pending_hours"`
	CumulativeHours float64 `json:"cumulative_hours"`
}

type MemberHours struct {
	ResourceID   string  `json:"resource_id"`
	ResourceName string  `json:"resource_name"`
	Hours        float64 `json:"hours"`
}

type TaskHours struct {
	TaskCode string  `json:"task_code"`
	Hours    float64 `json:"hours"`
}

type TaskBreakdown struct {
	TaskCode      string        `json:"task_code"`
	Description   string        `json:"description"`
	Hours         float64       `json:"hours"`
	ApprovedHours float64       `json:"approved_hours"`
	PendingHours  float64       `json:"pending_hours"`
	UnitPrice     float64       `json:"unit_price,omitempty"`
	Members       []MemberHours `json:"members"`
}

type MemberBreakdown struct {
	ResourceID    string      `json:"resource_id"`
	ResourceName  string      `json:"resource_name"`
	Hours         float64     `json:"hours"`
	ApprovedHours float64     `json:"approved_hours"`
	PendingHours  float64     `json:"pending_hours"`
	Tasks         []TaskHours `json:"tasks"`
}

type ProjectAnalytics struct {
	ProjectCode   string  `json:"project_code"`
	HoursSpent    float64 `json:"hours_spent"`
	HoursPlanned  float64 `json:"hours_planned"`
	HoursPosted   float64 `json:"hours_posted"`
	HoursUnposted float64 `json:"hours_unposted"`
	HoursThisWeek float64 `json:"hours_this_week"`

	BudgetCost    CostBreakdown `json:"budget_cost"`
	BillablePrice CostBreakdown `json:"billable_price"`
	PostedCost    CostBreakdown `json:"posted_cost"`
	InvoicedPrice CostBreakdown `json:"invoiced_price"`

	UnpostedCost  float64 `json:"unposted_cost"`
	UnpostedPrice float64 `json:"unposted_price"`
	TotalCost     float64 `json:"total_cost"`
	TotalPrice    float64 `json:"total_price"`

	BillingMode   string            `json:"billing_mode"`
	Weekly        []WeeklyBucket    `json:"weekly"`
	Tasks         []TaskBreakdown   `json:"tasks"`
	Members       []MemberBreakdown `json:"members"`
	ResourceCount int               `json:"resource_count"`

	GeneratedAt time.Time `json:"generated_at"`
}
