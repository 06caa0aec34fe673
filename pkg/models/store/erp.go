package store

// Wire models for the ERP's project/timesheet REST surface. Field names
// follow the remote JSON payloads; dates are ISO "2006-01-02" strings.

type Project struct {
	No          string `json:"number"`
	Description string `json:"displayName"`
}

type Resource struct {
	ID   string `json:"id"`
	No   string `json:"number"`
	Name string `json:"displayName"`
}

type Timesheet struct {
	No           string `json:"number"`
	ResourceNo   string `json:"resourceNumber"`
	StartingDate string `json:"startingDate"`
	EndingDate   string `json:"endingDate"`
}

type TimesheetLine struct {
	TimesheetNo   string  `json:"timeSheetNumber"`
	LineNo        int     `json:"lineNumber"`
	Type          string  `json:"type"`
	ProjectNo     string  `json:"jobNumber"`
	TaskNo        string  `json:"jobTaskNumber"`
	Description   string  `json:"description"`
	TotalQuantity float64 `json:"totalQuantity"`
	Status        string  `json:"status"`
}

type TimesheetDetail struct {
	Date     string  `json:"date"`
	Quantity float64 `json:"quantity"`
}

type PlanningLine struct {
	LineType   string  `json:"lineType"`
	Type       string  `json:"type"`
	ProjectNo  string  `json:"jobNumber"`
	TaskNo     string  `json:"jobTaskNumber"`
	ResourceNo string  `json:"number"`
	Quantity   float64 `json:"quantity"`
	UnitCost   float64 `json:"unitCost"`
	TotalCost  float64 `json:"totalCost"`
	UnitPrice  float64 `json:"unitPrice"`
	TotalPrice float64 `json:"totalPrice"`
}

type LedgerEntry struct {
	ProjectNo  string  `json:"jobNumber"`
	TaskNo     string  `json:"jobTaskNumber"`
	ResourceNo string  `json:"number"`
	Quantity   float64 `json:"quantity"`
	TotalCost  float64 `json:"totalCost"`
	TotalPrice float64 `json:"totalPrice"`
}
