package report

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

type Status string

const (
	StatusDraft     Status = "draft"
	StatusSubmitted Status = "submitted"
	StatusApproved  Status = "approved"
)

// Rank orders statuses along the workflow; transitions only ever increase it.
func (s Status) Rank() int {
	switch s {
	case StatusDraft:
		return 0
	case StatusSubmitted:
		return 1
	case StatusApproved:
		return 2
	}
	return -1
}

func (s Status) Valid() bool { return s.Rank() >= 0 }

// Editable reports whether content edits and appends are still allowed.
func (s Status) Editable() bool { return s != StatusApproved }

// Activity is one line of the free-form activity log of a day.
type Activity struct {
	Time     string `json:"time"`
	Activity string `json:"activity"`
	Detail   string `json:"detail,omitempty"`
}

// Report is one salesperson's report for one calendar day.
type Report struct {
	ID         uint64    `gorm:"primaryKey;column:id" json:"-"`
	ReportID   string    `gorm:"column:report_id;size:32;not null;uniqueIndex:ux_reports_report_id" json:"report_id"`
	UserID     string    `gorm:"column:user_id;size:64;not null;uniqueIndex:ux_reports_user_date,priority:1" json:"user_id"`
	ReportDate time.Time `gorm:"column:report_date;type:date;not null;uniqueIndex:ux_reports_user_date,priority:2" json:"report_date"`
	Status     Status    `gorm:"column:status;size:16;not null;default:draft;index:idx_reports_status" json:"status"`

	Summary       string                        `gorm:"column:summary;type:text" json:"summary"`
	Activities    datatypes.JSONSlice[Activity] `gorm:"column:activities" json:"activities"`
	Challenges    string                        `gorm:"column:challenges;type:text" json:"challenges"`
	NextActions   string                        `gorm:"column:next_actions;type:text" json:"next_actions"`
	WorkingHours  float64                       `gorm:"column:working_hours" json:"working_hours"`
	TravelExpense decimal.Decimal               `gorm:"column:travel_expense;type:decimal(12,2)" json:"travel_expense"`

	Visits       []Visit       `gorm:"foreignKey:DailyReportID;references:ID" json:"visits"`
	SalesResults []SalesResult `gorm:"foreignKey:DailyReportID;references:ID" json:"sales_results"`

	ApproverID  *string    `gorm:"column:approver_id;size:64" json:"approver_id,omitempty"`
	SubmittedAt *time.Time `gorm:"column:submitted_at;index:idx_reports_submitted_at" json:"submitted_at,omitempty"`
	ApprovedAt  *time.Time `gorm:"column:approved_at" json:"approved_at,omitempty"`
	CreatedAt   time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Report) TableName() string { return "daily_reports" }

// SalesTotal sums the amounts of all attached sales results.
func (r *Report) SalesTotal() decimal.Decimal {
	total := decimal.Zero
	for _, s := range r.SalesResults {
		total = total.Add(s.Amount)
	}
	return total
}

type Visit struct {
	ID            uint64    `gorm:"primaryKey;column:id" json:"-"`
	VisitID       string    `gorm:"column:visit_id;size:32;not null;uniqueIndex:ux_visits_visit_id" json:"visit_id"`
	DailyReportID uint64    `gorm:"column:daily_report_id;not null;index" json:"-"`
	CustomerID    string    `gorm:"column:customer_id;size:64" json:"customer_id"`
	Purpose       string    `gorm:"column:purpose;type:text" json:"purpose"`
	Outcome       string    `gorm:"column:outcome;type:text" json:"outcome"`
	VisitTime     string    `gorm:"column:visit_time;size:5" json:"time"`
	NextAction    string    `gorm:"column:next_action;type:text" json:"next_action"`
	CreatedAt     time.Time `gorm:"column:created_at" json:"created_at"`
}

func (Visit) TableName() string { return "report_visits" }

type SalesResult struct {
	ID            uint64          `gorm:"primaryKey;column:id" json:"-"`
	ResultID      string          `gorm:"column:result_id;size:32;not null;uniqueIndex:ux_sales_result_id" json:"result_id"`
	DailyReportID uint64          `gorm:"column:daily_report_id;not null;index" json:"-"`
	CustomerID    string          `gorm:"column:customer_id;size:64" json:"customer_id"`
	ProductID     string          `gorm:"column:product_id;size:64" json:"product_id"`
	Quantity      int             `gorm:"column:quantity" json:"quantity"`
	Amount        decimal.Decimal `gorm:"column:amount;type:decimal(18,2)" json:"amount"`
	CreatedAt     time.Time       `gorm:"column:created_at" json:"created_at"`
}

func (SalesResult) TableName() string { return "report_sales_results" }

// DateOf truncates t to its calendar date, expressed as midnight UTC.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
