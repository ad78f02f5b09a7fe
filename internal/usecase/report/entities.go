package report

import (
	"time"

	domain "sales-daily-report/internal/domain/report"

	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

type VisitInput struct {
	CustomerID string
	Purpose    string
	Outcome    string
	VisitTime  string // HH:MM
	NextAction string
}

type SalesInput struct {
	CustomerID string
	ProductID  string
	Quantity   int
	Amount     decimal.Decimal
}

type VisitDTO struct {
	VisitID    string    `json:"visit_id"`
	CustomerID string    `json:"customer_id"`
	Purpose    string    `json:"purpose"`
	Outcome    string    `json:"outcome"`
	VisitTime  string    `json:"time"`
	NextAction string    `json:"next_action"`
	CreatedAt  time.Time `json:"created_at"`
}

type SalesResultDTO struct {
	ResultID   string          `json:"result_id"`
	CustomerID string          `json:"customer_id"`
	ProductID  string          `json:"product_id"`
	Quantity   int             `json:"quantity"`
	Amount     decimal.Decimal `json:"amount"`
	CreatedAt  time.Time       `json:"created_at"`
}

type ReportDTO struct {
	ReportID      string            `json:"report_id"`
	UserID        string            `json:"user_id"`
	ReportDate    string            `json:"report_date"`
	Status        string            `json:"status"`
	Summary       string            `json:"summary"`
	Activities    []domain.Activity `json:"activities"`
	Challenges    string            `json:"challenges"`
	NextActions   string            `json:"next_actions"`
	WorkingHours  float64           `json:"working_hours"`
	TravelExpense decimal.Decimal   `json:"travel_expense"`
	Visits        []VisitDTO        `json:"visits"`
	SalesResults  []SalesResultDTO  `json:"sales_results"`
	VisitCount    int               `json:"visit_count"`
	SalesTotal    decimal.Decimal   `json:"sales_total"`
	ApproverID    string            `json:"approver_id,omitempty"`
	SubmittedAt   *time.Time        `json:"submitted_at,omitempty"`
	ApprovedAt    *time.Time        `json:"approved_at,omitempty"`
	CreatedAt     time.Time         `json:"created_at"`
}

// Statistics aggregates one user's reports over a trailing window of days.
type Statistics struct {
	UserID                string          `json:"user_id"`
	PeriodDays            int             `json:"period_days"`
	StartDate             string          `json:"start_date"`
	EndDate               string          `json:"end_date"`
	ExpectedReports       int             `json:"expected_reports"`
	TotalReports          int             `json:"total_reports"`
	SubmittedReports      int             `json:"submitted_reports"`
	ApprovedReports       int             `json:"approved_reports"`
	SubmissionRate        float64         `json:"submission_rate"`
	TotalVisits           int             `json:"total_visits"`
	TotalSalesCount       int             `json:"total_sales_count"`
	TotalSalesAmount      decimal.Decimal `json:"total_sales_amount"`
	AvgVisitsPerSubmitted float64         `json:"avg_visits_per_submitted"`
	TotalWorkingHours     float64         `json:"total_working_hours"`
	TotalTravelExpense    decimal.Decimal `json:"total_travel_expense"`
}

func toVisitDTO(v domain.Visit) VisitDTO {
	return VisitDTO{
		VisitID: v.VisitID, CustomerID: v.CustomerID, Purpose: v.Purpose, Outcome: v.Outcome,
		VisitTime: v.VisitTime, NextAction: v.NextAction, CreatedAt: v.CreatedAt,
	}
}

func toSalesDTO(s domain.SalesResult) SalesResultDTO {
	return SalesResultDTO{
		ResultID: s.ResultID, CustomerID: s.CustomerID, ProductID: s.ProductID,
		Quantity: s.Quantity, Amount: s.Amount, CreatedAt: s.CreatedAt,
	}
}

func toDTO(rp *domain.Report) *ReportDTO {
	dto := &ReportDTO{
		ReportID:      rp.ReportID,
		UserID:        rp.UserID,
		ReportDate:    rp.ReportDate.Format(dateLayout),
		Status:        string(rp.Status),
		Summary:       rp.Summary,
		Activities:    append([]domain.Activity{}, rp.Activities...),
		Challenges:    rp.Challenges,
		NextActions:   rp.NextActions,
		WorkingHours:  rp.WorkingHours,
		TravelExpense: rp.TravelExpense,
		Visits:        make([]VisitDTO, 0, len(rp.Visits)),
		SalesResults:  make([]SalesResultDTO, 0, len(rp.SalesResults)),
		VisitCount:    len(rp.Visits),
		SalesTotal:    rp.SalesTotal(),
		SubmittedAt:   rp.SubmittedAt,
		ApprovedAt:    rp.ApprovedAt,
		CreatedAt:     rp.CreatedAt,
	}
	for _, v := range rp.Visits {
		dto.Visits = append(dto.Visits, toVisitDTO(v))
	}
	for _, s := range rp.SalesResults {
		dto.SalesResults = append(dto.SalesResults, toSalesDTO(s))
	}
	if rp.ApproverID != nil {
		dto.ApproverID = *rp.ApproverID
	}
	return dto
}

func toDTOs(rps []domain.Report) []ReportDTO {
	out := make([]ReportDTO, 0, len(rps))
	for i := range rps {
		out = append(out, *toDTO(&rps[i]))
	}
	return out
}
