package report

import (
	"context"
	"errors"
	"fmt"
	"time"

	domain "sales-daily-report/internal/domain/report"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Statistics aggregates the trailing periodDays calendar days ending today,
// both ends included. One report is expected per day; a non-positive period
// expects none and yields zeroed figures.
func (u *Usecase) Statistics(ctx context.Context, userID string, periodDays int) (*Statistics, error) {
	today := domain.DateOf(u.now())
	st := &Statistics{
		UserID:             userID,
		PeriodDays:         periodDays,
		StartDate:          today.Format(dateLayout),
		EndDate:            today.Format(dateLayout),
		TotalSalesAmount:   decimal.Zero,
		TotalTravelExpense: decimal.Zero,
	}
	if periodDays <= 0 {
		return st, nil
	}

	start := today.AddDate(0, 0, -(periodDays - 1))
	st.StartDate = start.Format(dateLayout)
	st.ExpectedReports = periodDays

	rps, err := u.listByUser(ctx, userID, start, today)
	if err != nil {
		return nil, err
	}

	submittedVisits := 0
	for i := range rps {
		rp := &rps[i]
		if rp.UserID != userID {
			continue
		}
		st.TotalReports++
		st.TotalVisits += len(rp.Visits)
		st.TotalSalesCount += len(rp.SalesResults)
		st.TotalSalesAmount = st.TotalSalesAmount.Add(rp.SalesTotal())
		st.TotalWorkingHours += rp.WorkingHours
		st.TotalTravelExpense = st.TotalTravelExpense.Add(rp.TravelExpense)

		switch rp.Status {
		case domain.StatusApproved:
			st.ApprovedReports++
			fallthrough
		case domain.StatusSubmitted:
			st.SubmittedReports++
			submittedVisits += len(rp.Visits)
		}
	}

	st.SubmissionRate = ratio(float64(st.SubmittedReports), float64(st.ExpectedReports))
	if st.SubmissionRate > 1 {
		st.SubmissionRate = 1
	}
	st.AvgVisitsPerSubmitted = ratio(float64(submittedVisits), float64(st.SubmittedReports))
	return st, nil
}

func ratio(num, den float64) float64 {
	if den <= 0 {
		return 0
	}
	return num / den
}

// MissingReports builds a warning for every rostered user whose report for
// day is absent or still a draft.
func (u *Usecase) MissingReports(ctx context.Context, day time.Time) ([]domain.Alert, error) {
	alerts := []domain.Alert{}
	if u.roster == nil {
		return alerts, nil
	}
	users, err := u.roster.AllMemberIDs(ctx)
	if err != nil {
		return nil, err
	}

	day = domain.DateOf(day)
	now := u.now().UTC()
	for _, userID := range users {
		rp, err := u.repo.GetByUserAndDate(ctx, userID, day)
		switch {
		case err == nil && rp.Status != domain.StatusDraft:
			continue
		case err != nil && !errors.Is(err, gorm.ErrRecordNotFound):
			return nil, err
		}
		alerts = append(alerts, domain.Alert{
			AlertID:    fmt.Sprintf("missing_%s_%s", userID, day.Format("20060102")),
			UserID:     userID,
			Type:       domain.AlertTypeMissingReport,
			Level:      domain.AlertLevelWarning,
			Title:      "Daily report not submitted",
			Message:    fmt.Sprintf("The daily report for %s has not been submitted.", day.Format(dateLayout)),
			ReportDate: day,
			CreatedAt:  now,
			ExpiresAt:  now.Add(domain.AlertTTL),
		})
	}
	return alerts, nil
}
