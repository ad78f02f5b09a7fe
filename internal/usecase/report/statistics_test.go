package report

import (
	"context"
	"errors"
	"testing"
	"time"

	domain "sales-daily-report/internal/domain/report"
	"sales-daily-report/internal/testutil/reportmock"
	"sales-daily-report/internal/testutil/teammock"
	"sales-daily-report/internal/testutil/uowmock"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestStatistics_Window(t *testing.T) {
	uc, _ := newMemUsecase(t)
	ctx := context.Background()

	// today is 2024-06-10, a 7 day window starts 2024-06-04
	approved := draftWithSummary(t, uc, "u001", date(2024, 6, 4))
	_, err := uc.AddVisit(ctx, approved, VisitInput{CustomerID: "c1"})
	require.NoError(t, err)
	_, err = uc.AddVisit(ctx, approved, VisitInput{CustomerID: "c2"})
	require.NoError(t, err)
	_, err = uc.AddSalesResult(ctx, approved, SalesInput{ProductID: "p1", Quantity: 1, Amount: decimal.RequireFromString("250.25")})
	require.NoError(t, err)
	hours := 8.0
	expense := decimal.NewFromInt(40)
	require.NoError(t, uc.Update(ctx, approved, domain.Patch{WorkingHours: &hours, TravelExpense: &expense}))
	require.NoError(t, uc.Submit(ctx, approved))
	require.NoError(t, uc.Approve(ctx, approved, "u004"))

	submitted := draftWithSummary(t, uc, "u001", date(2024, 6, 10))
	_, err = uc.AddVisit(ctx, submitted, VisitInput{CustomerID: "c3"})
	require.NoError(t, err)
	require.NoError(t, uc.Submit(ctx, submitted))

	draft := draftWithSummary(t, uc, "u001", date(2024, 6, 7))
	_, err = uc.AddVisit(ctx, draft, VisitInput{CustomerID: "c4"})
	require.NoError(t, err)

	// outside the window and another user's report
	require.NoError(t, uc.Submit(ctx, draftWithSummary(t, uc, "u001", date(2024, 6, 3))))
	require.NoError(t, uc.Submit(ctx, draftWithSummary(t, uc, "u002", date(2024, 6, 8))))

	st, err := uc.Statistics(ctx, "u001", 7)
	require.NoError(t, err)

	assert.Equal(t, "2024-06-04", st.StartDate)
	assert.Equal(t, "2024-06-10", st.EndDate)
	assert.Equal(t, 7, st.ExpectedReports)
	assert.Equal(t, 3, st.TotalReports)
	assert.Equal(t, 2, st.SubmittedReports, "approved reports count as submitted")
	assert.Equal(t, 1, st.ApprovedReports)
	assert.InDelta(t, 2.0/7.0, st.SubmissionRate, 1e-9)
	assert.Equal(t, 4, st.TotalVisits)
	assert.Equal(t, 1, st.TotalSalesCount)
	assert.True(t, st.TotalSalesAmount.Equal(decimal.RequireFromString("250.25")))
	assert.InDelta(t, 1.5, st.AvgVisitsPerSubmitted, 1e-9)
	assert.InDelta(t, 8.0, st.TotalWorkingHours, 1e-9)
	assert.True(t, st.TotalTravelExpense.Equal(expense))
}

func TestStatistics_Bounds(t *testing.T) {
	uc, _ := newMemUsecase(t)
	ctx := context.Background()

	for _, period := range []int{0, -3} {
		st, err := uc.Statistics(ctx, "u001", period)
		require.NoError(t, err)
		assert.Zero(t, st.ExpectedReports)
		assert.Zero(t, st.SubmissionRate)
		assert.Zero(t, st.AvgVisitsPerSubmitted)
	}

	st, err := uc.Statistics(ctx, "nobody", 30)
	require.NoError(t, err)
	assert.Equal(t, 30, st.ExpectedReports)
	assert.Zero(t, st.TotalReports)
	assert.Zero(t, st.SubmissionRate)
	assert.Zero(t, st.AvgVisitsPerSubmitted)

	require.NoError(t, uc.Submit(ctx, draftWithSummary(t, uc, "u001", date(2024, 6, 10))))
	one, err := uc.Statistics(ctx, "u001", 1)
	require.NoError(t, err)
	assert.Equal(t, "2024-06-10", one.StartDate)
	assert.Equal(t, 1.0, one.SubmissionRate)
}

func TestStatistics_RateClamped(t *testing.T) {
	// a store that hands back more rows than days must still yield a rate <= 1
	rows := []domain.Report{}
	for i := 0; i < 3; i++ {
		rows = append(rows, domain.Report{UserID: "u001", ReportDate: date(2024, 6, 10), Status: domain.StatusSubmitted})
	}
	repo := &reportmock.Repo{
		ListByUserAndDateRangeFn: func(context.Context, string, time.Time, time.Time) ([]domain.Report, error) {
			return rows, nil
		},
	}
	uc := NewUsecase(repo, uowmock.New(), WithClock(func() time.Time { return fixedNow }))

	st, err := uc.Statistics(context.Background(), "u001", 1)
	require.NoError(t, err)
	assert.Equal(t, 1.0, st.SubmissionRate)
}

func TestStatistics_StoreFailure(t *testing.T) {
	boom := errors.New("db down")
	repo := &reportmock.Repo{
		ListByUserAndDateRangeFn: func(context.Context, string, time.Time, time.Time) ([]domain.Report, error) {
			return nil, boom
		},
	}
	uc := NewUsecase(repo, uowmock.New(), WithClock(func() time.Time { return fixedNow }))
	_, err := uc.Statistics(context.Background(), "u001", 7)
	assert.ErrorIs(t, err, boom)
}

func TestMissingReports(t *testing.T) {
	roster := &teammock.Repo{
		AllMemberIDsFn: func(context.Context) ([]string, error) { return []string{"u001", "u002", "u003"}, nil },
	}
	uc, _ := newMemUsecase(t, WithRoster(roster))
	ctx := context.Background()
	day := date(2024, 6, 9)

	require.NoError(t, uc.Submit(ctx, draftWithSummary(t, uc, "u001", day)))
	draftWithSummary(t, uc, "u002", day)

	alerts, err := uc.MissingReports(ctx, day.Add(15*time.Hour))
	require.NoError(t, err)
	require.Len(t, alerts, 2)

	users := []string{alerts[0].UserID, alerts[1].UserID}
	assert.ElementsMatch(t, []string{"u002", "u003"}, users)
	for _, a := range alerts {
		assert.Equal(t, "missing_"+a.UserID+"_20240609", a.AlertID)
		assert.Equal(t, domain.AlertTypeMissingReport, a.Type)
		assert.Equal(t, domain.AlertLevelWarning, a.Level)
		assert.True(t, a.ReportDate.Equal(day))
		assert.Equal(t, domain.AlertTTL, a.ExpiresAt.Sub(a.CreatedAt))
		assert.Contains(t, a.Message, "2024-06-09")
	}
}

func TestMissingReports_NoRoster(t *testing.T) {
	uc, _ := newMemUsecase(t)
	alerts, err := uc.MissingReports(context.Background(), fixedNow)
	require.NoError(t, err)
	assert.Empty(t, alerts)
}

func TestMissingReports_LookupFailure(t *testing.T) {
	boom := errors.New("db down")
	calls := 0
	repo := &reportmock.Repo{
		GetByUserAndDateFn: func(context.Context, string, time.Time) (*domain.Report, error) {
			calls++
			if calls == 1 {
				return nil, gorm.ErrRecordNotFound
			}
			return nil, boom
		},
	}
	roster := &teammock.Repo{
		AllMemberIDsFn: func(context.Context) ([]string, error) { return []string{"u001", "u002"}, nil },
	}
	uc := NewUsecase(repo, uowmock.New(), WithRoster(roster))

	_, err := uc.MissingReports(context.Background(), fixedNow)
	assert.ErrorIs(t, err, boom)
}
