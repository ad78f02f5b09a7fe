package reportmock

import (
	"context"
	"time"

	domain "sales-daily-report/internal/domain/report"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
// Writes default to no-op success, reads to context.Canceled.
type Repo struct {
	CreateFn                 func(ctx context.Context, r *domain.Report) error
	GetByReportIDFn          func(ctx context.Context, reportID string) (*domain.Report, error)
	GetByReportIDForUpdateFn func(ctx context.Context, reportID string) (*domain.Report, error)
	GetByUserAndDateFn       func(ctx context.Context, userID string, date time.Time) (*domain.Report, error)
	SaveFn                   func(ctx context.Context, r *domain.Report) error
	ListByUserAndDateRangeFn func(ctx context.Context, userID string, start, end time.Time) ([]domain.Report, error)
	ListByStatusFn           func(ctx context.Context, status domain.Status) ([]domain.Report, error)
	CreateVisitFn            func(ctx context.Context, v *domain.Visit) error
	CreateSalesResultFn      func(ctx context.Context, s *domain.SalesResult) error
}

func (m *Repo) Create(ctx context.Context, r *domain.Report) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, r)
	}
	return nil
}

func (m *Repo) GetByReportID(ctx context.Context, reportID string) (*domain.Report, error) {
	if m.GetByReportIDFn != nil {
		return m.GetByReportIDFn(ctx, reportID)
	}
	return nil, context.Canceled
}

func (m *Repo) GetByReportIDForUpdate(ctx context.Context, reportID string) (*domain.Report, error) {
	if m.GetByReportIDForUpdateFn != nil {
		return m.GetByReportIDForUpdateFn(ctx, reportID)
	}
	return nil, context.Canceled
}

func (m *Repo) GetByUserAndDate(ctx context.Context, userID string, date time.Time) (*domain.Report, error) {
	if m.GetByUserAndDateFn != nil {
		return m.GetByUserAndDateFn(ctx, userID, date)
	}
	return nil, context.Canceled
}

func (m *Repo) Save(ctx context.Context, r *domain.Report) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, r)
	}
	return nil
}

func (m *Repo) ListByUserAndDateRange(ctx context.Context, userID string, start, end time.Time) ([]domain.Report, error) {
	if m.ListByUserAndDateRangeFn != nil {
		return m.ListByUserAndDateRangeFn(ctx, userID, start, end)
	}
	return nil, context.Canceled
}

func (m *Repo) ListByStatus(ctx context.Context, status domain.Status) ([]domain.Report, error) {
	if m.ListByStatusFn != nil {
		return m.ListByStatusFn(ctx, status)
	}
	return nil, context.Canceled
}

func (m *Repo) CreateVisit(ctx context.Context, v *domain.Visit) error {
	if m.CreateVisitFn != nil {
		return m.CreateVisitFn(ctx, v)
	}
	return nil
}

func (m *Repo) CreateSalesResult(ctx context.Context, s *domain.SalesResult) error {
	if m.CreateSalesResultFn != nil {
		return m.CreateSalesResultFn(ctx, s)
	}
	return nil
}
