package report

import (
	"context"
	"time"
)

// Repository is the report store. Lookups return gorm.ErrRecordNotFound when
// nothing matches.
type Repository interface {
	Create(ctx context.Context, r *Report) error
	GetByReportID(ctx context.Context, reportID string) (*Report, error)
	// GetByReportIDForUpdate locks the row for the rest of the transaction.
	GetByReportIDForUpdate(ctx context.Context, reportID string) (*Report, error)
	GetByUserAndDate(ctx context.Context, userID string, date time.Time) (*Report, error)
	// Save upserts the report columns; visits and sales are written through
	// CreateVisit / CreateSalesResult only.
	Save(ctx context.Context, r *Report) error

	// Inclusive on both ends, ascending by report date.
	ListByUserAndDateRange(ctx context.Context, userID string, start, end time.Time) ([]Report, error)
	// Oldest submission first.
	ListByStatus(ctx context.Context, status Status) ([]Report, error)

	CreateVisit(ctx context.Context, v *Visit) error
	CreateSalesResult(ctx context.Context, s *SalesResult) error
}
