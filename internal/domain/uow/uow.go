package uow

import (
	"context"

	"sales-daily-report/internal/domain/report"
	"sales-daily-report/internal/domain/team"
)

type Repos struct {
	Reports report.Repository
	Teams   team.Repository
}

type UnitOfWork interface {
	// plain tx
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// WithinReportTx serializes work on one report: it takes the per-report
	// lock, opens a tx, locks the row and passes it in. A missing report
	// surfaces as gorm.ErrRecordNotFound.
	WithinReportTx(ctx context.Context, reportID string, fn func(r Repos, rp *report.Report) error) error
}
