package mysql

import (
	"context"

	"sales-daily-report/internal/domain/report"
	"sales-daily-report/internal/domain/uow"
	"sales-daily-report/internal/infrastructure/lock"

	"gorm.io/gorm"
)

type GormUoW struct {
	db     *gorm.DB
	locker lock.Locker
}

// NewGormUoW: locker may be nil, in which case only the row lock applies.
func NewGormUoW(db *gorm.DB, locker lock.Locker) *GormUoW {
	return &GormUoW{db: db, locker: locker}
}

func (u *GormUoW) repos(tx *gorm.DB) uow.Repos {
	return uow.Repos{
		Reports: &ReportRepository{db: tx},
		Teams:   &TeamRepository{db: tx},
	}
}

func (u *GormUoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(u.repos(tx))
	})
}

func (u *GormUoW) WithinReportTx(ctx context.Context, reportID string, fn func(r uow.Repos, rp *report.Report) error) error {
	if u.locker != nil {
		release, err := u.locker.Lock(ctx, lock.ReportKey(reportID))
		if err != nil {
			return err
		}
		defer release()
	}
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r := u.repos(tx)
		// lock the report row up-front so guards and writes see one state
		rp, err := r.Reports.GetByReportIDForUpdate(ctx, reportID)
		if err != nil {
			return err
		}
		return fn(r, rp)
	})
}
