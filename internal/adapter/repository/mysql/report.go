package mysql

import (
	"context"
	"time"

	reportDomain "sales-daily-report/internal/domain/report"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ReportRepository struct{ db *gorm.DB }

func NewReportRepository(db *gorm.DB) *ReportRepository { return &ReportRepository{db: db} }

// Tx runs fn in a db transaction, passing a repo bound to the tx
func (r *ReportRepository) Tx(ctx context.Context, fn func(repo reportDomain.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&ReportRepository{db: tx})
	})
}

func preloadChildren(db *gorm.DB) *gorm.DB {
	byInsertion := func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }
	return db.Preload("Visits", byInsertion).Preload("SalesResults", byInsertion)
}

func (r *ReportRepository) Create(ctx context.Context, rp *reportDomain.Report) error {
	rp.ReportDate = reportDomain.DateOf(rp.ReportDate)
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(rp).Error
}

func (r *ReportRepository) Save(ctx context.Context, rp *reportDomain.Report) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(rp).Error
}

func (r *ReportRepository) GetByReportID(ctx context.Context, reportID string) (*reportDomain.Report, error) {
	var out reportDomain.Report
	res := preloadChildren(r.db.WithContext(ctx)).
		Where("report_id = ?", reportID).
		First(&out)
	return &out, res.Error
}

func (r *ReportRepository) GetByReportIDForUpdate(ctx context.Context, reportID string) (*reportDomain.Report, error) {
	var out reportDomain.Report
	res := preloadChildren(r.db.WithContext(ctx)).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("report_id = ?", reportID).
		First(&out)
	return &out, res.Error
}

func (r *ReportRepository) GetByUserAndDate(ctx context.Context, userID string, date time.Time) (*reportDomain.Report, error) {
	var out reportDomain.Report
	res := preloadChildren(r.db.WithContext(ctx)).
		Where("user_id = ? AND report_date = ?", userID, reportDomain.DateOf(date)).
		First(&out)
	return &out, res.Error
}

func (r *ReportRepository) ListByUserAndDateRange(ctx context.Context, userID string, start, end time.Time) ([]reportDomain.Report, error) {
	out := []reportDomain.Report{}
	start, end = reportDomain.DateOf(start), reportDomain.DateOf(end)
	if start.After(end) {
		return out, nil
	}
	res := preloadChildren(r.db.WithContext(ctx)).
		Where("user_id = ? AND report_date >= ? AND report_date <= ?", userID, start, end).
		Order("report_date ASC").
		Find(&out)
	return out, res.Error
}

func (r *ReportRepository) ListByStatus(ctx context.Context, status reportDomain.Status) ([]reportDomain.Report, error) {
	out := []reportDomain.Report{}
	res := preloadChildren(r.db.WithContext(ctx)).
		Where("status = ?", status).
		Order("submitted_at ASC, id ASC").
		Find(&out)
	return out, res.Error
}

func (r *ReportRepository) CreateVisit(ctx context.Context, v *reportDomain.Visit) error {
	return r.db.WithContext(ctx).Create(v).Error
}

func (r *ReportRepository) CreateSalesResult(ctx context.Context, s *reportDomain.SalesResult) error {
	return r.db.WithContext(ctx).Create(s).Error
}
