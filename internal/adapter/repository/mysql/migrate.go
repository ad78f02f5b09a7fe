package mysql

import (
	"sales-daily-report/internal/domain/report"
	"sales-daily-report/internal/domain/team"

	"gorm.io/gorm"
)

// AutoMigrate creates or updates every table the service owns.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&report.Report{},
		&report.Visit{},
		&report.SalesResult{},
		&team.Member{},
	)
}
