package report

import "time"

const (
	AlertTypeMissingReport = "missing_report"
	AlertLevelWarning      = "warning"

	// AlertTTL is how long a missing-report alert stays relevant.
	AlertTTL = 7 * 24 * time.Hour
)

// Alert tells a salesperson that a day's report is missing or still a draft.
type Alert struct {
	AlertID    string    `json:"alert_id"`
	UserID     string    `json:"user_id"`
	Type       string    `json:"type"`
	Level      string    `json:"level"`
	Title      string    `json:"title"`
	Message    string    `json:"message"`
	ReportDate time.Time `json:"report_date"`
	CreatedAt  time.Time `json:"created_at"`
	ExpiresAt  time.Time `json:"expires_at"`
}
