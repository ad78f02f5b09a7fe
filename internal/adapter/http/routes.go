package http

import "github.com/labstack/echo/v4"

type Handlers struct {
	Health  *Handler
	Reports *ReportHandler
	Teams   *TeamHandler
	Alerts  *AlertHandler
}

// Register mounts every route on e. Mutating report and team routes go
// through mutating when it is non-nil.
func Register(e *echo.Echo, h Handlers, mutating ...echo.MiddlewareFunc) {
	e.GET("/health", h.Health.Health)

	r := e.Group("/reports", mutating...)
	r.POST("", h.Reports.CreateReport)
	r.GET("/:report_id", h.Reports.GetReport)
	r.PATCH("/:report_id", h.Reports.UpdateReport)
	r.POST("/:report_id/submit", h.Reports.SubmitReport)
	r.POST("/:report_id/approve", h.Reports.ApproveReport)
	r.POST("/:report_id/visits", h.Reports.AddVisit)
	r.POST("/:report_id/sales", h.Reports.AddSalesResult)

	u := e.Group("/users/:user_id")
	u.GET("/reports", h.Reports.ListUserReports)
	u.GET("/reports/statistics", h.Reports.Statistics)
	u.GET("/reports/export", h.Reports.Export)
	if h.Alerts != nil {
		u.GET("/alerts", h.Alerts.ListUserAlerts)
	}

	e.GET("/approvals/pending", h.Reports.PendingApprovals)

	if h.Teams != nil {
		e.Group("/teams", mutating...).POST("/:manager_id/members", h.Teams.AddMember)
	}
}
