package http

import (
	"net/http"
	"strings"

	domain "sales-daily-report/internal/domain/report"
	ucReport "sales-daily-report/internal/usecase/report"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

const mimeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ReportHandler struct {
	uc          *ucReport.Usecase
	statsPeriod int
}

// NewReportHandler: statsPeriod is the window used when a statistics request
// omits period_days.
func NewReportHandler(uc *ucReport.Usecase, statsPeriod int) *ReportHandler {
	return &ReportHandler{uc: uc, statsPeriod: statsPeriod}
}

type createReportReq struct {
	UserID     string `json:"user_id"     validate:"required,userid"`
	ReportDate string `json:"report_date" validate:"required,datetime=2006-01-02"`
}

type updateReportReq struct {
	Summary       *string            `json:"summary"`
	Activities    *[]domain.Activity `json:"activities"`
	Challenges    *string            `json:"challenges"`
	NextActions   *string            `json:"next_actions"`
	WorkingHours  *float64           `json:"working_hours"`
	TravelExpense *decimal.Decimal   `json:"travel_expense"`
}

type approveReportReq struct {
	ApproverID string `json:"approver_id" validate:"required,userid"`
}

type addVisitReq struct {
	CustomerID string `json:"customer_id" validate:"required"`
	Purpose    string `json:"purpose"`
	Outcome    string `json:"outcome"`
	VisitTime  string `json:"time"        validate:"omitempty,hhmm"`
	NextAction string `json:"next_action"`
}

type addSalesReq struct {
	CustomerID string          `json:"customer_id"`
	ProductID  string          `json:"product_id"  validate:"required"`
	Quantity   int             `json:"quantity"    validate:"gte=0"`
	Amount     decimal.Decimal `json:"amount"      validate:"gte=0"`
}

func (h *ReportHandler) CreateReport(c echo.Context) error {
	var req createReportReq
	if ok, err := bindValid(c, &req); !ok {
		return err
	}
	date, err := parseDate(req.ReportDate)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "report_date must be a YYYY-MM-DD date"})
	}
	dto, err := h.uc.Create(c.Request().Context(), req.UserID, date)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *ReportHandler) GetReport(c echo.Context) error {
	reportID := c.Param("report_id")
	if reportID == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing report_id path param"})
	}
	dto, err := h.uc.Get(c.Request().Context(), reportID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

// UpdateReport accepts only the editable fields; any other key is a 400.
func (h *ReportHandler) UpdateReport(c echo.Context) error {
	reportID := c.Param("report_id")
	if reportID == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing report_id path param"})
	}
	var req updateReportReq
	if err := decodeStrict(c, &req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body: " + err.Error()})
	}
	patch := domain.Patch(req)
	if patch.Empty() {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "no updatable fields in body"})
	}

	ctx := c.Request().Context()
	if err := h.uc.Update(ctx, reportID, patch); err != nil {
		return writeError(c, err)
	}
	dto, err := h.uc.Get(ctx, reportID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *ReportHandler) SubmitReport(c echo.Context) error {
	reportID := c.Param("report_id")
	if reportID == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing report_id path param"})
	}
	ctx := c.Request().Context()
	if err := h.uc.Submit(ctx, reportID); err != nil {
		return writeError(c, err)
	}
	dto, err := h.uc.Get(ctx, reportID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *ReportHandler) ApproveReport(c echo.Context) error {
	reportID := c.Param("report_id")
	if reportID == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing report_id path param"})
	}
	var req approveReportReq
	if ok, err := bindValid(c, &req); !ok {
		return err
	}
	ctx := c.Request().Context()
	if err := h.uc.Approve(ctx, reportID, req.ApproverID); err != nil {
		return writeError(c, err)
	}
	dto, err := h.uc.Get(ctx, reportID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *ReportHandler) AddVisit(c echo.Context) error {
	reportID := c.Param("report_id")
	if reportID == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing report_id path param"})
	}
	var req addVisitReq
	if ok, err := bindValid(c, &req); !ok {
		return err
	}
	dto, err := h.uc.AddVisit(c.Request().Context(), reportID, ucReport.VisitInput(req))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *ReportHandler) AddSalesResult(c echo.Context) error {
	reportID := c.Param("report_id")
	if reportID == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing report_id path param"})
	}
	var req addSalesReq
	if ok, err := bindValid(c, &req); !ok {
		return err
	}
	dto, err := h.uc.AddSalesResult(c.Request().Context(), reportID, ucReport.SalesInput(req))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *ReportHandler) ListUserReports(c echo.Context) error {
	start, end, err := dateRange(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	}
	dtos, err := h.uc.ListByUser(c.Request().Context(), c.Param("user_id"), start, end)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dtos)
}

func (h *ReportHandler) Statistics(c echo.Context) error {
	period, err := queryInt(c, "period_days", h.statsPeriod)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "period_days must be an integer"})
	}
	st, err := h.uc.Statistics(c.Request().Context(), c.Param("user_id"), period)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, st)
}

// Export streams the user's reports as CSV (default) or XLSX.
func (h *ReportHandler) Export(c echo.Context) error {
	start, end, err := dateRange(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	}
	userID := c.Param("user_id")
	ctx := c.Request().Context()
	base := "reports_" + userID + "_" + start.Format(dateLayout) + "_" + end.Format(dateLayout)

	switch strings.ToLower(c.QueryParam("format")) {
	case "", "csv":
		out, err := h.uc.ExportCSV(ctx, userID, start, end)
		if err != nil {
			return writeError(c, err)
		}
		c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+base+`.csv"`)
		return c.Blob(http.StatusOK, "text/csv; charset=utf-8", []byte(out))
	case "xlsx":
		out, err := h.uc.ExportXLSX(ctx, userID, start, end)
		if err != nil {
			return writeError(c, err)
		}
		c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+base+`.xlsx"`)
		return c.Blob(http.StatusOK, mimeXLSX, out)
	default:
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "format must be csv or xlsx"})
	}
}

func (h *ReportHandler) PendingApprovals(c echo.Context) error {
	approverID := strings.TrimSpace(c.QueryParam("approver_id"))
	if approverID == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing approver_id query param"})
	}
	dtos, err := h.uc.PendingApprovals(c.Request().Context(), approverID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dtos)
}
