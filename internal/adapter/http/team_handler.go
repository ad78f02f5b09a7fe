package http

import (
	"context"
	"net/http"

	"sales-daily-report/internal/domain/report"
	"sales-daily-report/internal/domain/team"

	"github.com/labstack/echo/v4"
)

type TeamHandler struct{ teams team.Repository }

func NewTeamHandler(teams team.Repository) *TeamHandler { return &TeamHandler{teams: teams} }

type addMemberReq struct {
	MemberID string `json:"member_id" validate:"required,userid"`
	TeamID   string `json:"team_id"   validate:"omitempty,max=64"`
}

type memberResp struct {
	TeamID    string `json:"team_id,omitempty"`
	ManagerID string `json:"manager_id"`
	MemberID  string `json:"member_id"`
}

// AddMember puts member_id under the manager in the path. Re-adding an
// existing pair is a no-op.
func (h *TeamHandler) AddMember(c echo.Context) error {
	managerID := c.Param("manager_id")
	if !reUserID.MatchString(managerID) {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid manager_id path param"})
	}
	var req addMemberReq
	if ok, err := bindValid(c, &req); !ok {
		return err
	}
	m := &team.Member{TeamID: req.TeamID, ManagerID: managerID, MemberID: req.MemberID}
	if err := h.teams.Add(c.Request().Context(), m); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, memberResp{TeamID: m.TeamID, ManagerID: m.ManagerID, MemberID: m.MemberID})
}

// AlertLister reads the live alerts of one user.
type AlertLister interface {
	ListByUser(ctx context.Context, userID string) ([]report.Alert, error)
}

type AlertHandler struct{ alerts AlertLister }

// NewAlertHandler: a nil lister means alerts are not kept (redis disabled).
func NewAlertHandler(alerts AlertLister) *AlertHandler { return &AlertHandler{alerts: alerts} }

func (h *AlertHandler) ListUserAlerts(c echo.Context) error {
	if h.alerts == nil {
		return c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "alerts store unavailable"})
	}
	userID := c.Param("user_id")
	if !reUserID.MatchString(userID) {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid user_id path param"})
	}
	alerts, err := h.alerts.ListByUser(c.Request().Context(), userID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, alerts)
}
