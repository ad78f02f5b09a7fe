package report

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	domain "sales-daily-report/internal/domain/report"
	"sales-daily-report/internal/domain/uow"
	"sales-daily-report/internal/logging"
	"sales-daily-report/pkg/id"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const moduleName = "usecase/report"

var errNoUnitOfWork = errors.New("report usecase: no unit of work configured")

// Scope narrows pending approvals to the reports an approver is responsible for.
type Scope interface {
	MemberIDs(ctx context.Context, approverID string) ([]string, error)
}

// Roster lists the salespeople expected to file a report every day.
type Roster interface {
	AllMemberIDs(ctx context.Context) ([]string, error)
}

type Usecase struct {
	repo   domain.Repository
	uow    uow.UnitOfWork
	scope  Scope
	roster Roster
	log    *logrus.Logger
	now    func() time.Time
}

type Option func(*Usecase)

// WithScope filters PendingApprovals through s. Without it every submitted
// report is pending for every approver.
func WithScope(s Scope) Option { return func(u *Usecase) { u.scope = s } }

func WithRoster(r Roster) Option { return func(u *Usecase) { u.roster = r } }

func WithLogger(l *logrus.Logger) Option { return func(u *Usecase) { u.log = l } }

func WithClock(now func() time.Time) Option { return func(u *Usecase) { u.now = now } }

// NewUsecase: reads go through repo, every mutation through tx so it is
// serialized per report.
func NewUsecase(repo domain.Repository, tx uow.UnitOfWork, opts ...Option) *Usecase {
	u := &Usecase{repo: repo, uow: tx, log: logging.Discard(), now: time.Now}
	for _, o := range opts {
		o(u)
	}
	return u
}

// Create returns the user's report for date, creating a draft when none exists.
func (u *Usecase) Create(ctx context.Context, userID string, date time.Time) (*ReportDTO, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" || date.IsZero() {
		return nil, fmt.Errorf("%w: user_id and report_date are required", domain.ErrValidationFailed)
	}
	date = domain.DateOf(date)

	existing, err := u.repo.GetByUserAndDate(ctx, userID, date)
	switch {
	case err == nil:
		u.log.WithFields(logrus.Fields{"report_id": existing.ReportID, "user_id": userID}).
			Debug("daily report already exists")
		return toDTO(existing), nil
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, err
	}

	rp := &domain.Report{
		ReportID:     id.NewID32(),
		UserID:       userID,
		ReportDate:   date,
		Status:       domain.StatusDraft,
		Visits:       []domain.Visit{},
		SalesResults: []domain.SalesResult{},
	}
	if err := u.repo.Create(ctx, rp); err != nil {
		// lost a race on the (user, date) unique index: hand back the winner
		if winner, gerr := u.repo.GetByUserAndDate(ctx, userID, date); gerr == nil {
			return toDTO(winner), nil
		}
		logging.LogError(u.log, moduleName, "Create", "create report", userID, err)
		return nil, err
	}

	u.log.WithFields(logrus.Fields{
		"report_id": rp.ReportID, "user_id": userID, "report_date": date.Format(dateLayout),
	}).Info("daily report created")
	return toDTO(rp), nil
}

func (u *Usecase) Get(ctx context.Context, reportID string) (*ReportDTO, error) {
	rp, err := u.repo.GetByReportID(ctx, reportID)
	if err != nil {
		return nil, notFound(err, reportID)
	}
	return toDTO(rp), nil
}

// Update merges p into the report's editable fields. Approved reports are
// locked.
func (u *Usecase) Update(ctx context.Context, reportID string, p domain.Patch) error {
	return u.mutate(ctx, "Update", reportID, func(r uow.Repos, rp *domain.Report) error {
		if !rp.Status.Editable() {
			return fmt.Errorf("%w: report %s is %s", domain.ErrInvalidState, rp.ReportID, rp.Status)
		}
		p.ApplyTo(rp)
		return r.Reports.Save(ctx, rp)
	})
}

// Submit moves a valid draft to submitted. Resubmitting is rejected so the
// original SubmittedAt is never overwritten.
func (u *Usecase) Submit(ctx context.Context, reportID string) error {
	return u.mutate(ctx, "Submit", reportID, func(r uow.Repos, rp *domain.Report) error {
		if rp.Status != domain.StatusDraft {
			return fmt.Errorf("%w: only draft reports can be submitted, report %s is %s",
				domain.ErrInvalidState, rp.ReportID, rp.Status)
		}
		if err := rp.ValidateForSubmission(); err != nil {
			return err
		}
		now := u.now().UTC()
		rp.Status = domain.StatusSubmitted
		rp.SubmittedAt = &now
		return r.Reports.Save(ctx, rp)
	})
}

// Approve moves a submitted report to approved and records who approved it.
func (u *Usecase) Approve(ctx context.Context, reportID, approverID string) error {
	approverID = strings.TrimSpace(approverID)
	if approverID == "" {
		return fmt.Errorf("%w: approver_id is required", domain.ErrValidationFailed)
	}
	return u.mutate(ctx, "Approve", reportID, func(r uow.Repos, rp *domain.Report) error {
		// State guard: only submitted → approved
		if rp.Status != domain.StatusSubmitted {
			return fmt.Errorf("%w: only submitted reports can be approved, report %s is %s",
				domain.ErrInvalidState, rp.ReportID, rp.Status)
		}
		now := u.now().UTC()
		rp.Status = domain.StatusApproved
		rp.ApproverID = &approverID
		rp.ApprovedAt = &now
		return r.Reports.Save(ctx, rp)
	})
}

func (u *Usecase) AddVisit(ctx context.Context, reportID string, in VisitInput) (*VisitDTO, error) {
	var out *VisitDTO
	err := u.mutate(ctx, "AddVisit", reportID, func(r uow.Repos, rp *domain.Report) error {
		if !rp.Status.Editable() {
			return fmt.Errorf("%w: cannot add visits to approved report %s", domain.ErrInvalidState, rp.ReportID)
		}
		v := &domain.Visit{
			VisitID:       id.NewID32(),
			DailyReportID: rp.ID,
			CustomerID:    in.CustomerID,
			Purpose:       in.Purpose,
			Outcome:       in.Outcome,
			VisitTime:     in.VisitTime,
			NextAction:    in.NextAction,
			CreatedAt:     u.now().UTC(),
		}
		if err := r.Reports.CreateVisit(ctx, v); err != nil {
			return err
		}
		dto := toVisitDTO(*v)
		out = &dto
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (u *Usecase) AddSalesResult(ctx context.Context, reportID string, in SalesInput) (*SalesResultDTO, error) {
	if in.Amount.IsNegative() || in.Quantity < 0 {
		return nil, fmt.Errorf("%w: amount and quantity must not be negative", domain.ErrValidationFailed)
	}
	var out *SalesResultDTO
	err := u.mutate(ctx, "AddSalesResult", reportID, func(r uow.Repos, rp *domain.Report) error {
		if !rp.Status.Editable() {
			return fmt.Errorf("%w: cannot add sales results to approved report %s", domain.ErrInvalidState, rp.ReportID)
		}
		s := &domain.SalesResult{
			ResultID:      id.NewID32(),
			DailyReportID: rp.ID,
			CustomerID:    in.CustomerID,
			ProductID:     in.ProductID,
			Quantity:      in.Quantity,
			Amount:        in.Amount,
			CreatedAt:     u.now().UTC(),
		}
		if err := r.Reports.CreateSalesResult(ctx, s); err != nil {
			return err
		}
		dto := toSalesDTO(*s)
		out = &dto
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ListByUser returns the user's reports dated within [start, end], oldest
// first. A reversed range is empty, not an error.
func (u *Usecase) ListByUser(ctx context.Context, userID string, start, end time.Time) ([]ReportDTO, error) {
	rps, err := u.listByUser(ctx, userID, start, end)
	if err != nil {
		return nil, err
	}
	return toDTOs(rps), nil
}

func (u *Usecase) listByUser(ctx context.Context, userID string, start, end time.Time) ([]domain.Report, error) {
	start, end = domain.DateOf(start), domain.DateOf(end)
	if start.After(end) {
		return []domain.Report{}, nil
	}
	rps, err := u.repo.ListByUserAndDateRange(ctx, userID, start, end)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(rps, func(i, j int) bool { return rps[i].ReportDate.Before(rps[j].ReportDate) })
	return rps, nil
}

// PendingApprovals lists submitted reports awaiting approverID, oldest
// submission first.
func (u *Usecase) PendingApprovals(ctx context.Context, approverID string) ([]ReportDTO, error) {
	rps, err := u.repo.ListByStatus(ctx, domain.StatusSubmitted)
	if err != nil {
		return nil, err
	}

	if u.scope != nil {
		members, err := u.scope.MemberIDs(ctx, approverID)
		if err != nil {
			return nil, err
		}
		allowed := make(map[string]struct{}, len(members))
		for _, m := range members {
			allowed[m] = struct{}{}
		}
		kept := rps[:0]
		for _, rp := range rps {
			if _, ok := allowed[rp.UserID]; ok {
				kept = append(kept, rp)
			}
		}
		rps = kept
	}

	sort.SliceStable(rps, func(i, j int) bool {
		a, b := rps[i].SubmittedAt, rps[j].SubmittedAt
		if a == nil || b == nil {
			return a != nil
		}
		return a.Before(*b)
	})
	return toDTOs(rps), nil
}

// mutate runs fn against the locked report and maps store errors onto the
// report error taxonomy.
func (u *Usecase) mutate(ctx context.Context, op, reportID string, fn func(r uow.Repos, rp *domain.Report) error) error {
	if u.uow == nil {
		return errNoUnitOfWork
	}
	err := u.uow.WithinReportTx(ctx, reportID, fn)
	if err == nil {
		u.log.WithFields(logrus.Fields{"report_id": reportID, "op": op}).Info("daily report updated")
		return nil
	}
	err = notFound(err, reportID)
	if domain.IsRejected(err) {
		u.log.WithFields(logrus.Fields{"report_id": reportID, "op": op}).Warn(err.Error())
		return err
	}
	logging.LogError(u.log, moduleName, op, "report transaction", reportID, err)
	return err
}

func notFound(err error, reportID string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: %s", domain.ErrNotFound, reportID)
	}
	return err
}
