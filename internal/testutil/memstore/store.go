// Package memstore is an in-memory report store and unit of work for tests.
// It keeps the gorm store's contract: lookups miss with gorm.ErrRecordNotFound,
// (user, date) is unique and mutations are serialized per report id.
package memstore

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"sales-daily-report/internal/domain/report"
	"sales-daily-report/internal/domain/uow"
	"sales-daily-report/internal/infrastructure/lock"

	"gorm.io/gorm"
)

var ErrDuplicate = errors.New("memstore: duplicate (user_id, report_date)")

type Store struct {
	mu      sync.RWMutex
	nextID  uint64
	reports map[string]*report.Report // by ReportID
	locks   *lock.Local
}

var (
	_ report.Repository = (*Store)(nil)
	_ uow.UnitOfWork    = (*Store)(nil)
)

func New() *Store {
	return &Store{reports: make(map[string]*report.Report), locks: lock.NewLocal()}
}

// clone deep-copies so callers never share state with the store.
func clone(r *report.Report) *report.Report {
	c := *r
	c.Activities = append(c.Activities[:0:0], r.Activities...)
	c.Visits = append([]report.Visit{}, r.Visits...)
	c.SalesResults = append([]report.SalesResult{}, r.SalesResults...)
	if r.ApproverID != nil {
		v := *r.ApproverID
		c.ApproverID = &v
	}
	if r.SubmittedAt != nil {
		v := *r.SubmittedAt
		c.SubmittedAt = &v
	}
	if r.ApprovedAt != nil {
		v := *r.ApprovedAt
		c.ApprovedAt = &v
	}
	return &c
}

func (s *Store) Create(_ context.Context, r *report.Report) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	r.ReportDate = report.DateOf(r.ReportDate)
	for _, existing := range s.reports {
		if existing.UserID == r.UserID && existing.ReportDate.Equal(r.ReportDate) {
			return ErrDuplicate
		}
	}
	s.nextID++
	r.ID = s.nextID
	r.CreatedAt = time.Now().UTC()
	r.UpdatedAt = r.CreatedAt
	s.reports[r.ReportID] = clone(r)
	return nil
}

func (s *Store) GetByReportID(_ context.Context, reportID string) (*report.Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.reports[reportID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return clone(r), nil
}

func (s *Store) GetByReportIDForUpdate(ctx context.Context, reportID string) (*report.Report, error) {
	return s.GetByReportID(ctx, reportID)
}

func (s *Store) GetByUserAndDate(_ context.Context, userID string, date time.Time) (*report.Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	date = report.DateOf(date)
	for _, r := range s.reports {
		if r.UserID == userID && r.ReportDate.Equal(date) {
			return clone(r), nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

// Save overwrites the report columns and keeps the stored children.
func (s *Store) Save(_ context.Context, r *report.Report) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.reports[r.ReportID]
	if !ok {
		s.nextID++
		r.ID = s.nextID
		s.reports[r.ReportID] = clone(r)
		return nil
	}
	c := clone(r)
	c.ID = cur.ID
	c.Visits = cur.Visits
	c.SalesResults = cur.SalesResults
	c.UpdatedAt = time.Now().UTC()
	s.reports[r.ReportID] = c
	return nil
}

func (s *Store) ListByUserAndDateRange(_ context.Context, userID string, start, end time.Time) ([]report.Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	start, end = report.DateOf(start), report.DateOf(end)
	out := []report.Report{}
	for _, r := range s.reports {
		if r.UserID == userID && !r.ReportDate.Before(start) && !r.ReportDate.After(end) {
			out = append(out, *clone(r))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ReportDate.Before(out[j].ReportDate) })
	return out, nil
}

func (s *Store) ListByStatus(_ context.Context, status report.Status) ([]report.Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []report.Report{}
	for _, r := range s.reports {
		if r.Status == status {
			out = append(out, *clone(r))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i].SubmittedAt, out[j].SubmittedAt
		if a == nil || b == nil {
			return out[i].ID < out[j].ID
		}
		return a.Before(*b)
	})
	return out, nil
}

func (s *Store) byPK(pk uint64) *report.Report {
	for _, r := range s.reports {
		if r.ID == pk {
			return r
		}
	}
	return nil
}

func (s *Store) CreateVisit(_ context.Context, v *report.Visit) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	r := s.byPK(v.DailyReportID)
	if r == nil {
		return gorm.ErrRecordNotFound
	}
	r.Visits = append(r.Visits, *v)
	return nil
}

func (s *Store) CreateSalesResult(_ context.Context, sr *report.SalesResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	r := s.byPK(sr.DailyReportID)
	if r == nil {
		return gorm.ErrRecordNotFound
	}
	r.SalesResults = append(r.SalesResults, *sr)
	return nil
}

// WithinTx has no rollback; tests that need one use the sqlite store.
func (s *Store) WithinTx(_ context.Context, fn func(r uow.Repos) error) error {
	return fn(uow.Repos{Reports: s})
}

func (s *Store) WithinReportTx(ctx context.Context, reportID string, fn func(r uow.Repos, rp *report.Report) error) error {
	release, err := s.locks.Lock(ctx, lock.ReportKey(reportID))
	if err != nil {
		return err
	}
	defer release()
	rp, err := s.GetByReportID(ctx, reportID)
	if err != nil {
		return err
	}
	return fn(uow.Repos{Reports: s}, rp)
}
