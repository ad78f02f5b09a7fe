package teammock

import (
	"context"

	domain "sales-daily-report/internal/domain/team"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies team.Repository.
type Repo struct {
	AddFn          func(ctx context.Context, m *domain.Member) error
	MemberIDsFn    func(ctx context.Context, managerID string) ([]string, error)
	AllMemberIDsFn func(ctx context.Context) ([]string, error)
}

func (m *Repo) Add(ctx context.Context, mb *domain.Member) error {
	if m.AddFn != nil {
		return m.AddFn(ctx, mb)
	}
	return nil
}

func (m *Repo) MemberIDs(ctx context.Context, managerID string) ([]string, error) {
	if m.MemberIDsFn != nil {
		return m.MemberIDsFn(ctx, managerID)
	}
	return nil, context.Canceled
}

func (m *Repo) AllMemberIDs(ctx context.Context) ([]string, error) {
	if m.AllMemberIDsFn != nil {
		return m.AllMemberIDsFn(ctx)
	}
	return nil, context.Canceled
}
