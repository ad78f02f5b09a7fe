package team

import "context"

type Repository interface {
	Add(ctx context.Context, m *Member) error
	// MemberIDs lists the users whose reports managerID approves.
	MemberIDs(ctx context.Context, managerID string) ([]string, error)
	// AllMemberIDs lists every tracked salesperson, deduplicated.
	AllMemberIDs(ctx context.Context) ([]string, error)
}
