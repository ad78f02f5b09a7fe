package teammock

import (
	"context"
	"errors"
	"reflect"
	"testing"

	domain "sales-daily-report/internal/domain/team"
)

func TestRepo(t *testing.T) {
	ctx := context.Background()
	m := &Repo{
		MemberIDsFn: func(_ context.Context, managerID string) ([]string, error) {
			return []string{managerID + "-a"}, nil
		},
	}
	got, err := m.MemberIDs(ctx, "u004")
	if err != nil || !reflect.DeepEqual(got, []string{"u004-a"}) {
		t.Fatalf("MemberIDs = %v, %v", got, err)
	}
	if err := m.Add(ctx, &domain.Member{}); err != nil {
		t.Fatalf("Add default: %v", err)
	}
	if _, err := m.AllMemberIDs(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("AllMemberIDs default: %v", err)
	}
}
