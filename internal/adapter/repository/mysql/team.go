package mysql

import (
	"context"

	teamDomain "sales-daily-report/internal/domain/team"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TeamRepository struct{ db *gorm.DB }

func NewTeamRepository(db *gorm.DB) *TeamRepository { return &TeamRepository{db: db} }

// Add is idempotent on (manager, member).
func (r *TeamRepository) Add(ctx context.Context, m *teamDomain.Member) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(m).Error
}

func (r *TeamRepository) MemberIDs(ctx context.Context, managerID string) ([]string, error) {
	ids := []string{}
	res := r.db.WithContext(ctx).
		Model(&teamDomain.Member{}).
		Where("manager_id = ?", managerID).
		Order("member_id ASC").
		Pluck("member_id", &ids)
	return ids, res.Error
}

func (r *TeamRepository) AllMemberIDs(ctx context.Context) ([]string, error) {
	ids := []string{}
	res := r.db.WithContext(ctx).
		Model(&teamDomain.Member{}).
		Distinct("member_id").
		Order("member_id ASC").
		Pluck("member_id", &ids)
	return ids, res.Error
}
