package team

import "time"

// Member links a salesperson to the manager who approves their reports.
type Member struct {
	ID        uint64    `gorm:"primaryKey;column:id"`
	TeamID    string    `gorm:"column:team_id;size:64;index"`
	ManagerID string    `gorm:"column:manager_id;size:64;not null;uniqueIndex:ux_team_members_manager_member,priority:1"`
	MemberID  string    `gorm:"column:member_id;size:64;not null;uniqueIndex:ux_team_members_manager_member,priority:2"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (Member) TableName() string { return "team_members" }
