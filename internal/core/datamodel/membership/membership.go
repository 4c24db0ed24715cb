package membership

import "time"

// Membership links a user to a group. Accepted=false is a pending join
// request. The (user_id, group_id) pair is unique: the database constraint
// is what serializes concurrent joins for the same pair.
type Membership struct {
	ID        int64     `gorm:"primaryKey"`
	UserID    int64     `gorm:"column:user_id;not null;uniqueIndex:idx_memberships_user_group"`
	GroupID   int64     `gorm:"column:group_id;not null;uniqueIndex:idx_memberships_user_group"`
	Accepted  bool      `gorm:"column:accepted;default:false"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (Membership) TableName() string {
	return "memberships"
}
