package comment

import "time"

type Comment struct {
	ID        int64     `gorm:"primaryKey"`
	PostID    int64     `gorm:"column:post_id;not null;index"`
	UserID    int64     `gorm:"column:user_id;not null;index"`
	Content   string    `gorm:"column:content;not null"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (Comment) TableName() string {
	return "comments"
}
