package post

import "time"

type Post struct {
	ID          int64     `gorm:"primaryKey"`
	GroupID     int64     `gorm:"column:group_id;not null;index"`
	UserID      int64     `gorm:"column:user_id;not null;index"`
	Title       string    `gorm:"column:title;not null"`
	Description string    `gorm:"column:description"`
	PostType    string    `gorm:"column:post_type"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (Post) TableName() string {
	return "posts"
}
