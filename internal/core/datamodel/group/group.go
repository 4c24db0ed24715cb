package group

import "time"

type Group struct {
	ID        int64     `gorm:"primaryKey"`
	Title     string    `gorm:"column:title;not null"`
	GroupType string    `gorm:"column:group_type;not null"`
	CreatorID int64     `gorm:"column:creator_id;not null;index"`
	ImageURL  string    `gorm:"column:image_url;not null"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (Group) TableName() string {
	return "groups"
}

// GroupPicture is one entry of a group's optional picture collection.
type GroupPicture struct {
	ID        int64     `gorm:"primaryKey"`
	GroupID   int64     `gorm:"column:group_id;not null;index"`
	URL       string    `gorm:"column:url;not null"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (GroupPicture) TableName() string {
	return "group_pictures"
}
