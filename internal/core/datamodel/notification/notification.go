package notification

import "time"

type Notification struct {
	ID        int64     `gorm:"primaryKey"`
	UserID    int64     `gorm:"column:user_id;not null;index"`
	Kind      string    `gorm:"column:kind;not null"`
	Subject   string    `gorm:"column:subject;not null"`
	Body      string    `gorm:"column:body"`
	RefType   string    `gorm:"column:ref_type"`
	RefID     int64     `gorm:"column:ref_id"`
	IsRead    bool      `gorm:"column:is_read;default:false"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (Notification) TableName() string {
	return "notifications"
}
