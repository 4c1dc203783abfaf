package models

import (
	"time"
)

// VisitLog 访问记录模型，只增不改
type VisitLog struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	VisitTime time.Time `gorm:"not null" json:"visit_time"`
}

// TableName 指定表名
func (VisitLog) TableName() string {
	return "visit_logs"
}
