package models

import (
	"time"
)

// User 用户模型
type User struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	Username     string    `gorm:"uniqueIndex;size:30;not null" json:"username"`
	Email        string    `gorm:"uniqueIndex;size:255;not null" json:"email"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// 关联(用户不随图片/访问记录删除)
	Pictures  []Picture  `gorm:"foreignKey:UserID" json:"pictures,omitempty"`
	VisitLogs []VisitLog `gorm:"foreignKey:UserID" json:"visit_logs,omitempty"`
}

// TableName 指定表名
func (User) TableName() string {
	return "users"
}
