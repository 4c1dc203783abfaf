package models

import (
	"time"
)

// Picture 图片模型
// 创建后不再修改，按用户查询用于展示
type Picture struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Filename  string    `gorm:"size:255;not null" json:"filename"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	CreatedAt time.Time `json:"uploaded_at"`

	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// TableName 指定表名
func (Picture) TableName() string {
	return "pictures"
}
