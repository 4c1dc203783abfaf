package repository

import (
	"time"

	"derm-go/internal/models"

	"gorm.io/gorm"
)

// VisitLogRepository 访问记录数据访问层
type VisitLogRepository struct {
	db *gorm.DB
}

// NewVisitLogRepository 创建访问记录Repository
func NewVisitLogRepository(db *gorm.DB) *VisitLogRepository {
	return &VisitLogRepository{db: db}
}

// Record 记录一次访问
func (r *VisitLogRepository) Record(userID uint, visitTime time.Time) error {
	return r.db.Create(&models.VisitLog{
		UserID:    userID,
		VisitTime: visitTime,
	}).Error
}

// CountByUserID 统计用户的访问次数
func (r *VisitLogRepository) CountByUserID(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.VisitLog{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}
