package repository

import (
	"derm-go/internal/models"

	"gorm.io/gorm"
)

// PictureRepository 图片数据访问层
type PictureRepository struct {
	db *gorm.DB
}

// NewPictureRepository 创建图片Repository
func NewPictureRepository(db *gorm.DB) *PictureRepository {
	return &PictureRepository{db: db}
}

// Create 创建图片记录
func (r *PictureRepository) Create(picture *models.Picture) error {
	return r.db.Create(picture).Error
}

// GetByID 根据ID获取图片
func (r *PictureRepository) GetByID(id uint) (*models.Picture, error) {
	var picture models.Picture
	err := r.db.First(&picture, id).Error
	if err != nil {
		return nil, err
	}
	return &picture, nil
}

// ListByUserID 获取用户的图片列表
func (r *PictureRepository) ListByUserID(userID uint) ([]models.Picture, error) {
	var pictures []models.Picture
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&pictures).Error
	return pictures, err
}

// CountByUserID 统计用户的图片数量
func (r *PictureRepository) CountByUserID(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Picture{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}
