package models

import (
	"derm-go/internal/config"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DB 全局数据库实例
var DB *gorm.DB

// InitDB 初始化数据库
func InitDB(cfg *config.Config) error {
	var err error

	DB, err = gorm.Open(sqlite.Open(cfg.Database.Path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return err
	}

	return AutoMigrate(DB)
}

// AutoMigrate 自动迁移数据库表
// 用户名/邮箱的唯一索引在这里建立，重复注册由存储层兜底
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&Picture{},
		&VisitLog{},
	)
}

// GetDB 获取数据库实例
func GetDB() *gorm.DB {
	return DB
}
