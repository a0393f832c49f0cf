package database

import (
	"fmt"

	"rental_coach_backend/internal/config"
	"rental_coach_backend/internal/model"
	applog "rental_coach_backend/pkg/logger"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func DSN(cfg *config.DatabaseConfig) string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)
}

// InitDB 仅在 listings.source=mysql 时调用，迁移房源表
func InitDB(cfg *config.DatabaseConfig, debug bool) (*gorm.DB, error) {
	level := logger.Warn
	if debug {
		level = logger.Info
	}

	db, err := gorm.Open(mysql.Open(DSN(cfg)), &gorm.Config{
		Logger: logger.Default.LogMode(level),
	})
	if err != nil {
		return nil, err
	}
	applog.Log.Info("Database connection established")

	if err := db.AutoMigrate(&model.Listing{}); err != nil {
		return nil, err
	}
	applog.Log.Info("Database migration completed")

	return db, nil
}
