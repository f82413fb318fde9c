package database

import (
	"competency_backend/internal/config"
	"competency_backend/internal/model"
	"fmt"
	"log"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	return db, nil
}

// Migrate 执行表结构迁移并插入默认能力标签
// release 模式默认不迁移，由调用方决定是否执行
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&model.User{},
		&model.Tag{},
		&model.ObjectTag{},
		&model.CatalogCourse{},
		&model.CourseRun{},
		&model.CriteriaGroup{},
		&model.Criterion{},
		&model.StudentCriterionStatus{},
		&model.StudentCompetencyStatus{},
	)

	if err != nil {
		return err
	}

	log.Println("Database migration completed")

	// 默认能力标签（空库时插入，方便联调）
	var tagCount int64
	db.Model(&model.Tag{}).Count(&tagCount)
	if tagCount == 0 {
		defaultTags := []model.Tag{
			{TaxonomyName: "competencies", Value: "Problem Solving", ExternalID: "problem_solving"},
			{TaxonomyName: "competencies", Value: "Critical Thinking", ExternalID: "critical_thinking"},
			{TaxonomyName: "competencies", Value: "Data Literacy", ExternalID: "data_literacy"},
			{TaxonomyName: "competencies", Value: "Communication", ExternalID: "communication"},
		}
		for _, t := range defaultTags {
			db.Create(&t)
		}
	}

	return nil
}
