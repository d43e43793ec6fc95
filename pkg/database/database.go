package database

import (
	"climate_edu_backend/internal/config"
	"climate_edu_backend/internal/model"
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

	err = db.AutoMigrate(
		&model.User{},
		&model.ContentItem{},
		&model.LearningGoal{},
		&model.KnowledgeQuestion{},
		&model.AssessmentResult{},
		&model.LearningPath{},
	)

	if err != nil {
		return nil, err
	}

	log.Println("Database migration completed")

	// 默认学习目标（为空时插入各年龄段通用目标）
	var goalCount int64
	db.Model(&model.LearningGoal{}).Count(&goalCount)
	if goalCount == 0 {
		allGroups := model.StringList{"child", "teen", "adult"}
		defaultGoals := []model.LearningGoal{
			{Title: "Understand climate basics", Description: "了解温室效应与气候变化的基本原理", Category: model.GoalCategoryUnderstanding, AgeGroups: allGroups, Difficulty: model.LevelBeginner},
			{Title: "Renewable energy", Description: "认识太阳能、风能等可再生能源", Category: model.GoalCategoryUnderstanding, AgeGroups: allGroups, Difficulty: model.LevelIntermediate},
			{Title: "Reduce my carbon footprint", Description: "学习日常生活中的减碳行动", Category: model.GoalCategoryAction, AgeGroups: allGroups, Difficulty: model.LevelBeginner},
			{Title: "Protect ecosystems", Description: "理解生态系统与生物多样性保护", Category: model.GoalCategoryAwareness, AgeGroups: model.StringList{"teen", "adult"}, Difficulty: model.LevelIntermediate},
			{Title: "Climate advocacy skills", Description: "掌握传播与倡导气候议题的方法", Category: model.GoalCategorySkills, AgeGroups: model.StringList{"adult"}, Difficulty: model.LevelAdvanced},
		}
		for _, g := range defaultGoals {
			db.Create(&g)
		}
	}

	// 默认测评题（为空时插入入驻测评的基础题库）
	var qCount int64
	db.Model(&model.KnowledgeQuestion{}).Count(&qCount)
	if qCount == 0 {
		defaultQuestions := []model.KnowledgeQuestion{
			{Question: "What gas is the main driver of the greenhouse effect?", Options: model.StringList{"Oxygen", "Carbon dioxide", "Nitrogen", "Helium"}, CorrectAnswer: 1, Category: "basics", Difficulty: model.LevelBeginner, AgeGroup: model.AgeGroupAdult},
			{Question: "Which energy source is renewable?", Options: model.StringList{"Coal", "Natural gas", "Solar power", "Oil"}, CorrectAnswer: 2, Category: "energy", Difficulty: model.LevelBeginner, AgeGroup: model.AgeGroupAdult},
			{Question: "What does 'carbon footprint' measure?", Options: model.StringList{"Shoe size", "Greenhouse gas emissions", "Walking distance", "Forest area"}, CorrectAnswer: 1, Category: "action", Difficulty: model.LevelIntermediate, AgeGroup: model.AgeGroupAdult},
			{Question: "Which of these helps the planet?", Options: model.StringList{"Wasting water", "Planting trees", "Littering", "Leaving lights on"}, CorrectAnswer: 1, Category: "basics", Difficulty: model.LevelBeginner, AgeGroup: model.AgeGroupChild},
		}
		for _, q := range defaultQuestions {
			db.Create(&q)
		}
	}

	return db, nil
}
