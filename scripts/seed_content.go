// 内容目录种子脚本
//
// 向空的内容目录批量导入气候教育内容条目，用于首次部署或本地联调。
// 已存在同标题内容时跳过，可重复执行。
//
// 用法: go run scripts/seed_content.go

package main

import (
	"log"

	"climate_edu_backend/internal/config"
	"climate_edu_backend/internal/model"
	"climate_edu_backend/pkg/database"
	"climate_edu_backend/pkg/logger"
)

func main() {
	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("无法读取配置文件: %v", err)
	}

	logger.InitLogger(cfg)

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		log.Fatalf("数据库连接失败: %v", err)
	}

	items := []model.ContentItem{
		{Title: "What is the Greenhouse Effect?", Description: "温室效应的图解入门", Type: model.TypeVideo, Difficulty: model.LevelBeginner, AgeGroup: model.AgeGroupAll, Tags: model.StringList{"climate-basics", "greenhouse-effect"}, EstimatedDuration: 10, Published: true},
		{Title: "Carbon Cycle Explained", Description: "碳循环的完整讲解", Type: model.TypeArticle, Difficulty: model.LevelBeginner, AgeGroup: model.AgeGroupAll, Tags: model.StringList{"climate-basics", "carbon"}, EstimatedDuration: 15, Published: true},
		{Title: "Solar Power Fundamentals", Description: "太阳能发电原理", Type: model.TypeVideo, Difficulty: model.LevelIntermediate, AgeGroup: model.AgeGroupTeen, Tags: model.StringList{"renewable-energy", "solar"}, EstimatedDuration: 20, Published: true},
		{Title: "Wind Energy Quiz", Description: "风能知识小测验", Type: model.TypeQuiz, Difficulty: model.LevelIntermediate, AgeGroup: model.AgeGroupTeen, Tags: model.StringList{"renewable-energy", "wind"}, EstimatedDuration: 10, Published: true},
		{Title: "Build a Home Energy Audit", Description: "动手做家庭能源审计", Type: model.TypeInteractive, Difficulty: model.LevelIntermediate, AgeGroup: model.AgeGroupAdult, Tags: model.StringList{"carbon-footprint", "action"}, EstimatedDuration: 30, Published: true},
		{Title: "Climate Models Simulation", Description: "气候模型交互模拟", Type: model.TypeSimulation, Difficulty: model.LevelAdvanced, AgeGroup: model.AgeGroupAdult, Tags: model.StringList{"climate-science", "modeling"}, EstimatedDuration: 45, Published: true},
		{Title: "Ocean Acidification Podcast", Description: "海洋酸化专题播客", Type: model.TypePodcast, Difficulty: model.LevelIntermediate, AgeGroup: model.AgeGroupAdult, Tags: model.StringList{"oceans", "ecosystems"}, EstimatedDuration: 25, Published: true},
		{Title: "Ecosystems and Biodiversity", Description: "生态系统与生物多样性图文", Type: model.TypeInfographic, Difficulty: model.LevelBeginner, AgeGroup: model.AgeGroupChild, Tags: model.StringList{"ecosystems", "biodiversity"}, EstimatedDuration: 8, Published: true},
		{Title: "Advocacy Toolkit", Description: "气候倡导实用手册", Type: model.TypeDocument, Difficulty: model.LevelAdvanced, AgeGroup: model.AgeGroupAdult, Tags: model.StringList{"advocacy", "skills"}, EstimatedDuration: 35, Published: true},
		{Title: "Recycling Game", Description: "垃圾分类互动游戏", Type: model.TypeInteractive, Difficulty: model.LevelBeginner, AgeGroup: model.AgeGroupChild, Tags: model.StringList{"action", "recycling"}, EstimatedDuration: 12, Published: true},
	}

	seeded := 0
	for _, item := range items {
		var count int64
		db.Model(&model.ContentItem{}).Where("title = ?", item.Title).Count(&count)
		if count > 0 {
			continue
		}
		if err := db.Create(&item).Error; err != nil {
			log.Printf("导入失败 %q: %v", item.Title, err)
			continue
		}
		seeded++
	}

	log.Printf("完成！新增 %d 条内容", seeded)
}
