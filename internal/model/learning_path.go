package model

import (
	"database/sql/driver"
	"encoding/json"
	"time"
)

// Recommendation 推荐条目，整表重算、不做增量合并
type Recommendation struct {
	ContentID         string         `json:"contentId"`
	Title             string         `json:"title,omitempty"`
	Description       string         `json:"description,omitempty"`
	Type              ContentType    `json:"type,omitempty"`
	Difficulty        KnowledgeLevel `json:"difficulty,omitempty"`
	EstimatedDuration int            `json:"estimatedDuration"`
	RelevanceScore    float64        `json:"relevanceScore"` // [0,10]
	AdaptationReason  string         `json:"adaptationReason"`
	Prerequisites     StringList     `json:"prerequisites,omitempty"`
	NextSteps         StringList     `json:"nextSteps,omitempty"`
}

type RecommendationList []Recommendation

func (l RecommendationList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal(l)
	return string(b), err
}

func (l *RecommendationList) Scan(value interface{}) error {
	return scanJSON(value, l)
}

// PathProgress 学习进度。completedContent 不允许重复；
// currentStreak 每个自然日最多加一次。
type PathProgress struct {
	CompletedContent StringList `json:"completedContent"`
	CurrentStreak    int        `json:"currentStreak"`
	TotalPoints      int        `json:"totalPoints"`
	LastActivityDate string     `json:"lastActivityDate,omitempty"` // 2006-01-02
}

func (p PathProgress) Value() (driver.Value, error) {
	b, err := json.Marshal(p)
	return string(b), err
}

func (p *PathProgress) Scan(value interface{}) error {
	return scanJSON(value, p)
}

// Adaptation 一次已提交的画像调整记录，只追加不修改
type Adaptation struct {
	Date                time.Time `json:"date"`
	Reason              string    `json:"reason"`
	Changes             string    `json:"changes"`
	PerceivedDifficulty int       `json:"perceivedDifficulty,omitempty"` // 1-5，触发事件的主观难度
}

type AdaptationList []Adaptation

func (l AdaptationList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal(l)
	return string(b), err
}

func (l *AdaptationList) Scan(value interface{}) error {
	return scanJSON(value, l)
}

// LearningPath 每个用户一条的聚合根。
// knowledgeLevel 与 learningStyle 是创建后唯一可变的画像字段，
// 且只能经由自适应调整逻辑修改；version 用于按学习者串行化写入。
// swagger:model LearningPath
type LearningPath struct {
	BaseModel
	UserID             uint               `gorm:"uniqueIndex;not null" json:"userId"`
	AgeGroup           AgeGroup           `gorm:"size:10;not null" json:"ageGroup"`
	KnowledgeLevel     KnowledgeLevel     `gorm:"size:20;not null" json:"knowledgeLevel"`
	LearningStyle      LearningStyle      `gorm:"size:20;not null" json:"learningStyle"`
	SelectedGoals      StringList         `gorm:"type:json" json:"selectedGoals"`
	RecommendedContent RecommendationList `gorm:"type:json" json:"recommendedContent"`
	Progress           PathProgress       `gorm:"type:json" json:"progress"`
	Adaptations        AdaptationList     `gorm:"type:json" json:"adaptations"`
	Version            int                `gorm:"default:1" json:"-"` // 乐观锁
}

func (LearningPath) TableName() string {
	return "learning_paths"
}

// Profile 提取推荐引擎所需的画像切片
func (p *LearningPath) Profile() LearnerProfile {
	return LearnerProfile{
		AgeGroup:       p.AgeGroup,
		KnowledgeLevel: p.KnowledgeLevel,
		LearningStyle:  p.LearningStyle,
		SelectedGoals:  p.SelectedGoals,
	}
}
