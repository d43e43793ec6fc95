package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

const (
	AssessmentTypeOnboarding     = "onboarding"
	AssessmentTypeKnowledgeCheck = "knowledge_check"
	AssessmentTypeProgress       = "progress"
)

// swagger:model KnowledgeQuestion
type KnowledgeQuestion struct {
	UUIDBase
	Question      string         `gorm:"type:text;not null" json:"question"`
	Options       StringList     `gorm:"type:json" json:"options"`
	CorrectAnswer int            `gorm:"not null" json:"-"` // 选项下标，不下发给客户端
	Category      string         `gorm:"size:50;index" json:"category"`
	Difficulty    KnowledgeLevel `gorm:"size:20;index" json:"difficulty"`
	AgeGroup      AgeGroup       `gorm:"size:10;index" json:"ageGroup"`
}

func (KnowledgeQuestion) TableName() string {
	return "knowledge_questions"
}

// AssessmentResponse 单题作答记录
type AssessmentResponse struct {
	QuestionID     string `json:"questionId"`
	SelectedAnswer int    `json:"selectedAnswer"`
	IsCorrect      bool   `json:"isCorrect"`
	TimeSpent      int    `json:"timeSpent"` // 秒
}

// ResponseList 作答列表，整体存为JSON列
type ResponseList []AssessmentResponse

func (l ResponseList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal(l)
	return string(b), err
}

func (l *ResponseList) Scan(value interface{}) error {
	return scanJSON(value, l)
}

// AssessmentResult 一次测评结果。创建后不可变，按用户追加保存。
// swagger:model AssessmentResult
type AssessmentResult struct {
	BaseModel
	UserID         uint           `gorm:"index;not null" json:"userId"`
	AssessmentType string         `gorm:"size:20;index;not null" json:"assessmentType"` // onboarding/knowledge_check/progress
	Responses      ResponseList   `gorm:"type:json" json:"responses"`
	Score          float64        `gorm:"not null" json:"score"` // 百分制
	KnowledgeLevel KnowledgeLevel `gorm:"size:20;not null" json:"knowledgeLevel"`
	CompletedAt    time.Time      `json:"completedAt"`
}

func (AssessmentResult) TableName() string {
	return "assessment_results"
}

func scanJSON(value interface{}, dest interface{}) error {
	if value == nil {
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported JSON column type: %T", value)
	}
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, dest)
}
