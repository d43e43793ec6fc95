package model

const (
	GoalCategoryUnderstanding = "understanding"
	GoalCategoryAction        = "action"
	GoalCategoryAwareness     = "awareness"
	GoalCategorySkills        = "skills"
)

// swagger:model LearningGoal
type LearningGoal struct {
	UUIDBase
	Title       string         `gorm:"size:255;not null" json:"title"`
	Description string         `gorm:"type:text" json:"description"`
	Category    string         `gorm:"size:20;index;not null" json:"category"` // understanding/action/awareness/skills
	AgeGroups   StringList     `gorm:"type:json" json:"ageGroups"`
	Difficulty  KnowledgeLevel `gorm:"size:20" json:"difficulty"`
}

func (LearningGoal) TableName() string {
	return "learning_goals"
}
