package model

// AgeGroup 学习者年龄段。内容条目额外允许 AgeGroupAll。
type AgeGroup string

const (
	AgeGroupChild AgeGroup = "child"
	AgeGroupTeen  AgeGroup = "teen"
	AgeGroupAdult AgeGroup = "adult"
	AgeGroupAll   AgeGroup = "all" // 仅用于内容
)

// NormalizeAgeGroup 把历史数据中的复数写法统一为单数枚举
func NormalizeAgeGroup(s string) AgeGroup {
	switch s {
	case "children", "child":
		return AgeGroupChild
	case "teens", "teen":
		return AgeGroupTeen
	case "adults", "adult":
		return AgeGroupAdult
	case "all":
		return AgeGroupAll
	}
	return AgeGroup(s)
}

func (g AgeGroup) Valid() bool {
	switch g {
	case AgeGroupChild, AgeGroupTeen, AgeGroupAdult:
		return true
	}
	return false
}

// KnowledgeLevel 知识水平等级，有序枚举，支持上调/下调一档
type KnowledgeLevel string

const (
	LevelBeginner     KnowledgeLevel = "beginner"
	LevelIntermediate KnowledgeLevel = "intermediate"
	LevelAdvanced     KnowledgeLevel = "advanced"
)

var knowledgeLevels = []KnowledgeLevel{LevelBeginner, LevelIntermediate, LevelAdvanced}

// Ordinal 返回等级序号：beginner=0, intermediate=1, advanced=2；未知值返回0
func (k KnowledgeLevel) Ordinal() int {
	for i, l := range knowledgeLevels {
		if l == k {
			return i
		}
	}
	return 0
}

// KnowledgeLevelAt 根据序号取等级，越界取两端
func KnowledgeLevelAt(ordinal int) KnowledgeLevel {
	if ordinal < 0 {
		ordinal = 0
	}
	if ordinal >= len(knowledgeLevels) {
		ordinal = len(knowledgeLevels) - 1
	}
	return knowledgeLevels[ordinal]
}

func (k KnowledgeLevel) Valid() bool {
	switch k {
	case LevelBeginner, LevelIntermediate, LevelAdvanced:
		return true
	}
	return false
}

// LearningStyle 学习风格
type LearningStyle string

const (
	StyleVisual      LearningStyle = "visual"
	StyleAuditory    LearningStyle = "auditory"
	StyleReading     LearningStyle = "reading"
	StyleKinesthetic LearningStyle = "kinesthetic"
)

func (s LearningStyle) Valid() bool {
	switch s {
	case StyleVisual, StyleAuditory, StyleReading, StyleKinesthetic:
		return true
	}
	return false
}

// ContentType 内容类型
type ContentType string

const (
	TypeArticle     ContentType = "article"
	TypeVideo       ContentType = "video"
	TypeQuiz        ContentType = "quiz"
	TypeInteractive ContentType = "interactive"
	TypePodcast     ContentType = "podcast"
	TypeAudio       ContentType = "audio"
	TypeDocument    ContentType = "document"
	TypeSimulation  ContentType = "simulation"
	TypeInfographic ContentType = "infographic"
	// TypeReview 仅出现在复习推荐中，不对应目录里的内容类型
	TypeReview ContentType = "review"
)

// LearnerProfile 推荐引擎视角下的学习者画像。
// ageGroup 与 selectedGoals 创建后不可变，knowledgeLevel 与 learningStyle
// 只能由自适应调整逻辑修改。
type LearnerProfile struct {
	AgeGroup       AgeGroup       `json:"ageGroup"`
	KnowledgeLevel KnowledgeLevel `json:"knowledgeLevel"`
	LearningStyle  LearningStyle  `json:"learningStyle"`
	SelectedGoals  StringList     `json:"selectedGoals"`
}
