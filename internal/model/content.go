package model

// swagger:model ContentItem
type ContentItem struct {
	UUIDBase
	Title             string         `gorm:"size:255;not null" json:"title"`
	Description       string         `gorm:"type:text" json:"description"`
	Type              ContentType    `gorm:"size:20;index;not null" json:"type"`
	Difficulty        KnowledgeLevel `gorm:"size:20;index;not null" json:"difficulty"`
	AgeGroup          AgeGroup       `gorm:"size:10;index;not null" json:"ageGroup"`
	Tags              StringList     `gorm:"type:json" json:"tags"`
	EstimatedDuration int            `gorm:"default:15" json:"estimatedDuration"` // 分钟
	Views             int            `gorm:"default:0" json:"views"`
	Prerequisites     StringList     `gorm:"type:json" json:"prerequisites"`
	NextSteps         StringList     `gorm:"type:json" json:"nextSteps"`
	Published         bool           `gorm:"default:true;index" json:"published"`
}

func (ContentItem) TableName() string {
	return "content_items"
}
