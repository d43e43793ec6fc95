package model

import "time"

type UserRole string

const (
	Student UserRole = "student"
	Admin   UserRole = "admin"
)

// User 平台用户。身份由外部认证服务签发，这里只保存画像和活跃信息。
// swagger:model User
type User struct {
	BaseModel
	Name                string    `gorm:"size:100;not null" json:"name"`
	Email               string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Role                UserRole  `gorm:"size:20;default:'student'" json:"role"`
	AgeGroup            AgeGroup  `gorm:"size:10" json:"ageGroup"`
	OnboardingCompleted bool      `gorm:"default:false" json:"onboardingCompleted"`
	LastSeen            time.Time `json:"lastSeen"`
}

func (User) TableName() string {
	return "users"
}
