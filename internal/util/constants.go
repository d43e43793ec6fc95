package util

// DateFormat 连击判定使用的自然日格式
const DateFormat = "2006-01-02"

// 推荐模式
const (
	ModeNextLesson = "next_lesson"
	ModeReview     = "review"
	ModeChallenge  = "challenge"
	ModeGeneral    = "general"
)
