package util

import "errors"

var (
	// ErrEmptyResponseSet 空作答集不允许评分（避免除零得到NaN）
	ErrEmptyResponseSet = errors.New("assessment response set is empty")
	// ErrLearningPathNotFound 学习路径不存在，由调用方处理，核心不合成默认画像
	ErrLearningPathNotFound = errors.New("learning path not found")
	// ErrLearningPathExists 每个用户只允许一条学习路径
	ErrLearningPathExists = errors.New("learning path already exists")
	// ErrCatalogUnavailable 内容目录调用失败或超时
	ErrCatalogUnavailable = errors.New("content catalog unavailable")
	// ErrWriteConflict 并发写冲突，调用方应重试整个读-算-写流程
	ErrWriteConflict = errors.New("concurrent write conflict")
	ErrUserNotFound    = errors.New("user not found")
	ErrContentNotFound = errors.New("content not found")
	ErrInvalidProfile  = errors.New("invalid learner profile")
)
