package service

import (
	"errors"
	"testing"

	"climate_edu_backend/internal/util"

	"github.com/stretchr/testify/assert"
)

// 冲突后整体重跑，第三次成功则对外不可见
func TestWithRetryRecoversFromConflicts(t *testing.T) {
	s := &LearningPathService{}

	calls := 0
	err := s.withRetry(func() error {
		calls++
		if calls < 3 {
			return util.ErrWriteConflict
		}
		return nil
	})

	assert.NoError(t, err)
	assert.Equal(t, 3, calls)
}

// 重试耗尽后把冲突错误交还调用方，不吞掉
func TestWithRetryExhausted(t *testing.T) {
	s := &LearningPathService{}

	calls := 0
	err := s.withRetry(func() error {
		calls++
		return util.ErrWriteConflict
	})

	assert.ErrorIs(t, err, util.ErrWriteConflict)
	assert.Equal(t, maxWriteRetries, calls)
}

// 非冲突错误不重试，立即返回
func TestWithRetryPassesThroughOtherErrors(t *testing.T) {
	s := &LearningPathService{}
	boom := errors.New("boom")

	calls := 0
	err := s.withRetry(func() error {
		calls++
		return boom
	})

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, calls)
}
