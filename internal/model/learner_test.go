package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeAgeGroup(t *testing.T) {
	assert.Equal(t, AgeGroupChild, NormalizeAgeGroup("children"))
	assert.Equal(t, AgeGroupChild, NormalizeAgeGroup("child"))
	assert.Equal(t, AgeGroupTeen, NormalizeAgeGroup("teens"))
	assert.Equal(t, AgeGroupAdult, NormalizeAgeGroup("adults"))
	assert.Equal(t, AgeGroup("unknown"), NormalizeAgeGroup("unknown"))
}

func TestKnowledgeLevelOrdinal(t *testing.T) {
	assert.Equal(t, 0, LevelBeginner.Ordinal())
	assert.Equal(t, 1, LevelIntermediate.Ordinal())
	assert.Equal(t, 2, LevelAdvanced.Ordinal())
	// 未知值按 beginner 处理
	assert.Equal(t, 0, KnowledgeLevel("expert").Ordinal())
}

func TestKnowledgeLevelAtClamps(t *testing.T) {
	assert.Equal(t, LevelBeginner, KnowledgeLevelAt(-1))
	assert.Equal(t, LevelIntermediate, KnowledgeLevelAt(1))
	assert.Equal(t, LevelAdvanced, KnowledgeLevelAt(5))
}

func TestStringListScan(t *testing.T) {
	var l StringList
	assert.NoError(t, l.Scan([]byte(`["a","b"]`)))
	assert.Equal(t, StringList{"a", "b"}, l)
	assert.True(t, l.Contains("a"))
	assert.False(t, l.Contains("c"))

	var empty StringList
	assert.NoError(t, empty.Scan(nil))
	assert.Empty(t, empty)
}
