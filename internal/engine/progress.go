package engine

import (
	"time"

	"climate_edu_backend/internal/model"
	"climate_edu_backend/internal/util"
)

// ApplyProgress 把一次交互落到进度上。完成率超过阈值且内容未重复时
// 记为完成并返回获得的积分；连击每个自然日最多加一次。
// 未达标或重复上报时进度保持不变。
func ApplyProgress(progress *model.PathProgress, interaction InteractionContext, now time.Time) (bool, int) {
	if interaction.CompletionRate <= CompletionThreshold {
		return false, 0
	}
	if progress.CompletedContent.Contains(interaction.ContentID) {
		return false, 0
	}

	progress.CompletedContent = append(progress.CompletedContent, interaction.ContentID)

	points := CompletionPoints(interaction)
	progress.TotalPoints += points

	today := now.Format(util.DateFormat)
	if progress.LastActivityDate != today {
		progress.CurrentStreak++
		progress.LastActivityDate = today
	}

	return true, points
}
