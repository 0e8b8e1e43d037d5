package group

import (
	"sort"

	"tajamu_group_server/internal/dao/mysql/repository"
)

// rankedUser 排行榜中间结果
type rankedUser struct {
	UserUuid string
	Score    int
}

// rankActivity 按作者的帖子数排名
// 按帖子数降序，数量相同按用户 UUID 升序，最多返回 size 条
func rankActivity(postCounts []repository.UserActivityCount, size int) []rankedUser {
	scores := make(map[string]int, len(postCounts))
	for _, row := range postCounts {
		scores[row.UserUuid] += row.Cnt
	}

	ranked := make([]rankedUser, 0, len(scores))
	for uuid, score := range scores {
		if score <= 0 {
			continue
		}
		ranked = append(ranked, rankedUser{UserUuid: uuid, Score: score})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		return ranked[i].UserUuid < ranked[j].UserUuid
	})
	if len(ranked) > size {
		ranked = ranked[:size]
	}
	return ranked
}
