package respond

// LeaderboardEntryRespond 排行榜条目
// 活跃度 = 帖子数 + 消息数
// 使用位置:
//   - internal/service/group/service.go: GetLeaderboard
type LeaderboardEntryRespond struct {
	Rank      int    `json:"rank"`
	UserId    string `json:"user_id"`
	FullName  string `json:"full_name"`
	AvatarUrl string `json:"avatar_url"`
	Score     int    `json:"score"`
}
