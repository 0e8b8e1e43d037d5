package respond

// EventRespond 活动响应，包含当前用户的收藏状态
// 使用位置:
//   - internal/service/group/service.go: GetGroupEvents
type EventRespond struct {
	EventId      string `json:"event_id"`
	GroupId      string `json:"group_id"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	Location     string `json:"location"`
	CoverUrl     string `json:"cover_url"`
	StartAt      string `json:"start_at"`
	EndAt        string `json:"end_at,omitempty"`
	Status       int8   `json:"status"`
	IsBookmarked bool   `json:"is_bookmarked"`
}
