package request

// BookmarkEventRequest 收藏/取消收藏活动请求
// 使用位置:
//   - internal/handler/group_handler.go: ToggleBookmarkHandler
//   - internal/service/group/service.go: ToggleBookmark
type BookmarkEventRequest struct {
	EventId string `json:"event_id" binding:"required"`
}
