package request

// CreateEventRequest 创建活动请求
// 使用位置:
//   - internal/handler/group_handler.go: CreateEventHandler
//   - internal/service/group/service.go: CreateEvent
type CreateEventRequest struct {
	GroupId     string `json:"group_id" binding:"required"`
	Title       string `json:"title" binding:"required,max=100"`
	Description string `json:"description" binding:"max=500"`
	Location    string `json:"location" binding:"max=200"`
	CoverUrl    string `json:"cover_url"` // 先经 uploadCover 上传得到
	StartAt     string `json:"start_at" binding:"required"` // RFC3339
	EndAt       string `json:"end_at"`                      // RFC3339，可空
}
