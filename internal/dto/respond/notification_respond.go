package respond

// NotificationRespond 通知响应
// 使用位置:
//   - internal/service/notification/service.go: GetNotifications
type NotificationRespond struct {
	NotificationId string `json:"notification_id"`
	Type           string `json:"type"`
	Title          string `json:"title"`
	Body           string `json:"body"`
	GroupId        string `json:"group_id,omitempty"`
	IsRead         bool   `json:"is_read"`
	CreatedAt      string `json:"created_at"`
}
