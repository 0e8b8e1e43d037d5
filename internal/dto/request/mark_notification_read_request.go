package request

// MarkNotificationReadRequest 标记通知已读请求
// notification_id 为空时标记全部已读
// 使用位置:
//   - internal/handler/notification_handler.go: MarkReadHandler
//   - internal/service/notification/service.go: MarkRead
type MarkNotificationReadRequest struct {
	NotificationId string `json:"notification_id"`
}
