// Package handler 提供 HTTP 请求处理器
// 本文件处理通知相关的 API 请求
package handler

import (
	"github.com/gin-gonic/gin"

	"tajamu_group_server/internal/dto/request"
	"tajamu_group_server/internal/service"
)

// NotificationHandler 通知请求处理器
type NotificationHandler struct {
	notificationSvc service.NotificationService
}

// NewNotificationHandler 创建通知处理器实例
func NewNotificationHandler(notificationSvc service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationSvc: notificationSvc}
}

// GetNotifications 获取通知列表
// GET /api/v1/notification/list
// 响应: []respond.NotificationRespond
func (h *NotificationHandler) GetNotifications(c *gin.Context) {
	data, err := h.notificationSvc.GetNotifications(c.GetString("user_id"))
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// GetUnreadCount 获取未读通知数量
// GET /api/v1/notification/unreadCount
// 响应: count
func (h *NotificationHandler) GetUnreadCount(c *gin.Context) {
	count, err := h.notificationSvc.GetUnreadCount(c.GetString("user_id"))
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, gin.H{"count": count})
}

// MarkRead 标记通知已读（notification_id 为空时标记全部）
// POST /api/v1/notification/markRead
// 请求体: request.MarkNotificationReadRequest
// 响应: nil
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	var req request.MarkNotificationReadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	if err := h.notificationSvc.MarkRead(c.GetString("user_id"), req); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}
