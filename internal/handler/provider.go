// Package handler 提供 HTTP 请求处理器
// 本文件定义 Handler 聚合结构和构造函数
// 遵循依赖倒置原则，通过构造函数注入 Service 依赖
package handler

import (
	"tajamu_group_server/internal/infrastructure/storage"
	"tajamu_group_server/internal/service"
	"tajamu_group_server/internal/service/stream"
)

// Handlers 聚合所有 Handler 实例
// 作为依赖注入的入口，Router 层通过此结构访问各个 Handler
type Handlers struct {
	User         *UserHandler
	Group        *GroupHandler
	Post         *PostHandler
	Notification *NotificationHandler
	Stream       *StreamHandler
}

// NewHandlers 创建并注入所有 Handler 实例
// svc: Service 层聚合实例
// store: 本地文件存储
// streamServer: 消息流服务器
func NewHandlers(svc *service.Services, store *storage.Store, streamServer *stream.StreamServer) *Handlers {
	return &Handlers{
		User:         NewUserHandler(svc.User),
		Group:        NewGroupHandler(svc.Group, store),
		Post:         NewPostHandler(svc.Post),
		Notification: NewNotificationHandler(svc.Notification),
		Stream:       NewStreamHandler(streamServer),
	}
}
