// Package service 提供业务逻辑层
// 本文件实现 Service 层的依赖注入和聚合
package service

import (
	"tajamu_group_server/internal/dao/mysql/repository"
	"tajamu_group_server/internal/infrastructure/querycache"
	"tajamu_group_server/internal/service/group"
	"tajamu_group_server/internal/service/notification"
	"tajamu_group_server/internal/service/post"
	"tajamu_group_server/internal/service/user"
)

// Services 聚合所有 Service 实例
// 作为依赖注入的入口，Handler 层通过此结构访问各个 Service
type Services struct {
	User         UserService         // 用户 Service
	Group        GroupService        // 群组 Service
	Post         PostService         // 帖子 Service
	Notification NotificationService // 通知 Service
}

// NewServices 创建并注入所有 Service 实例
// repos: Repository 层聚合实例
// qc: 两级查询缓存
func NewServices(repos *repository.Repositories, qc *querycache.Cache) *Services {
	return &Services{
		User:         user.NewUserService(repos),
		Group:        group.NewGroupService(repos, qc),
		Post:         post.NewPostService(repos, qc),
		Notification: notification.NewNotificationService(repos, qc),
	}
}
