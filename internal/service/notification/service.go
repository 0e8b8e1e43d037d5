// Package notification 实现通知业务逻辑
package notification

import (
	"context"

	"tajamu_group_server/internal/dao/mysql/repository"
	"tajamu_group_server/internal/dto/request"
	"tajamu_group_server/internal/dto/respond"
	"tajamu_group_server/internal/infrastructure/querycache"
	"tajamu_group_server/pkg/constants"
	"tajamu_group_server/pkg/errorx"

	"go.uber.org/zap"
)

// notificationService 通知业务逻辑实现
type notificationService struct {
	repos *repository.Repositories
	qc    *querycache.Cache
}

// NewNotificationService 构造函数，注入依赖
func NewNotificationService(repos *repository.Repositories, qc *querycache.Cache) *notificationService {
	return &notificationService{repos: repos, qc: qc}
}

// GetNotifications 用户通知列表，走查询缓存
func (n *notificationService) GetNotifications(userId string) ([]respond.NotificationRespond, error) {
	key := querycache.KeyNotifications(userId)
	opts := querycache.Options{StaleTime: constants.STALE_NOTIFICATIONS, Enabled: true}
	return querycache.GetJSON(n.qc, context.Background(), key, opts,
		func(ctx context.Context) ([]respond.NotificationRespond, error) {
			notifications, err := n.repos.Notification.FindByUser(userId, 50)
			if err != nil {
				zap.L().Error("find notifications error", zap.Error(err))
				return nil, errorx.ErrServerBusy
			}

			rsp := make([]respond.NotificationRespond, 0, len(notifications))
			for _, nt := range notifications {
				rsp = append(rsp, respond.NotificationRespond{
					NotificationId: nt.Uuid,
					Type:           nt.Type,
					Title:          nt.Title,
					Body:           nt.Body,
					GroupId:        nt.GroupUuid,
					IsRead:         nt.IsRead == 1,
					CreatedAt:      nt.CreatedAt.Format("2006-01-02 15:04:05"),
				})
			}
			return rsp, nil
		})
}

// GetUnreadCount 未读通知数量
// 角标用的轻量查询，不走查询缓存
func (n *notificationService) GetUnreadCount(userId string) (int64, error) {
	count, err := n.repos.Notification.CountUnread(userId)
	if err != nil {
		zap.L().Error("count unread notifications error", zap.Error(err))
		return 0, errorx.ErrServerBusy
	}
	return count, nil
}

// MarkRead 标记已读，notification_id 为空时标记全部
// 标记后失效通知缓存，下一次读取返回最新状态
func (n *notificationService) MarkRead(userId string, req request.MarkNotificationReadRequest) error {
	var err error
	if req.NotificationId == "" {
		err = n.repos.Notification.MarkAllRead(userId)
	} else {
		err = n.repos.Notification.MarkRead(req.NotificationId, userId)
	}
	if err != nil {
		zap.L().Error("mark notification read error", zap.Error(err))
		return errorx.ErrServerBusy
	}

	n.qc.Invalidate(context.Background(), querycache.KeyNotifications(userId))
	return nil
}
