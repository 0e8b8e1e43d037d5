package repository

import (
	"tajamu_group_server/internal/model"

	"gorm.io/gorm"
)

type notificationRepository struct {
	db *gorm.DB
}

// NewNotificationRepository 创建通知 Repository
func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

// FindByUser 查找用户的通知，按创建时间倒序
func (r *notificationRepository) FindByUser(userUuid string, limit int) ([]model.Notification, error) {
	var notifications []model.Notification
	query := r.db.Where("user_uuid = ?", userUuid).Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&notifications).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询通知 user_uuid=%s", userUuid)
	}
	return notifications, nil
}

// CountUnread 统计用户未读通知数量
func (r *notificationRepository) CountUnread(userUuid string) (int64, error) {
	var count int64
	if err := r.db.Model(&model.Notification{}).
		Where("user_uuid = ? AND is_read = 0", userUuid).
		Count(&count).Error; err != nil {
		return 0, wrapDBErrorf(err, "统计未读通知 user_uuid=%s", userUuid)
	}
	return count, nil
}

// MarkRead 将单条通知标记为已读
// user_uuid 条件保证用户只能操作自己的通知
func (r *notificationRepository) MarkRead(uuid, userUuid string) error {
	if err := r.db.Model(&model.Notification{}).
		Where("uuid = ? AND user_uuid = ?", uuid, userUuid).
		Update("is_read", 1).Error; err != nil {
		return wrapDBErrorf(err, "标记通知已读 uuid=%s", uuid)
	}
	return nil
}

// MarkAllRead 将用户所有通知标记为已读
func (r *notificationRepository) MarkAllRead(userUuid string) error {
	if err := r.db.Model(&model.Notification{}).
		Where("user_uuid = ? AND is_read = 0", userUuid).
		Update("is_read", 1).Error; err != nil {
		return wrapDBErrorf(err, "标记全部通知已读 user_uuid=%s", userUuid)
	}
	return nil
}

// Create 创建通知
func (r *notificationRepository) Create(notification *model.Notification) error {
	if err := r.db.Create(notification).Error; err != nil {
		return wrapDBError(err, "创建通知")
	}
	return nil
}

// CreateBatch 批量创建通知（群发）
func (r *notificationRepository) CreateBatch(notifications []model.Notification) error {
	if len(notifications) == 0 {
		return nil
	}
	if err := r.db.Create(&notifications).Error; err != nil {
		return wrapDBError(err, "批量创建通知")
	}
	return nil
}
