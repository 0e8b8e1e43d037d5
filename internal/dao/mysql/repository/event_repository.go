// Package repository 提供数据访问层的具体实现
// 本文件实现 EventRepository 接口，处理活动及收藏相关的数据库操作
package repository

import (
	"tajamu_group_server/internal/model"

	"gorm.io/gorm"
)

type eventRepository struct {
	db *gorm.DB
}

// NewEventRepository 创建活动 Repository
func NewEventRepository(db *gorm.DB) EventRepository {
	return &eventRepository{db: db}
}

// FindByUuid 按 UUID 查找活动
func (r *eventRepository) FindByUuid(uuid string) (*model.Event, error) {
	var event model.Event
	if err := r.db.First(&event, "uuid = ?", uuid).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询活动 uuid=%s", uuid)
	}
	return &event, nil
}

// FindByGroupUuid 查找群组中指定状态的活动，按开始时间排序
func (r *eventRepository) FindByGroupUuid(groupUuid string, statuses []int8) ([]model.Event, error) {
	var events []model.Event
	if err := r.db.Where("group_uuid = ? AND status IN ?", groupUuid, statuses).
		Order("start_at ASC").Find(&events).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询群组活动 group_uuid=%s", groupUuid)
	}
	return events, nil
}

// FindBookmarkedEventUuids 批量查询用户在给定活动集合中收藏的活动 UUID
func (r *eventRepository) FindBookmarkedEventUuids(eventUuids []string, userUuid string) ([]string, error) {
	var bookmarked []string
	if len(eventUuids) == 0 {
		return bookmarked, nil
	}
	if err := r.db.Model(&model.EventBookmark{}).
		Where("event_uuid IN ? AND user_uuid = ?", eventUuids, userUuid).
		Pluck("event_uuid", &bookmarked).Error; err != nil {
		return nil, wrapDBError(err, "批量查询收藏状态")
	}
	return bookmarked, nil
}

// Create 创建活动
func (r *eventRepository) Create(event *model.Event) error {
	if err := r.db.Create(event).Error; err != nil {
		return wrapDBError(err, "创建活动")
	}
	return nil
}

// FindBookmark 查找收藏记录
func (r *eventRepository) FindBookmark(eventUuid, userUuid string) (*model.EventBookmark, error) {
	var bookmark model.EventBookmark
	if err := r.db.Where("event_uuid = ? AND user_uuid = ?", eventUuid, userUuid).First(&bookmark).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询收藏记录 event_uuid=%s user_uuid=%s", eventUuid, userUuid)
	}
	return &bookmark, nil
}

// CreateBookmark 创建收藏记录
func (r *eventRepository) CreateBookmark(bookmark *model.EventBookmark) error {
	if err := r.db.Create(bookmark).Error; err != nil {
		return wrapDBError(err, "创建收藏记录")
	}
	return nil
}

// DeleteBookmark 删除收藏记录
// 物理删除，取消收藏后才能再次收藏
func (r *eventRepository) DeleteBookmark(eventUuid, userUuid string) error {
	if err := r.db.Unscoped().Where("event_uuid = ? AND user_uuid = ?", eventUuid, userUuid).
		Delete(&model.EventBookmark{}).Error; err != nil {
		return wrapDBErrorf(err, "删除收藏记录 event_uuid=%s user_uuid=%s", eventUuid, userUuid)
	}
	return nil
}
