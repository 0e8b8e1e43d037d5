// Package repository 提供数据访问层的具体实现
// 本文件实现 MessageRepository 接口，处理群消息及附件的数据库操作
package repository

import (
	"time"

	"tajamu_group_server/internal/model"

	"gorm.io/gorm"
)

type messageRepository struct {
	db *gorm.DB
}

// NewMessageRepository 创建消息 Repository
func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepository{db: db}
}

// FindRecentByGroup 查找群组最近的消息
// 只返回 since 时间之后的消息（用户入群前的消息不可见），最多 limit 条
// 按创建时间倒序取最新的 limit 条后反转，保证返回结果按时间正序
func (r *messageRepository) FindRecentByGroup(groupUuid string, since time.Time, limit int) ([]model.Message, error) {
	var messages []model.Message
	if err := r.db.Where("group_uuid = ? AND created_at >= ?", groupUuid, since).
		Order("created_at DESC").Limit(limit).Find(&messages).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询群消息 group_uuid=%s", groupUuid)
	}
	// 反转为时间正序
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
	return messages, nil
}

// FindAttachmentsByMessageUuids 批量查询消息集合的附件
func (r *messageRepository) FindAttachmentsByMessageUuids(messageUuids []string) ([]model.MessageAttachment, error) {
	var attachments []model.MessageAttachment
	if len(messageUuids) == 0 {
		return attachments, nil
	}
	if err := r.db.Where("message_uuid IN ?", messageUuids).Find(&attachments).Error; err != nil {
		return nil, wrapDBError(err, "批量查询消息附件")
	}
	return attachments, nil
}

// Create 创建消息
func (r *messageRepository) Create(message *model.Message) error {
	if err := r.db.Create(message).Error; err != nil {
		return wrapDBError(err, "创建消息")
	}
	return nil
}

// CreateAttachment 创建消息附件
func (r *messageRepository) CreateAttachment(attachment *model.MessageAttachment) error {
	if err := r.db.Create(attachment).Error; err != nil {
		return wrapDBError(err, "创建消息附件")
	}
	return nil
}
