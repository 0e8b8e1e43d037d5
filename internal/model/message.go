// Package model 定义数据库实体模型
// 本文件定义群组消息模型，用于存储群聊消息及其附件
package model

import (
	"gorm.io/gorm"
)

// Message 群组消息模型
// 对应数据库 message 表
type Message struct {
	gorm.Model

	// Uuid 消息唯一标识
	// 使用雪花算法生成，字符串形式存储避免前端 JavaScript 精度丢失
	Uuid string `gorm:"column:uuid;uniqueIndex;type:char(20);not null;comment:消息雪花ID"`

	// GroupUuid 所属群组 UUID
	GroupUuid string `gorm:"column:group_uuid;index:idx_group_created;type:char(20);not null;comment:群组uuid"`

	// SendId 发送者 UUID
	// 关联到 UserProfile 表
	SendId string `gorm:"column:send_id;index;type:char(20);not null;comment:发送者uuid"`

	// Content 消息文本内容
	// 纯附件消息此字段为空，展示时使用占位文案
	Content string `gorm:"column:content;type:TEXT;comment:消息内容"`

	// SendName 发送者昵称
	// 冗余存储，避免每次查询消息时都要关联用户表
	SendName string `gorm:"column:send_name;type:varchar(50);comment:发送者昵称"`

	// SendAvatar 发送者头像
	// 冗余存储，存储相对路径如 "/static/media/xxx.jpg"
	SendAvatar string `gorm:"column:send_avatar;type:varchar(255);comment:发送者头像"`
}

// TableName 指定表名
func (Message) TableName() string {
	return "message"
}

// MessageAttachment 消息附件
// 一条消息可以携带多个附件，逐个上传，部分失败不影响已成功的附件
type MessageAttachment struct {
	gorm.Model
	MessageUuid string `gorm:"column:message_uuid;index;type:char(20);not null;comment:所属消息uuid"`
	FileUrl     string `gorm:"column:file_url;type:varchar(255);not null;comment:文件url"`
	FileType    string `gorm:"column:file_type;type:varchar(10);comment:文件类型，image/video/audio/file"`
	FileName    string `gorm:"column:file_name;type:varchar(100);comment:文件名"`
	FileSize    int64  `gorm:"column:file_size;comment:文件大小（字节）"`
}

func (MessageAttachment) TableName() string {
	return "message_attachment"
}
