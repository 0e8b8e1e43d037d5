package model

import (
	"time"

	"gorm.io/gorm"
)

// GroupMember 群组成员关系
// (group_uuid, user_uuid) 唯一，一个用户在一个群内只有一条成员记录
type GroupMember struct {
	gorm.Model
	GroupUuid string    `gorm:"column:group_uuid;index:idx_group_user,unique;type:char(20);not null;comment:群组uuid"`
	UserUuid  string    `gorm:"column:user_uuid;index:idx_group_user,unique;index;type:char(20);not null;comment:用户uuid"`
	Role      int8      `gorm:"column:role;default:1;comment:角色，1.成员，2.管理员，3.群主"`
	IsMuted   int8      `gorm:"column:is_muted;default:0;comment:是否被禁言，0.否，1.是"`
	JoinedAt  time.Time `gorm:"column:joined_at;type:datetime;not null;comment:入群时间"`
}

func (GroupMember) TableName() string {
	return "group_member"
}
