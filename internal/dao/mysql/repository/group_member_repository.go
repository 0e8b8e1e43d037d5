// Package repository 提供数据访问层的具体实现
// 本文件实现 GroupMemberRepository 接口，处理群成员相关的数据库操作
package repository

import (
	"tajamu_group_server/internal/model"

	"gorm.io/gorm"
)

type groupMemberRepository struct {
	db *gorm.DB
}

// NewGroupMemberRepository 创建群成员 Repository
func NewGroupMemberRepository(db *gorm.DB) GroupMemberRepository {
	return &groupMemberRepository{db: db}
}

// FindByGroupUuid 根据群组 UUID 查找所有成员
func (r *groupMemberRepository) FindByGroupUuid(groupUuid string) ([]model.GroupMember, error) {
	var members []model.GroupMember
	if err := r.db.Where("group_uuid = ?", groupUuid).Find(&members).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询群成员 group_uuid=%s", groupUuid)
	}
	return members, nil
}

// FindByGroupAndUser 查找成员关系，用于检查用户是否在群中
func (r *groupMemberRepository) FindByGroupAndUser(groupUuid, userUuid string) (*model.GroupMember, error) {
	var member model.GroupMember
	if err := r.db.Where("group_uuid = ? AND user_uuid = ?", groupUuid, userUuid).First(&member).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询群成员 group_uuid=%s user_uuid=%s", groupUuid, userUuid)
	}
	return &member, nil
}

// FindGroupUuidsByUser 查找用户加入的所有群组 UUID
func (r *groupMemberRepository) FindGroupUuidsByUser(userUuid string) ([]string, error) {
	var groupUuids []string
	if err := r.db.Model(&model.GroupMember{}).Where("user_uuid = ?", userUuid).
		Pluck("group_uuid", &groupUuids).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询用户所在群 user_uuid=%s", userUuid)
	}
	return groupUuids, nil
}

// FindMembersWithProfile 查询群成员详细信息（包含用户基本资料）
// 通过 LEFT JOIN 关联用户表获取姓名和头像，一次查询取回全部成员
func (r *groupMemberRepository) FindMembersWithProfile(groupUuid string) ([]GroupMemberWithProfile, error) {
	var members []GroupMemberWithProfile
	if err := r.db.Table("group_member").
		Select("group_member.user_uuid, user_profile.full_name, user_profile.avatar_url, group_member.role, group_member.is_muted, group_member.joined_at").
		Joins("LEFT JOIN user_profile ON group_member.user_uuid = user_profile.uuid").
		Where("group_member.group_uuid = ? AND group_member.deleted_at IS NULL", groupUuid).
		Order("group_member.role DESC, group_member.joined_at ASC").
		Scan(&members).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询群成员详情 group_uuid=%s", groupUuid)
	}
	return members, nil
}

// FindByGroupUuids 批量查询多个群组的成员
// 一次 IN 查询取回所有行，按群组截断交给调用方处理
func (r *groupMemberRepository) FindByGroupUuids(groupUuids []string, limitPerGroup int) ([]model.GroupMember, error) {
	var members []model.GroupMember
	if len(groupUuids) == 0 {
		return members, nil
	}
	if err := r.db.Where("group_uuid IN ?", groupUuids).
		Order("group_uuid, joined_at ASC").
		Limit(limitPerGroup * len(groupUuids)).
		Find(&members).Error; err != nil {
		return nil, wrapDBError(err, "批量查询群成员")
	}
	return members, nil
}

// Create 添加群成员
func (r *groupMemberRepository) Create(member *model.GroupMember) error {
	if err := r.db.Create(member).Error; err != nil {
		return wrapDBError(err, "创建群成员")
	}
	return nil
}

// Delete 删除群成员
// 物理删除，软删除的行会占住 idx_group_user 唯一索引，导致退出后无法再次加入
func (r *groupMemberRepository) Delete(groupUuid, userUuid string) error {
	if err := r.db.Unscoped().Where("group_uuid = ? AND user_uuid = ?", groupUuid, userUuid).
		Delete(&model.GroupMember{}).Error; err != nil {
		return wrapDBErrorf(err, "删除群成员 group_uuid=%s user_uuid=%s", groupUuid, userUuid)
	}
	return nil
}

// UpdateRole 更新成员角色
func (r *groupMemberRepository) UpdateRole(groupUuid, userUuid string, role int8) error {
	if err := r.db.Model(&model.GroupMember{}).
		Where("group_uuid = ? AND user_uuid = ?", groupUuid, userUuid).
		Update("role", role).Error; err != nil {
		return wrapDBErrorf(err, "更新成员角色 group_uuid=%s user_uuid=%s", groupUuid, userUuid)
	}
	return nil
}

// UpdateMuted 更新成员禁言状态
func (r *groupMemberRepository) UpdateMuted(groupUuid, userUuid string, muted int8) error {
	if err := r.db.Model(&model.GroupMember{}).
		Where("group_uuid = ? AND user_uuid = ?", groupUuid, userUuid).
		Update("is_muted", muted).Error; err != nil {
		return wrapDBErrorf(err, "更新禁言状态 group_uuid=%s user_uuid=%s", groupUuid, userUuid)
	}
	return nil
}
