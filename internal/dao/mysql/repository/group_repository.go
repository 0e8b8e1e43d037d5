// Package repository 提供数据访问层的具体实现
// 本文件实现 GroupRepository 接口，处理群组相关的数据库操作
package repository

import (
	"time"

	"tajamu_group_server/internal/model"
	"tajamu_group_server/pkg/enum/group/group_visibility_enum"

	"gorm.io/gorm"
)

type groupRepository struct {
	db *gorm.DB
}

// NewGroupRepository 创建群组 Repository
func NewGroupRepository(db *gorm.DB) GroupRepository {
	return &groupRepository{db: db}
}

// FindByUuid 按 UUID 查找群组
// 已归档的群组也会返回，归档只把群组从列表查询中排除
func (r *groupRepository) FindByUuid(uuid string) (*model.Group, error) {
	var group model.Group
	if err := r.db.Where("uuid = ?", uuid).First(&group).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询群组 uuid=%s", uuid)
	}
	return &group, nil
}

// FindByUuids 按 UUID 列表批量查找群组
func (r *groupRepository) FindByUuids(uuids []string) ([]model.Group, error) {
	var groups []model.Group
	if len(uuids) == 0 {
		return groups, nil
	}
	if err := r.db.Where("uuid IN ? AND archived_at IS NULL", uuids).Find(&groups).Error; err != nil {
		return nil, wrapDBError(err, "批量查询群组")
	}
	return groups, nil
}

// FindByCreatedBy 查找用户创建的群组，按创建时间倒序
func (r *groupRepository) FindByCreatedBy(userUuid string, limit int) ([]model.Group, error) {
	var groups []model.Group
	if err := r.db.Where("created_by = ? AND archived_at IS NULL", userUuid).
		Order("created_at DESC").Limit(limit).Find(&groups).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询用户创建的群组 user_uuid=%s", userUuid)
	}
	return groups, nil
}

// FindPublicExcluding 查找公开群组，排除指定集合（用户已加入的群组）
// cityId 为 0 表示不按城市过滤，按成员数倒序返回热门群组
func (r *groupRepository) FindPublicExcluding(excludeUuids []string, cityId uint, limit int) ([]model.Group, error) {
	var groups []model.Group
	query := r.db.Where("visibility = ? AND archived_at IS NULL", group_visibility_enum.PUBLIC)
	if len(excludeUuids) > 0 {
		query = query.Where("uuid NOT IN ?", excludeUuids)
	}
	if cityId > 0 {
		query = query.Where("city_id = ?", cityId)
	}
	if err := query.Order("current_members DESC").Limit(limit).Find(&groups).Error; err != nil {
		return nil, wrapDBError(err, "查询公开群组")
	}
	return groups, nil
}

// SearchByName 按名称模糊搜索公开群组
func (r *groupRepository) SearchByName(keyword string, limit int) ([]model.Group, error) {
	var groups []model.Group
	if err := r.db.Where("visibility = ? AND archived_at IS NULL AND name LIKE ?",
		group_visibility_enum.PUBLIC, "%"+keyword+"%").
		Order("current_members DESC").Limit(limit).Find(&groups).Error; err != nil {
		return nil, wrapDBErrorf(err, "搜索群组 keyword=%s", keyword)
	}
	return groups, nil
}

// Create 创建群组
func (r *groupRepository) Create(group *model.Group) error {
	if err := r.db.Create(group).Error; err != nil {
		return wrapDBError(err, "创建群组")
	}
	return nil
}

// Update 更新群组信息
func (r *groupRepository) Update(group *model.Group) error {
	if err := r.db.Save(group).Error; err != nil {
		return wrapDBError(err, "更新群组信息")
	}
	return nil
}

// IncrementMemberCount 群成员数 +1
func (r *groupRepository) IncrementMemberCount(uuid string) error {
	if err := r.db.Model(&model.Group{}).Where("uuid = ?", uuid).
		Update("current_members", gorm.Expr("current_members + 1")).Error; err != nil {
		return wrapDBErrorf(err, "增加群成员数 uuid=%s", uuid)
	}
	return nil
}

// DecrementMemberCount 群成员数 -1，不会减到负数
func (r *groupRepository) DecrementMemberCount(uuid string) error {
	if err := r.db.Model(&model.Group{}).Where("uuid = ? AND current_members > 0", uuid).
		Update("current_members", gorm.Expr("current_members - 1")).Error; err != nil {
		return wrapDBErrorf(err, "减少群成员数 uuid=%s", uuid)
	}
	return nil
}

// Archive 归档群组
func (r *groupRepository) Archive(uuid string) error {
	if err := r.db.Model(&model.Group{}).Where("uuid = ?", uuid).
		Update("archived_at", time.Now()).Error; err != nil {
		return wrapDBErrorf(err, "归档群组 uuid=%s", uuid)
	}
	return nil
}
