// Package repository 提供数据访问层的具体实现
// 本文件实现 JoinRequestRepository 接口，处理入群申请相关的数据库操作
package repository

import (
	"tajamu_group_server/internal/model"
	"tajamu_group_server/pkg/enum/join_request/join_request_status_enum"

	"gorm.io/gorm"
)

type joinRequestRepository struct {
	db *gorm.DB
}

// NewJoinRequestRepository 创建入群申请 Repository
func NewJoinRequestRepository(db *gorm.DB) JoinRequestRepository {
	return &joinRequestRepository{db: db}
}

// FindByGroupAndUser 查找用户对群组的申请记录
// 返回记录包含历史状态，调用方据此判断是重新申请还是重复申请
func (r *joinRequestRepository) FindByGroupAndUser(groupUuid, userUuid string) (*model.JoinRequest, error) {
	var request model.JoinRequest
	if err := r.db.Where("group_uuid = ? AND user_uuid = ?", groupUuid, userUuid).First(&request).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询入群申请 group_uuid=%s user_uuid=%s", groupUuid, userUuid)
	}
	return &request, nil
}

// FindPendingWithProfile 查找群组的待处理申请（含申请人资料）
func (r *joinRequestRepository) FindPendingWithProfile(groupUuid string) ([]JoinRequestWithProfile, error) {
	var requests []JoinRequestWithProfile
	if err := r.db.Table("join_request").
		Select("join_request.id, join_request.group_uuid, join_request.user_uuid, join_request.message, user_profile.full_name, user_profile.avatar_url, join_request.created_at").
		Joins("LEFT JOIN user_profile ON join_request.user_uuid = user_profile.uuid").
		Where("join_request.group_uuid = ? AND join_request.status = ? AND join_request.deleted_at IS NULL",
			groupUuid, join_request_status_enum.PENDING).
		Order("join_request.created_at ASC").
		Scan(&requests).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询待处理申请 group_uuid=%s", groupUuid)
	}
	return requests, nil
}

// Create 创建新申请
func (r *joinRequestRepository) Create(request *model.JoinRequest) error {
	if err := r.db.Create(request).Error; err != nil {
		return wrapDBError(err, "创建入群申请")
	}
	return nil
}

// Update 更新申请
func (r *joinRequestRepository) Update(request *model.JoinRequest) error {
	if err := r.db.Save(request).Error; err != nil {
		return wrapDBError(err, "更新入群申请")
	}
	return nil
}
