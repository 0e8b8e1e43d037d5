// Package repository 提供数据访问层的具体实现
// 本文件实现 PostRepository 接口，处理帖子、点赞和投票相关的数据库操作
package repository

import (
	"tajamu_group_server/internal/model"

	"gorm.io/gorm"
)

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository 创建帖子 Repository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

// FindByUuid 按 UUID 查找帖子
func (r *postRepository) FindByUuid(uuid string) (*model.Post, error) {
	var post model.Post
	if err := r.db.First(&post, "uuid = ?", uuid).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询帖子 uuid=%s", uuid)
	}
	return &post, nil
}

// FindByGroupUuid 查找群组帖子，按创建时间倒序
func (r *postRepository) FindByGroupUuid(groupUuid string, limit int) ([]model.Post, error) {
	var posts []model.Post
	query := r.db.Where("group_uuid = ?", groupUuid).Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&posts).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询群组帖子 group_uuid=%s", groupUuid)
	}
	return posts, nil
}

// FindLikedPostUuids 批量查询用户在给定帖子集合中点过赞的帖子 UUID
// 一次 IN 查询避免对帖子列表逐条查点赞状态
func (r *postRepository) FindLikedPostUuids(postUuids []string, userUuid string) ([]string, error) {
	var liked []string
	if len(postUuids) == 0 {
		return liked, nil
	}
	if err := r.db.Model(&model.PostLike{}).
		Where("post_uuid IN ? AND user_uuid = ?", postUuids, userUuid).
		Pluck("post_uuid", &liked).Error; err != nil {
		return nil, wrapDBError(err, "批量查询点赞状态")
	}
	return liked, nil
}

// FindPollOptionsByPostUuids 批量查询帖子集合的投票选项
func (r *postRepository) FindPollOptionsByPostUuids(postUuids []string) ([]model.PollOption, error) {
	var options []model.PollOption
	if len(postUuids) == 0 {
		return options, nil
	}
	if err := r.db.Where("post_uuid IN ?", postUuids).
		Order("post_uuid, position ASC").Find(&options).Error; err != nil {
		return nil, wrapDBError(err, "批量查询投票选项")
	}
	return options, nil
}

// FindVotesByPostUuidsAndUser 批量查询用户在帖子集合中的投票记录
func (r *postRepository) FindVotesByPostUuidsAndUser(postUuids []string, userUuid string) ([]model.PollVote, error) {
	var votes []model.PollVote
	if len(postUuids) == 0 {
		return votes, nil
	}
	if err := r.db.Where("post_uuid IN ? AND user_uuid = ?", postUuids, userUuid).
		Find(&votes).Error; err != nil {
		return nil, wrapDBError(err, "批量查询投票记录")
	}
	return votes, nil
}

// CountByUsersInGroup 按作者统计群组内帖子数
func (r *postRepository) CountByUsersInGroup(groupUuid string) ([]UserActivityCount, error) {
	var counts []UserActivityCount
	if err := r.db.Model(&model.Post{}).
		Select("user_uuid, COUNT(*) as cnt").
		Where("group_uuid = ? AND deleted_at IS NULL", groupUuid).
		Group("user_uuid").
		Scan(&counts).Error; err != nil {
		return nil, wrapDBErrorf(err, "统计群组帖子数 group_uuid=%s", groupUuid)
	}
	return counts, nil
}

// Create 创建帖子
func (r *postRepository) Create(post *model.Post) error {
	if err := r.db.Create(post).Error; err != nil {
		return wrapDBError(err, "创建帖子")
	}
	return nil
}

// CreatePollOptions 批量创建投票选项
func (r *postRepository) CreatePollOptions(options []model.PollOption) error {
	if len(options) == 0 {
		return nil
	}
	if err := r.db.Create(&options).Error; err != nil {
		return wrapDBError(err, "创建投票选项")
	}
	return nil
}

// FindLike 查找点赞记录
func (r *postRepository) FindLike(postUuid, userUuid string) (*model.PostLike, error) {
	var like model.PostLike
	if err := r.db.Where("post_uuid = ? AND user_uuid = ?", postUuid, userUuid).First(&like).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询点赞记录 post_uuid=%s user_uuid=%s", postUuid, userUuid)
	}
	return &like, nil
}

// CreateLike 创建点赞记录
func (r *postRepository) CreateLike(like *model.PostLike) error {
	if err := r.db.Create(like).Error; err != nil {
		return wrapDBError(err, "创建点赞记录")
	}
	return nil
}

// DeleteLike 删除点赞记录
// 物理删除，取消点赞后才能再次点赞
func (r *postRepository) DeleteLike(postUuid, userUuid string) error {
	if err := r.db.Unscoped().Where("post_uuid = ? AND user_uuid = ?", postUuid, userUuid).
		Delete(&model.PostLike{}).Error; err != nil {
		return wrapDBErrorf(err, "删除点赞记录 post_uuid=%s user_uuid=%s", postUuid, userUuid)
	}
	return nil
}

// IncrementLikes 帖子点赞数 +1
func (r *postRepository) IncrementLikes(postUuid string) error {
	if err := r.db.Model(&model.Post{}).Where("uuid = ?", postUuid).
		Update("likes_count", gorm.Expr("likes_count + 1")).Error; err != nil {
		return wrapDBErrorf(err, "增加点赞数 post_uuid=%s", postUuid)
	}
	return nil
}

// DecrementLikes 帖子点赞数 -1，不会减到负数
func (r *postRepository) DecrementLikes(postUuid string) error {
	if err := r.db.Model(&model.Post{}).Where("uuid = ? AND likes_count > 0", postUuid).
		Update("likes_count", gorm.Expr("likes_count - 1")).Error; err != nil {
		return wrapDBErrorf(err, "减少点赞数 post_uuid=%s", postUuid)
	}
	return nil
}

// FindVote 查找用户对帖子的投票记录
func (r *postRepository) FindVote(postUuid, userUuid string) (*model.PollVote, error) {
	var vote model.PollVote
	if err := r.db.Where("post_uuid = ? AND user_uuid = ?", postUuid, userUuid).First(&vote).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询投票记录 post_uuid=%s user_uuid=%s", postUuid, userUuid)
	}
	return &vote, nil
}

// DeleteVote 删除投票记录
// 改票时先删除旧记录，同一事务内再插入新记录
func (r *postRepository) DeleteVote(postUuid, userUuid string) error {
	if err := r.db.Unscoped().Where("post_uuid = ? AND user_uuid = ?", postUuid, userUuid).
		Delete(&model.PollVote{}).Error; err != nil {
		return wrapDBErrorf(err, "删除投票记录 post_uuid=%s user_uuid=%s", postUuid, userUuid)
	}
	return nil
}

// CreateVote 创建投票记录
func (r *postRepository) CreateVote(vote *model.PollVote) error {
	if err := r.db.Create(vote).Error; err != nil {
		return wrapDBError(err, "创建投票记录")
	}
	return nil
}

// IncrementOptionVotes 选项票数 +1
func (r *postRepository) IncrementOptionVotes(optionId uint) error {
	if err := r.db.Model(&model.PollOption{}).Where("id = ?", optionId).
		Update("votes_count", gorm.Expr("votes_count + 1")).Error; err != nil {
		return wrapDBErrorf(err, "增加选项票数 option_id=%d", optionId)
	}
	return nil
}

// DecrementOptionVotes 选项票数 -1，不会减到负数
func (r *postRepository) DecrementOptionVotes(optionId uint) error {
	if err := r.db.Model(&model.PollOption{}).Where("id = ? AND votes_count > 0", optionId).
		Update("votes_count", gorm.Expr("votes_count - 1")).Error; err != nil {
		return wrapDBErrorf(err, "减少选项票数 option_id=%d", optionId)
	}
	return nil
}
