// Package repository 定义数据访问层接口和聚合结构
// 所有 Repository 接口在此文件定义，具体实现在各自的文件中
// 批量查询一律使用 IN 条件，避免对列表逐行查询
package repository

import (
	"time"

	"tajamu_group_server/internal/model"
)

// ==================== 联表查询结果类型 ====================

// GroupMemberWithProfile 带用户资料的群成员行
// 由 group_member LEFT JOIN user_profile 得到
type GroupMemberWithProfile struct {
	UserUuid  string    `gorm:"column:user_uuid"`
	FullName  string    `gorm:"column:full_name"`
	AvatarUrl string    `gorm:"column:avatar_url"`
	Role      int8      `gorm:"column:role"`
	IsMuted   int8      `gorm:"column:is_muted"`
	JoinedAt  time.Time `gorm:"column:joined_at"`
}

// JoinRequestWithProfile 带申请人资料的入群申请行
type JoinRequestWithProfile struct {
	Id        uint      `gorm:"column:id"`
	GroupUuid string    `gorm:"column:group_uuid"`
	UserUuid  string    `gorm:"column:user_uuid"`
	Message   string    `gorm:"column:message"`
	FullName  string    `gorm:"column:full_name"`
	AvatarUrl string    `gorm:"column:avatar_url"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

// UserActivityCount 用户活跃度计数行，用于排行榜
type UserActivityCount struct {
	UserUuid string `gorm:"column:user_uuid"`
	Cnt      int    `gorm:"column:cnt"`
}

// GroupCategoryRow 群组与分类的联表行
type GroupCategoryRow struct {
	GroupUuid string `gorm:"column:group_uuid"`
	Name      string `gorm:"column:name"`
	NameAr    string `gorm:"column:name_ar"`
	Icon      string `gorm:"column:icon"`
}

// ==================== Repository 接口定义 ====================

// UserRepository 用户数据访问接口
type UserRepository interface {
	// FindByUuid 根据 UUID 查找用户
	FindByUuid(uuid string) (*model.UserProfile, error)
	// FindByEmail 根据邮箱查找用户
	FindByEmail(email string) (*model.UserProfile, error)
	// FindByUuids 批量根据 UUID 查找用户
	FindByUuids(uuids []string) ([]model.UserProfile, error)
	// Create 创建新用户
	Create(user *model.UserProfile) error
	// Update 更新用户资料
	Update(user *model.UserProfile) error
}

// GroupRepository 群组数据访问接口
type GroupRepository interface {
	// FindByUuid 根据 UUID 查找群组，已归档的群组也会返回
	FindByUuid(uuid string) (*model.Group, error)
	// FindByUuids 批量根据 UUID 查找群组
	FindByUuids(uuids []string) ([]model.Group, error)
	// FindByCreatedBy 查找用户创建的群组
	FindByCreatedBy(userUuid string, limit int) ([]model.Group, error)
	// FindPublicExcluding 查找公开群组，排除指定 UUID 集合（用于发现页）
	FindPublicExcluding(excludeUuids []string, cityId uint, limit int) ([]model.Group, error)
	// SearchByName 按名称模糊搜索公开群组
	SearchByName(keyword string, limit int) ([]model.Group, error)
	// Create 创建新群组
	Create(group *model.Group) error
	// Update 更新群组信息
	Update(group *model.Group) error
	// IncrementMemberCount 增加群成员数量（+1）
	IncrementMemberCount(uuid string) error
	// DecrementMemberCount 减少群成员数量（-1）
	DecrementMemberCount(uuid string) error
	// Archive 归档群组（软解散，设置 archived_at）
	Archive(uuid string) error
}

// GroupMemberRepository 群成员数据访问接口
type GroupMemberRepository interface {
	// FindByGroupUuid 根据群组 UUID 查找所有成员
	FindByGroupUuid(groupUuid string) ([]model.GroupMember, error)
	// FindByGroupAndUser 查找成员关系，用于检查用户是否在群中
	FindByGroupAndUser(groupUuid, userUuid string) (*model.GroupMember, error)
	// FindGroupUuidsByUser 查找用户加入的所有群组 UUID
	FindGroupUuidsByUser(userUuid string) ([]string, error)
	// FindMembersWithProfile 查询群成员详细信息（LEFT JOIN 用户表）
	FindMembersWithProfile(groupUuid string) ([]GroupMemberWithProfile, error)
	// FindByGroupUuids 批量查询多个群组的成员，每个群组最多 limitPerGroup 条
	FindByGroupUuids(groupUuids []string, limitPerGroup int) ([]model.GroupMember, error)
	// Create 添加群成员
	Create(member *model.GroupMember) error
	// Delete 删除群成员
	Delete(groupUuid, userUuid string) error
	// UpdateRole 更新成员角色
	UpdateRole(groupUuid, userUuid string, role int8) error
	// UpdateMuted 更新成员禁言状态
	UpdateMuted(groupUuid, userUuid string, muted int8) error
}

// JoinRequestRepository 入群申请数据访问接口
type JoinRequestRepository interface {
	// FindByGroupAndUser 查找用户对群组的申请记录（含历史记录）
	FindByGroupAndUser(groupUuid, userUuid string) (*model.JoinRequest, error)
	// FindPendingWithProfile 查找群组的待处理申请（含申请人资料）
	FindPendingWithProfile(groupUuid string) ([]JoinRequestWithProfile, error)
	// Create 创建新申请
	Create(request *model.JoinRequest) error
	// Update 更新申请（状态流转、被拒后重新申请）
	Update(request *model.JoinRequest) error
}

// PostRepository 帖子数据访问接口
type PostRepository interface {
	// FindByUuid 根据 UUID 查找帖子
	FindByUuid(uuid string) (*model.Post, error)
	// FindByGroupUuid 查找群组帖子，按创建时间倒序
	FindByGroupUuid(groupUuid string, limit int) ([]model.Post, error)
	// FindLikedPostUuids 批量查询用户在给定帖子集合中点过赞的帖子 UUID
	FindLikedPostUuids(postUuids []string, userUuid string) ([]string, error)
	// FindPollOptionsByPostUuids 批量查询帖子集合的投票选项
	FindPollOptionsByPostUuids(postUuids []string) ([]model.PollOption, error)
	// FindVotesByPostUuidsAndUser 批量查询用户在帖子集合中的投票记录
	FindVotesByPostUuidsAndUser(postUuids []string, userUuid string) ([]model.PollVote, error)
	// CountByUsersInGroup 按作者统计群组内帖子数，用于排行榜
	CountByUsersInGroup(groupUuid string) ([]UserActivityCount, error)
	// Create 创建帖子
	Create(post *model.Post) error
	// CreatePollOptions 批量创建投票选项
	CreatePollOptions(options []model.PollOption) error
	// FindLike 查找点赞记录
	FindLike(postUuid, userUuid string) (*model.PostLike, error)
	// CreateLike 创建点赞记录
	CreateLike(like *model.PostLike) error
	// DeleteLike 删除点赞记录
	DeleteLike(postUuid, userUuid string) error
	// IncrementLikes 帖子点赞数 +1
	IncrementLikes(postUuid string) error
	// DecrementLikes 帖子点赞数 -1
	DecrementLikes(postUuid string) error
	// FindVote 查找用户对帖子的投票记录
	FindVote(postUuid, userUuid string) (*model.PollVote, error)
	// DeleteVote 删除投票记录（改票的第一步）
	DeleteVote(postUuid, userUuid string) error
	// CreateVote 创建投票记录
	CreateVote(vote *model.PollVote) error
	// IncrementOptionVotes 选项票数 +1
	IncrementOptionVotes(optionId uint) error
	// DecrementOptionVotes 选项票数 -1
	DecrementOptionVotes(optionId uint) error
}

// MessageRepository 消息数据访问接口
type MessageRepository interface {
	// FindRecentByGroup 查找群组最近的消息，只返回 since 时间之后的，最多 limit 条
	FindRecentByGroup(groupUuid string, since time.Time, limit int) ([]model.Message, error)
	// FindAttachmentsByMessageUuids 批量查询消息集合的附件
	FindAttachmentsByMessageUuids(messageUuids []string) ([]model.MessageAttachment, error)
	// Create 创建消息
	Create(message *model.Message) error
	// CreateAttachment 创建消息附件
	CreateAttachment(attachment *model.MessageAttachment) error
}

// EventRepository 活动数据访问接口
type EventRepository interface {
	// FindByUuid 根据 UUID 查找活动
	FindByUuid(uuid string) (*model.Event, error)
	// FindByGroupUuid 查找群组中指定状态的活动，按开始时间排序
	FindByGroupUuid(groupUuid string, statuses []int8) ([]model.Event, error)
	// FindBookmarkedEventUuids 批量查询用户在给定活动集合中收藏的活动 UUID
	FindBookmarkedEventUuids(eventUuids []string, userUuid string) ([]string, error)
	// Create 创建活动
	Create(event *model.Event) error
	// FindBookmark 查找收藏记录
	FindBookmark(eventUuid, userUuid string) (*model.EventBookmark, error)
	// CreateBookmark 创建收藏记录
	CreateBookmark(bookmark *model.EventBookmark) error
	// DeleteBookmark 删除收藏记录
	DeleteBookmark(eventUuid, userUuid string) error
}

// NotificationRepository 通知数据访问接口
type NotificationRepository interface {
	// FindByUser 查找用户的通知，按创建时间倒序
	FindByUser(userUuid string, limit int) ([]model.Notification, error)
	// CountUnread 统计用户未读通知数量
	CountUnread(userUuid string) (int64, error)
	// MarkRead 将单条通知标记为已读
	MarkRead(uuid, userUuid string) error
	// MarkAllRead 将用户所有通知标记为已读
	MarkAllRead(userUuid string) error
	// Create 创建通知
	Create(notification *model.Notification) error
	// CreateBatch 批量创建通知（群发）
	CreateBatch(notifications []model.Notification) error
}

// TaxonomyRepository 城市与分类数据访问接口
type TaxonomyRepository interface {
	// FindAllCities 查找所有城市
	FindAllCities() ([]model.City, error)
	// FindCitiesByIds 批量查找城市
	FindCitiesByIds(ids []uint) ([]model.City, error)
	// FindAllCategories 查找所有分类
	FindAllCategories() ([]model.Category, error)
	// FindCategoriesByGroupUuids 批量查询群组集合的分类（JOIN group_interest）
	FindCategoriesByGroupUuids(groupUuids []string) ([]GroupCategoryRow, error)
	// CreateGroupInterests 批量创建群组分类关联
	CreateGroupInterests(interests []model.GroupInterest) error
}
