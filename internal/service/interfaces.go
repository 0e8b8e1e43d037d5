// Package service 定义业务层接口
// 本文件定义所有 Service 接口，供 Handler 层调用
// 接口设计遵循依赖倒置原则，便于测试和解耦
package service

import (
	"tajamu_group_server/internal/dto/request"
	"tajamu_group_server/internal/dto/respond"
)

// UserService 用户业务接口
// 处理用户注册、登录等功能
type UserService interface {
	// Register 用户注册
	Register(req request.RegisterRequest) (*respond.LoginRespond, error)
	// Login 密码登录
	Login(req request.LoginRequest) (*respond.LoginRespond, error)
	// RefreshToken 用 Refresh Token 换取新的 Access Token
	RefreshToken(refreshToken string) (string, error)
	// GetProfile 查看个人资料
	GetProfile(userId string) (*respond.ProfileRespond, error)
	// UpdateProfile 更新个人资料
	UpdateProfile(userId string, req request.UpdateProfileRequest) error
}

// GroupService 群组业务接口
// 聚合查询走查询缓存，变更操作走事务并失效相关缓存
type GroupService interface {
	// GetGroupDetails 群组详情（含当前用户的成员关系与申请状态）
	GetGroupDetails(groupId, userId string) (*respond.GroupDetailRespond, error)
	// GetGroupMembers 群组成员列表
	GetGroupMembers(groupId string) ([]respond.GroupMemberRespond, error)
	// GetGroupEvents 群组活动列表（含当前用户的收藏状态）
	GetGroupEvents(groupId, userId string) ([]respond.EventRespond, error)
	// GetLeaderboard 群组活跃度排行榜（前 10 名）
	GetLeaderboard(groupId string) ([]respond.LeaderboardEntryRespond, error)
	// GetPendingRequests 待处理入群申请，仅群主和管理员可见
	GetPendingRequests(groupId, reviewerId string) ([]respond.JoinRequestRespond, error)
	// GetMyGroups 我的群组（自建最多 6 个，加入最多 6 个）
	GetMyGroups(userId string) (*respond.MyGroupsRespond, error)
	// DiscoverGroups 发现页群组（最多 12 个，排除已加入的）
	DiscoverGroups(userId string, cityId uint) ([]respond.GroupSummaryRespond, error)
	// SearchGroups 按名称搜索公开群组
	SearchGroups(keyword string) ([]respond.GroupSummaryRespond, error)
	// GetAvatarsMap 群组头像预览采样（每个群组最多 3 个头像）
	GetAvatarsMap() ([]respond.GroupAvatarsRespond, error)
	// ListCities 城市选项列表
	ListCities() ([]respond.CityRespond, error)
	// ListCategories 分类选项列表
	ListCategories() ([]respond.CategoryOptionRespond, error)

	// CreateGroup 创建群组，返回群组 UUID
	CreateGroup(userId string, req request.CreateGroupRequest) (string, error)
	// UpdateGroup 更新群组信息，仅群主可操作
	UpdateGroup(userId string, req request.UpdateGroupRequest) error
	// ArchiveGroup 归档群组（软解散），仅群主可操作
	ArchiveGroup(userId, groupId string) error
	// JoinGroup 加入群组，返回是否已直接入群（false 表示进入待审批）
	JoinGroup(userId string, req request.JoinGroupRequest) (bool, error)
	// LeaveGroup 退出群组
	LeaveGroup(userId, groupId string) error
	// ApproveJoinRequest 通过入群申请（幂等，重复通过无副作用）
	ApproveJoinRequest(reviewerId string, req request.ReviewJoinRequestRequest) error
	// RejectJoinRequest 拒绝入群申请
	RejectJoinRequest(reviewerId string, req request.ReviewJoinRequestRequest) error
	// PromoteMember 设为管理员，仅群主可操作
	PromoteMember(actorId string, req request.MemberActionRequest) error
	// DemoteMember 取消管理员，仅群主可操作
	DemoteMember(actorId string, req request.MemberActionRequest) error
	// MuteMember 禁言成员
	MuteMember(actorId string, req request.MemberActionRequest) error
	// UnmuteMember 解除禁言
	UnmuteMember(actorId string, req request.MemberActionRequest) error
	// RemoveMember 移出群组
	RemoveMember(actorId string, req request.MemberActionRequest) error
	// CreateEvent 创建活动，返回活动 UUID
	CreateEvent(userId string, req request.CreateEventRequest) (string, error)
	// ToggleBookmark 收藏/取消收藏活动，返回操作后的收藏状态
	ToggleBookmark(userId string, req request.BookmarkEventRequest) (bool, error)
}

// PostService 帖子业务接口
type PostService interface {
	// GetGroupPosts 群组帖子流（含当前用户的点赞与投票状态）
	GetGroupPosts(groupId, userId string) ([]respond.PostRespond, error)
	// CreatePost 发布帖子，仅群主和管理员可发
	CreatePost(userId string, req request.CreatePostRequest) (string, error)
	// CreatePoll 发布投票帖，仅群主和管理员可发
	CreatePoll(userId string, req request.CreatePollRequest) (string, error)
	// ToggleLike 点赞/取消点赞，返回操作后的点赞状态
	ToggleLike(userId string, req request.LikePostRequest) (bool, error)
	// VoteInPoll 投票，改票时先删旧票再插新票
	VoteInPoll(userId string, req request.VotePollRequest) error
}

// NotificationService 通知业务接口
type NotificationService interface {
	// GetNotifications 用户通知列表
	GetNotifications(userId string) ([]respond.NotificationRespond, error)
	// GetUnreadCount 未读通知数量
	GetUnreadCount(userId string) (int64, error)
	// MarkRead 标记已读，notification_id 为空时标记全部
	MarkRead(userId string, req request.MarkNotificationReadRequest) error
}
