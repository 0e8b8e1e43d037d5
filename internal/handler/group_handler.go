// Package handler 提供 HTTP 请求处理器
// 本文件处理群组相关的 API 请求
package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"tajamu_group_server/internal/dto/request"
	"tajamu_group_server/internal/infrastructure/storage"
	"tajamu_group_server/internal/service"
	"tajamu_group_server/pkg/errorx"
)

// GroupHandler 群组请求处理器
// 通过构造函数注入 GroupService，遵循依赖倒置原则
type GroupHandler struct {
	groupSvc service.GroupService
	store    *storage.Store
}

// NewGroupHandler 创建群组处理器实例
func NewGroupHandler(groupSvc service.GroupService, store *storage.Store) *GroupHandler {
	return &GroupHandler{groupSvc: groupSvc, store: store}
}

// GetGroupDetails 获取群组详情
// GET /api/v1/group/details?groupId=xxx
// 响应: respond.GroupDetailRespond
func (h *GroupHandler) GetGroupDetails(c *gin.Context) {
	groupId := c.Query("groupId")
	if groupId == "" {
		HandleError(c, errorx.ErrInvalidParam)
		return
	}
	data, err := h.groupSvc.GetGroupDetails(groupId, c.GetString("user_id"))
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// GetGroupMembers 获取群成员列表
// GET /api/v1/group/members?groupId=xxx
// 响应: []respond.GroupMemberRespond
func (h *GroupHandler) GetGroupMembers(c *gin.Context) {
	groupId := c.Query("groupId")
	if groupId == "" {
		HandleError(c, errorx.ErrInvalidParam)
		return
	}
	data, err := h.groupSvc.GetGroupMembers(groupId)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// GetGroupEvents 获取群组活动列表
// GET /api/v1/group/events?groupId=xxx
// 响应: []respond.EventRespond
func (h *GroupHandler) GetGroupEvents(c *gin.Context) {
	groupId := c.Query("groupId")
	if groupId == "" {
		HandleError(c, errorx.ErrInvalidParam)
		return
	}
	data, err := h.groupSvc.GetGroupEvents(groupId, c.GetString("user_id"))
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// GetLeaderboard 获取群组活跃度排行榜
// GET /api/v1/group/leaderboard?groupId=xxx
// 响应: []respond.LeaderboardEntryRespond
func (h *GroupHandler) GetLeaderboard(c *gin.Context) {
	groupId := c.Query("groupId")
	if groupId == "" {
		HandleError(c, errorx.ErrInvalidParam)
		return
	}
	data, err := h.groupSvc.GetLeaderboard(groupId)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// GetPendingRequests 获取待处理入群申请（群主/管理员）
// GET /api/v1/group/pendingRequests?groupId=xxx
// 响应: []respond.JoinRequestRespond
func (h *GroupHandler) GetPendingRequests(c *gin.Context) {
	groupId := c.Query("groupId")
	if groupId == "" {
		HandleError(c, errorx.ErrInvalidParam)
		return
	}
	data, err := h.groupSvc.GetPendingRequests(groupId, c.GetString("user_id"))
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// GetMyGroups 获取我的群组
// GET /api/v1/group/myGroups
// 响应: respond.MyGroupsRespond
func (h *GroupHandler) GetMyGroups(c *gin.Context) {
	data, err := h.groupSvc.GetMyGroups(c.GetString("user_id"))
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// DiscoverGroups 发现页群组推荐
// GET /api/v1/group/discover?cityId=1
// 响应: []respond.GroupSummaryRespond
func (h *GroupHandler) DiscoverGroups(c *gin.Context) {
	cityId, _ := strconv.ParseUint(c.DefaultQuery("cityId", "0"), 10, 32)
	data, err := h.groupSvc.DiscoverGroups(c.GetString("user_id"), uint(cityId))
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// SearchGroups 搜索群组
// GET /api/v1/group/search?keyword=xxx
// 响应: []respond.GroupSummaryRespond
func (h *GroupHandler) SearchGroups(c *gin.Context) {
	keyword := c.Query("keyword")
	if keyword == "" {
		HandleError(c, errorx.ErrInvalidParam)
		return
	}
	data, err := h.groupSvc.SearchGroups(keyword)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// GetAvatarsMap 群组头像预览采样
// GET /api/v1/group/avatarsMap
// 响应: []respond.GroupAvatarsRespond
func (h *GroupHandler) GetAvatarsMap(c *gin.Context) {
	data, err := h.groupSvc.GetAvatarsMap()
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// ListCities 城市选项列表
// GET /api/v1/group/cities
// 响应: []respond.CityRespond
func (h *GroupHandler) ListCities(c *gin.Context) {
	data, err := h.groupSvc.ListCities()
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// ListCategories 分类选项列表
// GET /api/v1/group/categories
// 响应: []respond.CategoryOptionRespond
func (h *GroupHandler) ListCategories(c *gin.Context) {
	data, err := h.groupSvc.ListCategories()
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// CreateGroup 创建群组
// POST /api/v1/group/create
// 请求体: request.CreateGroupRequest
// 响应: group_id
func (h *GroupHandler) CreateGroup(c *gin.Context) {
	var req request.CreateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	groupId, err := h.groupSvc.CreateGroup(c.GetString("user_id"), req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, gin.H{"group_id": groupId})
}

// UpdateGroup 更新群组信息，仅群主可操作
// POST /api/v1/group/update
// 请求体: request.UpdateGroupRequest
// 响应: nil
func (h *GroupHandler) UpdateGroup(c *gin.Context) {
	var req request.UpdateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	if err := h.groupSvc.UpdateGroup(c.GetString("user_id"), req); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}

// ArchiveGroup 归档群组（软解散），仅群主可操作
// POST /api/v1/group/archive?groupId=xxx
// 响应: nil
func (h *GroupHandler) ArchiveGroup(c *gin.Context) {
	groupId := c.Query("groupId")
	if groupId == "" {
		HandleError(c, errorx.ErrInvalidParam)
		return
	}
	if err := h.groupSvc.ArchiveGroup(c.GetString("user_id"), groupId); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}

// UploadCover 上传群组封面
// POST /api/v1/group/uploadCover (multipart/form-data, 字段 cover)
// 响应: cover_url
func (h *GroupHandler) UploadCover(c *gin.Context) {
	fileHeader, err := c.FormFile("cover")
	if err != nil {
		HandleParamError(c, err)
		return
	}
	coverUrl, err := h.store.SaveCover(fileHeader)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, gin.H{"cover_url": coverUrl})
}

// JoinGroup 加入群组（免审批直接入群，否则创建申请）
// POST /api/v1/group/join
// 请求体: request.JoinGroupRequest
// 响应: joined - 是否已直接入群
func (h *GroupHandler) JoinGroup(c *gin.Context) {
	var req request.JoinGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	joined, err := h.groupSvc.JoinGroup(c.GetString("user_id"), req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, gin.H{"joined": joined})
}

// LeaveGroup 退出群组
// POST /api/v1/group/leave?groupId=xxx
// 响应: nil
func (h *GroupHandler) LeaveGroup(c *gin.Context) {
	groupId := c.Query("groupId")
	if groupId == "" {
		HandleError(c, errorx.ErrInvalidParam)
		return
	}
	if err := h.groupSvc.LeaveGroup(c.GetString("user_id"), groupId); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}

// ApproveJoinRequest 通过入群申请
// POST /api/v1/group/approveRequest
// 请求体: request.ReviewJoinRequestRequest
// 响应: nil
func (h *GroupHandler) ApproveJoinRequest(c *gin.Context) {
	var req request.ReviewJoinRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	if err := h.groupSvc.ApproveJoinRequest(c.GetString("user_id"), req); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}

// RejectJoinRequest 拒绝入群申请
// POST /api/v1/group/rejectRequest
// 请求体: request.ReviewJoinRequestRequest
// 响应: nil
func (h *GroupHandler) RejectJoinRequest(c *gin.Context) {
	var req request.ReviewJoinRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	if err := h.groupSvc.RejectJoinRequest(c.GetString("user_id"), req); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}

// PromoteMember 设为管理员
// POST /api/v1/group/promoteMember
// 请求体: request.MemberActionRequest
// 响应: nil
func (h *GroupHandler) PromoteMember(c *gin.Context) {
	h.memberAction(c, h.groupSvc.PromoteMember)
}

// DemoteMember 取消管理员
// POST /api/v1/group/demoteMember
func (h *GroupHandler) DemoteMember(c *gin.Context) {
	h.memberAction(c, h.groupSvc.DemoteMember)
}

// MuteMember 禁言成员
// POST /api/v1/group/muteMember
func (h *GroupHandler) MuteMember(c *gin.Context) {
	h.memberAction(c, h.groupSvc.MuteMember)
}

// UnmuteMember 解除禁言
// POST /api/v1/group/unmuteMember
func (h *GroupHandler) UnmuteMember(c *gin.Context) {
	h.memberAction(c, h.groupSvc.UnmuteMember)
}

// RemoveMember 移出群组
// POST /api/v1/group/removeMember
func (h *GroupHandler) RemoveMember(c *gin.Context) {
	h.memberAction(c, h.groupSvc.RemoveMember)
}

// memberAction 成员管理请求的公共处理流程
func (h *GroupHandler) memberAction(c *gin.Context, action func(string, request.MemberActionRequest) error) {
	var req request.MemberActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	if err := action(c.GetString("user_id"), req); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}

// CreateEvent 创建群组活动
// POST /api/v1/group/createEvent
// 请求体: request.CreateEventRequest
// 响应: event_id
func (h *GroupHandler) CreateEvent(c *gin.Context) {
	var req request.CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	eventId, err := h.groupSvc.CreateEvent(c.GetString("user_id"), req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, gin.H{"event_id": eventId})
}

// ToggleBookmark 收藏/取消收藏活动
// POST /api/v1/group/toggleBookmark
// 请求体: request.BookmarkEventRequest
// 响应: bookmarked - 操作后的收藏状态
func (h *GroupHandler) ToggleBookmark(c *gin.Context) {
	var req request.BookmarkEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	bookmarked, err := h.groupSvc.ToggleBookmark(c.GetString("user_id"), req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, gin.H{"bookmarked": bookmarked})
}
