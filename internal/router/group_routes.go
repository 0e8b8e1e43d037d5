// Package router 提供 HTTP 路由注册
// 本文件定义群组相关的路由
package router

import (
	"github.com/gin-gonic/gin"
)

// RegisterGroupRoutes 注册群组相关路由（需要认证）
// 包括群组查询、创建、入群审批、成员管理和活动等功能
func (rt *Router) RegisterGroupRoutes(rg *gin.RouterGroup) {
	groupGroup := rg.Group("/group")
	{
		// ===== 群组查询 =====
		groupGroup.GET("/details", rt.handlers.Group.GetGroupDetails)             // 获取群组详情
		groupGroup.GET("/members", rt.handlers.Group.GetGroupMembers)             // 获取群成员列表
		groupGroup.GET("/events", rt.handlers.Group.GetGroupEvents)               // 获取群活动列表
		groupGroup.GET("/leaderboard", rt.handlers.Group.GetLeaderboard)          // 获取活跃度排行榜
		groupGroup.GET("/pendingRequests", rt.handlers.Group.GetPendingRequests)  // 获取待审批的入群申请
		groupGroup.GET("/myGroups", rt.handlers.Group.GetMyGroups)                // 获取我的群组
		groupGroup.GET("/discover", rt.handlers.Group.DiscoverGroups)             // 发现公开群组
		groupGroup.GET("/search", rt.handlers.Group.SearchGroups)                 // 按名称搜索群组
		groupGroup.GET("/avatarsMap", rt.handlers.Group.GetAvatarsMap)            // 获取群组成员头像映射
		groupGroup.GET("/cities", rt.handlers.Group.ListCities)                   // 获取城市列表
		groupGroup.GET("/categories", rt.handlers.Group.ListCategories)           // 获取分类列表

		// ===== 群组基本操作 =====
		groupGroup.POST("/create", rt.handlers.Group.CreateGroup)      // 创建群组
		groupGroup.POST("/update", rt.handlers.Group.UpdateGroup)      // 更新群组信息（群主）
		groupGroup.POST("/archive", rt.handlers.Group.ArchiveGroup)    // 归档群组（群主）
		groupGroup.POST("/uploadCover", rt.handlers.Group.UploadCover) // 上传群封面
		groupGroup.POST("/join", rt.handlers.Group.JoinGroup)          // 加入群组
		groupGroup.POST("/leave", rt.handlers.Group.LeaveGroup)        // 退出群组

		// ===== 入群审批 =====
		groupGroup.POST("/approveRequest", rt.handlers.Group.ApproveJoinRequest) // 通过入群申请
		groupGroup.POST("/rejectRequest", rt.handlers.Group.RejectJoinRequest)   // 拒绝入群申请

		// ===== 群成员管理 =====
		groupGroup.POST("/promoteMember", rt.handlers.Group.PromoteMember) // 提升为管理员
		groupGroup.POST("/demoteMember", rt.handlers.Group.DemoteMember)   // 降为普通成员
		groupGroup.POST("/muteMember", rt.handlers.Group.MuteMember)       // 禁言成员
		groupGroup.POST("/unmuteMember", rt.handlers.Group.UnmuteMember)   // 解除禁言
		groupGroup.POST("/removeMember", rt.handlers.Group.RemoveMember)   // 移除群成员

		// ===== 群活动 =====
		groupGroup.POST("/createEvent", rt.handlers.Group.CreateEvent)       // 创建群活动
		groupGroup.POST("/toggleBookmark", rt.handlers.Group.ToggleBookmark) // 收藏/取消收藏活动
	}
}
