// Package handler 提供 HTTP 请求处理器
// 本文件处理帖子与投票相关的 API 请求
package handler

import (
	"github.com/gin-gonic/gin"

	"tajamu_group_server/internal/dto/request"
	"tajamu_group_server/internal/service"
	"tajamu_group_server/pkg/errorx"
)

// PostHandler 帖子请求处理器
type PostHandler struct {
	postSvc service.PostService
}

// NewPostHandler 创建帖子处理器实例
func NewPostHandler(postSvc service.PostService) *PostHandler {
	return &PostHandler{postSvc: postSvc}
}

// GetGroupPosts 获取群组帖子流
// GET /api/v1/post/list?groupId=xxx
// 响应: []respond.PostRespond
func (h *PostHandler) GetGroupPosts(c *gin.Context) {
	groupId := c.Query("groupId")
	if groupId == "" {
		HandleError(c, errorx.ErrInvalidParam)
		return
	}
	data, err := h.postSvc.GetGroupPosts(groupId, c.GetString("user_id"))
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// CreatePost 发布帖子（群主/管理员）
// POST /api/v1/post/create
// 请求体: request.CreatePostRequest
// 响应: post_id
func (h *PostHandler) CreatePost(c *gin.Context) {
	var req request.CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	postId, err := h.postSvc.CreatePost(c.GetString("user_id"), req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, gin.H{"post_id": postId})
}

// CreatePoll 发布投票帖（群主/管理员）
// POST /api/v1/post/createPoll
// 请求体: request.CreatePollRequest
// 响应: post_id
func (h *PostHandler) CreatePoll(c *gin.Context) {
	var req request.CreatePollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	postId, err := h.postSvc.CreatePoll(c.GetString("user_id"), req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, gin.H{"post_id": postId})
}

// ToggleLike 点赞/取消点赞
// POST /api/v1/post/toggleLike
// 请求体: request.LikePostRequest
// 响应: liked - 操作后的点赞状态
func (h *PostHandler) ToggleLike(c *gin.Context) {
	var req request.LikePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	liked, err := h.postSvc.ToggleLike(c.GetString("user_id"), req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, gin.H{"liked": liked})
}

// VoteInPoll 投票/改票
// POST /api/v1/post/vote
// 请求体: request.VotePollRequest
// 响应: nil
func (h *PostHandler) VoteInPoll(c *gin.Context) {
	var req request.VotePollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	if err := h.postSvc.VoteInPoll(c.GetString("user_id"), req); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}
