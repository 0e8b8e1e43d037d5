// Package router 提供 HTTP 路由注册
// 本文件定义帖子相关的路由
package router

import (
	"github.com/gin-gonic/gin"
)

// RegisterPostRoutes 注册帖子相关路由（需要认证）
func (rt *Router) RegisterPostRoutes(rg *gin.RouterGroup) {
	postGroup := rg.Group("/post")
	{
		postGroup.GET("/list", rt.handlers.Post.GetGroupPosts)      // 获取群帖子列表
		postGroup.POST("/create", rt.handlers.Post.CreatePost)      // 发布帖子
		postGroup.POST("/createPoll", rt.handlers.Post.CreatePoll)  // 发布投票帖
		postGroup.POST("/toggleLike", rt.handlers.Post.ToggleLike)  // 点赞/取消点赞
		postGroup.POST("/vote", rt.handlers.Post.VoteInPoll)        // 投票
	}
}
