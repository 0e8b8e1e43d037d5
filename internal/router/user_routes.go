// Package router 提供 HTTP 路由注册
// 本文件定义用户资料相关的路由
package router

import (
	"github.com/gin-gonic/gin"
)

// RegisterUserRoutes 注册用户资料相关路由（需要认证）
func (rt *Router) RegisterUserRoutes(rg *gin.RouterGroup) {
	userGroup := rg.Group("/user")
	{
		userGroup.GET("/profile", rt.handlers.User.GetProfile)           // 查看个人资料
		userGroup.POST("/updateProfile", rt.handlers.User.UpdateProfile) // 更新个人资料
	}
}
