// Package router 提供 HTTP 路由注册
// 本文件定义认证相关的路由
package router

import (
	"github.com/gin-gonic/gin"
)

// RegisterAuthRoutes 注册认证相关路由（无需认证）
// 包括注册、登录和 Token 刷新
func (rt *Router) RegisterAuthRoutes(rg *gin.RouterGroup) {
	rg.POST("/register", rt.handlers.User.Register) // 注册
	rg.POST("/login", rt.handlers.User.Login)       // 登录
	// POST /api/v1/auth/refresh - 使用 Refresh Token 换取新的 Access Token
	rg.POST("/refresh", rt.handlers.User.RefreshToken)
}
