// Package router 提供 HTTP 路由注册
// 本文件是路由注册的入口，聚合所有子模块的路由
package router

import (
	"github.com/gin-gonic/gin"

	"tajamu_group_server/internal/handler"
	"tajamu_group_server/internal/infrastructure/middleware"
)

// Router 路由管理器
// 持有 Handler 聚合实例，各子模块路由通过方法挂载
type Router struct {
	handlers *handler.Handlers
}

// NewRouter 创建路由管理器
func NewRouter(handlers *handler.Handlers) *Router {
	return &Router{handlers: handlers}
}

// RegisterRoutes 注册所有路由
// 在 https_server.Init() 中调用
// /api/v1/auth 下是公开接口，其余接口统一经过 JWT 认证
func (rt *Router) RegisterRoutes(engine *gin.Engine) {
	rt.RegisterAuthRoutes(engine.Group("/api/v1/auth"))

	api := engine.Group("/api/v1")
	api.Use(middleware.JWTAuth())
	{
		rt.RegisterUserRoutes(api)         // 用户路由
		rt.RegisterGroupRoutes(api)        // 群组路由
		rt.RegisterPostRoutes(api)         // 帖子路由
		rt.RegisterNotificationRoutes(api) // 通知路由
		rt.RegisterStreamRoutes(api)       // 消息流路由
	}
}
