// Package router 提供 HTTP 路由注册
// 本文件定义消息流相关的路由
package router

import (
	"github.com/gin-gonic/gin"
)

// RegisterStreamRoutes 注册消息流相关路由（需要认证）
func (rt *Router) RegisterStreamRoutes(rg *gin.RouterGroup) {
	streamGroup := rg.Group("/stream")
	{
		// WebSocket 连接入口
		// 连接后通过 subscribe/unsubscribe 指令管理群组订阅
		streamGroup.GET("/ws", rt.handlers.Stream.Connect)

		// 发送群消息（multipart，支持附件）
		streamGroup.POST("/send", rt.handlers.Stream.SendMessage)
	}
}
