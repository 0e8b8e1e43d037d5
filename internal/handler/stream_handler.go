// Package handler 提供 HTTP 请求处理器
// 本文件处理消息流相关的 API 请求
// 订阅走 WebSocket，发送消息走 HTTP（支持附件上传）
package handler

import (
	"github.com/gin-gonic/gin"

	"tajamu_group_server/internal/service/stream"
	"tajamu_group_server/pkg/errorx"
)

// StreamHandler 消息流请求处理器
type StreamHandler struct {
	server *stream.StreamServer
}

// NewStreamHandler 创建消息流处理器实例
func NewStreamHandler(server *stream.StreamServer) *StreamHandler {
	return &StreamHandler{server: server}
}

// Connect 建立 WebSocket 连接
// GET /api/v1/stream/ws
// 连接后通过 {"action":"subscribe","group_id":"G..."} 订阅群组消息
func (h *StreamHandler) Connect(c *gin.Context) {
	userId := c.GetString("user_id")
	if userId == "" {
		HandleError(c, errorx.ErrUnauthorized)
		return
	}
	stream.NewClientInit(c, h.server, userId)
}

// SendMessage 发送群消息
// POST /api/v1/stream/send (multipart/form-data)
// 表单字段: group_id, content, files（可多个）
// 响应: respond.MessageRespond
// 附件逐个保存，单个失败不影响消息本身
func (h *StreamHandler) SendMessage(c *gin.Context) {
	groupId := c.PostForm("group_id")
	if groupId == "" {
		HandleError(c, errorx.ErrInvalidParam)
		return
	}
	content := c.PostForm("content")

	form, err := c.MultipartForm()
	if err != nil {
		HandleParamError(c, err)
		return
	}
	files := form.File["files"]

	data, err := h.server.SendMessage(c.GetString("user_id"), groupId, content, files)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}
