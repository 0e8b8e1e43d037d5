// Package handler 提供 HTTP 请求处理器
// 本文件处理用户注册登录相关的 API 请求
package handler

import (
	"github.com/gin-gonic/gin"

	"tajamu_group_server/internal/dto/request"
	"tajamu_group_server/internal/service"
)

// UserHandler 用户请求处理器
type UserHandler struct {
	userSvc service.UserService
}

// NewUserHandler 创建用户处理器实例
func NewUserHandler(userSvc service.UserService) *UserHandler {
	return &UserHandler{userSvc: userSvc}
}

// Register 用户注册
// POST /api/v1/auth/register
// 请求体: request.RegisterRequest
// 响应: respond.LoginRespond
func (h *UserHandler) Register(c *gin.Context) {
	var req request.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.userSvc.Register(req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// Login 密码登录
// POST /api/v1/auth/login
// 请求体: request.LoginRequest
// 响应: respond.LoginRespond
func (h *UserHandler) Login(c *gin.Context) {
	var req request.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.userSvc.Login(req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// RefreshToken 刷新 Access Token
// POST /api/v1/auth/refresh
// 请求体: request.RefreshTokenRequest
// 响应: 新的 access_token
func (h *UserHandler) RefreshToken(c *gin.Context) {
	var req request.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	accessToken, err := h.userSvc.RefreshToken(req.RefreshToken)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, gin.H{"access_token": accessToken})
}

// GetProfile 查看个人资料
// GET /api/v1/user/profile
// 响应: respond.ProfileRespond
func (h *UserHandler) GetProfile(c *gin.Context) {
	data, err := h.userSvc.GetProfile(c.GetString("user_id"))
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// UpdateProfile 更新个人资料
// POST /api/v1/user/updateProfile
// 请求体: request.UpdateProfileRequest
// 响应: nil
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	var req request.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	if err := h.userSvc.UpdateProfile(c.GetString("user_id"), req); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}
