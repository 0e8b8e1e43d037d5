// Package user 实现用户业务逻辑
package user

import (
	"fmt"

	"go.uber.org/zap"

	"tajamu_group_server/internal/dao/mysql/repository"
	"tajamu_group_server/internal/dto/request"
	"tajamu_group_server/internal/dto/respond"
	"tajamu_group_server/internal/model"
	"tajamu_group_server/pkg/errorx"
	"tajamu_group_server/pkg/util/jwt"
	"tajamu_group_server/pkg/util/random"
)

// userService 用户业务逻辑实现
type userService struct {
	repos *repository.Repositories
}

// NewUserService 构造函数，注入依赖
func NewUserService(repos *repository.Repositories) *userService {
	return &userService{repos: repos}
}

// Register 用户注册
// 邮箱唯一，密码在模型的 BeforeSave 钩子中加密
func (u *userService) Register(req request.RegisterRequest) (*respond.LoginRespond, error) {
	// 检查邮箱是否已注册
	if _, err := u.repos.User.FindByEmail(req.Email); err == nil {
		return nil, errorx.New(errorx.CodeUserExist, "该邮箱已注册")
	} else if !errorx.IsNotFound(err) {
		zap.L().Error("check email error", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}

	profile := model.UserProfile{
		Uuid:        fmt.Sprintf("U%s", random.GetNowAndLenRandomString(11)),
		FullName:    req.FullName,
		Email:       req.Email,
		CityId:      req.CityId,
		RawPassword: req.Password,
	}
	if err := u.repos.User.Create(&profile); err != nil {
		zap.L().Error("create user error", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}

	return u.buildLoginRespond(&profile)
}

// Login 密码登录
func (u *userService) Login(req request.LoginRequest) (*respond.LoginRespond, error) {
	profile, err := u.repos.User.FindByEmail(req.Email)
	if err != nil {
		if errorx.IsNotFound(err) {
			return nil, errorx.New(errorx.CodeUserNotExist, "用户不存在")
		}
		zap.L().Error("find user error", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}

	if !profile.CheckPassword(req.Password) {
		return nil, errorx.New(errorx.CodeInvalidPwd, "密码错误")
	}

	return u.buildLoginRespond(profile)
}

// RefreshToken 用 Refresh Token 换取新的 Access Token
func (u *userService) RefreshToken(refreshToken string) (string, error) {
	claims, err := jwt.ParseToken(refreshToken)
	if err != nil || claims.Subject != "refresh_token" {
		return "", errorx.ErrUnauthorized
	}

	accessToken, err := jwt.GenerateAccessToken(claims.UserID)
	if err != nil {
		zap.L().Error("generate access token error", zap.Error(err))
		return "", errorx.ErrServerBusy
	}
	return accessToken, nil
}

// GetProfile 查看个人资料
func (u *userService) GetProfile(userId string) (*respond.ProfileRespond, error) {
	profile, err := u.repos.User.FindByUuid(userId)
	if err != nil {
		if errorx.IsNotFound(err) {
			return nil, errorx.New(errorx.CodeUserNotExist, "用户不存在")
		}
		zap.L().Error("find user error", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	return &respond.ProfileRespond{
		Uuid:      profile.Uuid,
		FullName:  profile.FullName,
		Email:     profile.Email,
		AvatarUrl: profile.AvatarUrl,
		Bio:       profile.Bio,
		CityId:    profile.CityId,
	}, nil
}

// UpdateProfile 更新个人资料
// 邮箱和密码不在此处修改
func (u *userService) UpdateProfile(userId string, req request.UpdateProfileRequest) error {
	profile, err := u.repos.User.FindByUuid(userId)
	if err != nil {
		if errorx.IsNotFound(err) {
			return errorx.New(errorx.CodeUserNotExist, "用户不存在")
		}
		zap.L().Error("find user error", zap.Error(err))
		return errorx.ErrServerBusy
	}

	profile.FullName = req.FullName
	profile.AvatarUrl = req.AvatarUrl
	profile.Bio = req.Bio
	profile.CityId = req.CityId
	if err := u.repos.User.Update(profile); err != nil {
		zap.L().Error("update user error", zap.Error(err))
		return errorx.ErrServerBusy
	}
	return nil
}

// buildLoginRespond 签发双 Token 并组装登录响应
func (u *userService) buildLoginRespond(profile *model.UserProfile) (*respond.LoginRespond, error) {
	accessToken, err := jwt.GenerateAccessToken(profile.Uuid)
	if err != nil {
		zap.L().Error("generate access token error", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	refreshToken, _, err := jwt.GenerateRefreshToken(profile.Uuid)
	if err != nil {
		zap.L().Error("generate refresh token error", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}

	return &respond.LoginRespond{
		Uuid:         profile.Uuid,
		FullName:     profile.FullName,
		Email:        profile.Email,
		AvatarUrl:    profile.AvatarUrl,
		CityId:       profile.CityId,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}
