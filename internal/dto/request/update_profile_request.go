package request

// UpdateProfileRequest 更新个人资料请求
// 使用位置:
//   - internal/handler/user_handler.go: UpdateProfile
//   - internal/service/user/service.go: UpdateProfile
type UpdateProfileRequest struct {
	FullName  string `json:"full_name" binding:"required,max=50"`
	AvatarUrl string `json:"avatar_url" binding:"max=255"`
	Bio       string `json:"bio" binding:"max=200"`
	CityId    uint   `json:"city_id"`
}
