package respond

// LoginRespond 用户登录响应
// 使用位置:
//   - internal/service/user/service.go: Login, Register
type LoginRespond struct {
	Uuid         string `json:"uuid"`
	FullName     string `json:"full_name"`
	Email        string `json:"email"`
	AvatarUrl    string `json:"avatar_url"`
	CityId       uint   `json:"city_id"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}
