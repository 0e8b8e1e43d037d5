package respond

// ProfileRespond 个人资料响应
// 使用位置:
//   - internal/service/user/service.go: GetProfile
type ProfileRespond struct {
	Uuid      string `json:"uuid"`
	FullName  string `json:"full_name"`
	Email     string `json:"email"`
	AvatarUrl string `json:"avatar_url"`
	Bio       string `json:"bio"`
	CityId    uint   `json:"city_id"`
}
