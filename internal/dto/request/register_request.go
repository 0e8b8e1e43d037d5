package request

// RegisterRequest 用户注册请求
// 使用位置:
//   - internal/handler/user_handler.go: RegisterHandler
//   - internal/service/user/service.go: Register
type RegisterRequest struct {
	FullName string `json:"full_name" binding:"required,max=50"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	CityId   uint   `json:"city_id"`
}
