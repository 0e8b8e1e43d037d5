package respond

// JoinRequestRespond 待处理入群申请响应
// 使用位置:
//   - internal/service/group/service.go: GetPendingRequests
type JoinRequestRespond struct {
	GroupId   string `json:"group_id"`
	UserId    string `json:"user_id"`
	FullName  string `json:"full_name"`
	AvatarUrl string `json:"avatar_url"`
	Message   string `json:"message"`
	CreatedAt string `json:"created_at"`
}
