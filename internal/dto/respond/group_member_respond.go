package respond

// GroupMemberRespond 群成员响应
// 查不到用户资料时 FullName 使用占位文案
// 使用位置:
//   - internal/service/group/service.go: GetGroupMembers
type GroupMemberRespond struct {
	UserId    string `json:"user_id"`
	FullName  string `json:"full_name"`
	AvatarUrl string `json:"avatar_url"`
	Role      int8   `json:"role"`
	IsMuted   bool   `json:"is_muted"`
	JoinedAt  string `json:"joined_at"`
}
