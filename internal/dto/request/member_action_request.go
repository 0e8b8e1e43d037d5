package request

// MemberActionRequest 群成员管理请求
// 设置管理员、取消管理员、禁言、解除禁言、移出群组共用此结构
// 使用位置:
//   - internal/handler/group_handler.go: PromoteMemberHandler 等
//   - internal/service/group/service.go: PromoteMember 等
type MemberActionRequest struct {
	GroupId string `json:"group_id" binding:"required"`
	UserId  string `json:"user_id" binding:"required"`
}
