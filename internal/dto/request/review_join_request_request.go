package request

// ReviewJoinRequestRequest 审批入群申请请求，通过和拒绝共用
// 使用位置:
//   - internal/handler/group_handler.go: ApproveJoinRequestHandler, RejectJoinRequestHandler
//   - internal/service/group/service.go: ApproveJoinRequest, RejectJoinRequest
type ReviewJoinRequestRequest struct {
	GroupId string `json:"group_id" binding:"required"`
	UserId  string `json:"user_id" binding:"required"`
}
