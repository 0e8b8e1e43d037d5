package request

// JoinGroupRequest 加入群组请求
// 使用位置:
//   - internal/handler/group_handler.go: JoinGroupHandler
//   - internal/service/group/service.go: JoinGroup
type JoinGroupRequest struct {
	GroupId string `json:"group_id" binding:"required"`
	Message string `json:"message" binding:"max=200"`
}
