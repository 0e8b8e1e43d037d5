package request

// CreatePollRequest 发布投票帖请求
// 使用位置:
//   - internal/handler/post_handler.go: CreatePollHandler
//   - internal/service/post/service.go: CreatePoll
type CreatePollRequest struct {
	GroupId  string   `json:"group_id" binding:"required"`
	Question string   `json:"question" binding:"required,max=100"`
	Options  []string `json:"options" binding:"required,min=2,max=10,dive,required,max=100"`
}
