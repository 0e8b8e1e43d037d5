package request

// VotePollRequest 投票请求
// 使用位置:
//   - internal/handler/post_handler.go: VotePollHandler
//   - internal/service/post/service.go: VoteInPoll
type VotePollRequest struct {
	PostId   string `json:"post_id" binding:"required"`
	OptionId uint   `json:"option_id" binding:"required"`
}
