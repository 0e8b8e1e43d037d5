package request

// LikePostRequest 点赞/取消点赞请求
// 使用位置:
//   - internal/handler/post_handler.go: ToggleLikeHandler
//   - internal/service/post/service.go: ToggleLike
type LikePostRequest struct {
	PostId string `json:"post_id" binding:"required"`
}
