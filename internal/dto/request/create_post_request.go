package request

// CreatePostRequest 发布帖子请求
// 使用位置:
//   - internal/handler/post_handler.go: CreatePostHandler
//   - internal/service/post/service.go: CreatePost
type CreatePostRequest struct {
	GroupId  string `json:"group_id" binding:"required"`
	Content  string `json:"content" binding:"required_without=MediaUrl"`
	MediaUrl string `json:"media_url"`
}
