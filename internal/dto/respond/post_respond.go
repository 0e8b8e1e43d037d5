package respond

// PollOptionRespond 投票选项及实时票数
type PollOptionRespond struct {
	OptionId   uint   `json:"option_id"`
	Text       string `json:"text"`
	VotesCount int    `json:"votes_count"`
}

// PollRespond 投票帖的投票数据
type PollRespond struct {
	Question string              `json:"question"`
	Options  []PollOptionRespond `json:"options"`
	// UserVotedOptionId 当前用户所选的选项 id，0 表示未投票
	UserVotedOptionId uint `json:"user_voted_option_id"`
}

// PostRespond 帖子响应，包含当前用户的点赞与投票状态
// 使用位置:
//   - internal/service/post/service.go: GetGroupPosts
type PostRespond struct {
	PostId       string       `json:"post_id"`
	GroupId      string       `json:"group_id"`
	UserId       string       `json:"user_id"`
	AuthorName   string       `json:"author_name"`
	AuthorAvatar string       `json:"author_avatar"`
	Type         string       `json:"type"`
	Content      string       `json:"content"`
	MediaUrl     string       `json:"media_url,omitempty"`
	LikesCount   int          `json:"likes_count"`
	UserLiked    bool         `json:"user_liked"`
	Poll         *PollRespond `json:"poll,omitempty"`
	CreatedAt    string       `json:"created_at"`
}
