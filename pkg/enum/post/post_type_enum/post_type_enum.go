package post_type_enum

// 帖子类型
const (
	TEXT  = "text"  // 纯文本帖子
	MEDIA = "media" // 带图片或视频的帖子
	POLL  = "poll"  // 投票帖子
)
