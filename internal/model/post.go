package model

import (
	"gorm.io/gorm"
)

// Post 群组帖子
// 投票帖的 Content 存储 JSON：{"question": "...", "options": [...], "type": "poll"}
// 投票选项同时拆解到 poll_option 表，便于计票
type Post struct {
	gorm.Model
	Uuid      string `gorm:"column:uuid;uniqueIndex;type:char(20);not null;comment:帖子唯一id"`
	GroupUuid string `gorm:"column:group_uuid;index;type:char(20);not null;comment:所属群组uuid"`
	UserUuid  string `gorm:"column:user_uuid;index;type:char(20);not null;comment:作者uuid"`
	Type      string `gorm:"column:type;type:varchar(10);default:text;comment:类型，text/media/poll"`
	Content   string `gorm:"column:content;type:text;comment:帖子内容"`
	MediaUrl  string `gorm:"column:media_url;type:varchar(255);comment:媒体文件url"`

	// LikesCount 点赞数冗余计数，点赞/取消时同步增减
	LikesCount int `gorm:"column:likes_count;default:0;comment:点赞数"`
}

func (Post) TableName() string {
	return "post"
}

// PostLike 帖子点赞记录，(post_uuid, user_uuid) 唯一
type PostLike struct {
	gorm.Model
	PostUuid string `gorm:"column:post_uuid;index:idx_post_user,unique;type:char(20);not null;comment:帖子uuid"`
	UserUuid string `gorm:"column:user_uuid;index:idx_post_user,unique;type:char(20);not null;comment:用户uuid"`
}

func (PostLike) TableName() string {
	return "post_like"
}

// PollOption 投票帖的选项
type PollOption struct {
	gorm.Model
	PostUuid   string `gorm:"column:post_uuid;index;type:char(20);not null;comment:所属帖子uuid"`
	Text       string `gorm:"column:text;type:varchar(100);not null;comment:选项文本"`
	Position   int    `gorm:"column:position;not null;comment:选项顺序"`
	VotesCount int    `gorm:"column:votes_count;default:0;comment:票数冗余计数"`
}

func (PollOption) TableName() string {
	return "poll_option"
}

// PollVote 用户投票记录
// (post_uuid, user_uuid) 唯一，改票时先删除旧记录再插入新记录
type PollVote struct {
	gorm.Model
	PostUuid string `gorm:"column:post_uuid;index:idx_poll_user,unique;type:char(20);not null;comment:帖子uuid"`
	UserUuid string `gorm:"column:user_uuid;index:idx_poll_user,unique;type:char(20);not null;comment:用户uuid"`
	OptionId uint   `gorm:"column:option_id;index;not null;comment:所选选项id"`
}

func (PollVote) TableName() string {
	return "poll_vote"
}
