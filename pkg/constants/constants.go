package constants

import "time"

const (
	CHANNEL_SIZE  = 100      // 通道大小
	FILE_MAX_SIZE = 52428800 // 附件最大大小（50MB）

	MESSAGE_BACKFILL_LIMIT = 100 // 订阅群组时回填的最近消息条数

	MY_GROUPS_CREATED_LIMIT = 6  // "我的群组"中自建群组最大展示数
	MY_GROUPS_JOINED_LIMIT  = 6  // "我的群组"中加入群组最大展示数
	DISCOVER_GROUPS_LIMIT   = 12 // 发现页群组最大展示数
	SEARCH_GROUPS_LIMIT     = 20 // 群组搜索最大返回数
	GROUP_POSTS_LIMIT       = 50 // 群组帖子流最大返回数
	LEADERBOARD_SIZE        = 10 // 群组活跃度排行榜名额
	AVATARS_SAMPLE_PER_GROUP = 3 // 群组头像预览采样人数

	// 占位文案（对外展示语言为阿拉伯语）
	PLACEHOLDER_UNKNOWN_USER = "مستخدم"     // 查不到用户资料时的占位名
	PLACEHOLDER_ATTACHMENT   = "📎 ملف مرفق" // 纯附件消息的占位内容
)

// 各查询缓存键的新鲜窗口
const (
	STALE_GROUP_DETAILS    = 5 * time.Minute
	STALE_GROUP_MEMBERS    = 3 * time.Minute
	STALE_GROUP_POSTS      = 2 * time.Minute
	STALE_GROUP_EVENTS     = 3 * time.Minute
	STALE_LEADERBOARD      = 5 * time.Minute
	STALE_PENDING_REQUESTS = 1 * time.Minute
	STALE_MY_GROUPS        = 5 * time.Minute
	STALE_DISCOVER         = 5 * time.Minute
	STALE_GROUP_SEARCH     = 2 * time.Minute
	STALE_AVATARS_MAP      = 10 * time.Minute
	STALE_NOTIFICATIONS    = 1 * time.Minute
)
