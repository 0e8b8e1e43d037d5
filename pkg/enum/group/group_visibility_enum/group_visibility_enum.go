package group_visibility_enum

// 群组可见性
const (
	PUBLIC  = "public"  // 公开群组，可被发现和搜索
	PRIVATE = "private" // 私密群组，仅成员可见
)
