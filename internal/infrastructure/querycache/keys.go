package querycache

import "strconv"

// 查询缓存键构造函数
// 键格式统一为 <kind>:<参数>，带用户视角的查询把用户 UUID 编入键中，
// 保证不同用户的 user_liked、is_bookmarked 等字段互不串用
// 按前缀失效时使用对应的 Prefix 函数

// KeyGroupDetails 群组详情（含当前用户的成员关系）
func KeyGroupDetails(groupUuid, userUuid string) string {
	return "group_details:" + groupUuid + ":" + userUuid
}

// KeyGroupMembers 群组成员列表
func KeyGroupMembers(groupUuid string) string {
	return "group_members:" + groupUuid
}

// KeyGroupPosts 群组帖子流（含当前用户的点赞与投票状态）
func KeyGroupPosts(groupUuid, userUuid string) string {
	return "group_posts:" + groupUuid + ":" + userUuid
}

// KeyGroupEvents 群组活动列表（含当前用户的收藏状态）
func KeyGroupEvents(groupUuid, userUuid string) string {
	return "group_events:" + groupUuid + ":" + userUuid
}

// KeyLeaderboard 群组活跃度排行榜
func KeyLeaderboard(groupUuid string) string {
	return "leaderboard:" + groupUuid
}

// KeyPendingRequests 群组待处理入群申请
func KeyPendingRequests(groupUuid string) string {
	return "pending_requests:" + groupUuid
}

// KeyMyGroups 用户的"我的群组"
func KeyMyGroups(userUuid string) string {
	return "my_groups:" + userUuid
}

// KeyDiscover 用户的发现页群组
func KeyDiscover(userUuid string, cityId uint) string {
	return "discover:" + userUuid + ":" + strconv.FormatUint(uint64(cityId), 10)
}

// KeyGroupSearch 群组搜索结果
func KeyGroupSearch(keyword string) string {
	return "group_search:" + keyword
}

// KeyAvatarsMap 群组头像预览采样
func KeyAvatarsMap() string {
	return "avatars_map"
}

// KeyNotifications 用户通知列表
func KeyNotifications(userUuid string) string {
	return "notifications:" + userUuid
}

// ==================== 失效前缀 ====================

// PrefixGroupDetails 某群组所有用户视角的详情
func PrefixGroupDetails(groupUuid string) string {
	return "group_details:" + groupUuid + ":"
}

// PrefixGroupPosts 某群组所有用户视角的帖子流
func PrefixGroupPosts(groupUuid string) string {
	return "group_posts:" + groupUuid + ":"
}

// PrefixGroupEvents 某群组所有用户视角的活动列表
func PrefixGroupEvents(groupUuid string) string {
	return "group_events:" + groupUuid + ":"
}

// PrefixDiscover 某用户的所有发现页查询
func PrefixDiscover(userUuid string) string {
	return "discover:" + userUuid + ":"
}
