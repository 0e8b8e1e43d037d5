package group_member_role_enum

// 群组成员角色
const (
	MEMBER    = int8(1) // 普通成员
	MODERATOR = int8(2) // 管理员
	OWNER     = int8(3) // 群主
)
