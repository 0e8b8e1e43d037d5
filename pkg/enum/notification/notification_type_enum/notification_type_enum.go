package notification_type_enum

// 通知类型
const (
	JOIN_APPROVED = "join_approved" // 入群申请通过
	JOIN_REJECTED = "join_rejected" // 入群申请被拒
	ROLE_CHANGED  = "role_changed"  // 角色变更
	NEW_EVENT     = "new_event"     // 群内新活动
)
