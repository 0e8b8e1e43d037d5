package event_status_enum

// 活动状态
// 待审核的活动仅群主和管理员可见
const (
	PENDING  = int8(0) // 待审核
	APPROVED = int8(1) // 已通过
)
