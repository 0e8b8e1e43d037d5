package join_request_status_enum

// 入群申请状态
const (
	PENDING  = int8(0) // 待处理
	APPROVED = int8(1) // 已通过
	REJECTED = int8(2) // 已拒绝
)
