package model

import (
	"database/sql"

	"gorm.io/gorm"
)

// JoinRequest 入群申请
// 同一用户对同一群组只保留一条申请记录，被拒绝后再次申请会重置为待处理
type JoinRequest struct {
	gorm.Model
	GroupUuid  string       `gorm:"column:group_uuid;index:idx_group_applicant,unique;type:char(20);not null;comment:群组uuid"`
	UserUuid   string       `gorm:"column:user_uuid;index:idx_group_applicant,unique;type:char(20);not null;comment:申请人uuid"`
	Message    string       `gorm:"column:message;type:varchar(200);comment:申请附言"`
	Status     int8         `gorm:"column:status;index;default:0;comment:状态，0.待处理，1.已通过，2.已拒绝"`
	ReviewedBy string       `gorm:"column:reviewed_by;type:char(20);comment:审批人uuid"`
	ReviewedAt sql.NullTime `gorm:"column:reviewed_at;type:datetime;comment:审批时间"`
}

func (JoinRequest) TableName() string {
	return "join_request"
}
