package model

import (
	"database/sql"

	"gorm.io/gorm"
)

// Group 群组信息
type Group struct {
	gorm.Model
	Uuid             string       `gorm:"column:uuid;uniqueIndex;type:char(20);not null;comment:群组唯一id"`
	Name             string       `gorm:"column:name;type:varchar(50);not null;comment:群名称"`
	Description      string       `gorm:"column:description;type:varchar(500);comment:群简介"`
	DescriptionAr    string       `gorm:"column:description_ar;type:varchar(500);comment:群简介（阿拉伯语）"`
	CoverUrl         string       `gorm:"column:cover_url;type:varchar(255);comment:群封面"`
	CityId           uint         `gorm:"column:city_id;index;comment:所在城市id"`
	CreatedBy        string       `gorm:"column:created_by;index;type:char(20);not null;comment:群主uuid"`
	EventId          uint         `gorm:"column:event_id;comment:关联活动id，0表示无"`
	Visibility       string       `gorm:"column:visibility;type:varchar(10);default:public;comment:可见性，public/private"`
	RequiresApproval int8         `gorm:"column:requires_approval;default:0;comment:入群是否需要审批，0.否，1.是"`
	CurrentMembers   int          `gorm:"column:current_members;default:1;comment:当前成员数"`
	MaxMembers       int          `gorm:"column:max_members;default:0;comment:成员上限，0表示不限"`
	ArchivedAt       sql.NullTime `gorm:"column:archived_at;type:datetime;comment:归档时间，非空表示已归档"`
}

func (Group) TableName() string {
	return "group_info"
}
