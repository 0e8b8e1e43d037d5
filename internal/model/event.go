package model

import (
	"time"

	"gorm.io/gorm"
)

// Event 群组活动
type Event struct {
	gorm.Model
	Uuid        string    `gorm:"column:uuid;uniqueIndex;type:char(20);not null;comment:活动唯一id"`
	GroupUuid   string    `gorm:"column:group_uuid;index;type:char(20);not null;comment:所属群组uuid"`
	Title       string    `gorm:"column:title;type:varchar(100);not null;comment:活动标题"`
	Description string    `gorm:"column:description;type:varchar(500);comment:活动描述"`
	Location    string    `gorm:"column:location;type:varchar(200);comment:活动地点"`
	CoverUrl    string    `gorm:"column:cover_url;type:varchar(255);comment:活动封面"`
	StartAt     time.Time `gorm:"column:start_at;type:datetime;not null;comment:开始时间"`
	EndAt       time.Time `gorm:"column:end_at;type:datetime;comment:结束时间"`
	Status      int8      `gorm:"column:status;type:tinyint;default:1;comment:状态 0待审核 1已通过"`
	CreatedBy   string    `gorm:"column:created_by;type:char(20);not null;comment:创建者uuid"`
}

func (Event) TableName() string {
	return "event"
}

// EventBookmark 活动收藏记录，(event_uuid, user_uuid) 唯一
type EventBookmark struct {
	gorm.Model
	EventUuid string `gorm:"column:event_uuid;index:idx_event_user,unique;type:char(20);not null;comment:活动uuid"`
	UserUuid  string `gorm:"column:user_uuid;index:idx_event_user,unique;type:char(20);not null;comment:用户uuid"`
}

func (EventBookmark) TableName() string {
	return "event_bookmark"
}
