package model

import (
	"gorm.io/gorm"
)

// Notification 用户通知
type Notification struct {
	gorm.Model
	Uuid      string `gorm:"column:uuid;uniqueIndex;type:char(20);not null;comment:通知唯一id"`
	UserUuid  string `gorm:"column:user_uuid;index;type:char(20);not null;comment:接收者uuid"`
	Type      string `gorm:"column:type;type:varchar(30);comment:通知类型"`
	Title     string `gorm:"column:title;type:varchar(100);comment:通知标题"`
	Body      string `gorm:"column:body;type:varchar(500);comment:通知内容"`
	GroupUuid string `gorm:"column:group_uuid;type:char(20);comment:关联群组uuid"`
	IsRead    int8   `gorm:"column:is_read;index;default:0;comment:是否已读，0.未读，1.已读"`
}

func (Notification) TableName() string {
	return "notification"
}
