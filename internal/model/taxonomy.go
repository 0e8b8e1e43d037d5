package model

import (
	"gorm.io/gorm"
)

// City 城市，用于按城市筛选群组
type City struct {
	gorm.Model
	Name   string `gorm:"column:name;type:varchar(50);not null;comment:城市名"`
	NameAr string `gorm:"column:name_ar;type:varchar(50);comment:城市名（阿拉伯语）"`
}

func (City) TableName() string {
	return "city"
}

// Category 群组分类
type Category struct {
	gorm.Model
	Name   string `gorm:"column:name;type:varchar(50);not null;comment:分类名"`
	NameAr string `gorm:"column:name_ar;type:varchar(50);comment:分类名（阿拉伯语）"`
	Icon   string `gorm:"column:icon;type:varchar(255);comment:分类图标"`
}

func (Category) TableName() string {
	return "category"
}

// GroupInterest 群组与分类的关联表，一个群组可属于多个分类
type GroupInterest struct {
	gorm.Model
	GroupUuid  string `gorm:"column:group_uuid;index:idx_group_category,unique;type:char(20);not null;comment:群组uuid"`
	CategoryId uint   `gorm:"column:category_id;index:idx_group_category,unique;not null;comment:分类id"`
}

func (GroupInterest) TableName() string {
	return "group_interest"
}
