// Package model 定义数据库实体模型
// 本文件定义用户资料模型，包含用户基本资料和认证信息
package model

import (
	"golang.org/x/crypto/bcrypt" // 密码哈希库
	"gorm.io/gorm"
)

// UserProfile 用户资料模型
// 对应数据库 user_profile 表
type UserProfile struct {
	gorm.Model // 内嵌 GORM 模型，包含 ID、CreatedAt、UpdatedAt、DeletedAt

	// Uuid 用户唯一标识
	// 格式：U + 13位时间戳随机字符串，如 "U2401041234567abc"
	Uuid string `gorm:"column:uuid;uniqueIndex;type:char(20);comment:用户唯一id"`

	// FullName 用户姓名（展示名）
	FullName string `gorm:"column:full_name;type:varchar(50);not null;comment:姓名"`

	// Email 邮箱地址，用于登录验证
	Email string `gorm:"column:email;uniqueIndex;type:varchar(100);not null;comment:邮箱"`

	// AvatarUrl 用户头像 URL
	AvatarUrl string `gorm:"column:avatar_url;type:varchar(255);comment:头像"`

	// Bio 个人简介
	Bio string `gorm:"column:bio;type:varchar(200);comment:个人简介"`

	// CityId 所在城市
	CityId uint `gorm:"column:city_id;index;comment:所在城市id"`

	// Password 密码（已哈希）
	// 存储 bcrypt 哈希后的密码，不存储明文
	Password string `gorm:"column:password;type:varchar(100);not null;comment:密码"`

	// RawPassword 明文密码（不存入数据库）
	// 用于接收前端传来的明文密码，在 BeforeSave 中加密
	RawPassword string `gorm:"-" json:"-"`
}

// TableName 指定表名
func (UserProfile) TableName() string {
	return "user_profile"
}

// BeforeSave GORM Hook：在创建和更新前自动调用
// 将 RawPassword 明文密码加密后存入 Password 字段
func (u *UserProfile) BeforeSave(tx *gorm.DB) (err error) {
	if u.RawPassword != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(u.RawPassword), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		u.Password = string(hash)
		u.RawPassword = "" // 清空明文，防止泄露
	}
	return nil
}

// CheckPassword 校验密码是否正确，用于登录验证
func (u *UserProfile) CheckPassword(plaintext string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(plaintext))
	return err == nil
}
