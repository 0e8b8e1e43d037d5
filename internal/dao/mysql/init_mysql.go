// Package mysql 提供数据访问层的初始化和全局数据库实例管理
// 负责建立 MySQL 连接、自动迁移表结构、初始化 Repository 层
package mysql

import (
	"fmt"

	"tajamu_group_server/internal/config"
	"tajamu_group_server/internal/dao/mysql/repository"
	"tajamu_group_server/internal/model"

	"go.uber.org/zap"
	mysqldriver "gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// Init 初始化数据库连接并返回 Repository 层实例
// 执行步骤：
//  1. 从配置读取 MySQL 连接信息
//  2. 构建 DSN 连接字符串
//  3. 使用 GORM 建立数据库连接
//  4. 执行 AutoMigrate 自动迁移表结构
//  5. 创建并返回 Repository 实例
func Init() *repository.Repositories {
	conf := config.GetConfig()

	// 格式：user:password@tcp(host:port)/database?params
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		conf.MysqlConfig.User,
		conf.MysqlConfig.Password,
		conf.MysqlConfig.Host,
		conf.MysqlConfig.Port,
		conf.MysqlConfig.DatabaseName,
	)

	db, err := gorm.Open(mysqldriver.Open(dsn), &gorm.Config{})
	if err != nil {
		zap.L().Fatal(err.Error())
	}

	// AutoMigrate 自动迁移表结构
	// 如果表不存在则创建，如果字段变更则更新结构
	// 注意：不会删除已有字段或数据
	err = db.AutoMigrate(
		&model.UserProfile{},       // 用户资料表
		&model.City{},              // 城市表
		&model.Category{},          // 分类表
		&model.GroupInterest{},     // 群组分类关联表
		&model.Group{},             // 群组信息表
		&model.GroupMember{},       // 群组成员表
		&model.JoinRequest{},       // 入群申请表
		&model.Post{},              // 帖子表
		&model.PostLike{},          // 帖子点赞表
		&model.PollOption{},        // 投票选项表
		&model.PollVote{},          // 投票记录表
		&model.Message{},           // 消息表
		&model.MessageAttachment{}, // 消息附件表
		&model.Event{},             // 活动表
		&model.EventBookmark{},     // 活动收藏表
		&model.Notification{},      // 通知表
	)
	if err != nil {
		zap.L().Fatal(err.Error())
	}

	return repository.NewRepositories(db)
}
