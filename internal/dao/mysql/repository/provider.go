// Package repository 提供 Repository 层聚合与构造
package repository

import (
	"gorm.io/gorm"
)

// Repositories 聚合所有 Repository 实例
// 作为依赖注入的入口，Service 层通过此结构访问数据层
type Repositories struct {
	db           *gorm.DB               // GORM 数据库实例
	User         UserRepository         // 用户 Repository
	Group        GroupRepository        // 群组 Repository
	GroupMember  GroupMemberRepository  // 群成员 Repository
	JoinRequest  JoinRequestRepository  // 入群申请 Repository
	Post         PostRepository         // 帖子 Repository
	Message      MessageRepository      // 消息 Repository
	Event        EventRepository        // 活动 Repository
	Notification NotificationRepository // 通知 Repository
	Taxonomy     TaxonomyRepository     // 城市与分类 Repository
}

// NewRepositories 创建所有 Repository 实例
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		db:           db,
		User:         NewUserRepository(db),
		Group:        NewGroupRepository(db),
		GroupMember:  NewGroupMemberRepository(db),
		JoinRequest:  NewJoinRequestRepository(db),
		Post:         NewPostRepository(db),
		Message:      NewMessageRepository(db),
		Event:        NewEventRepository(db),
		Notification: NewNotificationRepository(db),
		Taxonomy:     NewTaxonomyRepository(db),
	}
}

// Transaction 在数据库事务中执行函数
// 事务内的所有操作要么全部成功，要么全部回滚
// fn: 事务执行函数，接收事务内的 Repositories 实例
func (r *Repositories) Transaction(fn func(txRepos *Repositories) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		// 使用事务 db 创建新的 Repositories 实例
		return fn(NewRepositories(tx))
	})
}
