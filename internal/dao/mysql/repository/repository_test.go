package repository

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"tajamu_group_server/internal/model"
	"tajamu_group_server/pkg/enum/group_member/group_member_role_enum"
)

// newTestRepos 打开内存数据库并迁移测试所需的表
func newTestRepos(t *testing.T) *Repositories {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("打开内存数据库失败: %v", err)
	}
	if err := db.AutoMigrate(
		&model.GroupMember{},
		&model.PostLike{},
		&model.EventBookmark{},
		&model.Message{},
	); err != nil {
		t.Fatalf("迁移表结构失败: %v", err)
	}
	return NewRepositories(db)
}

func TestGroupMemberRejoinAfterLeave(t *testing.T) {
	repos := newTestRepos(t)

	member := &model.GroupMember{
		GroupUuid: "G1",
		UserUuid:  "U1",
		Role:      group_member_role_enum.MEMBER,
		JoinedAt:  time.Now(),
	}
	if err := repos.GroupMember.Create(member); err != nil {
		t.Fatalf("首次加入失败: %v", err)
	}
	if err := repos.GroupMember.Delete("G1", "U1"); err != nil {
		t.Fatalf("退出群组失败: %v", err)
	}

	// 退出后 (group_uuid, user_uuid) 唯一索引不能被旧行占用
	again := &model.GroupMember{
		GroupUuid: "G1",
		UserUuid:  "U1",
		Role:      group_member_role_enum.MEMBER,
		JoinedAt:  time.Now(),
	}
	if err := repos.GroupMember.Create(again); err != nil {
		t.Fatalf("退出后重新加入失败: %v", err)
	}

	found, err := repos.GroupMember.FindByGroupAndUser("G1", "U1")
	if err != nil {
		t.Fatalf("查询重新加入的成员失败: %v", err)
	}
	if found.Role != group_member_role_enum.MEMBER {
		t.Errorf("重新加入后角色错误: %d", found.Role)
	}
}

func TestPostLikeToggleCycle(t *testing.T) {
	repos := newTestRepos(t)

	if err := repos.Post.CreateLike(&model.PostLike{PostUuid: "P1", UserUuid: "U1"}); err != nil {
		t.Fatalf("首次点赞失败: %v", err)
	}
	if err := repos.Post.DeleteLike("P1", "U1"); err != nil {
		t.Fatalf("取消点赞失败: %v", err)
	}
	if err := repos.Post.CreateLike(&model.PostLike{PostUuid: "P1", UserUuid: "U1"}); err != nil {
		t.Fatalf("取消后再次点赞失败: %v", err)
	}
}

func TestEventBookmarkToggleCycle(t *testing.T) {
	repos := newTestRepos(t)

	if err := repos.Event.CreateBookmark(&model.EventBookmark{EventUuid: "E1", UserUuid: "U1"}); err != nil {
		t.Fatalf("首次收藏失败: %v", err)
	}
	if err := repos.Event.DeleteBookmark("E1", "U1"); err != nil {
		t.Fatalf("取消收藏失败: %v", err)
	}
	if err := repos.Event.CreateBookmark(&model.EventBookmark{EventUuid: "E1", UserUuid: "U1"}); err != nil {
		t.Fatalf("取消后再次收藏失败: %v", err)
	}
}

func TestFindRecentByGroupHonorsJoinBoundary(t *testing.T) {
	repos := newTestRepos(t)

	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	joinedAt := base.Add(10 * time.Minute)
	times := []time.Time{
		base,                        // 入群前，不可见
		joinedAt,                    // 正好在入群时刻，可见
		joinedAt.Add(time.Minute),   // 入群后
		joinedAt.Add(2 * time.Minute),
	}
	for i, ts := range times {
		msg := &model.Message{
			Uuid:      "M" + string(rune('1'+i)),
			GroupUuid: "G1",
			SendId:    "U1",
			Content:   "msg",
		}
		msg.CreatedAt = ts
		if err := repos.Message.Create(msg); err != nil {
			t.Fatalf("预置消息失败: %v", err)
		}
	}

	messages, err := repos.Message.FindRecentByGroup("G1", joinedAt, 100)
	if err != nil {
		t.Fatalf("查询群消息失败: %v", err)
	}
	if len(messages) != 3 {
		t.Fatalf("入群前的消息不可见，期望 3 条，得到 %d 条", len(messages))
	}
	// 结果按时间正序
	order := []string{"M2", "M3", "M4"}
	for i, want := range order {
		if messages[i].Uuid != want {
			t.Errorf("顺序错误，位置 %d 期望 %s 得到 %s", i, want, messages[i].Uuid)
		}
	}
}

func TestFindRecentByGroupKeepsNewestWhenOverLimit(t *testing.T) {
	repos := newTestRepos(t)

	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		msg := &model.Message{
			Uuid:      "M" + string(rune('1'+i)),
			GroupUuid: "G1",
			SendId:    "U1",
			Content:   "msg",
		}
		msg.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		if err := repos.Message.Create(msg); err != nil {
			t.Fatalf("预置消息失败: %v", err)
		}
	}

	// 超过上限时保留最新的，仍按时间正序返回
	messages, err := repos.Message.FindRecentByGroup("G1", base, 3)
	if err != nil {
		t.Fatalf("查询群消息失败: %v", err)
	}
	if len(messages) != 3 {
		t.Fatalf("期望 3 条，得到 %d 条", len(messages))
	}
	order := []string{"M3", "M4", "M5"}
	for i, want := range order {
		if messages[i].Uuid != want {
			t.Errorf("顺序错误，位置 %d 期望 %s 得到 %s", i, want, messages[i].Uuid)
		}
	}
}
