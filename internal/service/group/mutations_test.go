package group

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"tajamu_group_server/internal/dao/mysql/repository"
	"tajamu_group_server/internal/dto/request"
	"tajamu_group_server/internal/infrastructure/querycache"
	"tajamu_group_server/internal/model"
	"tajamu_group_server/pkg/enum/group_member/group_member_role_enum"
	"tajamu_group_server/pkg/enum/join_request/join_request_status_enum"
	"tajamu_group_server/pkg/errorx"
)

// nopCache 测试用的二级缓存空实现
type nopCache struct{}

func (nopCache) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	return nil
}
func (nopCache) Get(ctx context.Context, key string) (string, error) { return "", nil }
func (nopCache) GetOrError(ctx context.Context, key string) (string, error) {
	return "", errorx.New(errorx.CodeNotFound, "not found")
}
func (nopCache) Delete(ctx context.Context, key string) error                          { return nil }
func (nopCache) DeleteByPattern(ctx context.Context, pattern string) error             { return nil }
func (nopCache) DeleteByPatterns(ctx context.Context, patterns []string) error         { return nil }
func (nopCache) AddToSet(ctx context.Context, key string, m ...interface{}) error      { return nil }
func (nopCache) GetSetMembers(ctx context.Context, key string) ([]string, error)       { return nil, nil }
func (nopCache) RemoveFromSet(ctx context.Context, key string, m ...interface{}) error { return nil }
func (nopCache) SubmitTask(action func()) {
	if action != nil {
		action()
	}
}

// newTestService 打开内存数据库并构建群组 Service
func newTestService(t *testing.T) (*groupService, *repository.Repositories) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("打开内存数据库失败: %v", err)
	}
	if err := db.AutoMigrate(
		&model.Group{},
		&model.GroupMember{},
		&model.JoinRequest{},
		&model.Event{},
		&model.Notification{},
		&model.UserProfile{},
	); err != nil {
		t.Fatalf("迁移表结构失败: %v", err)
	}
	repos := repository.NewRepositories(db)
	return NewGroupService(repos, querycache.New(nopCache{})), repos
}

// seedGroup 建一个群并安置群主成员
func seedGroup(t *testing.T, repos *repository.Repositories, requiresApproval int8) {
	t.Helper()
	if err := repos.Group.Create(&model.Group{
		Uuid:             "G1",
		Name:             "مجموعة الرياض",
		CreatedBy:        "OWNER",
		RequiresApproval: requiresApproval,
		CurrentMembers:   1,
	}); err != nil {
		t.Fatalf("创建群组失败: %v", err)
	}
	if err := repos.GroupMember.Create(&model.GroupMember{
		GroupUuid: "G1",
		UserUuid:  "OWNER",
		Role:      group_member_role_enum.OWNER,
		JoinedAt:  time.Now(),
	}); err != nil {
		t.Fatalf("创建群主成员失败: %v", err)
	}
}

func TestJoinGroupWithoutApprovalCreatesMembership(t *testing.T) {
	svc, repos := newTestService(t)
	seedGroup(t, repos, 0)

	joined, err := svc.JoinGroup("U1", request.JoinGroupRequest{GroupId: "G1"})
	if err != nil {
		t.Fatalf("免审批入群失败: %v", err)
	}
	if !joined {
		t.Fatal("免审批群组应直接入群")
	}

	member, err := repos.GroupMember.FindByGroupAndUser("G1", "U1")
	if err != nil {
		t.Fatalf("查询成员失败: %v", err)
	}
	if member.Role != group_member_role_enum.MEMBER {
		t.Errorf("新成员角色错误: %d", member.Role)
	}
	grp, _ := repos.Group.FindByUuid("G1")
	if grp.CurrentMembers != 2 {
		t.Errorf("成员数应为 2，得到 %d", grp.CurrentMembers)
	}
}

func TestJoinGroupPendingRequestRejectsDuplicate(t *testing.T) {
	svc, repos := newTestService(t)
	seedGroup(t, repos, 1)

	joined, err := svc.JoinGroup("U1", request.JoinGroupRequest{GroupId: "G1", Message: "أريد الانضمام"})
	if err != nil {
		t.Fatalf("首次申请失败: %v", err)
	}
	if joined {
		t.Fatal("审批群组不应直接入群")
	}

	// 已有待处理申请时重复申请被拒，不产生新记录
	_, err = svc.JoinGroup("U1", request.JoinGroupRequest{GroupId: "G1"})
	if errorx.GetCode(err) != errorx.CodeAlreadyPending {
		t.Fatalf("重复申请错误码 = %d, 期望 %d", errorx.GetCode(err), errorx.CodeAlreadyPending)
	}

	req, err := repos.JoinRequest.FindByGroupAndUser("G1", "U1")
	if err != nil {
		t.Fatalf("查询申请失败: %v", err)
	}
	if req.Status != join_request_status_enum.PENDING {
		t.Errorf("申请状态应为待处理，得到 %d", req.Status)
	}
	if req.Message != "أريد الانضمام" {
		t.Errorf("重复申请不应覆盖原附言，得到 %q", req.Message)
	}
}

func TestJoinGroupReactivatesRejectedRequest(t *testing.T) {
	svc, repos := newTestService(t)
	seedGroup(t, repos, 1)

	if err := repos.JoinRequest.Create(&model.JoinRequest{
		GroupUuid:  "G1",
		UserUuid:   "U1",
		Status:     join_request_status_enum.REJECTED,
		ReviewedBy: "OWNER",
		ReviewedAt: sql.NullTime{Time: time.Now(), Valid: true},
	}); err != nil {
		t.Fatalf("预置被拒申请失败: %v", err)
	}

	// 被拒后重新申请，原记录重置为待处理
	joined, err := svc.JoinGroup("U1", request.JoinGroupRequest{GroupId: "G1", Message: "مرة أخرى"})
	if err != nil {
		t.Fatalf("重新申请失败: %v", err)
	}
	if joined {
		t.Fatal("审批群组不应直接入群")
	}

	req, err := repos.JoinRequest.FindByGroupAndUser("G1", "U1")
	if err != nil {
		t.Fatalf("查询申请失败: %v", err)
	}
	if req.Status != join_request_status_enum.PENDING {
		t.Errorf("申请状态应重置为待处理，得到 %d", req.Status)
	}
	if req.ReviewedBy != "" || req.ReviewedAt.Valid {
		t.Errorf("审批信息应清空: reviewed_by=%q reviewed_at_valid=%v", req.ReviewedBy, req.ReviewedAt.Valid)
	}
	if req.Message != "مرة أخرى" {
		t.Errorf("附言应更新，得到 %q", req.Message)
	}
}

func TestApproveJoinRequestIdempotent(t *testing.T) {
	svc, repos := newTestService(t)
	seedGroup(t, repos, 1)

	if _, err := svc.JoinGroup("U1", request.JoinGroupRequest{GroupId: "G1"}); err != nil {
		t.Fatalf("申请入群失败: %v", err)
	}

	review := request.ReviewJoinRequestRequest{GroupId: "G1", UserId: "U1"}
	if err := svc.ApproveJoinRequest("OWNER", review); err != nil {
		t.Fatalf("首次通过失败: %v", err)
	}

	member, err := repos.GroupMember.FindByGroupAndUser("G1", "U1")
	if err != nil {
		t.Fatalf("通过后应存在成员记录: %v", err)
	}
	if member.Role != group_member_role_enum.MEMBER {
		t.Errorf("新成员角色错误: %d", member.Role)
	}
	grp, _ := repos.Group.FindByUuid("G1")
	if grp.CurrentMembers != 2 {
		t.Fatalf("成员数应为 2，得到 %d", grp.CurrentMembers)
	}

	// 重复通过直接成功，不重复计数
	if err := svc.ApproveJoinRequest("OWNER", review); err != nil {
		t.Fatalf("重复通过应幂等: %v", err)
	}
	grp, _ = repos.Group.FindByUuid("G1")
	if grp.CurrentMembers != 2 {
		t.Errorf("重复通过后成员数应仍为 2，得到 %d", grp.CurrentMembers)
	}
}

func TestApproveSyncsStatusWhenAlreadyMember(t *testing.T) {
	svc, repos := newTestService(t)
	seedGroup(t, repos, 1)

	// 申请还在待处理，但用户已经以其他途径入群
	if _, err := svc.JoinGroup("U1", request.JoinGroupRequest{GroupId: "G1"}); err != nil {
		t.Fatalf("申请入群失败: %v", err)
	}
	if err := repos.GroupMember.Create(&model.GroupMember{
		GroupUuid: "G1",
		UserUuid:  "U1",
		Role:      group_member_role_enum.MEMBER,
		JoinedAt:  time.Now(),
	}); err != nil {
		t.Fatalf("预置成员失败: %v", err)
	}

	if err := svc.ApproveJoinRequest("OWNER", request.ReviewJoinRequestRequest{GroupId: "G1", UserId: "U1"}); err != nil {
		t.Fatalf("通过失败: %v", err)
	}

	req, _ := repos.JoinRequest.FindByGroupAndUser("G1", "U1")
	if req.Status != join_request_status_enum.APPROVED {
		t.Errorf("申请状态应同步为已通过，得到 %d", req.Status)
	}
	// 已入群的不再计数
	grp, _ := repos.Group.FindByUuid("G1")
	if grp.CurrentMembers != 1 {
		t.Errorf("已入群用户不应重复计数，得到 %d", grp.CurrentMembers)
	}
}

func TestCreateEventStoresCover(t *testing.T) {
	svc, repos := newTestService(t)
	seedGroup(t, repos, 0)

	eventId, err := svc.CreateEvent("OWNER", request.CreateEventRequest{
		GroupId:  "G1",
		Title:    "لقاء نهاية الأسبوع",
		CoverUrl: "/static/covers/e1.jpg",
		StartAt:  time.Now().Add(24 * time.Hour).Format(time.RFC3339),
	})
	if err != nil {
		t.Fatalf("创建活动失败: %v", err)
	}

	event, err := repos.Event.FindByUuid(eventId)
	if err != nil {
		t.Fatalf("查询活动失败: %v", err)
	}
	if event.CoverUrl != "/static/covers/e1.jpg" {
		t.Errorf("活动封面未保存，得到 %q", event.CoverUrl)
	}
}
