package post

import (
	"context"
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
	"tajamu_group_server/pkg/enum/post/post_type_enum"
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

// newTestService 打开内存数据库，预置一个含两个选项的投票帖
// 返回投票帖的两个选项 ID
func newTestService(t *testing.T) (*postService, *repository.Repositories, uint, uint) {
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
		&model.Post{},
		&model.PollOption{},
		&model.PollVote{},
	); err != nil {
		t.Fatalf("迁移表结构失败: %v", err)
	}
	repos := repository.NewRepositories(db)

	if err := repos.GroupMember.Create(&model.GroupMember{
		GroupUuid: "G1",
		UserUuid:  "U1",
		Role:      group_member_role_enum.MEMBER,
		JoinedAt:  time.Now(),
	}); err != nil {
		t.Fatalf("预置成员失败: %v", err)
	}
	if err := repos.Post.Create(&model.Post{
		Uuid:      "P1",
		GroupUuid: "G1",
		UserUuid:  "U1",
		Type:      post_type_enum.POLL,
		Content:   `{"question":"متى نلتقي؟","options":["السبت","الأحد"],"type":"poll"}`,
	}); err != nil {
		t.Fatalf("预置投票帖失败: %v", err)
	}
	options := []model.PollOption{
		{PostUuid: "P1", Text: "السبت", Position: 0},
		{PostUuid: "P1", Text: "الأحد", Position: 1},
	}
	if err := repos.Post.CreatePollOptions(options); err != nil {
		t.Fatalf("预置选项失败: %v", err)
	}
	saved, err := repos.Post.FindPollOptionsByPostUuids([]string{"P1"})
	if err != nil || len(saved) != 2 {
		t.Fatalf("读取选项失败: %v (%d 条)", err, len(saved))
	}

	return NewPostService(repos, querycache.New(nopCache{})), repos, saved[0].ID, saved[1].ID
}

// optionVotes 读取选项当前票数
func optionVotes(t *testing.T, repos *repository.Repositories, optionId uint) int {
	t.Helper()
	options, err := repos.Post.FindPollOptionsByPostUuids([]string{"P1"})
	if err != nil {
		t.Fatalf("读取选项失败: %v", err)
	}
	for _, option := range options {
		if option.ID == optionId {
			return option.VotesCount
		}
	}
	t.Fatalf("选项 %d 不存在", optionId)
	return 0
}

func TestVoteInPollCountsFirstVote(t *testing.T) {
	svc, repos, optA, optB := newTestService(t)

	if err := svc.VoteInPoll("U1", request.VotePollRequest{PostId: "P1", OptionId: optA}); err != nil {
		t.Fatalf("首次投票失败: %v", err)
	}
	if n := optionVotes(t, repos, optA); n != 1 {
		t.Errorf("选项 A 票数应为 1，得到 %d", n)
	}
	if n := optionVotes(t, repos, optB); n != 0 {
		t.Errorf("选项 B 票数应为 0，得到 %d", n)
	}
}

func TestVoteInPollSameOptionIsNoop(t *testing.T) {
	svc, repos, optA, _ := newTestService(t)

	if err := svc.VoteInPoll("U1", request.VotePollRequest{PostId: "P1", OptionId: optA}); err != nil {
		t.Fatalf("首次投票失败: %v", err)
	}
	// 重复投同一选项不改变计数
	if err := svc.VoteInPoll("U1", request.VotePollRequest{PostId: "P1", OptionId: optA}); err != nil {
		t.Fatalf("重复投票应幂等: %v", err)
	}
	if n := optionVotes(t, repos, optA); n != 1 {
		t.Errorf("重复投票后票数应仍为 1，得到 %d", n)
	}
}

func TestVoteInPollChangeMovesVote(t *testing.T) {
	svc, repos, optA, optB := newTestService(t)

	if err := svc.VoteInPoll("U1", request.VotePollRequest{PostId: "P1", OptionId: optA}); err != nil {
		t.Fatalf("首次投票失败: %v", err)
	}
	// 改票：旧选项减票，新选项加票，只保留一条投票记录
	if err := svc.VoteInPoll("U1", request.VotePollRequest{PostId: "P1", OptionId: optB}); err != nil {
		t.Fatalf("改票失败: %v", err)
	}
	if n := optionVotes(t, repos, optA); n != 0 {
		t.Errorf("改票后选项 A 票数应为 0，得到 %d", n)
	}
	if n := optionVotes(t, repos, optB); n != 1 {
		t.Errorf("改票后选项 B 票数应为 1，得到 %d", n)
	}
	vote, err := repos.Post.FindVote("P1", "U1")
	if err != nil {
		t.Fatalf("查询投票记录失败: %v", err)
	}
	if vote.OptionId != optB {
		t.Errorf("投票记录应指向选项 B，得到 %d", vote.OptionId)
	}

	// 再改回 A，确认可以反复改票
	if err := svc.VoteInPoll("U1", request.VotePollRequest{PostId: "P1", OptionId: optA}); err != nil {
		t.Fatalf("再次改票失败: %v", err)
	}
	if n := optionVotes(t, repos, optA); n != 1 {
		t.Errorf("改回后选项 A 票数应为 1，得到 %d", n)
	}
	if n := optionVotes(t, repos, optB); n != 0 {
		t.Errorf("改回后选项 B 票数应为 0，得到 %d", n)
	}
}

func TestVoteInPollRejectsForeignOption(t *testing.T) {
	svc, _, _, optB := newTestService(t)

	// 不属于该帖子的选项 ID 被拒绝
	if err := svc.VoteInPoll("U1", request.VotePollRequest{PostId: "P1", OptionId: optB + 100}); errorx.GetCode(err) != errorx.CodeInvalidParam {
		t.Fatalf("无效选项错误码 = %d, 期望 %d", errorx.GetCode(err), errorx.CodeInvalidParam)
	}
}
