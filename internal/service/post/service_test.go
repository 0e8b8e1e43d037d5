package post

import (
	"testing"

	"gorm.io/gorm"

	"tajamu_group_server/internal/model"
	"tajamu_group_server/pkg/enum/post/post_type_enum"
)

func TestBuildPollRespond(t *testing.T) {
	post := model.Post{
		Uuid:    "P1",
		Type:    post_type_enum.POLL,
		Content: `{"question":"أين نلتقي؟","options":["المقهى","الحديقة"],"type":"poll"}`,
	}
	options := []model.PollOption{
		{Model: gorm.Model{ID: 1}, PostUuid: "P1", Text: "المقهى", Position: 0, VotesCount: 3},
		{Model: gorm.Model{ID: 2}, PostUuid: "P1", Text: "الحديقة", Position: 1, VotesCount: 1},
	}

	poll := buildPollRespond(post, options, 2)
	if poll.Question != "أين نلتقي؟" {
		t.Errorf("问题解析错误: %s", poll.Question)
	}
	if len(poll.Options) != 2 {
		t.Fatalf("期望 2 个选项，得到 %d", len(poll.Options))
	}
	if poll.Options[0].VotesCount != 3 || poll.Options[1].VotesCount != 1 {
		t.Errorf("票数错误: %+v", poll.Options)
	}
	if poll.UserVotedOptionId != 2 {
		t.Errorf("用户投票选项错误: %d", poll.UserVotedOptionId)
	}
}

func TestBuildPollRespondBrokenContent(t *testing.T) {
	post := model.Post{
		Uuid:    "P2",
		Type:    post_type_enum.POLL,
		Content: "not json",
	}
	options := []model.PollOption{
		{Model: gorm.Model{ID: 5}, PostUuid: "P2", Text: "نعم", Position: 0},
	}

	poll := buildPollRespond(post, options, 0)
	if poll.Question != "" {
		t.Errorf("解析失败时问题应为空: %s", poll.Question)
	}
	if len(poll.Options) != 1 {
		t.Fatalf("选项仍应返回，得到 %d", len(poll.Options))
	}
	if poll.UserVotedOptionId != 0 {
		t.Errorf("未投票时应为 0，得到 %d", poll.UserVotedOptionId)
	}
}
