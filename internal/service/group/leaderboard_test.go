package group

import (
	"testing"

	"tajamu_group_server/internal/dao/mysql/repository"
)

func TestRankActivityOrdersByPostCount(t *testing.T) {
	posts := []repository.UserActivityCount{
		{UserUuid: "U2", Cnt: 1},
		{UserUuid: "U1", Cnt: 3},
		{UserUuid: "U3", Cnt: 4},
	}

	ranked := rankActivity(posts, 10)
	if len(ranked) != 3 {
		t.Fatalf("期望 3 条，得到 %d 条", len(ranked))
	}
	if ranked[0].UserUuid != "U3" || ranked[0].Score != 4 {
		t.Errorf("第一名错误: %+v", ranked[0])
	}
	if ranked[1].UserUuid != "U1" || ranked[1].Score != 3 {
		t.Errorf("第二名错误: %+v", ranked[1])
	}
	if ranked[2].UserUuid != "U2" || ranked[2].Score != 1 {
		t.Errorf("第三名错误: %+v", ranked[2])
	}
}

func TestRankActivityTieBreaksByUuid(t *testing.T) {
	posts := []repository.UserActivityCount{
		{UserUuid: "U9", Cnt: 2},
		{UserUuid: "U1", Cnt: 2},
		{UserUuid: "U5", Cnt: 2},
	}

	ranked := rankActivity(posts, 10)
	if len(ranked) != 3 {
		t.Fatalf("期望 3 条，得到 %d 条", len(ranked))
	}
	order := []string{"U1", "U5", "U9"}
	for i, want := range order {
		if ranked[i].UserUuid != want {
			t.Errorf("并列排序错误，位置 %d 期望 %s 得到 %s", i, want, ranked[i].UserUuid)
		}
	}
}

func TestRankActivityTruncatesToSize(t *testing.T) {
	posts := make([]repository.UserActivityCount, 0, 15)
	for i := 0; i < 15; i++ {
		posts = append(posts, repository.UserActivityCount{
			UserUuid: "U" + string(rune('A'+i)),
			Cnt:      i + 1,
		})
	}

	ranked := rankActivity(posts, 10)
	if len(ranked) != 10 {
		t.Fatalf("期望截断到 10 条，得到 %d 条", len(ranked))
	}
	if ranked[0].Score != 15 {
		t.Errorf("最高分应排第一，得到 %d", ranked[0].Score)
	}
}

func TestRankActivitySkipsZeroScores(t *testing.T) {
	posts := []repository.UserActivityCount{
		{UserUuid: "U1", Cnt: 0},
		{UserUuid: "U2", Cnt: 1},
	}

	ranked := rankActivity(posts, 10)
	if len(ranked) != 1 {
		t.Fatalf("零分用户不应上榜，得到 %d 条", len(ranked))
	}
	if ranked[0].UserUuid != "U2" {
		t.Errorf("期望 U2，得到 %s", ranked[0].UserUuid)
	}
}
