package stream

import (
	"encoding/json"
	"testing"

	"tajamu_group_server/internal/dto/respond"
	"tajamu_group_server/pkg/constants"
)

func newTestConn() *UserConn {
	return &UserConn{
		Uuid:     "U1",
		SendBack: make(chan []byte, constants.CHANNEL_SIZE),
		subs:     make(map[string]*Subscription),
	}
}

func msg(id, content string) respond.MessageRespond {
	return respond.MessageRespond{MessageId: id, GroupId: "G1", Content: content}
}

func drainFrames(t *testing.T, conn *UserConn) []streamFrame {
	t.Helper()
	frames := make([]streamFrame, 0)
	for {
		select {
		case data := <-conn.SendBack:
			var frame streamFrame
			if err := json.Unmarshal(data, &frame); err != nil {
				t.Fatalf("反序列化失败: %v", err)
			}
			frames = append(frames, frame)
		default:
			return frames
		}
	}
}

func TestSubscriptionBuffersDuringBackfill(t *testing.T) {
	conn := newTestConn()
	sub := newSubscription("G1", conn)

	// 回填期间到达的实时消息先积压
	sub.Deliver(msg("3", "realtime"))
	if frames := drainFrames(t, conn); len(frames) != 0 {
		t.Fatalf("回填完成前不应推送，得到 %d 帧", len(frames))
	}

	sub.Activate([]respond.MessageRespond{msg("1", "old"), msg("2", "older")})

	frames := drainFrames(t, conn)
	if len(frames) != 3 {
		t.Fatalf("期望 3 帧，得到 %d", len(frames))
	}
	order := []string{"1", "2", "3"}
	for i, want := range order {
		if frames[i].Data.MessageId != want {
			t.Errorf("顺序错误，位置 %d 期望 %s 得到 %s", i, want, frames[i].Data.MessageId)
		}
	}
}

func TestSubscriptionDedupsBackfillOverlap(t *testing.T) {
	conn := newTestConn()
	sub := newSubscription("G1", conn)

	// 同一条消息既出现在回填中又在回填期间被实时推送
	sub.Deliver(msg("2", "dup"))
	sub.Activate([]respond.MessageRespond{msg("1", "a"), msg("2", "dup")})

	frames := drainFrames(t, conn)
	if len(frames) != 2 {
		t.Fatalf("重复消息应只推送一次，得到 %d 帧", len(frames))
	}
}

func TestSubscriptionActiveDedup(t *testing.T) {
	conn := newTestConn()
	sub := newSubscription("G1", conn)
	sub.Activate(nil)

	sub.Deliver(msg("1", "a"))
	sub.Deliver(msg("1", "a"))
	sub.Deliver(msg("2", "b"))

	frames := drainFrames(t, conn)
	if len(frames) != 2 {
		t.Fatalf("期望 2 帧，得到 %d", len(frames))
	}
}

func TestSubscriptionStopIdempotent(t *testing.T) {
	conn := newTestConn()
	sub := newSubscription("G1", conn)
	sub.Activate(nil)

	sub.Stop()
	sub.Stop()
	if sub.State() != StateUnsubscribed {
		t.Fatalf("停止后状态应为未订阅，得到 %d", sub.State())
	}

	sub.Deliver(msg("1", "late"))
	if frames := drainFrames(t, conn); len(frames) != 0 {
		t.Fatalf("停止后不应推送，得到 %d 帧", len(frames))
	}
}

func TestSubscriptionActivateAfterStopIsNoop(t *testing.T) {
	conn := newTestConn()
	sub := newSubscription("G1", conn)

	sub.Stop()
	sub.Activate([]respond.MessageRespond{msg("1", "a")})

	if sub.State() != StateUnsubscribed {
		t.Fatalf("停止后激活应无效，状态 %d", sub.State())
	}
	if frames := drainFrames(t, conn); len(frames) != 0 {
		t.Fatalf("停止后不应推送，得到 %d 帧", len(frames))
	}
}
