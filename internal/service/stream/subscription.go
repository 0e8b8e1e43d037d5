// subscription.go
// 核心职责：单个连接对单个群组的订阅状态机
// 状态流转：Unsubscribed -> Subscribing -> Active -> Unsubscribed
// 订阅期间维护有序消息日志，按消息 ID 去重，
// 保证回填与实时推送交叠时不会出现重复或乱序
package stream

import (
	"encoding/json"
	"sync"

	"go.uber.org/zap"

	"tajamu_group_server/internal/dto/respond"
)

// 订阅状态
const (
	StateUnsubscribed = int32(0) // 未订阅
	StateSubscribing  = int32(1) // 回填中
	StateActive       = int32(2) // 活跃，实时推送
)

// streamFrame 推送给前端的消息帧
type streamFrame struct {
	Type    string                 `json:"type"` // message
	GroupId string                 `json:"group_id"`
	Data    respond.MessageRespond `json:"data"`
}

// Subscription 一个连接对一个群组的订阅
type Subscription struct {
	GroupUuid string

	mu    sync.Mutex
	state int32
	// seen 已推送的消息 ID 集合，回填与实时推送交叠时按此去重
	seen map[string]struct{}
	// pending 回填期间到达的实时消息，激活时统一排到回填之后
	pending []respond.MessageRespond

	conn     *UserConn
	stopOnce sync.Once
}

// newSubscription 创建处于回填状态的订阅
func newSubscription(groupUuid string, conn *UserConn) *Subscription {
	return &Subscription{
		GroupUuid: groupUuid,
		state:     StateSubscribing,
		seen:      make(map[string]struct{}),
		pending:   make([]respond.MessageRespond, 0),
		conn:      conn,
	}
}

// State 返回当前状态
func (s *Subscription) State() int32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Activate 回填完成，先推送回填消息，再推送回填期间积压的实时消息
// 两段之间按消息 ID 去重，同一条消息只推送一次
func (s *Subscription) Activate(backfill []respond.MessageRespond) {
	s.mu.Lock()
	if s.state != StateSubscribing {
		s.mu.Unlock()
		return
	}
	ordered := make([]respond.MessageRespond, 0, len(backfill)+len(s.pending))
	for _, msg := range backfill {
		if _, ok := s.seen[msg.MessageId]; ok {
			continue
		}
		s.seen[msg.MessageId] = struct{}{}
		ordered = append(ordered, msg)
	}
	for _, msg := range s.pending {
		if _, ok := s.seen[msg.MessageId]; ok {
			continue
		}
		s.seen[msg.MessageId] = struct{}{}
		ordered = append(ordered, msg)
	}
	s.pending = nil
	s.state = StateActive
	s.mu.Unlock()

	for _, msg := range ordered {
		s.push(msg)
	}
}

// Deliver 投递一条实时消息
// 回填中先积压，激活后直接推送，未订阅状态丢弃
func (s *Subscription) Deliver(msg respond.MessageRespond) {
	s.mu.Lock()
	switch s.state {
	case StateSubscribing:
		s.pending = append(s.pending, msg)
		s.mu.Unlock()
		return
	case StateActive:
		if _, ok := s.seen[msg.MessageId]; ok {
			s.mu.Unlock()
			return
		}
		s.seen[msg.MessageId] = struct{}{}
		s.mu.Unlock()
		s.push(msg)
	default:
		s.mu.Unlock()
	}
}

// Stop 释放订阅，幂等
func (s *Subscription) Stop() {
	s.stopOnce.Do(func() {
		s.mu.Lock()
		s.state = StateUnsubscribed
		s.pending = nil
		s.mu.Unlock()
	})
}

// push 序列化并写入连接的发送通道
func (s *Subscription) push(msg respond.MessageRespond) {
	frame := streamFrame{
		Type:    "message",
		GroupId: s.GroupUuid,
		Data:    msg,
	}
	data, err := json.Marshal(frame)
	if err != nil {
		zap.L().Error("marshal stream frame error", zap.Error(err))
		return
	}
	s.conn.send(data)
}
