// channel_broker.go
// 核心职责：单机模式下的消息流服务器实现
// 1. 维护在线用户连接 (Channel 模式)
// 2. 将群消息转发给所有在线且订阅了该群的成员
// 3. 管理用户登录/登出事件
// 4. 不依赖外部消息队列，适合小规模或开发环境
package stream

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"tajamu_group_server/internal/dao/mysql/repository"
	"tajamu_group_server/pkg/constants"
)

// StandaloneServer 单机模式的消息代理
type StandaloneServer struct {
	// Clients 在线客户端映射表，Key 为 UserUuid，Value 为 *UserConn
	// 使用 sync.Map 实现并发安全，无需手动加锁
	Clients sync.Map
	// Transmit 消息转发通道
	Transmit chan []byte
	// Login 客户端登录通道
	Login chan *UserConn
	// Logout 客户端登出通道
	Logout chan *UserConn

	groupMemberRepo repository.GroupMemberRepository
}

// NewStandaloneServer 创建单机消息代理实例
func NewStandaloneServer(groupMemberRepo repository.GroupMemberRepository) *StandaloneServer {
	return &StandaloneServer{
		Transmit:        make(chan []byte, constants.CHANNEL_SIZE),
		Login:           make(chan *UserConn, constants.CHANNEL_SIZE),
		Logout:          make(chan *UserConn, constants.CHANNEL_SIZE),
		groupMemberRepo: groupMemberRepo,
	}
}

// Start 启动主循环
// 处理登录、登出和消息转发三类事件
func (s *StandaloneServer) Start() {
	for {
		select {
		case client, ok := <-s.Login:
			if !ok {
				return
			}
			if client == nil {
				continue
			}
			s.Clients.Store(client.Uuid, client)
			zap.L().Debug(fmt.Sprintf("用户%s已连接消息流", client.Uuid))

		case client, ok := <-s.Logout:
			if !ok {
				return
			}
			if client == nil {
				continue
			}
			s.Clients.Delete(client.Uuid)
			zap.L().Info(fmt.Sprintf("用户%s断开消息流", client.Uuid))

		case data, ok := <-s.Transmit:
			if !ok {
				return
			}
			var delivery streamDelivery
			if err := json.Unmarshal(data, &delivery); err != nil {
				zap.L().Error(err.Error())
				continue
			}
			s.dispatch(delivery)
		}
	}
}

// dispatch 将消息投递给群组所有在线成员（包括发送者回显）
// 是否真正推送由各连接的订阅状态决定
func (s *StandaloneServer) dispatch(delivery streamDelivery) {
	members, err := s.groupMemberRepo.FindByGroupUuid(delivery.GroupId)
	if err != nil {
		zap.L().Error("查询群成员失败", zap.Error(err))
		return
	}
	for _, member := range members {
		if value, ok := s.Clients.Load(member.UserUuid); ok {
			client := value.(*UserConn)
			client.Deliver(delivery.GroupId, delivery)
		}
	}
}

// Publish 实现 MessageBroker 接口：发布消息到 Channel
func (s *StandaloneServer) Publish(ctx context.Context, msg []byte) error {
	s.Transmit <- msg
	return nil
}

// RegisterClient 实现 MessageBroker 接口：注册客户端
func (s *StandaloneServer) RegisterClient(client *UserConn) {
	s.Login <- client
}

// UnregisterClient 实现 MessageBroker 接口：注销客户端
func (s *StandaloneServer) UnregisterClient(client *UserConn) {
	s.Logout <- client
}

// GetClient 获取客户端
func (s *StandaloneServer) GetClient(userId string) *UserConn {
	value, ok := s.Clients.Load(userId)
	if !ok {
		return nil
	}
	return value.(*UserConn)
}

// Close 关闭服务通道
func (s *StandaloneServer) Close() {
	close(s.Login)
	close(s.Logout)
	close(s.Transmit)
}
