// Package stream 实现群消息实时流
// broker.go
// 核心职责：定义消息代理接口
// 抽象消息发布和客户端管理，支持 Kafka 和 Channel 两种实现
package stream

import (
	"context"

	"tajamu_group_server/internal/dto/respond"
)

// streamDelivery 经由 Broker 传输的消息信封
// Channel 模式直接在进程内流转，Kafka 模式序列化后经消息队列流转
type streamDelivery struct {
	GroupId string                 `json:"group_id"`
	Message respond.MessageRespond `json:"message"`
}

// MessageBroker 定义消息代理接口
// 支持多种实现：KafkaBroker (分布式), StandaloneServer (单机)
type MessageBroker interface {
	// Publish 发布消息到消息队列/通道
	Publish(ctx context.Context, msg []byte) error
	// RegisterClient 注册客户端连接
	RegisterClient(client *UserConn)
	// UnregisterClient 注销客户端连接
	UnregisterClient(client *UserConn)
	// GetClient 获取指定用户的连接
	GetClient(userId string) *UserConn
	// Start 启动消息消费循环
	Start()
	// Close 关闭代理资源
	Close()
}
