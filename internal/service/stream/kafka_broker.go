// kafka_broker.go
// 核心职责：分布式模式下的消息流服务器实现
// 1. 封装 Kafka 底层连接 (Writer/Reader)
// 2. 作为消费者从消息队列读取全量群消息事件
// 3. 消息路由：判断接收者是否连接在本机，若在则经订阅推送
package stream

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	myconfig "tajamu_group_server/internal/config"
	"tajamu_group_server/internal/dao/mysql/repository"
	"tajamu_group_server/pkg/constants"
)

// KafkaBroker 基于 Kafka 的消息代理
type KafkaBroker struct {
	// Clients 本机在线客户端映射表，Key 为 UserUuid
	Clients sync.Map
	// Login 客户端登录通道
	Login chan *UserConn
	// Logout 客户端登出通道
	Logout chan *UserConn

	Producer *kafka.Writer
	Consumer *kafka.Reader

	groupMemberRepo repository.GroupMemberRepository

	cancel context.CancelFunc
}

// NewKafkaBroker 创建 Kafka 消息代理实例并初始化连接
func NewKafkaBroker(groupMemberRepo repository.GroupMemberRepository) *KafkaBroker {
	kafkaConfig := myconfig.GetConfig().KafkaConfig
	return &KafkaBroker{
		Login:  make(chan *UserConn, constants.CHANNEL_SIZE),
		Logout: make(chan *UserConn, constants.CHANNEL_SIZE),
		Producer: &kafka.Writer{
			Addr:                   kafka.TCP(kafkaConfig.HostPort),
			Topic:                  kafkaConfig.MessageTopic,
			Balancer:               &kafka.Hash{},
			WriteTimeout:           kafkaConfig.Timeout,
			RequiredAcks:           kafka.RequireNone,
			AllowAutoTopicCreation: false,
		},
		Consumer: kafka.NewReader(kafka.ReaderConfig{
			Brokers:        []string{kafkaConfig.HostPort},
			Topic:          kafkaConfig.MessageTopic,
			CommitInterval: kafkaConfig.Timeout,
			GroupID:        "group_stream",
			StartOffset:    kafka.LastOffset,
		}),
		groupMemberRepo: groupMemberRepo,
	}
}

// Start 启动消费循环和客户端管理循环
func (k *KafkaBroker) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	k.cancel = cancel

	// 消费协程：从 Kafka 读取消息并分发
	go func() {
		defer func() {
			if r := recover(); r != nil {
				zap.L().Error(fmt.Sprintf("kafka consumer panic: %v", r))
			}
		}()
		for {
			kafkaMessage, err := k.Consumer.ReadMessage(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				zap.L().Error(err.Error())
				continue
			}
			var delivery streamDelivery
			if err := json.Unmarshal(kafkaMessage.Value, &delivery); err != nil {
				zap.L().Error(err.Error())
				continue
			}
			k.dispatch(delivery)
		}
	}()

	// 主循环：维护本机 Clients 映射表
	for {
		select {
		case client, ok := <-k.Login:
			if !ok {
				return
			}
			if client == nil {
				continue
			}
			k.Clients.Store(client.Uuid, client)
			zap.L().Debug(fmt.Sprintf("用户%s已连接消息流", client.Uuid))

		case client, ok := <-k.Logout:
			if !ok {
				return
			}
			if client == nil {
				continue
			}
			k.Clients.Delete(client.Uuid)
			zap.L().Info(fmt.Sprintf("用户%s断开消息流", client.Uuid))
		}
	}
}

// dispatch 将消息投递给本机在线的群成员
func (k *KafkaBroker) dispatch(delivery streamDelivery) {
	members, err := k.groupMemberRepo.FindByGroupUuid(delivery.GroupId)
	if err != nil {
		zap.L().Error("查询群成员失败", zap.Error(err))
		return
	}
	for _, member := range members {
		if value, ok := k.Clients.Load(member.UserUuid); ok {
			client := value.(*UserConn)
			client.Deliver(delivery.GroupId, delivery)
		}
	}
}

// Publish 实现 MessageBroker 接口：发布消息到 Kafka
// 按群组 ID 作为 Key，同一群组的消息落在同一分区保证有序
func (k *KafkaBroker) Publish(ctx context.Context, msg []byte) error {
	var delivery streamDelivery
	key := []byte("stream")
	if err := json.Unmarshal(msg, &delivery); err == nil && delivery.GroupId != "" {
		key = []byte(delivery.GroupId)
	}
	return k.Producer.WriteMessages(ctx, kafka.Message{
		Key:   key,
		Value: msg,
	})
}

// RegisterClient 实现 MessageBroker 接口：注册客户端
func (k *KafkaBroker) RegisterClient(client *UserConn) {
	k.Login <- client
}

// UnregisterClient 实现 MessageBroker 接口：注销客户端
func (k *KafkaBroker) UnregisterClient(client *UserConn) {
	k.Logout <- client
}

// GetClient 获取客户端
func (k *KafkaBroker) GetClient(userId string) *UserConn {
	value, ok := k.Clients.Load(userId)
	if !ok {
		return nil
	}
	return value.(*UserConn)
}

// Close 关闭 Kafka 资源和管理通道
func (k *KafkaBroker) Close() {
	if k.cancel != nil {
		k.cancel()
	}
	if err := k.Producer.Close(); err != nil {
		zap.L().Error(err.Error())
	}
	if err := k.Consumer.Close(); err != nil {
		zap.L().Error(err.Error())
	}
	close(k.Login)
	close(k.Logout)
}
