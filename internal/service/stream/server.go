// server.go
// 核心职责：消息流服务器聚合结构和依赖注入
// 封装 MessageBroker 与消息业务逻辑，提供统一的生命周期管理
package stream

import (
	"mime/multipart"

	"tajamu_group_server/internal/dao/mysql/repository"
	"tajamu_group_server/internal/dto/respond"
	"tajamu_group_server/internal/infrastructure/storage"
)

// StreamServer 消息流服务器聚合结构
type StreamServer struct {
	// Broker 消息代理，根据配置是 StandaloneServer 或 KafkaBroker
	Broker MessageBroker

	service *streamService
	mode    string
}

// StreamServerConfig 消息流服务器配置
type StreamServerConfig struct {
	Mode  string // "channel" 或 "kafka"
	Repos *repository.Repositories
	Store *storage.Store
}

// NewStreamServer 创建消息流服务器实例
// 根据配置选择 StandaloneServer 或 KafkaBroker
func NewStreamServer(cfg StreamServerConfig) *StreamServer {
	server := &StreamServer{mode: cfg.Mode}
	if cfg.Mode == "kafka" {
		server.Broker = NewKafkaBroker(cfg.Repos.GroupMember)
	} else {
		server.Broker = NewStandaloneServer(cfg.Repos.GroupMember)
	}
	server.service = newStreamService(cfg.Repos, cfg.Store, server.Broker)
	return server
}

// Start 启动消息代理主循环
func (s *StreamServer) Start() {
	s.Broker.Start()
}

// Close 关闭消息代理资源
func (s *StreamServer) Close() {
	s.Broker.Close()
}

// SendMessage 发送群消息并推送给订阅者
func (s *StreamServer) SendMessage(userId, groupId, content string, files []*multipart.FileHeader) (*respond.MessageRespond, error) {
	return s.service.SendMessage(userId, groupId, content, files)
}
