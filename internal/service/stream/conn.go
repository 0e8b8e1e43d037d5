// conn.go
// 核心职责：WebSocket 连接生命周期管理
// 1. 建立 WebSocket 连接 (Upgrade)
// 2. 封装 UserConn 对象，管理读写协程 (Read/Write Loop)
// 3. 解析订阅/退订指令，维护本连接的群组订阅表
package stream

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"tajamu_group_server/pkg/constants"
)

// streamCommand 前端通过 WebSocket 发送的指令
type streamCommand struct {
	Action  string `json:"action"` // subscribe / unsubscribe
	GroupId string `json:"group_id"`
}

// UserConn 表示一个 WebSocket 客户端连接
type UserConn struct {
	Conn     *websocket.Conn
	Uuid     string
	SendBack chan []byte // 给前端

	server *StreamServer

	mu     sync.Mutex
	subs   map[string]*Subscription
	closed bool
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  2048,
	WriteBufferSize: 2048,
	// 允许任何来源的连接，跨域策略交给网关层
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// NewClientInit 建立 WebSocket 连接并启动读写协程
func NewClientInit(c *gin.Context, server *StreamServer, userId string) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		zap.L().Error(err.Error())
		return
	}
	client := &UserConn{
		Conn:     conn,
		Uuid:     userId,
		SendBack: make(chan []byte, constants.CHANNEL_SIZE),
		server:   server,
		subs:     make(map[string]*Subscription),
	}
	server.Broker.RegisterClient(client)
	go client.Read()
	go client.Write()
	zap.L().Info("ws连接成功", zap.String("user", userId))
}

// Read 读取 WebSocket 指令并处理订阅状态
func (c *UserConn) Read() {
	zap.L().Info("ws read goroutine start")
	defer c.teardown()
	for {
		_, jsonMessage, err := c.Conn.ReadMessage()
		if err != nil {
			zap.L().Info("ws read closed", zap.Error(err))
			return
		}
		var cmd streamCommand
		if err := json.Unmarshal(jsonMessage, &cmd); err != nil {
			zap.L().Error("unmarshal stream command error", zap.Error(err))
			continue
		}
		switch cmd.Action {
		case "subscribe":
			c.subscribe(cmd.GroupId)
		case "unsubscribe":
			c.unsubscribe(cmd.GroupId)
		}
	}
}

// Write 从 SendBack 通道读取消息并发送给 WebSocket
func (c *UserConn) Write() {
	zap.L().Info("ws write goroutine start")
	for message := range c.SendBack {
		if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
			zap.L().Error(err.Error())
			return
		}
	}
}

// subscribe 创建群组订阅并异步回填
// 重复订阅同一群组是幂等的
func (c *UserConn) subscribe(groupId string) {
	if groupId == "" {
		return
	}
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	if _, ok := c.subs[groupId]; ok {
		c.mu.Unlock()
		return
	}
	sub := newSubscription(groupId, c)
	c.subs[groupId] = sub
	c.mu.Unlock()

	// 回填不阻塞读协程，期间到达的实时消息由订阅积压
	go func() {
		backfill, err := c.server.service.Backfill(groupId, c.Uuid)
		if err != nil {
			zap.L().Error("backfill error",
				zap.String("group", groupId), zap.String("user", c.Uuid), zap.Error(err))
			c.unsubscribe(groupId)
			return
		}
		sub.Activate(backfill)
	}()
}

// unsubscribe 释放群组订阅
func (c *UserConn) unsubscribe(groupId string) {
	c.mu.Lock()
	sub, ok := c.subs[groupId]
	if ok {
		delete(c.subs, groupId)
	}
	c.mu.Unlock()
	if ok {
		sub.Stop()
	}
}

// Deliver 将群消息路由到对应订阅
func (c *UserConn) Deliver(groupId string, msg streamDelivery) {
	c.mu.Lock()
	sub, ok := c.subs[groupId]
	c.mu.Unlock()
	if ok {
		sub.Deliver(msg.Message)
	}
}

// send 写入发送通道，连接关闭后丢弃
func (c *UserConn) send(data []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	select {
	case c.SendBack <- data:
	default:
		zap.L().Warn("ws send channel full, drop message", zap.String("user", c.Uuid))
	}
}

// teardown 连接断开时释放所有订阅并注销客户端
func (c *UserConn) teardown() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	subs := make([]*Subscription, 0, len(c.subs))
	for _, sub := range c.subs {
		subs = append(subs, sub)
	}
	c.subs = make(map[string]*Subscription)
	close(c.SendBack)
	c.mu.Unlock()

	for _, sub := range subs {
		sub.Stop()
	}
	c.server.Broker.UnregisterClient(c)
	if err := c.Conn.Close(); err != nil {
		zap.L().Debug("close ws conn", zap.Error(err))
	}
}
