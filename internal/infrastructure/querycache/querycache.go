// Package querycache 提供带新鲜窗口的两级查询缓存
//
// 第一级是进程内缓存（xsync.MapOf），第二级是 Redis（可选）。
// 每个键有独立的新鲜窗口：
//   - 窗口内的读取直接命中缓存，不触发任何请求
//   - 窗口外的读取先返回旧值，同时在后台发起一次刷新（stale-while-revalidate）
//   - 显式失效后的下一次读取阻塞等待全新数据
//
// 同一键的并发未命中只会触发一次数据源请求，其余调用方等待同一结果。
// 刷新失败时保留上一次成功的值。
package querycache

import (
	"context"
	"time"

	"github.com/puzpuzpuz/xsync/v3"
	"go.uber.org/zap"

	myredis "tajamu_group_server/internal/dao/redis"
)

// FetchFunc 数据源请求函数，返回序列化后的值
type FetchFunc func(ctx context.Context) (string, error)

// Options 单次查询的缓存选项
type Options struct {
	// StaleTime 新鲜窗口，窗口内的命中不触发任何请求
	StaleTime time.Duration
	// Enabled 为 false 时查询被抑制：只返回已有缓存值，绝不发起请求
	Enabled bool
}

// entry 单个键的缓存条目
// mu 保护全部字段；inflight 非 nil 表示有请求正在进行
type entry struct {
	mu        chan struct{} // 容量 1，作为互斥锁使用
	value     string
	hasValue  bool
	fetchedAt time.Time
	invalid   bool          // 显式失效标记，置位后旧值不再直接返回
	gen       uint64        // 失效代数，每次显式失效递增
	lastErr   error         // 最近一次请求的错误，成功后清除
	inflight  chan struct{} // 请求进行中关闭前非 nil，等待方阻塞于此
}

func newEntry() *entry {
	e := &entry{mu: make(chan struct{}, 1)}
	return e
}

func (e *entry) lock()   { e.mu <- struct{}{} }
func (e *entry) unlock() { <-e.mu }

// Cache 两级查询缓存
type Cache struct {
	entries *xsync.MapOf[string, *entry]
	remote  myredis.AsyncCacheService
}

// New 创建查询缓存
// remote 为 Redis 缓存服务，Redis 未启用时传入空实现即可
func New(remote myredis.AsyncCacheService) *Cache {
	return &Cache{
		entries: xsync.NewMapOf[string, *entry](),
		remote:  remote,
	}
}

// Get 读取键对应的值，必要时通过 fetch 从数据源加载
//
// 行为依次为：
//  1. Enabled=false：只返回已有缓存值（可能为空），不发起请求
//  2. 新鲜命中：直接返回
//  3. 过期命中：返回旧值，后台发起一次去重的刷新
//  4. 未命中或已失效：阻塞等待一次去重的请求，失败时返回旧值和错误
func (c *Cache) Get(ctx context.Context, key string, opts Options, fetch FetchFunc) (string, error) {
	if !opts.Enabled {
		if e, ok := c.entries.Load(key); ok {
			e.lock()
			v := e.value
			e.unlock()
			return v, nil
		}
		return "", nil
	}

	e, _ := c.entries.LoadOrCompute(key, newEntry)

	e.lock()
	if e.hasValue && !e.invalid {
		age := time.Since(e.fetchedAt)
		v := e.value
		if age <= opts.StaleTime {
			// 新鲜命中
			e.unlock()
			return v, nil
		}
		// 过期命中：先答旧值，后台刷新（已有请求进行中则不再发起）
		if e.inflight == nil {
			e.inflight = make(chan struct{})
			go c.doFetch(context.Background(), key, e, opts, fetch)
		}
		e.unlock()
		return v, nil
	}

	// 未命中或已失效：需要阻塞取新值
	if e.inflight == nil {
		e.inflight = make(chan struct{})
		e.unlock()
		c.doFetch(ctx, key, e, opts, fetch)
	} else {
		// 其他调用方已发起请求，等待同一结果
		ch := e.inflight
		e.unlock()
		select {
		case <-ch:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}

	e.lock()
	v, err := e.value, e.lastErr
	e.unlock()
	if err != nil {
		// 保留旧值：调用方可以选择降级展示
		return v, err
	}
	return v, nil
}

// doFetch 执行一次数据源请求并更新条目，结束时唤醒所有等待方
// 先尝试 Redis 二级缓存，未命中再调用 fetch；Redis 键的 TTL 等于新鲜
// 窗口，因此 Redis 命中的值一定在窗口内
func (c *Cache) doFetch(ctx context.Context, key string, e *entry, opts Options, fetch FetchFunc) {
	var value string
	var err error

	e.lock()
	invalid := e.invalid
	startGen := e.gen
	e.unlock()

	// 显式失效后必须回源，不读二级缓存
	if !invalid {
		if cached, cacheErr := c.remote.Get(ctx, "qc:"+key); cacheErr == nil && cached != "" {
			value = cached
			c.finish(e, startGen, value, nil)
			return
		}
	}

	value, err = fetch(ctx)
	if err != nil {
		zap.L().Warn("querycache fetch failed", zap.String("key", key), zap.Error(err))
		c.finish(e, startGen, "", err)
		return
	}

	fresh := c.finish(e, startGen, value, nil)

	// 异步写入二级缓存，请求期间被失效的结果不写
	if fresh && opts.StaleTime > 0 {
		v := value
		c.remote.SubmitTask(func() {
			if setErr := c.remote.Set(context.Background(), "qc:"+key, v, opts.StaleTime); setErr != nil {
				zap.L().Warn("querycache redis set failed", zap.String("key", key), zap.Error(setErr))
			}
		})
	}
}

// finish 写入请求结果并关闭 inflight 通道，返回结果是否仍然新鲜
// 失败时不覆盖已有值，只记录错误
// 请求进行期间条目被显式失效时（代数已变化），结果只作为降级旧值保留，
// invalid 标记不清除，下一次读取仍会回源
func (c *Cache) finish(e *entry, startGen uint64, value string, err error) bool {
	e.lock()
	fresh := e.gen == startGen
	if err == nil {
		e.value = value
		e.hasValue = true
		e.fetchedAt = time.Now()
		e.lastErr = nil
		if fresh {
			e.invalid = false
		}
	} else {
		e.lastErr = err
	}
	if e.inflight != nil {
		close(e.inflight)
		e.inflight = nil
	}
	e.unlock()
	return fresh
}

// Invalidate 显式失效一组键
// 失效后的下一次读取不会返回旧值，而是阻塞等待全新数据
func (c *Cache) Invalidate(ctx context.Context, keys ...string) {
	for _, key := range keys {
		if e, ok := c.entries.Load(key); ok {
			e.lock()
			e.invalid = true
			e.gen++
			e.unlock()
		}
	}
	// 二级缓存异步删除
	remoteKeys := make([]string, 0, len(keys))
	for _, key := range keys {
		remoteKeys = append(remoteKeys, "qc:"+key)
	}
	c.remote.SubmitTask(func() {
		for _, rk := range remoteKeys {
			if err := c.remote.Delete(context.Background(), rk); err != nil {
				zap.L().Warn("querycache redis delete failed", zap.String("key", rk), zap.Error(err))
			}
		}
	})
}

// InvalidatePrefix 显式失效所有以 prefix 开头的键
// 用于按群组、按用户批量失效相关查询
func (c *Cache) InvalidatePrefix(ctx context.Context, prefix string) {
	c.entries.Range(func(key string, e *entry) bool {
		if len(key) >= len(prefix) && key[:len(prefix)] == prefix {
			e.lock()
			e.invalid = true
			e.gen++
			e.unlock()
		}
		return true
	})
	p := prefix
	c.remote.SubmitTask(func() {
		if err := c.remote.DeleteByPattern(context.Background(), "qc:"+p+"*"); err != nil {
			zap.L().Warn("querycache redis delete pattern failed", zap.String("prefix", p), zap.Error(err))
		}
	})
}
