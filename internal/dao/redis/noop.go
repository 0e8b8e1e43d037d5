package redis

import (
	"context"
	"time"

	"tajamu_group_server/pkg/errorx"
)

// noopCache 空实现
// Redis 未启用时返回此实现，所有读取都未命中，写入直接丢弃
// 查询缓存层退化为纯进程内缓存，调用方无需判空
type noopCache struct{}

func (noopCache) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	return nil
}

func (noopCache) Get(ctx context.Context, key string) (string, error) {
	return "", nil
}

func (noopCache) GetOrError(ctx context.Context, key string) (string, error) {
	return "", errorx.Newf(errorx.CodeNotFound, "cache disabled, key %s not found", key)
}

func (noopCache) Delete(ctx context.Context, key string) error                      { return nil }
func (noopCache) DeleteByPattern(ctx context.Context, pattern string) error         { return nil }
func (noopCache) DeleteByPatterns(ctx context.Context, patterns []string) error     { return nil }
func (noopCache) AddToSet(ctx context.Context, key string, m ...interface{}) error  { return nil }
func (noopCache) GetSetMembers(ctx context.Context, key string) ([]string, error)   { return nil, nil }
func (noopCache) RemoveFromSet(ctx context.Context, key string, m ...interface{}) error {
	return nil
}

// SubmitTask 同步执行任务，保持提交语义
func (noopCache) SubmitTask(action func()) {
	if action != nil {
		action()
	}
}

var _ AsyncCacheService = noopCache{}
