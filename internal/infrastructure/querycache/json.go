package querycache

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"tajamu_group_server/pkg/errorx"
)

// GetJSON 读取键对应的值并反序列化为 T，必要时通过 fetch 加载
// 缓存内统一存储 JSON 字符串，进程内与 Redis 两级共用同一份序列化结果
// 刷新失败但存在旧值时返回旧值并记录日志，调用方无需感知降级
func GetJSON[T any](c *Cache, ctx context.Context, key string, opts Options, fetch func(ctx context.Context) (T, error)) (T, error) {
	var zero T
	payload, err := c.Get(ctx, key, opts, func(ctx context.Context) (string, error) {
		v, fetchErr := fetch(ctx)
		if fetchErr != nil {
			return "", fetchErr
		}
		b, mErr := json.Marshal(v)
		if mErr != nil {
			return "", errorx.Wrap(mErr, errorx.CodeServerBusy, "序列化缓存值")
		}
		return string(b), nil
	})
	if err != nil {
		if payload == "" {
			return zero, err
		}
		zap.L().Warn("query refresh failed, serving prior value", zap.String("key", key), zap.Error(err))
	}
	if payload == "" {
		return zero, nil
	}
	var out T
	if uErr := json.Unmarshal([]byte(payload), &out); uErr != nil {
		return zero, errorx.Wrap(uErr, errorx.CodeServerBusy, "反序列化缓存值")
	}
	return out, nil
}
