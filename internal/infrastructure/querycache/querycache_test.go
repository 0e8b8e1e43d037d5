package querycache

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

// fakeRemote 进程内的二级缓存假实现，SubmitTask 同步执行
type fakeRemote struct {
	mu   sync.Mutex
	data map[string]string
}

func newFakeRemote() *fakeRemote {
	return &fakeRemote{data: make(map[string]string)}
}

func (f *fakeRemote) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data[key] = value
	return nil
}

func (f *fakeRemote) Get(ctx context.Context, key string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.data[key], nil
}

func (f *fakeRemote) GetOrError(ctx context.Context, key string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if v, ok := f.data[key]; ok {
		return v, nil
	}
	return "", errors.New("not found")
}

func (f *fakeRemote) Delete(ctx context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.data, key)
	return nil
}

func (f *fakeRemote) DeleteByPattern(ctx context.Context, pattern string) error {
	prefix := strings.TrimSuffix(pattern, "*")
	f.mu.Lock()
	defer f.mu.Unlock()
	for k := range f.data {
		if strings.HasPrefix(k, prefix) {
			delete(f.data, k)
		}
	}
	return nil
}

func (f *fakeRemote) DeleteByPatterns(ctx context.Context, patterns []string) error {
	for _, p := range patterns {
		if err := f.DeleteByPattern(ctx, p); err != nil {
			return err
		}
	}
	return nil
}

func (f *fakeRemote) AddToSet(ctx context.Context, key string, members ...interface{}) error {
	return nil
}

func (f *fakeRemote) GetSetMembers(ctx context.Context, key string) ([]string, error) {
	return nil, nil
}

func (f *fakeRemote) RemoveFromSet(ctx context.Context, key string, members ...interface{}) error {
	return nil
}

func (f *fakeRemote) SubmitTask(action func()) {
	action()
}

func opts(stale time.Duration) Options {
	return Options{StaleTime: stale, Enabled: true}
}

func TestConcurrentGetFetchesOnce(t *testing.T) {
	c := New(newFakeRemote())
	var calls int32
	fetch := func(ctx context.Context) (string, error) {
		atomic.AddInt32(&calls, 1)
		time.Sleep(20 * time.Millisecond) // 拉长请求窗口，确保并发调用重叠
		return "v1", nil
	}

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, err := c.Get(context.Background(), "k", opts(time.Minute), fetch)
			if err != nil {
				t.Errorf("Get: %v", err)
			}
			if v != "v1" {
				t.Errorf("Get = %q, want v1", v)
			}
		}()
	}
	wg.Wait()

	if n := atomic.LoadInt32(&calls); n != 1 {
		t.Fatalf("fetch called %d times, want 1", n)
	}
}

func TestFreshHitDoesNotFetchAgain(t *testing.T) {
	c := New(newFakeRemote())
	var calls int32
	fetch := func(ctx context.Context) (string, error) {
		atomic.AddInt32(&calls, 1)
		return "v1", nil
	}

	for i := 0; i < 5; i++ {
		if _, err := c.Get(context.Background(), "k", opts(time.Minute), fetch); err != nil {
			t.Fatal(err)
		}
	}
	if n := atomic.LoadInt32(&calls); n != 1 {
		t.Fatalf("fetch called %d times, want 1", n)
	}
}

func TestStaleServesOldValueAndRefreshesOnce(t *testing.T) {
	remote := newFakeRemote()
	c := New(remote)
	var calls int32
	fetch := func(ctx context.Context) (string, error) {
		n := atomic.AddInt32(&calls, 1)
		if n == 1 {
			return "old", nil
		}
		return "new", nil
	}

	o := opts(10 * time.Millisecond)
	if v, _ := c.Get(context.Background(), "k", o, fetch); v != "old" {
		t.Fatalf("initial Get = %q, want old", v)
	}

	// 等待超过新鲜窗口，同时清掉二级缓存模拟 TTL 过期
	time.Sleep(30 * time.Millisecond)
	remote.Delete(context.Background(), "qc:k")

	// 过期命中：立即返回旧值
	if v, _ := c.Get(context.Background(), "k", o, fetch); v != "old" {
		t.Fatalf("stale Get = %q, want old", v)
	}

	// 等待后台刷新完成
	deadline := time.Now().Add(time.Second)
	for atomic.LoadInt32(&calls) < 2 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if n := atomic.LoadInt32(&calls); n != 2 {
		t.Fatalf("fetch called %d times after stale read, want 2", n)
	}

	if v, _ := c.Get(context.Background(), "k", o, fetch); v != "new" {
		t.Fatalf("Get after refresh = %q, want new", v)
	}
}

func TestFetchErrorKeepsPriorValue(t *testing.T) {
	remote := newFakeRemote()
	c := New(remote)
	var calls int32
	fetchErr := errors.New("db down")
	fetch := func(ctx context.Context) (string, error) {
		if atomic.AddInt32(&calls, 1) == 1 {
			return "good", nil
		}
		return "", fetchErr
	}

	o := opts(time.Minute)
	if v, _ := c.Get(context.Background(), "k", o, fetch); v != "good" {
		t.Fatalf("initial Get = %q, want good", v)
	}

	// 失效后强制回源，回源失败
	c.Invalidate(context.Background(), "k")
	v, err := c.Get(context.Background(), "k", o, fetch)
	if !errors.Is(err, fetchErr) {
		t.Fatalf("Get error = %v, want %v", err, fetchErr)
	}
	if v != "good" {
		t.Fatalf("Get after failed refresh = %q, want prior value good", v)
	}
}

func TestInvalidateForcesBlockingRefetch(t *testing.T) {
	remote := newFakeRemote()
	c := New(remote)
	var calls int32
	fetch := func(ctx context.Context) (string, error) {
		if atomic.AddInt32(&calls, 1) == 1 {
			return "v1", nil
		}
		return "v2", nil
	}

	o := opts(time.Hour) // 窗口足够长，只有显式失效能触发回源
	if v, _ := c.Get(context.Background(), "k", o, fetch); v != "v1" {
		t.Fatalf("initial Get = %q, want v1", v)
	}

	c.Invalidate(context.Background(), "k")

	// 失效后的读取不返回旧值，而是阻塞等到新值
	if v, _ := c.Get(context.Background(), "k", o, fetch); v != "v2" {
		t.Fatalf("Get after Invalidate = %q, want v2", v)
	}
	if n := atomic.LoadInt32(&calls); n != 2 {
		t.Fatalf("fetch called %d times, want 2", n)
	}
}

func TestInvalidatePrefix(t *testing.T) {
	c := New(newFakeRemote())
	var calls int32
	fetch := func(ctx context.Context) (string, error) {
		return "v" + string(rune('0'+atomic.AddInt32(&calls, 1))), nil
	}

	o := opts(time.Hour)
	c.Get(context.Background(), "group_posts:G1:U1", o, fetch)
	c.Get(context.Background(), "group_posts:G1:U2", o, fetch)
	c.Get(context.Background(), "group_posts:G2:U1", o, fetch)
	if n := atomic.LoadInt32(&calls); n != 3 {
		t.Fatalf("setup fetch count = %d, want 3", n)
	}

	c.InvalidatePrefix(context.Background(), "group_posts:G1:")

	// G1 的两个键回源，G2 不受影响
	c.Get(context.Background(), "group_posts:G1:U1", o, fetch)
	c.Get(context.Background(), "group_posts:G1:U2", o, fetch)
	c.Get(context.Background(), "group_posts:G2:U1", o, fetch)
	if n := atomic.LoadInt32(&calls); n != 5 {
		t.Fatalf("fetch count after prefix invalidation = %d, want 5", n)
	}
}

func TestDisabledNeverFetches(t *testing.T) {
	c := New(newFakeRemote())
	var calls int32
	fetch := func(ctx context.Context) (string, error) {
		atomic.AddInt32(&calls, 1)
		return "v1", nil
	}

	disabled := Options{StaleTime: time.Minute, Enabled: false}
	v, err := c.Get(context.Background(), "k", disabled, fetch)
	if err != nil {
		t.Fatal(err)
	}
	if v != "" {
		t.Fatalf("disabled Get = %q, want empty", v)
	}
	if n := atomic.LoadInt32(&calls); n != 0 {
		t.Fatalf("fetch called %d times while disabled, want 0", n)
	}

	// 已有缓存时返回缓存值，仍不发起请求
	c.Get(context.Background(), "k", opts(time.Minute), fetch)
	v, _ = c.Get(context.Background(), "k", disabled, fetch)
	if v != "v1" {
		t.Fatalf("disabled Get with cache = %q, want v1", v)
	}
	if n := atomic.LoadInt32(&calls); n != 1 {
		t.Fatalf("fetch called %d times, want 1", n)
	}
}

func TestRemoteHitSkipsFetch(t *testing.T) {
	remote := newFakeRemote()
	remote.Set(context.Background(), "qc:k", "from-redis", time.Minute)
	c := New(remote)

	var calls int32
	fetch := func(ctx context.Context) (string, error) {
		atomic.AddInt32(&calls, 1)
		return "from-db", nil
	}

	v, err := c.Get(context.Background(), "k", opts(time.Minute), fetch)
	if err != nil {
		t.Fatal(err)
	}
	if v != "from-redis" {
		t.Fatalf("Get = %q, want from-redis", v)
	}
	if n := atomic.LoadInt32(&calls); n != 0 {
		t.Fatalf("fetch called %d times with warm second tier, want 0", n)
	}
}

func TestInvalidateDuringRefreshStillRefetches(t *testing.T) {
	remote := newFakeRemote()
	c := New(remote)
	var calls int32
	started := make(chan struct{})
	release := make(chan struct{})
	fetch := func(ctx context.Context) (string, error) {
		switch atomic.AddInt32(&calls, 1) {
		case 1:
			return "v1", nil
		case 2:
			close(started)
			<-release
			return "pre-mutation", nil
		default:
			return "post-mutation", nil
		}
	}

	o := opts(10 * time.Millisecond)
	if v, _ := c.Get(context.Background(), "k", o, fetch); v != "v1" {
		t.Fatalf("initial Get = %q, want v1", v)
	}

	// 等过新鲜窗口并清掉二级缓存，触发一次卡住的后台刷新
	time.Sleep(30 * time.Millisecond)
	remote.Delete(context.Background(), "qc:k")
	if v, _ := c.Get(context.Background(), "k", o, fetch); v != "v1" {
		t.Fatalf("stale Get = %q, want v1", v)
	}
	<-started

	// 刷新进行中发生写操作并显式失效，随后刷新才完成
	c.Invalidate(context.Background(), "k")
	close(release)

	// 等待被失效的刷新收尾
	e, _ := c.entries.Load("k")
	deadline := time.Now().Add(time.Second)
	for {
		e.lock()
		done := e.inflight == nil
		e.unlock()
		if done || time.Now().After(deadline) {
			break
		}
		time.Sleep(5 * time.Millisecond)
	}

	// 失效先于刷新完成，刷新结果不能当作新鲜值返回
	v, err := c.Get(context.Background(), "k", o, fetch)
	if err != nil {
		t.Fatal(err)
	}
	if v != "post-mutation" {
		t.Fatalf("Get after Invalidate = %q (fetch calls=%d), want post-mutation", v, atomic.LoadInt32(&calls))
	}
	if n := atomic.LoadInt32(&calls); n != 3 {
		t.Fatalf("fetch called %d times, want 3", n)
	}

	// 被失效的刷新结果也不能写入二级缓存
	if cached, _ := remote.Get(context.Background(), "qc:k"); cached != "post-mutation" {
		t.Fatalf("second tier = %q, want post-mutation", cached)
	}
}
