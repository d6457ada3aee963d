package ratelimit

import (
	"sync"
	"time"

	cache "github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"
)

// Keyed 按 key（客户端 IP、API Key）分别限流
// 长时间未使用的 limiter 由缓存自动淘汰
type Keyed struct {
	limit    rate.Limit
	burst    int
	limiters *cache.Cache
	mu       sync.Mutex
}

// NewKeyed 创建按 key 限流器；limit <= 0 表示不限流
func NewKeyed(limit rate.Limit, burst int, idle time.Duration) *Keyed {
	if burst < 1 {
		burst = 1
	}
	if idle <= 0 {
		idle = 10 * time.Minute
	}
	return &Keyed{
		limit:    limit,
		burst:    burst,
		limiters: cache.New(idle, idle*2),
	}
}

// PerMinute 每分钟 n 次，突发 n 次
func PerMinute(n int) *Keyed {
	if n <= 0 {
		return NewKeyed(0, 0, 0)
	}
	return NewKeyed(rate.Every(time.Minute/time.Duration(n)), n, 0)
}

// PerSecond 每秒 r 次，突发为 2 倍
func PerSecond(r float64) *Keyed {
	if r <= 0 {
		return NewKeyed(0, 0, 0)
	}
	return NewKeyed(rate.Limit(r), int(r*2)+1, 0)
}

// Enabled 是否启用限流
func (k *Keyed) Enabled() bool {
	return k != nil && k.limit > 0
}

// Allow 消耗 key 的一个令牌，令牌不足时返回 false
func (k *Keyed) Allow(key string) bool {
	if !k.Enabled() {
		return true
	}
	return k.get(key).Allow()
}

func (k *Keyed) get(key string) *rate.Limiter {
	k.mu.Lock()
	defer k.mu.Unlock()

	if v, ok := k.limiters.Get(key); ok {
		// 刷新过期时间
		k.limiters.SetDefault(key, v)
		return v.(*rate.Limiter)
	}
	l := rate.NewLimiter(k.limit, k.burst)
	k.limiters.SetDefault(key, l)
	return l
}
