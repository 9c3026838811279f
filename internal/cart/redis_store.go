package cart

import (
	"context"
	"fmt"
	"time"

	"github.com/mallhub-next/internal/cache"
)

// RedisStore 基于 Redis 的购物车存储，多实例部署时共享会话
type RedisStore struct {
	ttl time.Duration
}

// NewRedisStore 创建 Redis 购物车存储
func NewRedisStore(ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = defaultCartTTL
	}
	return &RedisStore{ttl: ttl}
}

func cartKey(sessionID string) string {
	return fmt.Sprintf("cart:%s", sessionID)
}

// Get 读取会话购物车，不存在时返回空购物车
func (s *RedisStore) Get(ctx context.Context, sessionID string) (*Cart, error) {
	var c Cart
	hit, err := cache.GetJSON(ctx, cartKey(sessionID), &c)
	if err != nil {
		return nil, err
	}
	if !hit {
		return &Cart{}, nil
	}
	return &c, nil
}

// Save 写入会话购物车并刷新过期时间
func (s *RedisStore) Save(ctx context.Context, sessionID string, cart *Cart) error {
	if cart == nil {
		cart = &Cart{}
	}
	return cache.SetJSON(ctx, cartKey(sessionID), cart, s.ttl)
}

// Clear 清空会话购物车
func (s *RedisStore) Clear(ctx context.Context, sessionID string) error {
	return cache.Del(ctx, cartKey(sessionID))
}
