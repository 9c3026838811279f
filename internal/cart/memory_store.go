package cart

import (
	"context"
	"sync"
	"time"
)

const defaultCartTTL = 2 * time.Hour

type memoryEntry struct {
	cart      Cart
	expiresAt time.Time
}

// MemoryStore 进程内购物车存储，Redis 不可用时的回退实现
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	ttl     time.Duration
	now     func() time.Time
}

// NewMemoryStore 创建内存购物车存储
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = defaultCartTTL
	}
	return &MemoryStore{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Get 读取会话购物车，过期或不存在时返回空购物车
func (s *MemoryStore) Get(_ context.Context, sessionID string) (*Cart, error) {
	s.mu.RLock()
	entry, ok := s.entries[sessionID]
	s.mu.RUnlock()
	if !ok || s.now().After(entry.expiresAt) {
		return &Cart{}, nil
	}
	// 返回副本，调用方修改后必须 Save 回写
	lines := make([]Line, len(entry.cart.Lines))
	copy(lines, entry.cart.Lines)
	return &Cart{Lines: lines}, nil
}

// Save 写入会话购物车并刷新过期时间
func (s *MemoryStore) Save(_ context.Context, sessionID string, cart *Cart) error {
	if cart == nil {
		cart = &Cart{}
	}
	lines := make([]Line, len(cart.Lines))
	copy(lines, cart.Lines)

	s.mu.Lock()
	s.entries[sessionID] = memoryEntry{
		cart:      Cart{Lines: lines},
		expiresAt: s.now().Add(s.ttl),
	}
	s.sweepLocked()
	s.mu.Unlock()
	return nil
}

// Clear 清空会话购物车
func (s *MemoryStore) Clear(_ context.Context, sessionID string) error {
	s.mu.Lock()
	delete(s.entries, sessionID)
	s.mu.Unlock()
	return nil
}

// sweepLocked 顺手清理过期会话，调用方必须持有写锁
func (s *MemoryStore) sweepLocked() {
	now := s.now()
	for key, entry := range s.entries {
		if now.After(entry.expiresAt) {
			delete(s.entries, key)
		}
	}
}
