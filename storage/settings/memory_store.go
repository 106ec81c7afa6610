package settings

import (
	"context"
	"sync"
)

// MemoryStore 进程内实现，测试用。语义与 RedisStore 对齐：
// ErrNotFound、批量原子写、Observe 先发当前值。
type MemoryStore struct {
	mu     sync.Mutex
	values map[string]string
	sets   map[string]map[string]struct{}
	subs   map[string][]chan string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		values: make(map[string]string),
		sets:   make(map[string]map[string]struct{}),
		subs:   make(map[string][]chan string),
	}
}

func (s *MemoryStore) Get(ctx context.Context, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	val, ok := s.values[key]
	if !ok {
		return "", ErrNotFound
	}
	return val, nil
}

func (s *MemoryStore) Set(ctx context.Context, key, value string) error {
	s.mu.Lock()
	s.values[key] = value
	subs := append([]chan string(nil), s.subs[key]...)
	s.mu.Unlock()

	for _, ch := range subs {
		select {
		case ch <- value:
		default: // 订阅者跟不上时丢最新值之外的通知，测试里缓冲足够大
		}
	}
	return nil
}

func (s *MemoryStore) Remove(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.values, key)
	return nil
}

func (s *MemoryStore) AddToSet(ctx context.Context, key, member string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.addToSetLocked(key, member)
	return nil
}

func (s *MemoryStore) addToSetLocked(key, member string) {
	set, ok := s.sets[key]
	if !ok {
		set = make(map[string]struct{})
		s.sets[key] = set
	}
	set[member] = struct{}{}
}

func (s *MemoryStore) GetSet(ctx context.Context, key string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	members := make([]string, 0, len(s.sets[key]))
	for m := range s.sets[key] {
		members = append(members, m)
	}
	return members, nil
}

func (s *MemoryStore) SetBatch(ctx context.Context, values map[string]string, setAdds map[string][]string) error {
	s.mu.Lock()
	for key, value := range values {
		s.values[key] = value
	}
	for key, members := range setAdds {
		for _, m := range members {
			s.addToSetLocked(key, m)
		}
	}
	notify := make(map[string][]chan string, len(values))
	for key := range values {
		notify[key] = append([]chan string(nil), s.subs[key]...)
	}
	s.mu.Unlock()

	for key, subs := range notify {
		for _, ch := range subs {
			select {
			case ch <- values[key]:
			default:
			}
		}
	}
	return nil
}

func (s *MemoryStore) Observe(ctx context.Context, key string) (<-chan string, func()) {
	ch := make(chan string, 16)

	s.mu.Lock()
	if current, ok := s.values[key]; ok {
		ch <- current
	}
	s.subs[key] = append(s.subs[key], ch)
	s.mu.Unlock()

	return ch, func() {
		s.mu.Lock()
		defer s.mu.Unlock()

		subs := s.subs[key]
		for i, c := range subs {
			if c == ch {
				s.subs[key] = append(subs[:i], subs[i+1:]...)
				break
			}
		}
	}
}
