package cache

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gomodule/redigo/redis"
)

var ErrMiss = errors.New("cache miss")

// SnapshotStore keeps the last snapshot each room broadcast, for late joiners.
type SnapshotStore interface {
	Save(code string, state []byte) error
	Load(code string) ([]byte, error)
	Delete(code string) error
	// Reserve claims a room code, reporting false when it is already taken.
	Reserve(code string) (bool, error)
}

type RedisStore struct {
	pool *redis.Pool
	ttl  int
}

func NewRedisStore(pool *redis.Pool, ttl time.Duration) *RedisStore {
	secs := int(ttl / time.Second)
	if secs <= 0 {
		secs = 1
	}
	return &RedisStore{pool: pool, ttl: secs}
}

func stateKey(code string) string { return fmt.Sprintf("room.%s.state", code) }
func roomKey(code string) string  { return fmt.Sprintf("room.%s", code) }

func (s *RedisStore) Save(code string, state []byte) error {
	conn := s.pool.Get()
	defer conn.Close()
	return SetEx(stateKey(code), state, s.ttl, conn)
}

func (s *RedisStore) Load(code string) ([]byte, error) {
	conn := s.pool.Get()
	defer conn.Close()
	data, err := Get(stateKey(code), conn)
	if err == redis.ErrNil {
		return nil, ErrMiss
	}
	return data, err
}

func (s *RedisStore) Delete(code string) error {
	conn := s.pool.Get()
	defer conn.Close()
	if err := Del(stateKey(code), conn); err != nil {
		return err
	}
	return Del(roomKey(code), conn)
}

func (s *RedisStore) Reserve(code string) (bool, error) {
	conn := s.pool.Get()
	defer conn.Close()
	return SetNX(roomKey(code), 1, s.ttl, conn)
}

type MemoryStore struct {
	mu     sync.RWMutex
	states map[string][]byte
	codes  map[string]struct{}
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{states: map[string][]byte{}, codes: map[string]struct{}{}}
}

func (s *MemoryStore) Save(code string, state []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.states[code] = append([]byte(nil), state...)
	return nil
}

func (s *MemoryStore) Load(code string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.states[code]
	if !ok {
		return nil, ErrMiss
	}
	return data, nil
}

func (s *MemoryStore) Delete(code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.states, code)
	delete(s.codes, code)
	return nil
}

func (s *MemoryStore) Reserve(code string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, taken := s.codes[code]; taken {
		return false, nil
	}
	s.codes[code] = struct{}{}
	return true, nil
}
