package cart

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"auris/models"
	"auris/rdx"

	"github.com/redis/go-redis/v9"
)

type entry struct {
	store    *Store
	lastSeen time.Time
}

// Sessions maps session ids to their cart stores. Idle carts are dropped
// after the TTL; a best-effort JSON snapshot in redis lets a session pick
// its cart back up after eviction. Nothing here is a durability guarantee.
type Sessions struct {
	mu      sync.Mutex
	ttl     time.Duration
	m       map[string]*entry
	onEvict []func(sessionID string)
}

func NewSessions(ttl time.Duration) *Sessions {
	s := &Sessions{
		ttl: ttl,
		m:   make(map[string]*entry),
	}
	go s.sweep()
	return s
}

// Get returns the session's cart store, creating it if needed. A fresh
// store is seeded from the redis snapshot when one exists. Getting a
// session also marks it live for the TTL sweep.
func (s *Sessions) Get(sid string) *Store {
	s.mu.Lock()
	if e, ok := s.m[sid]; ok {
		e.lastSeen = time.Now()
		s.mu.Unlock()
		return e.store
	}
	store := NewStore()
	s.m[sid] = &entry{store: store, lastSeen: time.Now()}
	s.mu.Unlock()

	if items, ok := loadSnapshot(sid); ok {
		store.Restore(items)
	}
	store.Subscribe(func(snap Snapshot) {
		saveSnapshot(sid, snap.Items, s.ttl)
	})
	return store
}

// OnEvict registers a hook called with each session id the sweep (or an
// explicit Evict) drops, e.g. to release per-session state held elsewhere.
func (s *Sessions) OnEvict(fn func(sessionID string)) {
	s.mu.Lock()
	s.onEvict = append(s.onEvict, fn)
	s.mu.Unlock()
}

// Evict drops the session's store and fires the eviction hooks. The redis
// snapshot is left in place so the session can pick its cart back up.
func (s *Sessions) Evict(sid string) {
	s.mu.Lock()
	_, ok := s.m[sid]
	delete(s.m, sid)
	hooks := s.onEvict
	s.mu.Unlock()
	if !ok {
		return
	}
	for _, fn := range hooks {
		fn(sid)
	}
}

func (s *Sessions) sweep() {
	ticker := time.NewTicker(time.Minute)
	for range ticker.C {
		cutoff := time.Now().Add(-s.ttl)
		s.mu.Lock()
		var expired []string
		for sid, e := range s.m {
			if e.lastSeen.Before(cutoff) {
				expired = append(expired, sid)
			}
		}
		s.mu.Unlock()
		for _, sid := range expired {
			s.Evict(sid)
		}
	}
}

func cartKey(sid string) string { return "cart:" + sid }

func saveSnapshot(sid string, items []models.CartItem, ttl time.Duration) {
	if len(items) == 0 {
		if err := rdx.RdxDel(cartKey(sid)); err != nil {
			log.Println("cart snapshot delete error:", err)
		}
		return
	}
	data, err := json.Marshal(items)
	if err != nil {
		log.Println("cart snapshot marshal error:", err)
		return
	}
	if err := rdx.RdxSetWithTTL(cartKey(sid), string(data), ttl); err != nil {
		log.Println("cart snapshot save error:", err)
	}
}

func loadSnapshot(sid string) ([]models.CartItem, bool) {
	data, err := rdx.RdxGet(cartKey(sid))
	if err != nil {
		if err != redis.Nil {
			log.Println("cart snapshot load error:", err)
		}
		return nil, false
	}
	var items []models.CartItem
	if err := json.Unmarshal([]byte(data), &items); err != nil {
		log.Println("cart snapshot unmarshal error:", err)
		return nil, false
	}
	return items, len(items) > 0
}
