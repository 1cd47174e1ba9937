package cache

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/standardbeagle/codeintel/internal/types"
)

// DefaultL1MaxEntries bounds each namespace's in-memory sub-cache,
// mirroring the teacher's DefaultMaxContentEntries/DefaultMaxSymbolEntries
// split into one cap instead of three now that everything is namespaced
// rather than content/symbol/parser-typed.
const DefaultL1MaxEntries = 400

type l1Entry struct {
	value     []byte
	cachedAt  int64 // unix nano, atomic
	lastUsed  int64 // unix nano of the latest put/get, atomic
	hits      int64 // atomic
	valueSize int
}

// l1Namespace is one analyzer's bounded in-memory cache. Grounded on the
// teacher's MetricsCache (lock-free sync.Map plus atomic counters,
// approximate-LRU eviction by oldest-timestamp scan on overflow), kept at
// one namespace per sub-cache instead of three fixed content/symbol/parser
// caches since namespaces are now open-ended (one per analyzer package).
type l1Namespace struct {
	entries sync.Map // map[string]*l1Entry
	count   int64
	max     int
}

func newL1Namespace(max int) *l1Namespace {
	return &l1Namespace{max: max}
}

func (n *l1Namespace) get(key string) ([]byte, bool) {
	v, ok := n.entries.Load(key)
	if !ok {
		return nil, false
	}
	e := v.(*l1Entry)
	atomic.AddInt64(&e.hits, 1)
	atomic.StoreInt64(&e.lastUsed, time.Now().UnixNano())
	return e.value, true
}

func (n *l1Namespace) put(key string, value []byte) {
	now := time.Now().UnixNano()
	e := &l1Entry{value: value, cachedAt: now, lastUsed: now, valueSize: len(value)}
	if _, loaded := n.entries.LoadOrStore(key, e); !loaded {
		if atomic.AddInt64(&n.count, 1) > int64(n.max) {
			n.evictOldest()
		}
	}
}

func (n *l1Namespace) evictOldest() {
	var oldestKey interface{}
	oldestAt := time.Now().UnixNano()
	n.entries.Range(func(key, value interface{}) bool {
		e := value.(*l1Entry)
		at := atomic.LoadInt64(&e.lastUsed)
		if at < oldestAt {
			oldestAt = at
			oldestKey = key
		}
		return true
	})
	if oldestKey != nil {
		n.entries.Delete(oldestKey)
		atomic.AddInt64(&n.count, -1)
	}
}

// L1 is the process-lifetime, bounded-per-namespace in-memory cache tier.
type L1 struct {
	mu         sync.RWMutex
	namespaces map[string]*l1Namespace
	maxEntries int
}

func NewL1(maxEntriesPerNamespace int) *L1 {
	if maxEntriesPerNamespace <= 0 {
		maxEntriesPerNamespace = DefaultL1MaxEntries
	}
	return &L1{namespaces: make(map[string]*l1Namespace), maxEntries: maxEntriesPerNamespace}
}

func (l *L1) namespace(ns string) *l1Namespace {
	l.mu.RLock()
	n, ok := l.namespaces[ns]
	l.mu.RUnlock()
	if ok {
		return n
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if n, ok = l.namespaces[ns]; ok {
		return n
	}
	n = newL1Namespace(l.maxEntries)
	l.namespaces[ns] = n
	return n
}

func (l *L1) Get(ns, fingerprint string) ([]byte, bool) {
	return l.namespace(ns).get(fingerprint)
}

func (l *L1) Put(ns, fingerprint string, value []byte) {
	l.namespace(ns).put(fingerprint, value)
}

// Entries returns every live entry in ns's sub-cache as the
// types.CacheEntry shape spec.md §3 names (`{key, value_bytes, created_at,
// ttl, size, hits}`), for cache-inspection diagnostics. TTL is always zero
// here since L1 has no expiry of its own — entries only leave via
// capacity-triggered eviction.
func (l *L1) Entries(ns string) []types.CacheEntry {
	n := l.namespace(ns)
	var out []types.CacheEntry
	n.entries.Range(func(key, value interface{}) bool {
		e := value.(*l1Entry)
		out = append(out, types.CacheEntry{
			Key:       key.(string),
			ValueSize: e.valueSize,
			CreatedAt: time.Unix(0, atomic.LoadInt64(&e.cachedAt)),
			Hits:      atomic.LoadInt64(&e.hits),
		})
		return true
	})
	return out
}
