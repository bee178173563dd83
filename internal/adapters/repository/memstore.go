package repository

import (
	"context"
	"maps"
	"sync"
	"time"

	"github.com/okian/phonebook/pkg/metrics"
)

const defaultMetricsUpdateInterval = 5 * time.Second

// MemoryStore is a process-local phonebook guarded by a read-write lock.
//
// Writers are serialised on the write lock. Readers copy the map under the
// read lock, so a List result never changes after it is returned.
type MemoryStore struct {
	mu     sync.RWMutex
	byName map[string]string

	metricsUpdateInterval time.Duration

	wg       sync.WaitGroup
	stopOnce sync.Once
	stopChan chan struct{}
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore builds a store and starts its metrics updater. The updater
// stops when ctx is cancelled or Close is called.
func NewMemoryStore(ctx context.Context, opts ...Option) *MemoryStore {
	s := &MemoryStore{
		byName:                make(map[string]string),
		metricsUpdateInterval: defaultMetricsUpdateInterval,
		stopChan:              make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.updateMetrics()
	s.startMetricsUpdater(ctx)
	return s
}

// Put implements Store.Put.
func (s *MemoryStore) Put(_ context.Context, name, phoneNumber string) (bool, error) {
	start := time.Now()

	s.mu.Lock()
	_, replaced := s.byName[name]
	s.byName[name] = phoneNumber
	count := len(s.byName)
	s.mu.Unlock()

	metrics.RecordStoreWriteLatency(float64(time.Since(start).Microseconds()) / 1000)
	metrics.UpdateContactsTotal(count)
	return replaced, nil
}

// Get implements Store.Get.
func (s *MemoryStore) Get(_ context.Context, name string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	phone, ok := s.byName[name]
	if !ok {
		return "", ErrNotFound
	}
	return phone, nil
}

// List implements Store.List.
func (s *MemoryStore) List(_ context.Context) (map[string]string, error) {
	start := time.Now()

	s.mu.RLock()
	out := maps.Clone(s.byName)
	s.mu.RUnlock()

	metrics.RecordStoreReadLatency(float64(time.Since(start).Microseconds()) / 1000)
	return out, nil
}

// Count implements Store.Count.
func (s *MemoryStore) Count(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byName)
}

// Close stops the background goroutines. Reads and writes keep working.
func (s *MemoryStore) Close() error {
	s.stopOnce.Do(func() { close(s.stopChan) })
	s.wg.Wait()
	return nil
}

func (s *MemoryStore) startMetricsUpdater(ctx context.Context) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(s.metricsUpdateInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-s.stopChan:
				return
			case <-ticker.C:
				s.updateMetrics()
			}
		}
	}()
}

func (s *MemoryStore) updateMetrics() {
	metrics.UpdateContactsTotal(s.Count(context.Background()))
}
