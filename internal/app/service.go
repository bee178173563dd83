// Package service provides the phonebook service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"fmt"
	"maps"
	"sync"

	repository "github.com/okian/phonebook/internal/adapters/repository"
	"github.com/okian/phonebook/internal/domain/model"
	"github.com/okian/phonebook/pkg/logger"
	"github.com/okian/phonebook/pkg/metrics"
)

// Service owns the phonebook store and applies the add/list operations.
type Service struct {
	mu sync.RWMutex

	store      repository.Store
	ownsStore  bool
	seed       map[string]string
	logger     logger.Logger
	started    bool
	seededWith int
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithStore injects the store instead of building a MemoryStore on Start.
// An injected store is not closed by Stop.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithSeedContacts replaces the contacts written on Start. A nil map keeps
// the default seed; an empty map starts with an empty phonebook.
func WithSeedContacts(contacts map[string]string) Option {
	return func(s *Service) {
		if contacts != nil {
			s.seed = maps.Clone(contacts)
		}
	}
}

// DefaultSeed is the phonebook content at start-up unless configured otherwise.
func DefaultSeed() map[string]string {
	return map[string]string{"John": "657-532-1112"}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		seed: DefaultSeed(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start builds and seeds the store. Calling Start twice is a no-op.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}

	if s.store == nil {
		s.store = repository.NewMemoryStore(ctx)
		s.ownsStore = true
	}
	for name, phone := range s.seed {
		if _, err := s.store.Put(ctx, name, phone); err != nil {
			return fmt.Errorf("seed %q: %w", name, err)
		}
	}
	s.seededWith = len(s.seed)

	s.started = true
	s.logger.Info(ctx, "phonebook service started",
		logger.Int("seeded", s.seededWith),
		logger.Int("contacts", s.store.Count(ctx)),
	)
	return nil
}

// Stop releases the store. The phonebook content is discarded.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	if s.ownsStore {
		if closer, ok := s.store.(interface{ Close() error }); ok {
			_ = closer.Close()
		}
		s.store = nil
		s.ownsStore = false
	}
	s.started = false
	s.logger.Info(context.Background(), "phonebook service stopped")
}

func (s *Service) running() (repository.Store, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return nil, ErrNotStarted
	}
	return s.store, nil
}

// AddContact stores c, replacing any number already stored under c.Name.
func (s *Service) AddContact(ctx context.Context, c model.Contact) error {
	store, err := s.running()
	if err != nil {
		return err
	}

	s.logger.Info(ctx, fmt.Sprintf("adding %s and %s to phonebook", c.Name, c.PhoneNumber),
		logger.String("name", c.Name),
		logger.String("phone_number", c.PhoneNumber),
	)
	replaced, err := store.Put(ctx, c.Name, c.PhoneNumber)
	if err != nil {
		return err
	}
	metrics.RecordContactAdded(replaced)
	if replaced {
		s.logger.Debug(ctx, "replaced existing number", logger.String("name", c.Name))
	}
	return nil
}

// ListContacts returns a copy of the whole phonebook.
func (s *Service) ListContacts(ctx context.Context) (map[string]string, error) {
	store, err := s.running()
	if err != nil {
		return nil, err
	}
	return store.List(ctx)
}

// GetStats returns service statistics for /stats.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started": s.started,
		"seeded":  s.seededWith,
	}
	if s.started {
		count := s.store.Count(context.Background())
		stats["contacts"] = count
		metrics.UpdateContactsTotal(count)
	}
	return stats
}
