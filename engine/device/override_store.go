package device

import (
	"fmt"
	"log"
	"sync"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

const (
	overrideObject   = "device"
	overrideProperty = "override"
)

// OverrideStore persists a manual tier override between runs.
type OverrideStore interface {
	// Load reads the stored override.
	//
	// Returns:
	//   - Tier: the stored tier
	//   - bool: false if nothing is stored
	//   - error: if the stored data could not be read
	Load() (Tier, bool, error)

	// Save stores the override.
	Save(tier Tier) error

	// Clear removes the stored override.
	Clear() error
}

type overrideRecord struct {
	Tier Tier `yaml:"tier"`
}

// gdataOverrideStore keeps the override in the per-user application data directory.
// A nil manager puts the store in degraded mode: every call succeeds without touching disk.
type gdataOverrideStore struct {
	mu      *sync.Mutex
	manager *gdata.Manager
}

var _ OverrideStore = &gdataOverrideStore{}

// NewGdataOverrideStore opens the application data directory for appName.
// When it cannot be opened the store is returned in degraded mode and the error is logged.
//
// Parameters:
//   - appName: the application data directory name
//
// Returns:
//   - OverrideStore: the store
func NewGdataOverrideStore(appName string) OverrideStore {
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		log.Printf("[OverrideStore] warning: failed to open data dir, override will not persist: %v", err)
		m = nil
	}
	return NewOverrideStoreFromManager(m)
}

// NewOverrideStoreFromManager wraps an existing gdata manager. A nil manager is valid.
func NewOverrideStoreFromManager(m *gdata.Manager) OverrideStore {
	return &gdataOverrideStore{mu: &sync.Mutex{}, manager: m}
}

func (s *gdataOverrideStore) Load() (Tier, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.manager == nil || !s.manager.ObjectPropExists(overrideObject, overrideProperty) {
		return "", false, nil
	}
	data, err := s.manager.LoadObjectProp(overrideObject, overrideProperty)
	if err != nil {
		return "", false, fmt.Errorf("failed to load device override: %w", err)
	}
	var rec overrideRecord
	if err := yaml.Unmarshal(data, &rec); err != nil {
		return "", false, fmt.Errorf("failed to decode device override: %w", err)
	}
	if rec.Tier == "" {
		return "", false, nil
	}
	tier, ok := ParseTier(string(rec.Tier))
	if !ok {
		return "", false, fmt.Errorf("unknown stored tier %q", rec.Tier)
	}
	return tier, true, nil
}

func (s *gdataOverrideStore) Save(tier Tier) error {
	return s.write(overrideRecord{Tier: tier})
}

// Clear writes an empty record, which Load treats as absent.
func (s *gdataOverrideStore) Clear() error {
	return s.write(overrideRecord{})
}

func (s *gdataOverrideStore) write(rec overrideRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.manager == nil {
		return nil
	}
	data, err := yaml.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to encode device override: %w", err)
	}
	if err := s.manager.SaveObjectProp(overrideObject, overrideProperty, data); err != nil {
		return fmt.Errorf("failed to save device override: %w", err)
	}
	return nil
}

// memoryOverrideStore keeps the override for the lifetime of the process.
type memoryOverrideStore struct {
	mu   *sync.Mutex
	tier Tier
}

var _ OverrideStore = &memoryOverrideStore{}

// NewMemoryOverrideStore creates a store that does not persist.
func NewMemoryOverrideStore() OverrideStore {
	return &memoryOverrideStore{mu: &sync.Mutex{}}
}

func (s *memoryOverrideStore) Load() (Tier, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tier, s.tier != "", nil
}

func (s *memoryOverrideStore) Save(tier Tier) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tier = tier
	return nil
}

func (s *memoryOverrideStore) Clear() error {
	return s.Save("")
}
