package catalog

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/osse101/habitquest/internal/domain"
)

// File is the on-disk layout of the reward catalog
type File struct {
	Version string  `yaml:"version"`
	Rewards []Entry `yaml:"rewards"`
}

// Entry is one reward as written in the catalog file
type Entry struct {
	Name          string              `yaml:"name"`
	Description   string              `yaml:"description,omitempty"`
	Price         int                 `yaml:"price"`
	EquipmentSlot string              `yaml:"equipment_slot,omitempty"`
	StatBonuses   *domain.StatBonuses `yaml:"stat_bonuses,omitempty"`
}

// ToReward converts the entry to a domain reward. An entry with a slot is equipment.
func (e Entry) ToReward() domain.Reward {
	r := domain.Reward{
		Name:        strings.TrimSpace(e.Name),
		Description: strings.TrimSpace(e.Description),
		Price:       e.Price,
		StatBonuses: e.StatBonuses,
	}
	if e.EquipmentSlot != "" {
		slot := domain.EquipmentSlot(strings.ToLower(e.EquipmentSlot))
		r.IsEquipment = true
		r.EquipmentSlot = &slot
	}
	return r
}

// Loader reads and caches the reward catalog file
type Loader struct {
	path    string
	mu      sync.RWMutex
	rewards []domain.Reward
	loaded  bool
}

// NewLoader creates a loader for the catalog at path
func NewLoader(path string) *Loader {
	return &Loader{path: path}
}

// Load reads the catalog file, replacing anything loaded before
func (l *Loader) Load() error {
	data, err := os.ReadFile(l.path)
	if err != nil {
		return fmt.Errorf("failed to read catalog file: %w", err)
	}

	rewards, err := Parse(data)
	if err != nil {
		return fmt.Errorf("failed to load catalog %s: %w", l.path, err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.rewards = rewards
	l.loaded = true
	return nil
}

// Rewards returns the loaded catalog, loading it on first use
func (l *Loader) Rewards() ([]domain.Reward, error) {
	l.mu.RLock()
	loaded := l.loaded
	l.mu.RUnlock()

	if !loaded {
		if err := l.Load(); err != nil {
			return nil, err
		}
	}

	l.mu.RLock()
	defer l.mu.RUnlock()
	return append([]domain.Reward(nil), l.rewards...), nil
}

// Parse decodes catalog YAML. Reward names must be unique.
func Parse(data []byte) ([]domain.Reward, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if f.Version != "" && f.Version != SchemaVersion {
		return nil, fmt.Errorf("%w: unsupported catalog version %q", domain.ErrInvalidArgument, f.Version)
	}

	seen := make(map[string]bool, len(f.Rewards))
	rewards := make([]domain.Reward, 0, len(f.Rewards))
	for i, e := range f.Rewards {
		r := e.ToReward()
		if r.Name == "" {
			return nil, fmt.Errorf("%w: reward #%d has no name", domain.ErrInvalidArgument, i+1)
		}
		key := strings.ToLower(r.Name)
		if seen[key] {
			return nil, fmt.Errorf("%w: duplicate reward %q", domain.ErrInvalidArgument, r.Name)
		}
		seen[key] = true
		rewards = append(rewards, r)
	}
	return rewards, nil
}
