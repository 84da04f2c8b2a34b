package character

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/osse101/habitquest/internal/domain"
	"github.com/osse101/habitquest/internal/event"
	"github.com/osse101/habitquest/internal/logger"
	"github.com/osse101/habitquest/internal/progression"
	"github.com/osse101/habitquest/internal/repository"
)

// Service defines the character sheet and shop business logic
type Service interface {
	EnsureCharacter(ctx context.Context, userID string) (*domain.Character, error)
	GetCharacterSheet(ctx context.Context, userID string) (*domain.CharacterSheet, error)
	GetLifetimeLevel(ctx context.Context, userID string) (*domain.LifetimeLevel, error)

	ListRewards(ctx context.Context) ([]domain.Reward, error)
	PurchaseReward(ctx context.Context, userID, rewardID string) (*domain.PurchaseResult, error)
	SyncCatalog(ctx context.Context, rewards []domain.Reward) (int, error)

	Shutdown(ctx context.Context) error
}

// Config tunes the catalog cache
type Config struct {
	CacheSize int
	CacheTTL  time.Duration
}

// DefaultConfig returns the cache settings used when none are configured
func DefaultConfig() Config {
	return Config{
		CacheSize: DefaultCacheSize,
		CacheTTL:  DefaultCacheTTL,
	}
}

type shutdowner interface {
	Shutdown(ctx context.Context) error
}

type service struct {
	repo      repository.Character
	publisher event.Publisher
	cache     *catalogCache
}

// NewService creates a new character service
func NewService(repo repository.Character, publisher event.Publisher, cfg Config) Service {
	if cfg.CacheSize <= 0 {
		cfg.CacheSize = DefaultCacheSize
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = DefaultCacheTTL
	}
	return &service{
		repo:      repo,
		publisher: publisher,
		cache:     newCatalogCache(cfg.CacheSize, cfg.CacheTTL),
	}
}

// EnsureCharacter returns the user's character, creating a fresh level 1 one on first use
func (s *service) EnsureCharacter(ctx context.Context, userID string) (*domain.Character, error) {
	char, err := s.repo.GetCharacter(ctx, userID)
	if err == nil {
		return char, nil
	}
	if !errors.Is(err, domain.ErrCharacterNotFound) {
		return nil, fmt.Errorf("failed to get character: %w", err)
	}

	char, err = s.repo.CreateCharacter(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to create character: %w", err)
	}
	logger.FromContext(ctx).Info(LogMsgCharacterCreated, "user_id", userID)
	return char, nil
}

// GetCharacterSheet returns the character with equipment, combined stats and level progress
func (s *service) GetCharacterSheet(ctx context.Context, userID string) (*domain.CharacterSheet, error) {
	char, err := s.EnsureCharacter(ctx, userID)
	if err != nil {
		return nil, err
	}

	items, err := s.repo.GetEquippedItems(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get equipped items: %w", err)
	}
	if items == nil {
		items = []domain.EquippedItem{}
	}

	progress, err := progression.CalculateXPProgress(char.XP, char.Level)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate progress: %w", err)
	}

	return &domain.CharacterSheet{
		Character:     *char,
		EquippedItems: items,
		TotalStats:    progression.AggregateStats(items),
		Progress:      progress,
	}, nil
}

// GetLifetimeLevel reports the level implied by every XP transaction the user ever earned.
// It is analytics only and never written back to the character.
func (s *service) GetLifetimeLevel(ctx context.Context, userID string) (*domain.LifetimeLevel, error) {
	char, err := s.EnsureCharacter(ctx, userID)
	if err != nil {
		return nil, err
	}

	total, err := s.repo.GetLifetimeXP(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get lifetime xp: %w", err)
	}

	level, err := progression.LevelFromTotalXP(total)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate lifetime level: %w", err)
	}

	return &domain.LifetimeLevel{
		UserID:      userID,
		TotalXP:     total,
		Level:       level,
		ActualLevel: char.Level,
	}, nil
}

// Shutdown gracefully shuts down the character service
func (s *service) Shutdown(ctx context.Context) error {
	log := logger.FromContext(ctx)
	log.Info(LogMsgServiceShutdown)

	s.cache.Clear()
	if sd, ok := s.publisher.(shutdowner); ok {
		if err := sd.Shutdown(ctx); err != nil {
			log.Error(LogMsgServiceShutdownErr, "error", err)
			return err
		}
	}
	return nil
}
