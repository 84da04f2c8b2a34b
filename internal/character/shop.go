package character

import (
	"context"
	"fmt"
	"strings"

	"github.com/osse101/habitquest/internal/domain"
	"github.com/osse101/habitquest/internal/event"
	"github.com/osse101/habitquest/internal/logger"
	"github.com/osse101/habitquest/internal/progression"
	"github.com/osse101/habitquest/internal/repository"
)

// ListRewards returns the shop catalog, served from the cache while it is fresh
func (s *service) ListRewards(ctx context.Context) ([]domain.Reward, error) {
	if rewards, ok := s.cache.Catalog(); ok {
		logger.FromContext(ctx).Debug(LogMsgCatalogCacheHit, "count", len(rewards))
		return rewards, nil
	}

	rewards, err := s.repo.ListRewards(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list rewards: %w", err)
	}
	if rewards == nil {
		rewards = []domain.Reward{}
	}

	s.cache.SetCatalog(rewards)
	for _, r := range rewards {
		s.cache.SetReward(r)
	}
	return rewards, nil
}

func (s *service) getReward(ctx context.Context, rewardID string) (*domain.Reward, error) {
	if r, ok := s.cache.Reward(rewardID); ok {
		return r, nil
	}

	r, err := s.repo.GetReward(ctx, rewardID)
	if err != nil {
		return nil, fmt.Errorf("failed to get reward: %w", err)
	}
	s.cache.SetReward(*r)
	return r, nil
}

// PurchaseReward spends gold on a reward and adds it to the user's inventory.
// The character row stays locked from the balance check until commit, so concurrent
// purchases can never overdraw.
func (s *service) PurchaseReward(ctx context.Context, userID, rewardID string) (*domain.PurchaseResult, error) {
	log := logger.FromContext(ctx)

	reward, err := s.getReward(ctx, rewardID)
	if err != nil {
		return nil, err
	}
	if !progression.IsValidGoldAmount(reward.Price) {
		return nil, fmt.Errorf("%w: reward %s has negative price %d", domain.ErrInvalidArgument, rewardID, reward.Price)
	}

	if _, err := s.EnsureCharacter(ctx, userID); err != nil {
		return nil, err
	}

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer repository.SafeRollback(ctx, tx)

	char, err := tx.GetCharacterForUpdate(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get character: %w", err)
	}

	remaining, err := progression.DeductGold(char.Gold, reward.Price)
	if err != nil {
		return nil, err
	}
	char.Gold = remaining

	if err := tx.UpdateCharacter(ctx, char); err != nil {
		return nil, fmt.Errorf("failed to update character: %w", err)
	}

	quantity, err := tx.AddInventoryItem(ctx, userID, reward.ID, 1)
	if err != nil {
		return nil, err
	}

	if reward.Price > 0 {
		txn := domain.NewTransaction(userID, domain.TransactionGoldLoss, reward.Price, domain.SourceRewardPurchase, reward.ID)
		if err := tx.InsertTransactions(ctx, []domain.Transaction{txn}); err != nil {
			return nil, fmt.Errorf("failed to record transactions: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	result := &domain.PurchaseResult{
		Reward:        *reward,
		GoldSpent:     reward.Price,
		RemainingGold: remaining,
		Quantity:      quantity,
	}

	log.Info(LogMsgRewardPurchased,
		"user_id", userID,
		"reward_id", reward.ID,
		"price", reward.Price,
		"remaining_gold", remaining)

	if s.publisher != nil {
		s.publisher.PublishWithRetry(ctx, event.NewRewardPurchasedEvent(userID, *result))
	}
	return result, nil
}

// SyncCatalog validates and upserts catalog entries by name, then drops the cached catalog.
// Nothing is written when any entry is invalid.
func (s *service) SyncCatalog(ctx context.Context, rewards []domain.Reward) (int, error) {
	for i := range rewards {
		if err := validateReward(&rewards[i]); err != nil {
			return 0, err
		}
	}

	synced := 0
	for i := range rewards {
		if err := s.repo.UpsertReward(ctx, &rewards[i]); err != nil {
			s.cache.Clear()
			return synced, fmt.Errorf("failed to upsert reward %q: %w", rewards[i].Name, err)
		}
		synced++
	}

	s.cache.Clear()
	logger.FromContext(ctx).Info(LogMsgCatalogSynced, "count", synced)
	return synced, nil
}

func validateReward(r *domain.Reward) error {
	if strings.TrimSpace(r.Name) == "" {
		return fmt.Errorf("%w: reward name is required", domain.ErrInvalidArgument)
	}
	if !progression.IsValidGoldAmount(r.Price) {
		return fmt.Errorf("%w: reward %q price must be non-negative, got %d", domain.ErrInvalidArgument, r.Name, r.Price)
	}
	if r.IsEquipment && r.EquipmentSlot == nil {
		return fmt.Errorf("%w: equipment reward %q needs a slot", domain.ErrInvalidArgument, r.Name)
	}
	if !r.IsEquipment && r.StatBonuses != nil {
		return fmt.Errorf("%w: reward %q has stat bonuses but is not equipment", domain.ErrInvalidArgument, r.Name)
	}
	if r.EquipmentSlot != nil && !r.EquipmentSlot.IsValid() {
		return fmt.Errorf("%w: reward %q has unknown slot %q", domain.ErrInvalidArgument, r.Name, *r.EquipmentSlot)
	}
	return progression.ValidateStatBonuses(r.StatBonuses)
}
