package domain

import "time"

// Character is the per-user game avatar. XP is progress inside the current level.
type Character struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Level     int       `json:"level"`
	XP        int       `json:"xp"`
	HP        int       `json:"hp"`
	Gold      int       `json:"gold"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// XPProgress describes how far a character is toward the next level
type XPProgress struct {
	Current    int     `json:"current"`
	Required   int     `json:"required"`
	Percentage float64 `json:"percentage"`
}

// CharacterSheet is the read model returned to clients
type CharacterSheet struct {
	Character     Character      `json:"character"`
	EquippedItems []EquippedItem `json:"equipped_items"`
	TotalStats    StatBonuses    `json:"total_stats"`
	Progress      XPProgress     `json:"progress"`
}

// LifetimeLevel reports the level implied by all XP a user ever earned
type LifetimeLevel struct {
	UserID      string `json:"user_id"`
	TotalXP     int64  `json:"total_xp"`
	Level       int    `json:"level"`
	ActualLevel int    `json:"actual_level"`
}

// PurchaseResult is returned after buying a reward
type PurchaseResult struct {
	Reward        Reward `json:"reward"`
	GoldSpent     int    `json:"gold_spent"`
	RemainingGold int    `json:"remaining_gold"`
	Quantity      int    `json:"quantity"`
}
