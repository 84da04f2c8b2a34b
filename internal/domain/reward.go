package domain

import "time"

// StatBonuses are the multipliers and flat bonuses an item grants.
// A nil field means the item does not touch that stat.
type StatBonuses struct {
	XPMultiplier   *float64 `json:"xp_multiplier,omitempty" yaml:"xp_multiplier,omitempty"`
	GoldMultiplier *float64 `json:"gold_multiplier,omitempty" yaml:"gold_multiplier,omitempty"`
	HPBonus        *int     `json:"hp_bonus,omitempty" yaml:"hp_bonus,omitempty"`
}

// XPMultiplierOrDefault returns the xp multiplier or 1 when absent
func (b *StatBonuses) XPMultiplierOrDefault() float64 {
	if b == nil || b.XPMultiplier == nil {
		return 1
	}
	return *b.XPMultiplier
}

// GoldMultiplierOrDefault returns the gold multiplier or 1 when absent
func (b *StatBonuses) GoldMultiplierOrDefault() float64 {
	if b == nil || b.GoldMultiplier == nil {
		return 1
	}
	return *b.GoldMultiplier
}

// HPBonusOrDefault returns the hp bonus or 0 when absent
func (b *StatBonuses) HPBonusOrDefault() int {
	if b == nil || b.HPBonus == nil {
		return 0
	}
	return *b.HPBonus
}

// EquipmentSlot names where an equipment reward is worn
type EquipmentSlot string

const (
	SlotHead      EquipmentSlot = "head"
	SlotBody      EquipmentSlot = "body"
	SlotWeapon    EquipmentSlot = "weapon"
	SlotAccessory EquipmentSlot = "accessory"
)

// IsValid reports whether s is a known slot
func (s EquipmentSlot) IsValid() bool {
	switch s {
	case SlotHead, SlotBody, SlotWeapon, SlotAccessory:
		return true
	}
	return false
}

// Reward is a shop entry. Equipment rewards carry stat bonuses.
type Reward struct {
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	Description   string         `json:"description,omitempty"`
	Price         int            `json:"price"`
	IsEquipment   bool           `json:"is_equipment"`
	EquipmentSlot *EquipmentSlot `json:"equipment_slot,omitempty"`
	StatBonuses   *StatBonuses   `json:"stat_bonuses,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
}

// InventoryItem is a reward owned by a user
type InventoryItem struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	RewardID   string    `json:"reward_id"`
	Quantity   int       `json:"quantity"`
	IsEquipped bool      `json:"is_equipped"`
	AcquiredAt time.Time `json:"acquired_at"`
}

// EquippedItem is an inventory item currently worn, joined with its reward
type EquippedItem struct {
	RewardID    string         `json:"reward_id"`
	Name        string         `json:"name"`
	Slot        *EquipmentSlot `json:"slot,omitempty"`
	StatBonuses *StatBonuses   `json:"stat_bonuses,omitempty"`
}
