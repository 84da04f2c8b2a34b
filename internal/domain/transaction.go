package domain

import "time"

// TransactionType is the ledger entry kind
type TransactionType string

const (
	TransactionXPGain   TransactionType = "xp_gain"
	TransactionXPLoss   TransactionType = "xp_loss"
	TransactionGoldGain TransactionType = "gold_gain"
	TransactionGoldLoss TransactionType = "gold_loss"
)

// Transaction sources
const (
	SourceTaskCompletion  = "task_completion"
	SourceHabitLog        = "habit_log"
	SourceStreakMilestone = "streak_milestone"
	SourceRewardPurchase  = "reward_purchase"
	SourceDefeat          = "defeat"
)

// Transaction is an append-only record of an XP or gold change
type Transaction struct {
	ID          string          `json:"id"`
	UserID      string          `json:"user_id"`
	Type        TransactionType `json:"type"`
	Amount      int             `json:"amount"`
	Source      string          `json:"source"`
	ReferenceID *string         `json:"reference_id,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

// NewTransaction builds a ledger entry for ref (may be empty)
func NewTransaction(userID string, txType TransactionType, amount int, source, ref string) Transaction {
	t := Transaction{
		UserID: userID,
		Type:   txType,
		Amount: amount,
		Source: source,
	}
	if ref != "" {
		t.ReferenceID = &ref
	}
	return t
}
