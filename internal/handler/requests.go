package handler

import "github.com/osse101/habitquest/internal/domain"

// LogHabitRequest is the body of a habit check-in
type LogHabitRequest struct {
	Positive *bool `json:"positive" validate:"required"`
}

// UpdateStreakRequest is the body of a stand-alone streak update
type UpdateStreakRequest struct {
	Completed *bool `json:"completed" validate:"required"`
}

// PurchaseRequest is the body of a shop purchase
type PurchaseRequest struct {
	RewardID string `json:"reward_id" validate:"required,uuid"`
}

// RunAuditRequest optionally names the calendar day to audit (YYYY-MM-DD in the game timezone)
type RunAuditRequest struct {
	Date string `json:"date,omitempty" validate:"omitempty,datetime=2006-01-02,notfuture"`
}

// CreateTaskRequest is the body of a new task. due_date is a YYYY-MM-DD day in the game timezone.
type CreateTaskRequest struct {
	Title         string                `json:"title" validate:"required,max=200"`
	Description   string                `json:"description,omitempty" validate:"max=2000"`
	Type          string                `json:"type" validate:"required,oneof=habit daily todo"`
	Difficulty    string                `json:"difficulty,omitempty" validate:"omitempty,oneof=trivial easy medium hard"`
	DueDate       string                `json:"due_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	RepeatPattern *domain.RepeatPattern `json:"repeat_pattern,omitempty"`
}

// UpdateTaskRequest lists the task fields to change. Set clear_due_date to remove the due date.
type UpdateTaskRequest struct {
	Title         *string               `json:"title,omitempty" validate:"omitempty,max=200"`
	Description   *string               `json:"description,omitempty" validate:"omitempty,max=2000"`
	Difficulty    *string               `json:"difficulty,omitempty" validate:"omitempty,oneof=trivial easy medium hard"`
	DueDate       *string               `json:"due_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	ClearDueDate  bool                  `json:"clear_due_date,omitempty"`
	RepeatPattern *domain.RepeatPattern `json:"repeat_pattern,omitempty"`
}
