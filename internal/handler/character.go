package handler

import (
	"net/http"

	"github.com/osse101/habitquest/internal/character"
)

// CharacterHandler serves the character sheet and shop endpoints
type CharacterHandler struct {
	service character.Service
}

// NewCharacterHandler creates character handlers
func NewCharacterHandler(service character.Service) *CharacterHandler {
	return &CharacterHandler{service: service}
}

// HandleGetSheet returns the caller's character sheet
// @Summary Character sheet
// @Description Character with equipped items, combined stats and progress toward the next level
// @Tags character
// @Produce json
// @Param X-User-ID header string true "User id"
// @Success 200 {object} domain.CharacterSheet
// @Failure 401 {object} ErrorResponse
// @Router /character [get]
func (h *CharacterHandler) HandleGetSheet(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	sheet, err := h.service.GetCharacterSheet(r.Context(), userID)
	if err != nil {
		respondServiceError(w, r, OpCharacterSheet, err)
		return
	}

	respondJSON(w, http.StatusOK, sheet)
}

// HandleGetLifetimeLevel reports the level implied by all XP ever earned
// @Summary Lifetime level
// @Tags character
// @Produce json
// @Param X-User-ID header string true "User id"
// @Success 200 {object} domain.LifetimeLevel
// @Router /character/lifetime [get]
func (h *CharacterHandler) HandleGetLifetimeLevel(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	lifetime, err := h.service.GetLifetimeLevel(r.Context(), userID)
	if err != nil {
		respondServiceError(w, r, OpLifetimeLevel, err)
		return
	}

	respondJSON(w, http.StatusOK, lifetime)
}

// HandleListRewards returns the shop catalog
// @Summary Shop catalog
// @Tags shop
// @Produce json
// @Success 200 {object} DataResponse{data=[]domain.Reward}
// @Router /shop/rewards [get]
func (h *CharacterHandler) HandleListRewards(w http.ResponseWriter, r *http.Request) {
	rewards, err := h.service.ListRewards(r.Context())
	if err != nil {
		respondServiceError(w, r, OpListRewards, err)
		return
	}

	respondJSON(w, http.StatusOK, DataResponse{Data: rewards})
}

// HandlePurchase buys a reward with gold
// @Summary Buy a reward
// @Tags shop
// @Accept json
// @Produce json
// @Param X-User-ID header string true "User id"
// @Param request body PurchaseRequest true "Reward to buy"
// @Success 200 {object} DataResponse{data=domain.PurchaseResult}
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /shop/purchase [post]
func (h *CharacterHandler) HandlePurchase(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req PurchaseRequest
	if err := DecodeAndValidateRequest(r, w, &req, OpPurchaseReward); err != nil {
		return
	}

	result, err := h.service.PurchaseReward(r.Context(), userID, req.RewardID)
	if err != nil {
		respondServiceError(w, r, OpPurchaseReward, err)
		return
	}

	respondJSON(w, http.StatusOK, DataResponse{Message: purchaseSummary(result), Data: result})
}
