package handlers

import (
	"fluidit/internal/services/ledger"
	"fluidit/internal/utils"
	"fluidit/internal/utils/response"
	"fluidit/internal/validation"

	"github.com/gofiber/fiber/v2"
)

type WalletHandler struct {
	ledgerService ledger.Service
}

func NewWalletHandler(ledgerService ledger.Service) *WalletHandler {
	return &WalletHandler{ledgerService: ledgerService}
}

// GetBalance returns the caller's wallet balance and identifier.
func (h *WalletHandler) GetBalance(c *fiber.Ctx) error {
	claims, err := utils.GetUserClaims(c)
	if err != nil {
		return response.Unauthorized(c)
	}

	wallet, err := h.ledgerService.GetWallet(c.Context(), claims.UserID)
	if err != nil {
		return response.Domain(c, err)
	}
	return c.JSON(fiber.Map{
		"balance":  wallet.Balance,
		"walletId": wallet.WalletID,
		"status":   wallet.Status,
	})
}

// ValidateWallet resolves a wallet ID to its owner's display name, so a
// sender can confirm who they are about to pay.
func (h *WalletHandler) ValidateWallet(c *fiber.Ctx) error {
	var input struct {
		WalletID string `json:"walletId"`
	}
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if !validation.IsValidWalletID(input.WalletID) {
		return response.ValidationError(c, "Invalid wallet ID format")
	}

	owner, err := h.ledgerService.ValidateWallet(c.Context(), input.WalletID)
	if err != nil {
		return response.Domain(c, err)
	}
	return c.JSON(fiber.Map{
		"name":     owner.Name,
		"walletId": input.WalletID,
	})
}
