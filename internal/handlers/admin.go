package handlers

import (
	"fluidit/internal/services/ledger"
	"fluidit/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

type AdminHandler struct {
	ledgerService ledger.Service
}

func NewAdminHandler(ledgerService ledger.Service) *AdminHandler {
	return &AdminHandler{ledgerService: ledgerService}
}

// SetWalletStatus locks or unlocks a wallet. Locked wallets reject every
// balance mutation at the store level.
func (h *AdminHandler) SetWalletStatus(c *fiber.Ctx) error {
	var input struct {
		Status string `json:"status"`
		Reason string `json:"reason"`
	}
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	walletID := c.Params("walletId")
	if err := h.ledgerService.SetWalletStatus(c.Context(), walletID, input.Status, input.Reason); err != nil {
		return response.Domain(c, err)
	}
	return response.Success(c, "Wallet status updated", fiber.Map{
		"walletId": walletID,
		"status":   input.Status,
	})
}
