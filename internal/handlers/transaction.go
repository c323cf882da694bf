package handlers

import (
	"strconv"
	"time"

	"fluidit/internal/services/ledger"
	"fluidit/internal/services/receipt"
	"fluidit/internal/services/transaction"
	"fluidit/internal/utils"
	"fluidit/internal/utils/pagination"
	"fluidit/internal/utils/response"
	"fluidit/internal/validation"

	"github.com/gofiber/fiber/v2"
)

type TransactionHandler struct {
	ledgerService ledger.Service
	querySvc      transaction.Service
	renderer      *receipt.Renderer
}

func NewTransactionHandler(ledgerService ledger.Service, querySvc transaction.Service, renderer *receipt.Renderer) *TransactionHandler {
	return &TransactionHandler{
		ledgerService: ledgerService,
		querySvc:      querySvc,
		renderer:      renderer,
	}
}

// Transfer moves money to another wallet.
func (h *TransactionHandler) Transfer(c *fiber.Ctx) error {
	claims, err := utils.GetUserClaims(c)
	if err != nil {
		return response.Unauthorized(c)
	}

	var input struct {
		RecipientWalletID string  `json:"recipientWalletId"`
		Amount            float64 `json:"amount"`
		Note              string  `json:"note"`
	}
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	v := validation.New()
	v.Transfer(input.RecipientWalletID, input.Amount, input.Note)
	if !v.Valid() {
		return response.ValidationError(c, v.Summary())
	}

	result, err := h.ledgerService.Transfer(c.Context(), claims.UserID,
		input.RecipientWalletID, input.Amount, input.Note, c.Get("Idempotency-Key"))
	if err != nil {
		return response.Domain(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(result)
}

// TopUp credits the caller's wallet, optionally funded by card.
func (h *TransactionHandler) TopUp(c *fiber.Ctx) error {
	claims, err := utils.GetUserClaims(c)
	if err != nil {
		return response.Unauthorized(c)
	}

	var input struct {
		Amount    float64 `json:"amount"`
		CardToken string  `json:"cardToken"`
	}
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	v := validation.New()
	v.TopUp(input.Amount)
	if !v.Valid() {
		return response.ValidationError(c, v.Summary())
	}

	result, err := h.ledgerService.TopUp(c.Context(), claims.UserID, input.Amount, input.CardToken)
	if err != nil {
		return response.Domain(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(result)
}

// Withdraw debits the caller's wallet plus the withdrawal fee.
func (h *TransactionHandler) Withdraw(c *fiber.Ctx) error {
	claims, err := utils.GetUserClaims(c)
	if err != nil {
		return response.Unauthorized(c)
	}

	var input struct {
		Amount float64 `json:"amount"`
	}
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	result, err := h.ledgerService.Withdraw(c.Context(), claims.UserID, input.Amount)
	if err != nil {
		return response.Domain(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(result)
}

// GetHistory lists the caller's transactions, newest first.
func (h *TransactionHandler) GetHistory(c *fiber.Ctx) error {
	claims, err := utils.GetUserClaims(c)
	if err != nil {
		return response.Unauthorized(c)
	}

	p := pagination.ParseFromRequest(c)
	items, total, err := h.querySvc.GetHistory(c.Context(), claims.UserID, p.Limit, p.Offset)
	if err != nil {
		return response.Domain(c, err)
	}
	p.Total = total
	return c.JSON(pagination.Response(p, items))
}

// GetMonthlyStats aggregates one calendar month. Defaults to the current
// month when year/month are absent.
func (h *TransactionHandler) GetMonthlyStats(c *fiber.Ctx) error {
	claims, err := utils.GetUserClaims(c)
	if err != nil {
		return response.Unauthorized(c)
	}

	now := time.Now().UTC()
	year, _ := strconv.Atoi(c.Query("year", strconv.Itoa(now.Year())))
	month, _ := strconv.Atoi(c.Query("month", strconv.Itoa(int(now.Month()))))
	if month < 1 || month > 12 {
		return response.ValidationError(c, "month must be between 1 and 12")
	}

	stats, err := h.querySvc.GetMonthlyStats(c.Context(), claims.UserID, year, time.Month(month))
	if err != nil {
		return response.Domain(c, err)
	}
	return c.JSON(stats)
}

// Export streams the caller's transactions as JSON or CSV.
func (h *TransactionHandler) Export(c *fiber.Ctx) error {
	claims, err := utils.GetUserClaims(c)
	if err != nil {
		return response.Unauthorized(c)
	}

	from, err := parseDate(c.Query("from"))
	if err != nil {
		return response.ValidationError(c, "from must be a date (YYYY-MM-DD)")
	}
	to, err := parseDate(c.Query("to"))
	if err != nil {
		return response.ValidationError(c, "to must be a date (YYYY-MM-DD)")
	}

	opts := transaction.ExportOptions{
		From:   from,
		To:     to.AddDate(0, 0, 1), // include the whole "to" day
		Type:   c.Query("type"),
		Format: c.Query("format", transaction.FormatJSON),
	}
	data, contentType, err := h.querySvc.Export(c.Context(), claims.UserID, opts)
	if err != nil {
		return response.Domain(c, err)
	}

	c.Set(fiber.HeaderContentType, contentType)
	if opts.Format == transaction.FormatCSV {
		c.Set(fiber.HeaderContentDisposition, `attachment; filename="transactions.csv"`)
	}
	return c.Send(data)
}

// GetReceipt renders a receipt as json, html or pdf.
func (h *TransactionHandler) GetReceipt(c *fiber.Ctx) error {
	claims, err := utils.GetUserClaims(c)
	if err != nil {
		return response.Unauthorized(c)
	}

	data, err := h.querySvc.GetReceipt(c.Context(), claims.UserID, c.Params("reference"))
	if err != nil {
		return response.Domain(c, err)
	}

	rendered, contentType, err := h.renderer.Render(data, c.Query("format", receipt.FormatJSON))
	if err != nil {
		return response.Domain(c, err)
	}
	c.Set(fiber.HeaderContentType, contentType)
	return c.Send(rendered)
}

// GetDetails returns one transaction from the caller's perspective.
func (h *TransactionHandler) GetDetails(c *fiber.Ctx) error {
	claims, err := utils.GetUserClaims(c)
	if err != nil {
		return response.Unauthorized(c)
	}

	item, err := h.querySvc.GetDetails(c.Context(), claims.UserID, c.Params("reference"))
	if err != nil {
		return response.Domain(c, err)
	}
	return c.JSON(item)
}

// Cancel voids a still-pending payment.
func (h *TransactionHandler) Cancel(c *fiber.Ctx) error {
	claims, err := utils.GetUserClaims(c)
	if err != nil {
		return response.Unauthorized(c)
	}

	if err := h.ledgerService.Cancel(c.Context(), claims.UserID, c.Params("reference")); err != nil {
		return response.Domain(c, err)
	}
	return response.Success(c, "Transaction cancelled", nil)
}

func parseDate(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}
