package handlers

import (
	"strconv"
	"time"

	"fluidit/internal/services/tracker"
	"fluidit/internal/utils"
	"fluidit/internal/utils/pagination"
	"fluidit/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

type TrackerHandler struct {
	trackerService tracker.Service
}

func NewTrackerHandler(trackerService tracker.Service) *TrackerHandler {
	return &TrackerHandler{trackerService: trackerService}
}

// AddEntry records one expense or earning.
func (h *TrackerHandler) AddEntry(c *fiber.Ctx) error {
	claims, err := utils.GetUserClaims(c)
	if err != nil {
		return response.Unauthorized(c)
	}

	var input struct {
		Kind      string  `json:"kind"`
		Category  string  `json:"category"`
		Amount    float64 `json:"amount"`
		Note      string  `json:"note"`
		EntryDate string  `json:"entryDate"` // YYYY-MM-DD, optional
	}
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	var entryDate time.Time
	if input.EntryDate != "" {
		entryDate, err = time.Parse("2006-01-02", input.EntryDate)
		if err != nil {
			return response.ValidationError(c, "entryDate must be a date (YYYY-MM-DD)")
		}
	}

	entry, err := h.trackerService.AddEntry(c.Context(), claims.UserID,
		input.Kind, input.Category, input.Amount, input.Note, entryDate)
	if err != nil {
		return response.Domain(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(entry)
}

// ListEntries returns the caller's entries in a window.
func (h *TrackerHandler) ListEntries(c *fiber.Ctx) error {
	claims, err := utils.GetUserClaims(c)
	if err != nil {
		return response.Unauthorized(c)
	}

	from, to, err := parseWindow(c)
	if err != nil {
		return response.ValidationError(c, err.Error())
	}

	p := pagination.ParseFromRequest(c)
	entries, total, err := h.trackerService.ListEntries(c.Context(), claims.UserID,
		from, to, c.Query("kind"), p.Limit, p.Offset)
	if err != nil {
		return response.Domain(c, err)
	}
	p.Total = total
	return c.JSON(pagination.Response(p, entries))
}

// DeleteEntry removes one of the caller's entries.
func (h *TrackerHandler) DeleteEntry(c *fiber.Ctx) error {
	claims, err := utils.GetUserClaims(c)
	if err != nil {
		return response.Unauthorized(c)
	}

	entryID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid entry ID")
	}

	if err := h.trackerService.DeleteEntry(c.Context(), claims.UserID, uint(entryID)); err != nil {
		return response.Domain(c, err)
	}
	return response.Success(c, "Entry deleted", nil)
}

// Summary aggregates the window into earnings, expenses and net.
func (h *TrackerHandler) Summary(c *fiber.Ctx) error {
	claims, err := utils.GetUserClaims(c)
	if err != nil {
		return response.Unauthorized(c)
	}

	from, to, err := parseWindow(c)
	if err != nil {
		return response.ValidationError(c, err.Error())
	}

	summary, err := h.trackerService.Summary(c.Context(), claims.UserID, from, to)
	if err != nil {
		return response.Domain(c, err)
	}
	return c.JSON(summary)
}

func parseWindow(c *fiber.Ctx) (from, to time.Time, err error) {
	if s := c.Query("from"); s != "" {
		if from, err = time.Parse("2006-01-02", s); err != nil {
			return from, to, err
		}
	}
	if s := c.Query("to"); s != "" {
		if to, err = time.Parse("2006-01-02", s); err != nil {
			return from, to, err
		}
		to = to.AddDate(0, 0, 1)
	}
	return from, to, nil
}
