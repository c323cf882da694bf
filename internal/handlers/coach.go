package handlers

import (
	"strconv"

	"fluidit/internal/services/coach"
	"fluidit/internal/utils"
	"fluidit/internal/utils/pagination"
	"fluidit/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

type CoachHandler struct {
	coachService coach.Service
}

func NewCoachHandler(coachService coach.Service) *CoachHandler {
	return &CoachHandler{coachService: coachService}
}

// Apply files a coach application for the caller.
func (h *CoachHandler) Apply(c *fiber.Ctx) error {
	claims, err := utils.GetUserClaims(c)
	if err != nil {
		return response.Unauthorized(c)
	}

	var input struct {
		Bio       string `json:"bio"`
		Specialty string `json:"specialty"`
	}
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	profile, err := h.coachService.Apply(c.Context(), claims.UserID, input.Bio, input.Specialty)
	if err != nil {
		return response.Domain(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(profile)
}

// GetApplication returns the caller's own application status.
func (h *CoachHandler) GetApplication(c *fiber.Ctx) error {
	claims, err := utils.GetUserClaims(c)
	if err != nil {
		return response.Unauthorized(c)
	}

	profile, err := h.coachService.GetApplication(c.Context(), claims.UserID)
	if err != nil {
		return response.Domain(c, err)
	}
	return c.JSON(profile)
}

// Review approves or rejects an application. Admin only.
func (h *CoachHandler) Review(c *fiber.Ctx) error {
	applicantID, err := strconv.ParseUint(c.Params("userId"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid user ID")
	}

	var input struct {
		Approve bool `json:"approve"`
	}
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	profile, err := h.coachService.Review(c.Context(), uint(applicantID), input.Approve)
	if err != nil {
		return response.Domain(c, err)
	}
	return c.JSON(profile)
}

// ListApproved is the public coach directory.
func (h *CoachHandler) ListApproved(c *fiber.Ctx) error {
	p := pagination.ParseFromRequest(c)
	entries, total, err := h.coachService.ListApproved(c.Context(), p.Limit, p.Offset)
	if err != nil {
		return response.Domain(c, err)
	}
	p.Total = total
	return c.JSON(pagination.Response(p, entries))
}
