package handlers_fiber

import (
	"net/http"

	"participium/internal/entities"
	"participium/internal/mapper"
	"participium/internal/transport/http/dto"

	"github.com/gofiber/fiber/v2"
)

// CreateOfficer provisions a municipal officer.
func (h *Handler) CreateOfficer(c *fiber.Ctx) error {
	var body dto.CreateOfficerRequest
	if err := h.bind(c, &body); err != nil {
		return h.writeError(c, err)
	}
	officer, err := h.uc.CreateOfficer(c.Context(), entities.Officer{Username: body.Username, Office: body.Office})
	if err != nil {
		return h.writeError(c, err)
	}
	return c.Status(http.StatusCreated).JSON(mapper.ToOfficer(*officer))
}

// CreateMaintainer provisions an external maintainer.
func (h *Handler) CreateMaintainer(c *fiber.Ctx) error {
	var body dto.CreateMaintainerRequest
	if err := h.bind(c, &body); err != nil {
		return h.writeError(c, err)
	}
	m, err := h.uc.CreateMaintainer(c.Context(), mapper.FromCreateMaintainer(body))
	if err != nil {
		return h.writeError(c, err)
	}
	return c.Status(http.StatusCreated).JSON(mapper.ToMaintainer(*m))
}

// WorkloadStats returns active report counts.
func (h *Handler) WorkloadStats(c *fiber.Ctx) error {
	stats, err := h.uc.WorkloadStats(c.Context())
	if err != nil {
		return h.writeError(c, err)
	}
	return c.Status(http.StatusOK).JSON(stats)
}
