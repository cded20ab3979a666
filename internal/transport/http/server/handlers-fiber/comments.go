package handlers_fiber

import (
	"net/http"

	"participium/internal/mapper"
	"participium/internal/transport/http/dto"

	"github.com/gofiber/fiber/v2"
)

// PostComment adds an internal comment to a report.
func (h *Handler) PostComment(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return h.writeError(c, err)
	}
	id, err := paramID(c)
	if err != nil {
		return h.writeError(c, err)
	}
	var body dto.CommentRequest
	if err := h.bind(c, &body); err != nil {
		return h.writeError(c, err)
	}
	comment, err := h.uc.PostComment(c.Context(), id, p.Actor(), body.Content)
	if err != nil {
		return h.writeError(c, err)
	}
	return c.Status(http.StatusCreated).JSON(mapper.ToComment(*comment))
}

// ListComments returns the internal comments of a report.
func (h *Handler) ListComments(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return h.writeError(c, err)
	}
	id, err := paramID(c)
	if err != nil {
		return h.writeError(c, err)
	}
	comments, err := h.uc.ListComments(c.Context(), id, p.Actor())
	if err != nil {
		return h.writeError(c, err)
	}
	return c.Status(http.StatusOK).JSON(mapper.ToComments(comments))
}
