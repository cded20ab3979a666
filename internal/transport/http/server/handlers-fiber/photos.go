package handlers_fiber

import (
	"fmt"
	"io"
	"net/http"

	"participium/internal/entities"
	"participium/internal/transport/http/dto"

	"github.com/gofiber/fiber/v2"
)

// UploadPhoto stores the multipart "photo" field and returns its key.
func (h *Handler) UploadPhoto(c *fiber.Ctx) error {
	fh, err := c.FormFile("photo")
	if err != nil {
		return h.writeError(c, fmt.Errorf("%w: multipart field photo is required", entities.ErrInvalidArgument))
	}
	if h.maxPhoto > 0 && fh.Size > h.maxPhoto {
		return h.writeError(c, fmt.Errorf("%w: photo exceeds %d bytes", entities.ErrInvalidArgument, h.maxPhoto))
	}
	f, err := fh.Open()
	if err != nil {
		return h.writeError(c, fmt.Errorf("open upload: %w", err))
	}
	defer func() { _ = f.Close() }()

	data, err := io.ReadAll(f)
	if err != nil {
		return h.writeError(c, fmt.Errorf("read upload: %w", err))
	}

	key, err := h.uc.UploadPhoto(c.Context(), data, http.DetectContentType(data))
	if err != nil {
		return h.writeError(c, err)
	}
	return c.Status(http.StatusCreated).JSON(dto.Photo{Key: key})
}

// GetPhoto streams a stored photo.
func (h *Handler) GetPhoto(c *fiber.Ctx) error {
	img, err := h.uc.Photo(c.Context(), c.Params("key"))
	if err != nil {
		return h.writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, img.ContentType)
	c.Set(fiber.HeaderCacheControl, "private, max-age=86400")
	return c.Status(http.StatusOK).Send(img.Data)
}
