// Package handlers_fiber wires HTTP delivery components.
package handlers_fiber

import (
	"participium/internal/usecase"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// Handler serves the report lifecycle API on top of the usecase layer.
type Handler struct {
	log      *zap.SugaredLogger
	uc       usecase.InterfaceUsecase
	validate *validator.Validate
	maxPhoto int64
}

// NewHandler constructs an HTTP server with service dependencies.
// maxPhotoBytes bounds a single uploaded photo.
func NewHandler(log *zap.SugaredLogger, usecase usecase.InterfaceUsecase, maxPhotoBytes int64) *Handler {
	return &Handler{
		log:      log.Named("http"),
		uc:       usecase,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		maxPhoto: maxPhotoBytes,
	}
}
