package handlers_fiber

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"participium/internal/entities"
	"participium/internal/transport/http/dto"
	"participium/internal/transport/http/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

const (
	codeInvalidArgument = "INVALID_ARGUMENT"
	codeStaffExists     = "STAFF_EXISTS"
	codeImageNotFound   = "IMAGE_NOT_FOUND"
	codeInternal        = "INTERNAL"
	codeUnauthenticated = "UNAUTHENTICATED"
)

var kindStatus = map[entities.ErrorKind]int{
	entities.KindTitleRequired:           http.StatusBadRequest,
	entities.KindDescriptionRequired:     http.StatusBadRequest,
	entities.KindCategoryRequired:        http.StatusBadRequest,
	entities.KindInvalidCategory:         http.StatusBadRequest,
	entities.KindCoordinatesRequired:     http.StatusBadRequest,
	entities.KindPhotosRequired:          http.StatusBadRequest,
	entities.KindTooManyPhotos:           http.StatusBadRequest,
	entities.KindInvalidStatus:           http.StatusBadRequest,
	entities.KindRejectionReasonRequired: http.StatusBadRequest,
	entities.KindNotFound:                http.StatusNotFound,
	entities.KindNotAuthorized:           http.StatusForbidden,
	entities.KindNotAssigned:             http.StatusForbidden,
	entities.KindRoleNotPermitted:        http.StatusForbidden,
	entities.KindInvalidAuthorType:       http.StatusForbidden,
	entities.KindInvalidTransition:       http.StatusConflict,
	entities.KindReportResolved:          http.StatusConflict,
	entities.KindNoOfficerAvailable:      http.StatusUnprocessableEntity,
	entities.KindNoMaintainersAvailable:  http.StatusUnprocessableEntity,
}

func (h *Handler) writeError(c *fiber.Ctx, err error) error {
	if e, ok := entities.AsError(err); ok {
		status, known := kindStatus[e.Kind]
		if !known {
			status = http.StatusInternalServerError
		}
		return c.Status(status).JSON(engineErrorResponse(e))
	}

	status := http.StatusInternalServerError
	code := codeInternal
	msg := "internal error"

	switch {
	case errors.Is(err, entities.ErrInvalidArgument):
		status = http.StatusBadRequest
		code = codeInvalidArgument
		msg = err.Error()
	case errors.Is(err, entities.ErrStaffExists):
		status = http.StatusConflict
		code = codeStaffExists
		msg = "username already exists"
	case errors.Is(err, errUnauthenticated):
		status = http.StatusUnauthorized
		code = codeUnauthenticated
		msg = err.Error()
	case errors.Is(err, entities.ErrImageNotFound):
		status = http.StatusNotFound
		code = codeImageNotFound
		msg = "photo not found"
	default:
		h.log.Errorw("request failed", "path", c.Path(), "err", err)
	}

	return c.Status(status).JSON(errorResponse(code, msg))
}

func engineErrorResponse(e *entities.Error) dto.ErrorResponse {
	body := dto.ErrorBody{
		Code:          string(e.Kind),
		Message:       e.Error(),
		CurrentStatus: string(e.Status),
		Office:        e.Office,
		Category:      string(e.Category),
	}
	for _, v := range e.ValidCategories {
		body.ValidCategories = append(body.ValidCategories, string(v))
	}
	return dto.ErrorResponse{Error: body}
}

func errorResponse(code, msg string) dto.ErrorResponse {
	return dto.ErrorResponse{Error: dto.ErrorBody{Code: code, Message: msg}}
}

// bind decodes the JSON body into dst and checks its shape.
func (h *Handler) bind(c *fiber.Ctx, dst any) error {
	if err := c.BodyParser(dst); err != nil {
		return fmt.Errorf("%w: invalid body", entities.ErrInvalidArgument)
	}
	if err := h.validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return fmt.Errorf("%w: %v", entities.ErrInvalidArgument, err)
		}
		fields := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, fmt.Sprintf("%s (%s)", strings.ToLower(fe.Field()), fe.Tag()))
		}
		return fmt.Errorf("%w: invalid fields: %s", entities.ErrInvalidArgument, strings.Join(fields, ", "))
	}
	return nil
}

func paramID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: report id must be a positive integer", entities.ErrInvalidArgument)
	}
	return id, nil
}

func queryInt64(c *fiber.Ctx, name string) (*int64, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: %s must be an integer", entities.ErrInvalidArgument, name)
	}
	return &v, nil
}

func principal(c *fiber.Ctx) (middleware.Principal, error) {
	p, ok := middleware.PrincipalFrom(c)
	if !ok {
		return middleware.Principal{}, errUnauthenticated
	}
	return p, nil
}

var errUnauthenticated = errors.New("bearer token required")
