package handlers_fiber

import (
	"fmt"
	"net/http"
	"strings"

	"participium/internal/entities"
	"participium/internal/mapper"
	"participium/internal/transport/http/dto"
	"participium/internal/transport/http/middleware"

	"github.com/gofiber/fiber/v2"
)

// CreateReport stores a citizen submission pending approval.
func (h *Handler) CreateReport(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return h.writeError(c, err)
	}
	var body dto.CreateReportRequest
	if err := h.bind(c, &body); err != nil {
		return h.writeError(c, err)
	}

	report, err := h.uc.CreateReport(c.Context(), p.UserID, mapper.FromCreateReport(body))
	if err != nil {
		return h.writeError(c, err)
	}
	return c.Status(http.StatusCreated).JSON(mapper.ToReport(*report, true))
}

// GetReport returns a single report.
func (h *Handler) GetReport(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return h.writeError(c, err)
	}
	id, err := paramID(c)
	if err != nil {
		return h.writeError(c, err)
	}
	report, err := h.uc.GetReport(c.Context(), id)
	if err != nil {
		return h.writeError(c, err)
	}
	return c.Status(http.StatusOK).JSON(mapper.ToReport(*report, canSeeSubmitter(p, *report)))
}

// ListReports returns reports filtered by query parameters.
func (h *Handler) ListReports(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return h.writeError(c, err)
	}
	filter, err := reportFilter(c)
	if err != nil {
		return h.writeError(c, err)
	}
	reports, err := h.uc.ListReports(c.Context(), filter)
	if err != nil {
		return h.writeError(c, err)
	}
	return c.Status(http.StatusOK).JSON(mapper.ToReports(reports, func(r entities.Report) bool {
		return canSeeSubmitter(p, r)
	}))
}

// OfficerQueue returns the reports assigned to the calling officer.
func (h *Handler) OfficerQueue(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return h.writeError(c, err)
	}
	reports, err := h.uc.OfficerQueue(c.Context(), p.UserID)
	if err != nil {
		return h.writeError(c, err)
	}
	return c.Status(http.StatusOK).JSON(mapper.ToReports(reports, func(r entities.Report) bool {
		return canSeeSubmitter(p, r)
	}))
}

// MaintainerQueue returns the reports delegated to the calling maintainer.
func (h *Handler) MaintainerQueue(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return h.writeError(c, err)
	}
	reports, err := h.uc.MaintainerQueue(c.Context(), p.UserID)
	if err != nil {
		return h.writeError(c, err)
	}
	return c.Status(http.StatusOK).JSON(mapper.ToReports(reports, func(r entities.Report) bool {
		return canSeeSubmitter(p, r)
	}))
}

// ApproveReport assigns a pending report to an officer.
func (h *Handler) ApproveReport(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return h.writeError(c, err)
	}
	report, err := h.uc.ApproveReport(c.Context(), id)
	if err != nil {
		return h.writeError(c, err)
	}
	return c.Status(http.StatusOK).JSON(mapper.ToReport(*report, true))
}

// RejectReport rejects a pending report.
func (h *Handler) RejectReport(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return h.writeError(c, err)
	}
	var body dto.RejectRequest
	if err := h.bind(c, &body); err != nil {
		return h.writeError(c, err)
	}
	report, err := h.uc.RejectReport(c.Context(), id, body.Reason)
	if err != nil {
		return h.writeError(c, err)
	}
	return c.Status(http.StatusOK).JSON(mapper.ToReport(*report, true))
}

// DelegateReport hands an assigned report to an external maintainer.
func (h *Handler) DelegateReport(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return h.writeError(c, err)
	}
	report, err := h.uc.DelegateToMaintainer(c.Context(), id)
	if err != nil {
		return h.writeError(c, err)
	}
	return c.Status(http.StatusOK).JSON(mapper.ToReport(*report, true))
}

// AdvanceStatus applies a maintainer's progress update.
func (h *Handler) AdvanceStatus(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return h.writeError(c, err)
	}
	id, err := paramID(c)
	if err != nil {
		return h.writeError(c, err)
	}
	var body dto.StatusRequest
	if err := h.bind(c, &body); err != nil {
		return h.writeError(c, err)
	}
	report, err := h.uc.AdvanceMaintainerStatus(c.Context(), id, p.UserID, body.Status)
	if err != nil {
		return h.writeError(c, err)
	}
	return c.Status(http.StatusOK).JSON(mapper.ToReport(*report, false))
}

func reportFilter(c *fiber.Ctx) (entities.ReportFilter, error) {
	var filter entities.ReportFilter
	if raw := strings.TrimSpace(c.Query("status")); raw != "" {
		st, ok := entities.ParseReportStatus(strings.ToUpper(raw))
		if !ok {
			return filter, fmt.Errorf("%w: unknown status %q", entities.ErrInvalidArgument, raw)
		}
		filter.Status = &st
	}
	if raw := strings.TrimSpace(c.Query("category")); raw != "" {
		cat := entities.Category(raw)
		if !cat.Valid() {
			return filter, entities.InvalidCategory(entities.Categories())
		}
		filter.Category = &cat
	}
	var err error
	if filter.OfficerID, err = queryInt64(c, "officer_id"); err != nil {
		return filter, err
	}
	if filter.MaintainerID, err = queryInt64(c, "maintainer_id"); err != nil {
		return filter, err
	}
	filter.Limit = c.QueryInt("limit", 0)
	filter.Offset = c.QueryInt("offset", 0)
	return filter, nil
}

// canSeeSubmitter reveals anonymous submitters to staff and to the submitter.
func canSeeSubmitter(p middleware.Principal, r entities.Report) bool {
	switch p.Role {
	case entities.ActorMunicipality, entities.ActorAdmin:
		return true
	case entities.ActorCitizen:
		return p.UserID == r.SubmitterID
	default:
		return false
	}
}
