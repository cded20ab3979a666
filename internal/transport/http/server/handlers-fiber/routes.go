package handlers_fiber

import (
	"participium/internal/entities"
	"participium/internal/transport/http/middleware"

	"github.com/gofiber/fiber/v2"
)

// Register mounts the API under /api. auth must populate the request principal.
// Comment routes carry no role guard: the comment gate decides.
func (h *Handler) Register(app fiber.Router, auth fiber.Handler) {
	citizen := middleware.RequireRoles(entities.ActorCitizen)
	officer := middleware.RequireRoles(entities.ActorMunicipality)
	maintainer := middleware.RequireRoles(entities.ActorExternalMaintainer)
	admin := middleware.RequireRoles(entities.ActorAdmin)
	staff := middleware.RequireRoles(entities.ActorMunicipality, entities.ActorAdmin)

	api := app.Group("/api", auth)

	api.Post("/photos", citizen, h.UploadPhoto)
	api.Get("/photos/:key", h.GetPhoto)

	api.Post("/reports", citizen, h.CreateReport)
	api.Get("/reports", staff, h.ListReports)
	api.Get("/reports/:id", h.GetReport)
	api.Post("/reports/:id/approve", officer, h.ApproveReport)
	api.Post("/reports/:id/reject", officer, h.RejectReport)
	api.Post("/reports/:id/delegate", officer, h.DelegateReport)
	api.Post("/reports/:id/status", maintainer, h.AdvanceStatus)
	api.Post("/reports/:id/comments", h.PostComment)
	api.Get("/reports/:id/comments", h.ListComments)

	api.Get("/officer/reports", officer, h.OfficerQueue)
	api.Get("/maintainer/reports", maintainer, h.MaintainerQueue)

	api.Post("/admin/officers", admin, h.CreateOfficer)
	api.Post("/admin/maintainers", admin, h.CreateMaintainer)

	api.Get("/stats/workload", staff, h.WorkloadStats)
}
