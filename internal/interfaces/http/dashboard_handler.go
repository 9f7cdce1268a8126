package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/lumina-inventario/internal/application/analytics"
	"github.com/jhoicas/lumina-inventario/internal/application/dto"
	"github.com/jhoicas/lumina-inventario/internal/application/inventory"
	"github.com/jhoicas/lumina-inventario/internal/application/usecase"
)

// DashboardHandler resumen, notificaciones y reporte PDF.
type DashboardHandler struct {
	uc      *appanalytics.DashboardUseCase
	center  *inventory.NotificationCenter
	reports *usecase.ReportUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase, center *inventory.NotificationCenter, reports *usecase.ReportUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc, center: center, reports: reports}
}

// GetSummary godoc
// @Summary      Resumen del inventario
// @Description  Conteos por estado, totales mensuales de los últimos 6 meses y top 5 productos por entradas y salidas.
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DashboardResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/dashboard [get]
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Notifications godoc
// @Summary      Alertas de stock
// @Tags         notifications
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.NotificationListResponse
// @Router       /api/notifications [get]
func (h *DashboardHandler) Notifications(c *fiber.Ctx) error {
	uid := GetUserID(c)
	return c.JSON(dto.NotificationListResponse{
		Items:  h.center.List(uid),
		Unread: h.center.Unread(uid),
	})
}

// MarkRead godoc
// @Summary      Marcar alerta como leída
// @Tags         notifications
// @Security     Bearer
// @Param        id   path  string  true  "ID de la alerta"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/notifications/{id}/read [post]
func (h *DashboardHandler) MarkRead(c *fiber.Ctx) error {
	if !h.center.MarkRead(GetUserID(c), c.Params("id")) {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: CodeNotFound, Message: "alerta no encontrada"})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// MarkAllRead godoc
// @Summary      Marcar todas las alertas como leídas
// @Tags         notifications
// @Security     Bearer
// @Success      204
// @Router       /api/notifications/read-all [post]
func (h *DashboardHandler) MarkAllRead(c *fiber.Ctx) error {
	h.center.MarkAllRead(GetUserID(c))
	return c.SendStatus(fiber.StatusNoContent)
}

// StockReport godoc
// @Summary      Reporte de stock en PDF
// @Tags         reports
// @Security     Bearer
// @Produce      application/pdf
// @Success      200  {file}  binary
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/reports/stock.pdf [get]
func (h *DashboardHandler) StockReport(c *fiber.Ctx) error {
	data, err := h.reports.StockPDF(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+usecase.StockReportFileName+`"`)
	return c.Send(data)
}
