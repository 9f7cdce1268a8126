package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/lumina-inventario/internal/application/dto"
	"github.com/jhoicas/lumina-inventario/internal/application/inventory"
	"github.com/jhoicas/lumina-inventario/internal/application/usecase"
)

// InventoryHandler entradas, salidas e historial de movimientos.
type InventoryHandler struct {
	recorder *inventory.MovementRecorder
	history  *usecase.HistoryUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(recorder *inventory.MovementRecorder, history *usecase.HistoryUseCase) *InventoryHandler {
	return &InventoryHandler{recorder: recorder, history: history}
}

// RecordMovement godoc
// @Summary      Registrar entrada o salida
// @Description  Actualiza el stock y agrega el registro de historial como una sola operación.
// @Description  Las salidas requieren destino y no pueden superar el stock disponible.
// @Tags         movements
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RecordMovementRequest  true  "product_id, direction (in|out), quantity, invoice_number o destination"
// @Success      201   {object}  dto.RecordMovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Failure      502   {object}  dto.ErrorResponse
// @Router       /api/movements [post]
func (h *InventoryHandler) RecordMovement(c *fiber.Ctx) error {
	var in dto.RecordMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if err := dto.Validate(&in); err != nil {
		return writeError(c, err)
	}
	res, err := h.recorder.Record(c.UserContext(), inventory.RecordInput{
		ProductID: in.ProductID,
		Direction: inventory.Direction(in.Direction),
		Quantity:  in.Quantity,
		Detail:    in.Detail(),
		UserName:  userName(c),
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.RecordMovementResponse{
		Product:  dto.NewProductResponse(res.Product),
		Movement: dto.NewMovementResponse(res.Movement),
	})
}

// History godoc
// @Summary      Historial de movimientos
// @Description  Más recientes primero salvo otro orden. La búsqueda cubre producto, usuario y detalles.
// @Tags         history
// @Security     Bearer
// @Produce      json
// @Param        page       query  int     false  "Página (desde 1)"
// @Param        page_size  query  int     false  "Tamaño de página (máx 100)"
// @Param        search     query  string  false  "Texto a buscar"
// @Param        sort       query  string  false  "id, product_name o quantity"
// @Param        order      query  string  false  "asc o desc"
// @Param        action     query  string  false  "all, Entrada o Salida"
// @Success      200  {object}  dto.HistoryListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/history [get]
func (h *InventoryHandler) History(c *fiber.Ctx) error {
	var q dto.HistoryQuery
	if err := parseQuery(c, &q); err != nil {
		return writeError(c, err)
	}
	res, err := h.history.List(c.UserContext(), q.ToQuery(), q.ActionFilter())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.HistoryListResponse{
		Items: dto.NewMovementResponses(res.Rows),
		Page:  dto.NewPageResponse(res),
	})
}

// Metrics godoc
// @Summary      Métricas del historial
// @Description  Movimientos de hoy y totales de entradas y salidas para el filtro de acción.
// @Tags         history
// @Security     Bearer
// @Produce      json
// @Param        action  query  string  false  "all, Entrada o Salida"
// @Success      200  {object}  dto.HistoryMetricsResponse
// @Router       /api/history/metrics [get]
func (h *InventoryHandler) Metrics(c *fiber.Ctx) error {
	var q dto.HistoryQuery
	if err := parseQuery(c, &q); err != nil {
		return writeError(c, err)
	}
	t, err := h.history.Metrics(c.UserContext(), q.ActionFilter())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.HistoryMetricsResponse{
		TodayMovements: t.Today,
		TotalEntries:   t.Entries,
		TotalExits:     t.Exits,
	})
}

// Export godoc
// @Summary      Exportar historial a Excel
// @Tags         history
// @Security     Bearer
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        action  query  string  false  "all, Entrada o Salida"
// @Success      200  {file}  binary
// @Router       /api/history/export [get]
func (h *InventoryHandler) Export(c *fiber.Ctx) error {
	var q dto.HistoryQuery
	if err := parseQuery(c, &q); err != nil {
		return writeError(c, err)
	}
	f, err := h.history.Export(c.UserContext(), q.ActionFilter())
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, f.ContentType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+f.Name+`"`)
	c.Set("X-Export-Rows", strconv.Itoa(f.Rows))
	return c.Send(f.Data)
}
