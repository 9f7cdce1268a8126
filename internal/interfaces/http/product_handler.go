package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/lumina-inventario/internal/application/dto"
	"github.com/jhoicas/lumina-inventario/internal/application/inventory"
	"github.com/jhoicas/lumina-inventario/internal/application/usecase"
	"github.com/jhoicas/lumina-inventario/internal/domain"
)

// ProductHandler catálogo de productos.
type ProductHandler struct {
	uc       *usecase.ProductUseCase
	recorder *inventory.MovementRecorder
}

// NewProductHandler construye el handler.
func NewProductHandler(uc *usecase.ProductUseCase, recorder *inventory.MovementRecorder) *ProductHandler {
	return &ProductHandler{uc: uc, recorder: recorder}
}

// List godoc
// @Summary      Listar productos
// @Description  Búsqueda por nombre o categoría, orden y paginación. in_stock=true deja solo productos con stock.
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        page       query  int     false  "Página (desde 1)"
// @Param        page_size  query  int     false  "Tamaño de página (máx 100)"
// @Param        search     query  string  false  "Texto a buscar"
// @Param        sort       query  string  false  "created_at, name, category, stock, id"
// @Param        order      query  string  false  "asc o desc"
// @Param        in_stock   query  bool    false  "Solo con stock"
// @Success      200  {object}  dto.ProductListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/products [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	var q dto.ProductListQuery
	if err := parseQuery(c, &q); err != nil {
		return writeError(c, err)
	}
	res, err := h.uc.List(c.UserContext(), q.ToQuery(), q.InStock)
	if err != nil {
		return writeError(c, err)
	}
	items := make([]dto.ProductResponse, 0, len(res.Rows))
	for _, p := range res.Rows {
		items = append(items, dto.NewProductResponse(p))
	}
	return c.JSON(dto.ProductListResponse{Items: items, Page: dto.NewPageResponse(res)})
}

// Suggest godoc
// @Summary      Sugerencias de búsqueda
// @Description  Hasta 5 productos; con menos de 2 caracteres devuelve una lista vacía.
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        q    query  string  true  "Texto"
// @Success      200  {array}  dto.SuggestionResponse
// @Router       /api/products/suggest [get]
func (h *ProductHandler) Suggest(c *fiber.Ctx) error {
	rows, err := h.uc.Suggest(c.UserContext(), c.Query("q"))
	if err != nil {
		return writeError(c, err)
	}
	out := make([]dto.SuggestionResponse, 0, len(rows))
	for _, p := range rows {
		out = append(out, dto.SuggestionResponse{ID: p.ID, Name: p.Name, Category: p.Category})
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener producto por ID
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del producto"
// @Success      200  {object}  dto.ProductResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [get]
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
	id, err := productID(c)
	if err != nil {
		return writeError(c, err)
	}
	p, err := h.uc.Get(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewProductResponse(p))
}

// Create godoc
// @Summary      Crear producto
// @Description  Con stock inicial mayor a cero registra una Entrada "Creación de producto".
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProductRequest  true  "Datos del producto"
// @Success      201   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/products [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	p, err := h.uc.Create(c.UserContext(), in, userName(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewProductResponse(p))
}

// Update godoc
// @Summary      Actualizar producto
// @Description  Un cambio de stock registra el movimiento "Ajuste manual" correspondiente.
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                       true  "ID del producto"
// @Param        body  body  dto.UpdateProductRequest  true  "Datos del producto"
// @Success      200   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/products/{id} [put]
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	id, err := productID(c)
	if err != nil {
		return writeError(c, err)
	}
	var in dto.UpdateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	p, err := h.uc.Update(c.UserContext(), id, in, userName(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewProductResponse(p))
}

// Delete godoc
// @Summary      Eliminar producto
// @Tags         products
// @Security     Bearer
// @Param        id   path  int  true  "ID del producto"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [delete]
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	id, err := productID(c)
	if err != nil {
		return writeError(c, err)
	}
	if err := h.uc.Delete(c.UserContext(), id); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Recent godoc
// @Summary      Últimos movimientos de un producto
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        id         path   int     true   "ID del producto"
// @Param        direction  query  string  false  "in u out (por defecto in)"
// @Success      200  {array}  dto.MovementResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/products/{id}/movements [get]
func (h *ProductHandler) Recent(c *fiber.Ctx) error {
	id, err := productID(c)
	if err != nil {
		return writeError(c, err)
	}
	d := inventory.Direction(c.Query("direction", string(inventory.DirectionIn)))
	if d != inventory.DirectionIn && d != inventory.DirectionOut {
		return writeError(c, domain.NewValidationError("direction", "debe ser in u out"))
	}
	rows, err := h.recorder.Recent(c.UserContext(), id, d, inventory.DefaultRecentLimit)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewMovementResponses(rows))
}
