package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/lumina-inventario/internal/application/dto"
	"github.com/jhoicas/lumina-inventario/internal/application/usecase"
)

// UserHandler administración de cuentas (solo admin).
type UserHandler struct {
	uc *usecase.UserUseCase
}

// NewUserHandler construye el handler.
func NewUserHandler(uc *usecase.UserUseCase) *UserHandler {
	return &UserHandler{uc: uc}
}

// List godoc
// @Summary      Listar usuarios
// @Tags         users
// @Security     Bearer
// @Produce      json
// @Param        page       query  int     false  "Página (desde 1)"
// @Param        page_size  query  int     false  "Tamaño de página (máx 100)"
// @Param        search     query  string  false  "Email o nombre"
// @Success      200  {object}  dto.UserListResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/users [get]
func (h *UserHandler) List(c *fiber.Ctx) error {
	var q dto.PageQuery
	if err := parseQuery(c, &q); err != nil {
		return writeError(c, err)
	}
	res, err := h.uc.List(c.UserContext(), q.ToQuery())
	if err != nil {
		return writeError(c, err)
	}
	items := make([]dto.UserResponse, 0, len(res.Rows))
	for _, u := range res.Rows {
		items = append(items, dto.NewUserResponse(u))
	}
	return c.JSON(dto.UserListResponse{Items: items, Page: dto.NewPageResponse(res)})
}

// Create godoc
// @Summary      Crear usuario
// @Tags         users
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateUserRequest  true  "email, password, display_name, role"
// @Success      201   {object}  dto.UserResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      502   {object}  dto.ErrorResponse
// @Router       /api/users [post]
func (h *UserHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateUserRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	u, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewUserResponse(u))
}

// Update godoc
// @Summary      Actualizar rol y nombre
// @Description  El rol se aplica primero. Si el nombre falla la respuesta es 200 con warning.
// @Tags         users
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "ID del usuario"
// @Param        body  body  dto.UpdateUserRequest  true  "display_name, role"
// @Success      200   {object}  dto.UpdateUserResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/users/{id} [put]
func (h *UserHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateUserRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	res, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.UpdateUserResponse{
		User:        dto.NewUserResponse(res.User),
		RoleUpdated: res.RoleUpdated,
		NameUpdated: res.NameUpdated,
		Warning:     res.Warning,
	})
}

// SetActive godoc
// @Summary      Activar o desactivar cuenta
// @Tags         users
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                true  "ID del usuario"
// @Param        body  body  dto.SetActiveRequest  true  "is_active"
// @Success      200   {object}  dto.UserResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/users/{id}/active [put]
func (h *UserHandler) SetActive(c *fiber.Ctx) error {
	var in dto.SetActiveRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if err := dto.Validate(&in); err != nil {
		return writeError(c, err)
	}
	u, err := h.uc.SetActive(c.UserContext(), GetUserID(c), c.Params("id"), *in.IsActive)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewUserResponse(u))
}

// ResetPassword godoc
// @Summary      Restablecer contraseña
// @Description  Sin password se genera una de 12 caracteres que solo se devuelve en esta respuesta.
// @Tags         users
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                    true  "ID del usuario"
// @Param        body  body  dto.ResetPasswordRequest  false "password opcional"
// @Success      200   {object}  dto.ResetPasswordResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/users/{id}/reset-password [post]
func (h *UserHandler) ResetPassword(c *fiber.Ctx) error {
	var in dto.ResetPasswordRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return invalidBody(c)
		}
	}
	generated, err := h.uc.ResetPassword(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.ResetPasswordResponse{Message: "contraseña actualizada", Password: generated})
}
