package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/lumina-inventario/internal/application/dto"
	"github.com/jhoicas/lumina-inventario/internal/domain"
)

// Códigos de error de la API.
const (
	CodeValidation        = "VALIDATION"
	CodeInvalidBody       = "INVALID_BODY"
	CodeNotFound          = "NOT_FOUND"
	CodeInsufficientStock = "INSUFFICIENT_STOCK"
	CodeStorage           = "STORAGE_ERROR"
	CodePartialFailure    = "PARTIAL_FAILURE"
	CodeUnauthorized      = "UNAUTHORIZED"
	CodeForbidden         = "FORBIDDEN"
	CodeDuplicate         = "DUPLICATE"
	CodeEmailExists       = "EMAIL_EXISTS"
	CodeImmutableField    = "IMMUTABLE_FIELD"
	CodeInternal          = "INTERNAL"
)

const partialFailureMessage = "La operación quedó aplicada parcialmente. Verifique manualmente el stock o la cuenta afectada antes de reintentar."

// userMessager errores que traen un mensaje del servidor remoto para mostrar sin adornos.
type userMessager interface {
	UserMessage() string
}

// writeError traduce un error de dominio a status y cuerpo. El mensaje del servidor pasa tal cual.
func writeError(c *fiber.Ctx, err error) error {
	status, body := errorResponse(err)
	return c.Status(status).JSON(body)
}

func errorResponse(err error) (int, dto.ErrorResponse) {
	var ve *domain.ValidationError
	var ise *domain.InsufficientStockError
	var pfe *domain.PartialFailureError

	switch {
	case errors.As(err, &ve):
		fields := make(map[string]any, len(ve.Fields))
		for k, v := range ve.Fields {
			fields[k] = v
		}
		return fiber.StatusBadRequest, dto.ErrorResponse{
			Code: CodeValidation, Message: ve.Error(), Details: map[string]any{"fields": fields},
		}
	case errors.As(err, &ise):
		return fiber.StatusConflict, dto.ErrorResponse{
			Code: CodeInsufficientStock, Message: ise.Error(),
			Details: map[string]any{"available": ise.Available, "requested": ise.Requested},
		}
	case errors.As(err, &pfe):
		return fiber.StatusInternalServerError, dto.ErrorResponse{
			Code: CodePartialFailure, Message: partialFailureMessage,
			Details: map[string]any{"operation": pfe.Op, "cause": pfe.Error()},
		}
	case errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest, dto.ErrorResponse{Code: CodeValidation, Message: err.Error()}
	case errors.Is(err, domain.ErrImmutableField):
		return fiber.StatusBadRequest, dto.ErrorResponse{Code: CodeImmutableField, Message: err.Error()}
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrUserNotFound):
		return fiber.StatusNotFound, dto.ErrorResponse{Code: CodeNotFound, Message: err.Error()}
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		return fiber.StatusConflict, dto.ErrorResponse{Code: CodeEmailExists, Message: err.Error()}
	case errors.Is(err, domain.ErrDuplicate):
		return fiber.StatusConflict, dto.ErrorResponse{Code: CodeDuplicate, Message: err.Error()}
	case errors.Is(err, domain.ErrUnauthorized):
		return fiber.StatusUnauthorized, dto.ErrorResponse{Code: CodeUnauthorized, Message: "sesión inválida o expirada"}
	case errors.Is(err, domain.ErrForbidden):
		return fiber.StatusForbidden, dto.ErrorResponse{Code: CodeForbidden, Message: err.Error()}
	case errors.Is(err, domain.ErrStorage):
		msg := err.Error()
		var um userMessager
		if errors.As(err, &um) {
			msg = um.UserMessage()
		}
		return fiber.StatusBadGateway, dto.ErrorResponse{Code: CodeStorage, Message: msg}
	}
	return fiber.StatusInternalServerError, dto.ErrorResponse{Code: CodeInternal, Message: "error interno del servidor"}
}

// ErrorHandler handler de errores de Fiber: errores de ruteo con su status, el resto por writeError.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return c.Status(fe.Code).JSON(dto.ErrorResponse{Code: statusCode(fe.Code), Message: fe.Message})
	}
	return writeError(c, err)
}

func statusCode(status int) string {
	switch status {
	case fiber.StatusNotFound:
		return CodeNotFound
	case fiber.StatusUnauthorized:
		return CodeUnauthorized
	case fiber.StatusForbidden:
		return CodeForbidden
	case fiber.StatusBadRequest:
		return CodeValidation
	}
	return CodeInternal
}

func invalidBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: CodeInvalidBody, Message: "cuerpo inválido"})
}
