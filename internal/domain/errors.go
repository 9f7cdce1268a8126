package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound              = errors.New("recurso no encontrado")
	ErrUserNotFound          = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists    = errors.New("el email ya está registrado")
	ErrInvalidInput          = errors.New("entrada inválida")
	ErrDuplicate             = errors.New("recurso duplicado")
	ErrUnauthorized          = errors.New("no autorizado")
	ErrForbidden             = errors.New("acceso denegado")
	ErrInsufficientStock     = errors.New("stock insuficiente")
	ErrStorage               = errors.New("error de almacenamiento")
	ErrPartialFailure        = errors.New("operación aplicada parcialmente")
	ErrImmutableField        = errors.New("el campo no puede modificarse")
	ErrPrivilegedUnavailable = errors.New("ruta privilegiada no disponible")
)

// ValidationError errores de validación por campo, previos a cualquier escritura.
type ValidationError struct {
	Fields map[string]string
}

// NewValidationError construye un ValidationError con un único campo.
func NewValidationError(field, msg string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: msg}}
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validación: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Is(target error) bool { return target == ErrInvalidInput }

// InsufficientStockError rechazo de negocio: la salida supera el stock disponible.
type InsufficientStockError struct {
	Available int
	Requested int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente. Disponible: %d", e.Available)
}

func (e *InsufficientStockError) Is(target error) bool { return target == ErrInsufficientStock }

// StorageError una escritura remota falló; no quedó estado parcial.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

func (e *StorageError) Is(target error) bool { return target == ErrStorage }

// PartialFailureError una operación de varios pasos quedó aplicada a medias.
// El usuario debe verificar el estado manualmente; reintentar podría duplicar el cambio.
type PartialFailureError struct {
	Op          string
	Cause       error
	RollbackErr error
}

func (e *PartialFailureError) Error() string {
	if e.RollbackErr != nil {
		return fmt.Sprintf("%s: %v (la reversión también falló: %v)", e.Op, e.Cause, e.RollbackErr)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Cause)
}

func (e *PartialFailureError) Unwrap() []error {
	return []error{e.Cause, e.RollbackErr}
}

func (e *PartialFailureError) Is(target error) bool { return target == ErrPartialFailure }

// domainSentinels errores que cruzan capas sin envolverse como StorageError.
var domainSentinels = []error{
	ErrNotFound, ErrUserNotFound, ErrInvalidInput, ErrInsufficientStock, ErrStorage,
	ErrPartialFailure, ErrDuplicate, ErrEmailAlreadyExists, ErrUnauthorized, ErrForbidden,
	ErrImmutableField, ErrPrivilegedUnavailable,
}

// IsDomainError indica si err ya es (o envuelve) un error de dominio conocido.
func IsDomainError(err error) bool {
	for _, s := range domainSentinels {
		if errors.Is(err, s) {
			return true
		}
	}
	return false
}
