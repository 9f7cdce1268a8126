package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTypedErrorsMatchSentinels(t *testing.T) {
	var err error = &InsufficientStockError{Available: 3, Requested: 5}
	assert.ErrorIs(t, fmt.Errorf("registrar: %w", err), ErrInsufficientStock)

	var ise *InsufficientStockError
	assert.True(t, errors.As(fmt.Errorf("x: %w", err), &ise))
	assert.Equal(t, 3, ise.Available)
	assert.Equal(t, "stock insuficiente. Disponible: 3", err.Error())

	assert.ErrorIs(t, NewValidationError("quantity", "debe ser positiva"), ErrInvalidInput)
}

func TestStorageErrorUnwraps(t *testing.T) {
	cause := errors.New("conexión cerrada")
	err := &StorageError{Op: "actualizar stock", Err: cause}

	assert.ErrorIs(t, err, ErrStorage)
	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, ErrPartialFailure)
}

func TestPartialFailureError(t *testing.T) {
	cause := errors.New("insert falló")
	rb := errors.New("update falló")
	err := &PartialFailureError{Op: "registrar movimiento", Cause: cause, RollbackErr: rb}

	assert.ErrorIs(t, err, ErrPartialFailure)
	assert.ErrorIs(t, err, cause)
	assert.ErrorIs(t, err, rb)
	assert.NotErrorIs(t, err, ErrStorage)
	assert.Contains(t, err.Error(), "la reversión también falló")
}

func TestValidationErrorMessageIsStable(t *testing.T) {
	err := &ValidationError{Fields: map[string]string{"name": "requerido", "category": "requerida"}}
	assert.Equal(t, "validación: category: requerida; name: requerido", err.Error())
}

func TestIsDomainError(t *testing.T) {
	assert.True(t, IsDomainError(fmt.Errorf("x: %w", ErrNotFound)))
	assert.True(t, IsDomainError(&InsufficientStockError{}))
	assert.True(t, IsDomainError(&StorageError{Op: "x", Err: errors.New("y")}))
	assert.False(t, IsDomainError(errors.New("conexión rechazada")))
}
