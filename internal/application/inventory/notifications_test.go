package inventory

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/lumina-inventario/internal/domain/entity"
)

func catalog() []*entity.Product {
	return []*entity.Product{
		{ID: 1, Name: "Tinta", Stock: 0, MinStock: 5, MaxStock: 50},
		{ID: 2, Name: "Papel", Stock: 3, MinStock: 5, MaxStock: 50},
		{ID: 3, Name: "Lápiz", Stock: 80, MinStock: 5, MaxStock: 50},
		{ID: 4, Name: "Borrador", Stock: 20, MinStock: 5, MaxStock: 50},
	}
}

func TestAlertFor(t *testing.T) {
	now := time.Now()
	a, ok := AlertFor(catalog()[0], now)
	require.True(t, ok)
	assert.Equal(t, AlertOutOfStock, a.Kind)
	assert.Equal(t, "Producto agotado", a.Title)
	assert.Equal(t, "Tinta está sin stock", a.Message)

	a, ok = AlertFor(catalog()[1], now)
	require.True(t, ok)
	assert.Equal(t, "Papel tiene poco stock (3 unidades)", a.Message)

	a, ok = AlertFor(catalog()[2], now)
	require.True(t, ok)
	assert.Equal(t, AlertOverStock, a.Kind)
	assert.Equal(t, "Exceso de stock", a.Title)

	_, ok = AlertFor(catalog()[3], now)
	assert.False(t, ok)
}

// El límite inferior usa la misma regla que el estado: stock == min es Stock bajo.
func TestAlertForUsesClassifierBoundary(t *testing.T) {
	a, ok := AlertFor(&entity.Product{ID: 9, Name: "N", Stock: 5, MinStock: 5, MaxStock: 10}, time.Now())
	require.True(t, ok)
	assert.Equal(t, AlertLowStock, a.Kind)
}

func TestNotificationCenterReadMarks(t *testing.T) {
	c := NewNotificationCenter(time.Hour)
	c.Replace(catalog())

	assert.Len(t, c.List("u1"), 3)
	assert.Equal(t, 3, c.Unread("u1"))

	assert.True(t, c.MarkRead("u1", "low_stock_2"))
	assert.False(t, c.MarkRead("u1", "no_existe"))
	assert.Equal(t, 2, c.Unread("u1"))
	assert.Equal(t, 3, c.Unread("u2"), "las marcas son por usuario")

	// la alerta sigue vigente: conserva la marca
	c.Replace(catalog())
	assert.Equal(t, 2, c.Unread("u1"))

	c.MarkAllRead("u2")
	assert.Equal(t, 0, c.Unread("u2"))
}

func TestNotificationCenterDropsResolvedAndExpired(t *testing.T) {
	now := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)
	c := NewNotificationCenter(24 * time.Hour)
	c.now = func() time.Time { return now }
	c.Replace(catalog())
	c.MarkAllRead("u1")

	products := catalog()
	products[1].Stock = 20 // Papel se repone
	c.Replace(products)
	assert.Len(t, c.List("u1"), 2)
	assert.Equal(t, 0, c.Unread("u1"))

	now = now.Add(25 * time.Hour)
	assert.Equal(t, 2, c.Cleanup())
	assert.Empty(t, c.List("u1"))

	c.Replace(products)
	assert.Equal(t, 2, c.Unread("u1"), "las alertas recreadas vuelven a estar sin leer")
}

type listerFunc func(ctx context.Context) ([]*entity.Product, error)

func (f listerFunc) ListAll(ctx context.Context) ([]*entity.Product, error) { return f(ctx) }

func TestPollerChecksAndStopsOnCancel(t *testing.T) {
	var calls atomic.Int32
	lister := listerFunc(func(context.Context) ([]*entity.Product, error) {
		calls.Add(1)
		return catalog(), nil
	})
	center := NewNotificationCenter(0)
	p := NewStatusPoller(lister, center, 10*time.Millisecond, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	done := p.Start(ctx)

	assert.Eventually(t, func() bool { return calls.Load() >= 3 }, time.Second, 5*time.Millisecond)
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("el poller no se detuvo al cancelar el contexto")
	}
	assert.Equal(t, 3, center.Unread("u1"))
}

func TestPollerKeepsAlertsOnReadError(t *testing.T) {
	center := NewNotificationCenter(0)
	center.Replace(catalog())
	p := NewStatusPoller(listerFunc(func(context.Context) ([]*entity.Product, error) {
		return nil, errors.New("db caída")
	}), center, time.Hour, zerolog.Nop())

	assert.Error(t, p.Check(context.Background()))
	assert.Len(t, center.List("u1"), 3)
}
