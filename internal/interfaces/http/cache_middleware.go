package http

import (
	"context"

	"github.com/gofiber/fiber/v2"
)

// CacheInvalidator descarta agregados en caché que dependen de productos o movimientos.
type CacheInvalidator interface {
	Invalidate(ctx context.Context)
}

// InvalidateOnWrite invalida la caché cuando la escritura respondió 2xx.
func InvalidateOnWrite(inv CacheInvalidator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := c.Next(); err != nil {
			return err
		}
		if status := c.Response().StatusCode(); status >= 200 && status < 300 {
			inv.Invalidate(c.UserContext())
		}
		return nil
	}
}
