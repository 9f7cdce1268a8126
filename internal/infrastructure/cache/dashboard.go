package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/jhoicas/lumina-inventario/internal/application/analytics"
	"github.com/jhoicas/lumina-inventario/internal/application/dto"
)

var _ analytics.Cache = (*DashboardCache)(nil)

const dashboardKey = "inventario:dashboard"

// DashboardCache guarda el tablero serializado en JSON. Un fallo de Redis se trata como miss.
type DashboardCache struct {
	client *redis.Client
	log    zerolog.Logger
}

func NewDashboardCache(client *redis.Client, log zerolog.Logger) *DashboardCache {
	return &DashboardCache{client: client, log: log.With().Str("component", "dashboard_cache").Logger()}
}

func (c *DashboardCache) Get(ctx context.Context) (*dto.DashboardResponse, bool) {
	raw, err := c.client.Get(ctx, dashboardKey).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.Warn().Err(err).Msg("leer caché del tablero")
		}
		return nil, false
	}
	var v dto.DashboardResponse
	if err := json.Unmarshal(raw, &v); err != nil {
		c.log.Warn().Err(err).Msg("caché del tablero corrupta")
		return nil, false
	}
	return &v, true
}

func (c *DashboardCache) Set(ctx context.Context, v *dto.DashboardResponse, ttl time.Duration) {
	raw, err := json.Marshal(v)
	if err != nil {
		c.log.Warn().Err(err).Msg("serializar tablero")
		return
	}
	if err := c.client.Set(ctx, dashboardKey, raw, ttl).Err(); err != nil {
		c.log.Warn().Err(err).Msg("escribir caché del tablero")
	}
}

func (c *DashboardCache) Delete(ctx context.Context) {
	if err := c.client.Del(ctx, dashboardKey).Err(); err != nil {
		c.log.Warn().Err(err).Msg("invalidar caché del tablero")
	}
}
