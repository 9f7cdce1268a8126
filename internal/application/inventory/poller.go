package inventory

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/lumina-inventario/internal/domain/entity"
)

// DefaultPollInterval intervalo de revisión de estados.
const DefaultPollInterval = 2 * time.Hour

// ProductLister lectura completa del catálogo.
type ProductLister interface {
	ListAll(ctx context.Context) ([]*entity.Product, error)
}

// StatusPoller revisa periódicamente el estado de todos los productos y alimenta el NotificationCenter.
type StatusPoller struct {
	products ProductLister
	center   *NotificationCenter
	interval time.Duration
	log      zerolog.Logger
}

func NewStatusPoller(products ProductLister, center *NotificationCenter, interval time.Duration, log zerolog.Logger) *StatusPoller {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &StatusPoller{
		products: products,
		center:   center,
		interval: interval,
		log:      log.With().Str("component", "status_poller").Logger(),
	}
}

// Check una revisión: limpia alertas vencidas y reemplaza el conjunto vigente.
// Si la lectura falla se conservan las alertas anteriores.
func (p *StatusPoller) Check(ctx context.Context) error {
	p.center.Cleanup()
	products, err := p.products.ListAll(ctx)
	if err != nil {
		p.log.Error().Err(err).Msg("no se pudieron leer los productos")
		return err
	}
	p.center.Replace(products)
	p.log.Debug().Int("products", len(products)).Msg("estados revisados")
	return nil
}

// Run revisa al iniciar y luego en cada intervalo hasta que ctx se cancele. Bloquea.
func (p *StatusPoller) Run(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.log.Info().Dur("interval", p.interval).Msg("status_poller: started")
	_ = p.Check(ctx)
	for {
		select {
		case <-ctx.Done():
			p.log.Info().Msg("status_poller: shutting down")
			return
		case <-ticker.C:
			_ = p.Check(ctx)
		}
	}
}

// Start lanza Run en una goroutine; el canal se cierra al terminar.
func (p *StatusPoller) Start(ctx context.Context) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		p.Run(ctx)
	}()
	return done
}
