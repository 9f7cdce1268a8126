package client

import (
	"context"
	"time"

	"github.com/jhoicas/lumina-inventario/internal/application/paging"
)

// Suggester fuente de sugerencias.
type Suggester interface {
	Suggest(ctx context.Context, text string) ([]SuggestionResponse, error)
}

// LiveSearch búsqueda mientras se escribe. Espera un periodo sin cambios antes de consultar y
// solo entrega la respuesta de la última consulta emitida; las respuestas lentas se descartan.
type LiveSearch struct {
	ctx      context.Context
	source   Suggester
	debounce *paging.Debouncer
	guard    paging.LatestGuard
	deliver  func([]SuggestionResponse, error)
}

// NewLiveSearch crea la búsqueda. deliver se llama desde otra goroutine.
func NewLiveSearch(ctx context.Context, source Suggester, delay time.Duration, deliver func([]SuggestionResponse, error)) *LiveSearch {
	return &LiveSearch{
		ctx:      ctx,
		source:   source,
		debounce: paging.NewDebouncer(delay),
		deliver:  deliver,
	}
}

// Type registra el texto actual del campo de búsqueda.
func (s *LiveSearch) Type(text string) {
	id := s.guard.Issue()
	s.debounce.Call(func() {
		rows, err := s.source.Suggest(s.ctx, text)
		if s.ctx.Err() != nil || !s.guard.Accept(id) {
			return
		}
		s.deliver(rows, err)
	})
}

// Close cancela la consulta pendiente.
func (s *LiveSearch) Close() {
	s.debounce.Stop()
}
