package paging

import "sync/atomic"

// Sequencer emite números crecientes para etiquetar peticiones.
type Sequencer struct {
	n atomic.Uint64
}

// Next devuelve el siguiente número (el primero es 1).
func (s *Sequencer) Next() uint64 {
	return s.n.Add(1)
}

// Last último número emitido.
func (s *Sequencer) Last() uint64 {
	return s.n.Load()
}

// LatestGuard descarta respuestas más antiguas que la última aceptada o emitida.
// Una respuesta lenta nunca sobrescribe a una petición posterior.
type LatestGuard struct {
	seq      Sequencer
	accepted atomic.Uint64
}

// Issue etiqueta una nueva petición.
func (g *LatestGuard) Issue() uint64 {
	return g.seq.Next()
}

// Accept indica si la respuesta de la petición id debe aplicarse.
// Solo se acepta la respuesta de la última petición emitida, una vez.
func (g *LatestGuard) Accept(id uint64) bool {
	if id != g.seq.Last() {
		return false
	}
	for {
		prev := g.accepted.Load()
		if prev >= id {
			return false
		}
		if g.accepted.CompareAndSwap(prev, id) {
			return true
		}
	}
}
