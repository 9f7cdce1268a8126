package paging

import (
	"sync"
	"time"
)

// DefaultDebounce periodo de silencio antes de lanzar una búsqueda.
const DefaultDebounce = 300 * time.Millisecond

// Debouncer ejecuta la última función recibida tras un periodo sin nuevas llamadas.
// Cada Call cancela el temporizador pendiente.
type Debouncer struct {
	mu      sync.Mutex
	delay   time.Duration
	timer   *time.Timer
	stopped bool
}

func NewDebouncer(delay time.Duration) *Debouncer {
	if delay <= 0 {
		delay = DefaultDebounce
	}
	return &Debouncer{delay: delay}
}

// Call programa fn; una llamada posterior antes del plazo la reemplaza.
func (d *Debouncer) Call(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, fn)
}

// Stop cancela lo pendiente; las llamadas siguientes se ignoran.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
