package inventory

import (
	"fmt"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/jhoicas/lumina-inventario/internal/domain/entity"
	"github.com/jhoicas/lumina-inventario/internal/domain/stock"
)

// AlertKind tipo de alerta de stock.
type AlertKind string

const (
	AlertOutOfStock AlertKind = "out_of_stock"
	AlertLowStock   AlertKind = "low_stock"
	AlertOverStock  AlertKind = "over_stock"
)

// DefaultRetention antigüedad máxima de una alerta.
const DefaultRetention = 24 * time.Hour

// Alert notificación derivada del estado de un producto.
type Alert struct {
	ID          string    `json:"id"`
	Kind        AlertKind `json:"type"`
	Title       string    `json:"title"`
	Message     string    `json:"message"`
	ProductID   int64     `json:"product_id"`
	ProductName string    `json:"product_name"`
	Stock       int       `json:"stock"`
	CreatedAt   time.Time `json:"timestamp"`
}

// AlertFor alerta del producto según stock.Classify; false cuando está En Stock.
func AlertFor(p *entity.Product, now time.Time) (Alert, bool) {
	a := Alert{ProductID: p.ID, ProductName: p.Name, Stock: p.Stock, CreatedAt: now}
	switch stock.Classify(p.Stock, p.MinStock, p.MaxStock) {
	case stock.OutOfStock:
		a.Kind = AlertOutOfStock
		a.Title = "Producto agotado"
		a.Message = p.Name + " está sin stock"
	case stock.LowStock:
		a.Kind = AlertLowStock
		a.Title = "Stock bajo"
		a.Message = fmt.Sprintf("%s tiene poco stock (%d unidades)", p.Name, p.Stock)
	case stock.OverStock:
		a.Kind = AlertOverStock
		a.Title = "Exceso de stock"
		a.Message = fmt.Sprintf("%s tiene stock excesivo (%d unidades)", p.Name, p.Stock)
	default:
		return Alert{}, false
	}
	a.ID = string(a.Kind) + "_" + strconv.FormatInt(p.ID, 10)
	return a, true
}

// UserAlert alerta con la marca de lectura de un usuario.
type UserAlert struct {
	Alert
	Read bool `json:"read"`
}

// NotificationCenter conjunto vigente de alertas y marcas de lectura por usuario. Seguro para uso concurrente.
type NotificationCenter struct {
	mu        sync.RWMutex
	alerts    map[string]Alert
	reads     map[string]map[string]struct{}
	retention time.Duration
	now       func() time.Time
}

func NewNotificationCenter(retention time.Duration) *NotificationCenter {
	if retention <= 0 {
		retention = DefaultRetention
	}
	return &NotificationCenter{
		alerts:    map[string]Alert{},
		reads:     map[string]map[string]struct{}{},
		retention: retention,
		now:       time.Now,
	}
}

// Replace sustituye el conjunto de alertas por el derivado de products.
// Una alerta que sigue vigente conserva su fecha y las marcas de lectura mientras no supere la retención.
func (c *NotificationCenter) Replace(products []*entity.Product) {
	now := c.now()
	c.mu.Lock()
	defer c.mu.Unlock()

	next := make(map[string]Alert, len(products))
	var renewed []string
	for _, p := range products {
		a, ok := AlertFor(p, now)
		if !ok {
			continue
		}
		if prev, exists := c.alerts[a.ID]; exists {
			if now.Sub(prev.CreatedAt) < c.retention {
				a.CreatedAt = prev.CreatedAt
			} else {
				renewed = append(renewed, a.ID)
			}
		}
		next[a.ID] = a
	}
	c.alerts = next
	for _, id := range renewed {
		for _, marks := range c.reads {
			delete(marks, id)
		}
	}
	c.pruneReadsLocked()
}

// Cleanup descarta las alertas más antiguas que la retención.
func (c *NotificationCenter) Cleanup() int {
	cutoff := c.now().Add(-c.retention)
	c.mu.Lock()
	defer c.mu.Unlock()
	removed := 0
	for id, a := range c.alerts {
		if !a.CreatedAt.After(cutoff) {
			delete(c.alerts, id)
			removed++
		}
	}
	c.pruneReadsLocked()
	return removed
}

// pruneReadsLocked elimina marcas de alertas que ya no existen o que fueron recreadas.
func (c *NotificationCenter) pruneReadsLocked() {
	for user, marks := range c.reads {
		for id := range marks {
			if _, ok := c.alerts[id]; !ok {
				delete(marks, id)
			}
		}
		if len(marks) == 0 {
			delete(c.reads, user)
		}
	}
}

// List alertas vigentes para userID, de la más reciente a la más antigua.
func (c *NotificationCenter) List(userID string) []UserAlert {
	c.mu.RLock()
	defer c.mu.RUnlock()
	marks := c.reads[userID]
	out := make([]UserAlert, 0, len(c.alerts))
	for id, a := range c.alerts {
		_, read := marks[id]
		out = append(out, UserAlert{Alert: a, Read: read})
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// Unread cantidad de alertas sin leer para userID.
func (c *NotificationCenter) Unread(userID string) int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.alerts) - len(c.reads[userID])
}

// MarkRead marca una alerta; false si no existe.
func (c *NotificationCenter) MarkRead(userID, alertID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.alerts[alertID]; !ok {
		return false
	}
	c.marksLocked(userID)[alertID] = struct{}{}
	return true
}

// MarkAllRead marca todas las alertas vigentes.
func (c *NotificationCenter) MarkAllRead(userID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	marks := c.marksLocked(userID)
	for id := range c.alerts {
		marks[id] = struct{}{}
	}
}

func (c *NotificationCenter) marksLocked(userID string) map[string]struct{} {
	m, ok := c.reads[userID]
	if !ok {
		m = map[string]struct{}{}
		c.reads[userID] = m
	}
	return m
}
