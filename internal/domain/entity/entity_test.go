package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/lumina-inventario/internal/domain/stock"
)

func TestProductRefresh(t *testing.T) {
	p := &Product{Stock: 0, MinStock: 5, MaxStock: 100}
	p.Refresh()
	assert.Equal(t, stock.OutOfStock, p.Status)

	p.Stock = 10
	p.Refresh()
	assert.Equal(t, stock.InStock, p.Status)
	assert.Equal(t, stock.TierWarning, p.Level().Tier)
}

func TestMovementSummary(t *testing.T) {
	in := MovementRecord{Action: ActionEntry, Details: MovementDetails{InvoiceNumber: "F-00123"}}
	assert.Equal(t, "Factura: F-00123", in.Summary())

	out := MovementRecord{Action: ActionExit}
	assert.Equal(t, "Destino: N/A", out.Summary())
}

func TestUserNameOrFallback(t *testing.T) {
	assert.Equal(t, "Ana", (&UserAccount{DisplayName: "Ana", Email: "ana@x.io"}).NameOrFallback())
	assert.Equal(t, "ana", (&UserAccount{Email: "ana@x.io"}).NameOrFallback())
	assert.Equal(t, "Sin nombre", (&UserAccount{}).NameOrFallback())
}

func TestIsAdminRequiresActive(t *testing.T) {
	assert.True(t, (&UserAccount{Role: RoleAdmin, IsActive: true}).IsAdmin())
	assert.False(t, (&UserAccount{Role: RoleAdmin, IsActive: false}).IsAdmin())
	assert.False(t, (&UserAccount{Role: RoleViewer, IsActive: true}).IsAdmin())
}
