package client

import (
	"context"

	"github.com/jhoicas/lumina-inventario/internal/application/paging"
)

// Catalog navegación paginada del catálogo. Cambiar el filtro o el tamaño vuelve a la página 1.
type Catalog struct {
	client      *Client
	pager       *Pager
	inStockOnly bool
}

// NewCatalog crea la navegación con pageSize filas por página (10 si es inválido).
func (c *Client) NewCatalog(pageSize int, inStockOnly bool) *Catalog {
	return &Catalog{client: c, pager: paging.NewPager(pageSize), inStockOnly: inStockOnly}
}

// Pager estado de paginación, para Next, Prev, Goto, SetSearch y SetPageSize.
func (c *Catalog) Pager() *Pager { return c.pager }

// Load pide la página actual y registra el total devuelto.
// Si la página quedó fuera de rango (p. ej. tras borrar productos) pide la última.
func (c *Catalog) Load(ctx context.Context) (*ProductListResponse, error) {
	q := c.pager.Query()
	res, err := c.client.ListProducts(ctx, q, c.inStockOnly)
	if err != nil {
		return nil, err
	}
	c.pager.SetTotal(res.Page.TotalCount)
	if c.pager.Query().Page != q.Page {
		return c.client.ListProducts(ctx, c.pager.Query(), c.inStockOnly)
	}
	return res, nil
}
