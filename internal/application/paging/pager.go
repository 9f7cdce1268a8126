package paging

import "sync"

// Pager estado de paginación de una lista en el cliente.
// Cambiar el tamaño de página o el filtro vuelve a la página 1 para no pedir un rango inexistente.
type Pager struct {
	mu       sync.Mutex
	page     int
	pageSize int
	search   string
	total    int
}

// NewPager crea el paginador en la página 1.
func NewPager(pageSize int) *Pager {
	q := Query{PageSize: pageSize}.Normalize()
	return &Pager{page: 1, pageSize: q.PageSize}
}

// Query consulta a emitir para el estado actual.
func (p *Pager) Query() Query {
	p.mu.Lock()
	defer p.mu.Unlock()
	return Query{Search: p.search, Page: p.page, PageSize: p.pageSize}
}

func (p *Pager) SetPageSize(size int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.pageSize = Query{PageSize: size}.Normalize().PageSize
	p.page = 1
}

func (p *Pager) SetSearch(s string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if s == p.search {
		return
	}
	p.search = s
	p.page = 1
}

// SetTotal registra el total devuelto por la última respuesta.
// Si la página actual quedó fuera de rango se ajusta a la última.
func (p *Pager) SetTotal(total int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.total = total
	if last := TotalPages(total, p.pageSize); last > 0 && p.page > last {
		p.page = last
	}
}

func (p *Pager) TotalPages() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return TotalPages(p.total, p.pageSize)
}

// Next avanza una página; false si ya está en la última.
func (p *Pager) Next() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.page >= TotalPages(p.total, p.pageSize) {
		return false
	}
	p.page++
	return true
}

// Prev retrocede una página; false en la primera.
func (p *Pager) Prev() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.page <= 1 {
		return false
	}
	p.page--
	return true
}

// Goto salta a page dentro de [1, TotalPages].
func (p *Pager) Goto(page int) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if page < 1 || page > TotalPages(p.total, p.pageSize) {
		return false
	}
	p.page = page
	return true
}
