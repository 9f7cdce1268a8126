package client

import (
	"github.com/jhoicas/lumina-inventario/internal/application/dto"
	"github.com/jhoicas/lumina-inventario/internal/application/paging"
	"github.com/jhoicas/lumina-inventario/internal/domain/entity"
	"github.com/jhoicas/lumina-inventario/internal/domain/repository"
	"github.com/jhoicas/lumina-inventario/internal/domain/stock"
)

// Tipos del contrato HTTP que el cliente expone. Son alias: se pueden nombrar e implementar
// desde fuera del módulo y siguen siendo idénticos a los que serializa el servidor.
type (
	LoginResponse          = dto.LoginResponse
	UserResponse           = dto.UserResponse
	ProductResponse        = dto.ProductResponse
	ProductListResponse    = dto.ProductListResponse
	SuggestionResponse     = dto.SuggestionResponse
	RecordMovementRequest  = dto.RecordMovementRequest
	RecordMovementResponse = dto.RecordMovementResponse
	MovementResponse       = dto.MovementResponse
	MovementDetails        = entity.MovementDetails
	PageResponse           = dto.PageResponse

	Query = paging.Query
	Sort  = repository.Sort
	Pager = paging.Pager

	StockStatus = stock.Status
	StockLevel  = stock.Level
	StockTier   = stock.Tier
)

// NewPager paginador para recorrer listados del cliente.
func NewPager(pageSize int) *Pager { return paging.NewPager(pageSize) }
