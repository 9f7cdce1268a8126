package usecase

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/jhoicas/lumina-inventario/internal/application/dto"
	"github.com/jhoicas/lumina-inventario/internal/application/inventory"
	"github.com/jhoicas/lumina-inventario/internal/application/paging"
	"github.com/jhoicas/lumina-inventario/internal/domain"
	"github.com/jhoicas/lumina-inventario/internal/domain/entity"
	"github.com/jhoicas/lumina-inventario/internal/domain/repository"
)

// Detalles de los movimientos generados fuera de las pantallas de entrada y salida.
const (
	DetailProductCreated = "Creación de producto"
	DetailManualAdjust   = "Ajuste manual"
)

// SuggestionLimit máximo de sugerencias de la barra de búsqueda.
const SuggestionLimit = 5

var productSortFields = map[string]bool{
	repository.ProductSortCreatedAt: true,
	repository.ProductSortName:      true,
	repository.ProductSortCategory:  true,
	repository.ProductSortStock:     true,
	repository.ProductSortID:        true,
}

// ProductUseCase alta, edición, baja y consulta de productos.
// Toda escritura que cambia el stock agrega su movimiento en la misma unidad de trabajo.
type ProductUseCase struct {
	tx       repository.TxRunner
	products repository.ProductRepository
	log      zerolog.Logger
	now      func() time.Time
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(tx repository.TxRunner, products repository.ProductRepository, log zerolog.Logger) *ProductUseCase {
	return &ProductUseCase{
		tx:       tx,
		products: products,
		log:      log.With().Str("component", "product_usecase").Logger(),
		now:      time.Now,
	}
}

// Create valida y persiste el producto. Con stock inicial > 0 registra una Entrada
// "Creación de producto" por esa cantidad.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest, userName string) (*entity.Product, error) {
	in.Trim()
	if err := dto.Validate(&in); err != nil {
		return nil, err
	}
	now := uc.now()
	p := &entity.Product{
		Name:      in.Name,
		Category:  in.Category,
		Stock:     in.Stock,
		MinStock:  in.MinStock,
		MaxStock:  in.MaxStock,
		CreatedAt: now,
	}
	p.Refresh()

	err := uc.tx.Run(ctx, func(r repository.TxRepos) error {
		if err := r.Products.Create(ctx, p); err != nil {
			return &domain.StorageError{Op: "crear producto", Err: err}
		}
		if p.Stock == 0 {
			return nil
		}
		m := inventory.NewRecord(p, inventory.DirectionIn, p.Stock, DetailProductCreated, userName, now)
		if err := r.Movements.Append(ctx, m); err != nil {
			if uc.tx.Atomic() {
				return &domain.StorageError{Op: "registrar movimiento inicial", Err: err}
			}
			if rbErr := r.Products.Delete(ctx, p.ID); rbErr != nil {
				return &domain.PartialFailureError{Op: "registrar movimiento inicial", Cause: err, RollbackErr: rbErr}
			}
			return &domain.StorageError{Op: "registrar movimiento inicial", Err: err}
		}
		return nil
	})
	if err != nil {
		return nil, wrapStorage("crear producto", err)
	}
	uc.log.Info().Int64("product_id", p.ID).Str("status", string(p.Status)).Msg("producto creado")
	return p, nil
}

// Update reemplaza los campos editables. Si el stock cambia se registra un movimiento
// "Ajuste manual" por la diferencia.
func (uc *ProductUseCase) Update(ctx context.Context, id int64, in dto.UpdateProductRequest, userName string) (*entity.Product, error) {
	in.Trim()
	if err := dto.Validate(&in); err != nil {
		return nil, err
	}
	var updated *entity.Product
	err := uc.tx.Run(ctx, func(r repository.TxRepos) error {
		cur, err := r.Products.GetForUpdate(ctx, id)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return domain.ErrNotFound
			}
			return &domain.StorageError{Op: "leer producto", Err: err}
		}
		prev := *cur
		next := *cur
		next.Name, next.Category = in.Name, in.Category
		next.Stock, next.MinStock, next.MaxStock = in.Stock, in.MinStock, in.MaxStock
		next.Refresh()

		if err := r.Products.Update(ctx, &next); err != nil {
			return &domain.StorageError{Op: "actualizar producto", Err: err}
		}
		if delta := next.Stock - prev.Stock; delta != 0 {
			dir, qty := inventory.DirectionIn, delta
			if delta < 0 {
				dir, qty = inventory.DirectionOut, -delta
			}
			m := inventory.NewRecord(&next, dir, qty, DetailManualAdjust, userName, uc.now())
			if err := r.Movements.Append(ctx, m); err != nil {
				if uc.tx.Atomic() {
					return &domain.StorageError{Op: "registrar ajuste", Err: err}
				}
				if rbErr := r.Products.Update(ctx, &prev); rbErr != nil {
					return &domain.PartialFailureError{Op: "registrar ajuste", Cause: err, RollbackErr: rbErr}
				}
				return &domain.StorageError{Op: "registrar ajuste", Err: err}
			}
		}
		updated = &next
		return nil
	})
	if err != nil {
		return nil, wrapStorage("actualizar producto", err)
	}
	return updated, nil
}

// Delete elimina el producto. El historial conserva sus registros.
func (uc *ProductUseCase) Delete(ctx context.Context, id int64) error {
	if err := uc.products.Delete(ctx, id); err != nil {
		return wrapStorage("eliminar producto", err)
	}
	uc.log.Info().Int64("product_id", id).Msg("producto eliminado")
	return nil
}

func (uc *ProductUseCase) Get(ctx context.Context, id int64) (*entity.Product, error) {
	p, err := uc.products.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		return nil, &domain.StorageError{Op: "leer producto", Err: err}
	}
	return p, nil
}

// List página de productos; inStockOnly deja solo los que tienen stock (pantalla de salidas).
func (uc *ProductUseCase) List(ctx context.Context, q paging.Query, inStockOnly bool) (paging.Result[*entity.Product], error) {
	q = q.Normalize()
	if q.Sort.Field != "" && !productSortFields[q.Sort.Field] {
		return paging.Result[*entity.Product]{}, domain.NewValidationError("sort", "campo de orden no admitido")
	}
	rows, total, err := uc.products.List(ctx, repository.ProductFilter{
		Search:      q.Search,
		InStockOnly: inStockOnly,
		Sort:        q.Sort,
		Window:      q.Window(),
	})
	if err != nil {
		return paging.Result[*entity.Product]{}, &domain.StorageError{Op: "listar productos", Err: err}
	}
	return paging.NewResult(rows, total, q), nil
}

// Suggest hasta 5 productos cuyo nombre o categoría contiene text.
// Con menos de 2 caracteres devuelve una lista vacía sin consultar el almacenamiento.
func (uc *ProductUseCase) Suggest(ctx context.Context, text string) ([]*entity.Product, error) {
	text = strings.TrimSpace(text)
	if utf8.RuneCountInString(text) < paging.MinSearchLength {
		return []*entity.Product{}, nil
	}
	rows, _, err := uc.products.List(ctx, repository.ProductFilter{
		Search: text,
		Window: repository.Window{Limit: SuggestionLimit},
	})
	if err != nil {
		return nil, &domain.StorageError{Op: "buscar productos", Err: err}
	}
	return rows, nil
}

// wrapStorage deja pasar los errores de dominio y envuelve el resto como StorageError.
func wrapStorage(op string, err error) error {
	if domain.IsDomainError(err) {
		return err
	}
	return &domain.StorageError{Op: op, Err: err}
}
