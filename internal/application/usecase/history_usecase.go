package usecase

import (
	"context"
	"time"

	"github.com/jhoicas/lumina-inventario/internal/application/paging"
	"github.com/jhoicas/lumina-inventario/internal/domain"
	"github.com/jhoicas/lumina-inventario/internal/domain/entity"
	"github.com/jhoicas/lumina-inventario/internal/domain/repository"
)

// HistoryUseCase consulta, métricas y exportación del historial de movimientos.
type HistoryUseCase struct {
	movements repository.MovementRepository
	exporter  HistoryExporter
	now       func() time.Time
}

func NewHistoryUseCase(movements repository.MovementRepository, exporter HistoryExporter) *HistoryUseCase {
	return &HistoryUseCase{movements: movements, exporter: exporter, now: time.Now}
}

func checkAction(action string) error {
	if action != "" && !entity.IsValidAction(action) {
		return domain.NewValidationError("action", "debe ser all, Entrada o Salida")
	}
	return nil
}

var movementSortFields = map[string]bool{
	repository.MovementSortID:          true,
	repository.MovementSortProductName: true,
	repository.MovementSortQuantity:    true,
}

// List página del historial, del más nuevo al más antiguo por defecto. action "" incluye ambos tipos.
// La búsqueda cubre producto, usuario y detalles (factura o destino).
func (uc *HistoryUseCase) List(ctx context.Context, q paging.Query, action string) (paging.Result[*entity.MovementRecord], error) {
	if err := checkAction(action); err != nil {
		return paging.Result[*entity.MovementRecord]{}, err
	}
	q = q.Normalize()
	if q.Sort.Field != "" && !movementSortFields[q.Sort.Field] {
		return paging.Result[*entity.MovementRecord]{}, domain.NewValidationError("sort", "campo de orden no admitido")
	}
	rows, total, err := uc.movements.List(ctx, repository.MovementFilter{
		Action: action,
		Search: q.Search,
		Sort:   q.Sort,
		Window: q.Window(),
	})
	if err != nil {
		return paging.Result[*entity.MovementRecord]{}, &domain.StorageError{Op: "listar historial", Err: err}
	}
	return paging.NewResult(rows, total, q), nil
}

// Metrics movimientos de hoy y totales de entradas y salidas; el lado excluido por el filtro es 0.
func (uc *HistoryUseCase) Metrics(ctx context.Context, action string) (repository.MovementTotals, error) {
	if err := checkAction(action); err != nil {
		return repository.MovementTotals{}, err
	}
	today := uc.now().Format(entity.DateLayout)
	t, err := uc.movements.Totals(ctx, repository.MovementFilter{Action: action}, today)
	if err != nil {
		return repository.MovementTotals{}, &domain.StorageError{Op: "métricas del historial", Err: err}
	}
	return t, nil
}

// Export todas las filas del filtro en el formato del exportador.
func (uc *HistoryUseCase) Export(ctx context.Context, action string) (*ExportFile, error) {
	if err := checkAction(action); err != nil {
		return nil, err
	}
	rows, _, err := uc.movements.List(ctx, repository.MovementFilter{Action: action})
	if err != nil {
		return nil, &domain.StorageError{Op: "exportar historial", Err: err}
	}
	data, err := uc.exporter.Export(rows)
	if err != nil {
		return nil, err
	}
	return &ExportFile{
		Name:        ExportFileName(action),
		ContentType: uc.exporter.ContentType(),
		Data:        data,
		Rows:        len(rows),
	}, nil
}

// ExportFile archivo generado.
type ExportFile struct {
	Name        string
	ContentType string
	Data        []byte
	Rows        int
}

// ExportFileName Reporte_Historial_Completo.xlsx sin filtro o Reporte_Historial_<acción>.xlsx.
func ExportFileName(action string) string {
	if action == "" {
		return "Reporte_Historial_Completo.xlsx"
	}
	return "Reporte_Historial_" + action + ".xlsx"
}
