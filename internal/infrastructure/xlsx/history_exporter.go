// Package xlsx exporta el historial de movimientos como libro de Excel (excelize).
package xlsx

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/lumina-inventario/internal/application/usecase"
	"github.com/jhoicas/lumina-inventario/internal/domain/entity"
)

var _ usecase.HistoryExporter = (*HistoryExporter)(nil)

// SheetName hoja del libro exportado.
const SheetName = "HistorialMovimientos"

const contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

var headers = []any{"Fecha", "Hora", "Usuario", "Producto", "Acción", "Cantidad", "Detalles"}

// HistoryExporter una fila por movimiento, en el orden recibido, con autofiltro sobre el rango.
type HistoryExporter struct{}

func NewHistoryExporter() *HistoryExporter { return &HistoryExporter{} }

func (e *HistoryExporter) ContentType() string { return contentType }

func (e *HistoryExporter) Export(rows []*entity.MovementRecord) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return nil, fmt.Errorf("xlsx: nombrar hoja: %w", err)
	}
	if err := f.SetSheetRow(SheetName, "A1", &headers); err != nil {
		return nil, fmt.Errorf("xlsx: encabezados: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("xlsx: estilo: %w", err)
	}
	if err := f.SetCellStyle(SheetName, "A1", "G1", bold); err != nil {
		return nil, fmt.Errorf("xlsx: estilo: %w", err)
	}

	for i, m := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		values := []any{m.Date, m.Time, userName(m), m.ProductName, m.Action, m.Quantity, m.Summary()}
		if err := f.SetSheetRow(SheetName, cell, &values); err != nil {
			return nil, fmt.Errorf("xlsx: fila %d: %w", i+2, err)
		}
	}

	last, err := excelize.CoordinatesToCellName(len(headers), len(rows)+1)
	if err != nil {
		return nil, err
	}
	if err := f.AutoFilter(SheetName, "A1:"+last, nil); err != nil {
		return nil, fmt.Errorf("xlsx: autofiltro: %w", err)
	}
	_ = f.SetColWidth(SheetName, "A", "B", 12)
	_ = f.SetColWidth(SheetName, "C", "D", 24)
	_ = f.SetColWidth(SheetName, "G", "G", 32)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx: escribir libro: %w", err)
	}
	return buf.Bytes(), nil
}

func userName(m *entity.MovementRecord) string {
	if m.UserName == "" {
		return "N/A"
	}
	return m.UserName
}
