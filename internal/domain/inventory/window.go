package inventory

import (
	"time"

	"github.com/jhoicas/inventory-ledger/internal/domain"
)

// DefaultReportDays ventana por defecto de los reportes cuando no se indican fechas.
const DefaultReportDays = 30

// Window rango semiabierto [From, To). To nil = sin límite superior.
type Window struct {
	From time.Time
	To   *time.Time
}

// Contains indica si t cae dentro de la ventana.
func (w Window) Contains(t time.Time) bool {
	if t.Before(w.From) {
		return false
	}
	return w.To == nil || t.Before(*w.To)
}

// ReportWindow resuelve la ventana de un reporte.
// Con ambas fechas: [start, end + 1 día) para incluir el día final completo.
// Con alguna fecha ausente: los últimos DefaultReportDays días hasta now.
func ReportWindow(start, end *time.Time, now time.Time) (Window, error) {
	if start != nil && end != nil {
		if start.After(*end) {
			return Window{}, domain.ErrInvalidInput
		}
		to := end.AddDate(0, 0, 1)
		return Window{From: *start, To: &to}, nil
	}
	return Window{From: now.AddDate(0, 0, -DefaultReportDays)}, nil
}
