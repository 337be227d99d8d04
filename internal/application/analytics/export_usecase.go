package analytics

import (
	"context"
	"time"

	"github.com/jhoicas/inventory-ledger/internal/application/dto"
	"github.com/jhoicas/inventory-ledger/internal/domain/entity"
)

// ReportRenderer genera la representación de un reporte (PDF, XML...).
type ReportRenderer interface {
	Render(ctx context.Context, report *dto.ReportResponse) ([]byte, error)
	ContentType() string
}

// ExportUseCase reporte por período renderizado en el formato pedido.
type ExportUseCase struct {
	reports   *ReportUseCase
	renderers map[string]ReportRenderer
}

// NewExportUseCase construye el caso de uso; renderers indexados por formato ("pdf", "xml").
func NewExportUseCase(reports *ReportUseCase, renderers map[string]ReportRenderer) *ExportUseCase {
	return &ExportUseCase{reports: reports, renderers: renderers}
}

// Export devuelve el documento y su content-type. ok=false si el formato no está soportado.
func (uc *ExportUseCase) Export(
	ctx context.Context, actor entity.Actor, format string, start, end *time.Time,
) (doc []byte, contentType string, ok bool, err error) {
	r, found := uc.renderers[format]
	if !found {
		return nil, "", false, nil
	}
	report, err := uc.reports.Report(ctx, actor, start, end)
	if err != nil {
		return nil, "", true, err
	}
	doc, err = r.Render(ctx, report)
	if err != nil {
		return nil, "", true, err
	}
	return doc, r.ContentType(), true, nil
}
