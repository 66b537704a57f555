package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/pnext5524-creator/sekretar/internal/models"
	appErrors "github.com/pnext5524-creator/sekretar/pkg/errors"
	"github.com/pnext5524-creator/sekretar/pkg/export"
)

// ReportFormat selects the archive report rendering.
type ReportFormat string

const (
	ReportFormatCSV ReportFormat = "csv"
	ReportFormatPDF ReportFormat = "pdf"
)

type exportArchiveLister interface {
	List(ctx context.Context) ([]models.ArchiveItem, error)
}

type csvRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

type pdfRenderer interface {
	Render(data export.Dataset, title string) ([]byte, error)
}

// ExportService produces EDMS interchange packages and tabular archive
// reports.
type ExportService struct {
	archive exportArchiveLister
	csv     csvRenderer
	pdf     pdfRenderer
	logger  *zap.Logger
	now     func() time.Time
}

// NewExportService constructs an ExportService.
func NewExportService(archive exportArchiveLister, logger *zap.Logger, csv csvRenderer, pdf pdfRenderer) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if csv == nil {
		csv = export.NewCSVExporter()
	}
	if pdf == nil {
		pdf = export.NewPDFExporter()
	}
	return &ExportService{archive: archive, csv: csv, pdf: pdf, logger: logger, now: time.Now}
}

// Package wraps the response text into a downloadable EDMS package.
// The response text must be non-blank; the format may be anything and
// falls back to plain text when unrecognised.
func (s *ExportService) Package(format export.Format, responseText, fileName string) (*models.ExportPackage, error) {
	if responseText == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "текст ответа пуст, экспортировать нечего")
	}
	pkg := export.Serialize(format, responseText, fileName, s.now())
	s.logger.Info("export package built",
		zap.String("format", string(format)),
		zap.String("filename", pkg.Filename))
	return &pkg, nil
}

// Report renders the whole archive as a CSV or PDF table.
func (s *ExportService) Report(ctx context.Context, format ReportFormat) (*models.ExportPackage, error) {
	items, err := s.archive.List(ctx)
	if err != nil {
		return nil, err
	}

	headers := []string{"Дата", "Файл", "Поручение", "Статус"}
	rows := make([]map[string]string, 0, len(items))
	for _, item := range items {
		rows = append(rows, map[string]string{
			"Дата":      time.UnixMilli(item.Timestamp).UTC().Format("02.01.2006 15:04"),
			"Файл":      item.FileName,
			"Поручение": item.Instruction,
			"Статус":    string(item.Status),
		})
	}
	dataset := export.Dataset{Headers: headers, Rows: rows}

	timestamp := s.now().UTC().Format("20060102_150405")
	switch format {
	case ReportFormatCSV:
		payload, err := s.csv.Render(dataset)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv report")
		}
		return &models.ExportPackage{
			Filename: fmt.Sprintf("archive_report_%s.csv", timestamp),
			MimeType: "text/csv",
			Content:  string(payload),
		}, nil
	case ReportFormatPDF:
		payload, err := s.pdf.Render(dataset, "Архив ответов")
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf report")
		}
		return &models.ExportPackage{
			Filename: fmt.Sprintf("archive_report_%s.pdf", timestamp),
			MimeType: "application/pdf",
			Content:  string(payload),
		}, nil
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported report format %q", format))
	}
}
