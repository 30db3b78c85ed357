package service

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/ManithKumarpace/Edu-Pilot/internal/dto"
	"github.com/ManithKumarpace/Edu-Pilot/internal/timetable"
	appErrors "github.com/ManithKumarpace/Edu-Pilot/pkg/errors"
	"github.com/ManithKumarpace/Edu-Pilot/pkg/export"
	"github.com/ManithKumarpace/Edu-Pilot/pkg/storage"
)

const (
	FormatCSV = "csv"
	FormatPDF = "pdf"
)

var contentTypes = map[string]string{
	FormatCSV: "text/csv; charset=utf-8",
	FormatPDF: "application/pdf",
}

type fileStorage interface {
	Save(name string, data []byte) (string, error)
	Read(name string) ([]byte, error)
	Delete(name string) error
	CleanupOlderThan(ttl time.Duration) ([]string, error)
}

type csvRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

type pdfRenderer interface {
	Render(data export.Dataset, title string) ([]byte, error)
	RenderSections(title string, sections []export.Section) ([]byte, error)
}

// ExportConfig tunes export behaviour.
type ExportConfig struct {
	APIPrefix       string
	ResultTTL       time.Duration
	CleanupInterval time.Duration
}

// Download is a stored artifact resolved from a signed token.
type Download struct {
	Filename    string
	ContentType string
	Body        []byte
}

// ExportService renders previews into CSV or PDF files and hands out signed download links.
type ExportService struct {
	storage fileStorage
	csv     csvRenderer
	pdf     pdfRenderer
	signer  *storage.SignedURLSigner
	metrics *MetricsService
	logger  *zap.Logger
	cfg     ExportConfig
}

// NewExportService constructs an ExportService.
func NewExportService(store fileStorage, signer *storage.SignedURLSigner, cfg ExportConfig, metrics *MetricsService, logger *zap.Logger, csv csvRenderer, pdf pdfRenderer) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.ResultTTL <= 0 {
		cfg.ResultTTL = time.Hour
	}
	if csv == nil {
		csv = export.NewCSVExporter()
	}
	if pdf == nil {
		pdf = export.NewPDFExporter()
	}
	return &ExportService{
		storage: store,
		csv:     csv,
		pdf:     pdf,
		signer:  signer,
		metrics: metrics,
		logger:  logger,
		cfg:     cfg,
	}
}

// Render writes the requested view of a preview and returns its signed link.
func (s *ExportService) Render(ctx context.Context, preview *dto.TimetablePreview, req dto.ExportRequest) (*dto.ExportResponse, error) {
	payload, err := s.renderPayload(preview, req)
	if err != nil {
		return nil, err
	}

	relPath, err := s.storage.Save(buildFilename(preview.ID, req), payload)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store export")
	}
	token, expiresAt, err := s.signer.Generate(preview.ID, relPath)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to sign export")
	}
	s.metrics.RecordExport(req.View, req.Format)
	s.logger.Info("timetable exported",
		zap.String("preview_id", preview.ID),
		zap.String("view", req.View),
		zap.String("format", req.Format),
		zap.Int("bytes", len(payload)),
	)

	return &dto.ExportResponse{
		Filename:  path.Base(relPath),
		Format:    req.Format,
		URL:       fmt.Sprintf("%s/timetables/downloads/%s", s.prefix(), token),
		ExpiresAt: expiresAt,
	}, nil
}

// Open validates a download token and loads the artifact it points at.
func (s *ExportService) Open(token string) (*Download, error) {
	claims, err := s.signer.Parse(token)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInvalidToken.Code, appErrors.ErrInvalidToken.Status, appErrors.ErrInvalidToken.Message)
	}
	body, err := s.storage.Read(claims.Path)
	if err != nil {
		if errors.Is(err, storage.ErrNotExist) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "export file no longer exists")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to read export")
	}
	filename := path.Base(claims.Path)
	return &Download{
		Filename:    filename,
		ContentType: contentTypes[strings.TrimPrefix(path.Ext(filename), ".")],
		Body:        body,
	}, nil
}

// Cleanup removes files older than ttl (defaults to configured ResultTTL when ttl <= 0).
func (s *ExportService) Cleanup(ttl time.Duration) ([]string, error) {
	if ttl <= 0 {
		ttl = s.cfg.ResultTTL
	}
	return s.storage.CleanupOlderThan(ttl)
}

// StartCleanup boots a goroutine that purges expired exports periodically.
func (s *ExportService) StartCleanup(ctx context.Context) {
	if s.cfg.CleanupInterval <= 0 {
		return
	}
	ticker := time.NewTicker(s.cfg.CleanupInterval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				deleted, err := s.Cleanup(0)
				if err != nil {
					s.logger.Sugar().Warnw("export cleanup failed", "error", err)
					continue
				}
				if len(deleted) > 0 {
					s.logger.Sugar().Infow("expired exports removed", "count", len(deleted))
				}
			}
		}
	}()
}

func (s *ExportService) renderPayload(preview *dto.TimetablePreview, req dto.ExportRequest) ([]byte, error) {
	switch req.View {
	case dto.ExportViewExam:
		if preview.Exam == nil {
			return nil, appErrors.Clone(appErrors.ErrValidation, "preview does not hold an exam timetable")
		}
		data := timetable.ExamDataset(preview.Exam.Rows)
		if req.Format == FormatPDF {
			return s.pdf.Render(data, "Exam Timetable")
		}
		return s.csv.Render(data)
	case dto.ExportViewClasses, dto.ExportViewTeachers:
		if preview.Weekly == nil {
			return nil, appErrors.Clone(appErrors.ErrValidation, "preview does not hold a weekly timetable")
		}
		weekly := preview.Weekly
		grids, order, label, title := weekly.ClassTimetables, weekly.ClassOrder, "Class", "Class Timetables"
		if req.View == dto.ExportViewTeachers {
			grids, order, label, title = weekly.TeacherTimetables, weekly.TeacherOrder, "Teacher", "Teacher Timetables"
		}
		sections, err := timetable.GridSections(grids, order, weekly.Days, req.Target)
		if err != nil {
			return nil, err
		}
		if len(sections) == 0 {
			return nil, appErrors.Clone(appErrors.ErrValidation, "nothing to export for this view")
		}
		if req.Format == FormatPDF {
			return s.pdf.RenderSections(title, sections)
		}
		return s.csv.Render(export.Flatten(label, sections))
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported export view %q", req.View))
	}
}

func (s *ExportService) prefix() string {
	prefix := strings.TrimRight(s.cfg.APIPrefix, "/")
	if prefix == "" {
		prefix = "/api/v1"
	}
	return prefix
}

func buildFilename(previewID string, req dto.ExportRequest) string {
	name := req.View
	if req.Target != "" {
		name += "_" + sanitizeFilename(req.Target)
	}
	return fmt.Sprintf("%s/%s_%s.%s", previewID, name, time.Now().UTC().Format("20060102_150405"), req.Format)
}

func sanitizeFilename(raw string) string {
	replacer := strings.NewReplacer(" ", "_", "/", "-", "\\", "-", ":", "-", "..", ".", "__", "_")
	result := replacer.Replace(raw)
	if len(result) > 100 {
		return result[:100]
	}
	return result
}
