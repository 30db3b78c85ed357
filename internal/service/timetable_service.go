package service

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ManithKumarpace/Edu-Pilot/internal/dto"
	"github.com/ManithKumarpace/Edu-Pilot/internal/timetable"
	appErrors "github.com/ManithKumarpace/Edu-Pilot/pkg/errors"
	"github.com/ManithKumarpace/Edu-Pilot/pkg/middleware/requestid"
)

// Generation kinds used for metrics and logs.
const (
	KindRoster = "roster"
	KindExam   = "exam"
	KindWeekly = "weekly"
)

type previewStore interface {
	Save(ctx context.Context, preview *dto.TimetablePreview) error
	Get(ctx context.Context, id string) (*dto.TimetablePreview, error)
	Delete(ctx context.Context, id string) error
}

type timetableExporter interface {
	Render(ctx context.Context, preview *dto.TimetablePreview, req dto.ExportRequest) (*dto.ExportResponse, error)
	Open(token string) (*Download, error)
}

// TimetableConfig carries the generator defaults.
type TimetableConfig struct {
	Sections        int
	ElectiveSubject string
	// MaxExamDays bounds the inclusive exam date range.
	MaxExamDays int
}

// TimetableService validates requests, runs the generators with a per-request seed and keeps
// previews for later export.
type TimetableService struct {
	catalog   *timetable.Catalog
	previews  previewStore
	exporter  timetableExporter
	validator *validator.Validate
	metrics   *MetricsService
	logger    *zap.Logger
	cfg       TimetableConfig
	seeder    func() int64
}

// NewTimetableService wires timetable dependencies.
func NewTimetableService(
	catalog *timetable.Catalog,
	previews previewStore,
	exporter timetableExporter,
	validate *validator.Validate,
	metrics *MetricsService,
	logger *zap.Logger,
	cfg TimetableConfig,
) *TimetableService {
	if catalog == nil {
		catalog = timetable.DefaultCatalog()
	}
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Sections <= 0 {
		cfg.Sections = 4
	}
	if cfg.MaxExamDays <= 0 {
		cfg.MaxExamDays = 366
	}
	return &TimetableService{
		catalog:   catalog,
		previews:  previews,
		exporter:  exporter,
		validator: validate,
		metrics:   metrics,
		logger:    logger,
		cfg:       cfg,
		seeder:    func() int64 { return time.Now().UnixNano() },
	}
}

// BuildRoster normalises a teacher table into the section-level roster.
func (s *TimetableService) BuildRoster(ctx context.Context, req dto.BuildRosterRequest) (resp *dto.RosterResponse, err error) {
	defer s.observe(KindRoster, time.Now(), &err)
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid roster payload")
	}

	seed := s.seed(req.Seed)
	roster, err := s.buildRoster(s.catalog, req.Teachers, req.Sections, timetable.NewRand(seed))
	if err != nil {
		return nil, err
	}

	out := timetable.FormatRoster(roster)
	out.Seed = seed
	s.logger.Info("roster built",
		zap.String("request_id", requestid.FromContext(ctx)),
		zap.Int64("seed", seed),
		zap.Int("teachers", len(roster.Teachers)),
		zap.Int("unassigned_sections", len(roster.Unassigned)),
	)
	return &out, nil
}

// GenerateExam schedules every class's subjects between the requested dates.
func (s *TimetableService) GenerateExam(ctx context.Context, req dto.GenerateExamRequest) (resp *dto.ExamTimetableResponse, err error) {
	defer s.observe(KindExam, time.Now(), &err)
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid exam payload")
	}

	classes, err := timetable.ParseSubjectTable(req.Subjects)
	if err != nil {
		return nil, err
	}
	start, err := timetable.ParseExamDate(req.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := timetable.ParseExamDate(req.EndDate)
	if err != nil {
		return nil, err
	}
	if end.After(start.AddDate(0, 0, s.cfg.MaxExamDays-1)) {
		return nil, appErrors.Parsef("exam range %s to %s is longer than the limit of %d days",
			start.Format(time.DateOnly), end.Format(time.DateOnly), s.cfg.MaxExamDays)
	}

	seed := s.seed(req.Seed)
	result, err := timetable.NewExamScheduler(timetable.NewRand(seed)).Schedule(classes, start, end)
	if err != nil {
		return nil, err
	}
	s.metrics.RecordExamDiagnostics(result.Clashes, len(result.Unscheduled))

	out := timetable.FormatExam(result)
	out.Seed = seed
	out.PreviewID = uuid.NewString()
	preview := &dto.TimetablePreview{ID: out.PreviewID, Kind: dto.PreviewKindExam, Exam: &out}
	if err := s.previews.Save(ctx, preview); err != nil {
		return nil, err
	}

	s.logger.Info("exam timetable generated",
		zap.String("request_id", requestid.FromContext(ctx)),
		zap.String("preview_id", preview.ID),
		zap.Int64("seed", seed),
		zap.Int("rows", len(out.Rows)),
		zap.Int("clashes", out.Clashes),
		zap.Int("unscheduled", len(out.Unscheduled)),
	)
	return &out, nil
}

// GenerateWeekly builds the roster, class grids and teacher grids in one run.
func (s *TimetableService) GenerateWeekly(ctx context.Context, req dto.GenerateWeeklyRequest) (resp *dto.WeeklyTimetableResponse, err error) {
	defer s.observe(KindWeekly, time.Now(), &err)
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid weekly payload")
	}

	catalog := s.catalog
	if len(req.Subjects) > 0 {
		table, err := timetable.ParseSubjectTable(req.Subjects)
		if err != nil {
			return nil, err
		}
		curriculum, err := timetable.CurriculumFromTable(table, catalog)
		if err != nil {
			return nil, err
		}
		catalog = catalog.WithCurriculum(curriculum)
	}

	seed := s.seed(req.Seed)
	rng := timetable.NewRand(seed)
	sections := s.sections(req.Sections)
	roster, err := s.buildRoster(catalog, req.Teachers, sections, rng)
	if err != nil {
		return nil, err
	}
	result := timetable.NewWeeklyScheduler(catalog, rng, sections).Generate(roster)
	s.metrics.RecordWeeklyDiagnostics(len(result.Displaced), len(result.Dropped), len(result.Unstaffed))

	out := timetable.FormatWeekly(result, roster)
	out.Seed = seed
	out.PreviewID = uuid.NewString()
	preview := &dto.TimetablePreview{ID: out.PreviewID, Kind: dto.PreviewKindWeekly, Weekly: &out}
	if err := s.previews.Save(ctx, preview); err != nil {
		return nil, err
	}

	s.logger.Info("weekly timetable generated",
		zap.String("request_id", requestid.FromContext(ctx)),
		zap.String("preview_id", preview.ID),
		zap.Int64("seed", seed),
		zap.Int("classes", len(out.ClassOrder)),
		zap.Int("teachers", len(out.TeacherOrder)),
		zap.Int("displaced", len(result.Displaced)),
		zap.Int("dropped", len(result.Dropped)),
		zap.Int("unstaffed", len(result.Unstaffed)),
	)
	return &out, nil
}

// GetPreview returns a stored generation result.
func (s *TimetableService) GetPreview(ctx context.Context, id string) (*dto.TimetablePreview, error) {
	if id == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "preview id is required")
	}
	return s.previews.Get(ctx, id)
}

// DeletePreview discards a stored generation result. Deleting an unknown id succeeds.
func (s *TimetableService) DeletePreview(ctx context.Context, id string) error {
	if id == "" {
		return appErrors.Clone(appErrors.ErrValidation, "preview id is required")
	}
	if err := s.previews.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete preview")
	}
	s.logger.Info("preview deleted",
		zap.String("request_id", requestid.FromContext(ctx)),
		zap.String("preview_id", id),
	)
	return nil
}

// Export renders a stored preview into a downloadable file.
func (s *TimetableService) Export(ctx context.Context, id string, req dto.ExportRequest) (*dto.ExportResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid export payload")
	}
	preview, err := s.GetPreview(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.exporter.Render(ctx, preview, req)
}

// OpenDownload resolves a signed download token.
func (s *TimetableService) OpenDownload(token string) (*Download, error) {
	return s.exporter.Open(token)
}

func (s *TimetableService) buildRoster(catalog *timetable.Catalog, table [][]string, sections int, rng timetable.Rand) (*timetable.Roster, error) {
	rows, err := timetable.ParseTeacherTable(table, catalog)
	if err != nil {
		return nil, err
	}
	builder := timetable.NewRosterBuilder(catalog, rng, timetable.RosterOptions{
		Sections:        s.sections(sections),
		ElectiveSubject: s.cfg.ElectiveSubject,
	})
	return builder.Build(rows)
}

func (s *TimetableService) seed(requested *int64) int64 {
	if requested != nil {
		return *requested
	}
	return s.seeder()
}

func (s *TimetableService) sections(requested int) int {
	if requested > 0 {
		return requested
	}
	return s.cfg.Sections
}

func (s *TimetableService) observe(kind string, start time.Time, errp *error) {
	outcome := OutcomeSuccess
	if err := *errp; err != nil {
		outcome = OutcomeFailed
		if errors.Is(err, appErrors.ErrValidation) || errors.Is(err, appErrors.ErrInputParse) || errors.Is(err, appErrors.ErrConstraintUnsatisfiable) {
			outcome = OutcomeInvalid
		}
	}
	s.metrics.ObserveGeneration(kind, outcome, time.Since(start))
}
