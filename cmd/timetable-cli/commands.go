package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ManithKumarpace/Edu-Pilot/internal/dto"
	"github.com/ManithKumarpace/Edu-Pilot/internal/repository"
	"github.com/ManithKumarpace/Edu-Pilot/internal/service"
	"github.com/ManithKumarpace/Edu-Pilot/internal/timetable"
	"github.com/ManithKumarpace/Edu-Pilot/pkg/export"
	"github.com/ManithKumarpace/Edu-Pilot/pkg/logger"
)

type cliOptions struct {
	verbose  bool
	seed     int64
	seedSet  bool
	sections int
	maxDays  int
	elective string
	extra    []string
	out      string
}

type app struct {
	opts *cliOptions
	out  io.Writer
	log  *zap.Logger
}

func newRootCmd(out io.Writer) *cobra.Command {
	opts := &cliOptions{}
	a := &app{opts: opts, out: out}

	root := &cobra.Command{
		Use:           "timetable-cli",
		Short:         "Generate school exam and weekly timetables from CSV tables",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			opts.seedSet = cmd.Flags().Changed("seed")
			if ext := strings.ToLower(filepath.Ext(opts.out)); opts.out != "" && ext != ".csv" && ext != ".pdf" {
				return fmt.Errorf("unsupported output %q: use a .csv or .pdf file", opts.out)
			}
			logr, err := logger.NewConsole(opts.verbose)
			if err != nil {
				return err
			}
			a.log = logr
			return nil
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			_ = a.log.Sync()
		},
	}
	flags := root.PersistentFlags()
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "log generator decisions to stderr")
	flags.Int64Var(&opts.seed, "seed", 0, "random seed (picked from the clock when omitted)")
	flags.IntVar(&opts.sections, "sections", 4, "sections per grade (1-26)")
	flags.IntVar(&opts.maxDays, "max-exam-days", 366, "longest exam date range accepted, in days")
	flags.StringVar(&opts.elective, "elective", "General Knowledge", "elective subject added to every grade")
	flags.StringSliceVar(&opts.extra, "extra-subject", nil, "extra catalog entry as Name:category (repeatable)")
	flags.StringVarP(&opts.out, "out", "o", "", "write the result to a .csv or .pdf file")

	root.AddCommand(a.rosterCmd(), a.examCmd(), a.weeklyCmd())
	return root
}

func (a *app) rosterCmd() *cobra.Command {
	var teachersPath string
	cmd := &cobra.Command{
		Use:   "roster",
		Short: "Print the section-level teacher roster",
		RunE: func(cmd *cobra.Command, _ []string) error {
			teachers, err := readTable(teachersPath)
			if err != nil {
				return err
			}
			svc, err := a.service()
			if err != nil {
				return err
			}
			resp, err := svc.BuildRoster(cmd.Context(), dto.BuildRosterRequest{
				Teachers: teachers,
				Sections: a.opts.sections,
				Seed:     a.seedPtr(),
			})
			if err != nil {
				return err
			}
			printRoster(a.out, resp)
			return nil
		},
	}
	cmd.Flags().StringVarP(&teachersPath, "teachers", "t", "", "teacher table CSV (Teacher, Classes, Subjects)")
	_ = cmd.MarkFlagRequired("teachers")
	return cmd
}

func (a *app) examCmd() *cobra.Command {
	var subjectsPath, start, end string
	cmd := &cobra.Command{
		Use:   "exam",
		Short: "Generate an exam timetable for a date range",
		RunE: func(cmd *cobra.Command, _ []string) error {
			subjects, err := readTable(subjectsPath)
			if err != nil {
				return err
			}
			svc, err := a.service()
			if err != nil {
				return err
			}
			resp, err := svc.GenerateExam(cmd.Context(), dto.GenerateExamRequest{
				Subjects:  subjects,
				StartDate: start,
				EndDate:   end,
				Seed:      a.seedPtr(),
			})
			if err != nil {
				return err
			}
			printExam(a.out, resp)
			if a.opts.out == "" {
				return nil
			}
			data := timetable.ExamDataset(resp.Rows)
			return a.writeFile(data, []export.Section{{Title: "Exam Timetable", Data: data}}, "Exam Timetable")
		},
	}
	cmd.Flags().StringVarP(&subjectsPath, "subjects", "s", "", "subject table CSV (grade followed by subjects)")
	cmd.Flags().StringVar(&start, "start", "", "first exam date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&end, "end", "", "last exam date (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("subjects")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")
	return cmd
}

func (a *app) weeklyCmd() *cobra.Command {
	var teachersPath, curriculumPath, view, target string
	cmd := &cobra.Command{
		Use:   "weekly",
		Short: "Generate weekly class and teacher timetables",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if view != dto.ExportViewClasses && view != dto.ExportViewTeachers {
				return fmt.Errorf("unknown view %q: use classes or teachers", view)
			}
			teachers, err := readTable(teachersPath)
			if err != nil {
				return err
			}
			var curriculum [][]string
			if curriculumPath != "" {
				if curriculum, err = readTable(curriculumPath); err != nil {
					return err
				}
			}
			svc, err := a.service()
			if err != nil {
				return err
			}
			resp, err := svc.GenerateWeekly(cmd.Context(), dto.GenerateWeeklyRequest{
				Teachers: teachers,
				Subjects: curriculum,
				Sections: a.opts.sections,
				Seed:     a.seedPtr(),
			})
			if err != nil {
				return err
			}

			label, grids, order := "Class", resp.ClassTimetables, resp.ClassOrder
			if view == dto.ExportViewTeachers {
				label, grids, order = "Teacher", resp.TeacherTimetables, resp.TeacherOrder
			}
			sections, err := timetable.GridSections(grids, order, resp.Days, target)
			if err != nil {
				return err
			}
			printWeekly(a.out, resp, sections)
			if a.opts.out == "" {
				return nil
			}
			return a.writeFile(export.Flatten(label, sections), sections, label+" Timetables")
		},
	}
	cmd.Flags().StringVarP(&teachersPath, "teachers", "t", "", "teacher table CSV (Teacher, Classes, Subjects)")
	cmd.Flags().StringVarP(&curriculumPath, "subjects", "s", "", "optional curriculum CSV (grade followed by subjects)")
	cmd.Flags().StringVar(&view, "view", dto.ExportViewClasses, "grids to show: classes or teachers")
	cmd.Flags().StringVar(&target, "target", "", "only show this class section or teacher")
	_ = cmd.MarkFlagRequired("teachers")
	return cmd
}

func (a *app) service() (*service.TimetableService, error) {
	extra, err := timetable.ParseCategories(a.opts.extra)
	if err != nil {
		return nil, err
	}
	catalog := timetable.DefaultCatalog().WithCategories(extra)
	previews := service.NewPreviewService(repository.NewMemoryPreviewRepository(), nil, time.Hour, a.log)
	return service.NewTimetableService(catalog, previews, nil, nil, nil, a.log, service.TimetableConfig{
		Sections:        a.opts.sections,
		ElectiveSubject: a.opts.elective,
		MaxExamDays:     a.opts.maxDays,
	}), nil
}

func (a *app) seedPtr() *int64 {
	if !a.opts.seedSet {
		return nil
	}
	seed := a.opts.seed
	return &seed
}

func (a *app) writeFile(data export.Dataset, sections []export.Section, title string) error {
	var (
		body []byte
		err  error
	)
	switch strings.ToLower(filepath.Ext(a.opts.out)) {
	case ".csv":
		body, err = export.NewCSVExporter().Render(data)
	case ".pdf":
		body, err = export.NewPDFExporter().RenderSections(title, sections)
	default:
		return fmt.Errorf("unsupported output %q", a.opts.out)
	}
	if err != nil {
		return err
	}
	if err := os.WriteFile(a.opts.out, body, 0o644); err != nil {
		return err
	}
	a.log.Info("timetable written", zap.String("path", a.opts.out), zap.Int("bytes", len(body)))
	heading(a.out, "Wrote "+a.opts.out)
	return nil
}

func readTable(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return rows, nil
}
