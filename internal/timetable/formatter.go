package timetable

import (
	"fmt"
	"strconv"

	"github.com/ManithKumarpace/Edu-Pilot/internal/dto"
	"github.com/ManithKumarpace/Edu-Pilot/internal/models"
	appErrors "github.com/ManithKumarpace/Edu-Pilot/pkg/errors"
	"github.com/ManithKumarpace/Edu-Pilot/pkg/export"
)

// Exam table column headers.
var examHeaders = []string{"Date", "Class", "Subject", "Session"}

// FormatRoster converts a roster into transport records.
func FormatRoster(roster *Roster) dto.RosterResponse {
	out := dto.RosterResponse{
		Teachers:           make([]dto.RosterTeacher, 0, len(roster.Teachers)),
		ClassTeachers:      make(map[string]string, len(roster.ClassTeachers)),
		UnassignedSections: append([]string(nil), roster.Unassigned...),
	}
	for _, teacher := range roster.Teachers {
		pairs := make([][]string, 0, len(teacher.Assignments))
		for _, pair := range teacher.Assignments {
			pairs = append(pairs, []string{pair.Class, pair.Subject})
		}
		out.Teachers = append(out.Teachers, dto.RosterTeacher{
			Name:          teacher.Name,
			Role:          teacher.Role,
			Level:         string(teacher.Level),
			ClassSubjects: pairs,
		})
	}
	for section, name := range roster.ClassTeachers {
		out.ClassTeachers[section] = name
	}
	return out
}

// FormatExam converts an exam run into the exam table records.
func FormatExam(result *ExamResult) dto.ExamTimetableResponse {
	out := dto.ExamTimetableResponse{
		Rows:    make([]dto.ExamTimetableRow, 0, len(result.Slots)),
		Gaps:    make([]dto.ExamGap, 0, len(result.Gaps)),
		Clashes: result.Clashes,
	}
	for _, slot := range result.Slots {
		out.Rows = append(out.Rows, dto.ExamTimetableRow{
			Date:    slot.Date.Format(models.ExamDateLayout),
			Class:   slot.Class,
			Subject: slot.Subject,
			Session: string(slot.Session),
		})
	}
	for _, gap := range result.Gaps {
		out.Gaps = append(out.Gaps, dto.ExamGap{Class: gap.Class, Gap: gap.Gap})
	}
	for _, missing := range result.Unscheduled {
		out.Unscheduled = append(out.Unscheduled, dto.ExamUnscheduled{Class: missing.Class, Subject: missing.Subject})
	}
	return out
}

// FormatWeekly converts class and teacher grids into day-keyed maps.
func FormatWeekly(result *WeeklyResult, roster *Roster) dto.WeeklyTimetableResponse {
	out := dto.WeeklyTimetableResponse{
		Days:              dayNames(),
		ClassOrder:        append([]string(nil), result.ClassOrder...),
		TeacherOrder:      append([]string(nil), result.TeacherOrder...),
		ClassTimetables:   make(map[string]map[string][]string, len(result.Classes)),
		TeacherTimetables: make(map[string]map[string][]string, len(result.Teachers)),
		ClassTeachers:     make(map[string]string),
		SportsDayClasses:  append([]string(nil), result.SportsDay...),
	}
	for class, grid := range result.Classes {
		out.ClassTimetables[class] = gridRecord(grid)
	}
	for teacher, grid := range result.Teachers {
		out.TeacherTimetables[teacher] = gridRecord(grid)
	}
	if roster != nil {
		for section, name := range roster.ClassTeachers {
			out.ClassTeachers[section] = name
		}
		out.Diagnostics.UnassignedSections = append([]string(nil), roster.Unassigned...)
	}
	for _, f := range result.Fallbacks {
		out.Diagnostics.Fallbacks = append(out.Diagnostics.Fallbacks, dto.AnchorFallback{Class: f.Class, Subject: f.Subject, Reason: f.Reason})
	}
	out.Diagnostics.Unstaffed = cellRecords(result.Unstaffed)
	out.Diagnostics.Dropped = cellRecords(result.Dropped)
	for _, d := range result.Displaced {
		out.Diagnostics.Displaced = append(out.Diagnostics.Displaced, dto.GridDisplacement{
			Teacher: d.Teacher, Class: d.Class, Day: string(d.Day), From: d.From, To: d.To,
		})
	}
	return out
}

// ExamDataset renders exam rows as an export table.
func ExamDataset(rows []dto.ExamTimetableRow) export.Dataset {
	data := export.Dataset{Headers: examHeaders, Rows: make([]map[string]string, 0, len(rows))}
	for _, row := range rows {
		data.Rows = append(data.Rows, map[string]string{
			"Date":    row.Date,
			"Class":   strconv.Itoa(row.Class),
			"Subject": row.Subject,
			"Session": row.Session,
		})
	}
	return data
}

// GridSections renders one export section per owner (class or teacher) in order.
// A non-empty target restricts the output to that owner.
func GridSections(grids map[string]map[string][]string, order []string, days []string, target string) ([]export.Section, error) {
	if target != "" {
		if _, ok := grids[target]; !ok {
			return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("no timetable for %q", target))
		}
		order = []string{target}
	}
	sections := make([]export.Section, 0, len(order))
	for _, owner := range order {
		grid, ok := grids[owner]
		if !ok {
			continue
		}
		sections = append(sections, export.Section{Title: owner, Data: gridDataset(grid, days)})
	}
	return sections, nil
}

func gridDataset(grid map[string][]string, days []string) export.Dataset {
	periods := 0
	for _, day := range days {
		periods = max(periods, len(grid[day]))
	}
	headers := []string{"Day"}
	for p := 1; p <= periods; p++ {
		headers = append(headers, periodHeader(p))
	}
	data := export.Dataset{Headers: headers}
	for _, day := range days {
		row := map[string]string{"Day": day}
		for p, cell := range grid[day] {
			row[periodHeader(p+1)] = cell
		}
		data.Rows = append(data.Rows, row)
	}
	return data
}

func periodHeader(p int) string {
	return "P" + strconv.Itoa(p)
}

func gridRecord(grid models.WeeklyGrid) map[string][]string {
	out := make(map[string][]string, len(grid))
	for day, periods := range grid {
		out[string(day)] = append([]string(nil), periods...)
	}
	return out
}

func cellRecords(cells []CellRef) []dto.GridCell {
	if len(cells) == 0 {
		return nil
	}
	out := make([]dto.GridCell, 0, len(cells))
	for _, c := range cells {
		out = append(out, dto.GridCell{Class: c.Class, Day: string(c.Day), Period: c.Period, Subject: c.Subject})
	}
	return out
}

func dayNames() []string {
	names := make([]string, 0, len(models.TeachingDays))
	for _, day := range models.TeachingDays {
		names = append(names, string(day))
	}
	return names
}
