package timetable

import (
	"strconv"
	"strings"

	"github.com/ManithKumarpace/Edu-Pilot/internal/models"
	appErrors "github.com/ManithKumarpace/Edu-Pilot/pkg/errors"
)

// TeacherRow is one parsed line of the teacher roster table.
type TeacherRow struct {
	Name     string
	Classes  []string
	Subjects []string
}

// GradeSubjects is one parsed line of the subject table.
type GradeSubjects struct {
	Grade    int
	Subjects []string
}

var teacherColumns = []string{"teacher", "classes", "subjects"}

// ParseTeacherTable reads teacher rows from a table whose first row is the header.
// Subjects must be known to the catalog.
func ParseTeacherTable(rows [][]string, catalog *Catalog) ([]TeacherRow, error) {
	if len(rows) == 0 {
		return nil, appErrors.Parsef("teacher table is empty")
	}
	index := make(map[string]int, len(rows[0]))
	for i, cell := range rows[0] {
		index[strings.ToLower(strings.TrimSpace(cell))] = i
	}
	for _, column := range teacherColumns {
		if _, ok := index[column]; !ok {
			return nil, appErrors.Parsef("teacher table is missing column %q", column)
		}
	}

	result := make([]TeacherRow, 0, len(rows)-1)
	for n, row := range rows[1:] {
		line := n + 2
		if blankRow(row) {
			continue
		}
		name := strings.TrimSpace(cell(row, index["teacher"]))
		if name == "" {
			return nil, appErrors.Parsef("teacher table row %d: teacher name is empty", line)
		}
		classes := splitList(cell(row, index["classes"]))
		if len(classes) == 0 {
			return nil, appErrors.Parsef("teacher table row %d (%s): no classes listed", line, name)
		}
		for i, class := range classes {
			grade, err := strconv.Atoi(class)
			if err != nil || grade <= 0 {
				return nil, appErrors.Parsef("teacher table row %d (%s): class %q is not a grade number", line, name, class)
			}
			classes[i] = strconv.Itoa(grade)
		}
		subjects := splitList(cell(row, index["subjects"]))
		if len(subjects) == 0 {
			return nil, appErrors.Parsef("teacher table row %d (%s): no subjects listed", line, name)
		}
		for _, subject := range subjects {
			if _, ok := catalog.Category(subject); !ok {
				return nil, appErrors.Parsef("teacher table row %d (%s): unknown subject %q", line, name, subject)
			}
		}
		result = append(result, TeacherRow{Name: name, Classes: classes, Subjects: subjects})
	}
	if len(result) == 0 {
		return nil, appErrors.Parsef("teacher table has no teacher rows")
	}
	return result, nil
}

// ParseSubjectTable reads grade rows: first column grade, remaining columns subject names.
// A leading header row (non-numeric first cell) is skipped; blank cells are ignored.
func ParseSubjectTable(rows [][]string) ([]GradeSubjects, error) {
	result := make([]GradeSubjects, 0, len(rows))
	for n, row := range rows {
		line := n + 1
		if blankRow(row) {
			continue
		}
		first := strings.TrimSpace(row[0])
		grade, err := strconv.Atoi(first)
		if err != nil {
			if n == 0 {
				continue
			}
			return nil, appErrors.Parsef("subject table row %d: grade %q is not a number", line, first)
		}
		if grade <= 0 {
			return nil, appErrors.Parsef("subject table row %d: grade %d must be positive", line, grade)
		}
		seen := make(map[string]bool)
		subjects := make([]string, 0, len(row)-1)
		for _, raw := range row[1:] {
			subject := strings.TrimSpace(raw)
			if subject == "" {
				continue
			}
			if seen[subject] {
				return nil, appErrors.Parsef("subject table row %d: subject %q listed twice for grade %d", line, subject, grade)
			}
			seen[subject] = true
			subjects = append(subjects, subject)
		}
		result = append(result, GradeSubjects{Grade: grade, Subjects: subjects})
	}
	if len(result) == 0 {
		return nil, appErrors.Parsef("subject table has no grade rows")
	}
	return result, nil
}

// CurriculumFromTable converts parsed subject rows into a curriculum map, rejecting
// duplicate grades and subjects unknown to the catalog.
func CurriculumFromTable(table []GradeSubjects, catalog *Catalog) (map[int][]string, error) {
	curriculum := make(map[int][]string, len(table))
	for _, row := range table {
		if _, dup := curriculum[row.Grade]; dup {
			return nil, appErrors.Parsef("subject table lists grade %d more than once", row.Grade)
		}
		for _, subject := range row.Subjects {
			if _, ok := catalog.Category(subject); !ok {
				return nil, appErrors.Parsef("subject table grade %d: unknown subject %q", row.Grade, subject)
			}
		}
		curriculum[row.Grade] = append([]string(nil), row.Subjects...)
	}
	return curriculum, nil
}

// ParseCategories reads "Name:category" entries, as used by configuration.
func ParseCategories(entries []string) (map[string]models.SubjectCategory, error) {
	out := make(map[string]models.SubjectCategory, len(entries))
	for _, entry := range entries {
		name, category, ok := strings.Cut(entry, ":")
		name = strings.TrimSpace(name)
		cat := models.SubjectCategory(strings.ToLower(strings.TrimSpace(category)))
		if !ok || name == "" || !cat.Valid() {
			return nil, appErrors.Parsef("subject category entry %q must look like Name:main|language|other", entry)
		}
		out[name] = cat
	}
	return out, nil
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

func blankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
