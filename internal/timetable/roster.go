package timetable

import (
	"sort"
	"strconv"
	"time"

	"github.com/ManithKumarpace/Edu-Pilot/internal/models"
	appErrors "github.com/ManithKumarpace/Edu-Pilot/pkg/errors"
)

const (
	underloadedMax = 3
	overloadedMin  = 5
	transferBatch  = 3
	lowerGradeMax  = 4
	defaultSection = 4
)

var electiveBlocks = [][]string{
	{"9A", "9B"},
	{"9C", "9D"},
	{"10A", "10B"},
	{"10C", "10D"},
}

// RosterOptions tunes roster generation.
type RosterOptions struct {
	Grades          []int
	Sections        int
	ElectiveSubject string
}

// Roster is the normalised, section-level teacher list handed to the schedulers.
type Roster struct {
	Teachers      []models.TeacherRecord `json:"teachers"`
	ClassTeachers map[string]string      `json:"class_teachers"`
	Unassigned    []string               `json:"unassigned_sections,omitempty"`
}

// ClassTeacher returns the teacher leading the section.
func (r *Roster) ClassTeacher(section string) (models.TeacherRecord, bool) {
	name, ok := r.ClassTeachers[section]
	if !ok {
		return models.TeacherRecord{}, false
	}
	role := models.ClassTeacherRole(section)
	for _, teacher := range r.Teachers {
		if teacher.Name == name && teacher.Role == role {
			return teacher, true
		}
	}
	return models.TeacherRecord{}, false
}

// RosterBuilder runs the roster pipeline: records, class teachers, load balancing,
// merging of other-only teachers, elective injection and section expansion.
type RosterBuilder struct {
	catalog *Catalog
	rng     Rand
	opts    RosterOptions
}

// NewRosterBuilder wires a builder. Missing options fall back to the catalog grades,
// four sections, General Knowledge electives and a time-seeded source.
func NewRosterBuilder(catalog *Catalog, rng Rand, opts RosterOptions) *RosterBuilder {
	if catalog == nil {
		catalog = DefaultCatalog()
	}
	if rng == nil {
		rng = NewRand(time.Now().UnixNano())
	}
	if len(opts.Grades) == 0 {
		opts.Grades = catalog.Grades()
	}
	if opts.Sections <= 0 {
		opts.Sections = defaultSection
	}
	if opts.ElectiveSubject == "" {
		opts.ElectiveSubject = models.SubjectGeneralKnowledge
	}
	return &RosterBuilder{catalog: catalog, rng: rng, opts: opts}
}

// Sections lists every generated class section, grade-major.
func (b *RosterBuilder) Sections() []string {
	return GenerateSections(b.opts.Grades, b.opts.Sections)
}

// Build converts parsed rows into the final roster.
func (b *RosterBuilder) Build(rows []TeacherRow) (*Roster, error) {
	teachers, err := BuildTeacherRecords(rows)
	if err != nil {
		return nil, err
	}
	sections := b.Sections()
	AssignClassTeachers(teachers, sections, b.rng)
	RedistributeLoad(teachers)
	teachers = MergeOtherOnly(teachers, b.catalog)
	AssignElectives(teachers, b.opts.ElectiveSubject)
	teachers = ExpandSections(teachers, b.opts.Sections)

	roster := &Roster{Teachers: teachers, ClassTeachers: make(map[string]string)}
	for _, teacher := range teachers {
		if section, ok := teacher.ClassTeacherOf(); ok {
			roster.ClassTeachers[section] = teacher.Name
		}
	}
	for _, section := range sections {
		if _, ok := roster.ClassTeachers[section]; !ok {
			roster.Unassigned = append(roster.Unassigned, section)
		}
	}
	return roster, nil
}

// GenerateSections returns "1A".."10D" style identifiers for the grades.
func GenerateSections(grades []int, sections int) []string {
	out := make([]string, 0, len(grades)*sections)
	for _, grade := range grades {
		for _, letter := range models.SectionLetters(sections) {
			out = append(out, models.SectionID(grade, letter))
		}
	}
	return out
}

// BuildTeacherRecords cross-multiplies each row's classes and subjects. The level is
// decided by the first listed class only.
func BuildTeacherRecords(rows []TeacherRow) ([]models.TeacherRecord, error) {
	if len(rows) == 0 {
		return nil, appErrors.Parsef("teacher table has no teacher rows")
	}
	teachers := make([]models.TeacherRecord, 0, len(rows))
	for _, row := range rows {
		if len(row.Classes) == 0 || len(row.Subjects) == 0 {
			return nil, appErrors.Parsef("teacher %q needs at least one class and one subject", row.Name)
		}
		first, err := strconv.Atoi(row.Classes[0])
		if err != nil {
			return nil, appErrors.Parsef("teacher %q: class %q is not a grade number", row.Name, row.Classes[0])
		}
		level := models.LevelLower
		if first > lowerGradeMax {
			level = models.LevelHigher
		}
		pairs := make([]models.ClassSubject, 0, len(row.Classes)*len(row.Subjects))
		for _, class := range row.Classes {
			for _, subject := range row.Subjects {
				pairs = append(pairs, models.ClassSubject{Class: class, Subject: subject})
			}
		}
		teachers = append(teachers, models.TeacherRecord{
			Name:        row.Name,
			Role:        models.RoleNormal,
			Level:       level,
			Assignments: pairs,
		})
	}
	return teachers, nil
}

// AssignClassTeachers picks, for every section, a random teacher who teaches the
// section's grade and leads no other section. It returns sections left without one.
func AssignClassTeachers(teachers []models.TeacherRecord, sections []string, rng Rand) []string {
	assigned := make(map[string]bool)
	var unassigned []string
	for _, section := range sections {
		grade, _, err := models.ParseSection(section)
		if err != nil {
			unassigned = append(unassigned, section)
			continue
		}
		gradeKey := strconv.Itoa(grade)

		var available []int
		for i := range teachers {
			if assigned[teachers[i].Name] || !teachesGrade(teachers[i], gradeKey) {
				continue
			}
			available = append(available, i)
		}
		if len(available) == 0 {
			unassigned = append(unassigned, section)
			continue
		}
		chosen := available[rng.Intn(len(available))]
		teachers[chosen].Role = models.ClassTeacherRole(section)
		assigned[teachers[chosen].Name] = true
	}
	return unassigned
}

func teachesGrade(teacher models.TeacherRecord, grade string) bool {
	for _, pair := range teacher.Assignments {
		if pair.Class == grade {
			return true
		}
	}
	return false
}

// RedistributeLoad moves pairs beyond the fifth from overloaded teachers to teachers
// holding fewer than three, in batches of up to three. Pairs nobody can take stay put.
func RedistributeLoad(teachers []models.TeacherRecord) {
	var under, over []int
	for i := range teachers {
		switch load := teachers[i].Load(); {
		case load <= underloadedMax:
			under = append(under, i)
		case load > overloadedMin:
			over = append(over, i)
		}
	}

	for _, oi := range over {
		source := &teachers[oi]
		extras := append([]models.ClassSubject(nil), source.Assignments[overloadedMin:]...)
		source.Assignments = source.Assignments[:overloadedMin:overloadedMin]
		for _, ui := range under {
			if len(extras) == 0 {
				break
			}
			target := &teachers[ui]
			if target.Load() >= underloadedMax {
				continue
			}
			n := min(transferBatch, len(extras))
			target.Assignments = append(target.Assignments, extras[:n]...)
			extras = extras[n:]
		}
		source.Assignments = append(source.Assignments, extras...)
	}
}

// MergeOtherOnly folds teachers whose every pair is an "other" subject into one record
// per name. Everyone else passes through unchanged.
func MergeOtherOnly(teachers []models.TeacherRecord, catalog *Catalog) []models.TeacherRecord {
	out := make([]models.TeacherRecord, 0, len(teachers))
	merged := make(map[string]int)
	for _, teacher := range teachers {
		if !onlyOther(teacher, catalog) {
			out = append(out, teacher)
			continue
		}
		if idx, ok := merged[teacher.Name]; ok {
			out[idx].Assignments = append(out[idx].Assignments, teacher.Assignments...)
			continue
		}
		merged[teacher.Name] = len(out)
		out = append(out, teacher.Clone())
	}
	return out
}

func onlyOther(teacher models.TeacherRecord, catalog *Catalog) bool {
	for _, pair := range teacher.Assignments {
		if !catalog.Is(pair.Subject, models.CategoryOther) {
			return false
		}
	}
	return true
}

// AssignElectives gives the four lowest-loaded higher-level teachers two elective
// sections each. With fewer eligible teachers only the leading blocks are filled.
func AssignElectives(teachers []models.TeacherRecord, subject string) {
	var higher []int
	for i := range teachers {
		if teachers[i].Level == models.LevelHigher {
			higher = append(higher, i)
		}
	}
	sort.SliceStable(higher, func(a, b int) bool {
		return teachers[higher[a]].Load() < teachers[higher[b]].Load()
	})
	for k, idx := range higher {
		if k >= len(electiveBlocks) {
			break
		}
		for _, class := range electiveBlocks[k] {
			teachers[idx].Assignments = append(teachers[idx].Assignments, models.ClassSubject{Class: class, Subject: subject})
		}
	}
}

// ExpandSections turns grade-level pairs into one pair per section letter. Pairs that
// already name a section are kept as they are, so expansion is idempotent.
func ExpandSections(teachers []models.TeacherRecord, sections int) []models.TeacherRecord {
	letters := models.SectionLetters(sections)
	out := make([]models.TeacherRecord, 0, len(teachers))
	for _, teacher := range teachers {
		expanded := make([]models.ClassSubject, 0, len(teacher.Assignments)*sections)
		for _, pair := range teacher.Assignments {
			grade, letter, err := models.ParseSection(pair.Class)
			if err != nil || letter != "" {
				expanded = append(expanded, pair)
				continue
			}
			for _, l := range letters {
				expanded = append(expanded, models.ClassSubject{Class: models.SectionID(grade, l), Subject: pair.Subject})
			}
		}
		record := teacher
		record.Assignments = expanded
		out = append(out, record)
	}
	return out
}
