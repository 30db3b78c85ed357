package timetable

import (
	"time"

	"github.com/ManithKumarpace/Edu-Pilot/internal/models"
)

const (
	lowerPeriods      = 5
	higherPeriods     = 8
	mainWeeklyCap     = 12
	mainDailyCap      = 2
	languageWeeklyCap = 5
	otherWeeklyCap    = 2
	sportsMinGrade    = 5
	sportsEarliest    = 5
	sportsDayMinGrade = 7
	sportsDayClasses  = 3
)

var (
	mainPeriods      = []int{1, 2}
	sportsDayPeriods = []int{6, 7}
)

// PeriodsFor returns the number of daily periods for a grade.
func PeriodsFor(grade int) int {
	if grade <= lowerGradeMax {
		return lowerPeriods
	}
	return higherPeriods
}

// CellRef points at one class period.
type CellRef struct {
	Class   string         `json:"class"`
	Day     models.Weekday `json:"day"`
	Period  int            `json:"period"`
	Subject string         `json:"subject"`
}

// Displacement records a teacher-view cell pushed later in the day to avoid a clash.
type Displacement struct {
	Teacher string         `json:"teacher"`
	Class   string         `json:"class"`
	Day     models.Weekday `json:"day"`
	From    int            `json:"from"`
	To      int            `json:"to"`
}

// AnchorFallback explains a class whose period 0 is not a class teacher's subject.
type AnchorFallback struct {
	Class   string `json:"class"`
	Subject string `json:"subject"`
	Reason  string `json:"reason"`
}

// WeeklyResult holds every class grid and the derived teacher grids.
type WeeklyResult struct {
	Classes      map[string]models.WeeklyGrid
	ClassOrder   []string
	Anchors      map[string]string
	Teachers     map[string]models.WeeklyGrid
	TeacherOrder []string
	SportsDay    []string
	Fallbacks    []AnchorFallback
	Unstaffed    []CellRef
	Displaced    []Displacement
	Dropped      []CellRef
}

// WeeklyScheduler builds quota-driven class grids and the matching teacher grids.
type WeeklyScheduler struct {
	catalog  *Catalog
	rng      Rand
	sections int
}

// NewWeeklyScheduler wires the scheduler with the catalog holding the curriculum.
func NewWeeklyScheduler(catalog *Catalog, rng Rand, sections int) *WeeklyScheduler {
	if catalog == nil {
		catalog = DefaultCatalog()
	}
	if rng == nil {
		rng = NewRand(time.Now().UnixNano())
	}
	if sections <= 0 {
		sections = defaultSection
	}
	return &WeeklyScheduler{catalog: catalog, rng: rng, sections: sections}
}

// Generate builds every class grid, applies the Saturday sports double period and then
// derives teacher grids from the finished class grids.
func (s *WeeklyScheduler) Generate(roster *Roster) *WeeklyResult {
	if roster == nil {
		roster = &Roster{}
	}
	result := &WeeklyResult{
		Classes: make(map[string]models.WeeklyGrid),
		Anchors: make(map[string]string),
	}
	result.ClassOrder = GenerateSections(s.catalog.Grades(), s.sections)

	for _, class := range result.ClassOrder {
		grade, _, _ := models.ParseSection(class)
		curriculum := s.catalog.Curriculum(grade)
		anchor, fallback := anchorSubject(class, curriculum, roster)
		if fallback != nil {
			result.Fallbacks = append(result.Fallbacks, *fallback)
		}
		result.Anchors[class] = anchor
		result.Classes[class] = s.buildClassGrid(grade, anchor, curriculum)
	}

	result.SportsDay = s.assignSportsDay(result)
	deriveTeacherGrids(roster, result)
	return result
}

func (s *WeeklyScheduler) buildClassGrid(grade int, anchor string, curriculum []string) models.WeeklyGrid {
	grid := models.NewWeeklyGrid(PeriodsFor(grade))
	counts := make(map[string]int, len(curriculum))
	rest := make([]string, 0, len(curriculum))
	for _, subject := range curriculum {
		if subject != anchor {
			rest = append(rest, subject)
		}
	}
	if anchor != "" {
		for _, day := range models.TeachingDays {
			grid[day][0] = anchor
		}
		counts[anchor] = len(models.TeachingDays)
	}

	for _, day := range models.TeachingDays {
		periods := grid[day]
		s.placeMains(periods, rest, counts)
		s.placeLanguages(periods, rest, counts)
		s.placeOthers(periods, rest, counts)
	}

	if grade >= sportsMinGrade && contains(curriculum, models.SubjectSports) {
		relocateSports(grid)
	}
	s.backfillSaturday(grid[models.Saturday], s.catalog.MainSubjects(grade))
	return grid
}

// placeMains fills the two periods after period 0 with mains still under their cap.
func (s *WeeklyScheduler) placeMains(periods []string, subjects []string, counts map[string]int) {
	assigned := 0
	for _, subject := range subjects {
		if !s.catalog.Is(subject, models.CategoryMain) || counts[subject] >= mainWeeklyCap {
			continue
		}
		for _, p := range mainPeriods {
			if p < len(periods) && periods[p] == "" {
				periods[p] = subject
				counts[subject]++
				assigned++
				break
			}
		}
		if assigned >= mainDailyCap {
			return
		}
	}
}

func (s *WeeklyScheduler) placeLanguages(periods []string, subjects []string, counts map[string]int) {
	for _, subject := range subjects {
		if !s.catalog.Is(subject, models.CategoryLanguage) || counts[subject] >= languageWeeklyCap {
			continue
		}
		for p := 1; p < len(periods); p++ {
			if periods[p] == "" {
				periods[p] = subject
				counts[subject]++
				break
			}
		}
	}
}

// placeOthers prefers the latest free periods of the day.
func (s *WeeklyScheduler) placeOthers(periods []string, subjects []string, counts map[string]int) {
	for _, subject := range subjects {
		if !s.catalog.Is(subject, models.CategoryOther) || counts[subject] >= otherWeeklyCap {
			continue
		}
		for p := len(periods) - 1; p > 0; p-- {
			if periods[p] == "" {
				periods[p] = subject
				counts[subject]++
				break
			}
		}
	}
}

// relocateSports moves Sports out of the morning into the first free period from 5 on.
// Period 0 belongs to the class teacher and is left alone.
func relocateSports(grid models.WeeklyGrid) {
	for _, day := range models.TeachingDays {
		periods := grid[day]
		idx := indexFrom(periods, models.SubjectSports, 1)
		if idx < 0 || idx >= sportsEarliest {
			continue
		}
		periods[idx] = ""
		for p := sportsEarliest; p < len(periods); p++ {
			if periods[p] == "" {
				periods[p] = models.SubjectSports
				break
			}
		}
	}
}

// backfillSaturday fills empty Saturday periods with shuffled mains when more than one is free.
func (s *WeeklyScheduler) backfillSaturday(saturday []string, mains []string) {
	var empty []int
	for i, subject := range saturday {
		if subject == "" {
			empty = append(empty, i)
		}
	}
	if len(empty) <= 1 || len(mains) == 0 {
		return
	}
	pool := append([]string(nil), mains...)
	s.rng.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
	for _, i := range empty {
		if len(pool) == 0 {
			return
		}
		saturday[i] = pool[0]
		pool = pool[1:]
	}
}

// assignSportsDay picks three random senior sections and gives them a Saturday Sports
// double period. Their other Sports periods are freed so the weekly quota still holds.
func (s *WeeklyScheduler) assignSportsDay(result *WeeklyResult) []string {
	var seniors []string
	for _, class := range result.ClassOrder {
		if grade, _, err := models.ParseSection(class); err == nil && grade >= sportsDayMinGrade {
			seniors = append(seniors, class)
		}
	}
	s.rng.Shuffle(len(seniors), func(i, j int) { seniors[i], seniors[j] = seniors[j], seniors[i] })

	var chosen []string
	for _, class := range seniors[:min(sportsDayClasses, len(seniors))] {
		grid := result.Classes[class]
		if len(grid[models.Saturday]) != higherPeriods {
			continue
		}
		for _, day := range models.TeachingDays {
			periods := grid[day]
			for p := 1; p < len(periods); p++ {
				if periods[p] == models.SubjectSports {
					periods[p] = ""
				}
			}
		}
		for _, p := range sportsDayPeriods {
			grid[models.Saturday][p] = models.SubjectSports
		}
		chosen = append(chosen, class)
	}
	return chosen
}

// anchorSubject resolves the subject pinned to period 0. The class teacher's first pair
// for this section wins, then their first pair overall; without a class teacher the
// first curriculum subject is used.
func anchorSubject(class string, curriculum []string, roster *Roster) (string, *AnchorFallback) {
	if teacher, ok := roster.ClassTeacher(class); ok && len(teacher.Assignments) > 0 {
		for _, pair := range teacher.Assignments {
			if pair.Class == class {
				return pair.Subject, nil
			}
		}
		return teacher.Assignments[0].Subject, nil
	}
	if len(curriculum) > 0 {
		return curriculum[0], &AnchorFallback{Class: class, Subject: curriculum[0], Reason: "no class teacher; using first curriculum subject"}
	}
	return "", &AnchorFallback{Class: class, Reason: "no class teacher and no curriculum; period 0 left free"}
}

func contains(items []string, value string) bool {
	return indexFrom(items, value, 0) >= 0
}

func indexFrom(items []string, value string, from int) int {
	for i := from; i < len(items); i++ {
		if items[i] == value {
			return i
		}
	}
	return -1
}
