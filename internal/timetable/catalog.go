package timetable

import (
	"sort"

	"github.com/ManithKumarpace/Edu-Pilot/internal/models"
)

// Catalog is the immutable subject reference data: categories and per-grade curricula.
// Every With* method returns a new Catalog; receivers are never mutated.
type Catalog struct {
	categories map[string]models.SubjectCategory
	curriculum map[int][]string
}

var defaultCategories = map[string]models.SubjectCategory{
	"Mathematics":                   models.CategoryMain,
	"Science":                       models.CategoryMain,
	"Social Science":                models.CategoryMain,
	"Environmental Studies":         models.CategoryMain,
	"English":                       models.CategoryLanguage,
	"Hindi":                         models.CategoryLanguage,
	"Sanskrit/French":               models.CategoryLanguage,
	"Arts":                          models.CategoryOther,
	"Health and Physical Education": models.CategoryOther,
	"Music":                         models.CategoryOther,
	models.SubjectSports:            models.CategoryOther,
	"Computer Application":          models.CategoryOther,
	models.SubjectGeneralKnowledge:  models.CategoryOther,
}

var defaultCurriculum = map[int][]string{
	1:  {"Mathematics", "English", "Hindi", "Arts"},
	2:  {"Mathematics", "English", "Hindi", "Arts"},
	3:  {"Mathematics", "Environmental Studies", "English", "Hindi", "Arts"},
	4:  {"Mathematics", "Environmental Studies", "Science", "English", "Hindi", "Arts"},
	5:  {"Mathematics", "Environmental Studies", "Science", "English", "Hindi", "Arts", "Health and Physical Education", "Sports"},
	6:  {"Mathematics", "Science", "Social Science", "English", "Hindi", "Sanskrit/French", "Arts", "Health and Physical Education", "Music", "Sports"},
	7:  {"Mathematics", "Science", "Social Science", "English", "Hindi", "Sanskrit/French", "Arts", "Health and Physical Education", "Music", "Sports"},
	8:  {"Mathematics", "Science", "Social Science", "English", "Hindi", "Sanskrit/French", "Arts", "Health and Physical Education", "Music", "Sports"},
	9:  {"Mathematics", "Science", "Social Science", "Computer Application", "English", "Hindi", "Arts", "Health and Physical Education", "Music", "Sports"},
	10: {"Mathematics", "Science", "Social Science", "Computer Application", "English", "Hindi", "Arts", "Health and Physical Education", "Music", "Sports"},
}

// DefaultCatalog returns the built-in school subject tables.
func DefaultCatalog() *Catalog {
	return &Catalog{
		categories: copyCategories(defaultCategories),
		curriculum: copyCurriculum(defaultCurriculum),
	}
}

// WithCategories returns a catalog with extra or overriding subject categories.
func (c *Catalog) WithCategories(extra map[string]models.SubjectCategory) *Catalog {
	categories := copyCategories(c.categories)
	for name, category := range extra {
		categories[name] = category
	}
	return &Catalog{categories: categories, curriculum: copyCurriculum(c.curriculum)}
}

// WithCurriculum returns a catalog whose curriculum is replaced by the given table.
func (c *Catalog) WithCurriculum(curriculum map[int][]string) *Catalog {
	return &Catalog{categories: copyCategories(c.categories), curriculum: copyCurriculum(curriculum)}
}

// Category looks up the quota category of a subject.
func (c *Catalog) Category(subject string) (models.SubjectCategory, bool) {
	category, ok := c.categories[subject]
	return category, ok
}

// Is reports whether subject belongs to category.
func (c *Catalog) Is(subject string, category models.SubjectCategory) bool {
	got, ok := c.categories[subject]
	return ok && got == category
}

// Curriculum returns a copy of the ordered subject list for a grade.
func (c *Catalog) Curriculum(grade int) []string {
	return append([]string(nil), c.curriculum[grade]...)
}

// Grades returns the grades with a curriculum, ascending.
func (c *Catalog) Grades() []int {
	grades := make([]int, 0, len(c.curriculum))
	for grade := range c.curriculum {
		grades = append(grades, grade)
	}
	sort.Ints(grades)
	return grades
}

// MainSubjects returns the grade's main-category subjects in curriculum order.
func (c *Catalog) MainSubjects(grade int) []string {
	var mains []string
	for _, subject := range c.curriculum[grade] {
		if c.Is(subject, models.CategoryMain) {
			mains = append(mains, subject)
		}
	}
	return mains
}

func copyCategories(in map[string]models.SubjectCategory) map[string]models.SubjectCategory {
	out := make(map[string]models.SubjectCategory, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

func copyCurriculum(in map[int][]string) map[int][]string {
	out := make(map[int][]string, len(in))
	for k, v := range in {
		out[k] = append([]string(nil), v...)
	}
	return out
}
