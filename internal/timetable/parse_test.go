package timetable

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ManithKumarpace/Edu-Pilot/internal/models"
	appErrors "github.com/ManithKumarpace/Edu-Pilot/pkg/errors"
)

func TestParseTeacherTable(t *testing.T) {
	rows := [][]string{
		{"Subjects", " Teacher ", "Classes"},
		{"Mathematics, Science", "Anita", "09, 10"},
		{"", "", ""},
		{"English", "Ravi", "1"},
	}

	parsed, err := ParseTeacherTable(rows, DefaultCatalog())
	require.NoError(t, err)
	require.Len(t, parsed, 2)
	assert.Equal(t, TeacherRow{Name: "Anita", Classes: []string{"9", "10"}, Subjects: []string{"Mathematics", "Science"}}, parsed[0])
	assert.Equal(t, "Ravi", parsed[1].Name)
}

func TestParseTeacherTableErrors(t *testing.T) {
	catalog := DefaultCatalog()
	cases := map[string][][]string{
		"missing column": {{"teacher", "classes"}, {"Anita", "9"}},
		"bad class":      {{"teacher", "classes", "subjects"}, {"Anita", "nine", "Mathematics"}},
		"unknown":        {{"teacher", "classes", "subjects"}, {"Anita", "9", "Astronomy"}},
		"no rows":        {{"teacher", "classes", "subjects"}},
		"empty":          {},
	}
	for name, rows := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseTeacherTable(rows, catalog)
			require.Error(t, err)
			assert.True(t, errors.Is(err, appErrors.ErrInputParse))
		})
	}

	_, err := ParseTeacherTable([][]string{{"teacher", "classes", "subjects"}, {"Anita", "9", "Astronomy"}}, catalog)
	assert.Contains(t, err.Error(), "row 2 (Anita)")
}

func TestParseSubjectTable(t *testing.T) {
	rows := [][]string{
		{"Class", "Subject 1", "Subject 2"},
		{"1", "Mathematics", "English", "", ""},
		{"2", " Hindi ", "Arts"},
	}
	table, err := ParseSubjectTable(rows)
	require.NoError(t, err)
	assert.Equal(t, []GradeSubjects{
		{Grade: 1, Subjects: []string{"Mathematics", "English"}},
		{Grade: 2, Subjects: []string{"Hindi", "Arts"}},
	}, table)

	_, err = ParseSubjectTable([][]string{{"1", "Mathematics", "Mathematics"}})
	assert.True(t, errors.Is(err, appErrors.ErrInputParse))

	_, err = ParseSubjectTable([][]string{{"1", "Mathematics"}, {"x", "Arts"}})
	assert.ErrorContains(t, err, "row 2")
}

func TestCurriculumFromTable(t *testing.T) {
	catalog := DefaultCatalog()
	curriculum, err := CurriculumFromTable([]GradeSubjects{{Grade: 1, Subjects: []string{"Mathematics"}}}, catalog)
	require.NoError(t, err)
	assert.Equal(t, map[int][]string{1: {"Mathematics"}}, curriculum)

	_, err = CurriculumFromTable([]GradeSubjects{{Grade: 1}, {Grade: 1}}, catalog)
	assert.ErrorContains(t, err, "more than once")

	_, err = CurriculumFromTable([]GradeSubjects{{Grade: 1, Subjects: []string{"Astronomy"}}}, catalog)
	assert.ErrorContains(t, err, "unknown subject")
}

func TestParseCategories(t *testing.T) {
	categories, err := ParseCategories([]string{"Astronomy:other", " Tamil : Language "})
	require.NoError(t, err)
	assert.Equal(t, models.CategoryOther, categories["Astronomy"])
	assert.Equal(t, models.CategoryLanguage, categories["Tamil"])

	_, err = ParseCategories([]string{"Astronomy"})
	assert.Error(t, err)
	_, err = ParseCategories([]string{"Astronomy:elective"})
	assert.Error(t, err)
}
