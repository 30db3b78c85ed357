package timetable

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ManithKumarpace/Edu-Pilot/internal/models"
)

func generateDefault(t *testing.T, seed int64) (*Roster, *WeeklyResult) {
	t.Helper()
	catalog := DefaultCatalog()
	rng := NewRand(seed)
	roster, err := NewRosterBuilder(catalog, rng, RosterOptions{}).Build(defaultRows(t))
	require.NoError(t, err)
	return roster, NewWeeklyScheduler(catalog, rng, 4).Generate(roster)
}

func TestWeeklySingleClassScenario(t *testing.T) {
	catalog := DefaultCatalog().WithCurriculum(map[int][]string{1: {"Mathematics", "English"}})
	rng := NewRand(11)
	roster, err := NewRosterBuilder(catalog, rng, RosterOptions{Sections: 1}).Build([]TeacherRow{
		{Name: "Meera", Classes: []string{"1"}, Subjects: []string{"English", "Mathematics"}},
	})
	require.NoError(t, err)
	require.Equal(t, map[string]string{"1A": "Meera"}, roster.ClassTeachers)

	result := NewWeeklyScheduler(catalog, rng, 1).Generate(roster)

	require.Equal(t, []string{"1A"}, result.ClassOrder)
	grid := result.Classes["1A"]
	for _, day := range models.TeachingDays {
		require.Len(t, grid[day], 5)
		assert.Equal(t, "English", grid[day][0])
	}
	assert.Empty(t, result.Fallbacks)
	assert.Equal(t, []string{"Meera"}, result.TeacherOrder)
	assert.Len(t, result.Teachers["Meera"][models.Monday], TeacherPeriods)
}

func TestWeeklyAnchorsClassTeacherSubject(t *testing.T) {
	roster, result := generateDefault(t, 5)

	for _, class := range result.ClassOrder {
		grid := result.Classes[class]
		anchor := result.Anchors[class]
		for _, day := range models.TeachingDays {
			assert.Equal(t, anchor, grid[day][0], "%s %s", class, day)
		}
		teacher, ok := roster.ClassTeacher(class)
		if !ok {
			continue
		}
		assert.True(t, teacher.Teaches(class, anchor), "%s anchor %s not taught by %s", class, anchor, teacher.Name)
	}
}

func TestWeeklyQuotas(t *testing.T) {
	catalog := DefaultCatalog()
	for _, seed := range []int64{1, 2, 3} {
		_, result := generateDefault(t, seed)
		for _, class := range result.ClassOrder {
			grade, _, err := models.ParseSection(class)
			require.NoError(t, err)
			grid := result.Classes[class]
			counts := make(map[string]int)
			for _, day := range models.TeachingDays {
				require.Len(t, grid[day], PeriodsFor(grade))
				for _, subject := range grid[day][1:] {
					if subject != "" {
						counts[subject]++
					}
				}
			}
			for subject, n := range counts {
				category, ok := catalog.Category(subject)
				require.True(t, ok, subject)
				switch category {
				case models.CategoryMain:
					assert.LessOrEqual(t, n, mainWeeklyCap, "%s %s", class, subject)
				case models.CategoryLanguage:
					assert.LessOrEqual(t, n, languageWeeklyCap, "%s %s", class, subject)
				case models.CategoryOther:
					assert.LessOrEqual(t, n, otherWeeklyCap, "%s %s", class, subject)
				}
			}
		}
	}
}

func TestWeeklySportsPlacement(t *testing.T) {
	_, result := generateDefault(t, 9)

	require.Len(t, result.SportsDay, sportsDayClasses)
	chosen := make(map[string]bool)
	for _, class := range result.SportsDay {
		grade, _, err := models.ParseSection(class)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, grade, sportsDayMinGrade)
		saturday := result.Classes[class][models.Saturday]
		assert.Equal(t, models.SubjectSports, saturday[6])
		assert.Equal(t, models.SubjectSports, saturday[7])
		chosen[class] = true
	}

	for _, class := range result.ClassOrder {
		if chosen[class] {
			continue
		}
		for _, day := range models.TeachingDays {
			periods := result.Classes[class][day]
			for p := 1; p < min(sportsEarliest, len(periods)); p++ {
				assert.NotEqual(t, models.SubjectSports, periods[p], "%s %s period %d", class, day, p)
			}
		}
	}
}

func TestWeeklyTeacherGridsAccountForEveryCell(t *testing.T) {
	roster, result := generateDefault(t, 21)

	classCells := 0
	for _, class := range result.ClassOrder {
		for _, day := range models.TeachingDays {
			for _, subject := range result.Classes[class][day] {
				if subject != "" {
					classCells++
				}
			}
		}
	}

	teacherCells := 0
	for _, name := range result.TeacherOrder {
		grid := result.Teachers[name]
		for _, day := range models.TeachingDays {
			require.Len(t, grid[day], TeacherPeriods)
			for _, class := range grid[day] {
				if class != "" {
					teacherCells++
				}
			}
		}
	}
	assert.Equal(t, classCells, teacherCells+len(result.Dropped)+len(result.Unstaffed))
	assert.Len(t, result.TeacherOrder, len(roster.Teachers))

	for _, d := range result.Displaced {
		assert.Greater(t, d.To, d.From)
		assert.Equal(t, d.Class, result.Teachers[d.Teacher][d.Day][d.To])
	}
}

func TestWeeklyFallsBackWithoutClassTeacher(t *testing.T) {
	catalog := DefaultCatalog().WithCurriculum(map[int][]string{3: {"Mathematics", "English", "Arts"}})
	result := NewWeeklyScheduler(catalog, NewRand(4), 1).Generate(&Roster{})

	require.Len(t, result.Fallbacks, 1)
	assert.Equal(t, AnchorFallback{Class: "3A", Subject: "Mathematics", Reason: "no class teacher; using first curriculum subject"}, result.Fallbacks[0])
	assert.Equal(t, "Mathematics", result.Classes["3A"][models.Monday][0])
	assert.NotEmpty(t, result.Unstaffed)
	assert.Empty(t, result.TeacherOrder)
}

func TestWeeklySharedTeacherIsDisplacedForward(t *testing.T) {
	catalog := DefaultCatalog().WithCurriculum(map[int][]string{6: {"Mathematics", "English", "Arts"}})
	roster := &Roster{
		Teachers: []models.TeacherRecord{{
			Name:  "Solo",
			Role:  models.ClassTeacherRole("6A"),
			Level: models.LevelHigher,
			Assignments: []models.ClassSubject{
				{Class: "6A", Subject: "Mathematics"},
				{Class: "6B", Subject: "Mathematics"},
			},
		}},
		ClassTeachers: map[string]string{"6A": "Solo"},
	}

	result := NewWeeklyScheduler(catalog, firstRand{}, 2).Generate(roster)

	require.Equal(t, []string{"6A", "6B"}, result.ClassOrder)
	assert.Equal(t, []string{"Mathematics", "English", "", "", "", "", "", "Arts"}, result.Classes["6A"][models.Monday])
	assert.Equal(t, []string{"Mathematics", "Mathematics", "", "", "", "", "", ""}, result.Classes["6A"][models.Saturday])
	assert.Equal(t, result.Classes["6A"], result.Classes["6B"])

	solo := result.Teachers["Solo"]
	assert.Equal(t, []string{"6A", "6B", "", "", "", "", "", ""}, solo[models.Monday])
	assert.Equal(t, []string{"6A", "6A", "6B", "6B", "", "", "", ""}, solo[models.Saturday])

	require.Len(t, result.Displaced, 7)
	assert.Contains(t, result.Displaced, Displacement{Teacher: "Solo", Class: "6B", Day: models.Monday, From: 0, To: 1})
	assert.Contains(t, result.Displaced, Displacement{Teacher: "Solo", Class: "6B", Day: models.Saturday, From: 1, To: 3})
	assert.Empty(t, result.Dropped)

	require.Len(t, result.Fallbacks, 1)
	assert.Equal(t, "6B", result.Fallbacks[0].Class)
	assert.NotEmpty(t, result.Unstaffed)
}

func TestWeeklySlotOrderByCategory(t *testing.T) {
	catalog := DefaultCatalog().WithCurriculum(map[int][]string{
		6: {"Mathematics", "Science", "Social Science", "English", "Hindi", "Arts", "Music"},
	})

	result := NewWeeklyScheduler(catalog, firstRand{}, 1).Generate(&Roster{})

	grid := result.Classes["6A"]
	early := []string{"Mathematics", "Science", "Social Science", "English", "Hindi", "", "Music", "Arts"}
	assert.Equal(t, early, grid[models.Monday])
	assert.Equal(t, early, grid[models.Tuesday])
	assert.Equal(t, []string{"Mathematics", "Science", "Social Science", "English", "Hindi", "", "", ""}, grid[models.Wednesday])
	assert.Equal(t, []string{"Mathematics", "Science", "Social Science", "Mathematics", "Science", "Social Science", "", ""}, grid[models.Saturday])
}

func TestWeeklySaturdayKeepsSingleFreePeriod(t *testing.T) {
	catalog := DefaultCatalog().WithCurriculum(map[int][]string{
		1: {"Mathematics", "Science", "Environmental Studies", "English", "Hindi", "Sanskrit/French"},
	})

	result := NewWeeklyScheduler(catalog, firstRand{}, 1).Generate(&Roster{})

	grid := result.Classes["1A"]
	assert.Equal(t, []string{"Mathematics", "Science", "Environmental Studies", "English", "Hindi"}, grid[models.Monday])
	assert.Equal(t, []string{"Mathematics", "Science", "Environmental Studies", "Sanskrit/French", ""}, grid[models.Saturday])
}

func TestPlaceForward(t *testing.T) {
	periods := []string{"6A", "", "7B", ""}

	assert.Equal(t, 1, placeForward(periods, 0, "6B"))
	assert.Equal(t, 3, placeForward(periods, 2, "8C"))
	assert.Equal(t, []string{"6A", "6B", "7B", "8C"}, periods)
	assert.Equal(t, -1, placeForward(periods, 0, "9D"))
}
