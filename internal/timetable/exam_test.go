package timetable

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/ManithKumarpace/Edu-Pilot/pkg/errors"
)

func mustDate(t *testing.T, raw string) time.Time {
	t.Helper()
	d, err := ParseExamDate(raw)
	require.NoError(t, err)
	return d
}

func TestCandidateDatesSkipSundays(t *testing.T) {
	dates, err := CandidateDates(mustDate(t, "2024-06-03"), mustDate(t, "2024-06-16"))
	require.NoError(t, err)
	assert.Len(t, dates, 12)
	for _, d := range dates {
		assert.NotEqual(t, time.Sunday, d.Weekday())
	}

	_, err = CandidateDates(mustDate(t, "2024-06-09"), mustDate(t, "2024-06-03"))
	assert.True(t, errors.Is(err, appErrors.ErrInputParse))

	_, err = ParseExamDate("03-06-2024")
	assert.True(t, errors.Is(err, appErrors.ErrInputParse))
}

func TestScheduleOneWeek(t *testing.T) {
	scheduler := NewExamScheduler(NewRand(7))
	result, err := scheduler.Schedule(
		[]GradeSubjects{{Grade: 5, Subjects: []string{"Mathematics", "English", "Science"}}},
		mustDate(t, "2024-06-03"), mustDate(t, "2024-06-09"),
	)
	require.NoError(t, err)

	require.Len(t, result.Slots, 3)
	assert.Equal(t, []ClassGap{{Class: 5, Gap: 1}}, result.Gaps)
	var got []string
	for _, slot := range result.Slots {
		got = append(got, slot.Date.Format(isoDate))
		assert.Contains(t, examSessions, slot.Session)
	}
	assert.Equal(t, []string{"2024-06-03", "2024-06-05", "2024-06-07"}, got)
	assert.NotContains(t, got, "2024-06-09")
	assert.Zero(t, result.Clashes)
	assert.Empty(t, result.Unscheduled)
}

func TestScheduleSpacesLowerGrades(t *testing.T) {
	scheduler := NewExamScheduler(NewRand(1))
	result, err := scheduler.Schedule(
		[]GradeSubjects{{Grade: 2, Subjects: []string{"Mathematics", "English"}}},
		mustDate(t, "2024-06-03"), mustDate(t, "2024-06-08"),
	)
	require.NoError(t, err)

	require.Len(t, result.Slots, 2)
	gap := result.Gaps[0].Gap
	assert.Equal(t, 2, gap)
	assert.Equal(t, gap+1, int(result.Slots[1].Date.Sub(result.Slots[0].Date).Hours()/24))
}

func TestScheduleAvoidsSameSubjectOnSameDate(t *testing.T) {
	scheduler := NewExamScheduler(NewRand(3))
	result, err := scheduler.Schedule(
		[]GradeSubjects{
			{Grade: 6, Subjects: []string{"Mathematics", "English"}},
			{Grade: 7, Subjects: []string{"Hindi", "English"}},
		},
		mustDate(t, "2024-06-03"), mustDate(t, "2024-06-05"),
	)
	require.NoError(t, err)

	require.Len(t, result.Slots, 4)
	assert.Equal(t, "2024-06-04", result.Slots[1].Date.Format(isoDate))
	assert.Equal(t, "2024-06-05", result.Slots[3].Date.Format(isoDate))
	assert.Zero(t, result.Clashes)
}

func TestScheduleCountsClashesAndUnscheduled(t *testing.T) {
	scheduler := NewExamScheduler(firstRand{})
	result, err := scheduler.Schedule(
		[]GradeSubjects{
			{Grade: 6, Subjects: []string{"Mathematics"}},
			{Grade: 7, Subjects: []string{"Mathematics", "Science"}},
		},
		mustDate(t, "2024-06-03"), mustDate(t, "2024-06-03"),
	)
	require.NoError(t, err)

	assert.Equal(t, 1, result.Clashes)
	require.Len(t, result.Slots, 2)
	assert.Equal(t, []UnscheduledExam{{Class: 7, Subject: "Science"}}, result.Unscheduled)
}

func TestScheduleWithoutDates(t *testing.T) {
	scheduler := NewExamScheduler(NewRand(1))
	_, err := scheduler.Schedule(
		[]GradeSubjects{{Grade: 6, Subjects: []string{"Mathematics"}}},
		mustDate(t, "2024-06-09"), mustDate(t, "2024-06-09"),
	)
	require.Error(t, err)
	assert.True(t, errors.Is(err, appErrors.ErrConstraintUnsatisfiable))
}
