package timetable

import (
	"time"

	"github.com/ManithKumarpace/Edu-Pilot/internal/models"
	appErrors "github.com/ManithKumarpace/Edu-Pilot/pkg/errors"
)

const (
	spacedGradeMax = 3
	isoDate        = "2006-01-02"
)

var examSessions = []models.ExamSession{models.SessionMorning, models.SessionAfternoon}

// ClassGap records the spacing computed for one class.
type ClassGap struct {
	Class int `json:"class"`
	Gap   int `json:"gap"`
}

// UnscheduledExam is a subject left without a date because the class ran out of days.
type UnscheduledExam struct {
	Class   int    `json:"class"`
	Subject string `json:"subject"`
}

// ExamResult is the outcome of one exam generation run.
type ExamResult struct {
	Slots       []models.ExamSlot
	Gaps        []ClassGap
	Unscheduled []UnscheduledExam
	Clashes     int
}

// ExamScheduler maps class subjects onto exam dates.
type ExamScheduler struct {
	rng Rand
}

// NewExamScheduler builds a scheduler drawing sessions from rng.
func NewExamScheduler(rng Rand) *ExamScheduler {
	if rng == nil {
		rng = NewRand(time.Now().UnixNano())
	}
	return &ExamScheduler{rng: rng}
}

// ParseExamDate reads an ISO YYYY-MM-DD date.
func ParseExamDate(raw string) (time.Time, error) {
	d, err := time.Parse(isoDate, raw)
	if err != nil {
		return time.Time{}, appErrors.Parsef("date %q must use YYYY-MM-DD", raw)
	}
	return d, nil
}

// CandidateDates lists every non-Sunday date in [start, end].
func CandidateDates(start, end time.Time) ([]time.Time, error) {
	start = dateOnly(start)
	end = dateOnly(end)
	if end.Before(start) {
		return nil, appErrors.Parsef("exam end date %s is before start date %s", end.Format(isoDate), start.Format(isoDate))
	}
	var dates []time.Time
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if d.Weekday() == time.Sunday {
			continue
		}
		dates = append(dates, d)
	}
	return dates, nil
}

// Schedule assigns each class's subjects, in order, to dates between start and end.
// Each class works on its own copy of the date pool. Low grades always get the computed
// spacing; every subject after a class's first looks for a date on which no other class
// sits the same subject and falls back to the next date when none is left.
func (s *ExamScheduler) Schedule(classes []GradeSubjects, start, end time.Time) (*ExamResult, error) {
	pool, err := CandidateDates(start, end)
	if err != nil {
		return nil, err
	}
	if len(pool) == 0 {
		return nil, appErrors.Unsatisfiable("no exam dates available between %s and %s once Sundays are excluded", start.Format(isoDate), end.Format(isoDate))
	}

	result := &ExamResult{}
	booked := make(map[string]map[string]bool)
	for _, class := range classes {
		n := len(class.Subjects)
		if n == 0 {
			continue
		}
		working := append([]time.Time(nil), pool...)
		gap := max(0, (len(working)-n)/n)
		result.Gaps = append(result.Gaps, ClassGap{Class: class.Grade, Gap: gap})

		placed := 0
		for _, subject := range class.Subjects {
			if placed > 0 {
				if gap > 0 || class.Grade <= spacedGradeMax {
					working = working[min(gap, len(working)):]
				}
				working = working[firstFreeDate(working, booked, subject):]
			}
			if len(working) == 0 {
				result.Unscheduled = append(result.Unscheduled, UnscheduledExam{Class: class.Grade, Subject: subject})
				continue
			}

			date := working[0]
			working = working[1:]
			key := date.Format(isoDate)
			if booked[key] == nil {
				booked[key] = make(map[string]bool)
			}
			if booked[key][subject] {
				result.Clashes++
			}
			booked[key][subject] = true
			result.Slots = append(result.Slots, models.ExamSlot{
				Date:    date,
				Class:   class.Grade,
				Subject: subject,
				Session: examSessions[s.rng.Intn(len(examSessions))],
			})
			placed++
		}
	}
	return result, nil
}

// firstFreeDate returns the index of the first date not already carrying subject, or 0.
func firstFreeDate(dates []time.Time, booked map[string]map[string]bool, subject string) int {
	for i, d := range dates {
		if !booked[d.Format(isoDate)][subject] {
			return i
		}
	}
	return 0
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
