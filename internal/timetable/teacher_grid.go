package timetable

import "github.com/ManithKumarpace/Edu-Pilot/internal/models"

// TeacherPeriods is the fixed width of every teacher grid.
const TeacherPeriods = 8

// deriveTeacherGrids projects class grids onto the teachers holding each class/subject
// pair. A busy cell pushes the class to the next free period of the same day; cells
// that cannot move forward are dropped and reported.
func deriveTeacherGrids(roster *Roster, result *WeeklyResult) {
	owners := make(map[models.ClassSubject]string)
	result.Teachers = make(map[string]models.WeeklyGrid)
	for _, teacher := range roster.Teachers {
		if _, seen := result.Teachers[teacher.Name]; !seen {
			result.Teachers[teacher.Name] = models.NewWeeklyGrid(TeacherPeriods)
			result.TeacherOrder = append(result.TeacherOrder, teacher.Name)
		}
		for _, pair := range teacher.Assignments {
			if _, taken := owners[pair]; !taken {
				owners[pair] = teacher.Name
			}
		}
	}

	for _, class := range result.ClassOrder {
		grid := result.Classes[class]
		for _, day := range models.TeachingDays {
			for period, subject := range grid[day] {
				if subject == "" {
					continue
				}
				cell := CellRef{Class: class, Day: day, Period: period, Subject: subject}
				name, ok := owners[models.ClassSubject{Class: class, Subject: subject}]
				if !ok {
					result.Unstaffed = append(result.Unstaffed, cell)
					continue
				}
				to := placeForward(result.Teachers[name][day], period, class)
				switch {
				case to < 0:
					result.Dropped = append(result.Dropped, cell)
				case to != period:
					result.Displaced = append(result.Displaced, Displacement{Teacher: name, Class: class, Day: day, From: period, To: to})
				}
			}
		}
	}
}

// placeForward writes class into the first free period at or after from.
func placeForward(periods []string, from int, class string) int {
	for p := from; p < len(periods); p++ {
		if periods[p] == "" {
			periods[p] = class
			return p
		}
	}
	return -1
}
