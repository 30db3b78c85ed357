package models

import "time"

// Weekday identifies a teaching day. Sunday is never scheduled.
type Weekday string

const (
	Monday    Weekday = "monday"
	Tuesday   Weekday = "tuesday"
	Wednesday Weekday = "wednesday"
	Thursday  Weekday = "thursday"
	Friday    Weekday = "friday"
	Saturday  Weekday = "saturday"
)

// TeachingDays lists the six scheduled weekdays in order.
var TeachingDays = []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday}

// ExamSession is the half of the day an exam is held in.
type ExamSession string

const (
	SessionMorning   ExamSession = "Morning"
	SessionAfternoon ExamSession = "Afternoon"
)

// ExamDateLayout renders exam dates as DD-Mon-YYYY.
const ExamDateLayout = "02-Jan-2006"

// ExamSlot assigns a class subject to a date and session.
type ExamSlot struct {
	Date    time.Time   `json:"date"`
	Class   int         `json:"class"`
	Subject string      `json:"subject"`
	Session ExamSession `json:"session"`
}

// WeeklyGrid maps each teaching day to its ordered periods. Empty strings are free periods.
type WeeklyGrid map[Weekday][]string

// NewWeeklyGrid allocates an empty grid with the given number of periods per day.
func NewWeeklyGrid(periods int) WeeklyGrid {
	grid := make(WeeklyGrid, len(TeachingDays))
	for _, day := range TeachingDays {
		grid[day] = make([]string, periods)
	}
	return grid
}
