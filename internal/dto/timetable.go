package dto

import "time"

// Timetable preview kinds.
const (
	PreviewKindExam   = "exam"
	PreviewKindWeekly = "weekly"
)

// Export views.
const (
	ExportViewExam     = "exam"
	ExportViewClasses  = "classes"
	ExportViewTeachers = "teachers"
)

// BuildRosterRequest carries the raw teacher table (header row first).
type BuildRosterRequest struct {
	Teachers [][]string `json:"teachers" validate:"required,min=2"`
	Sections int        `json:"sections" validate:"omitempty,min=1,max=26"`
	Seed     *int64     `json:"seed"`
}

// RosterTeacher is one section-level roster entry.
type RosterTeacher struct {
	Name          string     `json:"name"`
	Role          string     `json:"role"`
	Level         string     `json:"level"`
	ClassSubjects [][]string `json:"classSubjects"`
}

// RosterResponse is the normalised roster.
type RosterResponse struct {
	Seed               int64             `json:"seed"`
	Teachers           []RosterTeacher   `json:"teachers"`
	ClassTeachers      map[string]string `json:"classTeachers"`
	UnassignedSections []string          `json:"unassignedSections,omitempty"`
}

// GenerateExamRequest asks for an exam timetable between two ISO dates (inclusive).
type GenerateExamRequest struct {
	Subjects  [][]string `json:"subjects" validate:"required,min=1"`
	StartDate string     `json:"startDate" validate:"required,datetime=2006-01-02"`
	EndDate   string     `json:"endDate" validate:"required,datetime=2006-01-02"`
	Seed      *int64     `json:"seed"`
}

// ExamTimetableRow is one line of the exam table.
type ExamTimetableRow struct {
	Date    string `json:"date"`
	Class   int    `json:"class"`
	Subject string `json:"subject"`
	Session string `json:"session"`
}

// ExamGap reports the spacing used for a class.
type ExamGap struct {
	Class int `json:"class"`
	Gap   int `json:"gap"`
}

// ExamUnscheduled is a subject that found no date.
type ExamUnscheduled struct {
	Class   int    `json:"class"`
	Subject string `json:"subject"`
}

// ExamTimetableResponse returns the generated exam table.
type ExamTimetableResponse struct {
	PreviewID   string             `json:"previewId"`
	Seed        int64              `json:"seed"`
	Rows        []ExamTimetableRow `json:"rows"`
	Gaps        []ExamGap          `json:"gaps"`
	Unscheduled []ExamUnscheduled  `json:"unscheduled,omitempty"`
	Clashes     int                `json:"clashes"`
}

// GenerateWeeklyRequest carries the teacher table and an optional curriculum table.
type GenerateWeeklyRequest struct {
	Teachers [][]string `json:"teachers" validate:"required,min=2"`
	Subjects [][]string `json:"subjects"`
	Sections int        `json:"sections" validate:"omitempty,min=1,max=26"`
	Seed     *int64     `json:"seed"`
}

// GridCell locates a class period in diagnostics.
type GridCell struct {
	Class   string `json:"class"`
	Day     string `json:"day"`
	Period  int    `json:"period"`
	Subject string `json:"subject"`
}

// GridDisplacement reports a teacher cell moved later in the day.
type GridDisplacement struct {
	Teacher string `json:"teacher"`
	Class   string `json:"class"`
	Day     string `json:"day"`
	From    int    `json:"from"`
	To      int    `json:"to"`
}

// AnchorFallback explains a class whose first period is not a class teacher's subject.
type AnchorFallback struct {
	Class   string `json:"class"`
	Subject string `json:"subject"`
	Reason  string `json:"reason"`
}

// WeeklyDiagnostics lists everything the greedy placement could not honour.
type WeeklyDiagnostics struct {
	UnassignedSections []string           `json:"unassignedSections,omitempty"`
	Fallbacks          []AnchorFallback   `json:"fallbacks,omitempty"`
	Unstaffed          []GridCell         `json:"unstaffed,omitempty"`
	Displaced          []GridDisplacement `json:"displaced,omitempty"`
	Dropped            []GridCell         `json:"dropped,omitempty"`
}

// WeeklyTimetableResponse returns class and teacher grids keyed by day name.
type WeeklyTimetableResponse struct {
	PreviewID         string                         `json:"previewId"`
	Seed              int64                          `json:"seed"`
	Days              []string                       `json:"days"`
	ClassOrder        []string                       `json:"classOrder"`
	TeacherOrder      []string                       `json:"teacherOrder"`
	ClassTimetables   map[string]map[string][]string `json:"classTimetables"`
	TeacherTimetables map[string]map[string][]string `json:"teacherTimetables"`
	ClassTeachers     map[string]string              `json:"classTeachers"`
	SportsDayClasses  []string                       `json:"sportsDayClasses"`
	Diagnostics       WeeklyDiagnostics              `json:"diagnostics"`
}

// TimetablePreview is a cached generation result.
type TimetablePreview struct {
	ID        string                   `json:"id"`
	Kind      string                   `json:"kind"`
	CreatedAt time.Time                `json:"createdAt"`
	Exam      *ExamTimetableResponse   `json:"exam,omitempty"`
	Weekly    *WeeklyTimetableResponse `json:"weekly,omitempty"`
}

// ExportRequest renders a preview into a downloadable file.
type ExportRequest struct {
	View   string `json:"view" validate:"required,oneof=exam classes teachers"`
	Format string `json:"format" validate:"required,oneof=csv pdf"`
	Target string `json:"target"`
}

// ExportResponse points at the rendered artifact.
type ExportResponse struct {
	Filename  string    `json:"filename"`
	Format    string    `json:"format"`
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// MetricsSnapshot summarises service activity since start-up.
type MetricsSnapshot struct {
	RequestsTotal            uint64    `json:"requestsTotal"`
	AverageRequestDurationMs float64   `json:"averageRequestDurationMs"`
	Generations              uint64    `json:"generations"`
	GenerationFailures       uint64    `json:"generationFailures"`
	ExamClashes              uint64    `json:"examClashes"`
	Displaced                uint64    `json:"displaced"`
	Dropped                  uint64    `json:"dropped"`
	Exports                  uint64    `json:"exports"`
	CacheHitRatio            float64   `json:"cacheHitRatio"`
	CacheHits                uint64    `json:"cacheHits"`
	CacheMisses              uint64    `json:"cacheMisses"`
	Goroutines               int       `json:"goroutines"`
	GeneratedAt              time.Time `json:"generatedAt"`
}
