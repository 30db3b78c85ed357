package main

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/ManithKumarpace/Edu-Pilot/internal/dto"
	"github.com/ManithKumarpace/Edu-Pilot/pkg/export"
)

func heading(w io.Writer, text string) {
	color.New(color.FgYellow, color.Bold).Fprintf(w, "\n%s\n", text)
}

func warn(w io.Writer, format string, args ...interface{}) {
	color.New(color.FgRed).Fprintf(w, format+"\n", args...)
}

func newTable(w io.Writer, header []string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(false)
	return table
}

func printRoster(w io.Writer, resp *dto.RosterResponse) {
	heading(w, fmt.Sprintf("Teacher roster (seed %d)", resp.Seed))
	table := newTable(w, []string{"Teacher", "Role", "Level", "Assignments"})
	for _, teacher := range resp.Teachers {
		pairs := make([]string, 0, len(teacher.ClassSubjects))
		for _, pair := range teacher.ClassSubjects {
			pairs = append(pairs, strings.Join(pair, " "))
		}
		table.Append([]string{teacher.Name, teacher.Role, teacher.Level, strings.Join(pairs, ", ")})
	}
	table.Render()

	heading(w, "Class teachers")
	classes := make([]string, 0, len(resp.ClassTeachers))
	for class := range resp.ClassTeachers {
		classes = append(classes, class)
	}
	sort.Strings(classes)
	table = newTable(w, []string{"Class", "Teacher"})
	for _, class := range classes {
		table.Append([]string{class, resp.ClassTeachers[class]})
	}
	table.Render()

	if len(resp.UnassignedSections) > 0 {
		warn(w, "No class teacher for: %s", strings.Join(resp.UnassignedSections, ", "))
	}
}

func printExam(w io.Writer, resp *dto.ExamTimetableResponse) {
	heading(w, fmt.Sprintf("Exam timetable (seed %d)", resp.Seed))
	table := newTable(w, []string{"Date", "Class", "Subject", "Session"})
	for _, row := range resp.Rows {
		table.Append([]string{row.Date, strconv.Itoa(row.Class), row.Subject, row.Session})
	}
	table.Render()

	gaps := make([]string, 0, len(resp.Gaps))
	for _, gap := range resp.Gaps {
		gaps = append(gaps, fmt.Sprintf("class %d: %d", gap.Class, gap.Gap))
	}
	if len(gaps) > 0 {
		fmt.Fprintf(w, "Gaps: %s\n", strings.Join(gaps, ", "))
	}
	if resp.Clashes > 0 {
		warn(w, "%d exam(s) share a date with the same subject in another class", resp.Clashes)
	}
	for _, missing := range resp.Unscheduled {
		warn(w, "Unscheduled: class %d %s", missing.Class, missing.Subject)
	}
}

func printWeekly(w io.Writer, resp *dto.WeeklyTimetableResponse, sections []export.Section) {
	for _, section := range sections {
		heading(w, section.Title)
		table := newTable(w, section.Data.Headers)
		for _, row := range section.Data.Rows {
			record := make([]string, len(section.Data.Headers))
			for i, header := range section.Data.Headers {
				record[i] = row[header]
			}
			table.Append(record)
		}
		table.Render()
	}

	diag := resp.Diagnostics
	fmt.Fprintf(w, "Seed %d, sports day classes: %s\n", resp.Seed, strings.Join(resp.SportsDayClasses, ", "))
	if len(diag.UnassignedSections) > 0 {
		warn(w, "No class teacher for: %s", strings.Join(diag.UnassignedSections, ", "))
	}
	for _, fallback := range diag.Fallbacks {
		warn(w, "%s starts with %s: %s", fallback.Class, fallback.Subject, fallback.Reason)
	}
	if n := len(diag.Displaced); n > 0 {
		warn(w, "%d teacher period(s) moved to resolve double bookings", n)
	}
	if n := len(diag.Dropped); n > 0 {
		warn(w, "%d teacher period(s) could not be placed", n)
	}
	if n := len(diag.Unstaffed); n > 0 {
		warn(w, "%d class period(s) have no teacher", n)
	}
}
