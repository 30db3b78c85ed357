package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCSV(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

const teachersCSV = `Teacher,Classes,Subjects
Meera,1,"English, Mathematics"
Ravi,1,"Hindi, Arts"
`

func TestExamCommandWritesCSV(t *testing.T) {
	subjects := writeCSV(t, "subjects.csv", "Class,Subjects\n5,Mathematics,English,Science\n")
	outPath := filepath.Join(t.TempDir(), "exam.csv")

	out, err := run(t, "exam", "--subjects", subjects, "--start", "2024-06-03", "--end", "2024-06-09", "--seed", "7", "--out", outPath)
	require.NoError(t, err)

	assert.Contains(t, out, "Exam timetable (seed 7)")
	assert.Contains(t, out, "03-Jun-2024")
	assert.Contains(t, out, "Wrote "+outPath)

	body, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(body), "Date,Class,Subject,Session\n"))
	assert.Equal(t, 4, strings.Count(string(body), "\n"))
}

func TestWeeklyCommandClassAndTeacherViews(t *testing.T) {
	teachers := writeCSV(t, "teachers.csv", teachersCSV)
	curriculum := writeCSV(t, "curriculum.csv", "1,Mathematics,English,Hindi,Arts\n")

	out, err := run(t, "weekly", "-t", teachers, "-s", curriculum, "--sections", "1", "--seed", "3", "--target", "1A")
	require.NoError(t, err)
	assert.Contains(t, out, "1A")
	assert.Contains(t, out, "monday")
	assert.Contains(t, out, "Seed 3")

	out, err = run(t, "weekly", "-t", teachers, "-s", curriculum, "--sections", "1", "--seed", "3", "--view", "teachers", "--target", "Meera")
	require.NoError(t, err)
	assert.Contains(t, out, "Meera")
}

func TestWeeklyCommandPDF(t *testing.T) {
	teachers := writeCSV(t, "teachers.csv", teachersCSV)
	curriculum := writeCSV(t, "curriculum.csv", "1,Mathematics,English,Hindi,Arts\n")
	outPath := filepath.Join(t.TempDir(), "classes.pdf")

	_, err := run(t, "weekly", "-t", teachers, "-s", curriculum, "--sections", "1", "--seed", "3", "-o", outPath)
	require.NoError(t, err)

	body, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(body, []byte("%PDF")))
}

func TestRosterCommand(t *testing.T) {
	teachers := writeCSV(t, "teachers.csv", teachersCSV)

	out, err := run(t, "roster", "-t", teachers, "--sections", "2", "--seed", "5")
	require.NoError(t, err)
	assert.Contains(t, out, "Teacher roster (seed 5)")
	assert.Contains(t, out, "Class teachers")
	assert.Contains(t, out, "No class teacher for:")
}

func TestCommandErrors(t *testing.T) {
	teachers := writeCSV(t, "teachers.csv", teachersCSV)

	_, err := run(t, "weekly", "-t", teachers, "--view", "rooms")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown view")

	_, err = run(t, "roster", "-t", filepath.Join(t.TempDir(), "missing.csv"))
	require.Error(t, err)

	_, err = run(t, "weekly", "-t", teachers, "--sections", "1", "-o", filepath.Join(t.TempDir(), "out.xlsx"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported output")

	_, err = run(t, "exam", "--subjects", teachers)
	require.Error(t, err)
}

func TestExamCommandSeedZeroIsKept(t *testing.T) {
	subjects := writeCSV(t, "subjects.csv", "Class,Subjects\n5,Mathematics,English\n")

	out, err := run(t, "exam", "--subjects", subjects, "--start", "2024-06-03", "--end", "2024-06-09", "--seed", "0")
	require.NoError(t, err)
	assert.Contains(t, out, "Exam timetable (seed 0)")

	again, err := run(t, "exam", "--subjects", subjects, "--start", "2024-06-03", "--end", "2024-06-09", "--seed", "0")
	require.NoError(t, err)
	assert.Equal(t, out, again)
}

func TestExamCommandRejectsLongRange(t *testing.T) {
	subjects := writeCSV(t, "subjects.csv", "Class,Subjects\n5,Mathematics,English\n")

	_, err := run(t, "exam", "--subjects", subjects, "--start", "2024-06-03", "--end", "2024-06-09", "--max-exam-days", "3")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "limit of 3 days")
}
