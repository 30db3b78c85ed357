package models

import (
	"fmt"
	"strconv"
	"strings"
)

// TeacherLevel separates primary (grade <= 4) from secondary staff.
type TeacherLevel string

const (
	LevelLower  TeacherLevel = "lower"
	LevelHigher TeacherLevel = "higher"
)

// RoleNormal is the role every teacher starts with.
const RoleNormal = "normal"

const classTeacherPrefix = "class teacher of "

// ClassSubject pairs a class (grade "9" or section "9C") with a subject.
type ClassSubject struct {
	Class   string `json:"class"`
	Subject string `json:"subject"`
}

// TeacherRecord is a roster entry mutated by the roster pipeline.
type TeacherRecord struct {
	Name        string         `json:"name"`
	Role        string         `json:"role"`
	Level       TeacherLevel   `json:"level"`
	Assignments []ClassSubject `json:"class_subjects"`
}

// Clone returns a deep copy so pipeline stages never alias assignment slices.
func (t TeacherRecord) Clone() TeacherRecord {
	out := t
	out.Assignments = append([]ClassSubject(nil), t.Assignments...)
	return out
}

// Load is the number of class/subject pairs held by the teacher.
func (t TeacherRecord) Load() int {
	return len(t.Assignments)
}

// Teaches reports whether the teacher holds the given class/subject pair.
func (t TeacherRecord) Teaches(class, subject string) bool {
	for _, pair := range t.Assignments {
		if pair.Class == class && pair.Subject == subject {
			return true
		}
	}
	return false
}

// ClassTeacherRole renders the role marker for a section.
func ClassTeacherRole(section string) string {
	return classTeacherPrefix + section
}

// ClassTeacherOf returns the section the teacher leads, if any.
func (t TeacherRecord) ClassTeacherOf() (string, bool) {
	if !strings.HasPrefix(t.Role, classTeacherPrefix) {
		return "", false
	}
	return strings.TrimPrefix(t.Role, classTeacherPrefix), true
}

// SectionID builds a class section identifier such as "9C".
func SectionID(grade int, section rune) string {
	return fmt.Sprintf("%d%c", grade, section)
}

// SectionLetters returns the first n section letters starting at 'A'.
func SectionLetters(n int) []rune {
	letters := make([]rune, 0, n)
	for i := 0; i < n; i++ {
		letters = append(letters, rune('A'+i))
	}
	return letters
}

// ParseSection splits "9C" into grade 9 and letter "C". A bare grade returns an empty letter.
func ParseSection(class string) (int, string, error) {
	class = strings.TrimSpace(class)
	idx := 0
	for idx < len(class) && class[idx] >= '0' && class[idx] <= '9' {
		idx++
	}
	if idx == 0 {
		return 0, "", fmt.Errorf("class %q does not start with a grade number", class)
	}
	grade, err := strconv.Atoi(class[:idx])
	if err != nil {
		return 0, "", fmt.Errorf("class %q: %w", class, err)
	}
	return grade, class[idx:], nil
}
