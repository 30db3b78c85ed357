package timetable

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

// firstRand always picks index zero and never shuffles.
type firstRand struct{}

func (firstRand) Intn(int) int { return 0 }

func (firstRand) Shuffle(int, func(i, j int)) {}

// defaultRows staffs every curriculum subject of the default catalog with one teacher per grade.
func defaultRows(t *testing.T) []TeacherRow {
	t.Helper()
	catalog := DefaultCatalog()
	var rows []TeacherRow
	for _, grade := range catalog.Grades() {
		for _, subject := range catalog.Curriculum(grade) {
			rows = append(rows, TeacherRow{
				Name:     fmt.Sprintf("%s %d", subject, grade),
				Classes:  []string{fmt.Sprint(grade)},
				Subjects: []string{subject},
			})
		}
	}
	require.NotEmpty(t, rows)
	return rows
}
