package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSVExporterRendersHeaderOrder(t *testing.T) {
	data := Dataset{
		Headers: []string{"Date", "Class", "Subject", "Session"},
		Rows: []map[string]string{
			{"Date": "03-Jun-2024", "Class": "1", "Subject": "Mathematics", "Session": "Morning"},
		},
	}
	out, err := NewCSVExporter().Render(data)
	require.NoError(t, err)
	assert.Equal(t, "Date,Class,Subject,Session\n03-Jun-2024,1,Mathematics,Morning\n", string(out))
}

func TestCSVExporterRequiresHeaders(t *testing.T) {
	_, err := NewCSVExporter().Render(Dataset{})
	require.Error(t, err)
}

func TestFlattenPrefixesSectionTitle(t *testing.T) {
	sections := []Section{
		{Title: "1A", Data: Dataset{Headers: []string{"Day", "P1"}, Rows: []map[string]string{{"Day": "monday", "P1": "Mathematics"}}}},
		{Title: "9A", Data: Dataset{Headers: []string{"Day", "P1", "P2"}, Rows: []map[string]string{{"Day": "monday", "P1": "English", "P2": "Hindi"}}}},
	}
	flat := Flatten("Class", sections)
	assert.Equal(t, []string{"Class", "Day", "P1", "P2"}, flat.Headers)
	require.Len(t, flat.Rows, 2)
	assert.Equal(t, "1A", flat.Rows[0]["Class"])
	assert.Equal(t, "9A", flat.Rows[1]["Class"])
}

func TestPDFExporterRendersSections(t *testing.T) {
	sections := []Section{
		{Title: "9A", Data: Dataset{
			Headers: []string{"Day", "P1", "P2", "P3", "P4", "P5", "P6", "P7", "P8"},
			Rows:    []map[string]string{{"Day": "monday", "P1": "Mathematics"}},
		}},
	}
	out, err := NewPDFExporter().RenderSections("weekly timetable", sections)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestPDFExporterRejectsEmpty(t *testing.T) {
	_, err := NewPDFExporter().RenderSections("x", nil)
	require.Error(t, err)
}
