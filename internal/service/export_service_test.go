package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ManithKumarpace/Edu-Pilot/internal/dto"
	appErrors "github.com/ManithKumarpace/Edu-Pilot/pkg/errors"
	"github.com/ManithKumarpace/Edu-Pilot/pkg/storage"
)

func examPreview() *dto.TimetablePreview {
	return &dto.TimetablePreview{
		ID:   "preview-1",
		Kind: dto.PreviewKindExam,
		Exam: &dto.ExamTimetableResponse{
			PreviewID: "preview-1",
			Rows: []dto.ExamTimetableRow{
				{Date: "03-Jun-2024", Class: 5, Subject: "Mathematics", Session: "Morning"},
			},
		},
	}
}

func TestExportServiceExamRoundTrip(t *testing.T) {
	dir := t.TempDir()
	store, err := storage.NewLocalStorage(dir)
	require.NoError(t, err)
	metrics := NewMetricsService()
	svc := NewExportService(store, storage.NewSignedURLSigner("secret", time.Hour), ExportConfig{APIPrefix: "/v2/"}, metrics, nil, nil, nil)

	resp, err := svc.Render(context.Background(), examPreview(), dto.ExportRequest{View: dto.ExportViewExam, Format: FormatCSV})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(resp.URL, "/v2/timetables/downloads/"))
	assert.True(t, strings.HasPrefix(resp.Filename, "exam_"))
	assert.EqualValues(t, 1, metrics.Snapshot().Exports)

	download, err := svc.Open(strings.TrimPrefix(resp.URL, "/v2/timetables/downloads/"))
	require.NoError(t, err)
	assert.Equal(t, "Date,Class,Subject,Session\n03-Jun-2024,5,Mathematics,Morning\n", string(download.Body))

	require.NoError(t, os.RemoveAll(filepath.Join(dir, "preview-1")))
	_, err = svc.Open(strings.TrimPrefix(resp.URL, "/v2/timetables/downloads/"))
	assert.True(t, errors.Is(err, appErrors.ErrNotFound))
}

func TestExportServiceRejectsMismatchedView(t *testing.T) {
	store, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	svc := NewExportService(store, storage.NewSignedURLSigner("secret", time.Hour), ExportConfig{}, nil, nil, nil, nil)

	_, err = svc.Render(context.Background(), examPreview(), dto.ExportRequest{View: dto.ExportViewClasses, Format: FormatCSV})
	assert.True(t, errors.Is(err, appErrors.ErrValidation))
}

func TestExportServiceCleanup(t *testing.T) {
	store, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	svc := NewExportService(store, storage.NewSignedURLSigner("secret", time.Hour), ExportConfig{ResultTTL: time.Hour}, nil, nil, nil, nil)

	_, err = svc.Render(context.Background(), examPreview(), dto.ExportRequest{View: dto.ExportViewExam, Format: FormatPDF})
	require.NoError(t, err)

	deleted, err := svc.Cleanup(0)
	require.NoError(t, err)
	assert.Empty(t, deleted)

	deleted, err = svc.Cleanup(time.Nanosecond)
	require.NoError(t, err)
	assert.Len(t, deleted, 1)
}
