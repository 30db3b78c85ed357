package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chdirTemp(t *testing.T) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func TestLoadDefaults(t *testing.T) {
	chdirTemp(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, EnvDevelopment, cfg.Env)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "/api/v1", cfg.APIPrefix)
	assert.Equal(t, 4, cfg.Timetable.Sections)
	assert.Equal(t, "General Knowledge", cfg.Timetable.ElectiveSubject)
	assert.Equal(t, 366, cfg.Timetable.MaxExamDays)
	assert.False(t, cfg.Timetable.PreviewCache)
	assert.Equal(t, 30*time.Minute, cfg.Timetable.PreviewTTL)
	assert.Equal(t, "./exports", cfg.Exports.StorageDir)
	assert.Equal(t, time.Hour, cfg.Exports.SignedURLTTL)
}

func TestLoadFromEnvironment(t *testing.T) {
	chdirTemp(t)
	t.Setenv("TIMETABLE_SECTIONS", "2")
	t.Setenv("TIMETABLE_MAX_EXAM_DAYS", "30")
	t.Setenv("TIMETABLE_EXTRA_SUBJECTS", "Astronomy:other, Tamil:language")
	t.Setenv("TIMETABLE_PREVIEW_TTL", "5m")
	t.Setenv("ALLOWED_ORIGINS", "http://a.test, http://b.test")
	t.Setenv("EXPORTS_SIGNED_URL_TTL", "not-a-duration")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 2, cfg.Timetable.Sections)
	assert.Equal(t, 30, cfg.Timetable.MaxExamDays)
	assert.Equal(t, []string{"Astronomy:other", "Tamil:language"}, cfg.Timetable.ExtraSubjects)
	assert.Equal(t, 5*time.Minute, cfg.Timetable.PreviewTTL)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, time.Hour, cfg.Exports.SignedURLTTL)
}

func TestLoadClampsSections(t *testing.T) {
	chdirTemp(t)
	t.Setenv("TIMETABLE_SECTIONS", "40")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.Timetable.Sections)
}
