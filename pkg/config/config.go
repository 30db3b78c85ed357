package config

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env       string
	Port      int
	APIPrefix string

	Redis     RedisConfig
	CORS      CORSConfig
	Log       LogConfig
	Timetable TimetableConfig
	Exports   ExportsConfig
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// TimetableConfig tunes the generators and the preview store.
type TimetableConfig struct {
	Sections        int
	ElectiveSubject string
	MaxExamDays     int
	// ExtraSubjects holds "Name:category" entries added to the subject catalog.
	ExtraSubjects []string
	PreviewCache  bool
	PreviewTTL    time.Duration
}

// ExportsConfig configures rendered timetable downloads.
type ExportsConfig struct {
	StorageDir      string
	SignedURLSecret string
	SignedURLTTL    time.Duration
	CleanupInterval time.Duration
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")

	cfg.Redis = RedisConfig{
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	sections := v.GetInt("TIMETABLE_SECTIONS")
	if sections <= 0 || sections > 26 {
		sections = 4
	}
	cfg.Timetable = TimetableConfig{
		Sections:        sections,
		ElectiveSubject: v.GetString("TIMETABLE_ELECTIVE_SUBJECT"),
		MaxExamDays:     v.GetInt("TIMETABLE_MAX_EXAM_DAYS"),
		ExtraSubjects:   splitAndTrim(v.GetString("TIMETABLE_EXTRA_SUBJECTS")),
		PreviewCache:    v.GetBool("ENABLE_PREVIEW_CACHE"),
		PreviewTTL:      parseDuration(v.GetString("TIMETABLE_PREVIEW_TTL"), 30*time.Minute),
	}

	cfg.Exports = ExportsConfig{
		StorageDir:      v.GetString("EXPORTS_STORAGE_DIR"),
		SignedURLSecret: v.GetString("EXPORTS_SIGNED_URL_SECRET"),
		SignedURLTTL:    parseDuration(v.GetString("EXPORTS_SIGNED_URL_TTL"), time.Hour),
		CleanupInterval: parseDuration(v.GetString("EXPORTS_CLEANUP_INTERVAL"), time.Hour),
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_PREFIX", "/api/v1")

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("TIMETABLE_SECTIONS", 4)
	v.SetDefault("TIMETABLE_ELECTIVE_SUBJECT", "General Knowledge")
	v.SetDefault("TIMETABLE_MAX_EXAM_DAYS", 366)
	v.SetDefault("TIMETABLE_EXTRA_SUBJECTS", "")
	v.SetDefault("ENABLE_PREVIEW_CACHE", false)
	v.SetDefault("TIMETABLE_PREVIEW_TTL", "30m")

	v.SetDefault("EXPORTS_STORAGE_DIR", "./exports")
	v.SetDefault("EXPORTS_SIGNED_URL_SECRET", "dev_exports_secret")
	v.SetDefault("EXPORTS_SIGNED_URL_TTL", "1h")
	v.SetDefault("EXPORTS_CLEANUP_INTERVAL", "1h")
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
