package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/smpn1padarincang/presensi-backend-go/internal/pkg/schedule"
)

type Config struct {
	App      AppConfig
	JWT      JWTConfig
	Sheets   SheetsConfig
	Geofence GeofenceConfig
	Schedule ScheduleConfig
	State    StateConfig
	Refresh  RefreshConfig
}

// AppConfig holds application configuration
type AppConfig struct {
	Port           int
	Env            string
	LogLevel       string
	AllowedOrigins []string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret           string
	AccessExpiration string
}

// SheetsConfig points at the published personnel CSV and the Apps Script web
// app that stores submissions.
type SheetsConfig struct {
	DirectoryURL         string
	FallbackDirectoryURL string
	WebAppURL            string
	Timeout              time.Duration
}

type GeofenceConfig struct {
	Lat          float64
	Lng          float64
	RadiusMeters float64
}

// ScheduleConfig carries the raw HH:MM thresholds; Rules() parses them.
type ScheduleConfig struct {
	CheckoutDefault  string
	CheckoutThursday string
	CheckoutFriday   string
	LateAfter        string
}

type StateConfig struct {
	Dir string
}

type RefreshConfig struct {
	Directory time.Duration
	Dashboard time.Duration
}

func Load() (*Config, error) {
	// .env is optional; in containers everything arrives as real env vars.
	_ = godotenv.Load()

	config := &Config{}

	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:           appPort,
		Env:            getEnv("APP_ENV", "development"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		AllowedOrigins: getEnvSlice("ALLOWED_ORIGINS", "http://localhost:3000"),
	}

	config.JWT = JWTConfig{
		Secret:           getEnv("JWT_SECRET_KEY", ""),
		AccessExpiration: getEnv("JWT_ACCESS_EXPIRATION_TIME", "24h"),
	}

	sheetTimeout, err := time.ParseDuration(getEnv("SHEET_TIMEOUT", "15s"))
	if err != nil {
		return nil, fmt.Errorf("invalid SHEET_TIMEOUT: %w", err)
	}

	config.Sheets = SheetsConfig{
		DirectoryURL:         getEnv("SHEET_CSV_URL", ""),
		FallbackDirectoryURL: getEnv("SHEET_CSV_FALLBACK_URL", ""),
		WebAppURL:            getEnv("GAS_WEBAPP_URL", ""),
		Timeout:              sheetTimeout,
	}

	lat, err := getEnvFloat("GEOFENCE_LAT", "-6.207676212766887")
	if err != nil {
		return nil, err
	}
	lng, err := getEnvFloat("GEOFENCE_LNG", "105.97295421490682")
	if err != nil {
		return nil, err
	}
	radius, err := getEnvFloat("GEOFENCE_RADIUS_METERS", "50")
	if err != nil {
		return nil, err
	}
	config.Geofence = GeofenceConfig{Lat: lat, Lng: lng, RadiusMeters: radius}

	config.Schedule = ScheduleConfig{
		CheckoutDefault:  getEnv("CHECKOUT_TIME_DEFAULT", "14:45"),
		CheckoutThursday: getEnv("CHECKOUT_TIME_THURSDAY", "14:10"),
		CheckoutFriday:   getEnv("CHECKOUT_TIME_FRIDAY", "11:00"),
		LateAfter:        getEnv("LATE_AFTER", "07:15"),
	}

	config.State = StateConfig{
		Dir: getEnv("STATE_DIR", "./data"),
	}

	directoryInterval, err := time.ParseDuration(getEnv("DIRECTORY_REFRESH_INTERVAL", "60s"))
	if err != nil {
		return nil, fmt.Errorf("invalid DIRECTORY_REFRESH_INTERVAL: %w", err)
	}
	dashboardInterval, err := time.ParseDuration(getEnv("DASHBOARD_REFRESH_INTERVAL", "60s"))
	if err != nil {
		return nil, fmt.Errorf("invalid DASHBOARD_REFRESH_INTERVAL: %w", err)
	}
	config.Refresh = RefreshConfig{
		Directory: directoryInterval,
		Dashboard: dashboardInterval,
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if c.Sheets.WebAppURL == "" {
		return fmt.Errorf("GAS_WEBAPP_URL is required")
	}
	if c.Geofence.RadiusMeters <= 0 {
		return fmt.Errorf("GEOFENCE_RADIUS_METERS must be positive")
	}
	return nil
}

// Rules parses the schedule thresholds into the engine's rule set.
func (c *Config) Rules() (schedule.Rules, error) {
	defaultOut, err := schedule.ParseTimeOfDay(c.Schedule.CheckoutDefault)
	if err != nil {
		return schedule.Rules{}, fmt.Errorf("invalid CHECKOUT_TIME_DEFAULT: %w", err)
	}
	thursdayOut, err := schedule.ParseTimeOfDay(c.Schedule.CheckoutThursday)
	if err != nil {
		return schedule.Rules{}, fmt.Errorf("invalid CHECKOUT_TIME_THURSDAY: %w", err)
	}
	fridayOut, err := schedule.ParseTimeOfDay(c.Schedule.CheckoutFriday)
	if err != nil {
		return schedule.Rules{}, fmt.Errorf("invalid CHECKOUT_TIME_FRIDAY: %w", err)
	}
	lateAfter, err := schedule.ParseTimeOfDay(c.Schedule.LateAfter)
	if err != nil {
		return schedule.Rules{}, fmt.Errorf("invalid LATE_AFTER: %w", err)
	}

	checkout := map[time.Weekday]schedule.TimeOfDay{}
	for day := time.Sunday; day <= time.Saturday; day++ {
		checkout[day] = defaultOut
	}
	checkout[time.Thursday] = thursdayOut
	checkout[time.Friday] = fridayOut

	return schedule.NewRules(checkout, lateAfter), nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvFloat(key, fallback string) (float64, error) {
	value, err := strconv.ParseFloat(getEnv(key, fallback), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return value, nil
}

func getEnvSlice(key, fallback string) []string {
	value := getEnv(key, fallback)
	if value == "" {
		return []string{}
	}
	return strings.Split(value, ",")
}
