package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds application configuration
type Config struct {
	Port          string
	Env           string
	PublicBaseURL string
	LogLevel      string

	TelegramToken       string
	TelegramAPIBaseURL  string
	TelegramPollTimeout time.Duration

	GeminiAPIKey      string
	VisionModelID     string
	ExtractionModelID string
	OracleTimeout     time.Duration

	CalendarID            string
	GoogleCredentialsFile string
	CalendarTimeout       time.Duration
	AppointmentDuration   time.Duration
	ReminderEmailMinutes  int
	ReminderPopupMinutes  int

	ClinicTimezone     string
	OpeningHour        int
	ClosingHour        int
	BookingHorizonDays int
	PastTolerance      time.Duration

	SessionTTL        time.Duration
	RedisAddr         string
	RedisPassword     string
	DatabaseURL       string
	BookingLogEnabled bool
	ShutdownTimeout   time.Duration
}

// Load reads configuration from environment variables
func Load() *Config {
	return &Config{
		Port:          getEnv("PORT", "8080"),
		Env:           getEnv("ENV", "development"),
		PublicBaseURL: getEnv("PUBLIC_BASE_URL", ""),
		LogLevel:      getEnv("LOG_LEVEL", "info"),

		TelegramToken:       getEnv("TELEGRAM_TOKEN", ""),
		TelegramAPIBaseURL:  getEnv("TELEGRAM_API_BASE_URL", "https://api.telegram.org"),
		TelegramPollTimeout: getEnvAsDuration("TELEGRAM_POLL_TIMEOUT", 30*time.Second),

		GeminiAPIKey:      getEnv("GEMINI_API_KEY", ""),
		VisionModelID:     getEnv("VISION_MODEL_ID", "gemini-2.5-flash"),
		ExtractionModelID: getEnv("EXTRACTION_MODEL_ID", "gemini-2.5-flash-lite"),
		OracleTimeout:     getEnvAsDuration("ORACLE_TIMEOUT", 20*time.Second),

		CalendarID:            getEnv("CALENDAR_ID", ""),
		GoogleCredentialsFile: getEnv("GOOGLE_CREDENTIALS_FILE", "credentials.json"),
		CalendarTimeout:       getEnvAsDuration("CALENDAR_TIMEOUT", 15*time.Second),
		AppointmentDuration:   getEnvAsDuration("APPOINTMENT_DURATION", time.Hour),
		ReminderEmailMinutes:  getEnvAsInt("REMINDER_EMAIL_MINUTES", 1440),
		ReminderPopupMinutes:  getEnvAsInt("REMINDER_POPUP_MINUTES", 60),
		ClinicTimezone:        getEnv("CLINIC_TIMEZONE", "America/Mexico_City"),
		OpeningHour:           getEnvAsInt("OPENING_HOUR", 10),
		ClosingHour:           getEnvAsInt("CLOSING_HOUR", 20),
		BookingHorizonDays:    getEnvAsInt("BOOKING_HORIZON_DAYS", 30),
		PastTolerance:         getEnvAsDuration("PAST_TOLERANCE", time.Minute),
		SessionTTL:            getEnvAsDuration("SESSION_TTL", 24*time.Hour),
		RedisAddr:             getEnv("REDIS_ADDR", ""),
		RedisPassword:         getEnv("REDIS_PASSWORD", ""),
		DatabaseURL:           getEnv("DATABASE_URL", ""),
		BookingLogEnabled:     getEnvAsBool("BOOKING_LOG_ENABLED", false),
		ShutdownTimeout:       getEnvAsDuration("SHUTDOWN_TIMEOUT", 30*time.Second),
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// getEnvAsBool retrieves an environment variable as a boolean or returns a default value
func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}
