package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/kankrittapon/calendar/internal/domain"
	"github.com/kankrittapon/calendar/internal/logger"
)

type Config struct {
	SlackBotToken      string
	SlackAppToken      string
	SlackSigningSecret string
	DatabasePath       string
	Port               string
	AdminToken         string

	DailyDigestTime    string // HH:MM local
	TomorrowDigestTime string // HH:MM local
	ReminderMinutes    []int  // minutes of the hour on which reminders are checked
	UTCOffsetHours     int
	SendTimeout        time.Duration
	CronSpec           string

	LogLevel string
	LogFile  string
}

func Load() *Config {
	return &Config{
		SlackBotToken:      getEnv("SLACK_BOT_TOKEN", ""),
		SlackAppToken:      getEnv("SLACK_APP_TOKEN", ""),
		SlackSigningSecret: getEnv("SLACK_SIGNING_SECRET", ""),
		DatabasePath:       getEnv("DATABASE_PATH", "./schedule.db"),
		Port:               getEnv("PORT", "3000"),
		AdminToken:         getEnv("ADMIN_TOKEN", ""),

		DailyDigestTime:    getClock("DAILY_DIGEST_TIME", "08:30"),
		TomorrowDigestTime: getClock("TOMORROW_DIGEST_TIME", "20:00"),
		ReminderMinutes:    getMinutes("REMINDER_MINUTES", []int{0, 30}),
		UTCOffsetHours:     getInt("UTC_OFFSET_HOURS", domain.DefaultUTCOffsetHours),
		SendTimeout:        getDuration("SEND_TIMEOUT", 15*time.Second),
		CronSpec:           getEnv("CRON_SPEC", "* * * * *"),

		LogLevel: getEnv("LOG_LEVEL", "info"),
		LogFile:  getEnv("LOG_FILE", ""),
	}
}

// Location returns the fixed local time zone used for all calendar math
func (c *Config) Location() *time.Location {
	return domain.Zone(c.UTCOffsetHours)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getInt(key string, defaultValue int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		logger.Warn("invalid integer in environment, using default", "key", key, "value", raw, "default", defaultValue)
		return defaultValue
	}
	return v
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	v, err := time.ParseDuration(raw)
	if err != nil || v <= 0 {
		logger.Warn("invalid duration in environment, using default", "key", key, "value", raw, "default", defaultValue)
		return defaultValue
	}
	return v
}

func getClock(key, defaultValue string) string {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	v, err := domain.NormalizeClock(raw)
	if err != nil {
		logger.Warn("invalid HH:MM in environment, using default", "key", key, "value", raw, "default", defaultValue)
		return defaultValue
	}
	return v
}

// getMinutes parses a comma separated list like "0,30"
func getMinutes(key string, defaultValue []int) []int {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}

	var minutes []int
	for _, part := range strings.Split(raw, ",") {
		m, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || m < 0 || m > 59 {
			logger.Warn("invalid minute list in environment, using default", "key", key, "value", raw)
			return defaultValue
		}
		minutes = append(minutes, m)
	}
	return minutes
}
