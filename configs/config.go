package config

import (
	"os"
	"strconv"
	"time"
)

// UnlimitedPosts is the plan-limit sentinel for plans without a monthly cap.
const UnlimitedPosts = -1

type R2 struct {
	AccountID  string
	AccessKey  string
	SecretKey  string
	BucketName string
}

type Config struct {
	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURI  string
	PostgresURI        string
	FrontendURL        string
	ListenAddr         string
	StorageBackend     string
	UploadDir          string
	R2                 R2
	SecretKey          string
	CookieName         string
	SessionsDir        string
	SchedulerInterval  time.Duration
	SessionRefreshSpec string
	PublishDelayMin    time.Duration
	PublishDelayMax    time.Duration
	MaxPageSize        int
	PlanLimits         map[string]int
}

func LoadConfig() *Config {
	return &Config{
		GoogleClientID:     getEnv("GOOGLE_CLIENT_ID", ""),
		GoogleClientSecret: getEnv("GOOGLE_CLIENT_SECRET", ""),
		GoogleRedirectURI:  getEnv("GOOGLE_REDIRECT_URI", "http://localhost:3000/login/callback"),
		PostgresURI:        getEnv("POSTGRES_URI", ""),
		FrontendURL:        getEnv("FRONTEND_URL", "http://localhost:5173"),
		ListenAddr:         getEnv("LISTEN_ADDR", ":3000"),
		StorageBackend:     getEnv("STORAGE_BACKEND", "local"),
		UploadDir:          getEnv("UPLOAD_DIR", "data/uploads"),
		R2: R2{
			AccountID:  getEnv("R2_ACCOUNT_ID", ""),
			AccessKey:  getEnv("R2_ACCESS_KEY", ""),
			SecretKey:  getEnv("R2_SECRET_KEY", ""),
			BucketName: getEnv("R2_BUCKET_NAME", ""),
		},
		SecretKey:          getEnv("SECRET_KEY", ""),
		CookieName:         getEnv("COOKIE_NAME", "autosns_token"),
		SessionsDir:        getEnv("SESSIONS_DIR", "data/sessions"),
		SchedulerInterval:  getEnvDuration("SCHEDULER_INTERVAL", time.Minute),
		SessionRefreshSpec: getEnv("SESSION_REFRESH_SPEC", "@every 06h00m00s"),
		PublishDelayMin:    getEnvDuration("PUBLISH_DELAY_MIN", 2*time.Second),
		PublishDelayMax:    getEnvDuration("PUBLISH_DELAY_MAX", 5*time.Second),
		MaxPageSize:        getEnvInt("MAX_PAGE_SIZE", 100),
		PlanLimits: map[string]int{
			"free":  getEnvInt("FREE_PLAN_LIMIT", 10),
			"basic": getEnvInt("BASIC_PLAN_LIMIT", 50),
			"pro":   getEnvInt("PRO_PLAN_LIMIT", UnlimitedPosts),
		},
	}
}

// MonthlyLimit returns the post cap for a plan name. Unknown plans fall back
// to the free tier rather than getting unlimited publishing.
func (c *Config) MonthlyLimit(plan string) int {
	if limit, ok := c.PlanLimits[plan]; ok {
		return limit
	}
	return c.PlanLimits["free"]
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
