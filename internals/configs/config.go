package configs

import (
	"context"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	gormLogger "gorm.io/gorm/logger"
	"gorm.io/gorm/utils"
)

var (
	JWTSecret         string
	AdminEmail        string
	AdminPasswordHash string

	// Redirect targets handed back to the funnel front end after scoring.
	CheckoutURL string
	ReviewURL   string
	FollowupURL string
)

// =======================
// ENV LOADER
// =======================
func LoadEnv() {
	if os.Getenv("RAILWAY_ENVIRONMENT") == "" {
		if err := godotenv.Load(); err != nil {
			log.Println("⚠️ No .env file found, using system ENV")
		} else {
			log.Println("✅ .env file loaded")
		}
	} else {
		log.Println("🚀 Running in Railway, using system ENV")
	}

	JWTSecret = GetEnv("JWT_SECRET")
	AdminEmail = GetEnv("ADMIN_EMAIL")
	AdminPasswordHash = GetEnv("ADMIN_PASSWORD_HASH")

	CheckoutURL = GetEnv("FUNNEL_CHECKOUT_URL", "/checkout")
	ReviewURL = GetEnv("FUNNEL_REVIEW_URL", "/suitability-review")
	FollowupURL = GetEnv("FUNNEL_FOLLOWUP_URL", "/thank-you-followup")

	if JWTSecret == "" {
		log.Println("❌ JWT_SECRET is not set!")
	}
	if AdminPasswordHash == "" {
		log.Println("⚠️ ADMIN_PASSWORD_HASH is not set, admin login disabled")
	}
}

func GetEnv(key string, defaultValue ...string) string {
	value, exists := os.LookupEnv(key)
	if !exists && len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return value
}

// GetEnvInt reads an integer env var with a fallback.
func GetEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}

// DedupWindow is how far back the synchronous intercept looks for a
// same-email record before deciding to merge instead of insert.
func DedupWindow() time.Duration {
	return time.Duration(GetEnvInt("DEDUP_WINDOW_MINUTES", 10)) * time.Minute
}

// DedupSweepInterval is the cadence of the periodic duplicate sweep.
func DedupSweepInterval() time.Duration {
	return time.Duration(GetEnvInt("DEDUP_SWEEP_INTERVAL_MINUTES", 60)) * time.Minute
}

// =======================
// GORM LOGGER CUSTOM
// =======================
type GormLogger struct {
	SlowThreshold time.Duration
	LogLevel      gormLogger.LogLevel
}

func NewGormLogger() gormLogger.Interface {
	return &GormLogger{
		SlowThreshold: 200 * time.Millisecond,
		LogLevel:      gormLogger.Warn,
	}
}

func (l *GormLogger) LogMode(level gormLogger.LogLevel) gormLogger.Interface {
	l.LogLevel = level
	return l
}

func (l *GormLogger) Info(ctx context.Context, msg string, data ...interface{}) {
	log.Printf("[INFO] "+msg, data...)
}

func (l *GormLogger) Warn(ctx context.Context, msg string, data ...interface{}) {
	log.Printf("[WARN] "+msg, data...)
}

func (l *GormLogger) Error(ctx context.Context, msg string, data ...interface{}) {
	log.Printf("[ERROR] "+msg, data...)
}

func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	elapsed := time.Since(begin)
	sql, rows := fc()
	file := utils.FileWithLineNum()

	if err != nil {
		log.Printf("[ERROR] %s | %v | %s | %d rows | %s", file, err, elapsed, rows, sql)
	} else if elapsed > l.SlowThreshold {
		log.Printf("[SLOW SQL] %s | %s | %d rows | %s", file, elapsed, rows, sql)
	}
}
