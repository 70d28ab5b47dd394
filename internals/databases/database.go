package database

import (
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"suitability_backend/internals/configs"
	quizmodel "suitability_backend/internals/features/funnel/quiz/model"
	quizsvc "suitability_backend/internals/features/funnel/quiz/service"
	submodel "suitability_backend/internals/features/funnel/submissions/model"
)

var DB *gorm.DB

func ConnectDB() {
	log.Println("🔌 Connecting to PostgreSQL...")

	sslmode := getenv("DB_SSLMODE", "require")
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&application_name=suitability&options=-c statement_timeout=3000",
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_HOST"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_NAME"),
		sslmode,
	)

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true, // 👍 plays nice with PgBouncer (transaction pooling)
	}), &gorm.Config{
		Logger: configs.NewGormLogger(),
	})
	if err != nil {
		log.Fatalf("❌ DB connect failed: %v", err)
	}
	DB = db
	log.Println("✅ DB connected.")
}

func TunePool() {
	sqlDB, err := DB.DB()
	if err != nil {
		log.Printf("pool tune err: %v", err)
		return
	}
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxIdleTime(60 * time.Second)
	sqlDB.SetConnMaxLifetime(10 * time.Minute)
}

// MigrateAndSeed creates the funnel tables and seeds the 10 default
// suitability questions when the quiz table is empty.
func MigrateAndSeed() {
	if err := DB.AutoMigrate(
		&submodel.SubmissionModel{},
		&submodel.SignatureModel{},
		&quizmodel.QuizQuestionModel{},
	); err != nil {
		log.Fatalf("❌ automigrate failed: %v", err)
	}

	if err := quizsvc.NewQuizService(DB).SeedDefaultQuestions(); err != nil {
		log.Printf("[SEED ERROR] quiz questions: %v", err)
	}
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
