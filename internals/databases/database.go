package database

import (
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	quizModel "edutrack_backend/internals/features/quizzes/quiz/model"
	resultModel "edutrack_backend/internals/features/quizzes/result/model"
	userModel "edutrack_backend/internals/features/users/user/model"
)

var DB *gorm.DB

const (
	maxConnectAttempts = 5
	baseConnectDelay   = 500 * time.Millisecond
)

func ConnectDB() {
	log.Println("🔌 Connecting to PostgreSQL...")

	sslmode := getenv("DB_SSLMODE", "require")
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&application_name=edutrack&options=-c statement_timeout=3000",
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_HOST"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_NAME"),
		sslmode,
	)

	// Bounded backoff: retry a handful of times with doubling delay, then
	// exit. A dead database at startup is fatal, not something to mask.
	var db *gorm.DB
	var err error
	delay := baseConnectDelay
	for attempt := 1; attempt <= maxConnectAttempts; attempt++ {
		db, err = gorm.Open(postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true, // plays well with PgBouncer transaction pooling
		}), &gorm.Config{})
		if err == nil {
			break
		}
		log.Printf("⚠️ DB connect attempt %d/%d failed: %v", attempt, maxConnectAttempts, err)
		if attempt == maxConnectAttempts {
			log.Fatalf("❌ Could not connect to DB after %d attempts: %v", maxConnectAttempts, err)
		}
		time.Sleep(delay)
		delay *= 2
	}
	DB = db
	log.Println("✅ DB connected.")
}

func Migrate() {
	if err := DB.AutoMigrate(
		&userModel.UserModel{},
		&quizModel.QuizModel{},
		&resultModel.ResultModel{},
	); err != nil {
		log.Fatalf("❌ Migration failed: %v", err)
	}
	log.Println("✅ Migrations applied")
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

func Ping() error {
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

func Close() {
	if DB == nil {
		return
	}
	if sqlDB, err := DB.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
