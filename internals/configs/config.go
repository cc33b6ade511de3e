package configs

import (
	"crypto/rand"
	"encoding/hex"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

var (
	JWTSecret      string
	GoogleClientID string

	AIAPIURL  string
	AIAPIKey  string
	AITimeout time.Duration

	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	SMTPFrom     string

	CORSOrigin string
)

// =======================
// ENV LOADER
// =======================
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ No .env file found, using system ENV")
	} else {
		log.Println("✅ .env file loaded")
	}

	// DB vars are consumed by the databases package; missing ones are fatal
	// here so the process never limps along without a store.
	for _, key := range []string{"DB_USER", "DB_PASSWORD", "DB_HOST", "DB_PORT", "DB_NAME"} {
		if os.Getenv(key) == "" {
			log.Fatalf("❌ %s is not set", key)
		}
	}

	JWTSecret = GetEnv("JWT_SECRET")
	if JWTSecret == "" {
		// Never run with unsigned tokens. A generated secret keeps the server
		// working for a single run; sessions do not survive a restart.
		JWTSecret = generateSecret()
		log.Println("⚠️ JWT_SECRET is not set, generated an ephemeral secret; sessions will not survive restarts")
	}

	GoogleClientID = GetEnv("GOOGLE_CLIENT_ID")

	AIAPIURL = GetEnv("AI_API_URL")
	AIAPIKey = GetEnv("AI_API_KEY")
	if AIAPIURL == "" || AIAPIKey == "" {
		log.Fatal("❌ AI_API_URL / AI_API_KEY are not set")
	}
	AITimeout = time.Duration(GetEnvInt("AI_TIMEOUT_SECONDS", 30)) * time.Second

	SMTPHost = GetEnv("SMTP_HOST")
	SMTPPort = GetEnvInt("SMTP_PORT", 587)
	SMTPUsername = GetEnv("SMTP_USERNAME")
	SMTPPassword = GetEnv("SMTP_PASSWORD")
	SMTPFrom = GetEnv("SMTP_FROM")
	if SMTPHost == "" || SMTPFrom == "" {
		log.Fatal("❌ SMTP_HOST / SMTP_FROM are not set")
	}

	CORSOrigin = GetEnv("CORS_ORIGIN", "http://localhost:5173")

	log.Println("✅ Configuration loaded")
}

func GetEnv(key string, defaultValue ...string) string {
	value, exists := os.LookupEnv(key)
	if !exists && len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return value
}

func GetEnvInt(key string, defaultValue int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
		log.Printf("⚠️ %s=%q is not a number, using default %d", key, v, defaultValue)
	}
	return defaultValue
}

func generateSecret() string {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		log.Fatalf("❌ Could not generate JWT secret: %v", err)
	}
	return hex.EncodeToString(buf)
}
