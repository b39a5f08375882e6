package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/linesmerrill/efiling-api/logging"
	"github.com/linesmerrill/efiling-api/models"
)

// Config holds the project config values
type Config struct {
	URL          string
	DatabaseName string
	BaseURL      string
	Port         string
	Env          string

	JWTSecret string
	JWTTTL    time.Duration

	NationalIDScope  models.NationalIDScope
	AllowAdminSignup bool

	SendGridAPIKey string
	EmailFrom      string
	EmailFromName  string
	FrontendURL    string

	// DocumentStore is one of "cloudinary", "s3" or empty to disable uploads
	DocumentStore      string
	CloudinaryURL      string
	CloudinaryFolder   string
	S3Bucket           string
	S3Region           string
	S3Endpoint         string
	AWSAccessKeyID     string
	AWSSecretAccessKey string
}

// New sets up all config related services
func New() *Config {
	// a missing .env is fine, real deployments set the environment directly
	_ = godotenv.Load()

	env := os.Getenv("ENV")

	//setup zap logger and replace default logger
	logger, err := logging.New(env)
	if err != nil {
		logger = zap.NewExample()
	}
	defer logger.Sync()
	_ = zap.ReplaceGlobals(logger)

	scope := models.NationalIDScope(strings.ToLower(fallback(os.Getenv("NATIONAL_ID_SCOPE"), string(models.NationalIDScopeEver))))
	if !scope.IsValid() {
		zap.S().Warnw("unknown national id scope, using default", "scope", scope, "default", models.NationalIDScopeEver)
		scope = models.NationalIDScopeEver
	}

	return &Config{
		URL:          os.Getenv("DB_URI"),
		DatabaseName: fallback(os.Getenv("DB_NAME"), "efiling"),
		BaseURL:      os.Getenv("BASE_URL"),
		Port:         fallback(os.Getenv("PORT"), "8080"),
		Env:          env,

		JWTSecret: os.Getenv("JWT_SECRET"),
		JWTTTL:    time.Duration(intOr(os.Getenv("JWT_TTL_MINUTES"), 7*24*60)) * time.Minute,

		NationalIDScope:  scope,
		AllowAdminSignup: boolOr(os.Getenv("ALLOW_ADMIN_SIGNUP"), false),

		SendGridAPIKey: os.Getenv("SENDGRID_API_KEY"),
		EmailFrom:      fallback(os.Getenv("EMAIL_FROM"), "no-reply@efiling.local"),
		EmailFromName:  fallback(os.Getenv("EMAIL_FROM_NAME"), "Court E-Filing"),
		FrontendURL:    strings.TrimRight(os.Getenv("FRONTEND_URL"), "/"),

		DocumentStore:      strings.ToLower(os.Getenv("DOCUMENT_STORE")),
		CloudinaryURL:      os.Getenv("CLOUDINARY_URL"),
		CloudinaryFolder:   fallback(os.Getenv("CLOUDINARY_FOLDER"), "efiling"),
		S3Bucket:           os.Getenv("S3_BUCKET"),
		S3Region:           fallback(os.Getenv("S3_REGION"), "us-east-1"),
		S3Endpoint:         os.Getenv("S3_ENDPOINT"),
		AWSAccessKeyID:     os.Getenv("AWS_ACCESS_KEY_ID"),
		AWSSecretAccessKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
	}
}

func fallback(value, def string) string {
	if strings.TrimSpace(value) == "" {
		return def
	}
	return strings.TrimSpace(value)
}

func intOr(value string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || n <= 0 {
		return def
	}
	return n
}

func boolOr(value string, def bool) bool {
	b, err := strconv.ParseBool(strings.TrimSpace(value))
	if err != nil {
		return def
	}
	return b
}
