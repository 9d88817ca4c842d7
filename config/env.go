package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// UploadMode selects which uploader backs /api/upload.
type UploadMode string

const (
	UploadModeSimulate UploadMode = "simulate"
	UploadModeYouTube  UploadMode = "youtube"
)

// Env is the process configuration assembled from the environment.
type Env struct {
	Port     string
	LogLevel string

	UploadMode      UploadMode
	CredentialsPath string

	S3Bucket       string
	S3Region       string
	S3Profile      string
	S3Prefix       string
	S3UsePathStyle bool
	S3Endpoint     string

	KafkaBrokers []string
	KafkaTopic   string
	KafkaGroupID string

	OutputDir string
	APIURL    string
}

// Load reads .env (if present) and then the process environment.
func Load() Env {
	// Load environment variables from .env if present (non-fatal if missing)
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv builds an Env from the current process environment only.
func FromEnv() Env {
	mode := UploadMode(strings.ToLower(getEnvOrDefault("UPLOAD_MODE", string(UploadModeSimulate))))
	if mode != UploadModeYouTube {
		mode = UploadModeSimulate
	}

	usePathStyle, _ := strconv.ParseBool(os.Getenv("S3_USE_PATH_STYLE"))

	return Env{
		Port:            getEnvOrDefault("PORT", "8080"),
		LogLevel:        getEnvOrDefault("LOG_LEVEL", "info"),
		UploadMode:      mode,
		CredentialsPath: strings.TrimSpace(os.Getenv("GOOGLE_CREDENTIALS_PATH")),
		S3Bucket:        strings.TrimSpace(os.Getenv("S3_BUCKET")),
		S3Region:        strings.TrimSpace(os.Getenv("S3_REGION")),
		S3Profile:       strings.TrimSpace(os.Getenv("S3_PROFILE")),
		S3Prefix:        strings.Trim(strings.TrimSpace(os.Getenv("S3_PREFIX")), "/"),
		S3UsePathStyle:  usePathStyle,
		S3Endpoint:      strings.TrimSpace(os.Getenv("S3_ENDPOINT")),
		KafkaBrokers:    splitList(getEnvOrDefault("KAFKA_BOOTSTRAP_SERVERS", "localhost:9093")),
		KafkaTopic:      getEnvOrDefault("KAFKA_TOPIC_RENDER_REQUESTS", "render-requests"),
		KafkaGroupID:    getEnvOrDefault("KAFKA_CONSUMER_GROUP_ID", "render-worker-consumer-group"),
		OutputDir:       getEnvOrDefault("OUTPUT_DIR", "output"),
		APIURL:          strings.TrimRight(getEnvOrDefault("API_URL", "http://localhost:8080"), "/"),
	}
}

// Addr returns the listen address for the HTTP server.
func (e Env) Addr() string {
	return ":" + strings.TrimPrefix(e.Port, ":")
}

// getEnvOrDefault returns the value of an environment variable or a default value
func getEnvOrDefault(key, defaultVal string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return defaultVal
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
