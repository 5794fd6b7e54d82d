package config

import (
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Gemini   GeminiConfig
	Auth     AuthConfig
	Redis    RedisConfig
	Qdrant   QdrantConfig
	Storage  StorageConfig
	Worker   WorkerConfig
}

type ServerConfig struct {
	Port        string `envconfig:"PORT" default:"5000"`
	Env         string `envconfig:"ENV" default:"development"`
	FrontendURL string `envconfig:"FRONTEND_URL" default:"http://localhost:5173"`
	BodyLimit   int    `envconfig:"BODY_LIMIT" default:"10485760"`
}

type DatabaseConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" default:"postgres"`
	Password string `envconfig:"DB_PASSWORD" default:"postgres"`
	DBName   string `envconfig:"DB_NAME" default:"interview_coach"`
}

type GeminiConfig struct {
	APIKey          string `envconfig:"GEMINI_API_KEY" required:"true"`
	Model           string `envconfig:"GEMINI_MODEL" default:"gemini-2.0-flash"`
	EmbedModel      string `envconfig:"GEMINI_EMBED_MODEL" default:"text-embedding-004"`
	MaxOutputTokens int32  `envconfig:"GEMINI_MAX_OUTPUT_TOKENS" default:"4096"`
}

// Bearer tokens are HS256 JWTs signed with Secret.
type AuthConfig struct {
	Secret string `envconfig:"AUTH_JWT_SECRET" required:"true"`
	Issuer string `envconfig:"AUTH_JWT_ISSUER" default:""`
}

// An empty Addr disables the profile cache.
type RedisConfig struct {
	Addr       string        `envconfig:"REDIS_ADDR" default:""`
	Password   string        `envconfig:"REDIS_PASSWORD" default:""`
	DB         int           `envconfig:"REDIS_DB" default:"0"`
	ProfileTTL time.Duration `envconfig:"REDIS_PROFILE_TTL" default:"10m"`
}

// An empty URL disables the question bank.
type QdrantConfig struct {
	URL        string `envconfig:"QDRANT_URL" default:""`
	APIKey     string `envconfig:"QDRANT_API_KEY" default:""`
	Collection string `envconfig:"QDRANT_COLLECTION" default:"interview_questions"`
}

type StorageConfig struct {
	UploadPath  string `envconfig:"UPLOAD_PATH" default:"./uploads"`
	MaxFileSize int64  `envconfig:"MAX_FILE_SIZE" default:"5242880"`
}

type WorkerConfig struct {
	Concurrency int `envconfig:"WORKER_CONCURRENCY" default:"2"`
	QueueSize   int `envconfig:"WORKER_QUEUE_SIZE" default:"100"`
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found. Using environment and default values.")
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	return &cfg, nil
}

func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.DBName,
	)
}

func (c *Config) IsDevelopment() bool {
	return c.Server.Env == "development"
}
