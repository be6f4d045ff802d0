package initializers

import (
	"os"
	"strings"
)

// Config holds the settings read from the environment.
type Config struct {
	// DBDriver selects the gorm dialector: "postgres" (default) or "sqlite".
	DBDriver   string
	DSN        string
	SQLitePath string

	Port     string
	LogLevel string
	GinMode  string

	ElasticsearchURL string

	S3 S3Config
}

// S3Config describes the S3-compatible bucket used to archive uploaded notes.
type S3Config struct {
	Region    string
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	PublicURL string
}

// Enabled reports whether every setting needed to talk to the bucket is present.
func (c S3Config) Enabled() bool {
	return c.Region != "" && c.Endpoint != "" && c.AccessKey != "" && c.SecretKey != "" && c.Bucket != ""
}

// LoadConfig reads Config from the process environment.
func LoadConfig() Config {
	return Config{
		DBDriver:   strings.ToLower(getenv("DB_DRIVER", "postgres")),
		DSN:        os.Getenv("DIRECT_URL"),
		SQLitePath: getenv("SQLITE_PATH", "data/actionscribe.db"),

		Port:     getenv("PORT", "8080"),
		LogLevel: getenv("LOG_LEVEL", "info"),
		GinMode:  os.Getenv("GIN_MODE"),

		ElasticsearchURL: os.Getenv("ELASTICSEARCH_URL"),

		S3: S3Config{
			Region:    os.Getenv("SUPABASE_REGION"),
			Endpoint:  os.Getenv("SUPABASE_S3_ENDPOINT"),
			AccessKey: os.Getenv("SUPABASE_ACCESS_KEY"),
			SecretKey: os.Getenv("SUPABASE_SECRET_KEY"),
			Bucket:    os.Getenv("SUPABASE_BUCKET"),
			PublicURL: os.Getenv("SUPABASE_S3_URL"),
		},
	}
}

func getenv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
