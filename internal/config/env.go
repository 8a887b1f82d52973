package config

import (
	"github.com/JaimeStill/docmatrix/internal/credits"
	"github.com/JaimeStill/docmatrix/internal/embeddings"
	"github.com/JaimeStill/docmatrix/internal/scans"
	"github.com/JaimeStill/docmatrix/pkg/database"
	"github.com/JaimeStill/docmatrix/pkg/logging"
	"github.com/JaimeStill/docmatrix/pkg/storage"
)

var databaseEnv = &database.Env{
	Host:            "DATABASE_HOST",
	Port:            "DATABASE_PORT",
	Name:            "DATABASE_NAME",
	User:            "DATABASE_USER",
	Password:        "DATABASE_PASSWORD",
	SSLMode:         "DATABASE_SSL_MODE",
	MaxOpenConns:    "DATABASE_MAX_OPEN_CONNS",
	MaxIdleConns:    "DATABASE_MAX_IDLE_CONNS",
	ConnMaxLifetime: "DATABASE_CONN_MAX_LIFETIME",
	ConnTimeout:     "DATABASE_CONN_TIMEOUT",
}

var loggingEnv = &logging.Env{
	Level:     "LOGGING_LEVEL",
	Format:    "LOGGING_FORMAT",
	AddSource: "LOGGING_ADD_SOURCE",
}

var storageEnv = &storage.Env{
	BasePath:      "STORAGE_BASE_PATH",
	MaxUploadSize: "STORAGE_MAX_UPLOAD_SIZE",
}

var scanEnv = &scans.Env{
	DefaultThreshold:    "SCAN_DEFAULT_THRESHOLD",
	MaxComparisonLength: "SCAN_MAX_COMPARISON_LENGTH",
	Workers:             "SCAN_WORKERS",
}

var embeddingEnv = &embeddings.Env{
	Enabled:     "EMBEDDING_ENABLED",
	BaseURL:     "EMBEDDING_BASE_URL",
	APIKey:      "EMBEDDING_API_KEY",
	Timeout:     "EMBEDDING_TIMEOUT",
	MinInterval: "EMBEDDING_MIN_INTERVAL",
}

var cacheEnv = &embeddings.CacheEnv{
	TTL:           "CACHE_TTL",
	RedisAddr:     "CACHE_REDIS_ADDR",
	RedisPassword: "CACHE_REDIS_PASSWORD",
	RedisDB:       "CACHE_REDIS_DB",
}

var creditsEnv = &credits.Env{
	DailyLimit: "CREDITS_DAILY_LIMIT",
}
