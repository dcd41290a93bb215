package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Responder ResponderConfig
	Triage    TriageConfig
	Resources ResourcesConfig
	Milvus    MilvusConfig
	Redis     RedisConfig
	RateLimit RateLimitConfig
	Logging   LoggingConfig
}

type ServerConfig struct {
	Host         string
	Port         int
	ReadTimeout  int
	WriteTimeout int
	BodyLimit    int
}

type ResponderConfig struct {
	APIKey         string
	Model          string
	EmbeddingModel string
	Temperature    float32
	MaxTokens      int
	TimeoutSec     int
	RetrievalTopK  int
}

type TriageConfig struct {
	// CrisisPhrases is the safety-critical phrase catalog. An empty
	// catalog is a startup error, never a silently disabled detector.
	CrisisPhrases []string
	// ScreeningCrisisItem is the zero-based index of the self-harm
	// screening item; answering at or above ScreeningCrisisLevel on it
	// promotes the assessment to a crisis signal.
	ScreeningCrisisItem  int
	ScreeningCrisisLevel int
}

type ResourcesConfig struct {
	SQLitePath string
	CacheTTL   int
}

type MilvusConfig struct {
	Enabled        bool
	Endpoint       string
	CollectionName string
	VectorDim      int
}

type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     int
	Password string
	DB       int
}

type RateLimitConfig struct {
	MaxRequestsPerMinute int
}

type LoggingConfig struct {
	Level      string
	Format     string
	OutputPath string
}

func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AddConfigPath("/etc/wellnest")

	viper.SetEnvPrefix("WELLNEST")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &config, nil
}

func setDefaults() {
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8000)
	viper.SetDefault("server.readTimeout", 30)
	viper.SetDefault("server.writeTimeout", 30)
	viper.SetDefault("server.bodyLimit", 1048576)

	viper.SetDefault("responder.model", "gpt-4")
	viper.SetDefault("responder.embeddingModel", "text-embedding-3-small")
	viper.SetDefault("responder.temperature", 0.4)
	viper.SetDefault("responder.maxTokens", 1024)
	viper.SetDefault("responder.timeoutSec", 30)
	viper.SetDefault("responder.retrievalTopK", 3)

	viper.SetDefault("triage.crisisPhrases", []string{
		"hurt myself",
		"suicide",
		"kill myself",
		"end it all",
		"not worth living",
	})
	viper.SetDefault("triage.screeningCrisisItem", 8)
	viper.SetDefault("triage.screeningCrisisLevel", 2)

	viper.SetDefault("resources.sqlitePath", "./data/wellnest.db")
	viper.SetDefault("resources.cacheTTL", 300)

	viper.SetDefault("milvus.enabled", false)
	viper.SetDefault("milvus.endpoint", "localhost:19530")
	viper.SetDefault("milvus.collectionName", "wellnest_resources")
	viper.SetDefault("milvus.vectorDim", 1536)

	viper.SetDefault("redis.enabled", false)
	viper.SetDefault("redis.host", "localhost")
	viper.SetDefault("redis.port", 6379)
	viper.SetDefault("redis.db", 0)

	viper.SetDefault("ratelimit.maxRequestsPerMinute", 60)

	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.format", "json")
	viper.SetDefault("logging.outputPath", "stdout")
}
