package config

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server ServerConfig
	Redis  RedisConfig
	LLM    LLMConfig
	Quiz   QuizConfig
	Auth   AuthConfig
	DB     DBConfig
	Logger LoggerConfig
}

type ServerConfig struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type RedisConfig struct {
	Address  string `yaml:"address"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// LLMConfig selects and configures the inference gateway provider.
type LLMConfig struct {
	Provider  string `yaml:"provider"` // "ollama" or "openai"
	ServerURL string `yaml:"server_url"`
	Model     string `yaml:"model"`
	APIKey    string `yaml:"api_key"`
	Timeout   time.Duration
}

type QuizConfig struct {
	BatchSize  int           `yaml:"batch_size"`
	SessionTTL time.Duration `yaml:"session_ttl"`
}

type AuthConfig struct {
	Secret   string        `yaml:"secret"`
	TokenTTL time.Duration `yaml:"token_ttl"`
}

type DBConfig struct {
	Path string `yaml:"path"`
}

type LoggerConfig struct {
	Level string `yaml:"level"`
	Env   string `yaml:"env"`
}

func LoadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	if os.Getenv("ENV") == "test" {
		viper.AddConfigPath("../../config")
		viper.AddConfigPath("../../")
	} else {
		viper.AddConfigPath(".")
		viper.AddConfigPath("./config")
	}

	viper.AutomaticEnv()

	viper.SetDefault("server.port", 8090)
	viper.SetDefault("server.read_timeout", 30)
	viper.SetDefault("server.write_timeout", 30)
	viper.SetDefault("llm.provider", "ollama")
	viper.SetDefault("llm.timeout", 60)
	viper.SetDefault("quiz.batch_size", 5)
	viper.SetDefault("quiz.session_ttl", 24*60*60)
	viper.SetDefault("auth.token_ttl", 24*60*60)
	viper.SetDefault("db.path", "quizwhiz.db")
	viper.SetDefault("logger.level", "info")
	viper.SetDefault("logger.env", "development")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// No config file is fine; defaults plus env cover everything.
	}

	config := &Config{
		Server: ServerConfig{
			Port:         viper.GetInt("server.port"),
			ReadTimeout:  viper.GetDuration("server.read_timeout") * time.Second,
			WriteTimeout: viper.GetDuration("server.write_timeout") * time.Second,
		},
		Redis: RedisConfig{
			Address:  viper.GetString("redis.address"),
			Password: viper.GetString("redis.password"),
			DB:       viper.GetInt("redis.db"),
		},
		LLM: LLMConfig{
			Provider:  viper.GetString("llm.provider"),
			ServerURL: viper.GetString("llm.server_url"),
			Model:     viper.GetString("llm.model"),
			APIKey:    viper.GetString("llm.api_key"),
			Timeout:   viper.GetDuration("llm.timeout") * time.Second,
		},
		Quiz: QuizConfig{
			BatchSize:  viper.GetInt("quiz.batch_size"),
			SessionTTL: viper.GetDuration("quiz.session_ttl") * time.Second,
		},
		Auth: AuthConfig{
			Secret:   viper.GetString("auth.secret"),
			TokenTTL: viper.GetDuration("auth.token_ttl") * time.Second,
		},
		DB: DBConfig{
			Path: viper.GetString("db.path"),
		},
		Logger: LoggerConfig{
			Level: viper.GetString("logger.level"),
			Env:   viper.GetString("logger.env"),
		},
	}

	// Override with environment variables if set
	if addr := os.Getenv("REDIS_ADDRESS"); addr != "" {
		config.Redis.Address = addr
	}
	if password := os.Getenv("REDIS_PASSWORD"); password != "" {
		config.Redis.Password = password
	}
	if server := os.Getenv("LLM_SERVER"); server != "" {
		config.LLM.ServerURL = server
	}
	if provider := os.Getenv("LLM_PROVIDER"); provider != "" {
		config.LLM.Provider = provider
	}
	if model := os.Getenv("LLM_MODEL"); model != "" {
		config.LLM.Model = model
	}
	if apiKey := os.Getenv("OPENAI_API_KEY"); apiKey != "" {
		config.LLM.APIKey = apiKey
	}
	if secret := os.Getenv("AUTH_SECRET"); secret != "" {
		config.Auth.Secret = secret
	}
	if dbPath := os.Getenv("DB_PATH"); dbPath != "" {
		config.DB.Path = dbPath
	}

	if config.Auth.Secret == "" {
		return nil, fmt.Errorf("auth.secret is required (set AUTH_SECRET or auth.secret in config)")
	}

	return config, nil
}
