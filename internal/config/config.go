package config

import (
	"log"
	"os"
	"strconv"

	"gopkg.in/yaml.v2"
)

// Config carries the runtime settings for both the API server and the
// thumbnail worker. Values come from an optional yaml file, overridden by
// environment variables, with defaults suitable for local development.
type Config struct {
	Storage StorageConfig `yaml:"storage"`
	Redis   RedisConfig   `yaml:"redis"`
	API     APIConfig     `yaml:"api"`
	Worker  WorkerConfig  `yaml:"worker"`
}

type StorageConfig struct {
	// Backend selects the blob store implementation: "local" or "s3".
	Backend  string   `yaml:"backend"`
	Path     string   `yaml:"path"`
	Database string   `yaml:"database"`
	S3       S3Config `yaml:"s3"`
}

type S3Config struct {
	Endpoint  string `yaml:"endpoint"`
	Region    string `yaml:"region"`
	Bucket    string `yaml:"bucket"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type APIConfig struct {
	Port string `yaml:"port"`
}

type WorkerConfig struct {
	Concurrency int `yaml:"concurrency"`
}

// LoadConfig reads the config file named by CONFIG_PATH (default
// ./config.yaml), falling back to defaults when the file is absent or
// malformed, then applies environment overrides.
func LoadConfig() *Config {
	configPath := "config.yaml"
	if envPath := os.Getenv("CONFIG_PATH"); envPath != "" {
		configPath = envPath
	}

	config := defaultConfig()

	data, err := os.ReadFile(configPath)
	if err != nil {
		log.Printf("Failed to read config file, using defaults: %v", err)
	} else if err := yaml.Unmarshal(data, config); err != nil {
		log.Printf("Failed to parse config file, using defaults: %v", err)
		config = defaultConfig()
	}

	applyEnv(config)
	return config
}

func defaultConfig() *Config {
	return &Config{
		Storage: StorageConfig{
			Backend:  "local",
			Path:     "/tmp/files_manager",
			Database: "./files_manager.db",
			S3: S3Config{
				Region: "us-east-1",
				Bucket: "files-manager",
			},
		},
		Redis: RedisConfig{
			Addr: "localhost:6379",
		},
		API: APIConfig{
			Port: "5000",
		},
		Worker: WorkerConfig{
			Concurrency: 4,
		},
	}
}

func applyEnv(config *Config) {
	if port := os.Getenv("PORT"); port != "" {
		config.API.Port = port
	}
	if folder := os.Getenv("FOLDER_PATH"); folder != "" {
		config.Storage.Path = folder
	}
	if dbPath := os.Getenv("DB_PATH"); dbPath != "" {
		config.Storage.Database = dbPath
	}
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		config.Redis.Addr = addr
	}
	if concurrency := os.Getenv("WORKER_CONCURRENCY"); concurrency != "" {
		if n, err := strconv.Atoi(concurrency); err == nil && n > 0 {
			config.Worker.Concurrency = n
		}
	}
}
