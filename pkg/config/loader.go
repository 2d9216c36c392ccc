package config

import (
	"bytes"
	"errors"
	"log"
	"os"
	"strings"
	"sync"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvInfo collects service names and paths from .env
type EnvInfo struct {
	// image name
	VideoService    string
	ThumbnailWorker string

	// service ports
	VideoServicePort string

	// service yaml path
	VideoServiceYAMLPath    string
	ThumbnailWorkerYAMLPath string

	// service log path
	VideoServiceLogPath    string
	ThumbnailWorkerLogPath string
}

// EnvConfig collects service settings
var (
	EnvConfig = initEnv()
	envConfig EnvInfo
	once      sync.Once
	env       string
)

func initEnv() EnvInfo {
	once.Do(func() {
		path, err := GetPath(".env", 5)
		if err != nil {
			log.Printf("Warning: Could not get .env path: %v", err)
		}

		if err := godotenv.Load(path); err != nil {
			log.Printf("Warning: Could not load .env file: %v", err)
		}

		env = os.Getenv("ENV")

		envConfig = EnvInfo{
			VideoService:    os.Getenv("VIDEO_SERVICE"),
			ThumbnailWorker: os.Getenv("THUMBNAIL_WORKER"),

			VideoServicePort: os.Getenv("VIDEO_SERVICE_PORT"),

			VideoServiceYAMLPath:    os.Getenv("VIDEO_SERVICE_YAML"),
			ThumbnailWorkerYAMLPath: os.Getenv("THUMBNAIL_WORKER_YAML"),

			VideoServiceLogPath:    os.Getenv("VIDEO_SERVICE_LOG"),
			ThumbnailWorkerLogPath: os.Getenv("THUMBNAIL_WORKER_LOG"),
		}
	})

	return envConfig
}

// IsProduction check run env
func IsProduction() bool {
	return env == "production"
}

// IsLocal check run env
func IsLocal() bool {
	return env == "local"
}

// LoadConfig reads <serviceName>.yaml under configPath, expands ${ENV}
// placeholders from the environment, and unmarshals into T.
func LoadConfig[T any](serviceName string, configPath string) T {
	v := viper.New()
	v.SetConfigName(serviceName)
	v.SetConfigType("yaml")
	v.AddConfigPath(configPath)

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		log.Fatalf("Error loading config file: %v", err)
	}

	rawConfig, err := os.ReadFile(v.ConfigFileUsed())
	if err != nil {
		log.Fatalf("Error reading raw config file: %v", err)
	}

	expandedConfig := os.ExpandEnv(string(rawConfig))

	if err := v.ReadConfig(bytes.NewBuffer([]byte(expandedConfig))); err != nil {
		log.Fatalf("Error reading expanded config: %v", err)
	}

	var cfg T
	if err := v.Unmarshal(&cfg); err != nil {
		log.Fatalf("Error unmarshaling config: %v", err)
	}
	return cfg
}

// GetPath use fileName loop maxCount find file path
func GetPath(fileName string, maxCount int) (string, error) {
	path := "./" + fileName

	for i := 0; i < maxCount; i++ {
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
		path = "../" + path
	}
	return "", errors.New(fileName + "can't find path ")
}
