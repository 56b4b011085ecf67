package config

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config - настройки API-сервера предложений
type Config struct {
	Env        string           `yaml:"env" env-default:"development"` // environment
	HTTPServer HTTPServerConfig `yaml:"http_server"`
	Database   DatabaseConfig   `yaml:"database"`
	JWT        JWTConfig        `yaml:"jwt"`
	Migrations MigrationsConfig `yaml:"migrations"`
	CORS       CORSConfig       `yaml:"cors"`
}

// WebConfig - настройки фронтенда магазина
type WebConfig struct {
	Env         string           `yaml:"env" env-default:"development"`
	HTTPServer  HTTPServerConfig `yaml:"http_server"`
	API         APIConfig        `yaml:"api"`
	DefaultLang string           `yaml:"default_lang" env-default:"ru"`
}

// HTTPServerConfig структура http сервера
type HTTPServerConfig struct {
	Address     string        `yaml:"address" env-default:"localhost:8080"`
	Timeout     time.Duration `yaml:"timeout" env-default:"4s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
}

// DatabaseConfig структура по работе с БД
type DatabaseConfig struct {
	Host     string `yaml:"host" env-default:"localhost"`
	Port     int    `yaml:"port" env-default:"5432"`
	User     string `yaml:"user" env-required:"true"`
	Password string `yaml:"-" env:"DB_PASSWORD" env-required:"true"`
	Name     string `yaml:"name" env-required:"true"`
}

// JWTConfig настройка admin-токенов. Без секрета изменяющие запросы открыты.
type JWTConfig struct {
	Secret   string `yaml:"-" env:"JWT_SECRET"`
	TokenTTL int    `yaml:"token_ttl" env:"JWT_TOKEN_TTL" env-default:"60"` // минуты
}

type MigrationsConfig struct {
	Path string `yaml:"path" env-default:"./migrations"`
}

type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins" env:"CORS_ALLOWED_ORIGINS" env-default:"http://localhost:3000"`
}

// APIConfig - адрес API предложений, с которым работает фронтенд
type APIConfig struct {
	BaseURL    string        `yaml:"base_url" env:"API_BASE_URL" env-default:"http://localhost:8080"`
	Timeout    time.Duration `yaml:"timeout" env-default:"5s"`
	AdminToken string        `yaml:"-" env:"ADMIN_TOKEN"`
}

// MustLoad - если не загружаем - паникуем
func MustLoad() *Config {
	return MustLoadByPath(mustConfigPath())
}

// MustLoadWeb загружает конфигурацию фронтенда
func MustLoadWeb() *WebConfig {
	return MustLoadWebByPath(mustConfigPath())
}

// LoadJWTFromEnv читает настройки токенов только из окружения, без файла конфигурации
func LoadJWTFromEnv() (*JWTConfig, error) {
	var cfg JWTConfig
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("failed to read jwt env: %w", err)
	}
	return &cfg, nil
}

func mustConfigPath() string {
	configPath := fetchConfigPath()
	if configPath == "" {
		log.Fatal("CONFIG_PATH not exists")
	}
	return configPath
}

// fetchConfigPath берёт путь из флага -config или CONFIG_PATH.
// Флаги самой команды должны быть объявлены до вызова.
func fetchConfigPath() string {
	var path string

	if flag.Lookup("config") == nil {
		flag.StringVar(&path, "config", "", "path to config file")
	}
	if !flag.Parsed() {
		flag.Parse()
	}
	if f := flag.Lookup("config"); f != nil {
		path = f.Value.String()
	}

	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}
	return path
}

func mustRead(configPath string, cfg any) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		panic("config file not found: " + configPath)
	}
	if err := cleanenv.ReadConfig(configPath, cfg); err != nil {
		log.Fatalf("can't read config file %s: %v", configPath, err)
	}
}

func MustLoadByPath(configPath string) *Config {
	var cfg Config
	mustRead(configPath, &cfg)
	return &cfg
}

func MustLoadWebByPath(configPath string) *WebConfig {
	var cfg WebConfig
	mustRead(configPath, &cfg)
	return &cfg
}
