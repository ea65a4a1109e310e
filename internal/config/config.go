package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

const DefaultConfigPath = "configs/config_local.toml"

type MainConfig struct {
	AppName                string `toml:"appName"`
	Version                string `toml:"version"`
	Host                   string `toml:"host"`
	Port                   int    `toml:"port"`
	TLS                    bool   `toml:"tls"`
	CertFile               string `toml:"certFile"`
	KeyFile                string `toml:"keyFile"`
	ShutdownTimeoutSeconds int    `toml:"shutdownTimeoutSeconds"`
}

type LogConfig struct {
	LogPath    string `toml:"logPath"`
	Level      string `toml:"level"`
	MaxSizeMB  int    `toml:"maxSizeMB"`
	MaxBackups int    `toml:"maxBackups"`
	MaxAgeDays int    `toml:"maxAgeDays"`
}

type CorsConfig struct {
	AllowOrigins []string `toml:"allowOrigins"`
}

// GeneratorConfig 文本生成模型配置
type GeneratorConfig struct {
	Provider        string  `toml:"provider"` // openai / ark / echo
	APIKey          string  `toml:"apiKey"`
	AccessKey       string  `toml:"accessKey"`
	SecretKey       string  `toml:"secretKey"`
	BaseURL         string  `toml:"baseURL"`
	Region          string  `toml:"region"`
	Model           string  `toml:"model"`
	Temperature     float32 `toml:"temperature"`
	TimeoutSeconds  int     `toml:"timeoutSeconds"`
	RetryTimes      int     `toml:"retryTimes"`
	ByAzure         bool    `toml:"byAzure"`
	AzureAPIVersion string  `toml:"azureApiVersion"`
}

type RedisConfig struct {
	Host         string `toml:"host"`
	Port         int    `toml:"port"`
	Password     string `toml:"password"`
	DB           int    `toml:"db"`
	PoolSize     int    `toml:"poolSize"`
	MinIdleConns int    `toml:"minIdleConns"`
}

type CacheConfig struct {
	Enabled    bool `toml:"enabled"`
	TTLSeconds int  `toml:"ttlSeconds"`
}

type MetricsConfig struct {
	Enabled   bool   `toml:"enabled"`
	Namespace string `toml:"namespace"`
}

type Config struct {
	MainConfig      `toml:"mainConfig"`
	LogConfig       `toml:"logConfig"`
	CorsConfig      `toml:"corsConfig"`
	GeneratorConfig `toml:"generatorConfig"`
	RedisConfig     `toml:"redisConfig"`
	CacheConfig     `toml:"cacheConfig"`
	MetricsConfig   `toml:"metricsConfig"`
}

// Default 返回未加载任何文件时的配置
func Default() *Config {
	return &Config{
		MainConfig: MainConfig{
			AppName:                "Text Prediction API",
			Version:                "1.0",
			Host:                   "0.0.0.0",
			Port:                   8000,
			ShutdownTimeoutSeconds: 10,
		},
		LogConfig: LogConfig{
			Level: "info",
		},
		CorsConfig: CorsConfig{
			AllowOrigins: []string{"http://localhost:3000", "http://127.0.0.1:3000"},
		},
		GeneratorConfig: GeneratorConfig{
			Provider:       "echo",
			TimeoutSeconds: 120,
		},
		CacheConfig: CacheConfig{
			TTLSeconds: 300,
		},
		MetricsConfig: MetricsConfig{
			Enabled:   true,
			Namespace: "textpredict",
		},
	}
}

// Override 在文件解析之后、校验之前修改配置，如命令行参数
type Override func(*Config)

// Load 从 TOML 文件加载配置，文件中未出现的字段保留默认值。
// 文件不存在时使用默认配置。overrides 依次应用后统一校验。
func Load(path string, overrides ...Override) (*Config, error) {
	conf := Default()
	if path == "" {
		path = DefaultConfigPath
	}
	if _, err := toml.DecodeFile(path, conf); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("decode config %s: %w", path, err)
	}
	for _, o := range overrides {
		o(conf)
	}
	if err := conf.Validate(); err != nil {
		return nil, err
	}
	return conf, nil
}

// Validate 检查启动必需的配置项
func (c *Config) Validate() error {
	if c.MainConfig.Port <= 0 || c.MainConfig.Port > 65535 {
		return fmt.Errorf("invalid mainConfig.port: %d", c.MainConfig.Port)
	}
	if c.MainConfig.TLS && (c.MainConfig.CertFile == "" || c.MainConfig.KeyFile == "") {
		return fmt.Errorf("mainConfig.tls requires certFile and keyFile")
	}
	if c.CacheConfig.Enabled && c.CacheConfig.TTLSeconds <= 0 {
		return fmt.Errorf("invalid cacheConfig.ttlSeconds: %d", c.CacheConfig.TTLSeconds)
	}
	return nil
}
