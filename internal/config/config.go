package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config 聚合整个服务的配置项。
type Config struct {
	Server    ServerConfig
	Widget    WidgetConfig
	Log       LogConfig
	RateLimit RateLimitConfig
}

// Load 从环境变量加载配置。
func Load() (*Config, error) {
	server, err := loadServerConfig()
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	cfg.Server = server

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ServerConfig 描述 HTTP 服务配置。
type ServerConfig struct {
	Addr string
}

// WidgetConfig 描述聊天面板的行为。
type WidgetConfig struct {
	ReplyDelay     time.Duration `env:"WIDGET_REPLY_DELAY" envDefault:"1s"`
	CatalogPath    string        `env:"WIDGET_CATALOG_PATH"`
	SessionIdleTTL time.Duration `env:"WIDGET_SESSION_IDLE_TTL" envDefault:"30m"`
	SweepInterval  time.Duration `env:"WIDGET_SWEEP_INTERVAL" envDefault:"1m"`
}

// LogConfig 描述日志输出。
type LogConfig struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"console"`
}

// RateLimitConfig 描述每个客户端的请求限速。
type RateLimitConfig struct {
	RPS   float64 `env:"RATE_LIMIT_RPS" envDefault:"10"`
	Burst int     `env:"RATE_LIMIT_BURST" envDefault:"20"`
}

// Enabled 表示是否开启限速。
func (c RateLimitConfig) Enabled() bool {
	return c.RPS > 0
}

func (c *Config) validate() error {
	if c.Widget.ReplyDelay <= 0 {
		return fmt.Errorf("invalid WIDGET_REPLY_DELAY value %q: must be positive", c.Widget.ReplyDelay)
	}
	if c.Widget.SessionIdleTTL <= 0 {
		return fmt.Errorf("invalid WIDGET_SESSION_IDLE_TTL value %q: must be positive", c.Widget.SessionIdleTTL)
	}
	if c.Widget.SweepInterval <= 0 {
		return fmt.Errorf("invalid WIDGET_SWEEP_INTERVAL value %q: must be positive", c.Widget.SweepInterval)
	}
	switch strings.ToLower(c.Log.Format) {
	case "console", "json":
	default:
		return fmt.Errorf("invalid LOG_FORMAT value %q: want console or json", c.Log.Format)
	}
	if c.RateLimit.Enabled() && c.RateLimit.Burst < 1 {
		return fmt.Errorf("invalid RATE_LIMIT_BURST value %d: must be at least 1", c.RateLimit.Burst)
	}
	return nil
}

// loadServerConfig 解析服务器监听地址。
func loadServerConfig() (ServerConfig, error) {
	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = "8080"
	}

	if strings.Contains(port, ":") {
		// 允许用户直接传入 ":8080" 或 "127.0.0.1:8080"。
		return ServerConfig{Addr: port}, nil
	}

	if strings.Contains(port, " ") {
		return ServerConfig{}, fmt.Errorf("invalid PORT value: %q", port)
	}

	return ServerConfig{Addr: ":" + port}, nil
}
