package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/vitrine-next/internal/logger"

	"github.com/spf13/viper"
)

// Config 应用配置结构
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Log       LogConfig       `mapstructure:"log"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Queue     QueueConfig     `mapstructure:"queue"`
	CORS      CORSConfig      `mapstructure:"cors"`
	Session   SessionConfig   `mapstructure:"session"`
	Cart      CartConfig      `mapstructure:"cart"`
	Order     OrderConfig     `mapstructure:"order"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
	Mode string `mapstructure:"mode"` // debug / release
}

// Addr 监听地址
func (c ServerConfig) Addr() string {
	return c.Host + ":" + c.Port
}

// LogConfig 日志配置
type LogConfig struct {
	Dir        string `mapstructure:"dir"`
	Filename   string `mapstructure:"filename"`
	Level      string `mapstructure:"level"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
	Compress   bool   `mapstructure:"compress"`
}

// ToLoggerOptions 转换为 logger 配置
func (c LogConfig) ToLoggerOptions() logger.Options {
	return logger.Options{
		Dir:        c.Dir,
		Filename:   c.Filename,
		Level:      c.Level,
		MaxSizeMB:  c.MaxSizeMB,
		MaxBackups: c.MaxBackups,
		MaxAgeDays: c.MaxAgeDays,
		Compress:   c.Compress,
	}
}

// DatabasePoolConfig 数据库连接池配置
type DatabasePoolConfig struct {
	MaxOpenConns           int `mapstructure:"max_open_conns"`
	MaxIdleConns           int `mapstructure:"max_idle_conns"`
	ConnMaxLifetimeSeconds int `mapstructure:"conn_max_lifetime_seconds"`
	ConnMaxIdleTimeSeconds int `mapstructure:"conn_max_idle_time_seconds"`
}

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	Driver string             `mapstructure:"driver"` // 数据库驱动（sqlite/postgres）
	DSN    string             `mapstructure:"dsn"`    // 数据库连接串
	Pool   DatabasePoolConfig `mapstructure:"pool"`
}

// RedisConfig Redis 配置
type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	Prefix   string `mapstructure:"prefix"`
}

// QueueConfig 异步队列配置
type QueueConfig struct {
	Enabled     bool           `mapstructure:"enabled"`
	Host        string         `mapstructure:"host"`
	Port        int            `mapstructure:"port"`
	Password    string         `mapstructure:"password"`
	DB          int            `mapstructure:"db"`
	Concurrency int            `mapstructure:"concurrency"`
	Queues      map[string]int `mapstructure:"queues"`
}

// CORSConfig 跨域配置
type CORSConfig struct {
	AllowedOrigins   []string `mapstructure:"allowed_origins"`
	AllowedMethods   []string `mapstructure:"allowed_methods"`
	AllowedHeaders   []string `mapstructure:"allowed_headers"`
	AllowCredentials bool     `mapstructure:"allow_credentials"`
	MaxAge           int      `mapstructure:"max_age"`
}

// SessionConfig 匿名会话令牌配置
type SessionConfig struct {
	SecretKey   string `mapstructure:"secret"`
	ExpireHours int    `mapstructure:"expire_hours"`
}

// ExpireDuration 会话有效期
func (c SessionConfig) ExpireDuration() time.Duration {
	if c.ExpireHours <= 0 {
		return 30 * 24 * time.Hour
	}
	return time.Duration(c.ExpireHours) * time.Hour
}

// 购物车快照存储后端
const (
	CartStoreSQL   = "sql"
	CartStoreRedis = "redis"
)

// CartConfig 购物车配置
type CartConfig struct {
	Store            string `mapstructure:"store"`              // sql / redis
	SnapshotTTLHours int    `mapstructure:"snapshot_ttl_hours"` // 仅 redis 生效，0 表示不过期
	OpenOnAdd        bool   `mapstructure:"open_on_add"`        // 加购后是否展开购物车抽屉
	MaxLineQuantity  int    `mapstructure:"max_line_quantity"`  // 单行数量上限，最大 999
}

// SnapshotTTL 快照过期时间
func (c CartConfig) SnapshotTTL() time.Duration {
	if c.SnapshotTTLHours <= 0 {
		return 0
	}
	return time.Duration(c.SnapshotTTLHours) * time.Hour
}

// OrderConfig 订单配置
type OrderConfig struct {
	ConfirmDelaySeconds int    `mapstructure:"confirm_delay_seconds"`
	Currency            string `mapstructure:"currency"`
}

// ConfirmDelay 下单后自动确认的延迟
func (c OrderConfig) ConfirmDelay() time.Duration {
	if c.ConfirmDelaySeconds <= 0 {
		return 0
	}
	return time.Duration(c.ConfirmDelaySeconds) * time.Second
}

// RateLimitRule 单条限流规则，任一值 <= 0 表示不限流
type RateLimitRule struct {
	WindowSeconds int `mapstructure:"window_seconds"`
	MaxRequests   int `mapstructure:"max_requests"`
}

// RateLimitConfig 接口限流配置，依赖 Redis
type RateLimitConfig struct {
	Session  RateLimitRule `mapstructure:"session"`
	Checkout RateLimitRule `mapstructure:"checkout"`
}

// Load 从 config.yml 加载配置
func Load() *Config {
	cfg, err := LoadFrom("")
	if err != nil {
		logger.Errorw("config_unmarshal_failed", "error", err)
		panic(fmt.Errorf("配置解析失败: %w", err))
	}
	return cfg
}

// LoadFrom 从指定文件加载配置，file 为空时按默认路径查找 config.yml
func LoadFrom(file string) (*Config, error) {
	v := viper.New()
	if strings.TrimSpace(file) != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("../")   // 如果从 cmd/server 运行
		v.AddConfigPath("./etc") // etc 文件夹
	}
	setDefaults(v)

	// 环境变量支持，例如 server.port -> SERVER_PORT
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		logger.Warnw("config_file_read_failed",
			"error", err,
			"fallback", "env_or_defaults",
		)
	} else {
		logger.Infow("config_file_loaded", "file", v.ConfigFileUsed())
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	cfg.Cart.Store = normalizeCartStore(cfg.Cart.Store)
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.mode", "debug")
	v.SetDefault("log.dir", "")
	v.SetDefault("log.filename", "vitrine.log")
	v.SetDefault("log.level", "")
	v.SetDefault("log.max_size_mb", 100)
	v.SetDefault("log.max_backups", 7)
	v.SetDefault("log.max_age_days", 30)
	v.SetDefault("log.compress", true)
	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.dsn", "./db/vitrine.db")
	v.SetDefault("database.pool.max_open_conns", 1)
	v.SetDefault("database.pool.max_idle_conns", 1)
	v.SetDefault("database.pool.conn_max_lifetime_seconds", 0)
	v.SetDefault("database.pool.conn_max_idle_time_seconds", 0)
	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.host", "127.0.0.1")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.prefix", "vt")
	v.SetDefault("queue.enabled", false)
	v.SetDefault("queue.host", "127.0.0.1")
	v.SetDefault("queue.port", 6379)
	v.SetDefault("queue.password", "")
	v.SetDefault("queue.db", 1)
	v.SetDefault("queue.concurrency", 10)
	v.SetDefault("queue.queues", map[string]int{
		"default":  10,
		"critical": 5,
	})
	v.SetDefault("cors.allowed_origins", []string{"*"})
	v.SetDefault("cors.allowed_methods", []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"})
	v.SetDefault("cors.allowed_headers", []string{
		"Content-Type",
		"Content-Length",
		"Accept-Encoding",
		"Authorization",
		"Cache-Control",
		"X-Requested-With",
		"X-Request-ID",
	})
	v.SetDefault("cors.allow_credentials", true)
	v.SetDefault("cors.max_age", 600)
	v.SetDefault("session.secret", "session-change-me-in-production")
	v.SetDefault("session.expire_hours", 720)
	v.SetDefault("cart.store", CartStoreSQL)
	v.SetDefault("cart.snapshot_ttl_hours", 720)
	v.SetDefault("cart.open_on_add", true)
	v.SetDefault("cart.max_line_quantity", 99)
	v.SetDefault("order.confirm_delay_seconds", 2)
	v.SetDefault("order.currency", "USD")
	v.SetDefault("rate_limit.session.window_seconds", 60)
	v.SetDefault("rate_limit.session.max_requests", 30)
	v.SetDefault("rate_limit.checkout.window_seconds", 60)
	v.SetDefault("rate_limit.checkout.max_requests", 10)
}

func normalizeCartStore(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case CartStoreRedis:
		return CartStoreRedis
	default:
		return CartStoreSQL
	}
}
