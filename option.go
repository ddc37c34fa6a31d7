package notice_sdk

import (
	"time"

	"github.com/cydxin/notice-sdk/service"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

type Config struct {
	DB  *gorm.DB
	RDB *redis.Client

	// DatetimeFormat 全局时间格式，渲染和解析都用它
	DatetimeFormat string

	// Resolver 宿主实现的授权插件，决定接收者能看到哪些类型的公告。
	// 不配置时客户端公告接口一律报错（宁可不服务，不能错放）。
	Resolver service.AllowedTypesResolver

	// TokenTTL Redis token 有效期（只在用内置 token 鉴权时生效）
	TokenTTL time.Duration

	// DisableMigrate 宿主自己管理表结构时关掉自动迁移
	DisableMigrate bool
}

type Option func(*Config)

func WithDB(db *gorm.DB) Option {
	return func(c *Config) {
		c.DB = db
	}
}

func WithRDB(rdb *redis.Client) Option {
	return func(c *Config) {
		c.RDB = rdb
	}
}

func WithDatetimeFormat(layout string) Option {
	return func(c *Config) {
		c.DatetimeFormat = layout
	}
}

// WithAllowedTypesResolver 配置授权插件。
func WithAllowedTypesResolver(r service.AllowedTypesResolver) Option {
	return func(c *Config) {
		c.Resolver = r
	}
}

func WithTokenTTL(ttl time.Duration) Option {
	return func(c *Config) {
		c.TokenTTL = ttl
	}
}

func WithDisableMigrate() Option {
	return func(c *Config) {
		c.DisableMigrate = true
	}
}
