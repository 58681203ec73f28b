package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	yaml "gopkg.in/yaml.v3"
)

// Config 保存进程级配置（仅使用配置文件或内置默认值）。
// 字段提供开发友好的默认值；生产环境请在 config.yaml 中覆盖。
// 注意：安全响应头不在配置范围内，其取值为编译期常量（见 middlewares.SecurityHeaders）。
type Config struct {
	Env      string
	HTTPAddr string
	Service  ServiceConfig
	MySQL    MySQLConfig
	Redis    RedisConfig
	Limits   LimitConfig
	Audit    AuditConfig
}

// ServiceConfig 描述对外公开的服务元信息（根端点返回）。
type ServiceConfig struct {
	Name    string
	Version string
}

type MySQLConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	Params   string
}

func (m MySQLConfig) DSN() string {
	port := m.Port
	if port == 0 {
		port = 3306
	}
	host := m.Host
	if host == "" {
		host = "127.0.0.1"
	}
	db := m.DBName
	if db == "" {
		db = "securecalc"
	}
	params := m.Params
	if params == "" {
		params = "parseTime=true&loc=Local&charset=utf8mb4,utf8"
	}
	// 注意：Password 可能为空（本地无密码开发），生产强烈建议设置强密码
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?%s", m.User, m.Password, host, port, db, params)
}

func (m MySQLConfig) DSNMasked() string {
	masked := m
	if masked.Password != "" {
		masked.Password = "******"
	}
	return masked.DSN()
}

type RedisConfig struct {
	// 是否启用 Redis（仅限流中间件使用；关闭后 /add 不做限流）
	Enable   bool
	Addr     string
	DB       int
	Password string
}

// LimitConfig 控制 /add 的固定窗口限流（按客户端 IP）。
type LimitConfig struct {
	AddPerMinute int
	// 时间窗口（默认 1m）
	Window time.Duration
}

// AuditConfig 控制计算审计流水（写入 MySQL，默认关闭）。
type AuditConfig struct {
	Enable bool
}

// Load 生成配置：先使用内置默认值，再用同目录的配置文件（config.yaml/yml/json）覆盖。
// 默认不连接任何外部存储；MySQL/Redis 仅在显式启用对应功能后才会被使用。
func Load() Config {
	// 1) 默认值（本地开发可直接运行，零外部依赖）
	cfg := Config{
		Env:      "dev",
		HTTPAddr: ":8000",
		Service:  ServiceConfig{Name: "securecalc", Version: "0.1.0"},
		MySQL:    MySQLConfig{Host: "127.0.0.1", Port: 3306, User: "root", Password: "123456", DBName: "securecalc", Params: "parseTime=true&loc=Local&charset=utf8mb4,utf8"},
		Redis:    RedisConfig{Enable: false, Addr: "127.0.0.1:6379", DB: 0, Password: ""},
		Limits:   LimitConfig{AddPerMinute: 60, Window: time.Minute},
		Audit:    AuditConfig{Enable: false},
	}

	// 2) 配置文件覆盖（若存在）
	if path := FirstExisting("config.yaml", "config.yml", "config.json"); path != "" {
		_ = loadFromFile(path, &cfg)
	}
	return cfg
}

// 配置文件格式：YAML 或 JSON。仅非零值会覆盖现有字段。
func loadFromFile(path string, cfg *Config) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	ext := strings.ToLower(filepath.Ext(path))
	var fm fileModel
	if ext == ".yaml" || ext == ".yml" {
		if err := yaml.Unmarshal(b, &fm); err != nil {
			return err
		}
	} else if ext == ".json" || ext == "" {
		if err := json.Unmarshal(b, &fm); err != nil {
			return err
		}
	} else {
		return errors.New("unsupported config file format")
	}
	fm.apply(cfg)
	return nil
}

// --- 配置文件模型与合并逻辑 ---

type fileModel struct {
	Env      string       `yaml:"env" json:"env"`
	HTTPAddr string       `yaml:"http_addr" json:"http_addr"`
	Service  *fileService `yaml:"service" json:"service"`
	MySQL    *fileMySQL   `yaml:"mysql" json:"mysql"`
	Redis    *fileRedis   `yaml:"redis" json:"redis"`
	Limits   *fileLimits  `yaml:"limits" json:"limits"`
	Audit    *fileAudit   `yaml:"audit" json:"audit"`
}

type fileService struct {
	Name    string `yaml:"name" json:"name"`
	Version string `yaml:"version" json:"version"`
}
type fileMySQL struct {
	Host     string `yaml:"host" json:"host"`
	Port     int    `yaml:"port" json:"port"`
	User     string `yaml:"user" json:"user"`
	Password string `yaml:"password" json:"password"`
	DBName   string `yaml:"db" json:"db"`
	Params   string `yaml:"params" json:"params"`
}
type fileRedis struct {
	Enable   *bool  `yaml:"enable" json:"enable"`
	Addr     string `yaml:"addr" json:"addr"`
	DB       int    `yaml:"db" json:"db"`
	Password string `yaml:"password" json:"password"`
}
type fileLimits struct {
	AddPerMinute int    `yaml:"add_per_minute" json:"add_per_minute"`
	Window       string `yaml:"window" json:"window"`
}
type fileAudit struct {
	Enable *bool `yaml:"enable" json:"enable"`
}

func (fm *fileModel) apply(cfg *Config) {
	if fm.Env != "" {
		cfg.Env = fm.Env
	}
	if fm.HTTPAddr != "" {
		cfg.HTTPAddr = fm.HTTPAddr
	}
	if fm.Service != nil {
		if fm.Service.Name != "" {
			cfg.Service.Name = fm.Service.Name
		}
		if fm.Service.Version != "" {
			cfg.Service.Version = fm.Service.Version
		}
	}
	if fm.MySQL != nil {
		if fm.MySQL.Host != "" {
			cfg.MySQL.Host = fm.MySQL.Host
		}
		if fm.MySQL.Port != 0 {
			cfg.MySQL.Port = fm.MySQL.Port
		}
		if fm.MySQL.User != "" {
			cfg.MySQL.User = fm.MySQL.User
		}
		if fm.MySQL.Password != "" {
			cfg.MySQL.Password = fm.MySQL.Password
		}
		if fm.MySQL.DBName != "" {
			cfg.MySQL.DBName = fm.MySQL.DBName
		}
		if fm.MySQL.Params != "" {
			cfg.MySQL.Params = fm.MySQL.Params
		}
	}
	if fm.Redis != nil {
		if fm.Redis.Enable != nil {
			cfg.Redis.Enable = *fm.Redis.Enable
		}
		if fm.Redis.Addr != "" {
			cfg.Redis.Addr = fm.Redis.Addr
		}
		if fm.Redis.DB != 0 {
			cfg.Redis.DB = fm.Redis.DB
		}
		if fm.Redis.Password != "" {
			cfg.Redis.Password = fm.Redis.Password
		}
	}
	if fm.Limits != nil {
		if fm.Limits.AddPerMinute != 0 {
			cfg.Limits.AddPerMinute = fm.Limits.AddPerMinute
		}
		if fm.Limits.Window != "" {
			if d, err := time.ParseDuration(fm.Limits.Window); err == nil {
				cfg.Limits.Window = d
			}
		}
	}
	if fm.Audit != nil {
		if fm.Audit.Enable != nil {
			cfg.Audit.Enable = *fm.Audit.Enable
		}
	}
}

// FirstExisting 按顺序返回第一个存在的文件路径；若都不存在则返回空字符串。
// 注意：该函数用于在多路径间进行容错查找，如配置文件位置。
func FirstExisting(paths ...string) string {
	for _, p := range paths {
		if p == "" {
			continue
		}
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}
