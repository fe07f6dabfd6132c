// Package config 提供配置管理
// 配置从环境变量加载，可选地被 YAML 文件覆盖；排位相关配置以不可变值
// 显式传入流水线各阶段，不从全局状态读取
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/gongwei/gongwei/pkg/model"
)

// Config 应用配置
type Config struct {
	App      AppConfig      `yaml:"app"`
	Database DatabaseConfig `yaml:"database"`
	Planner  PlannerConfig  `yaml:"planner"`
	Metrics  MetricsConfig  `yaml:"metrics"`
}

// AppConfig 应用基础配置
type AppConfig struct {
	Name     string `yaml:"name"`
	Env      string `yaml:"env"`
	Port     int    `yaml:"port"`
	LogLevel string `yaml:"log_level"`
}

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	Host            string        `yaml:"host"`
	Port            int           `yaml:"port"`
	Name            string        `yaml:"name"`
	User            string        `yaml:"user"`
	Password        string        `yaml:"password"`
	SSLMode         string        `yaml:"ssl_mode"`
	MaxOpenConns    int           `yaml:"max_open_conns"`
	MaxIdleConns    int           `yaml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime"`
}

// DSN 返回数据库连接字符串
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode,
	)
}

// PlannerConfig 排位引擎配置
type PlannerConfig struct {
	MinDaysRequired  int           `yaml:"min_days_required"`
	SoftMinDays      bool          `yaml:"soft_min_days"`
	SlotMinutes      int           `yaml:"slot_minutes"`
	AllowBorrow      bool          `yaml:"allow_borrow"`
	PriorityMode     string        `yaml:"priority_mode"`      // dominance/normalized_epsilon
	NightCutoffStart int           `yaml:"night_cutoff_start"` // 分钟偏移
	NightCutoffEnd   int           `yaml:"night_cutoff_end"`   // 分钟偏移
	SolverTimeout    time.Duration `yaml:"solver_timeout"`
	SolverNodeBudget int           `yaml:"solver_node_budget"`
}

// PlanOptions 转换为流水线使用的不可变排位选项
func (c *PlannerConfig) PlanOptions() model.PlanOptions {
	return model.PlanOptions{
		MinDaysRequired:  c.MinDaysRequired,
		SoftMinDays:      c.SoftMinDays,
		SlotMinutes:      c.SlotMinutes,
		AllowBorrow:      c.AllowBorrow,
		PriorityMode:     model.PriorityMode(c.PriorityMode),
		NightCutoffStart: c.NightCutoffStart,
		NightCutoffEnd:   c.NightCutoffEnd,
	}
}

// MetricsConfig 监控配置
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// Load 从环境变量加载配置
func Load() (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Name:     getEnv("APP_NAME", "gongwei"),
			Env:      getEnv("APP_ENV", "development"),
			Port:     getEnvInt("APP_PORT", 7021),
			LogLevel: getEnv("APP_LOG_LEVEL", "info"),
		},
		Database: DatabaseConfig{
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnvInt("DB_PORT", 5432),
			Name:            getEnv("DB_NAME", "gongwei"),
			User:            getEnv("DB_USER", "gongwei"),
			Password:        getEnv("DB_PASSWORD", "gongwei123"),
			SSLMode:         getEnv("DB_SSL_MODE", "disable"),
			MaxOpenConns:    getEnvInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getEnvDuration("DB_CONN_MAX_LIFETIME", 5*time.Minute),
		},
		Planner: PlannerConfig{
			MinDaysRequired:  getEnvInt("PLANNER_MIN_DAYS", 3),
			SoftMinDays:      getEnvBool("PLANNER_SOFT_MIN_DAYS", true),
			SlotMinutes:      getEnvInt("PLANNER_SLOT_MINUTES", 60),
			AllowBorrow:      getEnvBool("PLANNER_ALLOW_BORROW", false),
			PriorityMode:     getEnv("PLANNER_PRIORITY_MODE", string(model.PriorityDominance)),
			NightCutoffStart: getEnvInt("PLANNER_NIGHT_CUTOFF_START", 18*60),
			NightCutoffEnd:   getEnvInt("PLANNER_NIGHT_CUTOFF_END", 22*60),
			SolverTimeout:    getEnvDuration("PLANNER_SOLVER_TIMEOUT", 60*time.Second),
			SolverNodeBudget: getEnvInt("PLANNER_SOLVER_NODE_BUDGET", 5_000_000),
		},
		Metrics: MetricsConfig{
			Enabled: getEnvBool("METRICS_ENABLED", true),
			Path:    getEnv("METRICS_PATH", "/metrics"),
		},
	}

	if path := os.Getenv("APP_CONFIG_FILE"); path != "" {
		if err := cfg.overlayFile(path); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// overlayFile 用 YAML 文件中出现的字段覆盖当前配置
func (c *Config) overlayFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("读取配置文件失败: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("解析配置文件失败: %w", err)
	}
	return nil
}

// Validate 校验排位配置的取值范围
func (c *Config) Validate() error {
	p := &c.Planner
	if p.MinDaysRequired < 0 || p.MinDaysRequired > model.DaysPerWeek {
		return fmt.Errorf("min_days_required 取值 %d 超出 [0,%d]", p.MinDaysRequired, model.DaysPerWeek)
	}
	if p.SlotMinutes <= 0 || model.MinutesPerDay%p.SlotMinutes != 0 {
		return fmt.Errorf("slot_minutes 取值 %d 必须为正且整除 %d", p.SlotMinutes, model.MinutesPerDay)
	}
	if p.NightCutoffStart < 0 || p.NightCutoffStart >= model.MinutesPerDay {
		return fmt.Errorf("night_cutoff_start 取值 %d 超出 [0,%d)", p.NightCutoffStart, model.MinutesPerDay)
	}
	if p.NightCutoffEnd < 0 || p.NightCutoffEnd >= model.MinutesPerDay {
		return fmt.Errorf("night_cutoff_end 取值 %d 超出 [0,%d)", p.NightCutoffEnd, model.MinutesPerDay)
	}
	if !model.PriorityMode(p.PriorityMode).Valid() {
		return fmt.Errorf("priority_mode '%s' 未知", p.PriorityMode)
	}
	return nil
}

// IsDevelopment 检查是否为开发环境
func (c *Config) IsDevelopment() bool {
	return c.App.Env == "development"
}

// IsProduction 检查是否为生产环境
func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}

// 辅助函数
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
