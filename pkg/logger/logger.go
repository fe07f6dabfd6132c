// Package logger 提供统一的日志框架
package logger

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

var (
	once   sync.Once
	logger zerolog.Logger
)

// Level 日志级别
type Level = zerolog.Level

const (
	DebugLevel = zerolog.DebugLevel
	InfoLevel  = zerolog.InfoLevel
	WarnLevel  = zerolog.WarnLevel
	ErrorLevel = zerolog.ErrorLevel
	FatalLevel = zerolog.FatalLevel
)

// Config 日志配置
type Config struct {
	Level      string `yaml:"level" json:"level"`
	Format     string `yaml:"format" json:"format"` // json/console
	Output     string `yaml:"output" json:"output"` // stdout/stderr
	TimeFormat string `yaml:"time_format,omitempty" json:"time_format,omitempty"`
}

// DefaultConfig 返回默认配置
func DefaultConfig() Config {
	return Config{
		Level:      "info",
		Format:     "console",
		Output:     "stdout",
		TimeFormat: time.RFC3339,
	}
}

// Init 初始化日志器
func Init(cfg Config) {
	once.Do(func() {
		zerolog.SetGlobalLevel(parseLevel(cfg.Level))

		var output io.Writer
		if cfg.Output == "stderr" {
			output = os.Stderr
		} else {
			output = os.Stdout
		}

		if cfg.Format == "console" {
			output = zerolog.ConsoleWriter{
				Out:        output,
				TimeFormat: cfg.TimeFormat,
			}
		}

		logger = zerolog.New(output).With().Timestamp().Logger()
	})
}

// parseLevel 解析日志级别
func parseLevel(level string) zerolog.Level {
	switch level {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "fatal":
		return zerolog.FatalLevel
	default:
		return zerolog.InfoLevel
	}
}

// Get 获取日志器
func Get() *zerolog.Logger {
	if logger.GetLevel() == zerolog.Disabled {
		Init(DefaultConfig())
	}
	return &logger
}

// Debug 记录调试日志
func Debug() *zerolog.Event {
	return Get().Debug()
}

// Info 记录信息日志
func Info() *zerolog.Event {
	return Get().Info()
}

// Warn 记录警告日志
func Warn() *zerolog.Event {
	return Get().Warn()
}

// Error 记录错误日志
func Error() *zerolog.Event {
	return Get().Error()
}

// Fatal 记录致命错误日志
func Fatal() *zerolog.Event {
	return Get().Fatal()
}

// WithError 添加错误信息
func WithError(err error) *zerolog.Event {
	return Get().Error().Err(err)
}

// PlannerLogger 排位引擎专用日志器
type PlannerLogger struct {
	base *zerolog.Logger
}

// NewPlannerLogger 创建排位引擎日志器
func NewPlannerLogger() *PlannerLogger {
	l := Get().With().Str("component", "planner").Logger()
	return &PlannerLogger{base: &l}
}

// StartPlan 记录排位开始
func (l *PlannerLogger) StartPlan(planID string, subteams, bays int) {
	l.base.Info().
		Str("plan_id", planID).
		Int("subteams", subteams).
		Int("bays", bays).
		Msg("开始生成周排位")
}

// SplitSummary 记录拆组结果
func (l *PlannerLogger) SplitSummary(subteams, micros int) {
	l.base.Debug().
		Int("subteams", subteams).
		Int("micros", micros).
		Msg("拆组完成")
}

// ModelBuilt 记录模型规模
func (l *PlannerLogger) ModelBuilt(vars, constraints int) {
	l.base.Debug().
		Int("variables", vars).
		Int("constraints", constraints).
		Msg("约束模型构建完成")
}

// Infeasible 记录无可行解
func (l *PlannerLogger) Infeasible(planID string) {
	l.base.Warn().
		Str("plan_id", planID).
		Msg("硬性到场约束下无可行解")
}

// PlanComplete 记录排位完成
func (l *PlannerLogger) PlanComplete(planID string, duration time.Duration, objective float64) {
	l.base.Info().
		Str("plan_id", planID).
		Dur("duration", duration).
		Float64("objective", objective).
		Msg("周排位生成完成")
}
