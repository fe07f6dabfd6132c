// Package model 定义排位引擎的核心数据模型
package model

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gongwei/gongwei/pkg/errors"
)

// MinutesPerDay 一天的总分钟数
const MinutesPerDay = 1440

// Interval 班次时间区间，以一天内的分钟偏移表示
// EndMin < StartMin 时视为跨午夜班次
type Interval struct {
	StartMin int `json:"start_min"`
	EndMin   int `json:"end_min"`
}

// ParseShift 解析 "HH:MM-HH:MM" 形式的班次文本
func ParseShift(text string) (Interval, error) {
	parts := strings.Split(strings.TrimSpace(text), "-")
	if len(parts) != 2 {
		return Interval{}, errors.ParseError(text, "应为 HH:MM-HH:MM 格式")
	}

	start, err := parseClock(parts[0])
	if err != nil {
		return Interval{}, errors.ParseError(text, err.Error())
	}
	end, err := parseClock(parts[1])
	if err != nil {
		return Interval{}, errors.ParseError(text, err.Error())
	}

	return Interval{StartMin: start, EndMin: end}, nil
}

// parseClock 解析 "HH:MM" 为分钟偏移，"24:00" 归一化为 0
func parseClock(text string) (int, error) {
	fields := strings.Split(strings.TrimSpace(text), ":")
	if len(fields) != 2 {
		return 0, fmt.Errorf("时刻 '%s' 应为 HH:MM 格式", text)
	}
	hour, err := strconv.Atoi(fields[0])
	if err != nil || hour < 0 || hour > 24 {
		return 0, fmt.Errorf("小时 '%s' 超出范围", fields[0])
	}
	minute, err := strconv.Atoi(fields[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("分钟 '%s' 超出范围", fields[1])
	}
	if hour == 24 && minute != 0 {
		return 0, fmt.Errorf("时刻 '%s' 超出范围", text)
	}
	return (hour*60 + minute) % MinutesPerDay, nil
}

// WrapsMidnight 判断区间是否跨午夜
func (iv Interval) WrapsMidnight() bool {
	return iv.EndMin < iv.StartMin
}

// DurationMinutes 返回区间时长（分钟）
func (iv Interval) DurationMinutes() int {
	if iv.WrapsMidnight() {
		return iv.EndMin + MinutesPerDay - iv.StartMin
	}
	return iv.EndMin - iv.StartMin
}

// IsNight 判断区间是否属于夜间班次
// 起点不早于 cutoffStart、终点严格晚于 cutoffEnd、或跨午夜，三者任一成立即视为夜班：
// 只要占用触及夜间窗口，整个微组就按夜间占用者计入工区激活
func (iv Interval) IsNight(cutoffStart, cutoffEnd int) bool {
	if iv.WrapsMidnight() {
		return true
	}
	return iv.StartMin >= cutoffStart || iv.EndMin > cutoffEnd
}

// OverlapsRange 判断班次与 [start, end) 分钟区间是否相交，支持跨午夜班次
func (iv Interval) OverlapsRange(start, end int) bool {
	if !iv.WrapsMidnight() {
		return iv.StartMin < end && start < iv.EndMin
	}
	// 跨午夜班次覆盖 [StartMin,1440) ∪ [0,EndMin)
	return iv.StartMin < end || start < iv.EndMin
}

// String 返回 "HH:MM-HH:MM" 形式的文本
func (iv Interval) String() string {
	return fmt.Sprintf("%s-%s", formatClock(iv.StartMin), formatClock(iv.EndMin))
}

// formatClock 将分钟偏移格式化为 "HH:MM"
func formatClock(minute int) string {
	minute %= MinutesPerDay
	return fmt.Sprintf("%02d:%02d", minute/60, minute%60)
}
