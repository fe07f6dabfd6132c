// Package stats 提供排位结果的统计分析
package stats

import (
	"github.com/gongwei/gongwei/pkg/model"
)

// UtilizationMetrics 周排位的利用率指标
type UtilizationMetrics struct {
	// BayUtilization 各工区的周平均座位利用率（0-1）
	BayUtilization map[string]float64 `json:"bay_utilization"`
	// SplitRate 出现拆组的 (微组,工作日) 占全部到场组合的比例
	SplitRate float64 `json:"split_rate"`
	// RemoteRate 远程天数占全部 (微组,工作日) 组合的比例
	RemoteRate float64 `json:"remote_rate"`
	// AvgDaysPresent 微组平均每周到场天数
	AvgDaysPresent float64 `json:"avg_days_present"`
	// NightBayDays 夜间激活的 (工区,工作日) 数
	NightBayDays int `json:"night_bay_days"`
	// BorrowEvents 跨团队借用工区的次数
	BorrowEvents int `json:"borrow_events"`
}

// UtilizationAnalyzer 利用率分析器
type UtilizationAnalyzer struct{}

// NewUtilizationAnalyzer 创建利用率分析器
func NewUtilizationAnalyzer() *UtilizationAnalyzer {
	return &UtilizationAnalyzer{}
}

// Analyze 统计一份已求解方案的利用率指标
func (a *UtilizationAnalyzer) Analyze(plan *model.Plan, bays []model.Bay) *UtilizationMetrics {
	metrics := &UtilizationMetrics{
		BayUtilization: make(map[string]float64, len(bays)),
		NightBayDays:   plan.Diagnostics.NightBays,
		BorrowEvents:   plan.Diagnostics.BorrowEvents,
	}

	// 各工区每天的已用座位
	used := make(map[string]int, len(bays))
	presentDays := 0
	splitDays := 0
	totalCombos := 0

	for _, mp := range plan.Micros {
		for d := 0; d < model.DaysPerWeek; d++ {
			totalCombos++
			if mp.Days[d].Remote {
				continue
			}
			presentDays++
			if mp.Days[d].Split {
				splitDays++
			}
			for _, bs := range mp.Days[d].Bays {
				used[bs.Team+"/"+bs.BayID] += bs.Seats
			}
		}
	}

	for _, b := range bays {
		if b.Capacity <= 0 {
			continue
		}
		// 周平均：已用座位天数 / (容量 × 工作日数)
		metrics.BayUtilization[b.Key()] = float64(used[b.Key()]) / float64(b.Capacity*model.DaysPerWeek)
	}

	if presentDays > 0 {
		metrics.SplitRate = float64(splitDays) / float64(presentDays)
	}
	if totalCombos > 0 {
		metrics.RemoteRate = float64(totalCombos-presentDays) / float64(totalCombos)
	}
	if len(plan.Micros) > 0 {
		metrics.AvgDaysPresent = float64(presentDays) / float64(len(plan.Micros))
	}

	return metrics
}
