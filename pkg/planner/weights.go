// Package planner 实现周排位问题的构造与求解流水线
package planner

import (
	"fmt"

	"github.com/gongwei/gongwei/pkg/errors"
	"github.com/gongwei/gongwei/pkg/model"
)

// InstanceStats 实例规模统计，权重上界由此推导
type InstanceStats struct {
	MicroCount      int  `json:"micro_count"`
	BayCount        int  `json:"bay_count"`
	Days            int  `json:"days"`
	MinDaysRequired int  `json:"min_days_required"`
	AllowBorrow     bool `json:"allow_borrow"`
}

// Weights 目标函数权重及各项上界
// 四项摩擦指标的优先级固定为 缺勤 > 拆组 > 夜间激活 > 借用
type Weights struct {
	Mode model.PriorityMode `json:"mode"`

	Missed   float64 `json:"missed"`   // γ
	Splits   float64 `json:"splits"`   // α
	Nights   float64 `json:"nights"`   // β
	Borrowed float64 `json:"borrowed"` // δ

	MMax int `json:"m_max"`
	SMax int `json:"s_max"`
	WMax int `json:"w_max"`
	RMax int `json:"r_max"`
}

// normalizedEpsilon 归一化模式的层间退让量
const normalizedEpsilon = 1e-3

// ComputeWeights 按模式计算目标权重
// 纯函数：相同输入必然产生相同权重
//
// 支配模式通过保守上界放大整数权重，保证高层指标每改进一个单位都压过
// 低层全部指标最坏情况下的总回退，使单次加权求解等价于严格的字典序寻优。
// 上界公式不可低估：低估会在不产生任何可见错误的情况下悄悄破坏支配性
func ComputeWeights(stats InstanceStats, mode model.PriorityMode) (Weights, error) {
	w := Weights{
		Mode: mode,
		MMax: stats.MicroCount * stats.MinDaysRequired,
		SMax: stats.MicroCount * stats.Days,
		WMax: stats.BayCount * stats.Days,
	}
	if stats.AllowBorrow {
		w.RMax = stats.MicroCount * stats.Days * stats.BayCount
	}

	switch mode {
	case model.PriorityDominance:
		// δ=1, β=δ·Rmax+1, α=β·Wmax+δ·Rmax+1, γ=α·Smax+β·Wmax+δ·Rmax+1
		delta := 1.0
		beta := delta*float64(w.RMax) + 1
		alpha := beta*float64(w.WMax) + delta*float64(w.RMax) + 1
		gamma := alpha*float64(w.SMax) + beta*float64(w.WMax) + delta*float64(w.RMax) + 1
		w.Missed, w.Splits, w.Nights, w.Borrowed = gamma, alpha, beta, delta

	case model.PriorityNormalizedEpsilon:
		// 每项除以自身上界后再加权，系数集中在窄数值区间内，
		// 利于求解器条件数；只是对字典序的强偏置近似，不做严格保证
		w.Missed = normalized(1, w.MMax)
		w.Splits = normalized(1-normalizedEpsilon, w.SMax)
		w.Nights = normalized(1-2*normalizedEpsilon, w.WMax)
		w.Borrowed = normalized(1-3*normalizedEpsilon, w.RMax)

	default:
		return Weights{}, errors.InvalidInput("priority_mode", fmt.Sprintf("未知的权重模式 '%s'", mode))
	}

	return w, nil
}

// normalized 返回 coef/bound，上界为 0 时该项不存在，系数置 0
func normalized(coef float64, bound int) float64 {
	if bound <= 0 {
		return 0
	}
	return coef / float64(bound)
}
