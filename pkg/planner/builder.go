// Package planner 实现周排位问题的构造与求解流水线
package planner

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gongwei/gongwei/pkg/mip"
	"github.com/gongwei/gongwei/pkg/model"
)

// Instance 一次求解的完整问题实例：模型本体加变量索引
// 所有变量与约束每次构建都全新生成，不跨求解复用
type Instance struct {
	Model   *mip.Model
	Micros  []model.MicroTeam
	Bays    []model.Bay
	Options model.PlanOptions

	// Night[i] 微组 i 的班次是否按夜间占用分类
	Night []bool
	// EligibleBays[i] 微组 i 可落位的工区索引（默认仅本队工区，开启借用后为全部工区）
	EligibleBays [][]int

	// 变量索引，-1 表示该组合不存在变量
	Present     [][]int   // [i][d] 当天是否到场
	Seats       [][][]int // [i][d][b] 落在工区 b 的座位数
	Uses        [][][]int // [i][d][b] 是否占用工区 b
	SplitFlags  [][]int   // [i][d] 当天是否占用多个工区
	NightActive [][]int   // [b][d] 工区当天是否被夜间占用激活
	Missed      []int     // [i] 低于最少到场天数的缺口（软约束松弛量）

	// Borrowed 跨团队占用对应的 uses 变量索引
	Borrowed []int
}

// Build 生成决策变量与全部约束族
// 约束族与变量域即为模型的完整契约，不存在其他隐含限制
func Build(micros []model.MicroTeam, bays []model.Bay, slots []TimeSlot, opts model.PlanOptions) (*Instance, error) {
	const days = model.DaysPerWeek

	inst := &Instance{
		Model:   mip.NewModel(),
		Micros:  micros,
		Bays:    bays,
		Options: opts,
	}
	m := inst.Model

	inst.Night = make([]bool, len(micros))
	for i, micro := range micros {
		inst.Night[i] = micro.Shift.IsNight(opts.NightCutoffStart, opts.NightCutoffEnd)
	}

	inst.EligibleBays = make([][]int, len(micros))
	for i, micro := range micros {
		for b, bay := range bays {
			if bay.Capacity <= 0 {
				continue
			}
			if bay.Team == micro.Team || opts.AllowBorrow {
				inst.EligibleBays[i] = append(inst.EligibleBays[i], b)
			}
		}
	}

	// 到场与缺勤变量：缺勤松弛量上限为最少到场天数，硬模式下固定为 0
	missedUpper := float64(opts.MinDaysRequired)
	if !opts.SoftMinDays {
		missedUpper = 0
	}
	inst.Present = make([][]int, len(micros))
	inst.Missed = make([]int, len(micros))
	for i, micro := range micros {
		inst.Present[i] = make([]int, days)
		for d := 0; d < days; d++ {
			inst.Present[i][d] = m.AddBinary(fmt.Sprintf("present[%s,%d]", micro.Key(), d))
		}
		inst.Missed[i] = m.AddInteger(fmt.Sprintf("missed[%s]", micro.Key()), 0, missedUpper)
	}

	// 占用与座位变量
	inst.Uses = make([][][]int, len(micros))
	inst.Seats = make([][][]int, len(micros))
	for i, micro := range micros {
		inst.Uses[i] = make([][]int, days)
		inst.Seats[i] = make([][]int, days)
		for d := 0; d < days; d++ {
			inst.Uses[i][d] = filledIndex(len(bays))
			inst.Seats[i][d] = filledIndex(len(bays))
			for _, b := range inst.EligibleBays[i] {
				bay := bays[b]
				inst.Uses[i][d][b] = m.AddBinary(fmt.Sprintf("uses[%s,%d,%s]", micro.Key(), d, bay.Key()))
				seatUpper := micro.Size
				if bay.Capacity < seatUpper {
					seatUpper = bay.Capacity
				}
				inst.Seats[i][d][b] = m.AddInteger(fmt.Sprintf("seats[%s,%d,%s]", micro.Key(), d, bay.Key()), 0, float64(seatUpper))
				if bay.Team != micro.Team {
					inst.Borrowed = append(inst.Borrowed, inst.Uses[i][d][b])
				}
			}
		}
	}

	// 拆组标志变量
	inst.SplitFlags = make([][]int, len(micros))
	for i, micro := range micros {
		inst.SplitFlags[i] = make([]int, days)
		for d := 0; d < days; d++ {
			inst.SplitFlags[i][d] = m.AddBinary(fmt.Sprintf("split[%s,%d]", micro.Key(), d))
		}
	}

	// 夜间激活变量
	inst.NightActive = make([][]int, len(bays))
	for b, bay := range bays {
		inst.NightActive[b] = make([]int, days)
		for d := 0; d < days; d++ {
			inst.NightActive[b][d] = m.AddBinary(fmt.Sprintf("night[%s,%d]", bay.Key(), d))
		}
	}

	inst.addMinDays()
	inst.addFullSeating()
	inst.addSplitStructure()
	inst.addLinking()
	inst.addSlotCapacity(slots)
	inst.addNightActivation()

	return inst, nil
}

// filledIndex 返回全部填充 -1 的索引切片
func filledIndex(n int) []int {
	idx := make([]int, n)
	for i := range idx {
		idx[i] = -1
	}
	return idx
}

// addMinDays 最少到场天数：Σ_d present + missed ≥ minDays
// 软模式下 missed 作为可报告的缺口松弛；硬模式下 missed 固定为 0，约束变为硬性
func (inst *Instance) addMinDays() {
	for i, micro := range inst.Micros {
		terms := make([]mip.Term, 0, model.DaysPerWeek+1)
		for d := 0; d < model.DaysPerWeek; d++ {
			terms = append(terms, mip.Term{Var: inst.Present[i][d], Coef: 1})
		}
		terms = append(terms, mip.Term{Var: inst.Missed[i], Coef: 1})
		inst.Model.AddConstraint(fmt.Sprintf("min_days[%s]", micro.Key()),
			terms, mip.GE, float64(inst.Options.MinDaysRequired))
	}
}

// addFullSeating 满员落座：到场的微组必须全员有座，Σ_b seats = size·present
func (inst *Instance) addFullSeating() {
	for i, micro := range inst.Micros {
		for d := 0; d < model.DaysPerWeek; d++ {
			terms := make([]mip.Term, 0, len(inst.EligibleBays[i])+1)
			for _, b := range inst.EligibleBays[i] {
				terms = append(terms, mip.Term{Var: inst.Seats[i][d][b], Coef: 1})
			}
			terms = append(terms, mip.Term{Var: inst.Present[i][d], Coef: -float64(micro.Size)})
			inst.Model.AddConstraint(fmt.Sprintf("full_seating[%s,%d]", micro.Key(), d),
				terms, mip.EQ, 0)
		}
	}
}

// addSplitStructure 拆组结构：Σ_b uses ≤ 1 + (可用工区数−1)·split
// split=0 时当天至多占用一个工区，否则允许受罚的多工区占用
func (inst *Instance) addSplitStructure() {
	for i, micro := range inst.Micros {
		bayCount := len(inst.EligibleBays[i])
		for d := 0; d < model.DaysPerWeek; d++ {
			terms := make([]mip.Term, 0, bayCount+1)
			for _, b := range inst.EligibleBays[i] {
				terms = append(terms, mip.Term{Var: inst.Uses[i][d][b], Coef: 1})
			}
			if bayCount > 1 {
				terms = append(terms, mip.Term{Var: inst.SplitFlags[i][d], Coef: -float64(bayCount - 1)})
			}
			inst.Model.AddConstraint(fmt.Sprintf("split_structure[%s,%d]", micro.Key(), d),
				terms, mip.LE, 1)
		}
	}
}

// addLinking 联动约束：工区只在被标记占用时提供座位，且不超过自身容量
// seats ≤ size·uses 且 seats ≤ capacity·uses
func (inst *Instance) addLinking() {
	for i, micro := range inst.Micros {
		for d := 0; d < model.DaysPerWeek; d++ {
			for _, b := range inst.EligibleBays[i] {
				bay := inst.Bays[b]
				inst.Model.AddConstraint(fmt.Sprintf("link_size[%s,%d,%s]", micro.Key(), d, bay.Key()),
					[]mip.Term{
						{Var: inst.Seats[i][d][b], Coef: 1},
						{Var: inst.Uses[i][d][b], Coef: -float64(micro.Size)},
					}, mip.LE, 0)
				inst.Model.AddConstraint(fmt.Sprintf("link_cap[%s,%d,%s]", micro.Key(), d, bay.Key()),
					[]mip.Term{
						{Var: inst.Seats[i][d][b], Coef: 1},
						{Var: inst.Uses[i][d][b], Coef: -float64(bay.Capacity)},
					}, mip.LE, 0)
			}
		}
	}
}

// addSlotCapacity 时间槽容量：每个与至少一个微组班次相交的时间槽上，
// 同时在场微组的座位之和不得超过工区容量。容量在每个重叠时间窗都成立，而非每天只查一次。
// 同一工区内重叠集合相同的相邻槽只生成一行，语义不变
func (inst *Instance) addSlotCapacity(slots []TimeSlot) {
	for b, bay := range inst.Bays {
		// 该工区可被哪些微组占用
		var candidates []int
		for i := range inst.Micros {
			if inst.Uses[i][0][b] >= 0 {
				candidates = append(candidates, i)
			}
		}
		if len(candidates) == 0 {
			continue
		}

		seen := make(map[string]bool)
		for _, slot := range slots {
			var overlapping []int
			for _, i := range candidates {
				if SlotOverlaps(slot, inst.Micros[i].Shift) {
					overlapping = append(overlapping, i)
				}
			}
			if len(overlapping) == 0 {
				continue
			}
			sig := overlapSignature(overlapping)
			if seen[sig] {
				continue
			}
			seen[sig] = true

			for d := 0; d < model.DaysPerWeek; d++ {
				terms := make([]mip.Term, 0, len(overlapping))
				for _, i := range overlapping {
					terms = append(terms, mip.Term{Var: inst.Seats[i][d][b], Coef: 1})
				}
				inst.Model.AddConstraint(
					fmt.Sprintf("slot_cap[%s,%d,slot%d]", bay.Key(), d, slot.Index),
					terms, mip.LE, float64(bay.Capacity))
			}
		}
	}
}

// overlapSignature 重叠微组集合的去重签名
func overlapSignature(micros []int) string {
	parts := make([]string, len(micros))
	for k, i := range micros {
		parts[k] = strconv.Itoa(i)
	}
	return strings.Join(parts, ",")
}

// addNightActivation 夜间激活：夜间微组占用的工区当天即被激活
// nightActive ≥ uses，同一工区同一天多组夜间占用只激活一次
func (inst *Instance) addNightActivation() {
	for i, micro := range inst.Micros {
		if !inst.Night[i] {
			continue
		}
		for d := 0; d < model.DaysPerWeek; d++ {
			for _, b := range inst.EligibleBays[i] {
				inst.Model.AddConstraint(
					fmt.Sprintf("night_activation[%s,%d,%s]", micro.Key(), d, inst.Bays[b].Key()),
					[]mip.Term{
						{Var: inst.Uses[i][d][b], Coef: 1},
						{Var: inst.NightActive[b][d], Coef: -1},
					}, mip.LE, 0)
			}
		}
	}
}

// Stats 返回实例规模统计，供权重计算使用
func (inst *Instance) Stats() InstanceStats {
	return InstanceStats{
		MicroCount:      len(inst.Micros),
		BayCount:        len(inst.Bays),
		Days:            model.DaysPerWeek,
		MinDaysRequired: inst.Options.MinDaysRequired,
		AllowBorrow:     inst.Options.AllowBorrow,
	}
}

// ApplyObjective 按权重写入线性目标：γ·缺勤 + α·拆组 + β·夜间激活 + δ·借用
func (inst *Instance) ApplyObjective(w Weights) {
	for i := range inst.Micros {
		inst.Model.SetObjectiveCoef(inst.Missed[i], w.Missed)
		for d := 0; d < model.DaysPerWeek; d++ {
			inst.Model.SetObjectiveCoef(inst.SplitFlags[i][d], w.Splits)
		}
	}
	for b := range inst.Bays {
		for d := 0; d < model.DaysPerWeek; d++ {
			inst.Model.SetObjectiveCoef(inst.NightActive[b][d], w.Nights)
		}
	}
	for _, v := range inst.Borrowed {
		inst.Model.SetObjectiveCoef(v, w.Borrowed)
	}
}
