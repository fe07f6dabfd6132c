package planner

import (
	"strings"
	"testing"

	"github.com/gongwei/gongwei/pkg/model"
)

func mustSlots(t *testing.T, resolution int) []TimeSlot {
	t.Helper()
	slots, err := BuildSlots(resolution)
	if err != nil {
		t.Fatalf("BuildSlots(%d) 失败: %v", resolution, err)
	}
	return slots
}

func TestBuild_VariableAndConstraintCounts(t *testing.T) {
	shift := model.Interval{StartMin: 9 * 60, EndMin: 17 * 60}
	bays := []model.Bay{
		{Team: "t", BayID: "A1", Capacity: 10},
		{Team: "t", BayID: "A2", Capacity: 6},
	}
	micros := []model.MicroTeam{
		{Name: "x", Parent: "t/x", Team: "t", Shift: shift, Size: 8},
		{Name: "y", Parent: "t/y", Team: "t", Shift: shift, Size: 5},
	}
	opts := model.DefaultPlanOptions()

	inst, err := Build(micros, bays, mustSlots(t, 60), opts)
	if err != nil {
		t.Fatalf("Build() 失败: %v", err)
	}

	// 变量：2组×(5 present + 1 missed) + 2组×5天×2工区×(uses+seats)
	// + 2组×5天 split + 2工区×5天 nightActive
	wantVars := 12 + 40 + 10 + 10
	if got := inst.Model.NumVars(); got != wantVars {
		t.Errorf("变量数 = %d, expected %d", got, wantVars)
	}

	// 约束：2 min_days + 10 full_seating + 10 split_structure + 40 联动
	// + 每工区重叠集合去重后 1 个签名×5天 = 10 slot_cap；日班无夜间激活约束
	wantCons := 2 + 10 + 10 + 40 + 10
	if got := inst.Model.NumConstraints(); got != wantCons {
		t.Errorf("约束数 = %d, expected %d", got, wantCons)
	}
}

func TestBuild_HardModeMissedFixedZero(t *testing.T) {
	shift := model.Interval{StartMin: 9 * 60, EndMin: 17 * 60}
	bays := []model.Bay{{Team: "t", BayID: "A", Capacity: 10}}
	micros := []model.MicroTeam{{Name: "x", Parent: "t/x", Team: "t", Shift: shift, Size: 4}}

	opts := model.DefaultPlanOptions()
	opts.SoftMinDays = false

	inst, err := Build(micros, bays, mustSlots(t, 60), opts)
	if err != nil {
		t.Fatalf("Build() 失败: %v", err)
	}

	v := inst.Model.Vars()[inst.Missed[0]]
	if v.Lower != 0 || v.Upper != 0 {
		t.Errorf("硬模式缺勤松弛域 = [%v,%v], expected [0,0]", v.Lower, v.Upper)
	}
}

func TestBuild_SoftModeMissedBound(t *testing.T) {
	shift := model.Interval{StartMin: 9 * 60, EndMin: 17 * 60}
	bays := []model.Bay{{Team: "t", BayID: "A", Capacity: 10}}
	micros := []model.MicroTeam{{Name: "x", Parent: "t/x", Team: "t", Shift: shift, Size: 4}}

	opts := model.DefaultPlanOptions()
	opts.MinDaysRequired = 4

	inst, err := Build(micros, bays, mustSlots(t, 60), opts)
	if err != nil {
		t.Fatalf("Build() 失败: %v", err)
	}

	v := inst.Model.Vars()[inst.Missed[0]]
	if v.Upper != 4 {
		t.Errorf("软模式缺勤松弛上界 = %v, expected 4", v.Upper)
	}
}

func TestBuild_EligibleBays(t *testing.T) {
	shift := model.Interval{StartMin: 9 * 60, EndMin: 17 * 60}
	bays := []model.Bay{
		{Team: "t", BayID: "A", Capacity: 10},
		{Team: "other", BayID: "B", Capacity: 10},
		{Team: "t", BayID: "C", Capacity: 0}, // 零容量工区不可用
	}
	micros := []model.MicroTeam{{Name: "x", Parent: "t/x", Team: "t", Shift: shift, Size: 4}}

	opts := model.DefaultPlanOptions()
	inst, err := Build(micros, bays, mustSlots(t, 60), opts)
	if err != nil {
		t.Fatalf("Build() 失败: %v", err)
	}
	if len(inst.EligibleBays[0]) != 1 || inst.EligibleBays[0][0] != 0 {
		t.Errorf("默认可用工区 = %v, expected [0]", inst.EligibleBays[0])
	}
	if len(inst.Borrowed) != 0 {
		t.Errorf("关闭借用时不应有借用变量, got %d", len(inst.Borrowed))
	}

	opts.AllowBorrow = true
	inst, err = Build(micros, bays, mustSlots(t, 60), opts)
	if err != nil {
		t.Fatalf("Build() 失败: %v", err)
	}
	if len(inst.EligibleBays[0]) != 2 {
		t.Errorf("开启借用后可用工区 = %v, expected 两个正容量工区", inst.EligibleBays[0])
	}
	// 跨团队 uses 变量按天登记：5天×1个外队工区
	if len(inst.Borrowed) != 5 {
		t.Errorf("借用变量数 = %d, expected 5", len(inst.Borrowed))
	}
}

func TestBuild_NightClassification(t *testing.T) {
	bays := []model.Bay{{Team: "t", BayID: "A", Capacity: 10}}
	micros := []model.MicroTeam{
		{Name: "day", Parent: "t/day", Team: "t", Shift: model.Interval{StartMin: 9 * 60, EndMin: 17 * 60}, Size: 2},
		{Name: "night", Parent: "t/night", Team: "t", Shift: model.Interval{StartMin: 22 * 60, EndMin: 7 * 60}, Size: 2},
	}

	inst, err := Build(micros, bays, mustSlots(t, 60), model.DefaultPlanOptions())
	if err != nil {
		t.Fatalf("Build() 失败: %v", err)
	}
	if inst.Night[0] {
		t.Error("日班微组不应按夜间分类")
	}
	if !inst.Night[1] {
		t.Error("跨午夜微组应按夜间分类")
	}
}

func TestBuild_SlotCapacityDedup(t *testing.T) {
	// 两个班次在一天内形成三种不同的重叠集合：{早}、{早,晚}、{晚}
	bays := []model.Bay{{Team: "t", BayID: "A", Capacity: 10}}
	micros := []model.MicroTeam{
		{Name: "early", Parent: "t/early", Team: "t", Shift: model.Interval{StartMin: 6 * 60, EndMin: 14 * 60}, Size: 3},
		{Name: "late", Parent: "t/late", Team: "t", Shift: model.Interval{StartMin: 12 * 60, EndMin: 20 * 60}, Size: 3},
	}

	inst, err := Build(micros, bays, mustSlots(t, 60), model.DefaultPlanOptions())
	if err != nil {
		t.Fatalf("Build() 失败: %v", err)
	}

	slotCons := 0
	for _, c := range inst.Model.Constraints() {
		if strings.HasPrefix(c.Name, "slot_cap") {
			slotCons++
		}
	}
	// 3 个去重后的重叠签名 × 5 天
	if slotCons != 15 {
		t.Errorf("时间槽容量约束数 = %d, expected 15", slotCons)
	}
}

func TestApplyObjective(t *testing.T) {
	shift := model.Interval{StartMin: 9 * 60, EndMin: 17 * 60}
	bays := []model.Bay{{Team: "t", BayID: "A", Capacity: 10}}
	micros := []model.MicroTeam{{Name: "x", Parent: "t/x", Team: "t", Shift: shift, Size: 4}}

	inst, err := Build(micros, bays, mustSlots(t, 60), model.DefaultPlanOptions())
	if err != nil {
		t.Fatalf("Build() 失败: %v", err)
	}
	w, err := ComputeWeights(inst.Stats(), model.PriorityDominance)
	if err != nil {
		t.Fatalf("ComputeWeights() 失败: %v", err)
	}
	inst.ApplyObjective(w)

	obj := inst.Model.Objective()
	if obj[inst.Missed[0]] != w.Missed {
		t.Errorf("缺勤目标系数 = %v, expected %v", obj[inst.Missed[0]], w.Missed)
	}
	for d := 0; d < model.DaysPerWeek; d++ {
		if obj[inst.SplitFlags[0][d]] != w.Splits {
			t.Errorf("第 %d 天拆组系数 = %v, expected %v", d, obj[inst.SplitFlags[0][d]], w.Splits)
		}
		if obj[inst.NightActive[0][d]] != w.Nights {
			t.Errorf("第 %d 天夜间激活系数 = %v, expected %v", d, obj[inst.NightActive[0][d]], w.Nights)
		}
	}
	// 到场与座位变量本身不进目标
	if obj[inst.Present[0][0]] != 0 {
		t.Errorf("present 不应有目标系数, got %v", obj[inst.Present[0][0]])
	}
}
