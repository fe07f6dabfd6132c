package scenario

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gongwei/gongwei/pkg/errors"
	"github.com/gongwei/gongwei/pkg/model"
	"github.com/gongwei/gongwei/pkg/planner"
)

// TestHardMinDaysRejectsOverbooking 硬性到场模式下超订直接判不可行
func TestHardMinDaysRejectsOverbooking(t *testing.T) {
	shift := mustShift(t, "09:00-17:00")
	bays := []model.Bay{{Team: "t", BayID: "A", Capacity: 3}}
	subteams := []model.SubTeam{
		{Team: "t", Name: "x", Shift: shift, Size: 2},
		{Team: "t", Name: "y", Shift: shift, Size: 2},
	}

	opts := model.DefaultPlanOptions()
	opts.MinDaysRequired = 5
	opts.SoftMinDays = false

	_, err := planner.New(nil).Plan(context.Background(), bays, subteams, opts)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.CodeNoFeasibleSolution))

	// 同一实例切回软模式后应产出带缺口的方案
	opts.SoftMinDays = true
	plan, err := planner.New(nil).Plan(context.Background(), bays, subteams, opts)
	require.NoError(t, err)
	assert.Greater(t, plan.Diagnostics.MissedDays, 0, "软模式应报告缺口而非失败")
}

// TestBorrowPolicyGatesCrossTeamSeats 借用开关控制跨团队落位
func TestBorrowPolicyGatesCrossTeamSeats(t *testing.T) {
	shift := mustShift(t, "09:00-17:00")
	bays := []model.Bay{
		{Team: "a", BayID: "A1", Capacity: 1},
		{Team: "b", BayID: "B1", Capacity: 1},
	}
	subteams := []model.SubTeam{
		{Team: "a", Name: "x", Shift: shift, Size: 1},
		{Team: "a", Name: "y", Shift: shift, Size: 1},
	}

	opts := model.DefaultPlanOptions()
	opts.MinDaysRequired = 5
	opts.SoftMinDays = false

	_, err := planner.New(nil).Plan(context.Background(), bays, subteams, opts)
	assert.True(t, errors.Is(err, errors.CodeNoFeasibleSolution), "默认不允许借用")

	opts.AllowBorrow = true
	plan, err := planner.New(nil).Plan(context.Background(), bays, subteams, opts)
	require.NoError(t, err)
	assert.Equal(t, 5, plan.Diagnostics.BorrowEvents, "每天借一次 b 队工区")

	// 借用的座位应落在外队工区上
	crossTeam := false
	for _, mp := range plan.Micros {
		for d := 0; d < model.DaysPerWeek; d++ {
			for _, bs := range mp.Days[d].Bays {
				if bs.Team != mp.Micro.Team {
					crossTeam = true
				}
			}
		}
	}
	assert.True(t, crossTeam, "方案中应出现跨团队落位")
}

// TestPriorityModesAgreeOnClearOptimum 在最优解无歧义的实例上两种权重模式结论一致
func TestPriorityModesAgreeOnClearOptimum(t *testing.T) {
	shift := mustShift(t, "09:00-17:00")
	bays := []model.Bay{{Team: "t", BayID: "A", Capacity: 2}}
	subteams := []model.SubTeam{
		{Team: "t", Name: "x", Shift: shift, Size: 2},
		{Team: "t", Name: "y", Shift: shift, Size: 2},
	}

	for _, mode := range []model.PriorityMode{model.PriorityDominance, model.PriorityNormalizedEpsilon} {
		opts := model.DefaultPlanOptions()
		opts.PriorityMode = mode

		plan, err := planner.New(nil).Plan(context.Background(), bays, subteams, opts)
		require.NoError(t, err, "模式 %s", mode)
		assert.Equal(t, 1, plan.Diagnostics.MissedDays, "模式 %s 缺口应一致", mode)
	}
}

// TestSubTeamAggregationPreservesHeadcount 聚合结果与拆分前的人数一致
func TestSubTeamAggregationPreservesHeadcount(t *testing.T) {
	shift := mustShift(t, "09:00-17:00")
	bays := []model.Bay{
		{Team: "search", BayID: "B1", Capacity: 2},
		{Team: "search", BayID: "B2", Capacity: 2},
	}
	subteams := []model.SubTeam{
		// 超出单日总容量 4，拆为 3/3 后两个微组隔天轮换
		{Team: "search", Name: "rank", Shift: shift, Size: 6},
	}

	opts := model.DefaultPlanOptions()
	opts.MinDaysRequired = 1

	plan, err := planner.New(nil).Plan(context.Background(), bays, subteams, opts)
	require.NoError(t, err)

	require.Len(t, plan.SubTeams, 1)
	sp := plan.SubTeams[0]
	assert.Equal(t, 6, sp.Size)
	assert.Len(t, sp.Micros, 2, "6 人对 4 容量应拆为两个微组")

	for d := 0; d < model.DaysPerWeek; d++ {
		seated := 0
		for _, bs := range sp.Days[d] {
			seated += bs.Seats
		}
		assert.Equal(t, sp.DaysPresent[d], seated, "第 %d 天到场人数应与座位一致", d)
		assert.LessOrEqual(t, seated, 4, "第 %d 天不得超过团队总容量", d)
	}
}
