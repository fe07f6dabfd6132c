package scenario

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gongwei/gongwei/pkg/model"
	"github.com/gongwei/gongwei/pkg/planner"
)

// TestOvernightShiftCountsAsNight 跨午夜班次按夜间占用计入工区激活
func TestOvernightShiftCountsAsNight(t *testing.T) {
	bays := []model.Bay{{Team: "ops", BayID: "N1", Capacity: 4}}
	subteams := []model.SubTeam{
		{Team: "ops", Name: "oncall", Shift: mustShift(t, "22:00-07:00"), Size: 2},
	}

	opts := model.DefaultPlanOptions()
	opts.MinDaysRequired = 2

	plan, err := planner.New(nil).Plan(context.Background(), bays, subteams, opts)
	require.NoError(t, err)

	assert.Equal(t, 0, plan.Diagnostics.MissedDays)
	// 每个到场天都会激活该工区一次
	assert.Equal(t, 2, plan.Diagnostics.NightBays)
	assert.Len(t, plan.NightActive, 2)
	for _, nb := range plan.NightActive {
		assert.Equal(t, "ops", nb.Team)
		assert.Equal(t, "N1", nb.BayID)
	}
}

// TestNightGroupsColocate 多个夜班微组应凑到同一天以减少激活
func TestNightGroupsColocate(t *testing.T) {
	bays := []model.Bay{{Team: "ops", BayID: "N1", Capacity: 2}}
	subteams := []model.SubTeam{
		{Team: "ops", Name: "oncall-a", Shift: mustShift(t, "22:00-07:00"), Size: 1},
		{Team: "ops", Name: "oncall-b", Shift: mustShift(t, "22:00-07:00"), Size: 1},
	}

	opts := model.DefaultPlanOptions()
	opts.MinDaysRequired = 1

	plan, err := planner.New(nil).Plan(context.Background(), bays, subteams, opts)
	require.NoError(t, err)

	assert.Equal(t, 0, plan.Diagnostics.MissedDays)
	assert.Equal(t, 1, plan.Diagnostics.NightBays, "两组应共用同一晚")
}

// TestDayShiftNeverActivatesNight 纯日班方案不应出现任何夜间激活
func TestDayShiftNeverActivatesNight(t *testing.T) {
	bays := []model.Bay{
		{Team: "checkout", BayID: "A1", Capacity: 6},
		{Team: "checkout", BayID: "A2", Capacity: 6},
	}
	subteams := []model.SubTeam{
		{Team: "checkout", Name: "web", Shift: mustShift(t, "09:00-17:00"), Size: 4},
		{Team: "checkout", Name: "api", Shift: mustShift(t, "10:00-18:00"), Size: 5},
	}

	plan, err := planner.New(nil).Plan(context.Background(), bays, subteams, model.DefaultPlanOptions())
	require.NoError(t, err)

	assert.Equal(t, 0, plan.Diagnostics.NightBays)
	assert.Empty(t, plan.NightActive)
	assert.Equal(t, 0, plan.Diagnostics.MissedDays)
}

// TestLateEveningShiftTriggersNight 终点越过夜间截止的晚班同样按夜间处理
func TestLateEveningShiftTriggersNight(t *testing.T) {
	bays := []model.Bay{{Team: "ops", BayID: "N1", Capacity: 2}}
	subteams := []model.SubTeam{
		{Team: "ops", Name: "evening", Shift: mustShift(t, "15:00-23:00"), Size: 1},
	}

	opts := model.DefaultPlanOptions()
	opts.MinDaysRequired = 1

	plan, err := planner.New(nil).Plan(context.Background(), bays, subteams, opts)
	require.NoError(t, err)

	assert.Equal(t, 1, plan.Diagnostics.NightBays, "23:00 收班越过 22:00 截止")
}
