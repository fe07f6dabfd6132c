// Package planner 实现周排位问题的构造与求解流水线
package planner

import (
	"fmt"

	"github.com/gongwei/gongwei/pkg/errors"
	"github.com/gongwei/gongwei/pkg/model"
)

// TimeSlot 单日内的离散时间槽，只用于容量重叠检查，不做持久化
type TimeSlot struct {
	Index    int `json:"index"`
	StartMin int `json:"start_min"`
	EndMin   int `json:"end_min"`
}

// BuildSlots 构造覆盖一整天的时间槽网格
// 同一套网格复用于全部五个工作日；resolution 必须整除 1440。
// 网格一次性全部物化，约束构建会按工区/工作日反复遍历
func BuildSlots(resolutionMinutes int) ([]TimeSlot, error) {
	if resolutionMinutes <= 0 || model.MinutesPerDay%resolutionMinutes != 0 {
		return nil, errors.InvalidInput("slot_minutes",
			fmt.Sprintf("时间槽粒度 %d 必须为正且整除 %d", resolutionMinutes, model.MinutesPerDay))
	}

	count := model.MinutesPerDay / resolutionMinutes
	slots := make([]TimeSlot, count)
	for i := 0; i < count; i++ {
		slots[i] = TimeSlot{
			Index:    i,
			StartMin: i * resolutionMinutes,
			EndMin:   (i + 1) * resolutionMinutes,
		}
	}
	return slots, nil
}

// SlotOverlaps 判断时间槽与班次区间是否相交，跨午夜班次两端都算
func SlotOverlaps(slot TimeSlot, shift model.Interval) bool {
	return shift.OverlapsRange(slot.StartMin, slot.EndMin)
}
