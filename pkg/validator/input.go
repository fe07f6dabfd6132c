// Package validator 提供排位输入数据的前置校验
package validator

import (
	"fmt"

	"github.com/gongwei/gongwei/pkg/model"
)

// Issue 单个校验问题
type Issue struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// InputValidator 工区与子团队表的校验器
// 校验失败对本次求解是致命的：排位引擎从不基于脏数据产出部分方案
type InputValidator struct{}

// NewInputValidator 创建输入校验器
func NewInputValidator() *InputValidator {
	return &InputValidator{}
}

// Validate 校验工区与子团队表，返回全部问题
func (v *InputValidator) Validate(bays []model.Bay, subteams []model.SubTeam) []Issue {
	var issues []Issue

	seenBays := make(map[string]bool, len(bays))
	for _, b := range bays {
		if b.Team == "" || b.BayID == "" {
			issues = append(issues, Issue{Field: "bay", Message: "工区的团队与编号不能为空"})
			continue
		}
		if seenBays[b.Key()] {
			issues = append(issues, Issue{Field: "bay", Message: fmt.Sprintf("工区 '%s' 重复定义", b.Key())})
		}
		seenBays[b.Key()] = true
		if b.Capacity < 0 {
			issues = append(issues, Issue{Field: "capacity", Message: fmt.Sprintf("工区 '%s' 容量不能为负", b.Key())})
		}
	}

	teamCaps := model.TeamCapacities(bays)
	seenSubteams := make(map[string]bool, len(subteams))
	for _, st := range subteams {
		if st.Team == "" || st.Name == "" {
			issues = append(issues, Issue{Field: "subteam", Message: "子团队的团队与名称不能为空"})
			continue
		}
		if seenSubteams[st.Key()] {
			issues = append(issues, Issue{Field: "subteam", Message: fmt.Sprintf("子团队 '%s' 重复定义", st.Key())})
		}
		seenSubteams[st.Key()] = true

		if st.Size <= 0 {
			issues = append(issues, Issue{Field: "size", Message: fmt.Sprintf("子团队 '%s' 人数必须为正", st.Key())})
		}
		if teamCaps[st.Team] <= 0 {
			issues = append(issues, Issue{Field: "team", Message: fmt.Sprintf("子团队 '%s' 所属团队没有任何工区容量", st.Key())})
		}
		if !validInterval(st.Shift) {
			issues = append(issues, Issue{Field: "shift", Message: fmt.Sprintf("子团队 '%s' 班次区间越界: %s", st.Key(), st.Shift)})
		}
	}

	return issues
}

// validInterval 班次端点必须落在一天的分钟范围内，且时长非零
func validInterval(iv model.Interval) bool {
	if iv.StartMin < 0 || iv.StartMin >= model.MinutesPerDay {
		return false
	}
	if iv.EndMin < 0 || iv.EndMin >= model.MinutesPerDay {
		return false
	}
	return iv.StartMin != iv.EndMin
}
