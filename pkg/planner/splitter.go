// Package planner 实现周排位问题的构造与求解流水线
package planner

import (
	"fmt"

	"github.com/gongwei/gongwei/pkg/errors"
	"github.com/gongwei/gongwei/pkg/model"
)

// Split 将超出本队工区总容量的子团队拆分为若干微组
// 拆分规则：块数 = ceil(size/容量)，块大小近似均等（相差不超过1，大块在前），
// 命名为 原名#1、原名#2……未超容的子团队原样映射为单个微组。
// 纯函数且确定性：相同输入永远产生相同拆分。
// 返回 微组列表 与 微组Key→原子团队Key 的映射
func Split(bays []model.Bay, subteams []model.SubTeam) ([]model.MicroTeam, map[string]string, error) {
	teamCaps := model.TeamCapacities(bays)

	micros := make([]model.MicroTeam, 0, len(subteams))
	mapping := make(map[string]string, len(subteams))

	for _, st := range subteams {
		if st.Size <= 0 {
			return nil, nil, errors.InvalidInput("size", fmt.Sprintf("子团队 '%s' 人数必须为正", st.Key()))
		}

		capacity := teamCaps[st.Team]
		if capacity <= 0 {
			return nil, nil, errors.InvalidInput("team",
				fmt.Sprintf("团队 '%s' 无可用工区容量，无法安置子团队 '%s'", st.Team, st.Name))
		}

		if st.Size <= capacity {
			m := model.MicroTeam{
				Name:   st.Name,
				Parent: st.Key(),
				Team:   st.Team,
				Shift:  st.Shift,
				Size:   st.Size,
			}
			micros = append(micros, m)
			mapping[m.Key()] = st.Key()
			continue
		}

		parts := (st.Size + capacity - 1) / capacity
		base := st.Size / parts
		remainder := st.Size % parts
		for p := 0; p < parts; p++ {
			size := base
			if p < remainder {
				size++
			}
			m := model.MicroTeam{
				Name:   fmt.Sprintf("%s#%d", st.Name, p+1),
				Parent: st.Key(),
				Team:   st.Team,
				Shift:  st.Shift,
				Size:   size,
			}
			micros = append(micros, m)
			mapping[m.Key()] = st.Key()
		}
	}

	if err := verifySplit(subteams, micros, teamCaps); err != nil {
		return nil, nil, err
	}
	return micros, mapping, nil
}

// verifySplit 拆分后的不变量校验：
// 每个子团队的微组人数之和等于原始人数，且任何微组不超过本队工区总容量
func verifySplit(subteams []model.SubTeam, micros []model.MicroTeam, teamCaps map[string]int) error {
	sums := make(map[string]int, len(subteams))
	for _, m := range micros {
		sums[m.Parent] += m.Size
		if m.Size > teamCaps[m.Team] {
			return errors.SplitInvariant(m.Parent,
				fmt.Sprintf("微组 '%s' 人数 %d 超过团队容量 %d", m.Name, m.Size, teamCaps[m.Team]))
		}
	}
	for _, st := range subteams {
		if sums[st.Key()] != st.Size {
			return errors.SplitInvariant(st.Key(),
				fmt.Sprintf("拆分后总人数 %d 与原始人数 %d 不符", sums[st.Key()], st.Size))
		}
	}
	return nil
}
