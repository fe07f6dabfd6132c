// Package model 定义排位引擎的核心数据模型
package model

import "fmt"

// Bay 工区（同一团队共享的一组工位）
// 由 (Team, BayID) 唯一标识，规划周期内不可变
type Bay struct {
	Team     string `json:"team" db:"team"`
	BayID    string `json:"bay_id" db:"bay_id"`
	Capacity int    `json:"capacity" db:"capacity"`
}

// Key 返回工区的唯一标识
func (b Bay) Key() string {
	return b.Team + "/" + b.BayID
}

// SubTeam 子团队
type SubTeam struct {
	Team      string   `json:"team" db:"team"`
	Name      string   `json:"subteam" db:"subteam"`
	Shift     Interval `json:"shift"`
	ShiftText string   `json:"shift_text,omitempty" db:"shift"` // 原始班次文本，仅用于展示与存储
	Size      int      `json:"size" db:"size"`
}

// Key 返回子团队的唯一标识
func (s SubTeam) Key() string {
	return s.Team + "/" + s.Name
}

// MicroTeam 微组：可完整放入本队工区总容量的子团队分片
// 由拆组器派生，命名规则为 原名#1、原名#2……未拆分时沿用原名
type MicroTeam struct {
	Name   string   `json:"name"`
	Parent string   `json:"parent"` // 原子团队标识（Team/Name）
	Team   string   `json:"team"`
	Shift  Interval `json:"shift"`
	Size   int      `json:"size"`
}

// Key 返回微组的唯一标识
func (m MicroTeam) Key() string {
	return m.Team + "/" + m.Name
}

// TeamCapacities 统计每个团队拥有的工区总容量
func TeamCapacities(bays []Bay) map[string]int {
	caps := make(map[string]int)
	for _, b := range bays {
		caps[b.Team] += b.Capacity
	}
	return caps
}

// String 实现 fmt.Stringer
func (m MicroTeam) String() string {
	return fmt.Sprintf("%s(%d人)", m.Key(), m.Size)
}
