// Package model 定义排位引擎的核心数据模型
package model

import (
	"time"

	"github.com/google/uuid"
)

// DaysPerWeek 每周参与排位的工作日数（周一至周五）
const DaysPerWeek = 5

// DayNames 工作日名称
var DayNames = [DaysPerWeek]string{"Mon", "Tue", "Wed", "Thu", "Fri"}

// PriorityMode 优先级权重模式
type PriorityMode string

const (
	// PriorityDominance 支配权重：整数权重严格保证字典序优先级
	PriorityDominance PriorityMode = "dominance"
	// PriorityNormalizedEpsilon 归一化权重：系数数值范围窄、利于求解器条件数，
	// 但只是字典序的近似，不提供严格保证
	PriorityNormalizedEpsilon PriorityMode = "normalized_epsilon"
)

// Valid 检查权重模式是否合法
func (m PriorityMode) Valid() bool {
	return m == PriorityDominance || m == PriorityNormalizedEpsilon
}

// PlanOptions 排位选项，贯穿整条流水线的不可变配置
type PlanOptions struct {
	MinDaysRequired  int          `json:"min_days_required" yaml:"min_days_required"`
	SoftMinDays      bool         `json:"soft_min_days" yaml:"soft_min_days"`
	SlotMinutes      int          `json:"slot_minutes" yaml:"slot_minutes"`
	AllowBorrow      bool         `json:"allow_borrow" yaml:"allow_borrow"`
	PriorityMode     PriorityMode `json:"priority_mode" yaml:"priority_mode"`
	NightCutoffStart int          `json:"night_cutoff_start" yaml:"night_cutoff_start"` // 分钟偏移
	NightCutoffEnd   int          `json:"night_cutoff_end" yaml:"night_cutoff_end"`     // 分钟偏移
}

// DefaultPlanOptions 返回默认排位选项
func DefaultPlanOptions() PlanOptions {
	return PlanOptions{
		MinDaysRequired:  3,
		SoftMinDays:      true,
		SlotMinutes:      60,
		AllowBorrow:      false,
		PriorityMode:     PriorityDominance,
		NightCutoffStart: 18 * 60, // 18:00
		NightCutoffEnd:   22 * 60, // 22:00
	}
}

// BaySeat 单个工区内的座位分配
type BaySeat struct {
	Team  string `json:"team"`
	BayID string `json:"bay_id"`
	Seats int    `json:"seats"`
}

// DayPlacement 微组某个工作日的落位
// Remote 为 true 表示当天未到场（无任何工区占用）
type DayPlacement struct {
	Remote bool      `json:"remote"`
	Split  bool      `json:"split"`
	Bays   []BaySeat `json:"bays,omitempty"`
}

// MicroPlan 微组的整周落位结果
type MicroPlan struct {
	Micro      MicroTeam                 `json:"micro"`
	Days       [DaysPerWeek]DayPlacement `json:"days"`
	MissedDays int                       `json:"missed_days"`
}

// SubTeamPlan 聚合回原子团队的整周结果
type SubTeamPlan struct {
	Team        string                 `json:"team"`
	Name        string                 `json:"subteam"`
	Size        int                    `json:"size"`
	Micros      []string               `json:"micros"`
	Days        [DaysPerWeek][]BaySeat `json:"days"`
	DaysPresent [DaysPerWeek]int       `json:"days_present"` // 当天到场人数
	MissedDays  int                    `json:"missed_days"`
}

// NightBay 被夜间占用激活的 (工区, 工作日)
type NightBay struct {
	Team  string `json:"team"`
	BayID string `json:"bay_id"`
	Day   int    `json:"day"`
}

// Diagnostics 四项摩擦指标的实际取值
type Diagnostics struct {
	MissedDays   int     `json:"missed_days"`
	SplitDays    int     `json:"split_days"`
	NightBays    int     `json:"night_bays"`
	BorrowEvents int     `json:"borrow_events"`
	Objective    float64 `json:"objective"`
}

// Plan 一次求解的完整周排位结果
type Plan struct {
	ID          uuid.UUID     `json:"id"`
	CreatedAt   time.Time     `json:"created_at"`
	Options     PlanOptions   `json:"options"`
	Micros      []MicroPlan   `json:"micros"`
	SubTeams    []SubTeamPlan `json:"subteams"`
	NightActive []NightBay    `json:"night_active,omitempty"`
	Diagnostics Diagnostics   `json:"diagnostics"`
	SolverName  string        `json:"solver"`
	Duration    time.Duration `json:"duration"`
}
