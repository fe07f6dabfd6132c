// Package mip 提供最小化的混合整数规划建模接口
package mip

import "context"

// Status 求解状态
type Status int

const (
	// StatusOptimal 找到最优解
	StatusOptimal Status = iota
	// StatusInfeasible 模型无可行解：这是一种正常的终止结果，不是错误
	StatusInfeasible
)

// Solution 求解结果
type Solution struct {
	Status    Status    `json:"status"`
	Values    []float64 `json:"values"` // 按变量索引
	Objective float64   `json:"objective"`
}

// Solver 求解器接口，由外部求解引擎实现后注入
// 同一实例存在多个最优解时具体取哪一个由求解器决定，调用方不应依赖特定选择；
// 求解失败（含超时）通过 error 返回，与 StatusInfeasible 严格区分
type Solver interface {
	// Solve 最小化模型目标并返回结果
	Solve(ctx context.Context, m *Model) (*Solution, error)

	// Name 返回求解器名称
	Name() string
}
