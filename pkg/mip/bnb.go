// Package mip 提供最小化的混合整数规划建模接口
package mip

import (
	"context"
	"fmt"
	"math"

	"github.com/gongwei/gongwei/pkg/logger"
)

const (
	defaultNodeBudget = 5_000_000
	feasEps           = 1e-6
)

// BranchBound 内置的精确分支定界求解器
// 面向小规模实例与测试场景；变量按创建顺序、取值从小到大枚举，
// 结合约束区间剪枝与现任解目标界剪枝，结果确定性可复现。
// 大规模生产实例应注入外部求解引擎。
type BranchBound struct {
	nodeBudget int
}

// NewBranchBound 创建分支定界求解器
func NewBranchBound() *BranchBound {
	return &BranchBound{nodeBudget: defaultNodeBudget}
}

// SetNodeBudget 设置搜索节点预算，超出预算视为求解失败
func (s *BranchBound) SetNodeBudget(n int) {
	if n > 0 {
		s.nodeBudget = n
	}
}

// Name 返回求解器名称
func (s *BranchBound) Name() string {
	return "branch-bound"
}

// conRef 变量在某条约束中的出现
type conRef struct {
	con  int
	coef float64
}

// Solve 最小化模型目标
func (s *BranchBound) Solve(ctx context.Context, m *Model) (*Solution, error) {
	vars := m.Vars()
	cons := m.Constraints()
	obj := m.Objective()
	n := len(vars)

	for _, v := range vars {
		if v.Type == Continuous {
			return nil, fmt.Errorf("变量 '%s': 分支定界求解器不支持连续变量", v.Name)
		}
		if v.Upper < v.Lower {
			return &Solution{Status: StatusInfeasible}, nil
		}
	}

	// 每条约束中各变量的系数（同一变量多次出现时累加）
	coefs := make([]map[int]float64, len(cons))
	for ci, c := range cons {
		coefs[ci] = make(map[int]float64, len(c.Terms))
		for _, t := range c.Terms {
			coefs[ci][t.Var] += t.Coef
		}
	}

	// perVar[j]：变量 j 出现的约束及系数，用于增量维护已定部分的和
	perVar := make([][]conRef, n)
	for ci := range cons {
		for v, coef := range coefs[ci] {
			perVar[v] = append(perVar[v], conRef{con: ci, coef: coef})
		}
	}

	// minRest/maxRest[ci][k]：约束 ci 中索引 ≥ k 的未定变量可贡献的上下界
	minRest := make([][]float64, len(cons))
	maxRest := make([][]float64, len(cons))
	for ci := range cons {
		minRest[ci] = make([]float64, n+1)
		maxRest[ci] = make([]float64, n+1)
		for j := n - 1; j >= 0; j-- {
			lo, hi := minRest[ci][j+1], maxRest[ci][j+1]
			if coef, ok := coefs[ci][j]; ok {
				a, b := coef*vars[j].Lower, coef*vars[j].Upper
				lo += math.Min(a, b)
				hi += math.Max(a, b)
			}
			minRest[ci][j] = lo
			maxRest[ci][j] = hi
		}
	}

	// objMinRest[k]：索引 ≥ k 的未定变量对目标的最小可能贡献
	objMinRest := make([]float64, n+1)
	for j := n - 1; j >= 0; j-- {
		a, b := obj[j]*vars[j].Lower, obj[j]*vars[j].Upper
		objMinRest[j] = objMinRest[j+1] + math.Min(a, b)
	}

	fixed := make([]float64, len(cons))
	values := make([]float64, n)
	var best []float64
	bestObj := math.Inf(1)
	nodes := 0

	var dfs func(k int, objAcc float64) error
	dfs = func(k int, objAcc float64) error {
		nodes++
		if nodes > s.nodeBudget {
			return fmt.Errorf("分支定界搜索超出节点预算 %d", s.nodeBudget)
		}
		if nodes%1024 == 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
		}

		// 目标界剪枝：取等时也剪掉，保留最先找到的现任解
		if objAcc+objMinRest[k] >= bestObj {
			return nil
		}

		// 约束区间剪枝
		for ci := range cons {
			lo := fixed[ci] + minRest[ci][k]
			hi := fixed[ci] + maxRest[ci][k]
			switch cons[ci].Sense {
			case LE:
				if lo > cons[ci].RHS+feasEps {
					return nil
				}
			case GE:
				if hi < cons[ci].RHS-feasEps {
					return nil
				}
			case EQ:
				if lo > cons[ci].RHS+feasEps || hi < cons[ci].RHS-feasEps {
					return nil
				}
			}
		}

		if k == n {
			bestObj = objAcc
			best = append(best[:0:0], values...)
			return nil
		}

		for val := int(vars[k].Lower); val <= int(vars[k].Upper); val++ {
			f := float64(val)
			values[k] = f
			for _, ref := range perVar[k] {
				fixed[ref.con] += ref.coef * f
			}
			err := dfs(k+1, objAcc+obj[k]*f)
			for _, ref := range perVar[k] {
				fixed[ref.con] -= ref.coef * f
			}
			if err != nil {
				return err
			}
		}
		return nil
	}

	if err := dfs(0, 0); err != nil {
		return nil, err
	}

	logger.Debug().
		Int("nodes", nodes).
		Int("variables", n).
		Int("constraints", len(cons)).
		Msg("分支定界搜索结束")

	if best == nil {
		return &Solution{Status: StatusInfeasible}, nil
	}
	return &Solution{Status: StatusOptimal, Values: best, Objective: bestObj}, nil
}
