// Package mip 提供最小化的混合整数规划建模接口
// 只覆盖排位引擎依赖的能力面：声明变量、添加线性约束、设置线性目标、最小化求解
package mip

// VarType 变量类型
type VarType int

const (
	Binary VarType = iota
	Integer
	Continuous
)

// Var 决策变量
type Var struct {
	Index int
	Name  string
	Type  VarType
	Lower float64
	Upper float64
}

// Term 线性表达式中的一项
type Term struct {
	Var  int
	Coef float64
}

// Sense 约束方向
type Sense int

const (
	LE Sense = iota // ≤
	GE              // ≥
	EQ              // =
)

// Constraint 线性约束：Σ Coef·x  Sense  RHS
type Constraint struct {
	Name  string
	Terms []Term
	Sense Sense
	RHS   float64
}

// Model 一次求解的模型，每次求解都从零新建，不跨求解复用
type Model struct {
	vars []Var
	cons []Constraint
	obj  []float64 // 按变量索引存放目标系数
}

// NewModel 创建空模型
func NewModel() *Model {
	return &Model{}
}

// AddBinary 添加 0/1 变量
func (m *Model) AddBinary(name string) int {
	return m.addVar(name, Binary, 0, 1)
}

// AddInteger 添加有界整数变量
func (m *Model) AddInteger(name string, lower, upper float64) int {
	return m.addVar(name, Integer, lower, upper)
}

// AddContinuous 添加有界连续变量
func (m *Model) AddContinuous(name string, lower, upper float64) int {
	return m.addVar(name, Continuous, lower, upper)
}

func (m *Model) addVar(name string, typ VarType, lower, upper float64) int {
	idx := len(m.vars)
	m.vars = append(m.vars, Var{Index: idx, Name: name, Type: typ, Lower: lower, Upper: upper})
	m.obj = append(m.obj, 0)
	return idx
}

// AddConstraint 添加线性约束
func (m *Model) AddConstraint(name string, terms []Term, sense Sense, rhs float64) {
	m.cons = append(m.cons, Constraint{Name: name, Terms: terms, Sense: sense, RHS: rhs})
}

// SetObjectiveCoef 设置某个变量的目标系数（最小化方向）
func (m *Model) SetObjectiveCoef(v int, coef float64) {
	m.obj[v] = coef
}

// AddObjectiveCoef 累加某个变量的目标系数
func (m *Model) AddObjectiveCoef(v int, coef float64) {
	m.obj[v] += coef
}

// Vars 返回全部变量
func (m *Model) Vars() []Var {
	return m.vars
}

// Constraints 返回全部约束
func (m *Model) Constraints() []Constraint {
	return m.cons
}

// Objective 返回目标系数向量
func (m *Model) Objective() []float64 {
	return m.obj
}

// NumVars 返回变量数
func (m *Model) NumVars() int {
	return len(m.vars)
}

// NumConstraints 返回约束数
func (m *Model) NumConstraints() int {
	return len(m.cons)
}
