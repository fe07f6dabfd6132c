// Package planner 实现周排位问题的构造与求解流水线
//
// 流水线各阶段（校验→拆组→时间槽→建模→权重→求解→提取）均为纯函数式：
// 消费不可变输入、产出全新结果，阶段之间无共享可变状态。
// 唯一的阻塞点是最终的求解器调用，按一问一答的外部协作对待
package planner

import (
	"context"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/gongwei/gongwei/pkg/errors"
	"github.com/gongwei/gongwei/pkg/logger"
	"github.com/gongwei/gongwei/pkg/mip"
	"github.com/gongwei/gongwei/pkg/model"
	"github.com/gongwei/gongwei/pkg/validator"
)

// Planner 周排位求解驱动
type Planner struct {
	solver mip.Solver
	logger *logger.PlannerLogger
}

// New 创建排位驱动，solver 为 nil 时使用内置分支定界求解器
func New(solver mip.Solver) *Planner {
	if solver == nil {
		solver = mip.NewBranchBound()
	}
	return &Planner{
		solver: solver,
		logger: logger.NewPlannerLogger(),
	}
}

// SolverName 返回注入的求解器名称
func (p *Planner) SolverName() string {
	return p.solver.Name()
}

// Plan 生成一周的工位排布方案
// 错误语义：输入与解析错误即刻终止；硬性到场模式下的不可行是正常的终止结果，
// 以 NO_FEASIBLE_SOLUTION 区分；求解器失败原样上抛为 SOLVER_ERROR，从不静默重试。
// 任何失败都不返回部分方案
func (p *Planner) Plan(ctx context.Context, bays []model.Bay, subteams []model.SubTeam, opts model.PlanOptions) (*model.Plan, error) {
	start := time.Now()
	planID := uuid.New()
	p.logger.StartPlan(planID.String(), len(subteams), len(bays))

	if issues := validator.NewInputValidator().Validate(bays, subteams); len(issues) > 0 {
		ve := &errors.ValidationErrors{}
		for _, issue := range issues {
			ve.Add(issue.Field, issue.Message)
		}
		return nil, ve.ToAppError()
	}

	micros, mapping, err := Split(bays, subteams)
	if err != nil {
		return nil, err
	}
	p.logger.SplitSummary(len(subteams), len(micros))

	slots, err := BuildSlots(opts.SlotMinutes)
	if err != nil {
		return nil, err
	}

	inst, err := Build(micros, bays, slots, opts)
	if err != nil {
		return nil, err
	}

	weights, err := ComputeWeights(inst.Stats(), opts.PriorityMode)
	if err != nil {
		return nil, err
	}
	inst.ApplyObjective(weights)
	p.logger.ModelBuilt(inst.Model.NumVars(), inst.Model.NumConstraints())

	sol, err := p.solver.Solve(ctx, inst.Model)
	if err != nil {
		return nil, errors.SolverError(p.solver.Name(), err)
	}
	if sol.Status == mip.StatusInfeasible {
		p.logger.Infeasible(planID.String())
		return nil, errors.NoFeasibleSolution("硬性最少到场天数约束下无可行的周排位")
	}

	plan := p.extract(planID, inst, mapping, subteams, sol)
	plan.Duration = time.Since(start)
	p.logger.PlanComplete(planID.String(), plan.Duration, sol.Objective)
	return plan, nil
}

// extract 从求解结果回读各微组每天的座位、诊断指标与聚合结果
func (p *Planner) extract(id uuid.UUID, inst *Instance, mapping map[string]string, subteams []model.SubTeam, sol *mip.Solution) *model.Plan {
	plan := &model.Plan{
		ID:         id,
		CreatedAt:  time.Now(),
		Options:    inst.Options,
		SolverName: p.solver.Name(),
	}
	val := func(v int) int { return int(math.Round(sol.Values[v])) }

	for i, micro := range inst.Micros {
		mp := model.MicroPlan{
			Micro:      micro,
			MissedDays: val(inst.Missed[i]),
		}
		plan.Diagnostics.MissedDays += mp.MissedDays
		for d := 0; d < model.DaysPerWeek; d++ {
			if val(inst.Present[i][d]) == 0 {
				mp.Days[d] = model.DayPlacement{Remote: true}
				continue
			}
			var seats []model.BaySeat
			for _, b := range inst.EligibleBays[i] {
				if s := val(inst.Seats[i][d][b]); s > 0 {
					bay := inst.Bays[b]
					seats = append(seats, model.BaySeat{Team: bay.Team, BayID: bay.BayID, Seats: s})
				}
			}
			mp.Days[d] = model.DayPlacement{
				Split: len(seats) > 1,
				Bays:  seats,
			}
			if val(inst.SplitFlags[i][d]) == 1 {
				plan.Diagnostics.SplitDays++
			}
		}
		plan.Micros = append(plan.Micros, mp)
	}

	for b, bay := range inst.Bays {
		for d := 0; d < model.DaysPerWeek; d++ {
			if val(inst.NightActive[b][d]) == 1 {
				plan.NightActive = append(plan.NightActive, model.NightBay{Team: bay.Team, BayID: bay.BayID, Day: d})
				plan.Diagnostics.NightBays++
			}
		}
	}
	for _, v := range inst.Borrowed {
		plan.Diagnostics.BorrowEvents += val(v)
	}
	plan.Diagnostics.Objective = sol.Objective

	plan.SubTeams = aggregate(plan.Micros, mapping, subteams)
	return plan
}

// aggregate 将微组结果合并回原子团队，顺序沿用输入的子团队顺序
func aggregate(micros []model.MicroPlan, mapping map[string]string, subteams []model.SubTeam) []model.SubTeamPlan {
	byKey := make(map[string]*model.SubTeamPlan, len(subteams))
	for _, st := range subteams {
		byKey[st.Key()] = &model.SubTeamPlan{Team: st.Team, Name: st.Name, Size: st.Size}
	}

	for _, mp := range micros {
		sp := byKey[mapping[mp.Micro.Key()]]
		if sp == nil {
			continue
		}
		sp.Micros = append(sp.Micros, mp.Micro.Name)
		sp.MissedDays += mp.MissedDays
		for d := range mp.Days {
			if mp.Days[d].Remote {
				continue
			}
			sp.DaysPresent[d] += mp.Micro.Size
			sp.Days[d] = mergeBaySeats(sp.Days[d], mp.Days[d].Bays)
		}
	}

	out := make([]model.SubTeamPlan, 0, len(subteams))
	for _, st := range subteams {
		out = append(out, *byKey[st.Key()])
	}
	return out
}

// mergeBaySeats 合并同一工区的座位数
func mergeBaySeats(dst, add []model.BaySeat) []model.BaySeat {
	for _, bs := range add {
		merged := false
		for k := range dst {
			if dst[k].Team == bs.Team && dst[k].BayID == bs.BayID {
				dst[k].Seats += bs.Seats
				merged = true
				break
			}
		}
		if !merged {
			dst = append(dst, bs)
		}
	}
	return dst
}
