// Package handler 提供HTTP请求处理器
package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gongwei/gongwei/internal/metrics"
	"github.com/gongwei/gongwei/internal/repository"
	"github.com/gongwei/gongwei/pkg/errors"
	"github.com/gongwei/gongwei/pkg/logger"
	"github.com/gongwei/gongwei/pkg/model"
	"github.com/gongwei/gongwei/pkg/planner"
)

// PlanHandler 排位处理器
type PlanHandler struct {
	planner        *planner.Planner
	planRepo       *repository.PlanRepository // 可为 nil，纯内存模式
	defaultOptions model.PlanOptions
	solveTimeout   time.Duration
}

// NewPlanHandler 创建排位处理器
func NewPlanHandler(p *planner.Planner, planRepo *repository.PlanRepository, defaults model.PlanOptions, solveTimeout time.Duration) *PlanHandler {
	return &PlanHandler{
		planner:        p,
		planRepo:       planRepo,
		defaultOptions: defaults,
		solveTimeout:   solveTimeout,
	}
}

// BayInput 工区输入
type BayInput struct {
	Team     string `json:"team"`
	BayID    string `json:"bay_id"`
	Capacity int    `json:"capacity"`
}

// SubTeamInput 子团队输入
type SubTeamInput struct {
	Team    string `json:"team"`
	SubTeam string `json:"subteam"`
	Shift   string `json:"shift"` // HH:MM-HH:MM
	Size    int    `json:"size"`
}

// GenerateRequest 排位生成请求
type GenerateRequest struct {
	Bays     []BayInput         `json:"bays"`
	SubTeams []SubTeamInput     `json:"subteams"`
	Options  *model.PlanOptions `json:"options,omitempty"` // 缺省使用服务配置
}

// GenerateResponse 排位生成响应
type GenerateResponse struct {
	Success bool        `json:"success"`
	Plan    *model.Plan `json:"plan,omitempty"`
	Message string      `json:"message,omitempty"`
}

// Generate 生成周排位
func (h *PlanHandler) Generate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondError(w, errors.New(errors.CodeInvalidInput, "仅支持POST方法"))
		return
	}

	var req GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, errors.Wrap(err, errors.CodeInvalidInput, "解析请求失败"))
		return
	}

	bays, subteams, err := convertInput(req.Bays, req.SubTeams)
	if err != nil {
		respondError(w, err)
		return
	}

	opts := h.defaultOptions
	if req.Options != nil {
		opts = *req.Options
	}

	ctx := r.Context()
	if h.solveTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.solveTimeout)
		defer cancel()
	}

	start := time.Now()
	plan, err := h.planner.Plan(ctx, bays, subteams, opts)
	reg := metrics.GetRegistry()
	reg.ObserveDuration("gongwei_plan_duration_seconds", "", time.Since(start))
	if err != nil {
		reg.IncCounter("gongwei_plans_total", planStatusLabel(err))
		respondError(w, err)
		return
	}
	reg.IncCounter("gongwei_plans_total", `status="ok"`)
	reg.SetGauge("gongwei_micro_teams", "", float64(len(plan.Micros)))
	reg.SetGauge("gongwei_plan_objective", "", plan.Diagnostics.Objective)

	if h.planRepo != nil {
		// 求解已成功，持久化失败只记录不阻断响应
		if err := h.planRepo.Save(r.Context(), plan); err != nil {
			logger.WithError(err).Str("plan_id", plan.ID.String()).Msg("方案持久化失败")
		}
	}

	respondJSON(w, http.StatusOK, GenerateResponse{Success: true, Plan: plan})
}

// planStatusLabel 求解失败的指标标签
func planStatusLabel(err error) string {
	switch errors.GetCode(err) {
	case errors.CodeNoFeasibleSolution:
		return `status="infeasible"`
	case errors.CodeSolverError:
		return `status="solver_error"`
	default:
		return `status="invalid"`
	}
}

// PreviewWeightsResponse 权重预览响应
type PreviewWeightsResponse struct {
	Success bool                  `json:"success"`
	Micros  []model.MicroTeam     `json:"micros"`
	Stats   planner.InstanceStats `json:"stats"`
	Weights planner.Weights       `json:"weights"`
}

// PreviewWeights 只做拆组与权重计算，不触发求解
func (h *PlanHandler) PreviewWeights(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondError(w, errors.New(errors.CodeInvalidInput, "仅支持POST方法"))
		return
	}

	var req GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, errors.Wrap(err, errors.CodeInvalidInput, "解析请求失败"))
		return
	}

	bays, subteams, err := convertInput(req.Bays, req.SubTeams)
	if err != nil {
		respondError(w, err)
		return
	}

	opts := h.defaultOptions
	if req.Options != nil {
		opts = *req.Options
	}

	micros, _, err := planner.Split(bays, subteams)
	if err != nil {
		respondError(w, err)
		return
	}

	stats := planner.InstanceStats{
		MicroCount:      len(micros),
		BayCount:        len(bays),
		Days:            model.DaysPerWeek,
		MinDaysRequired: opts.MinDaysRequired,
		AllowBorrow:     opts.AllowBorrow,
	}
	weights, err := planner.ComputeWeights(stats, opts.PriorityMode)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, PreviewWeightsResponse{
		Success: true,
		Micros:  micros,
		Stats:   stats,
		Weights: weights,
	})
}

// convertInput 转换并解析输入表，班次文本在此边界解析
func convertInput(bayInputs []BayInput, subteamInputs []SubTeamInput) ([]model.Bay, []model.SubTeam, error) {
	if len(bayInputs) == 0 {
		return nil, nil, errors.InvalidInput("bays", "工区表不能为空")
	}
	if len(subteamInputs) == 0 {
		return nil, nil, errors.InvalidInput("subteams", "子团队表不能为空")
	}

	bays := make([]model.Bay, 0, len(bayInputs))
	for _, in := range bayInputs {
		bays = append(bays, model.Bay{Team: in.Team, BayID: in.BayID, Capacity: in.Capacity})
	}

	subteams := make([]model.SubTeam, 0, len(subteamInputs))
	for _, in := range subteamInputs {
		iv, err := model.ParseShift(in.Shift)
		if err != nil {
			return nil, nil, err
		}
		subteams = append(subteams, model.SubTeam{
			Team:      in.Team,
			Name:      in.SubTeam,
			Shift:     iv,
			ShiftText: in.Shift,
			Size:      in.Size,
		})
	}
	return bays, subteams, nil
}
