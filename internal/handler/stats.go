// Package handler 提供HTTP请求处理器
package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gongwei/gongwei/pkg/errors"
	"github.com/gongwei/gongwei/pkg/model"
	"github.com/gongwei/gongwei/pkg/stats"
)

// StatsHandler 统计分析处理器
type StatsHandler struct {
	analyzer *stats.UtilizationAnalyzer
}

// NewStatsHandler 创建统计处理器
func NewStatsHandler() *StatsHandler {
	return &StatsHandler{analyzer: stats.NewUtilizationAnalyzer()}
}

// UtilizationRequest 利用率分析请求：一份已求解的方案及其工区表
type UtilizationRequest struct {
	Plan *model.Plan `json:"plan"`
	Bays []BayInput  `json:"bays"`
}

// UtilizationResponse 利用率分析响应
type UtilizationResponse struct {
	Success bool                      `json:"success"`
	Metrics *stats.UtilizationMetrics `json:"metrics"`
}

// Utilization 分析方案的工区利用率
func (h *StatsHandler) Utilization(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondError(w, errors.New(errors.CodeInvalidInput, "仅支持POST方法"))
		return
	}

	var req UtilizationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, errors.Wrap(err, errors.CodeInvalidInput, "解析请求失败"))
		return
	}
	if req.Plan == nil {
		respondError(w, errors.InvalidInput("plan", "缺少待分析的方案"))
		return
	}

	bays := make([]model.Bay, 0, len(req.Bays))
	for _, in := range req.Bays {
		bays = append(bays, model.Bay{Team: in.Team, BayID: in.BayID, Capacity: in.Capacity})
	}

	respondJSON(w, http.StatusOK, UtilizationResponse{
		Success: true,
		Metrics: h.analyzer.Analyze(req.Plan, bays),
	})
}
