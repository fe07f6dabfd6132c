// Package handler 提供HTTP请求处理器
package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gongwei/gongwei/internal/repository"
	"github.com/gongwei/gongwei/pkg/errors"
	"github.com/gongwei/gongwei/pkg/model"
	"github.com/gongwei/gongwei/pkg/planner"
)

// CatalogHandler 工区与子团队目录处理器
// 维护数据库中的输入表，并支持直接从存量表生成排位
type CatalogHandler struct {
	bayRepo        *repository.BayRepository
	subteamRepo    *repository.SubTeamRepository
	planner        *planner.Planner
	defaultOptions model.PlanOptions
	solveTimeout   time.Duration
}

// NewCatalogHandler 创建目录处理器
func NewCatalogHandler(bayRepo *repository.BayRepository, subteamRepo *repository.SubTeamRepository,
	p *planner.Planner, defaults model.PlanOptions, solveTimeout time.Duration) *CatalogHandler {
	return &CatalogHandler{
		bayRepo:        bayRepo,
		subteamRepo:    subteamRepo,
		planner:        p,
		defaultOptions: defaults,
		solveTimeout:   solveTimeout,
	}
}

// Bays 工区表的读取与维护
func (h *CatalogHandler) Bays(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		bays, err := h.bayRepo.List(r.Context())
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, map[string]interface{}{"success": true, "bays": bays})

	case http.MethodPost, http.MethodPut:
		var in BayInput
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			respondError(w, errors.Wrap(err, errors.CodeInvalidInput, "解析请求失败"))
			return
		}
		if in.Team == "" || in.BayID == "" {
			respondError(w, errors.InvalidInput("bay", "工区的团队与编号不能为空"))
			return
		}
		bay := model.Bay{Team: in.Team, BayID: in.BayID, Capacity: in.Capacity}
		if err := h.bayRepo.Upsert(r.Context(), bay); err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, map[string]interface{}{"success": true, "bay": bay})

	default:
		respondError(w, errors.New(errors.CodeInvalidInput, "仅支持GET/POST/PUT方法"))
	}
}

// SubTeams 子团队表的读取与维护，班次文本在写入前解析校验
func (h *CatalogHandler) SubTeams(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		subteams, err := h.subteamRepo.List(r.Context())
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, map[string]interface{}{"success": true, "subteams": subteams})

	case http.MethodPost, http.MethodPut:
		var in SubTeamInput
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			respondError(w, errors.Wrap(err, errors.CodeInvalidInput, "解析请求失败"))
			return
		}
		iv, err := model.ParseShift(in.Shift)
		if err != nil {
			respondError(w, err)
			return
		}
		st := model.SubTeam{Team: in.Team, Name: in.SubTeam, Shift: iv, ShiftText: in.Shift, Size: in.Size}
		if err := h.subteamRepo.Upsert(r.Context(), st); err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, map[string]interface{}{"success": true, "subteam": st})

	default:
		respondError(w, errors.New(errors.CodeInvalidInput, "仅支持GET/POST/PUT方法"))
	}
}

// GenerateStoredRequest 存量表排位请求，只携带可选的选项覆盖
type GenerateStoredRequest struct {
	Options *model.PlanOptions `json:"options,omitempty"`
}

// GenerateStored 从数据库中的工区与子团队表生成周排位
func (h *CatalogHandler) GenerateStored(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondError(w, errors.New(errors.CodeInvalidInput, "仅支持POST方法"))
		return
	}

	var req GenerateStoredRequest
	if r.Body != nil {
		// 空请求体合法，使用服务默认选项
		_ = json.NewDecoder(r.Body).Decode(&req)
	}
	opts := h.defaultOptions
	if req.Options != nil {
		opts = *req.Options
	}

	bays, err := h.bayRepo.List(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	subteams, err := h.subteamRepo.List(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}

	ctx := r.Context()
	if h.solveTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.solveTimeout)
		defer cancel()
	}

	plan, err := h.planner.Plan(ctx, bays, subteams, opts)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, GenerateResponse{Success: true, Plan: plan})
}
