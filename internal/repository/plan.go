// Package repository 提供数据访问层
package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/gongwei/gongwei/internal/database"
	"github.com/gongwei/gongwei/pkg/errors"
	"github.com/gongwei/gongwei/pkg/model"
)

// PlanRepository 排位方案仓储，方案本体与诊断指标以 JSONB 存储
type PlanRepository struct {
	db *database.DB
}

// NewPlanRepository 创建方案仓储
func NewPlanRepository(db *database.DB) *PlanRepository {
	return &PlanRepository{db: db}
}

// PlanSummary 方案列表条目
type PlanSummary struct {
	ID          uuid.UUID         `json:"id"`
	CreatedAt   time.Time         `json:"created_at"`
	SolverName  string            `json:"solver"`
	Diagnostics model.Diagnostics `json:"diagnostics"`
}

// Save 持久化一份已求解的方案
func (r *PlanRepository) Save(ctx context.Context, plan *model.Plan) error {
	body, err := json.Marshal(plan)
	if err != nil {
		return errors.Wrap(err, errors.CodeInternal, "序列化方案失败")
	}
	diag, err := json.Marshal(plan.Diagnostics)
	if err != nil {
		return errors.Wrap(err, errors.CodeInternal, "序列化诊断指标失败")
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO plans (id, created_at, solver, diagnostics, body) VALUES ($1, $2, $3, $4, $5)`,
		plan.ID, plan.CreatedAt, plan.SolverName, diag, body)
	if err != nil {
		return errors.Wrap(err, errors.CodeDatabaseError, "写入方案失败")
	}
	return nil
}

// GetByID 按 ID 读取完整方案
func (r *PlanRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Plan, error) {
	var body []byte
	err := r.db.QueryRowContext(ctx,
		`SELECT body FROM plans WHERE id = $1`, id).Scan(&body)
	if err == sql.ErrNoRows {
		return nil, errors.ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeDatabaseError, "查询方案失败")
	}

	var plan model.Plan
	if err := json.Unmarshal(body, &plan); err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "反序列化方案失败")
	}
	return &plan, nil
}

// ListRecent 按时间倒序列出最近的方案
func (r *PlanRepository) ListRecent(ctx context.Context, limit int) ([]PlanSummary, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, created_at, solver, diagnostics FROM plans ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeDatabaseError, "查询方案列表失败")
	}
	defer rows.Close()

	var out []PlanSummary
	for rows.Next() {
		var s PlanSummary
		var diag []byte
		if err := rows.Scan(&s.ID, &s.CreatedAt, &s.SolverName, &diag); err != nil {
			return nil, errors.Wrap(err, errors.CodeDatabaseError, "读取方案行失败")
		}
		if err := json.Unmarshal(diag, &s.Diagnostics); err != nil {
			return nil, errors.Wrap(err, errors.CodeInternal, "反序列化诊断指标失败")
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, errors.CodeDatabaseError, "遍历方案列表失败")
	}
	return out, nil
}
