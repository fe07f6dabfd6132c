// Package repository 提供数据访问层
// 工区与子团队表是排位核心的外部输入，核心本身从不做 I/O：
// 仓储在边界处把行集合加载为内存中的不可变切片再交给流水线
package repository

import (
	"context"

	"github.com/gongwei/gongwei/internal/database"
	"github.com/gongwei/gongwei/pkg/errors"
	"github.com/gongwei/gongwei/pkg/model"
)

// BayRepository 工区仓储
type BayRepository struct {
	db *database.DB
}

// NewBayRepository 创建工区仓储
func NewBayRepository(db *database.DB) *BayRepository {
	return &BayRepository{db: db}
}

// List 加载全部工区
func (r *BayRepository) List(ctx context.Context) ([]model.Bay, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT team, bay_id, capacity FROM bays ORDER BY team, bay_id`)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeDatabaseError, "查询工区表失败")
	}
	defer rows.Close()

	var bays []model.Bay
	for rows.Next() {
		var b model.Bay
		if err := rows.Scan(&b.Team, &b.BayID, &b.Capacity); err != nil {
			return nil, errors.Wrap(err, errors.CodeDatabaseError, "读取工区行失败")
		}
		bays = append(bays, b)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, errors.CodeDatabaseError, "遍历工区表失败")
	}
	return bays, nil
}

// Upsert 写入或更新工区
func (r *BayRepository) Upsert(ctx context.Context, bay model.Bay) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO bays (team, bay_id, capacity) VALUES ($1, $2, $3)
		 ON CONFLICT (team, bay_id) DO UPDATE SET capacity = EXCLUDED.capacity`,
		bay.Team, bay.BayID, bay.Capacity)
	if err != nil {
		return errors.Wrap(err, errors.CodeDatabaseError, "写入工区失败")
	}
	return nil
}

// Delete 删除工区
func (r *BayRepository) Delete(ctx context.Context, team, bayID string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM bays WHERE team = $1 AND bay_id = $2`, team, bayID)
	if err != nil {
		return errors.Wrap(err, errors.CodeDatabaseError, "删除工区失败")
	}
	return nil
}
