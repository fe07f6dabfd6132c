// Package repository 提供数据访问层
package repository

import (
	"context"

	"github.com/gongwei/gongwei/internal/database"
	"github.com/gongwei/gongwei/pkg/errors"
	"github.com/gongwei/gongwei/pkg/model"
)

// SubTeamRepository 子团队仓储
type SubTeamRepository struct {
	db *database.DB
}

// NewSubTeamRepository 创建子团队仓储
func NewSubTeamRepository(db *database.DB) *SubTeamRepository {
	return &SubTeamRepository{db: db}
}

// List 加载全部子团队，班次文本在边界处解析，解析失败即刻终止
func (r *SubTeamRepository) List(ctx context.Context) ([]model.SubTeam, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT team, subteam, shift, size FROM subteams ORDER BY team, subteam`)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeDatabaseError, "查询子团队表失败")
	}
	defer rows.Close()

	var subteams []model.SubTeam
	for rows.Next() {
		var st model.SubTeam
		if err := rows.Scan(&st.Team, &st.Name, &st.ShiftText, &st.Size); err != nil {
			return nil, errors.Wrap(err, errors.CodeDatabaseError, "读取子团队行失败")
		}
		iv, err := model.ParseShift(st.ShiftText)
		if err != nil {
			return nil, err
		}
		st.Shift = iv
		subteams = append(subteams, st)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, errors.CodeDatabaseError, "遍历子团队表失败")
	}
	return subteams, nil
}

// Upsert 写入或更新子团队
func (r *SubTeamRepository) Upsert(ctx context.Context, st model.SubTeam) error {
	shiftText := st.ShiftText
	if shiftText == "" {
		shiftText = st.Shift.String()
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO subteams (team, subteam, shift, size) VALUES ($1, $2, $3, $4)
		 ON CONFLICT (team, subteam) DO UPDATE SET shift = EXCLUDED.shift, size = EXCLUDED.size`,
		st.Team, st.Name, shiftText, st.Size)
	if err != nil {
		return errors.Wrap(err, errors.CodeDatabaseError, "写入子团队失败")
	}
	return nil
}

// Delete 删除子团队
func (r *SubTeamRepository) Delete(ctx context.Context, team, name string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM subteams WHERE team = $1 AND subteam = $2`, team, name)
	if err != nil {
		return errors.Wrap(err, errors.CodeDatabaseError, "删除子团队失败")
	}
	return nil
}
