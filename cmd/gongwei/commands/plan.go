// Package commands 定义命令行子命令
package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/gongwei/gongwei/pkg/mip"
	"github.com/gongwei/gongwei/pkg/model"
	"github.com/gongwei/gongwei/pkg/planner"
)

var (
	planFile       string
	planOutput     string
	planTimeout    time.Duration
	planNodeBudget int
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "从实例文件生成周排位",
	RunE: func(cmd *cobra.Command, args []string) error {
		bays, subteams, opts, err := loadInstance(planFile)
		if err != nil {
			return err
		}

		solver := mip.NewBranchBound()
		solver.SetNodeBudget(planNodeBudget)

		ctx := context.Background()
		if planTimeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, planTimeout)
			defer cancel()
		}

		plan, err := planner.New(solver).Plan(ctx, bays, subteams, opts)
		if err != nil {
			return err
		}

		if planOutput != "" {
			data, err := json.MarshalIndent(plan, "", "  ")
			if err != nil {
				return err
			}
			if err := os.WriteFile(planOutput, data, 0644); err != nil {
				return fmt.Errorf("写入结果文件失败: %w", err)
			}
			fmt.Printf("方案已写入 %s\n", planOutput)
			return nil
		}

		fmt.Print(renderPlan(plan))
		return nil
	},
}

func init() {
	planCmd.Flags().StringVarP(&planFile, "file", "f", "instance.yaml", "实例文件路径")
	planCmd.Flags().StringVarP(&planOutput, "output", "o", "", "JSON 输出路径，缺省打印周排位表")
	planCmd.Flags().DurationVar(&planTimeout, "timeout", 60*time.Second, "求解超时")
	planCmd.Flags().IntVar(&planNodeBudget, "node-budget", 5_000_000, "分支定界节点预算")
}

// renderPlan 渲染人可读的周排位表
func renderPlan(plan *model.Plan) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "周排位方案 %s（求解器 %s，耗时 %s）\n\n", plan.ID, plan.SolverName, plan.Duration.Round(time.Millisecond))

	fmt.Fprintf(&sb, "%-24s", "微组")
	for _, day := range model.DayNames {
		fmt.Fprintf(&sb, "%-18s", day)
	}
	sb.WriteString("\n")

	for _, mp := range plan.Micros {
		fmt.Fprintf(&sb, "%-24s", fmt.Sprintf("%s(%d)", mp.Micro.Key(), mp.Micro.Size))
		for d := 0; d < model.DaysPerWeek; d++ {
			sb.WriteString(fmt.Sprintf("%-18s", renderDay(mp.Days[d])))
		}
		sb.WriteString("\n")
	}

	diag := plan.Diagnostics
	fmt.Fprintf(&sb, "\n缺勤天数 %d | 拆组天数 %d | 夜间工区天数 %d | 借用次数 %d | 目标值 %.4f\n",
		diag.MissedDays, diag.SplitDays, diag.NightBays, diag.BorrowEvents, diag.Objective)
	return sb.String()
}

// renderDay 渲染单日落位：远程为 "-"，否则列出 工区:座位
func renderDay(dp model.DayPlacement) string {
	if dp.Remote {
		return "-"
	}
	parts := make([]string, 0, len(dp.Bays))
	for _, bs := range dp.Bays {
		parts = append(parts, fmt.Sprintf("%s:%d", bs.BayID, bs.Seats))
	}
	return strings.Join(parts, "+")
}
