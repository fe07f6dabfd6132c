package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gongwei/gongwei/pkg/model"
	"github.com/gongwei/gongwei/pkg/planner"
)

var weightsFile string

var weightsCmd = &cobra.Command{
	Use:   "weights",
	Short: "打印实例的目标权重，不求解",
	RunE: func(cmd *cobra.Command, args []string) error {
		bays, subteams, opts, err := loadInstance(weightsFile)
		if err != nil {
			return err
		}

		micros, _, err := planner.Split(bays, subteams)
		if err != nil {
			return err
		}

		stats := planner.InstanceStats{
			MicroCount:      len(micros),
			BayCount:        len(bays),
			Days:            model.DaysPerWeek,
			MinDaysRequired: opts.MinDaysRequired,
			AllowBorrow:     opts.AllowBorrow,
		}
		w, err := planner.ComputeWeights(stats, opts.PriorityMode)
		if err != nil {
			return err
		}

		out := struct {
			Stats   planner.InstanceStats `json:"stats"`
			Weights planner.Weights       `json:"weights"`
		}{Stats: stats, Weights: w}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(out); err != nil {
			return fmt.Errorf("输出权重失败: %w", err)
		}
		return nil
	},
}

func init() {
	weightsCmd.Flags().StringVarP(&weightsFile, "file", "f", "instance.yaml", "实例文件路径")
}
