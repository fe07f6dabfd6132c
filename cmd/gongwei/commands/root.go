// Package commands 定义命令行子命令
package commands

import (
	"github.com/spf13/cobra"

	"github.com/gongwei/gongwei/pkg/logger"
)

var logLevel string

var rootCmd = &cobra.Command{
	Use:   "gongwei",
	Short: "GongWei 工位排布引擎命令行工具",
	Long: `从 YAML 实例文件出发的离线周排位工具：
拆分超容子团队、构造混合整数模型、按优先级权重求解并输出周排位表。`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.Init(logger.Config{Level: logLevel, Format: "console"})
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "日志级别 (debug/info/warn/error)")
	rootCmd.AddCommand(planCmd)
	rootCmd.AddCommand(weightsCmd)
}

// Execute 运行根命令
func Execute() error {
	return rootCmd.Execute()
}
