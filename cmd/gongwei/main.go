// GongWei 工位排布引擎命令行工具
// 面向离线使用：从 YAML 实例文件生成周排位，不依赖数据库与HTTP服务

package main

import (
	"os"

	"github.com/gongwei/gongwei/cmd/gongwei/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
