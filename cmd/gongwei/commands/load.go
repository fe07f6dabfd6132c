// Package commands 定义命令行子命令
package commands

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/gongwei/gongwei/pkg/model"
)

// instanceFile YAML 实例文件结构
type instanceFile struct {
	Bays []struct {
		Team     string `yaml:"team"`
		BayID    string `yaml:"bay_id"`
		Capacity int    `yaml:"capacity"`
	} `yaml:"bays"`
	SubTeams []struct {
		Team    string `yaml:"team"`
		SubTeam string `yaml:"subteam"`
		Shift   string `yaml:"shift"` // HH:MM-HH:MM
		Size    int    `yaml:"size"`
	} `yaml:"subteams"`
	Options *model.PlanOptions `yaml:"options"`
}

// loadInstance 读取实例文件并解析班次文本
func loadInstance(path string) ([]model.Bay, []model.SubTeam, model.PlanOptions, error) {
	opts := model.DefaultPlanOptions()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, opts, fmt.Errorf("读取实例文件失败: %w", err)
	}

	var file instanceFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, nil, opts, fmt.Errorf("解析实例文件失败: %w", err)
	}

	bays := make([]model.Bay, 0, len(file.Bays))
	for _, in := range file.Bays {
		bays = append(bays, model.Bay{Team: in.Team, BayID: in.BayID, Capacity: in.Capacity})
	}

	subteams := make([]model.SubTeam, 0, len(file.SubTeams))
	for _, in := range file.SubTeams {
		iv, err := model.ParseShift(in.Shift)
		if err != nil {
			return nil, nil, opts, err
		}
		subteams = append(subteams, model.SubTeam{
			Team:      in.Team,
			Name:      in.SubTeam,
			Shift:     iv,
			ShiftText: in.Shift,
			Size:      in.Size,
		})
	}

	if file.Options != nil {
		opts = *file.Options
	}
	return bays, subteams, opts, nil
}
