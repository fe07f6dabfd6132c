package commands

import (
	"os"
	"path/filepath"
	"testing"
)

func writeInstance(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "instance.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("写入实例文件失败: %v", err)
	}
	return path
}

func TestLoadInstance(t *testing.T) {
	path := writeInstance(t, `
bays:
  - team: checkout
    bay_id: A1
    capacity: 12
  - team: search
    bay_id: B1
    capacity: 30
subteams:
  - team: checkout
    subteam: web
    shift: "09:00-17:00"
    size: 8
  - team: search
    subteam: rank
    shift: "22:00-07:00"
    size: 20
options:
  min_days_required: 2
  soft_min_days: true
  slot_minutes: 30
  priority_mode: dominance
  night_cutoff_start: 1080
  night_cutoff_end: 1320
`)

	bays, subteams, opts, err := loadInstance(path)
	if err != nil {
		t.Fatalf("loadInstance() 失败: %v", err)
	}
	if len(bays) != 2 || len(subteams) != 2 {
		t.Fatalf("工区/子团队数 = %d/%d, expected 2/2", len(bays), len(subteams))
	}
	if subteams[1].Shift.WrapsMidnight() != true {
		t.Error("rank 的班次应解析为跨午夜")
	}
	if subteams[0].ShiftText != "09:00-17:00" {
		t.Errorf("原始班次文本 = %q", subteams[0].ShiftText)
	}
	if opts.MinDaysRequired != 2 || opts.SlotMinutes != 30 {
		t.Errorf("选项未按文件覆盖: %+v", opts)
	}
}

func TestLoadInstance_DefaultOptions(t *testing.T) {
	path := writeInstance(t, `
bays:
  - team: t
    bay_id: A
    capacity: 4
subteams:
  - team: t
    subteam: x
    shift: "09:00-17:00"
    size: 2
`)

	_, _, opts, err := loadInstance(path)
	if err != nil {
		t.Fatalf("loadInstance() 失败: %v", err)
	}
	if opts.MinDaysRequired != 3 {
		t.Errorf("缺省选项 MinDaysRequired = %d, expected 3", opts.MinDaysRequired)
	}
}

func TestLoadInstance_Errors(t *testing.T) {
	if _, _, _, err := loadInstance(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("文件缺失应返回错误")
	}

	bad := writeInstance(t, "bays: [not valid")
	if _, _, _, err := loadInstance(bad); err == nil {
		t.Error("YAML 语法错误应返回错误")
	}

	badShift := writeInstance(t, `
bays:
  - team: t
    bay_id: A
    capacity: 4
subteams:
  - team: t
    subteam: x
    shift: "morning"
    size: 2
`)
	if _, _, _, err := loadInstance(badShift); err == nil {
		t.Error("非法班次文本应返回错误")
	}
}
