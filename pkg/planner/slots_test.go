package planner

import (
	"testing"

	"github.com/gongwei/gongwei/pkg/errors"
	"github.com/gongwei/gongwei/pkg/model"
)

func TestBuildSlots(t *testing.T) {
	tests := []struct {
		name       string
		resolution int
		wantCount  int
		wantErr    bool
	}{
		{"60分钟粒度", 60, 24, false},
		{"30分钟粒度", 30, 48, false},
		{"15分钟粒度", 15, 96, false},
		{"整天单槽", 1440, 1, false},
		{"不整除", 7 * 60, 0, true},
		{"零粒度", 0, 0, true},
		{"负粒度", -30, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slots, err := BuildSlots(tt.resolution)
			if (err != nil) != tt.wantErr {
				t.Fatalf("BuildSlots(%d) err = %v, wantErr %v", tt.resolution, err, tt.wantErr)
			}
			if tt.wantErr {
				if errors.GetCode(err) != errors.CodeInvalidInput {
					t.Errorf("错误码 = %q, expected %q", errors.GetCode(err), errors.CodeInvalidInput)
				}
				return
			}
			if len(slots) != tt.wantCount {
				t.Fatalf("槽数 = %d, expected %d", len(slots), tt.wantCount)
			}

			// 网格应无缝覆盖整天
			for i, slot := range slots {
				if slot.Index != i {
					t.Errorf("槽 %d 索引错位: %d", i, slot.Index)
				}
				if slot.StartMin != i*tt.resolution || slot.EndMin != (i+1)*tt.resolution {
					t.Errorf("槽 %d 区间 [%d,%d) 不符", i, slot.StartMin, slot.EndMin)
				}
			}
			if last := slots[len(slots)-1]; last.EndMin != model.MinutesPerDay {
				t.Errorf("末槽终点 = %d, expected %d", last.EndMin, model.MinutesPerDay)
			}
		})
	}
}

func TestSlotOverlaps(t *testing.T) {
	day := model.Interval{StartMin: 9 * 60, EndMin: 17 * 60}
	night := model.Interval{StartMin: 22 * 60, EndMin: 7 * 60}

	slots, err := BuildSlots(60)
	if err != nil {
		t.Fatalf("BuildSlots 失败: %v", err)
	}

	dayCount, nightCount := 0, 0
	for _, slot := range slots {
		if SlotOverlaps(slot, day) {
			dayCount++
		}
		if SlotOverlaps(slot, night) {
			nightCount++
		}
	}
	// 日班覆盖 9..17 共 8 槽；夜班覆盖 22,23 和 0..6 共 9 槽
	if dayCount != 8 {
		t.Errorf("日班重叠槽数 = %d, expected 8", dayCount)
	}
	if nightCount != 9 {
		t.Errorf("夜班重叠槽数 = %d, expected 9", nightCount)
	}
}
