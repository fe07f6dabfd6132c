package model

import (
	"testing"
)

func TestParseShift(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		want    Interval
		wantErr bool
	}{
		{"普通日班", "09:00-17:00", Interval{540, 1020}, false},
		{"跨午夜夜班", "22:00-07:00", Interval{1320, 420}, false},
		{"午夜收尾归一化", "16:00-24:00", Interval{960, 0}, false},
		{"带空白", " 08:30-12:15 ", Interval{510, 735}, false},
		{"缺少连字符", "09:00", Interval{}, true},
		{"小时越界", "25:00-17:00", Interval{}, true},
		{"分钟越界", "09:60-17:00", Interval{}, true},
		{"24点带分钟", "24:30-08:00", Interval{}, true},
		{"非数字", "ab:cd-17:00", Interval{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseShift(tt.text)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseShift(%q) err = %v, wantErr %v", tt.text, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseShift(%q) = %+v, expected %+v", tt.text, got, tt.want)
			}
		})
	}
}

func TestInterval_DurationMinutes(t *testing.T) {
	tests := []struct {
		name     string
		iv       Interval
		expected int
	}{
		{"8小时日班", Interval{540, 1020}, 480},
		{"跨午夜9小时", Interval{1320, 420}, 540},
		{"整天到午夜", Interval{0, 0}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.iv.DurationMinutes(); got != tt.expected {
				t.Errorf("DurationMinutes() = %v, expected %v", got, tt.expected)
			}
		})
	}
}

func TestInterval_IsNight(t *testing.T) {
	const cutoffStart, cutoffEnd = 18 * 60, 22 * 60

	tests := []struct {
		name     string
		shift    string
		expected bool
	}{
		{"普通日班", "09:00-17:00", false},
		{"跨午夜班", "22:00-07:00", true},
		{"起点落在夜间窗口", "19:00-23:00", true},
		{"终点超出夜间截止", "14:00-23:00", true},
		{"恰好在截止点收尾", "14:00-22:00", false},
		{"恰好在起点开班", "18:00-21:00", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			iv, err := ParseShift(tt.shift)
			if err != nil {
				t.Fatalf("ParseShift(%q) 失败: %v", tt.shift, err)
			}
			if got := iv.IsNight(cutoffStart, cutoffEnd); got != tt.expected {
				t.Errorf("IsNight(%q) = %v, expected %v", tt.shift, got, tt.expected)
			}
		})
	}
}

func TestInterval_OverlapsRange(t *testing.T) {
	tests := []struct {
		name       string
		shift      string
		start, end int
		expected   bool
	}{
		{"日班命中上午槽", "09:00-17:00", 9 * 60, 10 * 60, true},
		{"日班未到清晨槽", "09:00-17:00", 6 * 60, 7 * 60, false},
		{"日班收尾槽不含端点", "09:00-17:00", 17 * 60, 18 * 60, false},
		{"跨午夜命中深夜槽", "22:00-07:00", 23 * 60, 24 * 60, true},
		{"跨午夜命中清晨槽", "22:00-07:00", 6 * 60, 7 * 60, true},
		{"跨午夜避开下午槽", "22:00-07:00", 14 * 60, 15 * 60, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			iv, err := ParseShift(tt.shift)
			if err != nil {
				t.Fatalf("ParseShift(%q) 失败: %v", tt.shift, err)
			}
			if got := iv.OverlapsRange(tt.start, tt.end); got != tt.expected {
				t.Errorf("OverlapsRange(%d, %d) = %v, expected %v", tt.start, tt.end, got, tt.expected)
			}
		})
	}
}

func TestInterval_String(t *testing.T) {
	tests := []struct {
		name     string
		iv       Interval
		expected string
	}{
		{"日班", Interval{540, 1020}, "09:00-17:00"},
		{"跨午夜", Interval{1320, 420}, "22:00-07:00"},
		{"午夜", Interval{960, 0}, "16:00-00:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.iv.String(); got != tt.expected {
				t.Errorf("String() = %q, expected %q", got, tt.expected)
			}
		})
	}
}

func TestParseShift_RoundTrip(t *testing.T) {
	texts := []string{"09:00-17:00", "22:00-07:00", "00:00-08:00", "13:45-21:15"}
	for _, text := range texts {
		iv, err := ParseShift(text)
		if err != nil {
			t.Fatalf("ParseShift(%q) 失败: %v", text, err)
		}
		if got := iv.String(); got != text {
			t.Errorf("往返后 = %q, expected %q", got, text)
		}
	}
}
