package service

import "testing"

// ── 预算上限判定测试 ──

func TestIsOverLimit_Boundary(t *testing.T) {
	cases := []struct {
		name   string
		total  int64
		limit  int64
		expect bool
	}{
		{"远未达上限", 0, 30000, false},
		{"差1日元", 29999, 30000, false},
		{"恰好达上限", 30000, 30000, true},
		{"超过上限", 30001, 30000, true},
	}

	for _, tc := range cases {
		if got := IsOverLimit(tc.total, tc.limit); got != tc.expect {
			t.Errorf("%s: IsOverLimit(%d, %d)期望%v，实际=%v", tc.name, tc.total, tc.limit, tc.expect, got)
		}
	}
}

func TestCanAddExpense_ComplementsIsOverLimit(t *testing.T) {
	for _, total := range []int64{0, 29999, 30000, 30001} {
		if CanAddExpense(total, 30000) == IsOverLimit(total, 30000) {
			t.Errorf("total=%d: CanAddExpense应与IsOverLimit互为反", total)
		}
	}
}
