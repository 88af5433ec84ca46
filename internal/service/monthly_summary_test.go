package service

import (
	"testing"
	"time"

	"github.com/Azamarusuisan/VRshift/internal/model"
)

var tokyo = time.FixedZone("JST", 9*3600)

func jst(day, hour, min int) time.Time {
	return time.Date(2026, 3, day, hour, min, 0, 0, tokyo)
}

func ev(typ string, day, hour, min int) model.AttendanceEvent {
	return model.AttendanceEvent{Type: typ, Timestamp: jst(day, hour, min)}
}

// ── 汇总计算测试 ──

// 9:00 出勤、12:00–13:00 休息、18:00 退勤 → 工作 480 分、休息 60 分
func TestSummarizeMonth_FullDay(t *testing.T) {
	events := []model.AttendanceEvent{
		ev(model.EventClockIn, 2, 9, 0),
		ev(model.EventBreakStart, 2, 12, 0),
		ev(model.EventBreakEnd, 2, 13, 0),
		ev(model.EventClockOut, 2, 18, 0),
	}

	days := summarizeMonth(events, nil, tokyo)
	if len(days) != 1 {
		t.Fatalf("期望1天，实际=%d", len(days))
	}
	d := days[0]
	if d.Date != "2026-03-02" {
		t.Errorf("期望Date=2026-03-02，实际=%s", d.Date)
	}
	if d.WorkMinutes != 480 {
		t.Errorf("期望WorkMinutes=480，实际=%d", d.WorkMinutes)
	}
	if d.BreakMinutes != 60 {
		t.Errorf("期望BreakMinutes=60，实际=%d", d.BreakMinutes)
	}
}

// 未退勤的工作区间与未结束的休息区间都贡献 0 分钟
func TestSummarizeMonth_UnterminatedIntervals(t *testing.T) {
	events := []model.AttendanceEvent{
		ev(model.EventClockIn, 3, 9, 0),
		ev(model.EventBreakStart, 3, 12, 0),
	}

	days := summarizeMonth(events, nil, tokyo)
	if len(days) != 1 {
		t.Fatalf("期望1天，实际=%d", len(days))
	}
	if days[0].WorkMinutes != 0 {
		t.Errorf("未退勤应WorkMinutes=0，实际=%d", days[0].WorkMinutes)
	}
	if days[0].BreakMinutes != 0 {
		t.Errorf("未结束休息应BreakMinutes=0，实际=%d", days[0].BreakMinutes)
	}
}

// 无起点的 break_end / clock_out 静默忽略，不报错不计负
func TestSummarizeMonth_OrphanEvents(t *testing.T) {
	events := []model.AttendanceEvent{
		ev(model.EventBreakEnd, 4, 10, 0),
		ev(model.EventClockOut, 4, 11, 0),
	}

	days := summarizeMonth(events, nil, tokyo)
	if len(days) != 1 {
		t.Fatalf("期望1天，实际=%d", len(days))
	}
	if days[0].WorkMinutes != 0 || days[0].BreakMinutes != 0 {
		t.Errorf("孤儿事件应汇总为0/0，实际=%d/%d", days[0].WorkMinutes, days[0].BreakMinutes)
	}
}

// 只有预约、没有打刻的日期也要出现在结果里
func TestSummarizeMonth_CountOnlyDate(t *testing.T) {
	counts := []model.DailyAppointment{
		{UserID: "u1", Date: time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC), Count: 5},
	}

	days := summarizeMonth(nil, counts, tokyo)
	if len(days) != 1 {
		t.Fatalf("期望1天，实际=%d", len(days))
	}
	if days[0].Date != "2026-03-10" {
		t.Errorf("期望Date=2026-03-10，实际=%s", days[0].Date)
	}
	if days[0].Appointments != 5 {
		t.Errorf("期望Appointments=5，实际=%d", days[0].Appointments)
	}
	if days[0].WorkMinutes != 0 {
		t.Errorf("无打刻日期应WorkMinutes=0，实际=%d", days[0].WorkMinutes)
	}
}

// 多日汇总：输出按日期降序，预约数归并到对应日期
func TestSummarizeMonth_MultiDayDescending(t *testing.T) {
	events := []model.AttendanceEvent{
		ev(model.EventClockIn, 2, 9, 0),
		ev(model.EventClockOut, 2, 17, 0),
		ev(model.EventClockIn, 5, 10, 0),
		ev(model.EventClockOut, 5, 12, 30),
	}
	counts := []model.DailyAppointment{
		{UserID: "u1", Date: time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC), Count: 3},
	}

	days := summarizeMonth(events, counts, tokyo)
	if len(days) != 2 {
		t.Fatalf("期望2天，实际=%d", len(days))
	}
	if days[0].Date != "2026-03-05" || days[1].Date != "2026-03-02" {
		t.Errorf("期望日期降序 [2026-03-05 2026-03-02]，实际=[%s %s]", days[0].Date, days[1].Date)
	}
	if days[0].WorkMinutes != 150 {
		t.Errorf("期望3月5日WorkMinutes=150，实际=%d", days[0].WorkMinutes)
	}
	if days[0].Appointments != 3 {
		t.Errorf("期望3月5日Appointments=3，实际=%d", days[0].Appointments)
	}
	if days[1].Appointments != 0 {
		t.Errorf("期望3月2日Appointments=0，实际=%d", days[1].Appointments)
	}
}

// 汇总对事件输入顺序不敏感：打乱后结果一致
func TestSummarizeMonth_OrderInsensitive(t *testing.T) {
	ordered := []model.AttendanceEvent{
		ev(model.EventClockIn, 6, 9, 0),
		ev(model.EventBreakStart, 6, 12, 0),
		ev(model.EventBreakEnd, 6, 12, 45),
		ev(model.EventClockOut, 6, 18, 0),
	}
	shuffled := []model.AttendanceEvent{ordered[3], ordered[1], ordered[0], ordered[2]}

	a := summarizeMonth(ordered, nil, tokyo)
	b := summarizeMonth(shuffled, nil, tokyo)
	if len(a) != 1 || len(b) != 1 {
		t.Fatalf("期望各1天，实际=%d/%d", len(a), len(b))
	}
	if a[0] != b[0] {
		t.Errorf("打乱输入后汇总应一致: %+v vs %+v", a[0], b[0])
	}
}

// 跨午夜（以 loc 切日）：23:00 出勤、次日 1:00 退勤分属两日，均为未闭合 → 0 分钟
func TestSummarizeMonth_MidnightSplit(t *testing.T) {
	events := []model.AttendanceEvent{
		{Type: model.EventClockIn, Timestamp: jst(7, 23, 0)},
		{Type: model.EventClockOut, Timestamp: jst(8, 1, 0)},
	}

	days := summarizeMonth(events, nil, tokyo)
	if len(days) != 2 {
		t.Fatalf("跨日事件应分属2天，实际=%d", len(days))
	}
	for _, d := range days {
		if d.WorkMinutes != 0 {
			t.Errorf("%s: 跨日未闭合区间应WorkMinutes=0，实际=%d", d.Date, d.WorkMinutes)
		}
	}
}
