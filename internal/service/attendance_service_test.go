package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/Azamarusuisan/VRshift/internal/model"
)

// ── 测试辅助 ──

func setupTestAttendanceService(now time.Time) (AttendanceService, *testRepos) {
	repos := newTestRepos()
	repos.seedUser("staff-001", model.RoleStaff, nil)
	svc := NewAttendanceService(repos.toRepository(), tokyo, zap.NewNop())
	svc.(*attendanceService).now = func() time.Time { return now }
	return svc, repos
}

// ── Clock 测试 ──

func TestAttendanceService_Clock_FullDay(t *testing.T) {
	svc, _ := setupTestAttendanceService(jst(2, 9, 0))
	ctx := context.Background()

	for _, typ := range []string{model.EventClockIn, model.EventBreakStart, model.EventBreakEnd, model.EventClockOut} {
		result, err := svc.Clock(ctx, "staff-001", typ)
		if err != nil {
			t.Fatalf("打刻%s应成功: %v", typ, err)
		}
		if result.Type != typ {
			t.Errorf("期望Type=%s，实际=%s", typ, result.Type)
		}
		if result.EventID == "" {
			t.Error("打刻响应应包含EventID")
		}
	}
}

func TestAttendanceService_Clock_IllegalTransition(t *testing.T) {
	svc, _ := setupTestAttendanceService(jst(2, 9, 0))
	ctx := context.Background()

	// 未出勤直接开始休息
	if _, err := svc.Clock(ctx, "staff-001", model.EventBreakStart); !errors.Is(err, ErrIllegalTransition) {
		t.Errorf("未出勤开始休息应返回ErrIllegalTransition，实际=%v", err)
	}

	// 重复出勤
	if _, err := svc.Clock(ctx, "staff-001", model.EventClockIn); err != nil {
		t.Fatalf("首次出勤应成功: %v", err)
	}
	if _, err := svc.Clock(ctx, "staff-001", model.EventClockIn); !errors.Is(err, ErrIllegalTransition) {
		t.Errorf("重复出勤应返回ErrIllegalTransition，实际=%v", err)
	}
}

func TestAttendanceService_Clock_AfterClockOut(t *testing.T) {
	svc, _ := setupTestAttendanceService(jst(2, 9, 0))
	ctx := context.Background()

	svc.Clock(ctx, "staff-001", model.EventClockIn)
	svc.Clock(ctx, "staff-001", model.EventClockOut)

	// 退勤后任何打刻都被拒绝
	for _, typ := range []string{model.EventClockIn, model.EventBreakStart, model.EventBreakEnd, model.EventClockOut} {
		if _, err := svc.Clock(ctx, "staff-001", typ); !errors.Is(err, ErrIllegalTransition) {
			t.Errorf("退勤后打刻%s应返回ErrIllegalTransition，实际=%v", typ, err)
		}
	}
}

func TestAttendanceService_Clock_UserNotFound(t *testing.T) {
	svc, _ := setupTestAttendanceService(jst(2, 9, 0))

	if _, err := svc.Clock(context.Background(), "ghost", model.EventClockIn); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("不存在用户打刻应返回ErrUserNotFound，实际=%v", err)
	}
}

// ── Today 测试 ──

func TestAttendanceService_Today_Empty(t *testing.T) {
	svc, _ := setupTestAttendanceService(jst(2, 9, 0))

	result, err := svc.Today(context.Background(), "staff-001")
	if err != nil {
		t.Fatalf("Today 应成功: %v", err)
	}
	if result.Status != StatusNotClockedIn {
		t.Errorf("期望Status=%s，实际=%s", StatusNotClockedIn, result.Status)
	}
	if result.Date != "2026-03-02" {
		t.Errorf("期望Date=2026-03-02，实际=%s", result.Date)
	}
	if len(result.Events) != 0 {
		t.Errorf("期望0条事件，实际=%d", len(result.Events))
	}
	if result.AppointmentCount != 0 {
		t.Errorf("期望AppointmentCount=0，实际=%d", result.AppointmentCount)
	}
}

func TestAttendanceService_Today_DerivesStatusAndCount(t *testing.T) {
	svc, _ := setupTestAttendanceService(jst(2, 9, 0))
	ctx := context.Background()

	svc.Clock(ctx, "staff-001", model.EventClockIn)
	svc.Clock(ctx, "staff-001", model.EventBreakStart)
	svc.IncrementAppointment(ctx, "staff-001")
	svc.IncrementAppointment(ctx, "staff-001")

	result, err := svc.Today(ctx, "staff-001")
	if err != nil {
		t.Fatalf("Today 应成功: %v", err)
	}
	if result.Status != StatusOnBreak {
		t.Errorf("期望Status=%s，实际=%s", StatusOnBreak, result.Status)
	}
	if len(result.Events) != 2 {
		t.Errorf("期望2条事件，实际=%d", len(result.Events))
	}
	if result.AppointmentCount != 2 {
		t.Errorf("期望AppointmentCount=2，实际=%d", result.AppointmentCount)
	}
}

// ── IncrementAppointment 测试 ──

func TestAttendanceService_IncrementAppointment_Gate(t *testing.T) {
	svc, _ := setupTestAttendanceService(jst(2, 9, 0))
	ctx := context.Background()

	// 未出勤时拒绝
	if _, err := svc.IncrementAppointment(ctx, "staff-001"); !errors.Is(err, ErrNotWorking) {
		t.Errorf("未出勤登记预约应返回ErrNotWorking，实际=%v", err)
	}

	svc.Clock(ctx, "staff-001", model.EventClockIn)
	result, err := svc.IncrementAppointment(ctx, "staff-001")
	if err != nil {
		t.Fatalf("工作中登记预约应成功: %v", err)
	}
	if result.Count != 1 {
		t.Errorf("期望Count=1，实际=%d", result.Count)
	}

	result, _ = svc.IncrementAppointment(ctx, "staff-001")
	if result.Count != 2 {
		t.Errorf("期望Count=2，实际=%d", result.Count)
	}

	// 退勤后拒绝，已有计数不受影响
	svc.Clock(ctx, "staff-001", model.EventClockOut)
	if _, err := svc.IncrementAppointment(ctx, "staff-001"); !errors.Is(err, ErrNotWorking) {
		t.Errorf("退勤后登记预约应返回ErrNotWorking，实际=%v", err)
	}
}

// ── MonthlySummary 测试 ──

func TestAttendanceService_MonthlySummary(t *testing.T) {
	svc, repos := setupTestAttendanceService(jst(2, 9, 0))
	ctx := context.Background()

	repos.attendance.events = append(repos.attendance.events,
		model.AttendanceEvent{EventID: "e1", UserID: "staff-001", Type: model.EventClockIn, Timestamp: jst(2, 9, 0)},
		model.AttendanceEvent{EventID: "e2", UserID: "staff-001", Type: model.EventClockOut, Timestamp: jst(2, 17, 0)},
		// 别人的事件不应混入
		model.AttendanceEvent{EventID: "e3", UserID: "other", Type: model.EventClockIn, Timestamp: jst(2, 9, 0)},
	)
	repos.appointment.SetCount(ctx, "staff-001", time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), 4)

	result, err := svc.MonthlySummary(ctx, "staff-001", 2026, 3)
	if err != nil {
		t.Fatalf("MonthlySummary 应成功: %v", err)
	}
	if result.Month != "2026-03" {
		t.Errorf("期望Month=2026-03，实际=%s", result.Month)
	}
	if len(result.Days) != 1 {
		t.Fatalf("期望1天，实际=%d", len(result.Days))
	}
	if result.Days[0].WorkMinutes != 480 {
		t.Errorf("期望WorkMinutes=480，实际=%d", result.Days[0].WorkMinutes)
	}
	if result.TotalWorkMinutes != 480 {
		t.Errorf("期望TotalWorkMinutes=480，实际=%d", result.TotalWorkMinutes)
	}
	if result.TotalAppointments != 4 {
		t.Errorf("期望TotalAppointments=4，实际=%d", result.TotalAppointments)
	}
	if result.DaysWorked != 1 {
		t.Errorf("期望DaysWorked=1，实际=%d", result.DaysWorked)
	}
}

func TestAttendanceService_MonthlySummary_InvalidMonth(t *testing.T) {
	svc, _ := setupTestAttendanceService(jst(2, 9, 0))

	for _, tc := range []struct{ year, month int }{{2026, 0}, {2026, 13}, {1999, 5}, {2101, 5}} {
		if _, err := svc.MonthlySummary(context.Background(), "staff-001", tc.year, tc.month); !errors.Is(err, ErrInvalidMonth) {
			t.Errorf("year=%d month=%d应返回ErrInvalidMonth，实际=%v", tc.year, tc.month, err)
		}
	}
}
