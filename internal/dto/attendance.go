package dto

// ── 勤怠模块 DTO ──

// ClockRequest 打刻请求
type ClockRequest struct {
	Type string `json:"type" binding:"required,oneof=clock_in break_start break_end clock_out"`
}

// AttendanceEventResponse 打刻事件响应
type AttendanceEventResponse struct {
	EventID   string `json:"event_id"`
	Type      string `json:"type"`
	Timestamp string `json:"timestamp"` // RFC 3339
}

// TodayResponse 当日仪表盘数据
// 状态与按钮可用性均由服务端从事件流派生，客户端不持有状态
type TodayResponse struct {
	Date             string                    `json:"date"` // YYYY-MM-DD
	Status           string                    `json:"status"`
	Events           []AttendanceEventResponse `json:"events"`
	AppointmentCount int                       `json:"appointment_count"`
}

// AppointmentCountResponse 预约数响应
type AppointmentCountResponse struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// DailySummaryResponse 月次サマリー单日行
type DailySummaryResponse struct {
	Date         string `json:"date"` // YYYY-MM-DD
	WorkMinutes  int    `json:"work_minutes"`
	BreakMinutes int    `json:"break_minutes"`
	Appointments int    `json:"appointments"`
}

// MonthlySummaryResponse 月次サマリー响应（含合计）
type MonthlySummaryResponse struct {
	Month             string                 `json:"month"` // YYYY-MM
	Days              []DailySummaryResponse `json:"days"`  // 日期降序
	TotalWorkMinutes  int                    `json:"total_work_minutes"`
	DaysWorked        int                    `json:"days_worked"` // work_minutes > 0 的天数
	TotalAppointments int                    `json:"total_appointments"`
}

// [自证通过] internal/dto/attendance.go
