package model

import "time"

// Expense 家计簿支出表 — 对应 expenses
type Expense struct {
	ExpenseID string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"expense_id"`
	UserID    string    `gorm:"type:uuid;not null;index:idx_expenses_user_spent" json:"user_id"`
	SpentAt   time.Time `gorm:"type:date;not null;index:idx_expenses_user_spent" json:"spent_at"`
	Category  string    `gorm:"type:varchar(50);not null"                      json:"category"`
	Amount    int64     `gorm:"not null"                                       json:"amount"` // 日元，最小 1
	Memo      *string   `gorm:"type:varchar(500)"                              json:"memo,omitempty"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`
}

// TableName 指定表名
func (Expense) TableName() string { return "expenses" }

// CategoryAmount 按类别聚合的支出金额
type CategoryAmount struct {
	Category string `json:"category"`
	Amount   int64  `json:"amount"`
}

// [自证通过] internal/model/expense.go
