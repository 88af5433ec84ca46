package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"gorm.io/gorm"

	"github.com/Azamarusuisan/VRshift/internal/model"
	"github.com/Azamarusuisan/VRshift/internal/repository"
	pkgerrors "github.com/Azamarusuisan/VRshift/pkg/errors"
)

// ── Mock UserRepository ──

type mockUserRepo struct {
	users map[string]*model.Profile
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.Profile)}
}

func (m *mockUserRepo) Create(_ context.Context, profile *model.Profile) error {
	for _, p := range m.users {
		if p.Email == profile.Email {
			return pkgerrors.ErrConstraintViolation
		}
	}
	if profile.UserID == "" {
		profile.UserID = fmt.Sprintf("user-%d", len(m.users)+1)
	}
	m.users[profile.UserID] = profile
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.Profile, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*model.Profile, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) ListAll(_ context.Context) ([]model.Profile, error) {
	result := make([]model.Profile, 0, len(m.users))
	for _, u := range m.users {
		result = append(result, *u)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].UserID < result[j].UserID })
	return result, nil
}

func (m *mockUserRepo) ListByManager(_ context.Context, managerID string) ([]model.Profile, error) {
	var result []model.Profile
	for _, u := range m.users {
		if u.ManagerID != nil && *u.ManagerID == managerID {
			result = append(result, *u)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].UserID < result[j].UserID })
	return result, nil
}

// ── Mock AttendanceRepository ──

// mockAttendanceRepo 在内存中重现「锁行 → 读最后事件 → guard → 追加」的语义
type mockAttendanceRepo struct {
	users  *mockUserRepo
	events []model.AttendanceEvent
}

func newMockAttendanceRepo(users *mockUserRepo) *mockAttendanceRepo {
	return &mockAttendanceRepo{users: users}
}

func (m *mockAttendanceRepo) ListByRange(_ context.Context, userID string, from, to time.Time) ([]model.AttendanceEvent, error) {
	var result []model.AttendanceEvent
	for _, ev := range m.events {
		if ev.UserID == userID && !ev.Timestamp.Before(from) && ev.Timestamp.Before(to) {
			result = append(result, ev)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Timestamp.Before(result[j].Timestamp) })
	return result, nil
}

func (m *mockAttendanceRepo) AppendEvent(ctx context.Context, event *model.AttendanceEvent, dayStart, dayEnd time.Time, guard repository.TransitionGuard) error {
	if _, ok := m.users.users[event.UserID]; !ok {
		return gorm.ErrRecordNotFound
	}

	dayEvents, _ := m.ListByRange(ctx, event.UserID, dayStart, dayEnd)
	lastType := ""
	if len(dayEvents) > 0 {
		lastType = dayEvents[len(dayEvents)-1].Type
	}
	if err := guard(lastType); err != nil {
		return err
	}

	if event.EventID == "" {
		event.EventID = fmt.Sprintf("event-%d", len(m.events)+1)
	}
	m.events = append(m.events, *event)
	return nil
}

// ── Mock AppointmentRepository ──

type mockAppointmentRepo struct {
	counts map[string]*model.DailyAppointment // key: userID|YYYY-MM-DD
}

func newMockAppointmentRepo() *mockAppointmentRepo {
	return &mockAppointmentRepo{counts: make(map[string]*model.DailyAppointment)}
}

func appointmentKey(userID string, date time.Time) string {
	return userID + "|" + date.Format("2006-01-02")
}

func (m *mockAppointmentRepo) GetByDate(_ context.Context, userID string, date time.Time) (*model.DailyAppointment, error) {
	if rec, ok := m.counts[appointmentKey(userID, date)]; ok {
		return rec, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAppointmentRepo) ListByRange(_ context.Context, userID string, from, to time.Time) ([]model.DailyAppointment, error) {
	var result []model.DailyAppointment
	for _, rec := range m.counts {
		if rec.UserID == userID && !rec.Date.Before(from) && !rec.Date.After(to) {
			result = append(result, *rec)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Date.Before(result[j].Date) })
	return result, nil
}

func (m *mockAppointmentRepo) Increment(_ context.Context, userID string, date time.Time) (*model.DailyAppointment, error) {
	key := appointmentKey(userID, date)
	if rec, ok := m.counts[key]; ok {
		rec.Count++
		return rec, nil
	}
	rec := &model.DailyAppointment{
		AppointmentID: "appt-" + key,
		UserID:        userID,
		Date:          date,
		Count:         1,
	}
	m.counts[key] = rec
	return rec, nil
}

func (m *mockAppointmentRepo) SetCount(_ context.Context, userID string, date time.Time, count int) (*model.DailyAppointment, error) {
	key := appointmentKey(userID, date)
	if rec, ok := m.counts[key]; ok {
		rec.Count = count
		return rec, nil
	}
	rec := &model.DailyAppointment{
		AppointmentID: "appt-" + key,
		UserID:        userID,
		Date:          date,
		Count:         count,
	}
	m.counts[key] = rec
	return rec, nil
}

// ── Mock CorrectionRepository ──

type mockCorrectionRepo struct {
	requests map[string]*model.CorrectionRequest
}

func newMockCorrectionRepo() *mockCorrectionRepo {
	return &mockCorrectionRepo{requests: make(map[string]*model.CorrectionRequest)}
}

func (m *mockCorrectionRepo) Create(_ context.Context, request *model.CorrectionRequest) error {
	if request.RequestID == "" {
		request.RequestID = fmt.Sprintf("req-%d", len(m.requests)+1)
	}
	m.requests[request.RequestID] = request
	return nil
}

func (m *mockCorrectionRepo) GetByID(_ context.Context, id string) (*model.CorrectionRequest, error) {
	if r, ok := m.requests[id]; ok {
		return r, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCorrectionRepo) ListPending(_ context.Context, filterUserIDs []string) ([]model.CorrectionRequest, error) {
	var result []model.CorrectionRequest
	for _, r := range m.requests {
		if r.Status != model.CorrectionStatusPending {
			continue
		}
		if filterUserIDs != nil && !containsString(filterUserIDs, r.UserID) {
			continue
		}
		result = append(result, *r)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].RequestID < result[j].RequestID })
	return result, nil
}

func (m *mockCorrectionRepo) Decide(_ context.Context, id, status, approverID string, at time.Time) error {
	r, ok := m.requests[id]
	if !ok || r.Status != model.CorrectionStatusPending {
		return pkgerrors.ErrAlreadyDecided
	}
	r.Status = status
	r.ApprovedBy = &approverID
	r.ApprovedAt = &at
	return nil
}

func containsString(s []string, v string) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}
	return false
}

// ── Mock ExpenseRepository ──

type mockExpenseRepo struct {
	expenses []model.Expense
}

func newMockExpenseRepo() *mockExpenseRepo {
	return &mockExpenseRepo{}
}

func (m *mockExpenseRepo) Create(_ context.Context, expense *model.Expense) error {
	if expense.ExpenseID == "" {
		expense.ExpenseID = fmt.Sprintf("exp-%d", len(m.expenses)+1)
	}
	m.expenses = append(m.expenses, *expense)
	return nil
}

func (m *mockExpenseRepo) ListByMonth(_ context.Context, userID string, from, to time.Time) ([]model.Expense, error) {
	var result []model.Expense
	for _, e := range m.expenses {
		if e.UserID == userID && !e.SpentAt.Before(from) && !e.SpentAt.After(to) {
			result = append(result, e)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].SpentAt.After(result[j].SpentAt) })
	return result, nil
}

func (m *mockExpenseRepo) SumByMonth(ctx context.Context, userID string, from, to time.Time) (int64, error) {
	expenses, _ := m.ListByMonth(ctx, userID, from, to)
	var total int64
	for _, e := range expenses {
		total += e.Amount
	}
	return total, nil
}

func (m *mockExpenseRepo) SumByCategory(ctx context.Context, userID string, from, to time.Time) ([]model.CategoryAmount, error) {
	expenses, _ := m.ListByMonth(ctx, userID, from, to)
	byCategory := make(map[string]int64)
	for _, e := range expenses {
		byCategory[e.Category] += e.Amount
	}
	result := make([]model.CategoryAmount, 0, len(byCategory))
	for c, a := range byCategory {
		result = append(result, model.CategoryAmount{Category: c, Amount: a})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Amount > result[j].Amount })
	return result, nil
}

// ── 聚合辅助 ──

// testRepos 聚合所有 mock repo 便于 seed 数据
type testRepos struct {
	user        *mockUserRepo
	attendance  *mockAttendanceRepo
	appointment *mockAppointmentRepo
	correction  *mockCorrectionRepo
	expense     *mockExpenseRepo
}

func newTestRepos() *testRepos {
	user := newMockUserRepo()
	return &testRepos{
		user:        user,
		attendance:  newMockAttendanceRepo(user),
		appointment: newMockAppointmentRepo(),
		correction:  newMockCorrectionRepo(),
		expense:     newMockExpenseRepo(),
	}
}

func (r *testRepos) toRepository() *repository.Repository {
	return &repository.Repository{
		User:        r.user,
		Attendance:  r.attendance,
		Appointment: r.appointment,
		Correction:  r.correction,
		Expense:     r.expense,
	}
}

// seedUser 直接写入一个用户档案
func (r *testRepos) seedUser(id, role string, managerID *string) *model.Profile {
	p := &model.Profile{
		UserID:    id,
		Email:     id + "@example.com",
		FullName:  "测试用户" + id,
		Role:      role,
		ManagerID: managerID,
	}
	r.user.users[id] = p
	return p
}
