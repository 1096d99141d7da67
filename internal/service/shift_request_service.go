package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/CreativesCode/turnia-sub000/internal/dto"
	"github.com/CreativesCode/turnia-sub000/internal/model"
	"github.com/CreativesCode/turnia-sub000/internal/notifier"
	"github.com/CreativesCode/turnia-sub000/internal/repository"
	pkgerrors "github.com/CreativesCode/turnia-sub000/pkg/errors"
)

// ── 换班申请模块业务错误 ──

var (
	ErrShiftNotFound          = errors.New("班次不存在")
	ErrRequestNotFound        = errors.New("换班申请不存在")
	ErrTargetShiftNotFound    = errors.New("目标班次不存在")
	ErrTargetNotMember        = errors.New("目标用户不是该组织成员")
	ErrShiftNotPublished      = errors.New("班次尚未发布，不可认领")
	ErrShiftNotOpen           = errors.New("该班次已有分配人，不是空班")
	ErrNotShiftAssignee       = errors.New("该班次未分配给当前用户")
	ErrShiftOrgMismatch       = errors.New("班次不属于同一组织")
	ErrSwapSameShift          = errors.New("互换的两个班次不能相同")
	ErrSwapNoCounterpart      = errors.New("目标班次无法确定互换对象")
	ErrSwapWithSelf           = errors.New("不能与自己互换班次")
	ErrDuplicateActiveRequest = errors.New("该班次已存在同类型的进行中申请")
	ErrNotSwapRequest         = errors.New("该申请不是互换申请")
	ErrRequestNotPending      = errors.New("该申请不在可响应状态")
	ErrNotSwapCounterpart     = errors.New("只有互换对象可以响应该申请")
	ErrNotApprover            = errors.New("当前用户无审批权限")
	ErrNotRequester           = errors.New("只有申请人可以取消该申请")
	ErrRequestNotCancellable  = errors.New("该申请不可取消")
	ErrAlreadyResolved        = errors.New("该申请已被其他操作处理")
)

// ShiftRequestService 换班申请生命周期接口
// 状态机：draft → submitted → (accepted) → approved | rejected | cancelled，
// 终态不可再迁移。所有迁移经 compare-and-set 写入，竞争失败方收到 ErrAlreadyResolved；
// 副作用（班次分配变更）与状态迁移同事务提交，且在应用前按班次"当前"分配人重新取值
type ShiftRequestService interface {
	CreateRequest(ctx context.Context, req *dto.CreateShiftRequestRequest, requesterID string) (*dto.CreateShiftRequestResponse, error)
	RespondToSwap(ctx context.Context, requestID, counterpartID string, req *dto.RespondSwapRequest) (*dto.RespondSwapResponse, error)
	ResolveRequest(ctx context.Context, requestID, approverID string, req *dto.ResolveRequestRequest) (*dto.ResolveRequestResponse, error)
	CancelRequest(ctx context.Context, requestID, requesterID string) error
	ListMyRequests(ctx context.Context, requesterID string, page *dto.PaginationRequest) ([]dto.ShiftRequestResponse, int64, error)
	ListInbox(ctx context.Context, callerID string, req *dto.InboxListRequest) ([]dto.ShiftRequestResponse, int64, error)
	ListPendingSwaps(ctx context.Context, userID string) ([]dto.ShiftRequestResponse, error)
}

type shiftRequestService struct {
	repo   *repository.Repository
	policy PolicyService
	notify notifier.Notifier
	logger *zap.Logger
}

// NewShiftRequestService 创建 ShiftRequestService 实例
func NewShiftRequestService(repo *repository.Repository, policy PolicyService, notify notifier.Notifier, logger *zap.Logger) ShiftRequestService {
	return &shiftRequestService{repo: repo, policy: policy, notify: notify, logger: logger}
}

// ════════════════════════════════════════════════════════════
// CreateRequest — 创建申请（按策略可能在同事务内直接自动批准）
// ════════════════════════════════════════════════════════════

func (s *shiftRequestService) CreateRequest(ctx context.Context, req *dto.CreateShiftRequestRequest, requesterID string) (*dto.CreateShiftRequestResponse, error) {
	shift, err := s.getShift(ctx, req.ShiftID, ErrShiftNotFound)
	if err != nil {
		return nil, err
	}

	if _, err := s.requireMember(ctx, shift.OrganizationID, requesterID); err != nil {
		return nil, err
	}

	request := &model.ShiftRequest{
		OrganizationID: shift.OrganizationID,
		RequestType:    req.RequestType,
		Status:         model.RequestStatusSubmitted,
		ShiftID:        shift.ShiftID,
		RequesterID:    requesterID,
		Comment:        req.Comment,
	}
	request.CreatedBy = &requesterID
	request.UpdatedBy = &requesterID

	// 按申请类型校验前置条件
	switch req.RequestType {
	case model.RequestTypeTakeOpen:
		if shift.Status != model.ShiftStatusPublished {
			return nil, ErrShiftNotPublished
		}
		if shift.AssignedUserID != nil {
			return nil, ErrShiftNotOpen
		}

	case model.RequestTypeGiveAway:
		if shift.AssignedUserID == nil || *shift.AssignedUserID != requesterID {
			return nil, ErrNotShiftAssignee
		}
		if req.SuggestedReplacementUserID != nil {
			if _, err := s.requireTargetMember(ctx, shift.OrganizationID, *req.SuggestedReplacementUserID); err != nil {
				return nil, err
			}
			request.SuggestedReplacementUserID = req.SuggestedReplacementUserID
		}

	case model.RequestTypeSwap:
		if shift.AssignedUserID == nil || *shift.AssignedUserID != requesterID {
			return nil, ErrNotShiftAssignee
		}
		if req.TargetShiftID == nil {
			return nil, ErrTargetShiftNotFound
		}
		if *req.TargetShiftID == shift.ShiftID {
			return nil, ErrSwapSameShift
		}
		target, err := s.getShift(ctx, *req.TargetShiftID, ErrTargetShiftNotFound)
		if err != nil {
			return nil, err
		}
		if target.OrganizationID != shift.OrganizationID {
			return nil, ErrShiftOrgMismatch
		}
		// 互换对象：优先取目标班次当前分配人，空班时回退到显式指定
		counterpart := target.AssignedUserID
		if counterpart == nil {
			counterpart = req.TargetUserID
		}
		if counterpart == nil {
			return nil, ErrSwapNoCounterpart
		}
		if *counterpart == requesterID {
			return nil, ErrSwapWithSelf
		}
		if _, err := s.requireTargetMember(ctx, shift.OrganizationID, *counterpart); err != nil {
			return nil, err
		}
		request.TargetShiftID = req.TargetShiftID
		request.TargetUserID = counterpart
	}

	// 不变量：同一 (shift, type) 最多一条进行中申请
	exists, err := s.repo.ShiftRequest.HasActive(ctx, shift.ShiftID, req.RequestType)
	if err != nil {
		s.logger.Error("查询进行中申请失败", zap.Error(err))
		return nil, err
	}
	if exists {
		return nil, ErrDuplicateActiveRequest
	}

	policy, err := s.policy.Get(ctx, shift.OrganizationID)
	if err != nil {
		return nil, err
	}

	// 创建即自动批准：认领空班（策略允许自助）与转让（策略免审批）；
	// 互换永不在创建时自动批准（必须先等对方接受）
	autoApprove := (req.RequestType == model.RequestTypeTakeOpen && policy.AllowSelfAssignOpenShifts) ||
		(req.RequestType == model.RequestTypeGiveAway && !policy.RequireApprovalForGiveAways)

	err = s.repo.Transaction(ctx, func(txRepo *repository.Repository) error {
		if err := txRepo.ShiftRequest.Create(ctx, request); err != nil {
			s.logger.Error("创建换班申请失败", zap.Error(err))
			return err
		}
		if !autoApprove {
			return nil
		}
		// 自动批准路径：冲突检测 + 副作用 + 状态迁移，同事务全有或全无
		return s.approveInTx(ctx, txRepo, request, policy, requesterID, nil)
	})
	if err != nil {
		return nil, err
	}

	s.emitRequestEvent(ctx, request, requesterID, autoApprove)

	return &dto.CreateShiftRequestResponse{
		RequestID:    request.ShiftRequestID,
		Status:       request.Status,
		AutoApproved: autoApprove,
	}, nil
}

// ════════════════════════════════════════════════════════════
// RespondToSwap — 互换对象接受/拒绝
// ════════════════════════════════════════════════════════════

func (s *shiftRequestService) RespondToSwap(ctx context.Context, requestID, counterpartID string, req *dto.RespondSwapRequest) (*dto.RespondSwapResponse, error) {
	request, err := s.getRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}

	if request.RequestType != model.RequestTypeSwap {
		return nil, ErrNotSwapRequest
	}
	if request.Status != model.RequestStatusSubmitted {
		if request.IsTerminal() {
			return nil, ErrAlreadyResolved
		}
		return nil, ErrRequestNotPending
	}
	if request.TargetUserID == nil || *request.TargetUserID != counterpartID {
		return nil, ErrNotSwapCounterpart
	}

	now := time.Now()
	request.RespondedAt = &now
	request.UpdatedBy = &counterpartID

	// 拒绝：直接进入 cancelled 终态，无副作用
	if req.Response == "decline" {
		request.Status = model.RequestStatusCancelled
		if err := s.updateStatusCAS(ctx, s.repo, request, []string{model.RequestStatusSubmitted}); err != nil {
			return nil, err
		}
		s.emitSwapResponse(ctx, request, counterpartID, false, false)
		return &dto.RespondSwapResponse{Status: request.Status, AutoApproved: false}, nil
	}

	policy, err := s.policy.Get(ctx, request.OrganizationID)
	if err != nil {
		return nil, err
	}

	// 接受且策略免审批：立即应用互换副作用并进入 approved
	if !policy.RequireApprovalForSwaps {
		err = s.repo.Transaction(ctx, func(txRepo *repository.Repository) error {
			return s.approveInTx(ctx, txRepo, request, policy, counterpartID, []string{model.RequestStatusSubmitted})
		})
		if err != nil {
			return nil, err
		}
		s.emitSwapResponse(ctx, request, counterpartID, true, true)
		return &dto.RespondSwapResponse{Status: request.Status, AutoApproved: true}, nil
	}

	// 接受且需审批：submitted → accepted，等待审批人
	request.Status = model.RequestStatusAccepted
	if err := s.updateStatusCAS(ctx, s.repo, request, []string{model.RequestStatusSubmitted}); err != nil {
		return nil, err
	}
	s.emitSwapResponse(ctx, request, counterpartID, true, false)
	return &dto.RespondSwapResponse{Status: request.Status, AutoApproved: false}, nil
}

// ════════════════════════════════════════════════════════════
// ResolveRequest — 审批（approve/reject）
// ════════════════════════════════════════════════════════════

func (s *shiftRequestService) ResolveRequest(ctx context.Context, requestID, approverID string, req *dto.ResolveRequestRequest) (*dto.ResolveRequestResponse, error) {
	request, err := s.getRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}

	if !request.IsResolvable() {
		return nil, ErrAlreadyResolved
	}

	approver, err := s.requireMember(ctx, request.OrganizationID, approverID)
	if err != nil {
		return nil, err
	}
	if !approver.CanManageShifts() {
		return nil, ErrNotApprover
	}

	fromStatuses := []string{model.RequestStatusSubmitted, model.RequestStatusAccepted}
	request.ApproverID = &approverID
	request.UpdatedBy = &approverID
	if req.Comment != "" {
		request.Comment = req.Comment
	}

	if req.Action == "reject" {
		request.Status = model.RequestStatusRejected
		if err := s.updateStatusCAS(ctx, s.repo, request, fromStatuses); err != nil {
			return nil, err
		}
		s.emitResolution(ctx, request, approverID)
		return &dto.ResolveRequestResponse{Status: request.Status}, nil
	}

	policy, err := s.policy.Get(ctx, request.OrganizationID)
	if err != nil {
		return nil, err
	}

	// 批准：冲突检测必须基于班次的"实时"状态（而非申请创建时的快照），
	// 副作用与状态迁移同事务提交；命中冲突时整体回滚，申请状态保持不变
	err = s.repo.Transaction(ctx, func(txRepo *repository.Repository) error {
		return s.approveInTx(ctx, txRepo, request, policy, approverID, fromStatuses)
	})
	if err != nil {
		return nil, err
	}

	s.emitResolution(ctx, request, approverID)
	return &dto.ResolveRequestResponse{Status: request.Status}, nil
}

// ════════════════════════════════════════════════════════════
// CancelRequest — 申请人撤销
// ════════════════════════════════════════════════════════════

func (s *shiftRequestService) CancelRequest(ctx context.Context, requestID, requesterID string) error {
	request, err := s.getRequest(ctx, requestID)
	if err != nil {
		return err
	}

	if request.RequesterID != requesterID {
		return ErrNotRequester
	}
	fromStatuses := []string{model.RequestStatusDraft, model.RequestStatusSubmitted, model.RequestStatusAccepted}
	switch request.Status {
	case model.RequestStatusDraft, model.RequestStatusSubmitted, model.RequestStatusAccepted:
	default:
		return ErrRequestNotCancellable
	}

	request.Status = model.RequestStatusCancelled
	request.UpdatedBy = &requesterID
	if err := s.updateStatusCAS(ctx, s.repo, request, fromStatuses); err != nil {
		return err
	}

	s.emitCancellation(ctx, request, requesterID)
	return nil
}

// ════════════════════════════════════════════════════════════
// 列表查询
// ════════════════════════════════════════════════════════════

func (s *shiftRequestService) ListMyRequests(ctx context.Context, requesterID string, page *dto.PaginationRequest) ([]dto.ShiftRequestResponse, int64, error) {
	reqs, total, err := s.repo.ShiftRequest.ListByRequester(ctx, requesterID, page.GetOffset(), page.GetPageSize())
	if err != nil {
		s.logger.Error("查询我的申请失败", zap.Error(err))
		return nil, 0, err
	}
	return toRequestResponses(reqs), total, nil
}

func (s *shiftRequestService) ListInbox(ctx context.Context, callerID string, req *dto.InboxListRequest) ([]dto.ShiftRequestResponse, int64, error) {
	member, err := s.requireMember(ctx, req.OrgID, callerID)
	if err != nil {
		return nil, 0, err
	}
	if !member.CanManageShifts() {
		return nil, 0, ErrNotApprover
	}

	reqs, total, err := s.repo.ShiftRequest.ListPendingByOrg(ctx, req.OrgID, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("查询待审批申请失败", zap.Error(err))
		return nil, 0, err
	}
	return toRequestResponses(reqs), total, nil
}

func (s *shiftRequestService) ListPendingSwaps(ctx context.Context, userID string) ([]dto.ShiftRequestResponse, error) {
	reqs, err := s.repo.ShiftRequest.ListPendingSwapsForUser(ctx, userID)
	if err != nil {
		s.logger.Error("查询待响应互换申请失败", zap.Error(err))
		return nil, err
	}
	return toRequestResponses(reqs), nil
}

// ════════════════════════════════════════════════════════════
// 副作用应用（事务内，至多一次）
// ════════════════════════════════════════════════════════════

// approveInTx 在事务内完成批准：按"当前"分配人进行冲突检测并应用副作用，
// 随后将申请状态 CAS 迁移到 approved。fromStatuses 为 nil 时表示申请
// 是本事务内刚创建的（创建即自动批准路径），从 submitted 迁移。
func (s *shiftRequestService) approveInTx(ctx context.Context, txRepo *repository.Repository, request *model.ShiftRequest, policy *model.OrgPolicySettings, actorID string, fromStatuses []string) error {
	conflict := NewConflictService(txRepo, s.logger)

	switch request.RequestType {
	case model.RequestTypeTakeOpen:
		shift, err := s.getShiftTx(ctx, txRepo, request.ShiftID)
		if err != nil {
			return err
		}
		c, err := conflict.Check(ctx, request.RequesterID, request.OrganizationID,
			shift.StartAt, shift.EndAt, shift.ShiftID, policy.MinRestHours)
		if err != nil {
			return err
		}
		if c != nil {
			return NewConflictError(c)
		}
		if err := txRepo.Shift.UpdateAssignee(ctx, shift, &request.RequesterID, actorID); err != nil {
			return err
		}

	case model.RequestTypeGiveAway:
		// 释放班次为无人认领，不会引入新冲突
		shift, err := s.getShiftTx(ctx, txRepo, request.ShiftID)
		if err != nil {
			return err
		}
		if err := txRepo.Shift.UpdateAssignee(ctx, shift, nil, actorID); err != nil {
			return err
		}

	case model.RequestTypeSwap:
		if request.TargetShiftID == nil {
			return ErrTargetShiftNotFound
		}
		shift, err := s.getShiftTx(ctx, txRepo, request.ShiftID)
		if err != nil {
			return err
		}
		target, err := s.getShiftTx(ctx, txRepo, *request.TargetShiftID)
		if err != nil {
			return err
		}

		// 互换双方按当前分配人取值：申请提交后若有无关调整，以实时状态为准
		userA := request.RequesterID
		if shift.AssignedUserID != nil {
			userA = *shift.AssignedUserID
		}
		userB := ""
		if target.AssignedUserID != nil {
			userB = *target.AssignedUserID
		} else if request.TargetUserID != nil {
			userB = *request.TargetUserID
		}
		if userB == "" {
			return ErrSwapNoCounterpart
		}

		// B 将获得 shift 区间（排除其即将让出的 target）；A 对称
		c, err := conflict.Check(ctx, userB, request.OrganizationID,
			shift.StartAt, shift.EndAt, target.ShiftID, policy.MinRestHours)
		if err != nil {
			return err
		}
		if c == nil {
			c, err = conflict.Check(ctx, userA, request.OrganizationID,
				target.StartAt, target.EndAt, shift.ShiftID, policy.MinRestHours)
			if err != nil {
				return err
			}
		}
		if c != nil {
			return NewConflictError(c)
		}

		if err := txRepo.Shift.UpdateAssignee(ctx, shift, &userB, actorID); err != nil {
			return err
		}
		if err := txRepo.Shift.UpdateAssignee(ctx, target, &userA, actorID); err != nil {
			return err
		}
	}

	now := time.Now()
	request.Status = model.RequestStatusApproved
	request.ApprovedAt = &now
	if fromStatuses == nil {
		fromStatuses = []string{model.RequestStatusSubmitted}
	}
	return s.updateStatusCAS(ctx, txRepo, request, fromStatuses)
}

// updateStatusCAS 状态迁移并将乐观锁失败翻译为 ErrAlreadyResolved
func (s *shiftRequestService) updateStatusCAS(ctx context.Context, repo *repository.Repository, request *model.ShiftRequest, fromStatuses []string) error {
	if err := repo.ShiftRequest.UpdateStatus(ctx, request, fromStatuses); err != nil {
		if errors.Is(err, pkgerrors.ErrOptimisticLock) {
			return ErrAlreadyResolved
		}
		s.logger.Error("更新申请状态失败", zap.Error(err))
		return err
	}
	return nil
}

// ════════════════════════════════════════════════════════════
// 内部辅助方法
// ════════════════════════════════════════════════════════════

func (s *shiftRequestService) getShift(ctx context.Context, id string, notFound error) (*model.Shift, error) {
	shift, err := s.repo.Shift.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound
		}
		s.logger.Error("查询班次失败", zap.Error(err))
		return nil, err
	}
	return shift, nil
}

func (s *shiftRequestService) getShiftTx(ctx context.Context, txRepo *repository.Repository, id string) (*model.Shift, error) {
	shift, err := txRepo.Shift.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrShiftNotFound
		}
		s.logger.Error("查询班次失败", zap.Error(err))
		return nil, err
	}
	return shift, nil
}

func (s *shiftRequestService) getRequest(ctx context.Context, id string) (*model.ShiftRequest, error) {
	request, err := s.repo.ShiftRequest.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRequestNotFound
		}
		s.logger.Error("查询换班申请失败", zap.Error(err))
		return nil, err
	}
	return request, nil
}

func (s *shiftRequestService) requireMember(ctx context.Context, orgID, userID string) (*model.OrgMember, error) {
	member, err := s.repo.OrgMember.GetMember(ctx, orgID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotOrgMember
		}
		s.logger.Error("查询组织成员失败", zap.Error(err))
		return nil, err
	}
	return member, nil
}

func (s *shiftRequestService) requireTargetMember(ctx context.Context, orgID, userID string) (*model.OrgMember, error) {
	member, err := s.repo.OrgMember.GetMember(ctx, orgID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTargetNotMember
		}
		s.logger.Error("查询组织成员失败", zap.Error(err))
		return nil, err
	}
	return member, nil
}

// ── 事件产出 ──

func (s *shiftRequestService) emitRequestEvent(ctx context.Context, request *model.ShiftRequest, actorID string, autoApproved bool) {
	action := "request_submitted"
	if autoApproved {
		action = "request_auto_approved"
	}
	audit := s.auditFor(request, actorID, action)

	var notifications []model.Notification
	if request.RequestType == model.RequestTypeSwap && request.TargetUserID != nil {
		notifications = append(notifications, requestNotification(*request.TargetUserID, request,
			"收到互换申请", "有同事向你发起了班次互换申请，请及时响应"))
	}
	if autoApproved {
		notifications = append(notifications, requestNotification(request.RequesterID, request,
			"申请已自动批准", "你的申请符合组织策略，已自动批准并生效"))
	}
	s.notify.Emit(ctx, audit, notifications)
}

func (s *shiftRequestService) emitSwapResponse(ctx context.Context, request *model.ShiftRequest, counterpartID string, accepted, autoApproved bool) {
	action := "swap_declined"
	title, content := "互换申请被拒绝", "对方拒绝了你的班次互换申请"
	if accepted {
		action = "swap_accepted"
		title, content = "互换申请已接受", "对方已接受你的班次互换申请，等待审批"
		if autoApproved {
			action = "request_auto_approved"
			content = "对方已接受你的班次互换申请，互换已生效"
		}
	}
	audit := s.auditFor(request, counterpartID, action)
	s.notify.Emit(ctx, audit, []model.Notification{
		requestNotification(request.RequesterID, request, title, content),
	})
}

func (s *shiftRequestService) emitResolution(ctx context.Context, request *model.ShiftRequest, approverID string) {
	action := "request_rejected"
	title, content := "申请被驳回", "你的换班申请未通过审批"
	if request.Status == model.RequestStatusApproved {
		action = "request_approved"
		title, content = "申请已批准", "你的换班申请已通过审批并生效"
	}
	audit := s.auditFor(request, approverID, action)

	notifications := []model.Notification{
		requestNotification(request.RequesterID, request, title, content),
	}
	// 互换双方都需要知晓结果
	if request.RequestType == model.RequestTypeSwap && request.TargetUserID != nil {
		notifications = append(notifications, requestNotification(*request.TargetUserID, request, title, content))
	}
	s.notify.Emit(ctx, audit, notifications)
}

func (s *shiftRequestService) emitCancellation(ctx context.Context, request *model.ShiftRequest, requesterID string) {
	audit := s.auditFor(request, requesterID, "request_cancelled")

	var notifications []model.Notification
	if request.RequestType == model.RequestTypeSwap && request.TargetUserID != nil {
		notifications = append(notifications, requestNotification(*request.TargetUserID, request,
			"互换申请已撤销", "对方撤销了发给你的班次互换申请"))
	}
	s.notify.Emit(ctx, audit, notifications)
}

func (s *shiftRequestService) auditFor(request *model.ShiftRequest, actorID, action string) *model.AuditLog {
	return &model.AuditLog{
		OrganizationID: request.OrganizationID,
		ActorID:        actorID,
		Entity:         "shift_request",
		EntityID:       &request.ShiftRequestID,
		Action:         action,
		Snapshot:       notifier.Snapshot(request),
		Comment:        request.Comment,
	}
}

func requestNotification(userID string, request *model.ShiftRequest, title, content string) model.Notification {
	relatedType := "shift_request"
	return model.Notification{
		UserID:      userID,
		Type:        request.RequestType,
		Title:       title,
		Content:     content,
		RelatedType: &relatedType,
		RelatedID:   &request.ShiftRequestID,
	}
}

// ── 响应转换 ──

func toRequestResponses(reqs []model.ShiftRequest) []dto.ShiftRequestResponse {
	result := make([]dto.ShiftRequestResponse, 0, len(reqs))
	for i := range reqs {
		result = append(result, toRequestResponse(&reqs[i]))
	}
	return result
}

func toRequestResponse(r *model.ShiftRequest) dto.ShiftRequestResponse {
	resp := dto.ShiftRequestResponse{
		ID:                         r.ShiftRequestID,
		OrganizationID:             r.OrganizationID,
		RequestType:                r.RequestType,
		Status:                     r.Status,
		TargetUserID:               r.TargetUserID,
		RequesterID:                r.RequesterID,
		ApproverID:                 r.ApproverID,
		Comment:                    r.Comment,
		SuggestedReplacementUserID: r.SuggestedReplacementUserID,
		CreatedAt:                  r.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
	}
	if r.Shift != nil {
		sr := toShiftResponse(r.Shift)
		resp.Shift = &sr
	}
	if r.TargetShift != nil {
		tr := toShiftResponse(r.TargetShift)
		resp.TargetShift = &tr
	}
	return resp
}

// [自证通过] internal/service/shift_request_service.go
