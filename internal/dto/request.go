package dto

// ── 辅导申请模块请求 ──

// CreateRequestRequest 创建辅导申请
type CreateRequestRequest struct {
	StudentID     int64  `json:"student_id"     binding:"required,min=1"`
	SubjectID     int64  `json:"subject_id"     binding:"required,min=1"`
	RequestedDate string `json:"requested_date" binding:"required,datetime=2006-01-02"`
	RequestedTime string `json:"requested_time" binding:"required,datetime=15:04"`
}

// UpdateRequestRequest 更新辅导申请（状态流转 / 重新指派）
type UpdateRequestRequest struct {
	Status  *string `json:"status"   binding:"omitempty,oneof=PENDING ASSIGNED ACCEPTED REJECTED SCHEDULED COMPLETED"`
	TutorID *int64  `json:"tutor_id" binding:"omitempty,min=1"`
}

// ── 辅导申请模块响应 ──

// RequestResponse 辅导申请响应
type RequestResponse struct {
	ID            int64         `json:"id"`
	StudentID     int64         `json:"student_id"`
	SubjectID     int64         `json:"subject_id"`
	TutorID       *int64        `json:"tutor_id,omitempty"`
	Status        string        `json:"status"`
	RequestedDate string        `json:"requested_date"`
	RequestedTime string        `json:"requested_time"`
	CreatedAt     string        `json:"created_at"`
	Student       *StudentBrief `json:"student,omitempty"`
	Subject       *SubjectBrief `json:"subject,omitempty"`
	Tutor         *TutorBrief   `json:"tutor,omitempty"`
}

// ChangeLogResponse 申请状态变更日志响应
type ChangeLogResponse struct {
	ID         int64  `json:"id"`
	RequestID  int64  `json:"request_id"`
	OperatorID *int64 `json:"operator_id,omitempty"`
	FromStatus string `json:"from_status"`
	ToStatus   string `json:"to_status"`
	Remark     string `json:"remark,omitempty"`
	CreatedAt  string `json:"created_at"`
}

// [自证通过] internal/dto/request.go
