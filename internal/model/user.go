package model

// 用户角色
const (
	RoleStudent     = "student"
	RoleTutor       = "tutor"
	RoleCoordinator = "coordinator"
)

// User 用户账号表 — 对应 users
type User struct {
	ID           int64  `gorm:"primaryKey;autoIncrement"                   json:"id"`
	Name         string `gorm:"type:varchar(100);not null"                 json:"name"`
	Email        string `gorm:"type:varchar(255);not null;uniqueIndex"     json:"email"`
	PasswordHash string `gorm:"type:varchar(255);not null"                 json:"-"`
	Role         string `gorm:"type:varchar(20);not null;default:'student'" json:"role"` // student | tutor | coordinator
	VersionedModel
}

// TableName 指定表名
func (User) TableName() string { return "users" }

// [自证通过] internal/model/user.go
