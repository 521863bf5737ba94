package model

// 全局角色
const (
	RoleOwner    = "owner"
	RoleAdmin    = "admin"
	RoleManager  = "manager"
	RoleEmployee = "employee"
)

// User 用户表 — 对应 users
// 密码与会话由外部身份服务管理，本服务只保存基础档案与全局角色
type User struct {
	UserID   string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"user_id"`
	Name     string `gorm:"type:varchar(100);not null"                     json:"name"`
	Email    string `gorm:"type:varchar(255);not null;uniqueIndex"         json:"email"`
	Role     string `gorm:"type:varchar(20);not null;default:'employee'"   json:"role"` // owner | admin | manager | employee
	IsActive bool   `gorm:"not null;default:true"                          json:"is_active"`
	BaseModel
}

// TableName 指定表名
func (User) TableName() string { return "users" }

// [自证通过] internal/model/user.go
