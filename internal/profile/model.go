package profile

import (
	"time"

	"gorm.io/gorm"
)

// Profile 定义了用户在数据库中的持久化模型。
// 主键是UUID字符串，注册时生成。
type Profile struct {
	// UUID 是用户的主键
	UUID string `gorm:"primarykey;type:varchar(36)" json:"id"`

	// Email 是登录凭据，唯一
	Email string `gorm:"uniqueIndex;not null" json:"email"`

	// Username 默认取邮箱@前的部分
	Username string `gorm:"index" json:"username"`

	// PasswordHash 是bcrypt哈希后的密码
	PasswordHash string `gorm:"not null" json:"-"`

	// IsAdmin 标记管理员，管理员可以编辑和删除任何条目
	IsAdmin bool `gorm:"default:false" json:"is_admin"`

	// 部分gorm.Model，由GORM自动管理
	CreatedAt time.Time      `json:"-"`
	UpdatedAt time.Time      `json:"-"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// Identity 描述一次请求的访问者身份，供权限谓词使用。
// 未认证请求使用零值Identity。
type Identity struct {
	ID            string
	IsAdmin       bool
	Authenticated bool
}
