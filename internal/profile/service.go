package profile

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/kobstaw/kanty-grimoire-backend/internal/platform/database"
	"github.com/kobstaw/kanty-grimoire-backend/pkg/dberr"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AdminSetKey 是一个Redis Set，缓存全部管理员UUID，供权限判定快速查询
const AdminSetKey = "profile:admins"

// ErrBadCredentials 表示邮箱或密码不正确
var ErrBadCredentials = errors.New("邮箱或密码不正确")

// ErrEmailTaken 表示注册邮箱已被占用
var ErrEmailTaken = errors.New("该邮箱已被注册")

// hashPassword 生成密码哈希
func hashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	return string(bytes), err
}

// checkPassword 验证密码
func checkPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// Register 创建新用户并返回其资料。
// 用户名默认取邮箱@前的部分，与旧前端的ensureProfile行为一致。
func Register(email, password string) (*Profile, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || password == "" {
		return nil, errors.New("邮箱和密码不能为空")
	}

	hash, err := hashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("无法生成密码哈希: %w", err)
	}

	newUUID, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("无法生成UUID v7: %w", err)
	}

	p := Profile{
		UUID:         newUUID.String(),
		Email:        email,
		Username:     strings.SplitN(email, "@", 2)[0],
		PasswordHash: hash,
	}

	if err := database.DB.Create(&p).Error; err != nil {
		if dberr.IsConflict(err) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return &p, nil
}

// Authenticate 校验登录凭据，成功时返回用户资料
func Authenticate(email, password string) (*Profile, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	var p Profile
	if err := database.DB.Where("email = ?", email).First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBadCredentials
		}
		return nil, err
	}

	if !checkPassword(password, p.PasswordHash) {
		return nil, ErrBadCredentials
	}
	return &p, nil
}

// GetProfile 按UUID读取用户资料
func GetProfile(userID string) (*Profile, error) {
	var p Profile
	if err := database.DB.First(&p, "uuid = ?", userID).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// IsAdmin 判断用户是否是管理员。
// Redis健康时查询管理员Set缓存，否则退回数据库。
func IsAdmin(userID string) bool {
	if userID == "" {
		return false
	}

	if database.RDB != nil && database.IsRedisHealthy() {
		exists, err := database.RDB.SIsMember(database.Ctx, AdminSetKey, userID).Result()
		if err == nil {
			return exists
		}
		fmt.Printf("警告: 查询管理员缓存失败，退回数据库: %v\n", err)
	}

	var count int64
	if err := database.DB.Model(&Profile{}).
		Where("uuid = ? AND is_admin = ?", userID, true).
		Count(&count).Error; err != nil {
		return false
	}
	return count > 0
}

// SetAdmin 更新用户的管理员标记并同步缓存
func SetAdmin(userID string, isAdmin bool) error {
	res := database.DB.Model(&Profile{}).Where("uuid = ?", userID).Update("is_admin", isAdmin)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("找不到UUID为 %s 的用户", userID)
	}

	// 命令行工具不连接Redis，跳过缓存同步
	if database.RDB == nil {
		return nil
	}

	var err error
	if isAdmin {
		err = database.RDB.SAdd(database.Ctx, AdminSetKey, userID).Err()
	} else {
		err = database.RDB.SRem(database.Ctx, AdminSetKey, userID).Err()
	}
	if err != nil {
		fmt.Printf("警告: 同步管理员缓存失败: %v\n", err)
	}
	return nil
}
