package profile

import (
	"fmt"

	"github.com/kobstaw/kanty-grimoire-backend/internal/platform/database"
)

// PrimeCachedDB 是profile模块的初始化总入口
func PrimeCachedDB() error {
	if err := migrateDB(); err != nil {
		return err
	}
	if err := WarmupCache(); err != nil {
		return err
	}
	return nil
}

// migrateDB 负责自动迁移数据库表结构
func migrateDB() error {
	if err := database.DB.AutoMigrate(&Profile{}); err != nil {
		return fmt.Errorf("无法迁移profiles表: %w", err)
	}
	fmt.Println("Profiles数据库表迁移成功。")
	return nil
}

// WarmupCache 从数据库加载全部管理员UUID，并预热到Redis的Set中。
// 未配置Redis的运行环境（如命令行工具）直接跳过。
func WarmupCache() error {
	if database.RDB == nil {
		return nil
	}
	var admins []Profile
	if err := database.DB.Select("uuid").Where("is_admin = ?", true).Find(&admins).Error; err != nil {
		return fmt.Errorf("无法从数据库读取管理员列表: %w", err)
	}

	pipe := database.RDB.Pipeline()
	// 先清空旧的缓存，确保数据一致性
	pipe.Del(database.Ctx, AdminSetKey)
	if len(admins) > 0 {
		members := make([]interface{}, len(admins))
		for i, p := range admins {
			members[i] = p.UUID
		}
		pipe.SAdd(database.Ctx, AdminSetKey, members...)
	}

	if _, err := pipe.Exec(database.Ctx); err != nil {
		return fmt.Errorf("预热管理员UUID到Redis失败: %w", err)
	}

	fmt.Printf("成功预热 %d 个管理员UUID到Redis。\n", len(admins))
	return nil
}
