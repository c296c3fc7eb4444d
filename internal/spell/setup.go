package spell

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/kobstaw/kanty-grimoire-backend/internal/platform/database"
)

// PrimeCachedDB 负责初始化spell模块的数据库表、内存仓库和Redis缓存
func PrimeCachedDB() error {
	if err := migrateDB(); err != nil {
		return err
	}
	if err := ReloadRepository(); err != nil {
		return err
	}
	if err := WarmupCache(); err != nil {
		return err
	}
	fmt.Printf("条目仓库初始化成功，加载了 %d 条记录。\n", RecordCount())
	return nil
}

// migrateDB 负责自动迁移数据库表结构
func migrateDB() error {
	if err := database.DB.AutoMigrate(&Spell{}); err != nil {
		return fmt.Errorf("无法迁移spells表: %w", err)
	}
	fmt.Println("Spells数据库表迁移成功。")
	return nil
}

// WarmupCache 把当前工作集的视图模型预热到Redis信息Hash。
// 先清空旧键再整体写入，保证缓存与内存仓库一致。
// 未配置Redis的运行环境（如命令行工具）直接跳过。
func WarmupCache() error {
	if database.RDB == nil {
		return nil
	}
	records := Snapshot()

	pipe := database.RDB.Pipeline()
	pipe.Del(database.Ctx, InfoKey)
	for i := range records {
		infoJSON, err := json.Marshal(&records[i])
		if err != nil {
			return fmt.Errorf("无法序列化条目 %d: %w", records[i].ID, err)
		}
		pipe.HSet(database.Ctx, InfoKey, strconv.FormatUint(uint64(records[i].ID), 10), infoJSON)
	}

	if _, err := pipe.Exec(database.Ctx); err != nil {
		return fmt.Errorf("预热条目缓存到Redis失败: %w", err)
	}
	return nil
}
