package grimoire

import (
	"fmt"

	"github.com/kobstaw/kanty-grimoire-backend/internal/platform/database"
)

// PrimeModule 是grimoire模块的初始化总入口
func PrimeModule() error {
	if err := database.DB.AutoMigrate(
		&Character{},
		&KnownSpell{},
		&Spellbook{},
		&SpellbookSpell{},
	); err != nil {
		return fmt.Errorf("无法迁移grimoire相关表: %w", err)
	}
	fmt.Println("Grimoire数据库表迁移成功。")
	return nil
}
