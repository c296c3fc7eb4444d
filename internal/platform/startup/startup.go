package startup

import (
	"fmt"

	"github.com/kobstaw/kanty-grimoire-backend/internal/grimoire"
	"github.com/kobstaw/kanty-grimoire-backend/internal/profile"
	"github.com/kobstaw/kanty-grimoire-backend/internal/spell"
)

// InitializeApplication 是应用首次启动时执行的总入口：
// 依次完成各模块的表迁移、内存仓库加载和Redis缓存预热。
func InitializeApplication() error {
	fmt.Println("开始应用首次初始化...")

	if err := profile.PrimeCachedDB(); err != nil {
		return err
	}
	if err := spell.PrimeCachedDB(); err != nil {
		return err
	}
	if err := grimoire.PrimeModule(); err != nil {
		return err
	}

	fmt.Println("应用初始化完成！")
	return nil
}

// RebuildCache 在运行时热重建Redis缓存。
// 数据库是权威数据源，重建只是把当前权威状态重新写回缓存。
func RebuildCache() error {
	fmt.Println("开始缓存热重建...")

	if err := spell.ReloadRepository(); err != nil {
		return err
	}
	if err := spell.WarmupCache(); err != nil {
		return err
	}
	if err := profile.WarmupCache(); err != nil {
		return err
	}

	fmt.Println("缓存热重建完成。")
	return nil
}
