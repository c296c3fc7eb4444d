package root

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/kobstaw/kanty-grimoire-backend/internal/platform/config"
	"github.com/kobstaw/kanty-grimoire-backend/internal/platform/database"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "kantctl",
	Short:         "卡牌奇术数据库的维护工具",
	Long:          "kantctl 提供CSV数据导入和管理员维护等一次性操作，直接作用于数据库。",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	rootCmd.AddCommand(
		newImportCmd(),
		newGrantAdminCmd(),
		newCheckAdminCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "错误:", err)
		os.Exit(1)
	}
}

// setupDB 加载配置并初始化数据库连接，供各子命令使用。
// 维护命令只操作数据库，不连接Redis；缓存由服务端的健康检查兜底重建。
func setupDB() error {
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("无法加载配置文件: %w", err)
	}
	database.InitDB(cfg.Database)
	return nil
}
