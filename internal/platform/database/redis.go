package database

import (
	"context"
	"fmt"
	"time"

	"github.com/kobstaw/kanty-grimoire-backend/internal/platform/config"
	"github.com/redis/go-redis/v9"
)

// RDB 是全局的Redis客户端，承载条目信息Hash和管理员名单Set两块缓存。
// 不连接Redis的运行环境（命令行工具、测试）保持nil，读取路径自行退回。
var RDB *redis.Client

// Ctx 供仓库和缓存预热流程的Redis操作使用
var Ctx = context.Background()

// InitRedis 按配置建立Redis连接并确认可达，失败时直接中止启动
func InitRedis(cfg config.RedisConfig) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(Ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		panic(fmt.Sprintf("无法连接到Redis (%s): %v", cfg.Address, err))
	}

	RDB = client
	fmt.Printf("Redis连接成功 (%s)。\n", cfg.Address)
}
