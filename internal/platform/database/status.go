package database

import (
	"fmt"
	"sync"
)

// cacheHealth 跟踪Redis缓存层的可用性和最近一次确认的实例run_id。
// run_id在Redis每次重启后都会变化，是判断缓存内容是否已丢失的依据。
type cacheHealth struct {
	mu        sync.RWMutex
	available bool
	runID     string
}

// 启动流程会先阻塞确认Redis可达，所以初始状态视为可用
var cacheState = &cacheHealth{available: true}

// IsRedisHealthy 返回Redis缓存当前是否可用。
// 不可用时，条目详情读取退回内存仓库，管理员判定退回数据库。
func IsRedisHealthy() bool {
	cacheState.mu.RLock()
	defer cacheState.mu.RUnlock()
	return cacheState.available
}

// SetInitialRunID 记录启动时探测到的Redis实例run_id
func SetInitialRunID(runID string) {
	cacheState.mu.Lock()
	defer cacheState.mu.Unlock()
	cacheState.runID = runID
}

// UpdateStatus 更新缓存可用性；只在可用时采纳新的run_id。
// 状态翻转时打印一条日志，重复的同状态更新保持安静。
func UpdateStatus(isHealthy bool, newRunID string) {
	cacheState.mu.Lock()
	defer cacheState.mu.Unlock()

	if cacheState.available != isHealthy {
		cacheState.available = isHealthy
		if isHealthy {
			fmt.Println("缓存状态: Redis已恢复，条目与管理员缓存重新可用。")
		} else {
			fmt.Println("缓存状态警告: Redis不可用，读取退回内存仓库与数据库。")
		}
	}

	if isHealthy {
		cacheState.runID = newRunID
	}
}

// GetLastKnownRunID 返回最近一次确认的Redis实例run_id
func GetLastKnownRunID() string {
	cacheState.mu.RLock()
	defer cacheState.mu.RUnlock()
	return cacheState.runID
}
