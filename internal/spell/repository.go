package spell

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/kobstaw/kanty-grimoire-backend/internal/platform/database"
)

// --- Redis键定义 ---

const (
	// InfoKey 是一个Redis Hash，按条目ID缓存视图模型JSON，供单条查询使用
	InfoKey = "spell:info"
)

// repository 是spell模块的中央内存仓库。
// 完整工作集在启动时一次性加载；之后任何变更都整体替换records切片，
// 绝不逐字段修改，保证读取方看到的永远是一致的快照。
type repository struct {
	mu sync.RWMutex

	// records 按name_pl升序排列，这个顺序就是建议列表的遍历顺序
	records []Record

	// sources / attributes 是两个筛选下拉框的去重选项，派生自records
	sources    []string
	attributes []string
}

// globalRepository 是仓库的私有单例实例
var globalRepository = &repository{}

// loadRecordsFromDB 从数据库读取全部条目并映射为视图模型
func loadRecordsFromDB() ([]Record, error) {
	var spells []Spell
	if err := database.DB.Order("name_pl asc").Find(&spells).Error; err != nil {
		return nil, fmt.Errorf("无法从数据库加载条目: %w", err)
	}

	records := make([]Record, len(spells))
	for i := range spells {
		records[i] = ToViewModel(&spells[i])
	}
	return records, nil
}

// distinctValues 提取一列非空去重值并排序，供筛选下拉框使用
func distinctValues(records []Record, pick func(*Record) string) []string {
	seen := make(map[string]bool)
	var values []string
	for i := range records {
		v := strings.TrimSpace(pick(&records[i]))
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		values = append(values, v)
	}
	sort.Strings(values)
	return values
}

// ReloadRepository 从数据库重新加载完整工作集并整体替换内存仓库。
// 启动时和每次写操作成功后都会调用。
func ReloadRepository() error {
	records, err := loadRecordsFromDB()
	if err != nil {
		return err
	}

	sources := distinctValues(records, func(r *Record) string { return r.Source })
	attributes := distinctValues(records, func(r *Record) string { return r.Attribute })

	globalRepository.mu.Lock()
	globalRepository.records = records
	globalRepository.sources = sources
	globalRepository.attributes = attributes
	globalRepository.mu.Unlock()

	return nil
}

// Snapshot 返回当前工作集的切片。
// 切片本身在替换式更新下是只读的，调用方不得修改其元素。
func Snapshot() []Record {
	globalRepository.mu.RLock()
	defer globalRepository.mu.RUnlock()
	return globalRepository.records
}

// RecordCount 返回当前工作集的条目数
func RecordCount() int {
	globalRepository.mu.RLock()
	defer globalRepository.mu.RUnlock()
	return len(globalRepository.records)
}

// GetRecordByID 在内存仓库中按ID查找条目。
// Redis不可用时，单条查询会退回到这里。
func GetRecordByID(id uint) (Record, bool) {
	globalRepository.mu.RLock()
	defer globalRepository.mu.RUnlock()
	for i := range globalRepository.records {
		if globalRepository.records[i].ID == id {
			return globalRepository.records[i], true
		}
	}
	return Record{}, false
}

// FilterOptions 返回两个筛选下拉框的选项列表
func FilterOptions() (sources []string, attributes []string) {
	globalRepository.mu.RLock()
	defer globalRepository.mu.RUnlock()
	return globalRepository.sources, globalRepository.attributes
}
